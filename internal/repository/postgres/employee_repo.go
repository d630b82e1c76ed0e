// internal/repository/postgres/employee_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fleet-service/internal/domain/employee"
	xerrors "fleet-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type EmployeeRepository struct {
	db *DB
}

func NewEmployeeRepository(db *DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

const employeeColumns = `id, emp_no, name, dept_name, license_class, status, created_at, updated_at`

func scanEmployee(row pgx.Row) (*employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(&e.ID, &e.EmpNo, &e.Name, &e.DeptName, &e.LicenseClass, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan employee: %w", err)
	}
	return &e, nil
}

func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	query := `
		INSERT INTO employees (emp_no, name, dept_name, license_class, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.queryerFrom(ctx).QueryRow(
		ctx, query,
		e.EmpNo, e.Name, e.DeptName, e.LicenseClass, e.Status,
	).Scan(&e.ID, &e.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return xerrors.ErrDuplicateEntry
	}
	if err != nil {
		return fmt.Errorf("failed to create employee: %w", err)
	}
	return nil
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id int64) (*employee.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	return scanEmployee(r.db.queryerFrom(ctx).QueryRow(ctx, query, id))
}

func (r *EmployeeRepository) FindByEmpNo(ctx context.Context, empNo string) (*employee.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE emp_no = $1`
	return scanEmployee(r.db.queryerFrom(ctx).QueryRow(ctx, query, empNo))
}

func (r *EmployeeRepository) Update(ctx context.Context, id int64, e *employee.Employee) error {
	query := `
		UPDATE employees
		SET name = $2, dept_name = $3, license_class = $4, status = $5, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := r.db.queryerFrom(ctx).Exec(ctx, query, id, e.Name, e.DeptName, e.LicenseClass, e.Status)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *EmployeeRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.queryerFrom(ctx).QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM employees WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check employee existence: %w", err)
	}
	return exists, nil
}

func (r *EmployeeRepository) List(ctx context.Context, filters *employee.ListFilters) ([]employee.Employee, int64, error) {
	where := []string{"1=1"}
	args := []any{}
	argn := 1

	if filters.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", argn))
		args = append(args, *filters.Status)
		argn++
	}
	if filters.Search != "" {
		where = append(where, fmt.Sprintf("(emp_no ILIKE $%d OR name ILIKE $%d)", argn, argn))
		args = append(args, "%"+filters.Search+"%")
		argn++
	}

	whereClause := strings.Join(where, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM employees WHERE ` + whereClause
	if err := r.db.queryerFrom(ctx).QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT `+employeeColumns+` FROM employees WHERE %s ORDER BY id LIMIT $%d OFFSET $%d`,
		whereClause, argn, argn+1,
	)
	args = append(args, filters.PageSize, (filters.Page-1)*filters.PageSize)

	rows, err := r.db.queryerFrom(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var out []employee.Employee
	for rows.Next() {
		var e employee.Employee
		if err := rows.Scan(&e.ID, &e.EmpNo, &e.Name, &e.DeptName, &e.LicenseClass, &e.Status, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		out = append(out, e)
	}
	return out, total, rows.Err()
}
