// internal/repository/postgres/maintenance_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fleet-service/internal/domain/maintenance"
	xerrors "fleet-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
)

type MaintenanceRepository struct {
	db *DB
}

func NewMaintenanceRepository(db *DB) *MaintenanceRepository {
	return &MaintenanceRepository{db: db}
}

// --- Vendors ---

func (r *MaintenanceRepository) CreateVendor(ctx context.Context, v *maintenance.Vendor) error {
	query := `
		INSERT INTO vendors (name, category, phone, email, address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.queryerFrom(ctx).QueryRow(ctx, query,
		v.Name, v.Category, v.Phone, v.Email, v.Address,
	).Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create vendor: %w", err)
	}
	return nil
}

func (r *MaintenanceRepository) FindVendorByID(ctx context.Context, id int64) (*maintenance.Vendor, error) {
	query := `SELECT id, name, category, phone, email, address, created_at FROM vendors WHERE id = $1`

	var v maintenance.Vendor
	err := r.db.queryerFrom(ctx).QueryRow(ctx, query, id).Scan(
		&v.ID, &v.Name, &v.Category, &v.Phone, &v.Email, &v.Address, &v.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find vendor: %w", err)
	}
	return &v, nil
}

func (r *MaintenanceRepository) ListVendors(ctx context.Context, page, pageSize int) ([]maintenance.Vendor, int64, error) {
	q := r.db.queryerFrom(ctx)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM vendors`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count vendors: %w", err)
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	rows, err := q.Query(ctx,
		`SELECT id, name, category, phone, email, address, created_at
		FROM vendors ORDER BY id LIMIT $1 OFFSET $2`, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list vendors: %w", err)
	}
	defer rows.Close()

	vendors := []maintenance.Vendor{}
	for rows.Next() {
		var v maintenance.Vendor
		if err := rows.Scan(&v.ID, &v.Name, &v.Category, &v.Phone, &v.Email, &v.Address, &v.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan vendor: %w", err)
		}
		vendors = append(vendors, v)
	}
	return vendors, total, rows.Err()
}

// --- Maintenance plans ---

func (r *MaintenanceRepository) CreatePlan(ctx context.Context, p *maintenance.Plan) error {
	query := `
		INSERT INTO maintenance_plans (vehicle_id, name, interval_km, interval_month, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.queryerFrom(ctx).QueryRow(ctx, query,
		p.VehicleID, p.Name, p.IntervalKM, p.IntervalMonth, p.Notes,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create maintenance plan: %w", err)
	}
	return nil
}

func (r *MaintenanceRepository) GetPlansForVehicle(ctx context.Context, vehicleID int64) ([]maintenance.Plan, error) {
	rows, err := r.db.queryerFrom(ctx).Query(ctx,
		`SELECT id, vehicle_id, name, interval_km, interval_month, notes, created_at
		FROM maintenance_plans WHERE vehicle_id = $1 ORDER BY id`, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list maintenance plans: %w", err)
	}
	defer rows.Close()

	plans := []maintenance.Plan{}
	for rows.Next() {
		var p maintenance.Plan
		if err := rows.Scan(&p.ID, &p.VehicleID, &p.Name, &p.IntervalKM, &p.IntervalMonth, &p.Notes, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan maintenance plan: %w", err)
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// --- Work orders ---

const workOrderColumns = `id, vehicle_id, vendor_id, order_type, status, description, odometer_km, cost_amount, opened_on, completed_on, created_at`

func scanWorkOrder(row pgx.Row) (*maintenance.WorkOrder, error) {
	var wo maintenance.WorkOrder
	err := row.Scan(
		&wo.ID, &wo.VehicleID, &wo.VendorID, &wo.OrderType, &wo.Status,
		&wo.Description, &wo.OdometerKM, &wo.CostAmount, &wo.OpenedOn, &wo.CompletedOn, &wo.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan work order: %w", err)
	}
	return &wo, nil
}

func (r *MaintenanceRepository) CreateWorkOrder(ctx context.Context, wo *maintenance.WorkOrder) error {
	query := `
		INSERT INTO work_orders (vehicle_id, vendor_id, order_type, status, description, odometer_km, opened_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.db.queryerFrom(ctx).QueryRow(ctx, query,
		wo.VehicleID, wo.VendorID, wo.OrderType, wo.Status, wo.Description, wo.OdometerKM, wo.OpenedOn,
	).Scan(&wo.ID, &wo.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create work order: %w", err)
	}
	return nil
}

func (r *MaintenanceRepository) FindWorkOrderByID(ctx context.Context, id int64) (*maintenance.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders WHERE id = $1`
	return scanWorkOrder(r.db.queryerFrom(ctx).QueryRow(ctx, query, id))
}

func (r *MaintenanceRepository) CloseWorkOrder(ctx context.Context, id int64, cost float64, completedOn time.Time) error {
	query := `
		UPDATE work_orders
		SET status = 'closed', cost_amount = $2, completed_on = $3
		WHERE id = $1 AND status = 'open'`

	tag, err := r.db.queryerFrom(ctx).Exec(ctx, query, id, cost, completedOn)
	if err != nil {
		return fmt.Errorf("failed to close work order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *MaintenanceRepository) GetWorkOrdersForVehicle(ctx context.Context, vehicleID int64) ([]maintenance.WorkOrder, error) {
	rows, err := r.db.queryerFrom(ctx).Query(ctx,
		`SELECT `+workOrderColumns+` FROM work_orders WHERE vehicle_id = $1 ORDER BY id`, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list work orders: %w", err)
	}
	defer rows.Close()

	orders := []maintenance.WorkOrder{}
	for rows.Next() {
		var wo maintenance.WorkOrder
		if err := rows.Scan(
			&wo.ID, &wo.VehicleID, &wo.VendorID, &wo.OrderType, &wo.Status,
			&wo.Description, &wo.OdometerKM, &wo.CostAmount, &wo.OpenedOn, &wo.CompletedOn, &wo.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan work order: %w", err)
		}
		orders = append(orders, wo)
	}
	return orders, rows.Err()
}

func (r *MaintenanceRepository) GetClosedWorkOrderCost(ctx context.Context, vehicleID int64, from, to time.Time) (float64, error) {
	query := `
		SELECT COALESCE(SUM(cost_amount), 0)
		FROM work_orders
		WHERE vehicle_id = $1 AND status = 'closed'
		  AND completed_on >= $2 AND completed_on < $3`

	var total float64
	if err := r.db.queryerFrom(ctx).QueryRow(ctx, query, vehicleID, from, to).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum work order cost: %w", err)
	}
	return total, nil
}
