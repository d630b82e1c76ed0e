// internal/repository/postgres/vehicle_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fleet-service/internal/domain/vehicle"
	xerrors "fleet-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type VehicleRepository struct {
	db *DB
}

func NewVehicleRepository(db *DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

const vehicleColumns = `id, plate_no, vin, make, model, year, powertrain, displacement_cc, seats,
	vehicle_type, owned_or_leased, acquired_on, status, helmet_required, created_at, updated_at`

func scanVehicle(row pgx.Row) (*vehicle.Vehicle, error) {
	var v vehicle.Vehicle
	err := row.Scan(
		&v.ID, &v.PlateNo, &v.VIN, &v.Make, &v.Model, &v.Year, &v.Powertrain, &v.DisplacementCC, &v.Seats,
		&v.Type, &v.OwnedOrLeased, &v.AcquiredOn, &v.Status, &v.HelmetRequired, &v.CreatedAt, &v.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan vehicle: %w", err)
	}
	return &v, nil
}

func (r *VehicleRepository) Create(ctx context.Context, v *vehicle.Vehicle) error {
	query := `
		INSERT INTO vehicles (
			plate_no, vin, make, model, year, powertrain, displacement_cc, seats,
			vehicle_type, owned_or_leased, acquired_on, status, helmet_required
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at
	`
	err := r.db.queryerFrom(ctx).QueryRow(
		ctx, query,
		v.PlateNo, v.VIN, v.Make, v.Model, v.Year, v.Powertrain, v.DisplacementCC, v.Seats,
		v.Type, v.OwnedOrLeased, v.AcquiredOn, v.Status, v.HelmetRequired,
	).Scan(&v.ID, &v.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return xerrors.ErrDuplicateEntry
	}
	if err != nil {
		return fmt.Errorf("failed to create vehicle: %w", err)
	}
	return nil
}

func (r *VehicleRepository) FindByID(ctx context.Context, id int64) (*vehicle.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	return scanVehicle(r.db.queryerFrom(ctx).QueryRow(ctx, query, id))
}

func (r *VehicleRepository) FindByPlateNo(ctx context.Context, plateNo string) (*vehicle.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE plate_no = $1`
	return scanVehicle(r.db.queryerFrom(ctx).QueryRow(ctx, query, plateNo))
}

// LockForDispatch takes the per-vehicle exclusive lock that serializes the
// check-then-insert sequence of concurrent dispatch attempts.
func (r *VehicleRepository) LockForDispatch(ctx context.Context, id int64) (*vehicle.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1 FOR UPDATE`
	return scanVehicle(r.db.queryerFrom(ctx).QueryRow(ctx, query, id))
}

func (r *VehicleRepository) Update(ctx context.Context, id int64, v *vehicle.Vehicle) error {
	query := `
		UPDATE vehicles
		SET make = $2, model = $3, year = $4, powertrain = $5, displacement_cc = $6,
		    seats = $7, owned_or_leased = $8, status = $9, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := r.db.queryerFrom(ctx).Exec(ctx, query,
		id, v.Make, v.Model, v.Year, v.Powertrain, v.DisplacementCC,
		v.Seats, v.OwnedOrLeased, v.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to update vehicle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *VehicleRepository) List(ctx context.Context, filters *vehicle.ListFilters) ([]vehicle.Vehicle, int64, error) {
	where := []string{"1=1"}
	args := []any{}
	argn := 1

	if filters.Type != nil {
		where = append(where, fmt.Sprintf("vehicle_type = $%d", argn))
		args = append(args, *filters.Type)
		argn++
	}
	if filters.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", argn))
		args = append(args, *filters.Status)
		argn++
	}
	if filters.Search != "" {
		where = append(where, fmt.Sprintf("(plate_no ILIKE $%d OR make ILIKE $%d OR model ILIKE $%d)", argn, argn, argn))
		args = append(args, "%"+filters.Search+"%")
		argn++
	}

	whereClause := strings.Join(where, " AND ")

	var total int64
	if err := r.db.queryerFrom(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM vehicles WHERE `+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count vehicles: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT `+vehicleColumns+` FROM vehicles WHERE %s ORDER BY id LIMIT $%d OFFSET $%d`,
		whereClause, argn, argn+1,
	)
	args = append(args, filters.PageSize, (filters.Page-1)*filters.PageSize)

	rows, err := r.db.queryerFrom(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer rows.Close()

	var out []vehicle.Vehicle
	for rows.Next() {
		var v vehicle.Vehicle
		if err := rows.Scan(
			&v.ID, &v.PlateNo, &v.VIN, &v.Make, &v.Model, &v.Year, &v.Powertrain, &v.DisplacementCC, &v.Seats,
			&v.Type, &v.OwnedOrLeased, &v.AcquiredOn, &v.Status, &v.HelmetRequired, &v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		out = append(out, v)
	}
	return out, total, rows.Err()
}

// --- Documents ---

func (r *VehicleRepository) AddDocument(ctx context.Context, d *vehicle.Document) error {
	query := `
		INSERT INTO vehicle_documents (vehicle_id, doc_type, file_url, sha256, issued_on, expires_on, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err := r.db.queryerFrom(ctx).QueryRow(
		ctx, query,
		d.VehicleID, d.DocType, d.FileURL, d.SHA256, d.IssuedOn, d.ExpiresOn, d.Tags,
	).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to add document: %w", err)
	}
	return nil
}

func (r *VehicleRepository) GetDocuments(ctx context.Context, vehicleID int64) ([]vehicle.Document, error) {
	query := `
		SELECT id, vehicle_id, doc_type, file_url, sha256, issued_on, expires_on, tags, created_at
		FROM vehicle_documents WHERE vehicle_id = $1 ORDER BY id
	`
	rows, err := r.db.queryerFrom(ctx).Query(ctx, query, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get documents: %w", err)
	}
	defer rows.Close()

	var out []vehicle.Document
	for rows.Next() {
		var d vehicle.Document
		if err := rows.Scan(&d.ID, &d.VehicleID, &d.DocType, &d.FileURL, &d.SHA256, &d.IssuedOn, &d.ExpiresOn, &d.Tags, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// --- Assets ---

func (r *VehicleRepository) AddAsset(ctx context.Context, a *vehicle.Asset) error {
	query := `
		INSERT INTO vehicle_assets (vehicle_id, asset_type, serial_no, expires_on, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.db.queryerFrom(ctx).QueryRow(
		ctx, query,
		a.VehicleID, a.AssetType, a.SerialNo, a.ExpiresOn, a.Status, a.Notes,
	).Scan(&a.ID, &a.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return xerrors.ErrDuplicateEntry
	}
	if err != nil {
		return fmt.Errorf("failed to add asset: %w", err)
	}
	return nil
}

func (r *VehicleRepository) ExistsBySerialNo(ctx context.Context, serialNo string) (bool, error) {
	var exists bool
	err := r.db.queryerFrom(ctx).QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM vehicle_assets WHERE serial_no = $1)`, serialNo).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check asset serial: %w", err)
	}
	return exists, nil
}

func (r *VehicleRepository) GetAssets(ctx context.Context, vehicleID *int64, page, pageSize int) ([]vehicle.Asset, int64, error) {
	where := "1=1"
	args := []any{}
	argn := 1
	if vehicleID != nil {
		where = fmt.Sprintf("vehicle_id = $%d", argn)
		args = append(args, *vehicleID)
		argn++
	}

	var total int64
	if err := r.db.queryerFrom(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM vehicle_assets WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count assets: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, vehicle_id, asset_type, serial_no, expires_on, status, notes, created_at
		FROM vehicle_assets WHERE %s ORDER BY id LIMIT $%d OFFSET $%d`, where, argn, argn+1)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.queryerFrom(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	var out []vehicle.Asset
	for rows.Next() {
		var a vehicle.Asset
		if err := rows.Scan(&a.ID, &a.VehicleID, &a.AssetType, &a.SerialNo, &a.ExpiresOn, &a.Status, &a.Notes, &a.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan asset: %w", err)
		}
		out = append(out, a)
	}
	return out, total, rows.Err()
}

// --- Taxes / fees ---

func (r *VehicleRepository) AddTaxFee(ctx context.Context, t *vehicle.TaxFee) error {
	query := `
		INSERT INTO taxes_fees (vehicle_id, fee_type, period_start, period_end, amount, paid_on)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.db.queryerFrom(ctx).QueryRow(
		ctx, query,
		t.VehicleID, t.FeeType, t.PeriodStart, t.PeriodEnd, t.Amount, t.PaidOn,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to add tax/fee: %w", err)
	}
	return nil
}

func (r *VehicleRepository) GetTaxFees(ctx context.Context, vehicleID int64) ([]vehicle.TaxFee, error) {
	query := `
		SELECT id, vehicle_id, fee_type, period_start, period_end, amount, paid_on, created_at
		FROM taxes_fees WHERE vehicle_id = $1 ORDER BY period_start
	`
	rows, err := r.db.queryerFrom(ctx).Query(ctx, query, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get taxes/fees: %w", err)
	}
	defer rows.Close()

	var out []vehicle.TaxFee
	for rows.Next() {
		var t vehicle.TaxFee
		if err := rows.Scan(&t.ID, &t.VehicleID, &t.FeeType, &t.PeriodStart, &t.PeriodEnd, &t.Amount, &t.PaidOn, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tax/fee: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
