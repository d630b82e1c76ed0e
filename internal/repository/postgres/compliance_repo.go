// internal/repository/postgres/compliance_repo.go
package postgres

import (
	"context"
	"fmt"
	"time"

	"fleet-service/internal/domain/compliance"
)

type ComplianceRepository struct {
	db *DB
}

func NewComplianceRepository(db *DB) *ComplianceRepository {
	return &ComplianceRepository{db: db}
}

func (r *ComplianceRepository) CreateInsurance(ctx context.Context, ins *compliance.Insurance) error {
	query := `
		INSERT INTO insurances (vehicle_id, policy_kind, policy_no, insurer_id, starts_on, expires_on, premium)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err := r.db.queryerFrom(ctx).QueryRow(
		ctx, query,
		ins.VehicleID, ins.PolicyKind, ins.PolicyNo, ins.InsurerID, ins.StartsOn, ins.ExpiresOn, ins.Premium,
	).Scan(&ins.ID, &ins.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create insurance: %w", err)
	}
	return nil
}

func (r *ComplianceRepository) GetInsurances(ctx context.Context, vehicleID int64) ([]compliance.Insurance, error) {
	query := `
		SELECT id, vehicle_id, policy_kind, policy_no, insurer_id, starts_on, expires_on, premium, created_at
		FROM insurances WHERE vehicle_id = $1 ORDER BY expires_on DESC
	`
	rows, err := r.db.queryerFrom(ctx).Query(ctx, query, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get insurances: %w", err)
	}
	defer rows.Close()

	var out []compliance.Insurance
	for rows.Next() {
		var ins compliance.Insurance
		if err := rows.Scan(&ins.ID, &ins.VehicleID, &ins.PolicyKind, &ins.PolicyNo, &ins.InsurerID, &ins.StartsOn, &ins.ExpiresOn, &ins.Premium, &ins.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan insurance: %w", err)
		}
		out = append(out, ins)
	}
	return out, rows.Err()
}

func (r *ComplianceRepository) CreateInspection(ctx context.Context, insp *compliance.Inspection) error {
	query := `
		INSERT INTO inspections (vehicle_id, inspection_kind, inspected_on, result, next_due_date, station_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.db.queryerFrom(ctx).QueryRow(
		ctx, query,
		insp.VehicleID, insp.Kind, insp.InspectedOn, insp.Result, insp.NextDueDate, insp.StationID,
	).Scan(&insp.ID, &insp.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create inspection: %w", err)
	}
	return nil
}

func (r *ComplianceRepository) GetInspections(ctx context.Context, vehicleID int64) ([]compliance.Inspection, error) {
	query := `
		SELECT id, vehicle_id, inspection_kind, inspected_on, result, next_due_date, station_id, created_at
		FROM inspections WHERE vehicle_id = $1 ORDER BY next_due_date DESC
	`
	rows, err := r.db.queryerFrom(ctx).Query(ctx, query, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get inspections: %w", err)
	}
	defer rows.Close()

	var out []compliance.Inspection
	for rows.Next() {
		var insp compliance.Inspection
		if err := rows.Scan(&insp.ID, &insp.VehicleID, &insp.Kind, &insp.InspectedOn, &insp.Result, &insp.NextDueDate, &insp.StationID, &insp.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan inspection: %w", err)
		}
		out = append(out, insp)
	}
	return out, rows.Err()
}

func (r *ComplianceRepository) CreateViolation(ctx context.Context, v *compliance.Violation) error {
	query := `
		INSERT INTO violations (vehicle_id, driver_id, occurred_on, amount, points, status, paid_on, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	err := r.db.queryerFrom(ctx).QueryRow(
		ctx, query,
		v.VehicleID, v.DriverID, v.OccurredOn, v.Amount, v.Points, v.Status, v.PaidOn, v.Notes,
	).Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create violation: %w", err)
	}
	return nil
}

func (r *ComplianceRepository) violations(ctx context.Context, field string, id int64) ([]compliance.Violation, error) {
	query := fmt.Sprintf(`
		SELECT id, vehicle_id, driver_id, occurred_on, amount, points, status, paid_on, notes, created_at
		FROM violations WHERE %s = $1 ORDER BY occurred_on DESC`, field)
	rows, err := r.db.queryerFrom(ctx).Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get violations: %w", err)
	}
	defer rows.Close()

	var out []compliance.Violation
	for rows.Next() {
		var v compliance.Violation
		if err := rows.Scan(&v.ID, &v.VehicleID, &v.DriverID, &v.OccurredOn, &v.Amount, &v.Points, &v.Status, &v.PaidOn, &v.Notes, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan violation: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *ComplianceRepository) GetViolationsByVehicle(ctx context.Context, vehicleID int64) ([]compliance.Violation, error) {
	return r.violations(ctx, "vehicle_id", vehicleID)
}

func (r *ComplianceRepository) GetViolationsByDriver(ctx context.Context, driverID int64) ([]compliance.Violation, error) {
	return r.violations(ctx, "driver_id", driverID)
}

// GetSnapshot loads the read-only projection the dispatch gate evaluates.
// Two plain selects, no joins: the evaluator owns the interpretation.
func (r *ComplianceRepository) GetSnapshot(ctx context.Context, vehicleID int64) (*compliance.Snapshot, error) {
	insurances, err := r.GetInsurances(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	inspections, err := r.GetInspections(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	return &compliance.Snapshot{
		VehicleID:   vehicleID,
		Insurances:  insurances,
		Inspections: inspections,
	}, nil
}

func (r *ComplianceRepository) GetExpiring(ctx context.Context, from, to time.Time) (*compliance.ExpiringItems, error) {
	out := &compliance.ExpiringItems{}

	insQuery := `
		SELECT id, vehicle_id, policy_kind, policy_no, insurer_id, starts_on, expires_on, premium, created_at
		FROM insurances WHERE expires_on >= $1 AND expires_on < $2 ORDER BY expires_on
	`
	rows, err := r.db.queryerFrom(ctx).Query(ctx, insQuery, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get expiring insurances: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ins compliance.Insurance
		if err := rows.Scan(&ins.ID, &ins.VehicleID, &ins.PolicyKind, &ins.PolicyNo, &ins.InsurerID, &ins.StartsOn, &ins.ExpiresOn, &ins.Premium, &ins.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan insurance: %w", err)
		}
		out.Insurances = append(out.Insurances, ins)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	inspQuery := `
		SELECT id, vehicle_id, inspection_kind, inspected_on, result, next_due_date, station_id, created_at
		FROM inspections WHERE next_due_date >= $1 AND next_due_date < $2 ORDER BY next_due_date
	`
	irows, err := r.db.queryerFrom(ctx).Query(ctx, inspQuery, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get expiring inspections: %w", err)
	}
	defer irows.Close()
	for irows.Next() {
		var insp compliance.Inspection
		if err := irows.Scan(&insp.ID, &insp.VehicleID, &insp.Kind, &insp.InspectedOn, &insp.Result, &insp.NextDueDate, &insp.StationID, &insp.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan inspection: %w", err)
		}
		out.Inspections = append(out.Inspections, insp)
	}
	return out, irows.Err()
}
