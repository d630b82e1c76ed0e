// internal/domain/compliance/repository.go
package compliance

import (
	"context"
	"time"
)

type Repository interface {
	// Insurance
	CreateInsurance(ctx context.Context, ins *Insurance) error
	GetInsurances(ctx context.Context, vehicleID int64) ([]Insurance, error)

	// Inspections
	CreateInspection(ctx context.Context, insp *Inspection) error
	GetInspections(ctx context.Context, vehicleID int64) ([]Inspection, error)

	// Violations
	CreateViolation(ctx context.Context, v *Violation) error
	GetViolationsByVehicle(ctx context.Context, vehicleID int64) ([]Violation, error)
	GetViolationsByDriver(ctx context.Context, driverID int64) ([]Violation, error)

	// GetSnapshot loads the read-only compliance projection for a vehicle.
	// When called inside DB.WithTx it reads with the transaction, so the
	// dispatch gate sees a consistent view with the conflict check.
	GetSnapshot(ctx context.Context, vehicleID int64) (*Snapshot, error)

	// GetExpiring returns records whose expiry / next-due date falls within
	// [from, to). Used by the expiration scanner.
	GetExpiring(ctx context.Context, from, to time.Time) (*ExpiringItems, error)
}
