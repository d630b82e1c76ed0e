// internal/domain/reservation/repository.go
package reservation

import "context"

type Repository interface {
	Create(ctx context.Context, r *Reservation) error
	FindByID(ctx context.Context, id int64) (*Reservation, error)
	Update(ctx context.Context, id int64, r *Reservation) error
	List(ctx context.Context, filters *ListFilters) ([]Reservation, int64, error)

	// LockForUpdate loads a reservation row under a transaction-scoped
	// exclusive lock so only one request transitions it at a time. Must be
	// called inside DB.WithTx.
	LockForUpdate(ctx context.Context, id int64) (*Reservation, error)

	// FindBlocking returns the reservations claiming the vehicle (status
	// approved or in_progress), ordered by id, excluding excludeID when > 0.
	FindBlocking(ctx context.Context, vehicleID int64, excludeID int64) ([]Reservation, error)

	// UpdateStatus flips status and vehicle assignment in one statement.
	UpdateStatus(ctx context.Context, id int64, status Status, vehicleID *int64) error
}

type TripRepository interface {
	Create(ctx context.Context, t *Trip) error
	FindByReservation(ctx context.Context, reservationID int64) (*Trip, error)
}
