// internal/repository/postgres/trip_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"fleet-service/internal/domain/reservation"
	xerrors "fleet-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type TripRepository struct {
	db *DB
}

func NewTripRepository(db *DB) *TripRepository {
	return &TripRepository{db: db}
}

const tripColumns = `id, reservation_id, vehicle_id, driver_id, odometer_start, odometer_end, fuel_liters, charge_kwh, notes, returned_at, created_at`

func scanTrip(row pgx.Row) (*reservation.Trip, error) {
	var t reservation.Trip
	err := row.Scan(
		&t.ID, &t.ReservationID, &t.VehicleID, &t.DriverID,
		&t.OdometerStart, &t.OdometerEnd, &t.FuelLiters, &t.ChargeKWh,
		&t.Notes, &t.ReturnedAt, &t.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan trip: %w", err)
	}
	return &t, nil
}

func (r *TripRepository) Create(ctx context.Context, t *reservation.Trip) error {
	query := `
		INSERT INTO trips (reservation_id, vehicle_id, driver_id, odometer_start, odometer_end,
			fuel_liters, charge_kwh, notes, returned_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

	err := r.db.queryerFrom(ctx).QueryRow(ctx, query,
		t.ReservationID, t.VehicleID, t.DriverID, t.OdometerStart, t.OdometerEnd,
		t.FuelLiters, t.ChargeKWh, t.Notes, t.ReturnedAt,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return xerrors.ErrAlreadyClosed
		}
		return fmt.Errorf("failed to create trip: %w", err)
	}
	return nil
}

func (r *TripRepository) FindByReservation(ctx context.Context, reservationID int64) (*reservation.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE reservation_id = $1`
	return scanTrip(r.db.queryerFrom(ctx).QueryRow(ctx, query, reservationID))
}
