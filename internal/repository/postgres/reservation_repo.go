// internal/repository/postgres/reservation_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fleet-service/internal/domain/reservation"
	xerrors "fleet-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
)

type ReservationRepository struct {
	db *DB
}

func NewReservationRepository(db *DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

const reservationColumns = `id, requester_id, vehicle_id, purpose, destination, start_ts, end_ts, status, created_at, updated_at`

func scanReservation(row pgx.Row) (*reservation.Reservation, error) {
	var res reservation.Reservation
	err := row.Scan(
		&res.ID, &res.RequesterID, &res.VehicleID, &res.Purpose, &res.Destination,
		&res.StartTS, &res.EndTS, &res.Status, &res.CreatedAt, &res.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan reservation: %w", err)
	}
	return &res, nil
}

// scanReservationWithTrip scans the reservation-LEFT JOIN-trips row shape
// shared by FindByID and List. Trip columns are null when no trip exists.
func scanReservationWithTrip(row pgx.Row) (*reservation.Reservation, error) {
	var res reservation.Reservation
	var (
		tripID, tripResID, tripVehicleID, tripDriverID *int64
		odoStart, odoEnd                               *int
		fuel, charge                                   *float64
		notes                                          *string
		returnedAt, tripCreatedAt                      *time.Time
	)
	err := row.Scan(
		&res.ID, &res.RequesterID, &res.VehicleID, &res.Purpose, &res.Destination,
		&res.StartTS, &res.EndTS, &res.Status, &res.CreatedAt, &res.UpdatedAt,
		&tripID, &tripResID, &tripVehicleID, &tripDriverID, &odoStart, &odoEnd,
		&fuel, &charge, &notes, &returnedAt, &tripCreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan reservation: %w", err)
	}
	if tripID != nil {
		res.Trip = &reservation.Trip{
			ID:            *tripID,
			ReservationID: *tripResID,
			VehicleID:     *tripVehicleID,
			DriverID:      *tripDriverID,
			OdometerStart: *odoStart,
			OdometerEnd:   *odoEnd,
			FuelLiters:    fuel,
			ChargeKWh:     charge,
			Notes:         notes,
			ReturnedAt:    *returnedAt,
			CreatedAt:     *tripCreatedAt,
		}
	}
	return &res, nil
}

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	query := `
		INSERT INTO reservations (requester_id, vehicle_id, purpose, destination, start_ts, end_ts, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err := r.db.queryerFrom(ctx).QueryRow(
		ctx, query,
		res.RequesterID, res.VehicleID, res.Purpose, res.Destination, res.StartTS, res.EndTS, res.Status,
	).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}
	return nil
}

// FindByID loads one reservation together with its trip, when closed.
func (r *ReservationRepository) FindByID(ctx context.Context, id int64) (*reservation.Reservation, error) {
	query := `
		SELECT r.id, r.requester_id, r.vehicle_id, r.purpose, r.destination, r.start_ts, r.end_ts, r.status, r.created_at, r.updated_at,
		       t.id, t.reservation_id, t.vehicle_id, t.driver_id, t.odometer_start, t.odometer_end,
		       t.fuel_liters, t.charge_kwh, t.notes, t.returned_at, t.created_at
		FROM reservations r
		LEFT JOIN trips t ON t.reservation_id = r.id
		WHERE r.id = $1
	`
	return scanReservationWithTrip(r.db.queryerFrom(ctx).QueryRow(ctx, query, id))
}

// LockForUpdate serializes status changes and trip closure on one
// reservation.
func (r *ReservationRepository) LockForUpdate(ctx context.Context, id int64) (*reservation.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1 FOR UPDATE`
	return scanReservation(r.db.queryerFrom(ctx).QueryRow(ctx, query, id))
}

func (r *ReservationRepository) Update(ctx context.Context, id int64, res *reservation.Reservation) error {
	query := `
		UPDATE reservations
		SET vehicle_id = $2, purpose = $3, destination = $4, start_ts = $5, end_ts = $6, status = $7, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := r.db.queryerFrom(ctx).Exec(ctx, query,
		id, res.VehicleID, res.Purpose, res.Destination, res.StartTS, res.EndTS, res.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to update reservation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// UpdateStatus flips the status and vehicle assignment in a single
// statement so the clears-vehicle rule cannot be half-applied.
func (r *ReservationRepository) UpdateStatus(ctx context.Context, id int64, status reservation.Status, vehicleID *int64) error {
	query := `
		UPDATE reservations SET status = $2, vehicle_id = $3, updated_at = NOW() WHERE id = $1
	`
	tag, err := r.db.queryerFrom(ctx).Exec(ctx, query, id, status, vehicleID)
	if err != nil {
		return fmt.Errorf("failed to update reservation status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// FindBlocking loads the reservations claiming the vehicle, ordered by id so
// conflict diagnostics are deterministic.
func (r *ReservationRepository) FindBlocking(ctx context.Context, vehicleID int64, excludeID int64) ([]reservation.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE vehicle_id = $1 AND status IN ('approved', 'in_progress') AND id <> $2
		ORDER BY id
	`
	rows, err := r.db.queryerFrom(ctx).Query(ctx, query, vehicleID, excludeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find blocking reservations: %w", err)
	}
	defer rows.Close()

	var out []reservation.Reservation
	for rows.Next() {
		var res reservation.Reservation
		if err := rows.Scan(
			&res.ID, &res.RequesterID, &res.VehicleID, &res.Purpose, &res.Destination,
			&res.StartTS, &res.EndTS, &res.Status, &res.CreatedAt, &res.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan reservation: %w", err)
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *ReservationRepository) List(ctx context.Context, filters *reservation.ListFilters) ([]reservation.Reservation, int64, error) {
	where := []string{"1=1"}
	args := []any{}
	argn := 1

	if filters.RequesterID != nil {
		where = append(where, fmt.Sprintf("r.requester_id = $%d", argn))
		args = append(args, *filters.RequesterID)
		argn++
	}
	if filters.VehicleID != nil {
		where = append(where, fmt.Sprintf("r.vehicle_id = $%d", argn))
		args = append(args, *filters.VehicleID)
		argn++
	}
	if filters.Status != nil {
		where = append(where, fmt.Sprintf("r.status = $%d", argn))
		args = append(args, *filters.Status)
		argn++
	}
	if filters.From != nil {
		where = append(where, fmt.Sprintf("r.start_ts >= $%d", argn))
		args = append(args, *filters.From)
		argn++
	}
	if filters.To != nil {
		where = append(where, fmt.Sprintf("r.end_ts <= $%d", argn))
		args = append(args, *filters.To)
		argn++
	}

	whereClause := strings.Join(where, " AND ")

	var total int64
	if err := r.db.queryerFrom(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM reservations r WHERE `+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count reservations: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT r.id, r.requester_id, r.vehicle_id, r.purpose, r.destination, r.start_ts, r.end_ts, r.status, r.created_at, r.updated_at,
		       t.id, t.reservation_id, t.vehicle_id, t.driver_id, t.odometer_start, t.odometer_end,
		       t.fuel_liters, t.charge_kwh, t.notes, t.returned_at, t.created_at
		FROM reservations r
		LEFT JOIN trips t ON t.reservation_id = r.id
		WHERE %s ORDER BY r.id LIMIT $%d OFFSET $%d`, whereClause, argn, argn+1)
	args = append(args, filters.PageSize, (filters.Page-1)*filters.PageSize)

	rows, err := r.db.queryerFrom(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reservations: %w", err)
	}
	defer rows.Close()

	var out []reservation.Reservation
	for rows.Next() {
		res, err := scanReservationWithTrip(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *res)
	}
	return out, total, rows.Err()
}
