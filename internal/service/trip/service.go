// internal/service/trip/service.go
package trip

import (
	"context"
	"errors"

	"fleet-service/internal/domain/audit"
	"fleet-service/internal/domain/reservation"
	xerrors "fleet-service/internal/pkg/errors"

	"go.uber.org/zap"
)

type TxRunner interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Recorder interface {
	Record(ctx context.Context, action audit.Action, entity string, entityID int64, oldValue, newValue interface{})
}

type Service struct {
	db           TxRunner
	reservations reservation.Repository
	trips        reservation.TripRepository
	audit        Recorder
	logger       *zap.Logger
}

func NewService(db TxRunner, reservations reservation.Repository, trips reservation.TripRepository, auditRec Recorder, logger *zap.Logger) *Service {
	return &Service{db: db, reservations: reservations, trips: trips, audit: auditRec, logger: logger}
}

// CloseReservation records actual usage and flips the reservation to
// completed. The trip insert and the status flip commit together or not at
// all: a trip without its status flip would corrupt the availability view the
// conflict check reads. The reservation row is locked for the duration, so a
// concurrent second closure waits and then fails the no-trip-yet check.
//
// Preconditions, in order: reservation exists, no trip recorded yet, trip
// vehicle matches the reservation's, driver is the requester. Odometer
// monotonicity is deliberately not checked here.
func (s *Service) CloseReservation(ctx context.Context, reservationID int64, req *reservation.CloseTripRequest) (*reservation.Trip, error) {
	var trip *reservation.Trip

	err := s.db.WithTx(ctx, func(ctx context.Context) error {
		res, err := s.reservations.LockForUpdate(ctx, reservationID)
		if errors.Is(err, xerrors.ErrNotFound) {
			return &xerrors.NotFoundError{Entity: "reservation", ID: reservationID}
		}
		if err != nil {
			return err
		}

		existing, err := s.trips.FindByReservation(ctx, reservationID)
		if err != nil && !errors.Is(err, xerrors.ErrNotFound) {
			return err
		}
		if existing != nil {
			return &xerrors.AlreadyClosedError{ReservationID: reservationID, TripID: existing.ID}
		}

		if res.VehicleID == nil || *res.VehicleID != req.VehicleID {
			var expected int64
			if res.VehicleID != nil {
				expected = *res.VehicleID
			}
			return &xerrors.MismatchError{Field: "vehicle_id", Expected: expected, Got: req.VehicleID}
		}
		if res.RequesterID != req.DriverID {
			return &xerrors.MismatchError{Field: "driver_id", Expected: res.RequesterID, Got: req.DriverID}
		}

		if !reservation.CanTransition(res.Status, reservation.StatusCompleted) {
			return &xerrors.InvalidTransitionError{From: string(res.Status), To: string(reservation.StatusCompleted)}
		}

		trip = &reservation.Trip{
			ReservationID: reservationID,
			VehicleID:     req.VehicleID,
			DriverID:      req.DriverID,
			OdometerStart: *req.OdometerStart,
			OdometerEnd:   *req.OdometerEnd,
			FuelLiters:    req.FuelLiters,
			ChargeKWh:     req.ChargeKWh,
			Notes:         req.Notes,
			ReturnedAt:    req.ReturnedAt,
		}
		if err := s.trips.Create(ctx, trip); err != nil {
			return err
		}
		if err := s.reservations.UpdateStatus(ctx, reservationID, reservation.StatusCompleted, res.VehicleID); err != nil {
			return err
		}

		old := *res
		res.Status = reservation.StatusCompleted
		res.Trip = trip
		s.audit.Record(ctx, audit.ActionCreate, "trip", trip.ID, nil, trip)
		s.audit.Record(ctx, audit.ActionUpdate, "reservation", reservationID, old, res)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("reservation closed",
		zap.Int64("reservation_id", reservationID),
		zap.Int64("trip_id", trip.ID),
		zap.Int("distance_km", trip.DistanceKM()))
	return trip, nil
}
