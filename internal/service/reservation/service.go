// internal/service/reservation/service.go
package reservation

import (
	"context"
	"errors"
	"time"

	"fleet-service/internal/domain/audit"
	"fleet-service/internal/domain/compliance"
	"fleet-service/internal/domain/employee"
	"fleet-service/internal/domain/reservation"
	"fleet-service/internal/domain/vehicle"
	xerrors "fleet-service/internal/pkg/errors"
	compliancesvc "fleet-service/internal/service/compliance"

	"go.uber.org/zap"
)

// TxRunner runs fn inside a database transaction; repository calls made with
// the ctx it passes join that transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Recorder appends audit entries; failures never surface.
type Recorder interface {
	Record(ctx context.Context, action audit.Action, entity string, entityID int64, oldValue, newValue interface{})
}

type Service struct {
	db           TxRunner
	reservations reservation.Repository
	vehicles     vehicle.Repository
	employees    employee.Repository
	compliance   compliance.Repository
	audit        Recorder
	logger       *zap.Logger
	now          func() time.Time
}

func NewService(
	db TxRunner,
	reservations reservation.Repository,
	vehicles vehicle.Repository,
	employees employee.Repository,
	complianceRepo compliance.Repository,
	auditRec Recorder,
	logger *zap.Logger,
) *Service {
	return &Service{
		db:           db,
		reservations: reservations,
		vehicles:     vehicles,
		employees:    employees,
		compliance:   complianceRepo,
		audit:        auditRec,
		logger:       logger,
		now:          time.Now,
	}
}

// Create books a vehicle for a half-open window, or queues a pending request
// when no vehicle is named. With a vehicle, the conflict and compliance
// checks run under the vehicle's row lock in the same transaction as the
// insert, so two concurrent requests for overlapping windows cannot both
// commit.
func (s *Service) Create(ctx context.Context, req *reservation.CreateReservationRequest) (*reservation.Reservation, error) {
	if !req.StartTS.Before(req.EndTS) {
		return nil, &xerrors.ValidationError{Field: "start_ts", Reason: "start must be before end"}
	}

	exists, err := s.employees.Exists(ctx, req.RequesterID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, &xerrors.NotFoundError{Entity: "employee", ID: req.RequesterID}
	}

	res := &reservation.Reservation{
		RequesterID: req.RequesterID,
		VehicleID:   req.VehicleID,
		Purpose:     req.Purpose,
		Destination: req.Destination,
		StartTS:     req.StartTS,
		EndTS:       req.EndTS,
		Status:      reservation.StatusPending,
	}

	err = s.db.WithTx(ctx, func(ctx context.Context) error {
		if req.VehicleID != nil {
			if err := s.runDispatchChecks(ctx, *req.VehicleID, 0, req.StartTS, req.EndTS); err != nil {
				return err
			}
			res.Status = reservation.StatusApproved
		}
		if err := s.reservations.Create(ctx, res); err != nil {
			return err
		}
		s.audit.Record(ctx, audit.ActionCreate, "reservation", res.ID, nil, res)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("reservation created",
		zap.Int64("reservation_id", res.ID),
		zap.String("status", string(res.Status)))
	return res, nil
}

// AssignOrUpdateStatus applies a partial update: a status change, a vehicle
// assignment to a pending reservation, or both. The reservation row is locked
// for the duration so only one request transitions it at a time.
func (s *Service) AssignOrUpdateStatus(ctx context.Context, id int64, req *reservation.UpdateReservationRequest) (*reservation.Reservation, error) {
	var updated *reservation.Reservation

	err := s.db.WithTx(ctx, func(ctx context.Context) error {
		res, err := s.reservations.LockForUpdate(ctx, id)
		if errors.Is(err, xerrors.ErrNotFound) {
			return &xerrors.NotFoundError{Entity: "reservation", ID: id}
		}
		if err != nil {
			return err
		}
		old := *res

		target := res.Status
		vehicleID := res.VehicleID

		if req.Status != nil {
			// completed is reserved for trip closure; requesting it here is
			// always an invalid transition, whatever the current state.
			if *req.Status == reservation.StatusCompleted {
				return &xerrors.InvalidTransitionError{From: string(res.Status), To: string(reservation.StatusCompleted)}
			}
			if !reservation.CanTransition(res.Status, *req.Status) {
				return &xerrors.InvalidTransitionError{From: string(res.Status), To: string(*req.Status)}
			}
			target = *req.Status
		}

		if req.VehicleID != nil {
			// assignment implies approval; a request also naming any other
			// status contradicts itself and must not silently win
			if req.Status != nil && *req.Status != reservation.StatusApproved {
				return &xerrors.ValidationError{Field: "status", Reason: "vehicle assignment implies approval, conflicting status requested"}
			}
			if res.Status != reservation.StatusPending {
				return &xerrors.ValidationError{Field: "vehicle_id", Reason: "vehicle can only be assigned to a pending reservation"}
			}
			if err := s.runDispatchChecks(ctx, *req.VehicleID, res.ID, res.StartTS, res.EndTS); err != nil {
				return err
			}
			vehicleID = req.VehicleID
			target = reservation.StatusApproved
		}

		if target == reservation.StatusApproved && vehicleID == nil {
			return &xerrors.ValidationError{Field: "vehicle_id", Reason: "cannot approve a reservation without a vehicle"}
		}

		// cancel/reject frees the slot in the same transaction
		if target == reservation.StatusCancelled || target == reservation.StatusRejected {
			vehicleID = nil
		}

		if err := s.reservations.UpdateStatus(ctx, id, target, vehicleID); err != nil {
			return err
		}

		res.Status = target
		res.VehicleID = vehicleID
		s.audit.Record(ctx, audit.ActionUpdate, "reservation", id, old, res)
		updated = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("reservation updated",
		zap.Int64("reservation_id", id),
		zap.String("status", string(updated.Status)))
	return updated, nil
}

// Get loads one reservation with its trip, when closed.
func (s *Service) Get(ctx context.Context, id int64) (*reservation.Reservation, error) {
	res, err := s.reservations.FindByID(ctx, id)
	if errors.Is(err, xerrors.ErrNotFound) {
		return nil, &xerrors.NotFoundError{Entity: "reservation", ID: id}
	}
	return res, err
}

// List returns a reservation page with nested trips.
func (s *Service) List(ctx context.Context, filters *reservation.ListFilters) (*reservation.ListResponse, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 || filters.PageSize > 100 {
		filters.PageSize = 20
	}

	items, total, err := s.reservations.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(filters.PageSize) - 1) / int64(filters.PageSize))
	return &reservation.ListResponse{
		Reservations: items,
		Total:        total,
		Page:         filters.Page,
		PageSize:     filters.PageSize,
		TotalPages:   totalPages,
	}, nil
}

// runDispatchChecks is the check-then-claim sequence shared by Create and
// vehicle assignment. It must run inside a transaction: the vehicle row lock
// taken first serializes concurrent attempts, so the blocking set read next
// cannot change before the caller's insert commits.
func (s *Service) runDispatchChecks(ctx context.Context, vehicleID, excludeID int64, start, end time.Time) error {
	v, err := s.vehicles.LockForDispatch(ctx, vehicleID)
	if errors.Is(err, xerrors.ErrNotFound) {
		return &xerrors.NotFoundError{Entity: "vehicle", ID: vehicleID}
	}
	if err != nil {
		return err
	}

	blocking, err := s.reservations.FindBlocking(ctx, vehicleID, excludeID)
	if err != nil {
		return err
	}
	if conflicting, conflictID := HasConflict(start, end, blocking); conflicting {
		return &xerrors.ConflictError{VehicleID: vehicleID, ReservationID: conflictID}
	}

	snap, err := s.compliance.GetSnapshot(ctx, vehicleID)
	if err != nil {
		return err
	}
	if eligible, reasons := compliancesvc.IsDispatchEligible(v, snap, s.now()); !eligible {
		return &xerrors.ComplianceError{VehicleID: vehicleID, Reasons: reasons}
	}
	return nil
}
