// internal/service/maintenance/service.go
package maintenance

import (
	"context"
	"errors"

	"fleet-service/internal/domain/audit"
	"fleet-service/internal/domain/maintenance"
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
	db     TxRunner
	repo   maintenance.Repository
	audit  Recorder
	logger *zap.Logger
}

func NewService(db TxRunner, repo maintenance.Repository, auditRec Recorder, logger *zap.Logger) *Service {
	return &Service{db: db, repo: repo, audit: auditRec, logger: logger}
}

func (s *Service) CreateVendor(ctx context.Context, req *maintenance.CreateVendorRequest) (*maintenance.Vendor, error) {
	v := &maintenance.Vendor{
		Name:     req.Name,
		Category: req.Category,
		Phone:    req.Phone,
		Email:    req.Email,
		Address:  req.Address,
	}

	err := s.db.WithTx(ctx, func(ctx context.Context) error {
		if err := s.repo.CreateVendor(ctx, v); err != nil {
			return err
		}
		s.audit.Record(ctx, audit.ActionCreate, "vendor", v.ID, nil, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) ListVendors(ctx context.Context, page, pageSize int) ([]maintenance.Vendor, int64, error) {
	return s.repo.ListVendors(ctx, page, pageSize)
}

func (s *Service) CreatePlan(ctx context.Context, vehicleID int64, req *maintenance.CreatePlanRequest) (*maintenance.Plan, error) {
	if req.IntervalKM == nil && req.IntervalMonth == nil {
		return nil, &xerrors.ValidationError{Field: "interval", Reason: "either interval_km or interval_month is required"}
	}

	p := &maintenance.Plan{
		VehicleID:     vehicleID,
		Name:          req.Name,
		IntervalKM:    req.IntervalKM,
		IntervalMonth: req.IntervalMonth,
		Notes:         req.Notes,
	}

	err := s.db.WithTx(ctx, func(ctx context.Context) error {
		if err := s.repo.CreatePlan(ctx, p); err != nil {
			return err
		}
		s.audit.Record(ctx, audit.ActionCreate, "maintenance_plan", p.ID, nil, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) GetPlansForVehicle(ctx context.Context, vehicleID int64) ([]maintenance.Plan, error) {
	return s.repo.GetPlansForVehicle(ctx, vehicleID)
}

func (s *Service) CreateWorkOrder(ctx context.Context, req *maintenance.CreateWorkOrderRequest) (*maintenance.WorkOrder, error) {
	wo := &maintenance.WorkOrder{
		VehicleID:   req.VehicleID,
		VendorID:    req.VendorID,
		OrderType:   req.OrderType,
		Status:      maintenance.WorkOrderOpen,
		Description: req.Description,
		OdometerKM:  req.OdometerKM,
		OpenedOn:    req.OpenedOn,
	}

	err := s.db.WithTx(ctx, func(ctx context.Context) error {
		if req.VendorID != nil {
			if _, err := s.repo.FindVendorByID(ctx, *req.VendorID); err != nil {
				if errors.Is(err, xerrors.ErrNotFound) {
					return &xerrors.NotFoundError{Entity: "vendor", ID: *req.VendorID}
				}
				return err
			}
		}
		if err := s.repo.CreateWorkOrder(ctx, wo); err != nil {
			return err
		}
		s.audit.Record(ctx, audit.ActionCreate, "work_order", wo.ID, nil, wo)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("work order opened",
		zap.Int64("work_order_id", wo.ID),
		zap.Int64("vehicle_id", wo.VehicleID))
	return wo, nil
}

// CloseWorkOrder finalizes an open order with its cost. Closing twice is a
// not-found: the WHERE status = 'open' guard matches no row.
func (s *Service) CloseWorkOrder(ctx context.Context, id int64, req *maintenance.CloseWorkOrderRequest) (*maintenance.WorkOrder, error) {
	var closed *maintenance.WorkOrder

	err := s.db.WithTx(ctx, func(ctx context.Context) error {
		wo, err := s.repo.FindWorkOrderByID(ctx, id)
		if errors.Is(err, xerrors.ErrNotFound) {
			return &xerrors.NotFoundError{Entity: "work_order", ID: id}
		}
		if err != nil {
			return err
		}
		old := *wo

		if err := s.repo.CloseWorkOrder(ctx, id, req.CostAmount, req.CompletedOn); err != nil {
			if errors.Is(err, xerrors.ErrNotFound) {
				return &xerrors.ValidationError{Field: "status", Reason: "work order is not open"}
			}
			return err
		}

		wo.Status = maintenance.WorkOrderClosed
		wo.CostAmount = &req.CostAmount
		wo.CompletedOn = &req.CompletedOn
		s.audit.Record(ctx, audit.ActionUpdate, "work_order", id, old, wo)
		closed = wo
		return nil
	})
	if err != nil {
		return nil, err
	}
	return closed, nil
}

func (s *Service) GetWorkOrdersForVehicle(ctx context.Context, vehicleID int64) ([]maintenance.WorkOrder, error) {
	return s.repo.GetWorkOrdersForVehicle(ctx, vehicleID)
}
