// internal/service/vehicle/service.go
package vehicle

import (
	"context"
	"errors"

	"fleet-service/internal/domain/audit"
	"fleet-service/internal/domain/vehicle"
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
	repo   vehicle.Repository
	audit  Recorder
	logger *zap.Logger
}

func NewService(db TxRunner, repo vehicle.Repository, auditRec Recorder, logger *zap.Logger) *Service {
	return &Service{db: db, repo: repo, audit: auditRec, logger: logger}
}

func (s *Service) Create(ctx context.Context, req *vehicle.CreateVehicleRequest) (*vehicle.Vehicle, error) {
	v := &vehicle.Vehicle{
		PlateNo:        req.PlateNo,
		VIN:            req.VIN,
		Make:           req.Make,
		Model:          req.Model,
		Year:           req.Year,
		Powertrain:     req.Powertrain,
		DisplacementCC: req.DisplacementCC,
		Seats:          req.Seats,
		Type:           req.Type,
		OwnedOrLeased:  req.OwnedOrLeased,
		AcquiredOn:     req.AcquiredOn,
		Status:         vehicle.StatusActive,
	}
	// two-wheelers always require a helmet
	if v.Type == vehicle.TypeMotorcycle || v.Type == vehicle.TypeEVScooter {
		v.HelmetRequired = true
	}

	err := s.db.WithTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, v); err != nil {
			if errors.Is(err, xerrors.ErrDuplicateEntry) {
				return &xerrors.ValidationError{Field: "plate_no", Reason: "plate number already registered"}
			}
			return err
		}
		s.audit.Record(ctx, audit.ActionCreate, "vehicle", v.ID, nil, v)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("vehicle created", zap.Int64("vehicle_id", v.ID), zap.String("plate_no", v.PlateNo))
	return v, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*vehicle.Vehicle, error) {
	v, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, xerrors.ErrNotFound) {
		return nil, &xerrors.NotFoundError{Entity: "vehicle", ID: id}
	}
	return v, err
}

func (s *Service) Update(ctx context.Context, id int64, req *vehicle.UpdateVehicleRequest) (*vehicle.Vehicle, error) {
	var updated *vehicle.Vehicle

	err := s.db.WithTx(ctx, func(ctx context.Context) error {
		v, err := s.repo.FindByID(ctx, id)
		if errors.Is(err, xerrors.ErrNotFound) {
			return &xerrors.NotFoundError{Entity: "vehicle", ID: id}
		}
		if err != nil {
			return err
		}
		old := *v

		if req.Make != nil {
			v.Make = *req.Make
		}
		if req.Model != nil {
			v.Model = *req.Model
		}
		if req.Year != nil {
			v.Year = *req.Year
		}
		if req.Powertrain != nil {
			v.Powertrain = *req.Powertrain
		}
		if req.DisplacementCC != nil {
			v.DisplacementCC = req.DisplacementCC
		}
		if req.Seats != nil {
			v.Seats = *req.Seats
		}
		if req.OwnedOrLeased != nil {
			v.OwnedOrLeased = *req.OwnedOrLeased
		}
		if req.Status != nil {
			v.Status = *req.Status
		}

		if err := s.repo.Update(ctx, id, v); err != nil {
			return err
		}
		s.audit.Record(ctx, audit.ActionUpdate, "vehicle", id, old, v)
		updated = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) List(ctx context.Context, filters *vehicle.ListFilters) ([]vehicle.Vehicle, int64, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 || filters.PageSize > 100 {
		filters.PageSize = 20
	}
	return s.repo.List(ctx, filters)
}

// AddDocument indexes an uploaded file against a vehicle.
func (s *Service) AddDocument(ctx context.Context, vehicleID int64, req *vehicle.CreateDocumentRequest) (*vehicle.Document, error) {
	d := &vehicle.Document{
		VehicleID: vehicleID,
		DocType:   req.DocType,
		FileURL:   req.FileURL,
		SHA256:    req.SHA256,
		IssuedOn:  req.IssuedOn,
		ExpiresOn: req.ExpiresOn,
		Tags:      req.Tags,
	}

	err := s.db.WithTx(ctx, func(ctx context.Context) error {
		if _, err := s.repo.FindByID(ctx, vehicleID); err != nil {
			if errors.Is(err, xerrors.ErrNotFound) {
				return &xerrors.NotFoundError{Entity: "vehicle", ID: vehicleID}
			}
			return err
		}
		if err := s.repo.AddDocument(ctx, d); err != nil {
			return err
		}
		s.audit.Record(ctx, audit.ActionCreate, "vehicle_document", d.ID, nil, d)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) GetDocuments(ctx context.Context, vehicleID int64) ([]vehicle.Document, error) {
	return s.repo.GetDocuments(ctx, vehicleID)
}

func (s *Service) AddAsset(ctx context.Context, req *vehicle.CreateAssetRequest) (*vehicle.Asset, error) {
	a := &vehicle.Asset{
		VehicleID: req.VehicleID,
		AssetType: req.AssetType,
		SerialNo:  req.SerialNo,
		ExpiresOn: req.ExpiresOn,
		Status:    vehicle.AssetAvailable,
		Notes:     req.Notes,
	}

	err := s.db.WithTx(ctx, func(ctx context.Context) error {
		taken, err := s.repo.ExistsBySerialNo(ctx, req.SerialNo)
		if err != nil {
			return err
		}
		if taken {
			return &xerrors.ValidationError{Field: "serial_no", Reason: "serial number already registered"}
		}
		if err := s.repo.AddAsset(ctx, a); err != nil {
			return err
		}
		s.audit.Record(ctx, audit.ActionCreate, "asset", a.ID, nil, a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) GetAssets(ctx context.Context, vehicleID *int64, page, pageSize int) ([]vehicle.Asset, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.repo.GetAssets(ctx, vehicleID, page, pageSize)
}

func (s *Service) AddTaxFee(ctx context.Context, req *vehicle.CreateTaxFeeRequest) (*vehicle.TaxFee, error) {
	if !req.PeriodStart.Before(req.PeriodEnd) {
		return nil, &xerrors.ValidationError{Field: "period_start", Reason: "period start must be before period end"}
	}

	t := &vehicle.TaxFee{
		VehicleID:   req.VehicleID,
		FeeType:     req.FeeType,
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
		Amount:      req.Amount,
		PaidOn:      req.PaidOn,
	}

	err := s.db.WithTx(ctx, func(ctx context.Context) error {
		if err := s.repo.AddTaxFee(ctx, t); err != nil {
			return err
		}
		s.audit.Record(ctx, audit.ActionCreate, "tax_fee", t.ID, nil, t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) GetTaxFees(ctx context.Context, vehicleID int64) ([]vehicle.TaxFee, error) {
	return s.repo.GetTaxFees(ctx, vehicleID)
}
