// internal/service/compliance/records.go
package compliance

import (
	"context"

	"fleet-service/internal/domain/audit"
	"fleet-service/internal/domain/compliance"

	"go.uber.org/zap"
)

type TxRunner interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Recorder interface {
	Record(ctx context.Context, action audit.Action, entity string, entityID int64, oldValue, newValue interface{})
}

// Records manages the insurance / inspection / violation ledger the dispatch
// gate reads from.
type Records struct {
	db     TxRunner
	repo   compliance.Repository
	audit  Recorder
	logger *zap.Logger
}

func NewRecords(db TxRunner, repo compliance.Repository, auditRec Recorder, logger *zap.Logger) *Records {
	return &Records{db: db, repo: repo, audit: auditRec, logger: logger}
}

func (r *Records) CreateInsurance(ctx context.Context, req *compliance.CreateInsuranceRequest) (*compliance.Insurance, error) {
	ins := &compliance.Insurance{
		VehicleID:  req.VehicleID,
		PolicyKind: req.PolicyKind,
		PolicyNo:   req.PolicyNo,
		InsurerID:  req.InsurerID,
		StartsOn:   req.StartsOn,
		ExpiresOn:  req.ExpiresOn,
		Premium:    req.Premium,
	}

	err := r.db.WithTx(ctx, func(ctx context.Context) error {
		if err := r.repo.CreateInsurance(ctx, ins); err != nil {
			return err
		}
		r.audit.Record(ctx, audit.ActionCreate, "insurance", ins.ID, nil, ins)
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("insurance recorded",
		zap.Int64("vehicle_id", ins.VehicleID),
		zap.String("policy_kind", string(ins.PolicyKind)))
	return ins, nil
}

func (r *Records) GetInsurances(ctx context.Context, vehicleID int64) ([]compliance.Insurance, error) {
	return r.repo.GetInsurances(ctx, vehicleID)
}

func (r *Records) CreateInspection(ctx context.Context, req *compliance.CreateInspectionRequest) (*compliance.Inspection, error) {
	insp := &compliance.Inspection{
		VehicleID:   req.VehicleID,
		Kind:        req.Kind,
		InspectedOn: req.InspectedOn,
		Result:      req.Result,
		NextDueDate: req.NextDueDate,
		StationID:   req.StationID,
	}

	err := r.db.WithTx(ctx, func(ctx context.Context) error {
		if err := r.repo.CreateInspection(ctx, insp); err != nil {
			return err
		}
		r.audit.Record(ctx, audit.ActionCreate, "inspection", insp.ID, nil, insp)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return insp, nil
}

func (r *Records) GetInspections(ctx context.Context, vehicleID int64) ([]compliance.Inspection, error) {
	return r.repo.GetInspections(ctx, vehicleID)
}

func (r *Records) CreateViolation(ctx context.Context, req *compliance.CreateViolationRequest) (*compliance.Violation, error) {
	v := &compliance.Violation{
		VehicleID:  req.VehicleID,
		DriverID:   req.DriverID,
		OccurredOn: req.OccurredOn,
		Amount:     req.Amount,
		Points:     req.Points,
		Notes:      req.Notes,
		PaidOn:     req.PaidOn,
		Status:     compliance.ViolationUnpaid,
	}
	if req.PaidOn != nil {
		v.Status = compliance.ViolationPaid
	}

	err := r.db.WithTx(ctx, func(ctx context.Context) error {
		if err := r.repo.CreateViolation(ctx, v); err != nil {
			return err
		}
		r.audit.Record(ctx, audit.ActionCreate, "violation", v.ID, nil, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *Records) GetViolations(ctx context.Context, vehicleID int64) ([]compliance.Violation, error) {
	return r.repo.GetViolationsByVehicle(ctx, vehicleID)
}

// GetSnapshot exposes the compliance projection for dashboards; inspection
// due state shows up here even though it does not gate dispatch.
func (r *Records) GetSnapshot(ctx context.Context, vehicleID int64) (*compliance.Snapshot, error) {
	return r.repo.GetSnapshot(ctx, vehicleID)
}
