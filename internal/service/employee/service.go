// internal/service/employee/service.go
package employee

import (
	"context"
	"errors"

	"fleet-service/internal/domain/audit"
	"fleet-service/internal/domain/employee"
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
	repo   employee.Repository
	audit  Recorder
	logger *zap.Logger
}

func NewService(db TxRunner, repo employee.Repository, auditRec Recorder, logger *zap.Logger) *Service {
	return &Service{db: db, repo: repo, audit: auditRec, logger: logger}
}

func (s *Service) Create(ctx context.Context, req *employee.CreateEmployeeRequest) (*employee.Employee, error) {
	emp := &employee.Employee{
		EmpNo:        req.EmpNo,
		Name:         req.Name,
		DeptName:     req.DeptName,
		LicenseClass: req.LicenseClass,
		Status:       employee.StatusActive,
	}

	err := s.db.WithTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, emp); err != nil {
			if errors.Is(err, xerrors.ErrDuplicateEntry) {
				return &xerrors.ValidationError{Field: "emp_no", Reason: "employee number already registered"}
			}
			return err
		}
		s.audit.Record(ctx, audit.ActionCreate, "employee", emp.ID, nil, emp)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("employee created", zap.Int64("employee_id", emp.ID), zap.String("emp_no", emp.EmpNo))
	return emp, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*employee.Employee, error) {
	emp, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, xerrors.ErrNotFound) {
		return nil, &xerrors.NotFoundError{Entity: "employee", ID: id}
	}
	return emp, err
}

func (s *Service) Update(ctx context.Context, id int64, req *employee.UpdateEmployeeRequest) (*employee.Employee, error) {
	var updated *employee.Employee

	err := s.db.WithTx(ctx, func(ctx context.Context) error {
		emp, err := s.repo.FindByID(ctx, id)
		if errors.Is(err, xerrors.ErrNotFound) {
			return &xerrors.NotFoundError{Entity: "employee", ID: id}
		}
		if err != nil {
			return err
		}
		old := *emp

		if req.Name != nil {
			emp.Name = *req.Name
		}
		if req.DeptName != nil {
			emp.DeptName = req.DeptName
		}
		if req.LicenseClass != nil {
			emp.LicenseClass = req.LicenseClass
		}
		if req.Status != nil {
			emp.Status = *req.Status
		}

		if err := s.repo.Update(ctx, id, emp); err != nil {
			return err
		}
		s.audit.Record(ctx, audit.ActionUpdate, "employee", id, old, emp)
		updated = emp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) List(ctx context.Context, filters *employee.ListFilters) ([]employee.Employee, int64, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 || filters.PageSize > 100 {
		filters.PageSize = 20
	}
	return s.repo.List(ctx, filters)
}
