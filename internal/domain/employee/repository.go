// internal/domain/employee/repository.go
package employee

import "context"

type Repository interface {
	Create(ctx context.Context, e *Employee) error
	FindByID(ctx context.Context, id int64) (*Employee, error)
	FindByEmpNo(ctx context.Context, empNo string) (*Employee, error)
	Update(ctx context.Context, id int64, e *Employee) error
	List(ctx context.Context, filters *ListFilters) ([]Employee, int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
}
