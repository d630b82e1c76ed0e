// internal/domain/vehicle/repository.go
package vehicle

import "context"

type Repository interface {
	// Vehicle CRUD
	Create(ctx context.Context, v *Vehicle) error
	FindByID(ctx context.Context, id int64) (*Vehicle, error)
	FindByPlateNo(ctx context.Context, plateNo string) (*Vehicle, error)
	Update(ctx context.Context, id int64, v *Vehicle) error
	List(ctx context.Context, filters *ListFilters) ([]Vehicle, int64, error)

	// LockForDispatch loads the vehicle row under a transaction-scoped
	// exclusive lock, serializing concurrent dispatch attempts on the same
	// vehicle. Must be called inside DB.WithTx.
	LockForDispatch(ctx context.Context, id int64) (*Vehicle, error)

	// Documents
	AddDocument(ctx context.Context, d *Document) error
	GetDocuments(ctx context.Context, vehicleID int64) ([]Document, error)

	// Assets
	AddAsset(ctx context.Context, a *Asset) error
	GetAssets(ctx context.Context, vehicleID *int64, page, pageSize int) ([]Asset, int64, error)
	ExistsBySerialNo(ctx context.Context, serialNo string) (bool, error)

	// Taxes / fees
	AddTaxFee(ctx context.Context, t *TaxFee) error
	GetTaxFees(ctx context.Context, vehicleID int64) ([]TaxFee, error)
}
