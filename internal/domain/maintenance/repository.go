// internal/domain/maintenance/repository.go
package maintenance

import (
	"context"
	"time"
)

type Repository interface {
	// Vendors
	CreateVendor(ctx context.Context, v *Vendor) error
	FindVendorByID(ctx context.Context, id int64) (*Vendor, error)
	ListVendors(ctx context.Context, page, pageSize int) ([]Vendor, int64, error)

	// Maintenance plans
	CreatePlan(ctx context.Context, p *Plan) error
	GetPlansForVehicle(ctx context.Context, vehicleID int64) ([]Plan, error)

	// Work orders
	CreateWorkOrder(ctx context.Context, wo *WorkOrder) error
	FindWorkOrderByID(ctx context.Context, id int64) (*WorkOrder, error)
	CloseWorkOrder(ctx context.Context, id int64, cost float64, completedOn time.Time) error
	GetWorkOrdersForVehicle(ctx context.Context, vehicleID int64) ([]WorkOrder, error)

	// GetClosedWorkOrderCost sums the cost of work orders closed within the
	// period. Read model for cost-per-km.
	GetClosedWorkOrderCost(ctx context.Context, vehicleID int64, from, to time.Time) (float64, error)
}
