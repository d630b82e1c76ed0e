package maintenance

import "time"

type VendorCategory string

const (
	VendorGarage     VendorCategory = "garage"
	VendorInsurer    VendorCategory = "insurer"
	VendorInspection VendorCategory = "inspection_station"
	VendorLeasing    VendorCategory = "leasing"
	VendorOther      VendorCategory = "other"
)

// Vendor is an external supplier: repair shop, insurer, inspection station.
type Vendor struct {
	ID        int64          `json:"id" db:"id"`
	Name      string         `json:"name" db:"name"`
	Category  VendorCategory `json:"category" db:"category"`
	Phone     *string        `json:"phone,omitempty" db:"phone"`
	Email     *string        `json:"email,omitempty" db:"email"`
	Address   *string        `json:"address,omitempty" db:"address"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
}

// Plan is a recurring maintenance rule for a vehicle, by distance or time.
type Plan struct {
	ID            int64     `json:"id" db:"id"`
	VehicleID     int64     `json:"vehicle_id" db:"vehicle_id"`
	Name          string    `json:"name" db:"name"`
	IntervalKM    *int      `json:"interval_km,omitempty" db:"interval_km"`
	IntervalMonth *int      `json:"interval_month,omitempty" db:"interval_month"`
	Notes         *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

type WorkOrderType string
type WorkOrderStatus string

const (
	WorkMaintenance WorkOrderType = "maintenance"
	WorkRepair      WorkOrderType = "repair"
	WorkInspection  WorkOrderType = "inspection"

	WorkOrderOpen   WorkOrderStatus = "open"
	WorkOrderClosed WorkOrderStatus = "closed"
)

// WorkOrder is a unit of shop work against a vehicle. Closed orders carry the
// cost that feeds the cost-per-km report.
type WorkOrder struct {
	ID          int64           `json:"id" db:"id"`
	VehicleID   int64           `json:"vehicle_id" db:"vehicle_id"`
	VendorID    *int64          `json:"vendor_id,omitempty" db:"vendor_id"`
	OrderType   WorkOrderType   `json:"order_type" db:"order_type"`
	Status      WorkOrderStatus `json:"status" db:"status"`
	Description *string         `json:"description,omitempty" db:"description"`
	OdometerKM  *int            `json:"odometer_km,omitempty" db:"odometer_km"`
	CostAmount  *float64        `json:"cost_amount,omitempty" db:"cost_amount"`
	OpenedOn    time.Time       `json:"opened_on" db:"opened_on"`
	CompletedOn *time.Time      `json:"completed_on,omitempty" db:"completed_on"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// CreateVendorRequest registers a supplier.
type CreateVendorRequest struct {
	Name     string         `json:"name" binding:"required"`
	Category VendorCategory `json:"category" binding:"required,oneof=garage insurer inspection_station leasing other"`
	Phone    *string        `json:"phone"`
	Email    *string        `json:"email"`
	Address  *string        `json:"address"`
}

// CreatePlanRequest attaches a maintenance rule to a vehicle.
type CreatePlanRequest struct {
	Name          string  `json:"name" binding:"required"`
	IntervalKM    *int    `json:"interval_km"`
	IntervalMonth *int    `json:"interval_month"`
	Notes         *string `json:"notes"`
}

// CreateWorkOrderRequest opens a work order.
type CreateWorkOrderRequest struct {
	VehicleID   int64         `json:"vehicle_id" binding:"required"`
	VendorID    *int64        `json:"vendor_id"`
	OrderType   WorkOrderType `json:"order_type" binding:"required,oneof=maintenance repair inspection"`
	Description *string       `json:"description"`
	OdometerKM  *int          `json:"odometer_km"`
	OpenedOn    time.Time     `json:"opened_on" binding:"required"`
}

// CloseWorkOrderRequest closes an order with its final cost.
type CloseWorkOrderRequest struct {
	CostAmount  float64   `json:"cost_amount" binding:"required"`
	CompletedOn time.Time `json:"completed_on" binding:"required"`
}
