package compliance

import "time"

// CreateInsuranceRequest records a policy for a vehicle.
type CreateInsuranceRequest struct {
	VehicleID  int64      `json:"vehicle_id" binding:"required"`
	PolicyKind PolicyKind `json:"policy_kind" binding:"required,oneof=compulsory voluntary other"`
	PolicyNo   *string    `json:"policy_no"`
	InsurerID  *int64     `json:"insurer_id"`
	StartsOn   *time.Time `json:"starts_on"`
	ExpiresOn  time.Time  `json:"expires_on" binding:"required"`
	Premium    *float64   `json:"premium"`
}

// CreateInspectionRequest records a statutory check.
type CreateInspectionRequest struct {
	VehicleID   int64            `json:"vehicle_id" binding:"required"`
	Kind        InspectionKind   `json:"inspection_kind" binding:"required,oneof=periodic emission other"`
	InspectedOn *time.Time       `json:"inspected_on"`
	Result      InspectionResult `json:"result" binding:"required,oneof=pass fail pending"`
	NextDueDate time.Time        `json:"next_due_date" binding:"required"`
	StationID   *int64           `json:"station_id"`
}

// CreateViolationRequest records a traffic fine.
type CreateViolationRequest struct {
	VehicleID  int64      `json:"vehicle_id" binding:"required"`
	DriverID   *int64     `json:"driver_id"`
	OccurredOn time.Time  `json:"occurred_on" binding:"required"`
	Amount     float64    `json:"amount" binding:"required"`
	Points     *int       `json:"points"`
	Notes      *string    `json:"notes"`
	PaidOn     *time.Time `json:"paid_on"`
}

// ExpiringItems groups records whose validity ends inside a look-ahead window.
type ExpiringItems struct {
	Insurances  []Insurance  `json:"insurances"`
	Inspections []Inspection `json:"inspections"`
}
