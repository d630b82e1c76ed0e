package reservation

import "time"

// CreateReservationRequest books a vehicle (or queues a pending request when
// no vehicle is named yet).
type CreateReservationRequest struct {
	RequesterID int64     `json:"requester_id" binding:"required"`
	VehicleID   *int64    `json:"vehicle_id"`
	Purpose     Purpose   `json:"purpose" binding:"required,oneof=business delivery maintenance other"`
	Destination *string   `json:"destination"`
	StartTS     time.Time `json:"start_ts" binding:"required"`
	EndTS       time.Time `json:"end_ts" binding:"required"`
}

// UpdateReservationRequest is a partial update: a status change, a vehicle
// assignment, or both.
type UpdateReservationRequest struct {
	Status    *Status `json:"status" binding:"omitempty,oneof=pending approved rejected in_progress completed cancelled"`
	VehicleID *int64  `json:"vehicle_id"`
}

// CloseTripRequest finalizes a reservation with actual usage. Odometer
// readings are pointers so that a literal 0 still passes required binding.
type CloseTripRequest struct {
	VehicleID     int64     `json:"vehicle_id" binding:"required"`
	DriverID      int64     `json:"driver_id" binding:"required"`
	OdometerStart *int      `json:"odometer_start" binding:"required"`
	OdometerEnd   *int      `json:"odometer_end" binding:"required"`
	FuelLiters    *float64  `json:"fuel_liters"`
	ChargeKWh     *float64  `json:"charge_kwh"`
	Notes         *string   `json:"notes"`
	ReturnedAt    time.Time `json:"returned_at" binding:"required"`
}

// ListFilters for listing reservations
type ListFilters struct {
	RequesterID *int64  `form:"requester_id"`
	VehicleID   *int64  `form:"vehicle_id"`
	Status      *Status `form:"status"`
	From        *time.Time `form:"from" time_format:"2006-01-02"`
	To          *time.Time `form:"to" time_format:"2006-01-02"`
	Page        int     `form:"page"`
	PageSize    int     `form:"page_size"`
}

// ListResponse is a paginated reservation page with nested trips.
type ListResponse struct {
	Reservations []Reservation `json:"reservations"`
	Total        int64         `json:"total"`
	Page         int           `json:"page"`
	PageSize     int           `json:"page_size"`
	TotalPages   int           `json:"total_pages"`
}
