package reservation

import "time"

// Status is the reservation lifecycle state (persisted as a string).
type Status string

const (
	StatusPending    Status = "pending"     // requested, no vehicle claimed yet
	StatusApproved   Status = "approved"    // vehicle assigned, checks passed
	StatusRejected   Status = "rejected"    // dispatcher declined
	StatusInProgress Status = "in_progress" // vehicle out
	StatusCompleted  Status = "completed"   // trip recorded
	StatusCancelled  Status = "cancelled"   // withdrawn before use
)

// Terminal reports whether no further transition is permitted from s.
func (s Status) Terminal() bool {
	return s == StatusRejected || s == StatusCompleted || s == StatusCancelled
}

// Blocking reports whether a reservation in this state claims exclusive use
// of its vehicle for its window.
func (s Status) Blocking() bool {
	return s == StatusApproved || s == StatusInProgress
}

type Purpose string

const (
	PurposeBusiness    Purpose = "business"
	PurposeDelivery    Purpose = "delivery"
	PurposeMaintenance Purpose = "maintenance"
	PurposeOther       Purpose = "other"
)

// Reservation is a booking of a vehicle for a half-open time window
// [StartTS, EndTS). VehicleID stays nil until a dispatcher assigns one.
type Reservation struct {
	ID          int64      `json:"id" db:"id"`
	RequesterID int64      `json:"requester_id" db:"requester_id"`
	VehicleID   *int64     `json:"vehicle_id,omitempty" db:"vehicle_id"`
	Purpose     Purpose    `json:"purpose" db:"purpose"`
	Destination *string    `json:"destination,omitempty" db:"destination"`
	StartTS     time.Time  `json:"start_ts" db:"start_ts"`
	EndTS       time.Time  `json:"end_ts" db:"end_ts"`
	Status      Status     `json:"status" db:"status"`
	Trip        *Trip      `json:"trip,omitempty"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// Window reports the booked interval.
func (r *Reservation) Window() (time.Time, time.Time) {
	return r.StartTS, r.EndTS
}

// Trip records actual usage at return time. Exactly one trip per reservation;
// immutable once written.
type Trip struct {
	ID            int64     `json:"id" db:"id"`
	ReservationID int64     `json:"reservation_id" db:"reservation_id"`
	VehicleID     int64     `json:"vehicle_id" db:"vehicle_id"`
	DriverID      int64     `json:"driver_id" db:"driver_id"`
	OdometerStart int       `json:"odometer_start" db:"odometer_start"`
	OdometerEnd   int       `json:"odometer_end" db:"odometer_end"`
	FuelLiters    *float64  `json:"fuel_liters,omitempty" db:"fuel_liters"`
	ChargeKWh     *float64  `json:"charge_kwh,omitempty" db:"charge_kwh"`
	Notes         *string   `json:"notes,omitempty" db:"notes"`
	ReturnedAt    time.Time `json:"returned_at" db:"returned_at"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// DistanceKM is the odometer delta. May be negative: monotonicity is not
// enforced at closure time, only reported.
func (t *Trip) DistanceKM() int {
	return t.OdometerEnd - t.OdometerStart
}
