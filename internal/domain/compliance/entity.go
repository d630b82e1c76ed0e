package compliance

import "time"

type PolicyKind string

const (
	PolicyCompulsory PolicyKind = "compulsory"
	PolicyVoluntary  PolicyKind = "voluntary"
	PolicyOther      PolicyKind = "other"
)

// Insurance is a per-vehicle policy record. A vehicle needs at least one
// unexpired compulsory policy to be dispatchable.
type Insurance struct {
	ID         int64      `json:"id" db:"id"`
	VehicleID  int64      `json:"vehicle_id" db:"vehicle_id"`
	PolicyKind PolicyKind `json:"policy_kind" db:"policy_kind"`
	PolicyNo   *string    `json:"policy_no,omitempty" db:"policy_no"`
	InsurerID  *int64     `json:"insurer_id,omitempty" db:"insurer_id"`
	StartsOn   *time.Time `json:"starts_on,omitempty" db:"starts_on"`
	ExpiresOn  time.Time  `json:"expires_on" db:"expires_on"`
	Premium    *float64   `json:"premium,omitempty" db:"premium"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}

type InspectionKind string
type InspectionResult string

const (
	InspectionPeriodic InspectionKind = "periodic"
	InspectionEmission InspectionKind = "emission"
	InspectionOther    InspectionKind = "other"

	ResultPass    InspectionResult = "pass"
	ResultFail    InspectionResult = "fail"
	ResultPending InspectionResult = "pending"
)

// Inspection is a statutory check record. Inspection validity is reported but
// does not gate dispatch.
type Inspection struct {
	ID          int64            `json:"id" db:"id"`
	VehicleID   int64            `json:"vehicle_id" db:"vehicle_id"`
	Kind        InspectionKind   `json:"inspection_kind" db:"inspection_kind"`
	InspectedOn *time.Time       `json:"inspected_on,omitempty" db:"inspected_on"`
	Result      InspectionResult `json:"result" db:"result"`
	NextDueDate time.Time        `json:"next_due_date" db:"next_due_date"`
	StationID   *int64           `json:"station_id,omitempty" db:"station_id"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
}

type ViolationStatus string

const (
	ViolationUnpaid   ViolationStatus = "unpaid"
	ViolationPaid     ViolationStatus = "paid"
	ViolationDisputed ViolationStatus = "disputed"
)

// Violation is a traffic fine tied to a vehicle and, when known, the driver.
type Violation struct {
	ID         int64           `json:"id" db:"id"`
	VehicleID  int64           `json:"vehicle_id" db:"vehicle_id"`
	DriverID   *int64          `json:"driver_id,omitempty" db:"driver_id"`
	OccurredOn time.Time       `json:"occurred_on" db:"occurred_on"`
	Amount     float64         `json:"amount" db:"amount"`
	Points     *int            `json:"points,omitempty" db:"points"`
	Status     ViolationStatus `json:"status" db:"status"`
	PaidOn     *time.Time      `json:"paid_on,omitempty" db:"paid_on"`
	Notes      *string         `json:"notes,omitempty" db:"notes"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}

// Snapshot is a read-only projection of a vehicle's insurance and inspection
// facts, fetched by the data-access layer and handed to the pure evaluator.
type Snapshot struct {
	VehicleID   int64        `json:"vehicle_id"`
	Insurances  []Insurance  `json:"insurances"`
	Inspections []Inspection `json:"inspections"`
}

// HasValidCompulsoryInsurance reports whether at least one compulsory policy
// is unexpired as of ref. Comparison is on dates: a policy stays valid through
// the whole of its expiry day regardless of the clock time in ref.
func (s *Snapshot) HasValidCompulsoryInsurance(ref time.Time) bool {
	refDate := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	for _, ins := range s.Insurances {
		if ins.PolicyKind != PolicyCompulsory {
			continue
		}
		exp := ins.ExpiresOn
		expDate := time.Date(exp.Year(), exp.Month(), exp.Day(), 0, 0, 0, 0, time.UTC)
		if !expDate.Before(refDate) {
			return true
		}
	}
	return false
}
