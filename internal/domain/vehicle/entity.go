package vehicle

import "time"

type Type string
type Status string
type Powertrain string

const (
	TypeCar        Type = "car"
	TypeMotorcycle Type = "motorcycle"
	TypeVan        Type = "van"
	TypeTruck      Type = "truck"
	TypeEVScooter  Type = "ev_scooter"
	TypeOther      Type = "other"

	StatusActive      Status = "active"
	StatusMaintenance Status = "maintenance"
	StatusIdle        Status = "idle"
	StatusRetired     Status = "retired"

	PowertrainGasoline Powertrain = "gasoline"
	PowertrainDiesel   Powertrain = "diesel"
	PowertrainElectric Powertrain = "electric"
	PowertrainHybrid   Powertrain = "hybrid"
)

// Vehicle represents a fleet vehicle. Only active vehicles are dispatchable.
type Vehicle struct {
	ID             int64      `json:"id" db:"id"`
	PlateNo        string     `json:"plate_no" db:"plate_no"`
	VIN            *string    `json:"vin,omitempty" db:"vin"`
	Make           string     `json:"make" db:"make"`
	Model          string     `json:"model" db:"model"`
	Year           int        `json:"year" db:"year"`
	Powertrain     Powertrain `json:"powertrain" db:"powertrain"`
	DisplacementCC *int       `json:"displacement_cc,omitempty" db:"displacement_cc"`
	Seats          int        `json:"seats" db:"seats"`
	Type           Type       `json:"vehicle_type" db:"vehicle_type"`
	OwnedOrLeased  string     `json:"owned_or_leased" db:"owned_or_leased"`
	AcquiredOn     *time.Time `json:"acquired_on,omitempty" db:"acquired_on"`
	Status         Status     `json:"status" db:"status"`
	HelmetRequired bool       `json:"helmet_required" db:"helmet_required"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// Dispatchable reports whether the registry status alone permits dispatch.
func (v *Vehicle) Dispatchable() bool {
	return v.Status == StatusActive
}

type DocumentType string

const (
	DocRegistration DocumentType = "registration"
	DocInsurance    DocumentType = "insurance"
	DocContract     DocumentType = "contract"
	DocFine         DocumentType = "fine"
	DocInspection   DocumentType = "inspection"
	DocEmission     DocumentType = "emission"
	DocInvoice      DocumentType = "invoice"
	DocOther        DocumentType = "other"
)

// Document is an index entry for a stored vehicle file (policy scan,
// registration papers, fine, ...).
type Document struct {
	ID        int64        `json:"id" db:"id"`
	VehicleID int64        `json:"vehicle_id" db:"vehicle_id"`
	DocType   DocumentType `json:"doc_type" db:"doc_type"`
	FileURL   string       `json:"file_url" db:"file_url"`
	SHA256    *string      `json:"sha256,omitempty" db:"sha256"`
	IssuedOn  *time.Time   `json:"issued_on,omitempty" db:"issued_on"`
	ExpiresOn *time.Time   `json:"expires_on,omitempty" db:"expires_on"`
	Tags      *string      `json:"tags,omitempty" db:"tags"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
}

type AssetType string
type AssetStatus string

const (
	AssetHelmet     AssetType = "helmet"
	AssetLock       AssetType = "lock"
	AssetRaincoat   AssetType = "raincoat"
	AssetPhoneMount AssetType = "phone_mount"
	AssetDashcam    AssetType = "dashcam"
	AssetOther      AssetType = "other"

	AssetAvailable   AssetStatus = "available"
	AssetInUse       AssetStatus = "in_use"
	AssetMaintenance AssetStatus = "maintenance"
	AssetRetired     AssetStatus = "retired"
)

// Asset is a loose piece of equipment (helmet, lock, ...) optionally bound to
// a vehicle; unbound assets sit in the shared pool.
type Asset struct {
	ID        int64       `json:"id" db:"id"`
	VehicleID *int64      `json:"vehicle_id,omitempty" db:"vehicle_id"`
	AssetType AssetType   `json:"asset_type" db:"asset_type"`
	SerialNo  string      `json:"serial_no" db:"serial_no"`
	ExpiresOn *time.Time  `json:"expires_on,omitempty" db:"expires_on"`
	Status    AssetStatus `json:"status" db:"status"`
	Notes     *string     `json:"notes,omitempty" db:"notes"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
}

// TaxFee is a fiscal record (license tax / fuel fee) covering a period.
type TaxFee struct {
	ID          int64      `json:"id" db:"id"`
	VehicleID   int64      `json:"vehicle_id" db:"vehicle_id"`
	FeeType     string     `json:"fee_type" db:"fee_type"` // license_tax | fuel_fee
	PeriodStart time.Time  `json:"period_start" db:"period_start"`
	PeriodEnd   time.Time  `json:"period_end" db:"period_end"`
	Amount      float64    `json:"amount" db:"amount"`
	PaidOn      *time.Time `json:"paid_on,omitempty" db:"paid_on"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}
