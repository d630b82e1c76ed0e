package vehicle

import "time"

// CreateVehicleRequest for registering a new vehicle
type CreateVehicleRequest struct {
	PlateNo        string     `json:"plate_no" binding:"required"`
	VIN            *string    `json:"vin"`
	Make           string     `json:"make" binding:"required"`
	Model          string     `json:"model" binding:"required"`
	Year           int        `json:"year" binding:"required,min=1950,max=2100"`
	Powertrain     Powertrain `json:"powertrain" binding:"required"`
	DisplacementCC *int       `json:"displacement_cc"`
	Seats          int        `json:"seats"`
	Type           Type       `json:"vehicle_type" binding:"required"`
	OwnedOrLeased  string     `json:"owned_or_leased"`
	AcquiredOn     *time.Time `json:"acquired_on"`
}

// UpdateVehicleRequest for partial updates
type UpdateVehicleRequest struct {
	Make           *string     `json:"make"`
	Model          *string     `json:"model"`
	Year           *int        `json:"year" binding:"omitempty,min=1950,max=2100"`
	Powertrain     *Powertrain `json:"powertrain"`
	DisplacementCC *int        `json:"displacement_cc"`
	Seats          *int        `json:"seats" binding:"omitempty,min=1"`
	OwnedOrLeased  *string     `json:"owned_or_leased"`
	Status         *Status     `json:"status"`
}

// ListFilters for listing/searching vehicles
type ListFilters struct {
	Type     *Type   `form:"vehicle_type"`
	Status   *Status `form:"status"`
	Search   string  `form:"search"` // plate, make, model
	Page     int     `form:"page"`
	PageSize int     `form:"page_size"`
}

// CreateDocumentRequest indexes an already-uploaded file against a vehicle.
type CreateDocumentRequest struct {
	DocType   DocumentType `json:"doc_type" binding:"required"`
	FileURL   string       `json:"file_url" binding:"required"`
	SHA256    *string      `json:"sha256"`
	IssuedOn  *time.Time   `json:"issued_on"`
	ExpiresOn *time.Time   `json:"expires_on"`
	Tags      *string      `json:"tags"`
}

// CreateAssetRequest registers a piece of equipment.
type CreateAssetRequest struct {
	VehicleID *int64     `json:"vehicle_id"`
	AssetType AssetType  `json:"asset_type" binding:"required"`
	SerialNo  string     `json:"serial_no" binding:"required"`
	ExpiresOn *time.Time `json:"expires_on"`
	Notes     *string    `json:"notes"`
}

// CreateTaxFeeRequest records a fiscal entry for a vehicle.
type CreateTaxFeeRequest struct {
	VehicleID   int64      `json:"vehicle_id" binding:"required"`
	FeeType     string     `json:"fee_type" binding:"required,oneof=license_tax fuel_fee"`
	PeriodStart time.Time  `json:"period_start" binding:"required"`
	PeriodEnd   time.Time  `json:"period_end" binding:"required"`
	Amount      float64    `json:"amount" binding:"required"`
	PaidOn      *time.Time `json:"paid_on"`
}
