package employee

import "time"

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Employee represents a member of staff allowed to request vehicles.
type Employee struct {
	ID           int64      `json:"id" db:"id"`
	EmpNo        string     `json:"emp_no" db:"emp_no"`
	Name         string     `json:"name" db:"name"`
	DeptName     *string    `json:"dept_name,omitempty" db:"dept_name"`
	LicenseClass *string    `json:"license_class,omitempty" db:"license_class"`
	Status       Status     `json:"status" db:"status"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// CreateEmployeeRequest for registering a new employee
type CreateEmployeeRequest struct {
	EmpNo        string  `json:"emp_no" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	DeptName     *string `json:"dept_name"`
	LicenseClass *string `json:"license_class"`
}

// UpdateEmployeeRequest for partial updates
type UpdateEmployeeRequest struct {
	Name         *string `json:"name"`
	DeptName     *string `json:"dept_name"`
	LicenseClass *string `json:"license_class"`
	Status       *Status `json:"status"`
}

// ListFilters for listing employees
type ListFilters struct {
	Status   *Status `form:"status"`
	Search   string  `form:"search"`
	Page     int     `form:"page"`
	PageSize int     `form:"page_size"`
}
