// internal/service/importer/service.go
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"fleet-service/internal/domain/employee"
	"fleet-service/internal/domain/vehicle"
	xerrors "fleet-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// Result reports a bulk import outcome: how many rows landed and what went
// wrong with the rest. Rows fail independently.
type Result struct {
	Imported int      `json:"imported"`
	Errors   []string `json:"errors"`
}

// Service loads employees and vehicles from CSV files. It is read-only with
// respect to reservations and trips.
type Service struct {
	employees employee.Repository
	vehicles  vehicle.Repository
	logger    *zap.Logger
}

func NewService(employees employee.Repository, vehicles vehicle.Repository, logger *zap.Logger) *Service {
	return &Service{employees: employees, vehicles: vehicles, logger: logger}
}

// ImportEmployees reads rows of: emp_no, name, dept_name, license_class.
// The first row is a header and is skipped.
func (s *Service) ImportEmployees(ctx context.Context, r io.Reader) (*Result, error) {
	rows, err := readCSV(r, 2)
	if err != nil {
		return nil, err
	}

	result := &Result{Errors: []string{}}
	for i, row := range rows {
		line := i + 2 // 1-based, after the header

		emp := &employee.Employee{
			EmpNo:  strings.TrimSpace(row[0]),
			Name:   strings.TrimSpace(row[1]),
			Status: employee.StatusActive,
		}
		if emp.EmpNo == "" || emp.Name == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: emp_no and name are required", line))
			continue
		}
		if len(row) > 2 && strings.TrimSpace(row[2]) != "" {
			dept := strings.TrimSpace(row[2])
			emp.DeptName = &dept
		}
		if len(row) > 3 && strings.TrimSpace(row[3]) != "" {
			lic := strings.TrimSpace(row[3])
			emp.LicenseClass = &lic
		}

		if err := s.employees.Create(ctx, emp); err != nil {
			if xerrors.Is(err, xerrors.ErrDuplicateEntry) {
				result.Errors = append(result.Errors, fmt.Sprintf("line %d: emp_no %s already exists", line, emp.EmpNo))
				continue
			}
			return nil, err
		}
		result.Imported++
	}

	s.logger.Info("employee import finished",
		zap.Int("imported", result.Imported),
		zap.Int("failed", len(result.Errors)))
	return result, nil
}

// ImportVehicles reads rows of: plate_no, make, model, year, powertrain,
// vehicle_type, seats.
func (s *Service) ImportVehicles(ctx context.Context, r io.Reader) (*Result, error) {
	rows, err := readCSV(r, 6)
	if err != nil {
		return nil, err
	}

	result := &Result{Errors: []string{}}
	for i, row := range rows {
		line := i + 2

		v := &vehicle.Vehicle{
			PlateNo:    strings.TrimSpace(row[0]),
			Make:       strings.TrimSpace(row[1]),
			Model:      strings.TrimSpace(row[2]),
			Powertrain: vehicle.Powertrain(strings.TrimSpace(row[4])),
			Type:       vehicle.Type(strings.TrimSpace(row[5])),
			Status:     vehicle.StatusActive,
		}
		if v.PlateNo == "" || v.Make == "" || v.Model == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: plate_no, make and model are required", line))
			continue
		}

		year, err := strconv.Atoi(strings.TrimSpace(row[3]))
		if err != nil || year < 1950 || year > 2100 {
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: invalid year %q", line, row[3]))
			continue
		}
		v.Year = year

		if len(row) > 6 && strings.TrimSpace(row[6]) != "" {
			seats, err := strconv.Atoi(strings.TrimSpace(row[6]))
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("line %d: invalid seats %q", line, row[6]))
				continue
			}
			v.Seats = seats
		}
		if v.Type == vehicle.TypeMotorcycle || v.Type == vehicle.TypeEVScooter {
			v.HelmetRequired = true
		}

		if err := s.vehicles.Create(ctx, v); err != nil {
			if xerrors.Is(err, xerrors.ErrDuplicateEntry) {
				result.Errors = append(result.Errors, fmt.Sprintf("line %d: plate_no %s already exists", line, v.PlateNo))
				continue
			}
			return nil, err
		}
		result.Imported++
	}

	s.logger.Info("vehicle import finished",
		zap.Int("imported", result.Imported),
		zap.Int("failed", len(result.Errors)))
	return result, nil
}

func readCSV(r io.Reader, minFields int) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &xerrors.ValidationError{Field: "file", Reason: "malformed CSV: " + err.Error()}
	}
	if len(records) < 2 {
		return nil, &xerrors.ValidationError{Field: "file", Reason: "file has no data rows"}
	}

	rows := records[1:]
	for i, row := range rows {
		if len(row) < minFields {
			return nil, &xerrors.ValidationError{
				Field:  "file",
				Reason: fmt.Sprintf("line %d: expected at least %d columns, got %d", i+2, minFields, len(row)),
			}
		}
	}
	return rows, nil
}
