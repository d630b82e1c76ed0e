// internal/service/importer/service_test.go
package importer

import (
	"context"
	"strings"
	"testing"

	"fleet-service/internal/domain/employee"
	"fleet-service/internal/domain/vehicle"
	xerrors "fleet-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeEmployeeRepo struct {
	employee.Repository
	created []employee.Employee
	byEmpNo map[string]bool
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e *employee.Employee) error {
	if f.byEmpNo == nil {
		f.byEmpNo = map[string]bool{}
	}
	if f.byEmpNo[e.EmpNo] {
		return xerrors.ErrDuplicateEntry
	}
	f.byEmpNo[e.EmpNo] = true
	e.ID = int64(len(f.created) + 1)
	f.created = append(f.created, *e)
	return nil
}

type fakeVehicleRepo struct {
	vehicle.Repository
	created []vehicle.Vehicle
	byPlate map[string]bool
}

func (f *fakeVehicleRepo) Create(ctx context.Context, v *vehicle.Vehicle) error {
	if f.byPlate == nil {
		f.byPlate = map[string]bool{}
	}
	if f.byPlate[v.PlateNo] {
		return xerrors.ErrDuplicateEntry
	}
	f.byPlate[v.PlateNo] = true
	v.ID = int64(len(f.created) + 1)
	f.created = append(f.created, *v)
	return nil
}

func TestImportEmployees(t *testing.T) {
	repo := &fakeEmployeeRepo{}
	svc := NewService(repo, &fakeVehicleRepo{}, zap.NewNop())

	csv := strings.Join([]string{
		"emp_no,name,dept_name,license_class",
		"E001,Kim Mwangi,Operations,B",
		"E002,Aisha Odhiambo,,",
		"E001,Duplicate Entry,Operations,B",
		",Missing EmpNo,Operations,B",
	}, "\n")

	result, err := svc.ImportEmployees(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "E001 already exists")
	assert.Contains(t, result.Errors[1], "line 5")

	require.Len(t, repo.created, 2)
	assert.Equal(t, "E001", repo.created[0].EmpNo)
	require.NotNil(t, repo.created[0].DeptName)
	assert.Equal(t, "Operations", *repo.created[0].DeptName)
	assert.Nil(t, repo.created[1].DeptName)
}

func TestImportVehicles(t *testing.T) {
	repo := &fakeVehicleRepo{}
	svc := NewService(&fakeEmployeeRepo{}, repo, zap.NewNop())

	csv := strings.Join([]string{
		"plate_no,make,model,year,powertrain,vehicle_type,seats",
		"KAA-001,Toyota,Hiace,2022,diesel,van,14",
		"KAA-002,Honda,PCX,2023,gasoline,motorcycle,2",
		"KAA-003,Nissan,Leaf,bad-year,electric,car,5",
	}, "\n")

	result, err := svc.ImportVehicles(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "invalid year")

	require.Len(t, repo.created, 2)
	assert.False(t, repo.created[0].HelmetRequired)
	assert.True(t, repo.created[1].HelmetRequired)
	assert.Equal(t, 14, repo.created[0].Seats)
}

func TestImportRejectsEmptyFile(t *testing.T) {
	svc := NewService(&fakeEmployeeRepo{}, &fakeVehicleRepo{}, zap.NewNop())

	_, err := svc.ImportEmployees(context.Background(), strings.NewReader("emp_no,name\n"))
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
}

func TestImportRejectsShortRows(t *testing.T) {
	svc := NewService(&fakeEmployeeRepo{}, &fakeVehicleRepo{}, zap.NewNop())

	_, err := svc.ImportEmployees(context.Background(), strings.NewReader("emp_no,name\nE001\n"))
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
}
