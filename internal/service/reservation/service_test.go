// internal/service/reservation/service_test.go
package reservation

import (
	"context"
	"testing"
	"time"

	"fleet-service/internal/domain/audit"
	"fleet-service/internal/domain/compliance"
	"fleet-service/internal/domain/employee"
	"fleet-service/internal/domain/reservation"
	"fleet-service/internal/domain/vehicle"
	xerrors "fleet-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// --- fakes ---

type fakeTx struct{}

func (fakeTx) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeReservationRepo struct {
	reservation.Repository
	store  map[int64]*reservation.Reservation
	nextID int64
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{store: map[int64]*reservation.Reservation{}, nextID: 1}
}

func (f *fakeReservationRepo) Create(ctx context.Context, r *reservation.Reservation) error {
	r.ID = f.nextID
	f.nextID++
	r.CreatedAt = time.Now()
	cp := *r
	f.store[r.ID] = &cp
	return nil
}

func (f *fakeReservationRepo) FindByID(ctx context.Context, id int64) (*reservation.Reservation, error) {
	r, ok := f.store[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeReservationRepo) LockForUpdate(ctx context.Context, id int64) (*reservation.Reservation, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeReservationRepo) UpdateStatus(ctx context.Context, id int64, status reservation.Status, vehicleID *int64) error {
	r, ok := f.store[id]
	if !ok {
		return xerrors.ErrNotFound
	}
	r.Status = status
	r.VehicleID = vehicleID
	return nil
}

func (f *fakeReservationRepo) FindBlocking(ctx context.Context, vehicleID int64, excludeID int64) ([]reservation.Reservation, error) {
	var out []reservation.Reservation
	for id := int64(1); id < f.nextID; id++ {
		r, ok := f.store[id]
		if !ok || r.ID == excludeID || r.VehicleID == nil || *r.VehicleID != vehicleID {
			continue
		}
		if r.Status.Blocking() {
			out = append(out, *r)
		}
	}
	return out, nil
}

type fakeVehicleRepo struct {
	vehicle.Repository
	vehicles map[int64]*vehicle.Vehicle
}

func (f *fakeVehicleRepo) LockForDispatch(ctx context.Context, id int64) (*vehicle.Vehicle, error) {
	v, ok := f.vehicles[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return v, nil
}

type fakeEmployeeRepo struct {
	employee.Repository
	ids map[int64]bool
}

func (f *fakeEmployeeRepo) Exists(ctx context.Context, id int64) (bool, error) {
	return f.ids[id], nil
}

type fakeComplianceRepo struct {
	compliance.Repository
	snapshots map[int64]*compliance.Snapshot
}

func (f *fakeComplianceRepo) GetSnapshot(ctx context.Context, vehicleID int64) (*compliance.Snapshot, error) {
	if s, ok := f.snapshots[vehicleID]; ok {
		return s, nil
	}
	return &compliance.Snapshot{VehicleID: vehicleID}, nil
}

type recordedCall struct {
	action   audit.Action
	entity   string
	entityID int64
}

type fakeRecorder struct {
	calls []recordedCall
}

func (f *fakeRecorder) Record(ctx context.Context, action audit.Action, entity string, entityID int64, oldValue, newValue interface{}) {
	f.calls = append(f.calls, recordedCall{action: action, entity: entity, entityID: entityID})
}

// --- fixtures ---

type fixture struct {
	svc      *Service
	resRepo  *fakeReservationRepo
	vehRepo  *fakeVehicleRepo
	recorder *fakeRecorder
}

func setup(t *testing.T) *fixture {
	t.Helper()

	vehRepo := &fakeVehicleRepo{vehicles: map[int64]*vehicle.Vehicle{
		1: {ID: 1, PlateNo: "FLT-001", Status: vehicle.StatusActive},
		2: {ID: 2, PlateNo: "FLT-002", Status: vehicle.StatusMaintenance},
	}}
	compRepo := &fakeComplianceRepo{snapshots: map[int64]*compliance.Snapshot{
		1: {VehicleID: 1, Insurances: []compliance.Insurance{
			{ID: 1, VehicleID: 1, PolicyKind: compliance.PolicyCompulsory, ExpiresOn: ts("2025-12-31T00:00:00Z")},
		}},
		2: {VehicleID: 2, Insurances: []compliance.Insurance{
			{ID: 2, VehicleID: 2, PolicyKind: compliance.PolicyCompulsory, ExpiresOn: ts("2025-12-31T00:00:00Z")},
		}},
	}}
	resRepo := newFakeReservationRepo()
	recorder := &fakeRecorder{}

	svc := NewService(
		fakeTx{},
		resRepo,
		vehRepo,
		&fakeEmployeeRepo{ids: map[int64]bool{10: true, 11: true}},
		compRepo,
		recorder,
		zap.NewNop(),
	)
	svc.now = func() time.Time { return ts("2025-06-01T00:00:00Z") }

	return &fixture{svc: svc, resRepo: resRepo, vehRepo: vehRepo, recorder: recorder}
}

func createReq(vehicleID *int64, start, end string) *reservation.CreateReservationRequest {
	return &reservation.CreateReservationRequest{
		RequesterID: 10,
		VehicleID:   vehicleID,
		Purpose:     reservation.PurposeBusiness,
		StartTS:     ts(start),
		EndTS:       ts(end),
	}
}

func int64p(v int64) *int64 { return &v }

func statusp(s reservation.Status) *reservation.Status { return &s }

// --- Create ---

func TestCreateWithoutVehicleIsPending(t *testing.T) {
	f := setup(t)

	res, err := f.svc.Create(context.Background(), createReq(nil, "2025-06-01T09:00:00Z", "2025-06-01T12:00:00Z"))
	require.NoError(t, err)
	assert.Equal(t, reservation.StatusPending, res.Status)
	assert.Nil(t, res.VehicleID)
	require.Len(t, f.recorder.calls, 1)
	assert.Equal(t, audit.ActionCreate, f.recorder.calls[0].action)
}

func TestCreateWithVehicleIsApproved(t *testing.T) {
	f := setup(t)

	res, err := f.svc.Create(context.Background(), createReq(int64p(1), "2025-06-01T09:00:00Z", "2025-06-01T12:00:00Z"))
	require.NoError(t, err)
	assert.Equal(t, reservation.StatusApproved, res.Status)
	require.NotNil(t, res.VehicleID)
	assert.Equal(t, int64(1), *res.VehicleID)
}

func TestCreateRejectsInvertedWindow(t *testing.T) {
	f := setup(t)

	_, err := f.svc.Create(context.Background(), createReq(int64p(1), "2025-06-01T12:00:00Z", "2025-06-01T09:00:00Z"))
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
}

func TestCreateRejectsZeroLengthWindow(t *testing.T) {
	f := setup(t)

	_, err := f.svc.Create(context.Background(), createReq(int64p(1), "2025-06-01T09:00:00Z", "2025-06-01T09:00:00Z"))
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
}

func TestCreateUnknownRequester(t *testing.T) {
	f := setup(t)

	req := createReq(int64p(1), "2025-06-01T09:00:00Z", "2025-06-01T12:00:00Z")
	req.RequesterID = 999
	_, err := f.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestCreateUnknownVehicle(t *testing.T) {
	f := setup(t)

	_, err := f.svc.Create(context.Background(), createReq(int64p(99), "2025-06-01T09:00:00Z", "2025-06-01T12:00:00Z"))
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestCreateOverlapConflictNamesBlocker(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	first, err := f.svc.Create(ctx, createReq(int64p(1), "2025-06-01T09:00:00Z", "2025-06-01T12:00:00Z"))
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, createReq(int64p(1), "2025-06-01T11:00:00Z", "2025-06-01T13:00:00Z"))
	require.ErrorIs(t, err, xerrors.ErrConflict)

	var ce *xerrors.ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, first.ID, ce.ReservationID)

	// the failed attempt left nothing behind
	assert.Len(t, f.resRepo.store, 1)
}

func TestCreateTouchingWindowSucceeds(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, createReq(int64p(1), "2025-06-01T09:00:00Z", "2025-06-01T12:00:00Z"))
	require.NoError(t, err)

	res, err := f.svc.Create(ctx, createReq(int64p(1), "2025-06-01T12:00:00Z", "2025-06-01T13:00:00Z"))
	require.NoError(t, err)
	assert.Equal(t, reservation.StatusApproved, res.Status)
}

func TestCreateIneligibleVehicle(t *testing.T) {
	f := setup(t)

	// vehicle 2 is in maintenance
	_, err := f.svc.Create(context.Background(), createReq(int64p(2), "2025-06-01T09:00:00Z", "2025-06-01T12:00:00Z"))
	require.ErrorIs(t, err, xerrors.ErrNotCompliant)

	var ce *xerrors.ComplianceError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Reasons, "vehicle status is maintenance")
	assert.Empty(t, f.resRepo.store)
}

func TestCreateExpiredInsurance(t *testing.T) {
	f := setup(t)
	f.svc.now = func() time.Time { return ts("2026-06-01T00:00:00Z") }

	_, err := f.svc.Create(context.Background(), createReq(int64p(1), "2026-06-01T09:00:00Z", "2026-06-01T12:00:00Z"))
	require.ErrorIs(t, err, xerrors.ErrNotCompliant)
}

func TestCreateOnInsuranceExpiryDaySucceeds(t *testing.T) {
	f := setup(t)
	// fixture insurance expires 2025-12-31; a mid-morning booking that day
	// must still clear the compliance gate
	f.svc.now = func() time.Time { return ts("2025-12-31T10:00:00Z") }

	res, err := f.svc.Create(context.Background(), createReq(int64p(1), "2025-12-31T11:00:00Z", "2025-12-31T13:00:00Z"))
	require.NoError(t, err)
	assert.Equal(t, reservation.StatusApproved, res.Status)
}

// --- AssignOrUpdateStatus ---

func TestAssignVehicleApprovesPending(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	res, err := f.svc.Create(ctx, createReq(nil, "2025-06-01T09:00:00Z", "2025-06-01T12:00:00Z"))
	require.NoError(t, err)

	updated, err := f.svc.AssignOrUpdateStatus(ctx, res.ID, &reservation.UpdateReservationRequest{VehicleID: int64p(1)})
	require.NoError(t, err)
	assert.Equal(t, reservation.StatusApproved, updated.Status)
	require.NotNil(t, updated.VehicleID)
	assert.Equal(t, int64(1), *updated.VehicleID)
}

func TestAssignVehicleConflictLeavesPending(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, createReq(int64p(1), "2025-06-01T09:00:00Z", "2025-06-01T12:00:00Z"))
	require.NoError(t, err)

	pending, err := f.svc.Create(ctx, createReq(nil, "2025-06-01T10:00:00Z", "2025-06-01T11:00:00Z"))
	require.NoError(t, err)

	_, err = f.svc.AssignOrUpdateStatus(ctx, pending.ID, &reservation.UpdateReservationRequest{VehicleID: int64p(1)})
	require.ErrorIs(t, err, xerrors.ErrConflict)

	got, err := f.svc.Get(ctx, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, reservation.StatusPending, got.Status)
	assert.Nil(t, got.VehicleID)
}

func TestCancelClearsVehicle(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	res, err := f.svc.Create(ctx, createReq(int64p(1), "2025-06-01T09:00:00Z", "2025-06-01T12:00:00Z"))
	require.NoError(t, err)

	updated, err := f.svc.AssignOrUpdateStatus(ctx, res.ID, &reservation.UpdateReservationRequest{Status: statusp(reservation.StatusCancelled)})
	require.NoError(t, err)
	assert.Equal(t, reservation.StatusCancelled, updated.Status)
	assert.Nil(t, updated.VehicleID)

	got, err := f.svc.Get(ctx, res.ID)
	require.NoError(t, err)
	assert.Nil(t, got.VehicleID)
}

func TestRejectClearsVehicleAndFreesSlot(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	res, err := f.svc.Create(ctx, createReq(int64p(1), "2025-06-01T09:00:00Z", "2025-06-01T12:00:00Z"))
	require.NoError(t, err)

	// approved -> rejected is not in the table; reject from pending instead
	pending, err := f.svc.Create(ctx, createReq(nil, "2025-06-01T09:00:00Z", "2025-06-01T12:00:00Z"))
	require.NoError(t, err)

	updated, err := f.svc.AssignOrUpdateStatus(ctx, pending.ID, &reservation.UpdateReservationRequest{Status: statusp(reservation.StatusRejected)})
	require.NoError(t, err)
	assert.Equal(t, reservation.StatusRejected, updated.Status)
	assert.Nil(t, updated.VehicleID)

	// cancelling the approved one frees the window for a new booking
	_, err = f.svc.AssignOrUpdateStatus(ctx, res.ID, &reservation.UpdateReservationRequest{Status: statusp(reservation.StatusCancelled)})
	require.NoError(t, err)

	again, err := f.svc.Create(ctx, createReq(int64p(1), "2025-06-01T09:00:00Z", "2025-06-01T12:00:00Z"))
	require.NoError(t, err)
	assert.Equal(t, reservation.StatusApproved, again.Status)
}

func TestCancelWithVehicleAssignmentIsRejected(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	res, err := f.svc.Create(ctx, createReq(nil, "2025-06-01T09:00:00Z", "2025-06-01T12:00:00Z"))
	require.NoError(t, err)

	_, err = f.svc.AssignOrUpdateStatus(ctx, res.ID, &reservation.UpdateReservationRequest{
		Status:    statusp(reservation.StatusCancelled),
		VehicleID: int64p(1),
	})
	require.ErrorIs(t, err, xerrors.ErrInvalidInput)

	got, err := f.svc.Get(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, reservation.StatusPending, got.Status)
	assert.Nil(t, got.VehicleID)
}

func TestAssignWithExplicitApprovedStatus(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	res, err := f.svc.Create(ctx, createReq(nil, "2025-06-01T09:00:00Z", "2025-06-01T12:00:00Z"))
	require.NoError(t, err)

	updated, err := f.svc.AssignOrUpdateStatus(ctx, res.ID, &reservation.UpdateReservationRequest{
		Status:    statusp(reservation.StatusApproved),
		VehicleID: int64p(1),
	})
	require.NoError(t, err)
	assert.Equal(t, reservation.StatusApproved, updated.Status)
}

func TestDirectCompletedIsRejected(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	res, err := f.svc.Create(ctx, createReq(int64p(1), "2025-06-01T09:00:00Z", "2025-06-01T12:00:00Z"))
	require.NoError(t, err)

	_, err = f.svc.AssignOrUpdateStatus(ctx, res.ID, &reservation.UpdateReservationRequest{Status: statusp(reservation.StatusCompleted)})
	assert.ErrorIs(t, err, xerrors.ErrInvalidTransition)
}

func TestTransitionOutOfTerminalIsRejected(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	res, err := f.svc.Create(ctx, createReq(nil, "2025-06-01T09:00:00Z", "2025-06-01T12:00:00Z"))
	require.NoError(t, err)

	_, err = f.svc.AssignOrUpdateStatus(ctx, res.ID, &reservation.UpdateReservationRequest{Status: statusp(reservation.StatusCancelled)})
	require.NoError(t, err)

	_, err = f.svc.AssignOrUpdateStatus(ctx, res.ID, &reservation.UpdateReservationRequest{Status: statusp(reservation.StatusApproved)})
	assert.ErrorIs(t, err, xerrors.ErrInvalidTransition)
}

func TestGetReturnsNestedTrip(t *testing.T) {
	f := setup(t)
	vid := int64(1)
	f.resRepo.store[1] = &reservation.Reservation{
		ID: 1, RequesterID: 10, VehicleID: &vid, Status: reservation.StatusCompleted,
		StartTS: ts("2025-06-01T09:00:00Z"), EndTS: ts("2025-06-01T12:00:00Z"),
		Trip: &reservation.Trip{
			ID: 5, ReservationID: 1, VehicleID: 1, DriverID: 10,
			OdometerStart: 100, OdometerEnd: 150,
		},
	}
	f.resRepo.nextID = 2

	got, err := f.svc.Get(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, got.Trip)
	assert.Equal(t, int64(5), got.Trip.ID)
	assert.Equal(t, 150, got.Trip.OdometerEnd)
}

func TestUpdateUnknownReservation(t *testing.T) {
	f := setup(t)

	_, err := f.svc.AssignOrUpdateStatus(context.Background(), 404, &reservation.UpdateReservationRequest{Status: statusp(reservation.StatusCancelled)})
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestApproveWithoutVehicleIsRejected(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	res, err := f.svc.Create(ctx, createReq(nil, "2025-06-01T09:00:00Z", "2025-06-01T12:00:00Z"))
	require.NoError(t, err)

	_, err = f.svc.AssignOrUpdateStatus(ctx, res.ID, &reservation.UpdateReservationRequest{Status: statusp(reservation.StatusApproved)})
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
}
