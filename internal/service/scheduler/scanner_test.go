// internal/service/scheduler/scanner_test.go
package scheduler

import (
	"context"
	"testing"
	"time"

	"fleet-service/internal/domain/compliance"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeComplianceRepo struct {
	compliance.Repository
	items    *compliance.ExpiringItems
	lastFrom time.Time
	lastTo   time.Time
}

func (f *fakeComplianceRepo) GetExpiring(ctx context.Context, from, to time.Time) (*compliance.ExpiringItems, error) {
	f.lastFrom, f.lastTo = from, to
	if f.items == nil {
		return &compliance.ExpiringItems{}, nil
	}
	return f.items, nil
}

type fakeNotifier struct {
	events   []string
	payloads []interface{}
}

func (f *fakeNotifier) Broadcast(event string, payload interface{}) {
	f.events = append(f.events, event)
	f.payloads = append(f.payloads, payload)
}

func fixedNow() time.Time {
	return time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
}

func TestScanWindow(t *testing.T) {
	repo := &fakeComplianceRepo{}
	s := NewScanner(repo, nil, &fakeNotifier{}, zap.NewNop(), time.Hour, 30*24*time.Hour)
	s.now = fixedNow

	from, to := s.Window()
	assert.Equal(t, fixedNow(), from)
	assert.Equal(t, fixedNow().Add(30*24*time.Hour), to)

	s.Scan(context.Background())
	assert.Equal(t, from, repo.lastFrom)
	assert.Equal(t, to, repo.lastTo)
}

func TestScanPushesAlerts(t *testing.T) {
	repo := &fakeComplianceRepo{items: &compliance.ExpiringItems{
		Insurances: []compliance.Insurance{
			{ID: 7, VehicleID: 1, PolicyKind: compliance.PolicyCompulsory, ExpiresOn: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)},
		},
		Inspections: []compliance.Inspection{
			{ID: 3, VehicleID: 2, Kind: compliance.InspectionPeriodic, NextDueDate: time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)},
		},
	}}
	notifier := &fakeNotifier{}
	s := NewScanner(repo, nil, notifier, zap.NewNop(), time.Hour, 30*24*time.Hour)
	s.now = fixedNow

	s.Scan(context.Background())

	require.Len(t, notifier.events, 2)
	assert.Equal(t, "compliance.expiry", notifier.events[0])

	alert, ok := notifier.payloads[0].(ExpiryAlert)
	require.True(t, ok)
	assert.Equal(t, "insurance", alert.Kind)
	assert.Equal(t, int64(7), alert.RecordID)

	alert, ok = notifier.payloads[1].(ExpiryAlert)
	require.True(t, ok)
	assert.Equal(t, "inspection", alert.Kind)
	assert.Equal(t, int64(2), alert.VehicleID)
}

func TestScanNothingExpiring(t *testing.T) {
	notifier := &fakeNotifier{}
	s := NewScanner(&fakeComplianceRepo{}, nil, notifier, zap.NewNop(), time.Hour, 30*24*time.Hour)
	s.now = fixedNow

	s.Scan(context.Background())
	assert.Empty(t, notifier.events)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	s := NewScanner(&fakeComplianceRepo{}, nil, &fakeNotifier{}, zap.NewNop(), time.Hour, 24*time.Hour)
	s.now = fixedNow

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scanner did not stop after context cancellation")
	}
}
