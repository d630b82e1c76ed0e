// internal/service/compliance/evaluator_test.go
package compliance

import (
	"testing"
	"time"

	domain "fleet-service/internal/domain/compliance"
	"fleet-service/internal/domain/vehicle"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func activeVehicle() *vehicle.Vehicle {
	return &vehicle.Vehicle{ID: 1, PlateNo: "ABC-123", Status: vehicle.StatusActive}
}

func snapshotWith(kind domain.PolicyKind, expiresOn time.Time) *domain.Snapshot {
	return &domain.Snapshot{
		VehicleID: 1,
		Insurances: []domain.Insurance{
			{ID: 1, VehicleID: 1, PolicyKind: kind, ExpiresOn: expiresOn},
		},
	}
}

func TestIsDispatchEligible(t *testing.T) {
	tests := []struct {
		name     string
		vehicle  *vehicle.Vehicle
		snapshot *domain.Snapshot
		ref      time.Time
		want     bool
		reasons  []string
	}{
		{
			name:     "active vehicle with valid compulsory insurance",
			vehicle:  activeVehicle(),
			snapshot: snapshotWith(domain.PolicyCompulsory, day("2025-12-31")),
			ref:      day("2025-06-01"),
			want:     true,
			reasons:  []string{},
		},
		{
			name:     "insurance expiring on reference date still valid",
			vehicle:  activeVehicle(),
			snapshot: snapshotWith(domain.PolicyCompulsory, day("2025-06-01")),
			ref:      day("2025-06-01"),
			want:     true,
			reasons:  []string{},
		},
		{
			name:     "mid-day reference on the expiry day still valid",
			vehicle:  activeVehicle(),
			snapshot: snapshotWith(domain.PolicyCompulsory, day("2025-06-01")),
			ref:      day("2025-06-01").Add(10*time.Hour + 30*time.Minute),
			want:     true,
			reasons:  []string{},
		},
		{
			name:     "clock time on the day after expiry is too late",
			vehicle:  activeVehicle(),
			snapshot: snapshotWith(domain.PolicyCompulsory, day("2025-06-01")),
			ref:      day("2025-06-02").Add(1 * time.Minute),
			want:     false,
			reasons:  []string{"no valid compulsory insurance"},
		},
		{
			name:     "expired compulsory insurance",
			vehicle:  activeVehicle(),
			snapshot: snapshotWith(domain.PolicyCompulsory, day("2025-05-31")),
			ref:      day("2025-06-01"),
			want:     false,
			reasons:  []string{"no valid compulsory insurance"},
		},
		{
			name:     "only voluntary insurance does not count",
			vehicle:  activeVehicle(),
			snapshot: snapshotWith(domain.PolicyVoluntary, day("2025-12-31")),
			ref:      day("2025-06-01"),
			want:     false,
			reasons:  []string{"no valid compulsory insurance"},
		},
		{
			name:     "no insurance records at all",
			vehicle:  activeVehicle(),
			snapshot: &domain.Snapshot{VehicleID: 1},
			ref:      day("2025-06-01"),
			want:     false,
			reasons:  []string{"no valid compulsory insurance"},
		},
		{
			name:     "nil snapshot fails closed",
			vehicle:  activeVehicle(),
			snapshot: nil,
			ref:      day("2025-06-01"),
			want:     false,
			reasons:  []string{"no valid compulsory insurance"},
		},
		{
			name:     "vehicle in maintenance",
			vehicle:  &vehicle.Vehicle{ID: 1, Status: vehicle.StatusMaintenance},
			snapshot: snapshotWith(domain.PolicyCompulsory, day("2025-12-31")),
			ref:      day("2025-06-01"),
			want:     false,
			reasons:  []string{"vehicle status is maintenance"},
		},
		{
			name:     "retired vehicle with expired insurance reports both reasons",
			vehicle:  &vehicle.Vehicle{ID: 1, Status: vehicle.StatusRetired},
			snapshot: snapshotWith(domain.PolicyCompulsory, day("2020-01-01")),
			ref:      day("2025-06-01"),
			want:     false,
			reasons:  []string{"vehicle status is retired", "no valid compulsory insurance"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eligible, reasons := IsDispatchEligible(tt.vehicle, tt.snapshot, tt.ref)
			assert.Equal(t, tt.want, eligible)
			assert.Equal(t, tt.reasons, reasons)
		})
	}
}

func TestIsDispatchEligibleIsDeterministic(t *testing.T) {
	v := activeVehicle()
	snap := snapshotWith(domain.PolicyCompulsory, day("2025-12-31"))
	ref := day("2025-06-01")

	first, firstReasons := IsDispatchEligible(v, snap, ref)
	for i := 0; i < 10; i++ {
		got, gotReasons := IsDispatchEligible(v, snap, ref)
		assert.Equal(t, first, got)
		assert.Equal(t, firstReasons, gotReasons)
	}
}
