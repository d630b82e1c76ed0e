// internal/service/analytics/service_test.go
package analytics

import (
	"testing"
	"time"

	"fleet-service/internal/domain/compliance"
	"fleet-service/internal/domain/reservation"
	"fleet-service/internal/domain/vehicle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func completedWithTrip(id int64, start, end time.Time, km int) reservation.Reservation {
	return reservation.Reservation{
		ID:      id,
		StartTS: start,
		EndTS:   end,
		Status:  reservation.StatusCompleted,
		Trip: &reservation.Trip{
			ID:            id,
			ReservationID: id,
			OdometerStart: 1000,
			OdometerEnd:   1000 + km,
		},
	}
}

func TestBuildUtilization(t *testing.T) {
	from, to := day("2025-06-01"), day("2025-06-02") // 24h period

	completed := []reservation.Reservation{
		completedWithTrip(1, day("2025-06-01").Add(9*time.Hour), day("2025-06-01").Add(12*time.Hour), 42),
		completedWithTrip(2, day("2025-06-01").Add(13*time.Hour), day("2025-06-01").Add(16*time.Hour), 30),
	}

	report := BuildUtilization(1, from, to, completed)
	assert.Equal(t, 2, report.TripCount)
	assert.Equal(t, 72, report.TotalKM)
	assert.InDelta(t, 6.0, report.BookedHours, 0.001)
	assert.InDelta(t, 0.25, report.UtilizationRate, 0.001)
}

func TestBuildUtilizationEmpty(t *testing.T) {
	report := BuildUtilization(1, day("2025-06-01"), day("2025-07-01"), nil)
	assert.Zero(t, report.TripCount)
	assert.Zero(t, report.TotalKM)
	assert.Zero(t, report.UtilizationRate)
}

func TestBuildCostPerKM(t *testing.T) {
	from, to := day("2025-06-01"), day("2025-07-01")

	completed := []reservation.Reservation{
		completedWithTrip(1, day("2025-06-02").Add(9*time.Hour), day("2025-06-02").Add(12*time.Hour), 100),
	}
	violations := []compliance.Violation{
		{Status: compliance.ViolationPaid, OccurredOn: day("2025-06-10"), Amount: 50},
		{Status: compliance.ViolationUnpaid, OccurredOn: day("2025-06-11"), Amount: 999}, // unpaid does not count
		{Status: compliance.ViolationPaid, OccurredOn: day("2025-07-10"), Amount: 999},   // outside window
	}
	// yearly tax of 365; June contributes 30 days
	taxes := []vehicle.TaxFee{
		{Amount: 365, PeriodStart: day("2025-01-01"), PeriodEnd: day("2026-01-01")},
	}

	report := BuildCostPerKM(1, from, to, completed, 120, violations, taxes)
	assert.Equal(t, 100, report.TotalKM)
	assert.Equal(t, 120.0, report.MaintenanceCost)
	assert.Equal(t, 50.0, report.FineCost)
	assert.InDelta(t, 30.0, report.TaxFeeCost, 0.001)
	assert.InDelta(t, 200.0, report.TotalCost, 0.001)
	require.NotNil(t, report.CostPerKM)
	assert.InDelta(t, 2.0, *report.CostPerKM, 0.001)
}

func TestBuildCostPerKMNoDistance(t *testing.T) {
	report := BuildCostPerKM(1, day("2025-06-01"), day("2025-07-01"), nil, 120, nil, nil)
	assert.Equal(t, 120.0, report.TotalCost)
	assert.Nil(t, report.CostPerKM)
}

func TestProrate(t *testing.T) {
	tests := []struct {
		name                   string
		amount                 float64
		periodStart, periodEnd string
		from, to               string
		want                   float64
	}{
		{"fully inside window", 100, "2025-06-10", "2025-06-20", "2025-06-01", "2025-07-01", 100},
		{"window inside period", 365, "2025-01-01", "2026-01-01", "2025-06-01", "2025-07-01", 30},
		{"no overlap", 100, "2025-01-01", "2025-02-01", "2025-06-01", "2025-07-01", 0},
		{"half overlap at start", 100, "2025-05-15", "2025-06-15", "2025-06-01", "2025-07-01", 45.161},
		{"degenerate period", 100, "2025-06-01", "2025-06-01", "2025-06-01", "2025-07-01", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Prorate(tt.amount, day(tt.periodStart), day(tt.periodEnd), day(tt.from), day(tt.to))
			assert.InDelta(t, tt.want, got, 0.01)
		})
	}
}
