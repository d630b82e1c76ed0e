// internal/service/reservation/conflict_test.go
package reservation

import (
	"math/rand"
	"testing"
	"time"

	"fleet-service/internal/domain/reservation"

	"github.com/stretchr/testify/assert"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func blocking(id int64, start, end string) reservation.Reservation {
	return reservation.Reservation{
		ID:      id,
		StartTS: ts(start),
		EndTS:   ts(end),
		Status:  reservation.StatusApproved,
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name           string
		s1, e1, s2, e2 string
		want           bool
	}{
		{"disjoint before", "2025-06-01T09:00:00Z", "2025-06-01T10:00:00Z", "2025-06-01T11:00:00Z", "2025-06-01T12:00:00Z", false},
		{"disjoint after", "2025-06-01T11:00:00Z", "2025-06-01T12:00:00Z", "2025-06-01T09:00:00Z", "2025-06-01T10:00:00Z", false},
		{"partial overlap", "2025-06-01T09:00:00Z", "2025-06-01T12:00:00Z", "2025-06-01T11:00:00Z", "2025-06-01T13:00:00Z", true},
		{"contained", "2025-06-01T09:00:00Z", "2025-06-01T12:00:00Z", "2025-06-01T10:00:00Z", "2025-06-01T11:00:00Z", true},
		{"identical", "2025-06-01T09:00:00Z", "2025-06-01T12:00:00Z", "2025-06-01T09:00:00Z", "2025-06-01T12:00:00Z", true},
		{"touching end-to-start is not a conflict", "2025-06-01T09:00:00Z", "2025-06-01T12:00:00Z", "2025-06-01T12:00:00Z", "2025-06-01T13:00:00Z", false},
		{"touching start-to-end is not a conflict", "2025-06-01T12:00:00Z", "2025-06-01T13:00:00Z", "2025-06-01T09:00:00Z", "2025-06-01T12:00:00Z", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(ts(tt.s1), ts(tt.e1), ts(tt.s2), ts(tt.e2))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHasConflictReturnsLowestID(t *testing.T) {
	// blocking set arrives ordered by id
	set := []reservation.Reservation{
		blocking(3, "2025-06-01T10:00:00Z", "2025-06-01T12:00:00Z"),
		blocking(7, "2025-06-01T11:00:00Z", "2025-06-01T13:00:00Z"),
	}

	conflicting, id := HasConflict(ts("2025-06-01T11:30:00Z"), ts("2025-06-01T14:00:00Z"), set)
	assert.True(t, conflicting)
	assert.Equal(t, int64(3), id)

	// and consistently so across calls
	for i := 0; i < 5; i++ {
		_, again := HasConflict(ts("2025-06-01T11:30:00Z"), ts("2025-06-01T14:00:00Z"), set)
		assert.Equal(t, int64(3), again)
	}
}

func TestHasConflictEmptySet(t *testing.T) {
	conflicting, id := HasConflict(ts("2025-06-01T09:00:00Z"), ts("2025-06-01T10:00:00Z"), nil)
	assert.False(t, conflicting)
	assert.Zero(t, id)
}

// Randomized cross-check against a brute-force overlap oracle, including
// boundary-touching pairs which must never be flagged.
func TestHasConflictRandomIntervals(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	base := ts("2025-06-01T00:00:00Z")

	for trial := 0; trial < 500; trial++ {
		var set []reservation.Reservation
		for i := 0; i < 1+rng.Intn(8); i++ {
			start := base.Add(time.Duration(rng.Intn(48)) * time.Hour)
			end := start.Add(time.Duration(1+rng.Intn(6)) * time.Hour)
			set = append(set, reservation.Reservation{
				ID:      int64(i + 1),
				StartTS: start,
				EndTS:   end,
				Status:  reservation.StatusApproved,
			})
		}

		s := base.Add(time.Duration(rng.Intn(48)) * time.Hour)
		e := s.Add(time.Duration(1+rng.Intn(6)) * time.Hour)

		wantConflict := false
		var wantID int64
		for _, b := range set {
			if s.Before(b.EndTS) && b.StartTS.Before(e) {
				wantConflict = true
				wantID = b.ID
				break
			}
		}

		gotConflict, gotID := HasConflict(s, e, set)
		assert.Equal(t, wantConflict, gotConflict)
		if wantConflict {
			assert.Equal(t, wantID, gotID)
		}
	}
}
