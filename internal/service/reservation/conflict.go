// internal/service/reservation/conflict.go
package reservation

import (
	"time"

	"fleet-service/internal/domain/reservation"
)

// Overlaps applies the half-open interval test: [s1,e1) and [s2,e2) overlap
// iff s1 < e2 && s2 < e1. Windows that merely touch at a boundary do not
// overlap.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// HasConflict checks a candidate window against the blocking reservations of
// a vehicle (status approved or in_progress). It returns the id of the first
// conflicting reservation; callers pass the blocking set ordered by id, so
// ties resolve to the lowest id on every call.
func HasConflict(start, end time.Time, blocking []reservation.Reservation) (bool, int64) {
	for _, b := range blocking {
		if Overlaps(start, end, b.StartTS, b.EndTS) {
			return true, b.ID
		}
	}
	return false, 0
}
