// internal/service/compliance/evaluator.go
package compliance

import (
	"time"

	"fleet-service/internal/domain/compliance"
	"fleet-service/internal/domain/vehicle"
)

// IsDispatchEligible decides whether a vehicle may be dispatched as of
// referenceDate. It is a pure function of its inputs: the caller supplies the
// reference date explicitly, and the compliance snapshot is a read-only
// projection fetched ahead of time.
//
// The gate fails closed: no compulsory insurance record valid on the
// reference date means not eligible. Vehicle registry status must be active.
// Inspection due dates are reported through the snapshot endpoint but do not
// gate dispatch.
func IsDispatchEligible(v *vehicle.Vehicle, snap *compliance.Snapshot, referenceDate time.Time) (bool, []string) {
	reasons := []string{}

	if !v.Dispatchable() {
		reasons = append(reasons, "vehicle status is "+string(v.Status))
	}
	if snap == nil || !snap.HasValidCompulsoryInsurance(referenceDate) {
		reasons = append(reasons, "no valid compulsory insurance")
	}

	return len(reasons) == 0, reasons
}
