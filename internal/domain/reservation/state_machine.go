package reservation

import xerrors "fleet-service/internal/pkg/errors"

// AllowTransition is the reservation status digraph. Terminal states map to
// an empty slice: nothing leaves completed, rejected or cancelled.
// approved -> completed exists because trip closure may finalize a booking
// that never had its departure recorded.
var AllowTransition = map[Status][]Status{
	StatusPending:    {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved:   {StatusInProgress, StatusCancelled, StatusCompleted},
	StatusInProgress: {StatusCompleted},
	StatusRejected:   {},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// CanTransition reports whether from -> to is an allowed status change.
// A no-op transition (from == to) is always allowed.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	allowed, ok := AllowTransition[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// ApplyTransition mutates the reservation status, enforcing the transition
// table and the clears-vehicle rule: moving to cancelled or rejected releases
// the vehicle slot.
func ApplyTransition(r *Reservation, to Status) error {
	if !CanTransition(r.Status, to) {
		return &xerrors.InvalidTransitionError{From: string(r.Status), To: string(to)}
	}
	r.Status = to
	if to == StatusCancelled || to == StatusRejected {
		r.VehicleID = nil
	}
	return nil
}
