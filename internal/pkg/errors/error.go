package xerrors

import (
	"errors"
	"fmt"
)

// Common reusable application errors
var (
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrConflict          = errors.New("booking conflict")
	ErrNotCompliant      = errors.New("vehicle not dispatch-eligible")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrAlreadyClosed     = errors.New("reservation already closed")
	ErrMismatch          = errors.New("trip fields disagree with reservation")
	ErrDuplicateEntry    = errors.New("duplicate entry")
	ErrInternal          = errors.New("internal server error")
)

// ValidationError reports malformed caller input. Non-retryable.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NotFoundError names the entity a request referenced but that does not exist.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ConflictError reports an overlapping booking on the same vehicle. It carries
// the id of one conflicting reservation for diagnostics.
type ConflictError struct {
	VehicleID     int64
	ReservationID int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("vehicle %d already booked by reservation %d for an overlapping window", e.VehicleID, e.ReservationID)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// ComplianceError reports a vehicle that failed the dispatch-eligibility gate.
type ComplianceError struct {
	VehicleID int64
	Reasons   []string
}

func (e *ComplianceError) Error() string {
	return fmt.Sprintf("vehicle %d is not dispatch-eligible: %v", e.VehicleID, e.Reasons)
}

func (e *ComplianceError) Unwrap() error { return ErrNotCompliant }

// InvalidTransitionError reports a reservation status change outside the
// allowed transition table.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid reservation status transition: %s -> %s", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }

// AlreadyClosedError reports a second closure attempt on a reservation that
// already has its trip recorded.
type AlreadyClosedError struct {
	ReservationID int64
	TripID        int64
}

func (e *AlreadyClosedError) Error() string {
	return fmt.Sprintf("reservation %d already closed by trip %d", e.ReservationID, e.TripID)
}

func (e *AlreadyClosedError) Unwrap() error { return ErrAlreadyClosed }

// MismatchError reports a trip field that disagrees with the reservation it
// closes (vehicle or driver).
type MismatchError struct {
	Field    string
	Expected int64
	Got      int64
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("trip %s %d does not match reservation %s %d", e.Field, e.Got, e.Field, e.Expected)
}

func (e *MismatchError) Unwrap() error { return ErrMismatch }

// Wrap adds context to an error (similar to fmt.Errorf("%w")).
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is allows checking whether an error is a specific sentinel error.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
