package reservation

import (
	"testing"

	xerrors "fleet-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		{"pending to approved", StatusPending, StatusApproved, true},
		{"pending to rejected", StatusPending, StatusRejected, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"pending to in_progress", StatusPending, StatusInProgress, false},
		{"pending to completed", StatusPending, StatusCompleted, false},
		{"approved to in_progress", StatusApproved, StatusInProgress, true},
		{"approved to completed", StatusApproved, StatusCompleted, true},
		{"approved to cancelled", StatusApproved, StatusCancelled, true},
		{"approved to rejected", StatusApproved, StatusRejected, false},
		{"in_progress to completed", StatusInProgress, StatusCompleted, true},
		{"in_progress to cancelled", StatusInProgress, StatusCancelled, false},
		{"completed is terminal", StatusCompleted, StatusCancelled, false},
		{"rejected is terminal", StatusRejected, StatusApproved, false},
		{"cancelled is terminal", StatusCancelled, StatusPending, false},
		{"no-op is allowed", StatusInProgress, StatusInProgress, true},
		{"unknown source", Status("archived"), StatusApproved, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanTransition(tc.from, tc.to))
		})
	}
}

func TestApplyTransitionClearsVehicle(t *testing.T) {
	vid := int64(7)

	r := &Reservation{Status: StatusPending, VehicleID: &vid}
	require.NoError(t, ApplyTransition(r, StatusCancelled))
	assert.Equal(t, StatusCancelled, r.Status)
	assert.Nil(t, r.VehicleID)

	r = &Reservation{Status: StatusPending, VehicleID: &vid}
	require.NoError(t, ApplyTransition(r, StatusApproved))
	assert.Equal(t, StatusApproved, r.Status)
	require.NotNil(t, r.VehicleID)
	assert.Equal(t, vid, *r.VehicleID)
}

func TestApplyTransitionRejectsIllegalMove(t *testing.T) {
	r := &Reservation{Status: StatusCompleted}
	err := ApplyTransition(r, StatusApproved)
	require.Error(t, err)
	assert.ErrorIs(t, err, xerrors.ErrInvalidTransition)
	assert.Equal(t, StatusCompleted, r.Status)
}
