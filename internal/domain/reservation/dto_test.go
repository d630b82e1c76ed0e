package reservation

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloseTripRequestBindingAllowsZeroOdometer(t *testing.T) {
	body := []byte(`{"vehicle_id":1,"driver_id":10,"odometer_start":0,"odometer_end":12,"returned_at":"2025-06-01T11:45:00Z"}`)

	var req CloseTripRequest
	require.NoError(t, binding.JSON.BindBody(body, &req))
	require.NotNil(t, req.OdometerStart)
	assert.Equal(t, 0, *req.OdometerStart)
	require.NotNil(t, req.OdometerEnd)
	assert.Equal(t, 12, *req.OdometerEnd)
}

func TestCloseTripRequestBindingRequiresOdometer(t *testing.T) {
	body := []byte(`{"vehicle_id":1,"driver_id":10,"returned_at":"2025-06-01T11:45:00Z"}`)

	var req CloseTripRequest
	assert.Error(t, binding.JSON.BindBody(body, &req))
}
