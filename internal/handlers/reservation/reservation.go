// internal/handlers/reservation/reservation_handler.go
package reservation

import (
	"net/http"
	"strconv"

	"fleet-service/internal/domain/reservation"
	"fleet-service/internal/pkg/response"
	reservationsvc "fleet-service/internal/service/reservation"
	tripsvc "fleet-service/internal/service/trip"

	"github.com/gin-gonic/gin"
)

type ReservationHandler struct {
	reservationService *reservationsvc.Service
	tripService        *tripsvc.Service
}

func NewReservationHandler(reservationService *reservationsvc.Service, tripService *tripsvc.Service) *ReservationHandler {
	return &ReservationHandler{
		reservationService: reservationService,
		tripService:        tripService,
	}
}

// CreateReservation books a vehicle or queues a pending request
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req reservation.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.reservationService.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create reservation", err)
		return
	}

	response.Success(c, http.StatusCreated, "reservation created", result)
}

// UpdateReservation applies a status change and/or vehicle assignment
func (h *ReservationHandler) UpdateReservation(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid reservation ID", err)
		return
	}

	var req reservation.UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}
	if req.Status == nil && req.VehicleID == nil {
		response.Error(c, http.StatusBadRequest, "nothing to update", nil)
		return
	}

	result, err := h.reservationService.AssignOrUpdateStatus(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to update reservation", err)
		return
	}

	response.Success(c, http.StatusOK, "reservation updated", result)
}

// CloseTrip records actual usage and completes the reservation
func (h *ReservationHandler) CloseTrip(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid reservation ID", err)
		return
	}

	var req reservation.CloseTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	trip, err := h.tripService.CloseReservation(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to close trip", err)
		return
	}

	response.Success(c, http.StatusCreated, "trip closed", trip)
}

// GetReservation retrieves one reservation with its trip
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid reservation ID", err)
		return
	}

	result, err := h.reservationService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "reservation not found", err)
		return
	}

	response.Success(c, http.StatusOK, "reservation retrieved", result)
}

// ListReservations returns a filtered, paginated page
func (h *ReservationHandler) ListReservations(c *gin.Context) {
	var filters reservation.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}

	result, err := h.reservationService.List(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list reservations", err)
		return
	}

	response.Success(c, http.StatusOK, "reservations retrieved", result)
}

func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
