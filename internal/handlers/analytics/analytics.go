// internal/handlers/analytics/analytics_handler.go
package analytics

import (
	"net/http"
	"strconv"
	"time"

	"fleet-service/internal/pkg/response"
	service "fleet-service/internal/service/analytics"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	analyticsService *service.Service
}

func NewAnalyticsHandler(analyticsService *service.Service) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

func (h *AnalyticsHandler) Utilization(c *gin.Context) {
	vehicleID, from, to, ok := h.parseParams(c)
	if !ok {
		return
	}

	report, err := h.analyticsService.Utilization(c.Request.Context(), vehicleID, from, to)
	if err != nil {
		response.FromError(c, "failed to build utilization report", err)
		return
	}

	response.Success(c, http.StatusOK, "utilization report", report)
}

func (h *AnalyticsHandler) CostPerKM(c *gin.Context) {
	vehicleID, from, to, ok := h.parseParams(c)
	if !ok {
		return
	}

	report, err := h.analyticsService.CostPerKM(c.Request.Context(), vehicleID, from, to)
	if err != nil {
		response.FromError(c, "failed to build cost report", err)
		return
	}

	response.Success(c, http.StatusOK, "cost-per-km report", report)
}

func (h *AnalyticsHandler) parseParams(c *gin.Context) (int64, time.Time, time.Time, bool) {
	vehicleID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid vehicle ID", err)
		return 0, time.Time{}, time.Time{}, false
	}

	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid or missing from date (2006-01-02)", err)
		return 0, time.Time{}, time.Time{}, false
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid or missing to date (2006-01-02)", err)
		return 0, time.Time{}, time.Time{}, false
	}

	return vehicleID, from, to, true
}
