// internal/handlers/maintenance/maintenance_handler.go
package maintenance

import (
	"net/http"
	"strconv"

	"fleet-service/internal/domain/maintenance"
	"fleet-service/internal/pkg/response"
	service "fleet-service/internal/service/maintenance"

	"github.com/gin-gonic/gin"
)

type MaintenanceHandler struct {
	maintenanceService *service.Service
}

func NewMaintenanceHandler(maintenanceService *service.Service) *MaintenanceHandler {
	return &MaintenanceHandler{maintenanceService: maintenanceService}
}

func (h *MaintenanceHandler) CreateVendor(c *gin.Context) {
	var req maintenance.CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	vendor, err := h.maintenanceService.CreateVendor(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create vendor", err)
		return
	}

	response.Success(c, http.StatusCreated, "vendor created", vendor)
}

func (h *MaintenanceHandler) ListVendors(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	vendors, total, err := h.maintenanceService.ListVendors(c.Request.Context(), page, pageSize)
	if err != nil {
		response.FromError(c, "failed to list vendors", err)
		return
	}

	response.Success(c, http.StatusOK, "vendors retrieved", gin.H{
		"vendors": vendors,
		"total":   total,
	})
}

func (h *MaintenanceHandler) CreatePlan(c *gin.Context) {
	vehicleID, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid vehicle ID", err)
		return
	}

	var req maintenance.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	plan, err := h.maintenanceService.CreatePlan(c.Request.Context(), vehicleID, &req)
	if err != nil {
		response.FromError(c, "failed to create maintenance plan", err)
		return
	}

	response.Success(c, http.StatusCreated, "maintenance plan created", plan)
}

func (h *MaintenanceHandler) ListPlans(c *gin.Context) {
	vehicleID, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid vehicle ID", err)
		return
	}

	plans, err := h.maintenanceService.GetPlansForVehicle(c.Request.Context(), vehicleID)
	if err != nil {
		response.FromError(c, "failed to list maintenance plans", err)
		return
	}

	response.Success(c, http.StatusOK, "maintenance plans retrieved", plans)
}

func (h *MaintenanceHandler) CreateWorkOrder(c *gin.Context) {
	var req maintenance.CreateWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	wo, err := h.maintenanceService.CreateWorkOrder(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create work order", err)
		return
	}

	response.Success(c, http.StatusCreated, "work order created", wo)
}

func (h *MaintenanceHandler) CloseWorkOrder(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid work order ID", err)
		return
	}

	var req maintenance.CloseWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	wo, err := h.maintenanceService.CloseWorkOrder(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to close work order", err)
		return
	}

	response.Success(c, http.StatusOK, "work order closed", wo)
}

func (h *MaintenanceHandler) ListWorkOrders(c *gin.Context) {
	vehicleID, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid vehicle ID", err)
		return
	}

	orders, err := h.maintenanceService.GetWorkOrdersForVehicle(c.Request.Context(), vehicleID)
	if err != nil {
		response.FromError(c, "failed to list work orders", err)
		return
	}

	response.Success(c, http.StatusOK, "work orders retrieved", orders)
}

func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
