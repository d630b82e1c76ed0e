// internal/handlers/compliance/compliance_handler.go
package compliance

import (
	"net/http"
	"strconv"

	"fleet-service/internal/domain/compliance"
	"fleet-service/internal/pkg/response"
	service "fleet-service/internal/service/compliance"

	"github.com/gin-gonic/gin"
)

type ComplianceHandler struct {
	records *service.Records
}

func NewComplianceHandler(records *service.Records) *ComplianceHandler {
	return &ComplianceHandler{records: records}
}

func (h *ComplianceHandler) CreateInsurance(c *gin.Context) {
	var req compliance.CreateInsuranceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	ins, err := h.records.CreateInsurance(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to record insurance", err)
		return
	}

	response.Success(c, http.StatusCreated, "insurance recorded", ins)
}

func (h *ComplianceHandler) ListInsurances(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid vehicle ID", err)
		return
	}

	insurances, err := h.records.GetInsurances(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to list insurances", err)
		return
	}

	response.Success(c, http.StatusOK, "insurances retrieved", insurances)
}

func (h *ComplianceHandler) CreateInspection(c *gin.Context) {
	var req compliance.CreateInspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	insp, err := h.records.CreateInspection(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to record inspection", err)
		return
	}

	response.Success(c, http.StatusCreated, "inspection recorded", insp)
}

func (h *ComplianceHandler) ListInspections(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid vehicle ID", err)
		return
	}

	inspections, err := h.records.GetInspections(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to list inspections", err)
		return
	}

	response.Success(c, http.StatusOK, "inspections retrieved", inspections)
}

func (h *ComplianceHandler) CreateViolation(c *gin.Context) {
	var req compliance.CreateViolationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	v, err := h.records.CreateViolation(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to record violation", err)
		return
	}

	response.Success(c, http.StatusCreated, "violation recorded", v)
}

func (h *ComplianceHandler) ListViolations(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid vehicle ID", err)
		return
	}

	violations, err := h.records.GetViolations(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to list violations", err)
		return
	}

	response.Success(c, http.StatusOK, "violations retrieved", violations)
}

// GetSnapshot exposes the projection the dispatch gate reads, for dashboards.
func (h *ComplianceHandler) GetSnapshot(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid vehicle ID", err)
		return
	}

	snap, err := h.records.GetSnapshot(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to load compliance snapshot", err)
		return
	}

	response.Success(c, http.StatusOK, "compliance snapshot retrieved", snap)
}

func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
