// internal/handlers/audit/audit_handler.go
package audit

import (
	"net/http"

	"fleet-service/internal/domain/audit"
	"fleet-service/internal/pkg/response"
	service "fleet-service/internal/service/audit"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditService *service.Service
}

func NewAuditHandler(auditService *service.Service) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// ListEntries is the audit viewer: paged, filterable by entity and actor.
func (h *AuditHandler) ListEntries(c *gin.Context) {
	var filters audit.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}

	entries, total, err := h.auditService.List(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list audit entries", err)
		return
	}

	response.Success(c, http.StatusOK, "audit entries retrieved", gin.H{
		"entries": entries,
		"total":   total,
	})
}
