// internal/handlers/importer/importer_handler.go
package importer

import (
	"net/http"

	"fleet-service/internal/pkg/response"
	service "fleet-service/internal/service/importer"

	"github.com/gin-gonic/gin"
)

type ImportHandler struct {
	importService *service.Service
}

func NewImportHandler(importService *service.Service) *ImportHandler {
	return &ImportHandler{importService: importService}
}

func (h *ImportHandler) ImportEmployees(c *gin.Context) {
	f, ok := h.openFile(c)
	if !ok {
		return
	}
	defer f.Close()

	result, err := h.importService.ImportEmployees(c.Request.Context(), f)
	if err != nil {
		response.FromError(c, "employee import failed", err)
		return
	}

	response.Success(c, http.StatusOK, "employee import finished", result)
}

func (h *ImportHandler) ImportVehicles(c *gin.Context) {
	f, ok := h.openFile(c)
	if !ok {
		return
	}
	defer f.Close()

	result, err := h.importService.ImportVehicles(c.Request.Context(), f)
	if err != nil {
		response.FromError(c, "vehicle import failed", err)
		return
	}

	response.Success(c, http.StatusOK, "vehicle import finished", result)
}

func (h *ImportHandler) openFile(c *gin.Context) (interface {
	Read([]byte) (int, error)
	Close() error
}, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "file is required", err)
		return nil, false
	}
	f, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "failed to read file", err)
		return nil, false
	}
	return f, true
}
