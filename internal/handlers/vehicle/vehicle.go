// internal/handlers/vehicle/vehicle_handler.go
package vehicle

import (
	"net/http"
	"strconv"
	"time"

	"fleet-service/internal/domain/vehicle"
	"fleet-service/internal/pkg/response"
	"fleet-service/internal/pkg/upload"
	service "fleet-service/internal/service/vehicle"

	"github.com/gin-gonic/gin"
)

type VehicleHandler struct {
	vehicleService *service.Service
	storage        *upload.Storage
}

func NewVehicleHandler(vehicleService *service.Service, storage *upload.Storage) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService, storage: storage}
}

func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	var req vehicle.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.vehicleService.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create vehicle", err)
		return
	}

	response.Success(c, http.StatusCreated, "vehicle created", result)
}

func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid vehicle ID", err)
		return
	}

	result, err := h.vehicleService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "vehicle not found", err)
		return
	}

	response.Success(c, http.StatusOK, "vehicle retrieved", result)
}

func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid vehicle ID", err)
		return
	}

	var req vehicle.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.vehicleService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to update vehicle", err)
		return
	}

	response.Success(c, http.StatusOK, "vehicle updated", result)
}

func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	var filters vehicle.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}

	vehicles, total, err := h.vehicleService.List(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list vehicles", err)
		return
	}

	response.Success(c, http.StatusOK, "vehicles retrieved", gin.H{
		"vehicles":  vehicles,
		"total":     total,
		"page":      filters.Page,
		"page_size": filters.PageSize,
	})
}

// UploadDocument stores a multipart file and indexes it against the vehicle
// in one request. Form fields: file (required), doc_type (required),
// issued_on, expires_on (2006-01-02), tags.
func (h *VehicleHandler) UploadDocument(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid vehicle ID", err)
		return
	}

	docType := vehicle.DocumentType(c.PostForm("doc_type"))
	if docType == "" {
		response.Error(c, http.StatusBadRequest, "doc_type is required", nil)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "file is required", err)
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "failed to read file", err)
		return
	}
	defer f.Close()

	stored, err := h.storage.Save(f, fileHeader.Filename)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to store file", nil)
		return
	}

	req := &vehicle.CreateDocumentRequest{
		DocType: docType,
		FileURL: stored.URL,
		SHA256:  &stored.SHA256,
	}
	if issued := c.PostForm("issued_on"); issued != "" {
		t, err := time.Parse("2006-01-02", issued)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "invalid issued_on date", err)
			return
		}
		req.IssuedOn = &t
	}
	if expires := c.PostForm("expires_on"); expires != "" {
		t, err := time.Parse("2006-01-02", expires)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "invalid expires_on date", err)
			return
		}
		req.ExpiresOn = &t
	}
	if tags := c.PostForm("tags"); tags != "" {
		req.Tags = &tags
	}

	doc, err := h.vehicleService.AddDocument(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, "failed to index document", err)
		return
	}

	response.Success(c, http.StatusCreated, "document uploaded", doc)
}

func (h *VehicleHandler) ListDocuments(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid vehicle ID", err)
		return
	}

	docs, err := h.vehicleService.GetDocuments(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to list documents", err)
		return
	}

	response.Success(c, http.StatusOK, "documents retrieved", docs)
}

func (h *VehicleHandler) CreateAsset(c *gin.Context) {
	var req vehicle.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	asset, err := h.vehicleService.AddAsset(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create asset", err)
		return
	}

	response.Success(c, http.StatusCreated, "asset created", asset)
}

func (h *VehicleHandler) ListAssets(c *gin.Context) {
	var vehicleID *int64
	if raw := c.Query("vehicle_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "invalid vehicle_id", err)
			return
		}
		vehicleID = &id
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	assets, total, err := h.vehicleService.GetAssets(c.Request.Context(), vehicleID, page, pageSize)
	if err != nil {
		response.FromError(c, "failed to list assets", err)
		return
	}

	response.Success(c, http.StatusOK, "assets retrieved", gin.H{
		"assets": assets,
		"total":  total,
	})
}

func (h *VehicleHandler) CreateTaxFee(c *gin.Context) {
	var req vehicle.CreateTaxFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	taxFee, err := h.vehicleService.AddTaxFee(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to record tax/fee", err)
		return
	}

	response.Success(c, http.StatusCreated, "tax/fee recorded", taxFee)
}

func (h *VehicleHandler) ListTaxFees(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid vehicle ID", err)
		return
	}

	fees, err := h.vehicleService.GetTaxFees(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to list taxes/fees", err)
		return
	}

	response.Success(c, http.StatusOK, "taxes/fees retrieved", fees)
}

func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
