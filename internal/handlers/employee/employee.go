// internal/handlers/employee/employee_handler.go
package employee

import (
	"net/http"
	"strconv"

	"fleet-service/internal/domain/employee"
	"fleet-service/internal/pkg/response"
	service "fleet-service/internal/service/employee"

	"github.com/gin-gonic/gin"
)

type EmployeeHandler struct {
	employeeService *service.Service
}

func NewEmployeeHandler(employeeService *service.Service) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var req employee.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.employeeService.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create employee", err)
		return
	}

	response.Success(c, http.StatusCreated, "employee created", result)
}

func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid employee ID", err)
		return
	}

	result, err := h.employeeService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "employee not found", err)
		return
	}

	response.Success(c, http.StatusOK, "employee retrieved", result)
}

func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid employee ID", err)
		return
	}

	var req employee.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.employeeService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to update employee", err)
		return
	}

	response.Success(c, http.StatusOK, "employee updated", result)
}

func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	var filters employee.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}

	employees, total, err := h.employeeService.List(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list employees", err)
		return
	}

	response.Success(c, http.StatusOK, "employees retrieved", gin.H{
		"employees": employees,
		"total":     total,
		"page":      filters.Page,
		"page_size": filters.PageSize,
	})
}
