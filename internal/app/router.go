// internal/app/router.go
package app

import (
	"net/http"

	analyticsHandler "fleet-service/internal/handlers/analytics"
	auditHandler "fleet-service/internal/handlers/audit"
	complianceHandler "fleet-service/internal/handlers/compliance"
	employeeHandler "fleet-service/internal/handlers/employee"
	importHandler "fleet-service/internal/handlers/importer"
	maintenanceHandler "fleet-service/internal/handlers/maintenance"
	reservationHandler "fleet-service/internal/handlers/reservation"
	vehicleHandler "fleet-service/internal/handlers/vehicle"
	"fleet-service/internal/websocket"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	ReservationHandler *reservationHandler.ReservationHandler
	EmployeeHandler    *employeeHandler.EmployeeHandler
	VehicleHandler     *vehicleHandler.VehicleHandler
	ComplianceHandler  *complianceHandler.ComplianceHandler
	MaintenanceHandler *maintenanceHandler.MaintenanceHandler
	AnalyticsHandler   *analyticsHandler.AnalyticsHandler
	ImportHandler      *importHandler.ImportHandler
	AuditHandler       *auditHandler.AuditHandler
	Hub                *websocket.Hub
}

func SetupRouter(r *gin.Engine, logger *zap.Logger, h *Handlers) {
	api := r.Group("/api/v1")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "fleet-service"})
	})

	// Compliance expiry alert stream
	r.GET("/ws", func(c *gin.Context) {
		if err := websocket.ServeWS(h.Hub, c.Writer, c.Request); err != nil {
			logger.Warn("websocket upgrade failed", zap.Error(err))
		}
	})

	// Reservation and trip routes
	reservations := api.Group("/reservations")
	{
		reservations.POST("", h.ReservationHandler.CreateReservation)
		reservations.GET("", h.ReservationHandler.ListReservations)
		reservations.GET("/:id", h.ReservationHandler.GetReservation)
		reservations.PATCH("/:id", h.ReservationHandler.UpdateReservation)
		reservations.POST("/:id/close", h.ReservationHandler.CloseTrip)
	}

	// Employee routes
	employees := api.Group("/employees")
	{
		employees.POST("", h.EmployeeHandler.CreateEmployee)
		employees.GET("", h.EmployeeHandler.ListEmployees)
		employees.GET("/:id", h.EmployeeHandler.GetEmployee)
		employees.PATCH("/:id", h.EmployeeHandler.UpdateEmployee)
	}

	// Vehicle routes and vehicle-scoped sub-resources
	vehicles := api.Group("/vehicles")
	{
		vehicles.POST("", h.VehicleHandler.CreateVehicle)
		vehicles.GET("", h.VehicleHandler.ListVehicles)
		vehicles.GET("/:id", h.VehicleHandler.GetVehicle)
		vehicles.PATCH("/:id", h.VehicleHandler.UpdateVehicle)

		vehicles.POST("/:id/documents", h.VehicleHandler.UploadDocument)
		vehicles.GET("/:id/documents", h.VehicleHandler.ListDocuments)
		vehicles.POST("/:id/taxes-fees", h.VehicleHandler.CreateTaxFee)
		vehicles.GET("/:id/taxes-fees", h.VehicleHandler.ListTaxFees)

		vehicles.POST("/:id/insurances", h.ComplianceHandler.CreateInsurance)
		vehicles.GET("/:id/insurances", h.ComplianceHandler.ListInsurances)
		vehicles.POST("/:id/inspections", h.ComplianceHandler.CreateInspection)
		vehicles.GET("/:id/inspections", h.ComplianceHandler.ListInspections)
		vehicles.POST("/:id/violations", h.ComplianceHandler.CreateViolation)
		vehicles.GET("/:id/violations", h.ComplianceHandler.ListViolations)
		vehicles.GET("/:id/compliance", h.ComplianceHandler.GetSnapshot)

		vehicles.POST("/:id/maintenance-plans", h.MaintenanceHandler.CreatePlan)
		vehicles.GET("/:id/maintenance-plans", h.MaintenanceHandler.ListPlans)
		vehicles.GET("/:id/work-orders", h.MaintenanceHandler.ListWorkOrders)

		vehicles.GET("/:id/analytics/utilization", h.AnalyticsHandler.Utilization)
		vehicles.GET("/:id/analytics/cost-per-km", h.AnalyticsHandler.CostPerKM)
	}

	// Asset routes
	assets := api.Group("/assets")
	{
		assets.POST("", h.VehicleHandler.CreateAsset)
		assets.GET("", h.VehicleHandler.ListAssets)
	}

	// Vendor and work order routes
	vendors := api.Group("/vendors")
	{
		vendors.POST("", h.MaintenanceHandler.CreateVendor)
		vendors.GET("", h.MaintenanceHandler.ListVendors)
	}
	workOrders := api.Group("/work-orders")
	{
		workOrders.POST("", h.MaintenanceHandler.CreateWorkOrder)
		workOrders.POST("/:id/close", h.MaintenanceHandler.CloseWorkOrder)
	}

	// Bulk CSV import routes
	imports := api.Group("/imports")
	{
		imports.POST("/employees", h.ImportHandler.ImportEmployees)
		imports.POST("/vehicles", h.ImportHandler.ImportVehicles)
	}

	// Audit trail routes
	api.GET("/audit", h.AuditHandler.ListEntries)
}
