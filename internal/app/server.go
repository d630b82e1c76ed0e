// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"log"

	"fleet-service/internal/config"
	"fleet-service/internal/db"
	analyticsHandler "fleet-service/internal/handlers/analytics"
	auditHandler "fleet-service/internal/handlers/audit"
	complianceHandler "fleet-service/internal/handlers/compliance"
	employeeHandler "fleet-service/internal/handlers/employee"
	importHandler "fleet-service/internal/handlers/importer"
	maintenanceHandler "fleet-service/internal/handlers/maintenance"
	reservationHandler "fleet-service/internal/handlers/reservation"
	vehicleHandler "fleet-service/internal/handlers/vehicle"
	"fleet-service/internal/middleware"
	"fleet-service/internal/pkg/upload"
	"fleet-service/internal/repository/postgres"
	analyticsUsecase "fleet-service/internal/service/analytics"
	auditUsecase "fleet-service/internal/service/audit"
	complianceUsecase "fleet-service/internal/service/compliance"
	employeeUsecase "fleet-service/internal/service/employee"
	importUsecase "fleet-service/internal/service/importer"
	maintenanceUsecase "fleet-service/internal/service/maintenance"
	reservationUsecase "fleet-service/internal/service/reservation"
	"fleet-service/internal/service/scheduler"
	tripUsecase "fleet-service/internal/service/trip"
	vehicleUsecase "fleet-service/internal/service/vehicle"
	"fleet-service/internal/websocket"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.Default()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx := context.Background()

	// ----- Logger -----
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	s.logger = logger

	// ----- PostgreSQL -----
	pool, err := db.ConnectDB(s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       0,
		PoolSize: 10,
	})
	if err != nil {
		// analytics caching and alert de-duplication degrade gracefully
		logger.Warn("redis unavailable, running without cache", zap.Error(err))
		redisClient = nil
	}

	// ----- File storage -----
	storage, err := upload.NewStorage(s.cfg.UploadDir)
	if err != nil {
		return fmt.Errorf("failed to init upload storage: %w", err)
	}

	// ----- Repositories -----
	dbWrapper := postgres.NewDB(pool)
	employeeRepo := postgres.NewEmployeeRepository(dbWrapper)
	vehicleRepo := postgres.NewVehicleRepository(dbWrapper)
	complianceRepo := postgres.NewComplianceRepository(dbWrapper)
	reservationRepo := postgres.NewReservationRepository(dbWrapper)
	tripRepo := postgres.NewTripRepository(dbWrapper)
	auditRepo := postgres.NewAuditRepository(dbWrapper)
	maintenanceRepo := postgres.NewMaintenanceRepository(dbWrapper)

	// ----- WebSocket hub -----
	hub := websocket.NewHub(logger)
	go hub.Run(ctx)

	// ----- Services -----
	auditService := auditUsecase.NewService(auditRepo, logger)
	employeeService := employeeUsecase.NewService(dbWrapper, employeeRepo, auditService, logger)
	vehicleService := vehicleUsecase.NewService(dbWrapper, vehicleRepo, auditService, logger)
	complianceRecords := complianceUsecase.NewRecords(dbWrapper, complianceRepo, auditService, logger)
	reservationService := reservationUsecase.NewService(
		dbWrapper, reservationRepo, vehicleRepo, employeeRepo, complianceRepo, auditService, logger,
	)
	tripService := tripUsecase.NewService(dbWrapper, reservationRepo, tripRepo, auditService, logger)
	analyticsService := analyticsUsecase.NewService(
		reservationRepo, maintenanceRepo, complianceRepo, vehicleRepo,
		redisClient, s.cfg.ReportCacheTTL, logger,
	)
	maintenanceService := maintenanceUsecase.NewService(dbWrapper, maintenanceRepo, auditService, logger)
	importService := importUsecase.NewService(employeeRepo, vehicleRepo, logger)

	// ----- Expiration scanner -----
	scanner := scheduler.NewScanner(
		complianceRepo, redisClient, hub, logger,
		s.cfg.ScanInterval, s.cfg.ScanLookAhead,
	)
	go scanner.Run(ctx)

	// ----- Handlers -----
	handlers := &Handlers{
		ReservationHandler: reservationHandler.NewReservationHandler(reservationService, tripService),
		EmployeeHandler:    employeeHandler.NewEmployeeHandler(employeeService),
		VehicleHandler:     vehicleHandler.NewVehicleHandler(vehicleService, storage),
		ComplianceHandler:  complianceHandler.NewComplianceHandler(complianceRecords),
		MaintenanceHandler: maintenanceHandler.NewMaintenanceHandler(maintenanceService),
		AnalyticsHandler:   analyticsHandler.NewAnalyticsHandler(analyticsService),
		ImportHandler:      importHandler.NewImportHandler(importService),
		AuditHandler:       auditHandler.NewAuditHandler(auditService),
		Hub:                hub,
	}

	// ----- Middlewares -----
	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(),
		middleware.ActorMiddleware(),
	)
	s.engine.Static("/files", storage.Dir())

	SetupRouter(s.engine, logger, handlers)

	log.Printf("server running on %s", s.cfg.HTTPAddr)
	return s.engine.Run(s.cfg.HTTPAddr)
}
