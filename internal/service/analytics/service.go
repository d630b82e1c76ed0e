// internal/service/analytics/service.go
package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fleet-service/internal/domain/compliance"
	"fleet-service/internal/domain/maintenance"
	"fleet-service/internal/domain/reservation"
	"fleet-service/internal/domain/vehicle"
	xerrors "fleet-service/internal/pkg/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// UtilizationReport aggregates completed trips for a vehicle over [From, To).
type UtilizationReport struct {
	VehicleID       int64     `json:"vehicle_id"`
	From            time.Time `json:"from"`
	To              time.Time `json:"to"`
	TripCount       int       `json:"trip_count"`
	BookedHours     float64   `json:"booked_hours"`
	TotalKM         int       `json:"total_km"`
	UtilizationRate float64   `json:"utilization_rate"`
}

// CostPerKMReport breaks vehicle cost over [From, To) down by source and
// divides by kilometers driven. CostPerKM stays nil when no distance was
// recorded.
type CostPerKMReport struct {
	VehicleID       int64     `json:"vehicle_id"`
	From            time.Time `json:"from"`
	To              time.Time `json:"to"`
	MaintenanceCost float64   `json:"maintenance_cost"`
	FineCost        float64   `json:"fine_cost"`
	TaxFeeCost      float64   `json:"tax_fee_cost"`
	TotalCost       float64   `json:"total_cost"`
	TotalKM         int       `json:"total_km"`
	CostPerKM       *float64  `json:"cost_per_km,omitempty"`
}

// Service is a read-only collaborator: it never writes reservation or trip
// rows, only aggregates them.
type Service struct {
	reservations reservation.Repository
	maintRepo    maintenance.Repository
	compRepo     compliance.Repository
	vehRepo      vehicle.Repository
	cache        *redis.Client
	cacheTTL     time.Duration
	logger       *zap.Logger
}

func NewService(
	reservations reservation.Repository,
	maintRepo maintenance.Repository,
	compRepo compliance.Repository,
	vehRepo vehicle.Repository,
	cache *redis.Client,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *Service {
	return &Service{
		reservations: reservations,
		maintRepo:    maintRepo,
		compRepo:     compRepo,
		vehRepo:      vehRepo,
		cache:        cache,
		cacheTTL:     cacheTTL,
		logger:       logger,
	}
}

func (s *Service) Utilization(ctx context.Context, vehicleID int64, from, to time.Time) (*UtilizationReport, error) {
	if !from.Before(to) {
		return nil, &xerrors.ValidationError{Field: "from", Reason: "from must be before to"}
	}

	key := fmt.Sprintf("analytics:utilization:%d:%s:%s", vehicleID, from.Format("2006-01-02"), to.Format("2006-01-02"))
	var cached UtilizationReport
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	completed, err := s.completedReservations(ctx, vehicleID, from, to)
	if err != nil {
		return nil, err
	}

	report := BuildUtilization(vehicleID, from, to, completed)
	s.cacheSet(ctx, key, report)
	return report, nil
}

func (s *Service) CostPerKM(ctx context.Context, vehicleID int64, from, to time.Time) (*CostPerKMReport, error) {
	if !from.Before(to) {
		return nil, &xerrors.ValidationError{Field: "from", Reason: "from must be before to"}
	}

	key := fmt.Sprintf("analytics:costperkm:%d:%s:%s", vehicleID, from.Format("2006-01-02"), to.Format("2006-01-02"))
	var cached CostPerKMReport
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	completed, err := s.completedReservations(ctx, vehicleID, from, to)
	if err != nil {
		return nil, err
	}
	maintCost, err := s.maintRepo.GetClosedWorkOrderCost(ctx, vehicleID, from, to)
	if err != nil {
		return nil, err
	}
	violations, err := s.compRepo.GetViolationsByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	taxes, err := s.vehRepo.GetTaxFees(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	report := BuildCostPerKM(vehicleID, from, to, completed, maintCost, violations, taxes)
	s.cacheSet(ctx, key, report)
	return report, nil
}

// completedReservations pages through the vehicle's completed reservations in
// the window, nested trips included.
func (s *Service) completedReservations(ctx context.Context, vehicleID int64, from, to time.Time) ([]reservation.Reservation, error) {
	status := reservation.StatusCompleted
	var all []reservation.Reservation

	for page := 1; ; page++ {
		items, total, err := s.reservations.List(ctx, &reservation.ListFilters{
			VehicleID: &vehicleID,
			Status:    &status,
			From:      &from,
			To:        &to,
			Page:      page,
			PageSize:  100,
		})
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		if int64(len(all)) >= total || len(items) == 0 {
			return all, nil
		}
	}
}

// BuildUtilization is the pure aggregation over completed reservations.
func BuildUtilization(vehicleID int64, from, to time.Time, completed []reservation.Reservation) *UtilizationReport {
	report := &UtilizationReport{VehicleID: vehicleID, From: from, To: to}

	for _, r := range completed {
		report.BookedHours += r.EndTS.Sub(r.StartTS).Hours()
		if r.Trip != nil {
			report.TripCount++
			report.TotalKM += r.Trip.DistanceKM()
		}
	}

	periodHours := to.Sub(from).Hours()
	if periodHours > 0 {
		report.UtilizationRate = report.BookedHours / periodHours
	}
	return report
}

// BuildCostPerKM sums closed work orders, paid fines inside the window and
// pro-rated tax/fee periods, then divides by trip kilometers.
func BuildCostPerKM(
	vehicleID int64,
	from, to time.Time,
	completed []reservation.Reservation,
	maintenanceCost float64,
	violations []compliance.Violation,
	taxes []vehicle.TaxFee,
) *CostPerKMReport {
	report := &CostPerKMReport{
		VehicleID:       vehicleID,
		From:            from,
		To:              to,
		MaintenanceCost: maintenanceCost,
	}

	for _, r := range completed {
		if r.Trip != nil {
			report.TotalKM += r.Trip.DistanceKM()
		}
	}
	for _, v := range violations {
		if v.Status == compliance.ViolationPaid && !v.OccurredOn.Before(from) && v.OccurredOn.Before(to) {
			report.FineCost += v.Amount
		}
	}
	for _, t := range taxes {
		report.TaxFeeCost += Prorate(t.Amount, t.PeriodStart, t.PeriodEnd, from, to)
	}

	report.TotalCost = report.MaintenanceCost + report.FineCost + report.TaxFeeCost
	if report.TotalKM > 0 {
		perKM := report.TotalCost / float64(report.TotalKM)
		report.CostPerKM = &perKM
	}
	return report
}

// Prorate charges the share of a fiscal period amount that falls within
// [from, to).
func Prorate(amount float64, periodStart, periodEnd, from, to time.Time) float64 {
	period := periodEnd.Sub(periodStart)
	if period <= 0 {
		return 0
	}

	start := periodStart
	if from.After(start) {
		start = from
	}
	end := periodEnd
	if to.Before(end) {
		end = to
	}
	if !start.Before(end) {
		return 0
	}
	return amount * end.Sub(start).Seconds() / period.Seconds()
}

func (s *Service) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("analytics cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		s.logger.Warn("analytics cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *Service) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("analytics cache write failed", zap.String("key", key), zap.Error(err))
	}
}
