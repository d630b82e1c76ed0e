// internal/service/scheduler/scanner.go
package scheduler

import (
	"context"
	"fmt"
	"time"

	"fleet-service/internal/domain/compliance"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Notifier pushes an expiry event to whoever is listening (the websocket hub
// in production).
type Notifier interface {
	Broadcast(event string, payload interface{})
}

// ExpiryAlert is the payload pushed for each record inside the look-ahead
// window.
type ExpiryAlert struct {
	Kind      string    `json:"kind"` // insurance | inspection
	RecordID  int64     `json:"record_id"`
	VehicleID int64     `json:"vehicle_id"`
	DueOn     time.Time `json:"due_on"`
}

// Scanner periodically looks for compliance records expiring inside a
// look-ahead window and pushes one alert per record per day. It runs outside
// the reservation lifecycle: each pass is its own read, no transaction shared
// with anything else.
type Scanner struct {
	repo      compliance.Repository
	redis     *redis.Client
	notifier  Notifier
	logger    *zap.Logger
	interval  time.Duration
	lookAhead time.Duration
	now       func() time.Time
}

func NewScanner(
	repo compliance.Repository,
	redisClient *redis.Client,
	notifier Notifier,
	logger *zap.Logger,
	interval, lookAhead time.Duration,
) *Scanner {
	return &Scanner{
		repo:      repo,
		redis:     redisClient,
		notifier:  notifier,
		logger:    logger,
		interval:  interval,
		lookAhead: lookAhead,
		now:       time.Now,
	}
}

// Run blocks until ctx is cancelled, scanning once immediately and then on
// every tick.
func (s *Scanner) Run(ctx context.Context) {
	s.logger.Info("expiration scanner started",
		zap.Duration("interval", s.interval),
		zap.Duration("look_ahead", s.lookAhead))

	s.Scan(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("expiration scanner stopped")
			return
		case <-ticker.C:
			s.Scan(ctx)
		}
	}
}

// Window is the half-open scan range [now, now+lookAhead) for a given pass.
func (s *Scanner) Window() (time.Time, time.Time) {
	now := s.now()
	return now, now.Add(s.lookAhead)
}

// Scan runs one pass. Errors are logged, never fatal: the next tick retries.
func (s *Scanner) Scan(ctx context.Context) {
	from, to := s.Window()

	items, err := s.repo.GetExpiring(ctx, from, to)
	if err != nil {
		s.logger.Error("expiry scan failed", zap.Error(err))
		return
	}

	alerts := 0
	for _, ins := range items.Insurances {
		alert := ExpiryAlert{Kind: "insurance", RecordID: ins.ID, VehicleID: ins.VehicleID, DueOn: ins.ExpiresOn}
		if s.notify(ctx, from, alert) {
			alerts++
		}
	}
	for _, insp := range items.Inspections {
		alert := ExpiryAlert{Kind: "inspection", RecordID: insp.ID, VehicleID: insp.VehicleID, DueOn: insp.NextDueDate}
		if s.notify(ctx, from, alert) {
			alerts++
		}
	}

	if alerts > 0 {
		s.logger.Info("expiry alerts pushed",
			zap.Int("count", alerts),
			zap.Time("window_from", from),
			zap.Time("window_to", to))
	}
}

// notify pushes one alert unless the same record was already alerted today.
// De-duplication is a redis SETNX keyed per record per day; without redis
// every pass alerts again, which is noisy but safe.
func (s *Scanner) notify(ctx context.Context, scanDay time.Time, alert ExpiryAlert) bool {
	if s.redis != nil {
		key := fmt.Sprintf("expiry:%s:%d:%s", alert.Kind, alert.RecordID, scanDay.Format("2006-01-02"))
		claimed, err := s.redis.SetNX(ctx, key, 1, 48*time.Hour).Result()
		if err != nil {
			s.logger.Warn("expiry dedupe check failed", zap.String("key", key), zap.Error(err))
		} else if !claimed {
			return false
		}
	}

	s.notifier.Broadcast("compliance.expiry", alert)
	s.logger.Warn("compliance record expiring",
		zap.String("kind", alert.Kind),
		zap.Int64("record_id", alert.RecordID),
		zap.Int64("vehicle_id", alert.VehicleID),
		zap.Time("due_on", alert.DueOn))
	return true
}
