// internal/service/audit/service.go
package audit

import (
	"context"
	"encoding/json"

	"fleet-service/internal/domain/audit"

	"go.uber.org/zap"
)

type Service struct {
	repo   audit.Repository
	logger *zap.Logger
}

func NewService(repo audit.Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Record appends an audit entry for a mutation. When called inside DB.WithTx
// the insert joins the caller's transaction, so a rolled-back operation leaves
// no trail. Failures here are logged and swallowed: the business operation
// already succeeded and must not be failed by its own paper trail.
func (s *Service) Record(ctx context.Context, action audit.Action, entity string, entityID int64, oldValue, newValue interface{}) {
	md := audit.MetadataFrom(ctx)

	entry := &audit.Entry{
		ActorID:   md.ActorID,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		RequestIP: md.RequestIP,
		UserAgent: md.UserAgent,
		RequestID: md.RequestID,
	}

	var err error
	if oldValue != nil {
		if entry.OldValue, err = json.Marshal(oldValue); err != nil {
			s.logger.Warn("audit: failed to serialize old value",
				zap.String("entity", entity), zap.Int64("entity_id", entityID), zap.Error(err))
			entry.OldValue = nil
		}
	}
	if newValue != nil {
		if entry.NewValue, err = json.Marshal(newValue); err != nil {
			s.logger.Warn("audit: failed to serialize new value",
				zap.String("entity", entity), zap.Int64("entity_id", entityID), zap.Error(err))
			entry.NewValue = nil
		}
	}

	if err := s.repo.Append(ctx, entry); err != nil {
		s.logger.Warn("audit: failed to append entry",
			zap.String("entity", entity),
			zap.Int64("entity_id", entityID),
			zap.String("action", string(action)),
			zap.Error(err))
	}
}

// List powers the audit viewer.
func (s *Service) List(ctx context.Context, filters *audit.ListFilters) ([]audit.Entry, int64, error) {
	return s.repo.List(ctx, filters)
}
