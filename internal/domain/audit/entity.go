package audit

import (
	"context"
	"encoding/json"
	"time"
)

type Action string

const (
	ActionCreate Action = "CREATE"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
)

// Entry is one immutable record of a mutation. Entries are append-only: the
// core never updates or deletes them.
type Entry struct {
	ID        int64           `json:"id" db:"id"`
	ActorID   int64           `json:"actor_id" db:"actor_id"`
	Action    Action          `json:"action" db:"action"`
	Entity    string          `json:"entity" db:"entity"`
	EntityID  int64           `json:"entity_id" db:"entity_id"`
	OldValue  json.RawMessage `json:"old_value,omitempty" db:"old_value"`
	NewValue  json.RawMessage `json:"new_value,omitempty" db:"new_value"`
	RequestIP string          `json:"request_ip" db:"request_ip"`
	UserAgent string          `json:"user_agent" db:"user_agent"`
	RequestID string          `json:"request_id" db:"request_id"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// RequestMetadata is captured once per request by middleware and travels in
// the context for the recorder.
type RequestMetadata struct {
	ActorID   int64
	RequestIP string
	UserAgent string
	RequestID string
}

// ListFilters for the audit viewer
type ListFilters struct {
	Entity   string `form:"entity"`
	EntityID *int64 `form:"entity_id"`
	ActorID  *int64 `form:"actor_id"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type Repository interface {
	// Append writes an entry. Inside DB.WithTx the write joins the caller's
	// transaction, so a rolled-back operation leaves no trail.
	Append(ctx context.Context, e *Entry) error
	List(ctx context.Context, filters *ListFilters) ([]Entry, int64, error)
}

type metadataKey struct{}

// WithMetadata stores request metadata in the context.
func WithMetadata(ctx context.Context, md RequestMetadata) context.Context {
	return context.WithValue(ctx, metadataKey{}, md)
}

// MetadataFrom extracts request metadata; the zero value means the call did
// not come through the HTTP layer (scanner, import jobs).
func MetadataFrom(ctx context.Context) RequestMetadata {
	md, _ := ctx.Value(metadataKey{}).(RequestMetadata)
	return md
}
