// internal/service/audit/service_test.go
package audit

import (
	"context"
	"errors"
	"testing"

	"fleet-service/internal/domain/audit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAuditRepo struct {
	entries   []audit.Entry
	appendErr error
}

func (f *fakeAuditRepo) Append(ctx context.Context, e *audit.Entry) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	e.ID = int64(len(f.entries) + 1)
	f.entries = append(f.entries, *e)
	return nil
}

func (f *fakeAuditRepo) List(ctx context.Context, filters *audit.ListFilters) ([]audit.Entry, int64, error) {
	return f.entries, int64(len(f.entries)), nil
}

func TestRecordCapturesRequestMetadata(t *testing.T) {
	repo := &fakeAuditRepo{}
	svc := NewService(repo, zap.NewNop())

	ctx := audit.WithMetadata(context.Background(), audit.RequestMetadata{
		ActorID:   42,
		RequestIP: "10.0.0.7",
		UserAgent: "dispatch-ui/1.2",
		RequestID: "req-1",
	})

	svc.Record(ctx, audit.ActionCreate, "reservation", 9, nil, map[string]string{"status": "approved"})

	require.Len(t, repo.entries, 1)
	e := repo.entries[0]
	assert.Equal(t, int64(42), e.ActorID)
	assert.Equal(t, audit.ActionCreate, e.Action)
	assert.Equal(t, "reservation", e.Entity)
	assert.Equal(t, int64(9), e.EntityID)
	assert.Equal(t, "10.0.0.7", e.RequestIP)
	assert.JSONEq(t, `{"status":"approved"}`, string(e.NewValue))
	assert.Nil(t, e.OldValue)
}

func TestRecordSwallowsAppendFailure(t *testing.T) {
	repo := &fakeAuditRepo{appendErr: errors.New("disk full")}
	svc := NewService(repo, zap.NewNop())

	assert.NotPanics(t, func() {
		svc.Record(context.Background(), audit.ActionUpdate, "reservation", 1, nil, nil)
	})
	assert.Empty(t, repo.entries)
}

func TestRecordSwallowsSerializationFailure(t *testing.T) {
	repo := &fakeAuditRepo{}
	svc := NewService(repo, zap.NewNop())

	// channels are not JSON-serializable
	svc.Record(context.Background(), audit.ActionUpdate, "trip", 3, make(chan int), nil)

	require.Len(t, repo.entries, 1)
	assert.Nil(t, repo.entries[0].OldValue)
}
