// internal/repository/postgres/audit_repo.go
package postgres

import (
	"context"
	"fmt"
	"strings"

	"fleet-service/internal/domain/audit"
)

type AuditRepository struct {
	db *DB
}

func NewAuditRepository(db *DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Append(ctx context.Context, e *audit.Entry) error {
	query := `
		INSERT INTO audit_logs (actor_id, action, entity, entity_id, old_value, new_value,
			request_ip, user_agent, request_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

	err := r.db.queryerFrom(ctx).QueryRow(ctx, query,
		e.ActorID, e.Action, e.Entity, e.EntityID, e.OldValue, e.NewValue,
		e.RequestIP, e.UserAgent, e.RequestID,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

func (r *AuditRepository) List(ctx context.Context, filters *audit.ListFilters) ([]audit.Entry, int64, error) {
	where := []string{}
	args := []interface{}{}
	argPos := 1

	if filters.Entity != "" {
		where = append(where, fmt.Sprintf("entity = $%d", argPos))
		args = append(args, filters.Entity)
		argPos++
	}
	if filters.EntityID != nil {
		where = append(where, fmt.Sprintf("entity_id = $%d", argPos))
		args = append(args, *filters.EntityID)
		argPos++
	}
	if filters.ActorID != nil {
		where = append(where, fmt.Sprintf("actor_id = $%d", argPos))
		args = append(args, *filters.ActorID)
		argPos++
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = " WHERE " + strings.Join(where, " AND ")
	}

	q := r.db.queryerFrom(ctx)

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM audit_logs"+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count audit entries: %w", err)
	}

	page := filters.Page
	if page < 1 {
		page = 1
	}
	pageSize := filters.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	query := `SELECT id, actor_id, action, entity, entity_id, old_value, new_value,
			request_ip, user_agent, request_id, created_at
		FROM audit_logs` + whereClause +
		fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	entries := []audit.Entry{}
	for rows.Next() {
		var e audit.Entry
		if err := rows.Scan(
			&e.ID, &e.ActorID, &e.Action, &e.Entity, &e.EntityID, &e.OldValue, &e.NewValue,
			&e.RequestIP, &e.UserAgent, &e.RequestID, &e.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}
