package db

import (
	"context"
	"encoding/json"
	"fmt"

	"transfer-admin/internal/admin-service/core/domain/model"
	"transfer-admin/internal/admin-service/core/ports"
)

type ActivityRepo struct {
	db Querier
}

func NewActivityRepo(db Querier) ports.IActivityRepo {
	return &ActivityRepo{db: db}
}

func (ar *ActivityRepo) Append(ctx context.Context, rec model.ActivityLog) error {
	details := rec.Details
	if details == nil {
		details = map[string]any{}
	}
	payload, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("marshal activity details: %w", err)
	}

	q := `
	INSERT INTO activity_logs (entity_type, entity_id, actor_id, action, details)
	VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := ar.db.Exec(ctx, q, string(rec.EntityType), rec.EntityID, rec.ActorID, rec.Action, payload); err != nil {
		return fmt.Errorf("append activity log: %w", err)
	}
	return nil
}

func (ar *ActivityRepo) ListRecent(ctx context.Context, limit int) ([]model.ActivityLog, error) {
	q := `
	SELECT
		id, entity_type, entity_id, actor_id, action, details, created_at
	FROM
		activity_logs
	ORDER BY
		created_at DESC
	LIMIT $1
	`
	rows, err := ar.db.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("list activity logs: %w", err)
	}
	defer rows.Close()

	var out []model.ActivityLog
	for rows.Next() {
		var (
			rec        model.ActivityLog
			entityType string
			details    []byte
		)
		if err := rows.Scan(&rec.ID, &entityType, &rec.EntityID, &rec.ActorID, &rec.Action, &details, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity log: %w", err)
		}
		rec.EntityType = model.EntityType(entityType)
		if len(details) > 0 {
			if err := json.Unmarshal(details, &rec.Details); err != nil {
				return nil, fmt.Errorf("unmarshal activity details: %w", err)
			}
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
