package db

import (
	"context"
	"fmt"

	"transfer-admin/internal/admin-service/core/domain/model"
	"transfer-admin/internal/admin-service/core/ports"
)

type ChangeLogRepo struct {
	db Querier
}

func NewChangeLogRepo(db Querier) ports.IChangeLogRepo {
	return &ChangeLogRepo{db: db}
}

func (cr *ChangeLogRepo) Append(ctx context.Context, entry model.PricingChangeLog) error {
	q := `
	INSERT INTO pricing_change_logs (changed_by, change_type, previous_value, new_value, notes)
	VALUES ($1, $2, $3, $4, $5)
	`
	_, err := cr.db.Exec(ctx, q, entry.ChangedBy, string(entry.ChangeType), entry.PreviousValue, entry.NewValue, entry.Notes)
	if err != nil {
		return fmt.Errorf("append pricing change log: %w", err)
	}
	return nil
}

func (cr *ChangeLogRepo) ListRecent(ctx context.Context, limit int) ([]model.PricingChangeLog, error) {
	q := `
	SELECT
		id, changed_by, change_type, previous_value, new_value, notes, created_at
	FROM
		pricing_change_logs
	ORDER BY
		created_at DESC
	LIMIT $1
	`
	rows, err := cr.db.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("list pricing change logs: %w", err)
	}
	defer rows.Close()

	var out []model.PricingChangeLog
	for rows.Next() {
		var (
			entry      model.PricingChangeLog
			changeType string
		)
		if err := rows.Scan(&entry.ID, &entry.ChangedBy, &changeType, &entry.PreviousValue, &entry.NewValue, &entry.Notes, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pricing change log: %w", err)
		}
		entry.ChangeType = model.ChangeType(changeType)
		out = append(out, entry)
	}
	return out, rows.Err()
}
