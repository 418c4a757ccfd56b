package ports

import (
	"context"

	"transfer-admin/internal/admin-service/core/domain/model"
)

// ICacheRefresher pokes the downstream quote-cache after pricing mutations.
// Callers treat it as fire-and-forget: a refresh failure is logged, never
// surfaced as the mutation's failure.
type ICacheRefresher interface {
	Refresh(ctx context.Context) error
}

// IEventsBroker fans pricing and activity events out to sibling services.
// All publishes are best-effort.
type IEventsBroker interface {
	PublishPricingChanged(ctx context.Context, changeTypes []model.ChangeType) error
	PublishActivity(ctx context.Context, rec model.ActivityLog) error
	IsAlive() bool
	Close() error
}

// IActivityFeed pushes freshly recorded activity to connected admin dashboards.
type IActivityFeed interface {
	Broadcast(rec model.ActivityLog)
}
