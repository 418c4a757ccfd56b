package services

import (
	"context"

	"transfer-admin/internal/admin-service/core/domain/model"
	"transfer-admin/internal/admin-service/core/ports"
	"transfer-admin/internal/mylogger"

	"github.com/google/uuid"
)

type ActivityService struct {
	mylog  mylogger.Logger
	repo   ports.IActivityRepo
	feed   ports.IActivityFeed
	broker ports.IEventsBroker
}

func NewActivityService(
	log mylogger.Logger,
	repo ports.IActivityRepo,
	feed ports.IActivityFeed,
	broker ports.IEventsBroker,
) ports.IActivityService {
	return &ActivityService{
		mylog:  log,
		repo:   repo,
		feed:   feed,
		broker: broker,
	}
}

// Record appends an activity record and fans it out to the live feed and the
// broker. Every step is best-effort: the caller's operation has already
// happened, so nothing here may fail it.
func (as *ActivityService) Record(ctx context.Context, entityType model.EntityType, entityID, actorID uuid.UUID, action string, details map[string]any) {
	log := as.mylog.Action("RecordActivity")

	rec := model.ActivityLog{
		EntityType: entityType,
		EntityID:   entityID,
		ActorID:    actorID,
		Action:     action,
		Details:    details,
	}

	if err := as.repo.Append(ctx, rec); err != nil {
		log.Error("append activity log failed", err, "entity_type", string(entityType), "action", action)
	}

	as.feed.Broadcast(rec)

	if err := as.broker.PublishActivity(ctx, rec); err != nil {
		log.Warn("publish activity event failed", "reason", err.Error())
	}
}

func (as *ActivityService) Recent(ctx context.Context, limit int) ([]model.ActivityLog, error) {
	return as.repo.ListRecent(ctx, limit)
}
