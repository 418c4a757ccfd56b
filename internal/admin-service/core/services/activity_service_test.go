package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"transfer-admin/internal/admin-service/core/domain/model"
	"transfer-admin/internal/mylogger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeActivityRepo struct {
	mu      sync.Mutex
	records []model.ActivityLog
	err     error
}

func (f *fakeActivityRepo) Append(_ context.Context, rec model.ActivityLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, rec)
	return nil
}

func (f *fakeActivityRepo) ListRecent(_ context.Context, limit int) ([]model.ActivityLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if limit > len(f.records) {
		limit = len(f.records)
	}
	return f.records[:limit], nil
}

type fakeFeed struct {
	mu     sync.Mutex
	events []model.ActivityLog
}

func (f *fakeFeed) Broadcast(rec model.ActivityLog) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, rec)
}

func newActivityFixture(t *testing.T) (*fakeActivityRepo, *fakeFeed, *fakeBroker, *ActivityService) {
	t.Helper()
	log, err := mylogger.New(mylogger.LevelError)
	require.NoError(t, err)

	repo := &fakeActivityRepo{}
	feed := &fakeFeed{}
	broker := &fakeBroker{}
	svc := NewActivityService(log, repo, feed, broker).(*ActivityService)
	return repo, feed, broker, svc
}

func TestRecord_AppendsAndFansOut(t *testing.T) {
	repo, feed, broker, svc := newActivityFixture(t)

	entityID, actorID := uuid.New(), uuid.New()
	svc.Record(context.Background(), model.EntityBooking, entityID, actorID, "status_changed",
		map[string]any{"from": "REQUESTED", "to": "CONFIRMED"})

	require.Len(t, repo.records, 1)
	rec := repo.records[0]
	assert.Equal(t, model.EntityBooking, rec.EntityType)
	assert.Equal(t, entityID, rec.EntityID)
	assert.Equal(t, actorID, rec.ActorID)
	assert.Equal(t, "status_changed", rec.Action)

	assert.Len(t, feed.events, 1)
	assert.Equal(t, 1, broker.activityCalls)
}

func TestRecord_NeverPanicsOrFailsOnSideEffectErrors(t *testing.T) {
	repo, feed, broker, svc := newActivityFixture(t)
	repo.err = errors.New("activity table unavailable")
	broker.err = errors.New("broker unreachable")

	// Record has no error return: the only observable failure mode would be a panic.
	svc.Record(context.Background(), model.EntityDriver, uuid.New(), uuid.New(), "verification_resolved", nil)

	assert.Empty(t, repo.records)
	assert.Len(t, feed.events, 1, "feed still gets the event")
}
