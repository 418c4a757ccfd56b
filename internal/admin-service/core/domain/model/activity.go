package model

import (
	"time"

	"github.com/google/uuid"
)

type EntityType string

const (
	EntityBooking EntityType = "BOOKING"
	EntityDriver  EntityType = "DRIVER"
)

// ActivityLog is an append-only record of a state transition performed
// through the portal. It is an audit trail, not authoritative state.
type ActivityLog struct {
	ID         uuid.UUID      `json:"id"`
	EntityType EntityType     `json:"entity_type"`
	EntityID   uuid.UUID      `json:"entity_id"`
	ActorID    uuid.UUID      `json:"actor_id"`
	Action     string         `json:"action"`
	Details    map[string]any `json:"details"`
	CreatedAt  time.Time      `json:"created_at"`
}
