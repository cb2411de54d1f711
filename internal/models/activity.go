package models

import "time"

const (
	EventUserRegistered = "USER_REGISTERED"
	EventUserLogin      = "USER_LOGIN"
	EventPostCreated    = "POST_CREATED"
	EventPostUpdated    = "POST_UPDATED"
	EventPostDeleted    = "POST_DELETED"
)

// ActivityEvent is a single append-only audit entry.
type ActivityEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"` // one of the Event* constants
	ActorID     int       `json:"actor_id,omitempty"`
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
