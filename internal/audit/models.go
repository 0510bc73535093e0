package audit

import "time"

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	UserID    string    `json:"user_id"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail,omitempty"`
}

// Audit event actions.
const (
	ActionUserCreated   = "user_created"
	ActionUserDeleted   = "user_deleted"
	ActionEventAppended = "event_appended"
)
