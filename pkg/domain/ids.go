// Package domain provides type-safe identifiers to prevent mixing up IDs at compile time.
package domain

import (
	"github.com/google/uuid"

	dErrors "consentd/pkg/domain-errors"
)

// Distinct ID types - compiler prevents passing a UserID where an EventID is expected.
type (
	UserID  uuid.UUID
	EventID uuid.UUID
)

// NewUserID returns a fresh random user ID.
func NewUserID() UserID { return UserID(uuid.New()) }

// NewEventID returns a fresh random event ID.
func NewEventID() EventID { return EventID(uuid.New()) }

// Parse functions - use at trust boundaries (handlers, API inputs).

func ParseUserID(s string) (UserID, error) {
	id, err := parseUUID(s, "user ID")
	return UserID(id), err
}

func ParseEventID(s string) (EventID, error) {
	id, err := parseUUID(s, "event ID")
	return EventID(id), err
}

// String methods - for logging and debugging.

func (id UserID) String() string  { return uuid.UUID(id).String() }
func (id EventID) String() string { return uuid.UUID(id).String() }

// Text marshalling - IDs travel as canonical UUID strings in JSON.

func (id UserID) MarshalText() ([]byte, error)  { return []byte(uuid.UUID(id).String()), nil }
func (id EventID) MarshalText() ([]byte, error) { return []byte(uuid.UUID(id).String()), nil }

func (id *UserID) UnmarshalText(b []byte) error {
	parsed, err := uuid.Parse(string(b))
	if err != nil {
		return err
	}
	*id = UserID(parsed)
	return nil
}

func (id *EventID) UnmarshalText(b []byte) error {
	parsed, err := uuid.Parse(string(b))
	if err != nil {
		return err
	}
	*id = EventID(parsed)
	return nil
}

// IsNil checks - used for service-layer validation.

func (id UserID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id EventID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// parseUUID is the shared validation logic. Nil UUIDs are allowed here; store
// lookups return proper "not found" errors for them, which keeps the error
// surface consistent for callers probing deleted entities.
func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidArgument, label+" cannot be empty")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidArgument, "invalid "+label+" format")
	}
	return id, nil
}
