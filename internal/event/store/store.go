package store

import (
	"context"

	"consentd/internal/event/models"
	id "consentd/pkg/domain"
)

// Store is the narrow persistence capability set for consent events.
//
// Error contract: Create returns sentinel.ErrNotFound (wrapped) when the
// target user no longer exists; other failures are wrapped infrastructure
// errors. Events are immutable: there is no update operation, and deletion
// only happens through the user cascade.
type Store interface {
	// Create appends the event and its assertions atomically and assigns the
	// strictly increasing sequence number that breaks created-at ties.
	Create(ctx context.Context, event *models.Event) error
	// ListByUser returns the user's full event history ordered ascending by
	// (created_at, seq).
	ListByUser(ctx context.Context, userID id.UserID) ([]*models.Event, error)
	Count(ctx context.Context) (int, error)
	// ListPage returns events across all users ordered by (created_at, seq).
	ListPage(ctx context.Context, limit, offset int) ([]*models.Event, error)
	// DeleteByUser removes all events owned by a user. The Postgres schema
	// does this via ON DELETE CASCADE; the in-memory pair wires it as the
	// user store's cascade hook.
	DeleteByUser(ctx context.Context, userID id.UserID) error
}
