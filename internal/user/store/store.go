package store

import (
	"context"

	"consentd/internal/user/models"
	id "consentd/pkg/domain"
)

// Store is the narrow persistence capability set for users.
//
// Error contract: FindByID and Delete return sentinel.ErrNotFound (wrapped)
// when the user does not exist; Create returns sentinel.ErrConflict (wrapped)
// when the email is already taken. Services translate sentinels into domain
// errors exactly once.
type Store interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, userID id.UserID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// Delete removes the user and, by cascade, all owned events and their
	// assertions. It returns the deleted row.
	Delete(ctx context.Context, userID id.UserID) (*models.User, error)
	Count(ctx context.Context) (int, error)
	// ListPage returns users ordered by creation time, oldest first.
	ListPage(ctx context.Context, limit, offset int) ([]*models.User, error)
}
