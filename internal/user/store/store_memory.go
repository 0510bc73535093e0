package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"consentd/internal/sentinel"
	"consentd/internal/user/models"
	id "consentd/pkg/domain"
)

// CascadeFunc removes all records owned by a user in another store. The
// in-memory pair uses it to mirror the ON DELETE CASCADE the Postgres schema
// provides for free.
type CascadeFunc func(ctx context.Context, userID id.UserID) error

// InMemoryStore keeps users in a map guarded by a mutex. It returns deep
// copies so callers can never mutate stored state.
type InMemoryStore struct {
	mu      sync.RWMutex
	users   map[id.UserID]*models.User
	byEmail map[string]id.UserID
	cascade CascadeFunc
}

// Option configures the InMemoryStore.
type Option func(*InMemoryStore)

// WithCascade registers a function invoked after a successful delete to remove
// the user's events.
func WithCascade(fn CascadeFunc) Option {
	return func(s *InMemoryStore) {
		s.cascade = fn
	}
}

// NewInMemory constructs an empty in-memory user store.
func NewInMemory(opts ...Option) *InMemoryStore {
	s := &InMemoryStore{
		users:   make(map[id.UserID]*models.User),
		byEmail: make(map[string]id.UserID),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetCascade wires the event cascade after construction, breaking the
// construction-order dependency between the two memory stores.
func (s *InMemoryStore) SetCascade(fn CascadeFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cascade = fn
}

func (s *InMemoryStore) Create(_ context.Context, user *models.User) error {
	if user == nil {
		return fmt.Errorf("user is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byEmail[user.Email]; taken {
		return fmt.Errorf("email already in use: %w", sentinel.ErrConflict)
	}
	cp := *user
	s.users[user.ID] = &cp
	s.byEmail[user.Email] = user.ID
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, userID id.UserID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[userID]
	if !ok {
		return nil, fmt.Errorf("user not found: %w", sentinel.ErrNotFound)
	}
	cp := *user
	return &cp, nil
}

func (s *InMemoryStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("user not found: %w", sentinel.ErrNotFound)
	}
	cp := *s.users[userID]
	return &cp, nil
}

func (s *InMemoryStore) Delete(ctx context.Context, userID id.UserID) (*models.User, error) {
	s.mu.Lock()
	user, ok := s.users[userID]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("user not found: %w", sentinel.ErrNotFound)
	}
	cp := *user
	delete(s.users, userID)
	delete(s.byEmail, user.Email)
	cascade := s.cascade
	s.mu.Unlock()

	if cascade != nil {
		if err := cascade(ctx, userID); err != nil {
			return nil, fmt.Errorf("cascade delete events: %w", err)
		}
	}
	return &cp, nil
}

func (s *InMemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), nil
}

func (s *InMemoryStore) ListPage(_ context.Context, limit, offset int) ([]*models.User, error) {
	s.mu.RLock()
	all := make([]*models.User, 0, len(s.users))
	for _, u := range s.users {
		cp := *u
		all = append(all, &cp)
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID.String() < all[j].ID.String()
		}
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})

	if offset >= len(all) {
		return []*models.User{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}
