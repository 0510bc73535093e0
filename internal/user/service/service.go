package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"consentd/internal/audit"
	"consentd/internal/platform/metrics"
	"consentd/internal/sentinel"
	"consentd/internal/user/models"
	id "consentd/pkg/domain"
	dErrors "consentd/pkg/domain-errors"
	"consentd/pkg/pagination"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store

// Store defines the persistence interface for users.
// Error Contract:
// - FindByID and Delete return sentinel.ErrNotFound when no user exists
// - Create returns sentinel.ErrConflict when the email is already in use
type Store interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, userID id.UserID) (*models.User, error)
	Delete(ctx context.Context, userID id.UserID) (*models.User, error)
	Count(ctx context.Context) (int, error)
	ListPage(ctx context.Context, limit, offset int) ([]*models.User, error)
}

// Service owns the user lifecycle. Deleting a user deletes the full consent
// event history through the store cascade; there is no partial erasure.
type Service struct {
	store   Store
	auditor *audit.Publisher
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// Option configures the Service.
type Option func(*Service)

// WithMetrics sets the metrics instance for the service.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func NewService(store Store, auditor *audit.Publisher, logger *slog.Logger, opts ...Option) *Service {
	svc := &Service{
		store:   store,
		auditor: auditor,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Create registers a new user with a unique email.
func (s *Service) Create(ctx context.Context, req *models.CreateRequest) (*models.User, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:        id.NewUserID(),
		Email:     req.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Create(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "email already in use")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create user")
	}

	s.emitAudit(ctx, audit.Event{
		UserID: user.ID.String(),
		Action: audit.ActionUserCreated,
		Detail: user.Email,
	})
	if s.metrics != nil {
		s.metrics.IncrementUsersCreated()
	}
	return user, nil
}

// Delete removes a user and, by cascade, the user's whole event history.
// Deleting an already-deleted user reports NotFound, never silent success.
func (s *Service) Delete(ctx context.Context, rawID string) (*models.User, error) {
	userID, err := id.ParseUserID(rawID)
	if err != nil {
		return nil, err
	}

	user, err := s.store.Delete(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete user")
	}

	s.emitAudit(ctx, audit.Event{
		UserID: user.ID.String(),
		Action: audit.ActionUserDeleted,
		Detail: user.Email,
	})
	if s.metrics != nil {
		s.metrics.IncrementUsersDeleted()
	}
	return user, nil
}

// List returns one page of users. The count and the page query run
// concurrently; both read committed state, so a racing write moves the totals
// of the next request, not this one.
func (s *Service) List(ctx context.Context, params pagination.Params) (*models.ListResult, error) {
	var (
		total int
		users []*models.User
	)
	offset := pagination.Paginate(0, params).Offset

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = s.store.Count(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = s.store.ListPage(gctx, params.Limit, offset)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list users")
	}

	page := pagination.Paginate(total, params)
	return &models.ListResult{
		TotalUsers: page.TotalCount,
		TotalPages: page.TotalPages,
		Page:       page.Page,
		Limit:      page.Limit,
		Users:      users,
	}, nil
}

func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.Emit(ctx, event); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"action", event.Action,
			"error", err,
		)
	}
}
