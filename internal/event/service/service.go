package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"consentd/internal/audit"
	"consentd/internal/event/models"
	"consentd/internal/platform/metrics"
	"consentd/internal/sentinel"
	usermodels "consentd/internal/user/models"
	id "consentd/pkg/domain"
	dErrors "consentd/pkg/domain-errors"
	"consentd/pkg/pagination"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,UserStore

// Store defines the persistence interface for consent events.
// Error Contract:
// - Create returns sentinel.ErrNotFound when the target user vanished between
//   the existence check and the append (the delete/create race)
type Store interface {
	Create(ctx context.Context, event *models.Event) error
	Count(ctx context.Context) (int, error)
	ListPage(ctx context.Context, limit, offset int) ([]*models.Event, error)
}

// UserStore is the referential slice of the user store the validator needs.
type UserStore interface {
	FindByID(ctx context.Context, userID id.UserID) (*usermodels.User, error)
}

// Service guards what may enter the event log. Validation is all-or-nothing:
// a batch with one bad assertion appends nothing, and no write happens before
// every rule has passed.
type Service struct {
	store   Store
	users   UserStore
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

func NewService(store Store, users UserStore, auditor *audit.Publisher, logger *slog.Logger, opts ...Option) *Service {
	svc := &Service{
		store:   store,
		users:   users,
		auditor: auditor,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Create validates and appends a consent event for a user.
func (s *Service) Create(ctx context.Context, req *models.CreateRequest) (*models.Event, error) {
	if err := req.Validate(); err != nil {
		s.countRejection("invalid_request")
		return nil, err
	}

	userID, err := id.ParseUserID(req.UserID)
	if err != nil {
		s.countRejection("bad_user_id")
		return nil, err
	}

	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.countRejection("unknown_user")
			return nil, dErrors.New(dErrors.CodeNotFound,
				fmt.Sprintf("user with ID %s does not exist", req.UserID))
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to verify user")
	}

	event := &models.Event{
		ID:         id.NewEventID(),
		UserID:     userID,
		CreatedAt:  time.Now().UTC(),
		Assertions: req.Assertions,
	}
	if err := s.store.Create(ctx, event); err != nil {
		// The user existed a moment ago but the foreign key rejected the
		// append: the delete/create race resolved in favor of the delete.
		if errors.Is(err, sentinel.ErrNotFound) {
			s.countRejection("unknown_user")
			return nil, dErrors.New(dErrors.CodeNotFound,
				fmt.Sprintf("user with ID %s does not exist", req.UserID))
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create event")
	}

	s.emitAudit(ctx, audit.Event{
		UserID: userID.String(),
		Action: audit.ActionEventAppended,
		Detail: event.ID.String(),
	})
	if s.metrics != nil {
		s.metrics.IncrementEventsAppended()
		for _, a := range event.Assertions {
			s.metrics.IncrementAssertionsRecorded(string(a.Type), a.Enabled)
		}
	}
	return event, nil
}

// List returns one page of events across all users, oldest first.
func (s *Service) List(ctx context.Context, params pagination.Params) (*models.ListResult, error) {
	var (
		total  int
		events []*models.Event
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
		events, err = s.store.ListPage(gctx, params.Limit, offset)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list events")
	}

	page := pagination.Paginate(total, params)
	return &models.ListResult{
		TotalEvents: page.TotalCount,
		TotalPages:  page.TotalPages,
		Page:        page.Page,
		Limit:       page.Limit,
		Events:      events,
	}, nil
}

func (s *Service) countRejection(reason string) {
	if s.metrics != nil {
		s.metrics.IncrementValidationRejected(reason)
	}
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
