package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"consentd/internal/consent/models"
	eventmodels "consentd/internal/event/models"
	"consentd/internal/platform/metrics"
	"consentd/internal/sentinel"
	usermodels "consentd/internal/user/models"
	id "consentd/pkg/domain"
	dErrors "consentd/pkg/domain-errors"
)

// EventStore is the read slice of the event store the aggregator needs.
// ListByUser must return the full history ordered ascending by
// (created_at, seq); the aggregator trusts that order and never re-sorts.
type EventStore interface {
	ListByUser(ctx context.Context, userID id.UserID) ([]*eventmodels.Event, error)
}

// UserStore answers the existence check before projecting.
type UserStore interface {
	FindByID(ctx context.Context, userID id.UserID) (*usermodels.User, error)
}

// Service derives current consent state from event history. The state is
// recomputed from a fresh snapshot on every call and never cached: the cost
// of a replay buys freedom from staleness and invalidation bugs.
type Service struct {
	events  EventStore
	users   UserStore
	metrics *metrics.Metrics
	logger  *slog.Logger
	tracer  trace.Tracer
}

// Option configures the Service.
type Option func(*Service)

// WithMetrics sets the metrics instance for the service.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTracer injects a pre-configured tracer, mainly for tests.
func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

func NewService(events EventStore, users UserStore, logger *slog.Logger, opts ...Option) *Service {
	svc := &Service{
		events: events,
		users:  users,
		logger: logger,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.tracer == nil {
		svc.tracer = otel.Tracer("consentd/consent")
	}
	return svc
}

// Project folds an ordered event sequence into the current consent state.
//
// It is a pure function: every known type starts unset, events apply in the
// given order, assertions within an event apply in stored order, and the last
// writer for a type wins unconditionally. Re-running it on the same input
// always yields the same state.
func Project(events []*eventmodels.Event) models.State {
	state := models.NewState()
	for _, event := range events {
		for _, assertion := range event.Assertions {
			state.Apply(assertion)
		}
	}
	return state
}

// LatestForUser returns the user's current consent state, derived from the
// full event history. A user with no events yields every type unset.
func (s *Service) LatestForUser(ctx context.Context, rawID string) (models.State, error) {
	userID, err := id.ParseUserID(rawID)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to verify user")
	}

	ctx, span := s.tracer.Start(ctx, "consent.project",
		trace.WithAttributes(attribute.String("user_id", userID.String())))
	defer span.End()

	events, err := s.events.ListByUser(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read event history")
	}
	span.SetAttributes(attribute.Int("event_count", len(events)))

	start := time.Now()
	state := Project(events)
	if s.metrics != nil {
		s.metrics.ObserveProjection(time.Since(start).Seconds())
	}
	if len(events) == 0 && s.logger != nil {
		s.logger.InfoContext(ctx, "no events found for user", "user_id", userID.String())
	}
	return state, nil
}
