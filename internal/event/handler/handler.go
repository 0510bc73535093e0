package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"consentd/internal/event/models"
	"consentd/internal/platform/metrics"
	"consentd/internal/platform/middleware"
	respond "consentd/internal/transport/http/json"
	"consentd/internal/transport/http/shared"
	dErrors "consentd/pkg/domain-errors"
	"consentd/pkg/pagination"
)

// Service defines the interface for event ingestion and listing.
type Service interface {
	Create(ctx context.Context, req *models.CreateRequest) (*models.Event, error)
	List(ctx context.Context, params pagination.Params) (*models.ListResult, error)
}

// Handler handles consent event endpoints.
type Handler struct {
	events  Service
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New creates a new event Handler.
func New(events Service, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		events:  events,
		logger:  logger,
		metrics: metrics,
	}
}

// Register registers the event routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/events", h.handleCreateEvent)
	r.Get("/events", h.handleListEvents)
}

func (h *Handler) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	defer h.observe("create_event", time.Now())

	var req models.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode create event request",
			"request_id", middleware.GetRequestID(ctx),
			"error", err,
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidArgument, "invalid request body"))
		return
	}

	event, err := h.events.Create(ctx, &req)
	if err != nil {
		h.logError(ctx, "failed to create event", err)
		shared.WriteError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusCreated, toEventResponse(event))
}

func (h *Handler) handleListEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	defer h.observe("list_events", time.Now())

	params, err := pagination.ParseQuery(r.URL.Query())
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	result, err := h.events.List(ctx, params)
	if err != nil {
		h.logError(ctx, "failed to list events", err)
		shared.WriteError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusOK, toListResponse(result))
}

func (h *Handler) observe(endpoint string, start time.Time) {
	if h.metrics != nil {
		h.metrics.ObserveEndpointLatency(endpoint, time.Since(start).Seconds())
	}
}

func (h *Handler) logError(ctx context.Context, msg string, err error) {
	attrs := []any{
		"request_id", middleware.GetRequestID(ctx),
		"error", err,
	}
	if dErrors.HasCode(err, dErrors.CodeInternal) {
		h.logger.ErrorContext(ctx, msg, attrs...)
		return
	}
	h.logger.WarnContext(ctx, msg, attrs...)
}
