package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"consentd/internal/consent/models"
	"consentd/internal/platform/metrics"
	"consentd/internal/platform/middleware"
	respond "consentd/internal/transport/http/json"
	"consentd/internal/transport/http/shared"
	dErrors "consentd/pkg/domain-errors"
)

// Service defines the interface for consent projection reads.
type Service interface {
	LatestForUser(ctx context.Context, rawUserID string) (models.State, error)
}

// Handler handles the projected consent read endpoint.
type Handler struct {
	consents Service
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// New creates a new consent Handler.
func New(consents Service, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		consents: consents,
		logger:   logger,
		metrics:  metrics,
	}
}

// Register registers the consent routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/consents/{userId}", h.handleGetLatestConsents)
}

func (h *Handler) handleGetLatestConsents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	defer func() {
		if h.metrics != nil {
			h.metrics.ObserveEndpointLatency("get_latest_consents", time.Since(start).Seconds())
		}
	}()

	userID := chi.URLParam(r, "userId")
	state, err := h.consents.LatestForUser(ctx, userID)
	if err != nil {
		attrs := []any{
			"request_id", middleware.GetRequestID(ctx),
			"user_id", userID,
			"error", err,
		}
		if dErrors.HasCode(err, dErrors.CodeInternal) {
			h.logger.ErrorContext(ctx, "failed to project consents", attrs...)
		} else {
			h.logger.WarnContext(ctx, "failed to project consents", attrs...)
		}
		shared.WriteError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusOK, toStateResponse(state))
}
