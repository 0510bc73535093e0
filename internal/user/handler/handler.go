package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"consentd/internal/platform/metrics"
	"consentd/internal/platform/middleware"
	respond "consentd/internal/transport/http/json"
	"consentd/internal/transport/http/shared"
	"consentd/internal/user/models"
	dErrors "consentd/pkg/domain-errors"
	"consentd/pkg/pagination"
)

// Service defines the interface for user lifecycle operations.
type Service interface {
	Create(ctx context.Context, req *models.CreateRequest) (*models.User, error)
	Delete(ctx context.Context, rawID string) (*models.User, error)
	List(ctx context.Context, params pagination.Params) (*models.ListResult, error)
}

// Handler handles user endpoints.
type Handler struct {
	users   Service
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New creates a new user Handler.
func New(users Service, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		users:   users,
		logger:  logger,
		metrics: metrics,
	}
}

// Register registers the user routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/users", h.handleCreateUser)
	r.Get("/users", h.handleListUsers)
	r.Delete("/users/{id}", h.handleDeleteUser)
}

func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	defer h.observe("create_user", time.Now())

	var req models.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode create user request",
			"request_id", middleware.GetRequestID(ctx),
			"error", err,
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidArgument, "invalid request body"))
		return
	}

	user, err := h.users.Create(ctx, &req)
	if err != nil {
		h.logError(ctx, "failed to create user", err)
		shared.WriteError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusCreated, toUserResponse(user))
}

func (h *Handler) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	defer h.observe("delete_user", time.Now())

	user, err := h.users.Delete(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.logError(ctx, "failed to delete user", err)
		shared.WriteError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	defer h.observe("list_users", time.Now())

	params, err := pagination.ParseQuery(r.URL.Query())
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	result, err := h.users.List(ctx, params)
	if err != nil {
		h.logError(ctx, "failed to list users", err)
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

// logError keeps handler noise down: expected rejections log at warn, real
// faults at error.
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
