package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dailydiet/dailydiet/internal/diet"
	"github.com/dailydiet/dailydiet/internal/handler/dto"
	"github.com/dailydiet/dailydiet/internal/model"
	"github.com/dailydiet/dailydiet/internal/service"
	"github.com/dailydiet/dailydiet/internal/session"
)

// MealService is the meal business logic the handler depends on.
type MealService interface {
	List(ctx context.Context, userID string) ([]*model.Meal, error)
	Get(ctx context.Context, userID, id string) (*model.Meal, error)
	Create(ctx context.Context, userID string, in service.MealInput) (*model.Meal, error)
	Update(ctx context.Context, userID, id string, in service.MealInput) error
	Delete(ctx context.Context, userID, id string) error
	Summary(ctx context.Context, userID string) (diet.Summary, error)
}

// MealHandler handles HTTP requests for meal operations.
// Every route must sit behind middleware.RequireSession.
type MealHandler struct {
	svc    MealService
	logger *slog.Logger
}

// NewMealHandler creates a new MealHandler.
func NewMealHandler(svc MealService, logger *slog.Logger) *MealHandler {
	return &MealHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /meals.
func (h *MealHandler) List(w http.ResponseWriter, r *http.Request) {
	user := session.MustUserFromContext(r.Context())

	meals, err := h.svc.List(r.Context(), user.ID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToMealListEnvelope(meals))
}

// Get handles GET /meals/{id}.
func (h *MealHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := session.MustUserFromContext(r.Context())

	meal, err := h.svc.Get(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MealEnvelope{Meal: meal})
}

// Create handles POST /meals.
func (h *MealHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := session.MustUserFromContext(r.Context())

	var req dto.MealRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	meal, err := h.svc.Create(r.Context(), user.ID, req.ToInput())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logger.Info("meal_created",
		"meal_id", meal.ID,
		"user_id", user.ID,
		"on_diet", meal.OnDiet,
	)

	writeJSON(w, http.StatusCreated, dto.MealEnvelope{Meal: meal})
}

// Update handles PUT /meals/{id}.
func (h *MealHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := session.MustUserFromContext(r.Context())
	id := chi.URLParam(r, "id")

	var req dto.MealRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := h.svc.Update(r.Context(), user.ID, id, req.ToInput()); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logger.Info("meal_updated", "meal_id", id, "user_id", user.ID)
	w.WriteHeader(http.StatusOK)
}

// Delete handles DELETE /meals/{id}.
func (h *MealHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := session.MustUserFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.svc.Delete(r.Context(), user.ID, id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logger.Info("meal_deleted", "meal_id", id, "user_id", user.ID)
	w.WriteHeader(http.StatusOK)
}

// Metrics handles GET /meals/metrics.
func (h *MealHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	user := session.MustUserFromContext(r.Context())

	summary, err := h.svc.Summary(r.Context(), user.ID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// handleServiceError maps service errors to HTTP responses.
func (h *MealHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{
			Error:  verr.Error(),
			Code:   "VALIDATION_ERROR",
			Fields: verr.Fields,
		})
	case errors.Is(err, service.ErrMealNotFound):
		writeError(w, http.StatusNotFound, "MEAL_NOT_FOUND", "Meal not found")
	case errors.Is(err, service.ErrInvalidMealID):
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Meal ID must be a UUID")
	default:
		h.logger.ErrorContext(r.Context(), "internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
