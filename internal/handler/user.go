package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dailydiet/dailydiet/internal/handler/dto"
	"github.com/dailydiet/dailydiet/internal/model"
	"github.com/dailydiet/dailydiet/internal/service"
	"github.com/dailydiet/dailydiet/internal/session"
)

// UserService is the user business logic the handler depends on.
type UserService interface {
	Register(ctx context.Context, in service.RegisterInput) (*service.RegisterOutput, error)
	ListBySession(ctx context.Context, token string) ([]*model.User, error)
}

// CookieConfig controls the session cookie handed out on registration.
type CookieConfig struct {
	MaxAge time.Duration
	Secure bool
}

// UserHandler handles HTTP requests for user registration and listing.
type UserHandler struct {
	svc    UserService
	cookie CookieConfig
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc UserService, cookie CookieConfig, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		svc:    svc,
		cookie: cookie,
		logger: logger,
	}
}

// Register handles POST /users.
// A caller without a session cookie receives one with the response.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	out, err := h.svc.Register(r.Context(), req.ToInput(session.TokenFromRequest(r)))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	if out.Issued {
		http.SetCookie(w, session.NewCookie(out.Token, h.cookie.MaxAge, h.cookie.Secure))
	}

	h.logger.Info("user_registered",
		"user_id", out.User.ID,
		"session_issued", out.Issued,
	)

	writeJSON(w, http.StatusCreated, dto.UserEnvelope{User: out.User})
}

// List handles GET /users. Only users sharing the caller's session are returned.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListBySession(r.Context(), session.TokenFromRequest(r))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserListEnvelope(users))
}

// handleServiceError maps service errors to HTTP responses.
func (h *UserHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{
			Error:  verr.Error(),
			Code:   "VALIDATION_ERROR",
			Fields: verr.Fields,
		})
	case errors.Is(err, service.ErrEmailExists):
		writeError(w, http.StatusConflict, "EMAIL_EXISTS", "Email already exists")
	default:
		h.logger.ErrorContext(r.Context(), "internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
