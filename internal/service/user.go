package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dailydiet/dailydiet/internal/metrics"
	"github.com/dailydiet/dailydiet/internal/model"
	"github.com/dailydiet/dailydiet/internal/repository"
	"github.com/dailydiet/dailydiet/internal/session"
)

// UserStore is the persistence the user service needs.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsersBySessionToken(ctx context.Context, token string) ([]*model.User, error)
}

// RegisterInput defines input for registering a user.
type RegisterInput struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"required,email"`
	// SessionToken is the token the caller already holds, if any.
	SessionToken string `json:"-"`
}

// RegisterOutput is the registered user plus the session token in effect.
type RegisterOutput struct {
	User  *model.User
	Token string
	// Issued is true when a new token was generated for this registration.
	Issued bool
}

// UserService handles registration and session-scoped user listing.
type UserService struct {
	store    UserStore
	metrics  metrics.Recorder
	newToken func() (string, error)
	now      func() time.Time
}

// NewUserService creates a new UserService.
func NewUserService(store UserStore, recorder metrics.Recorder) *UserService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &UserService{
		store:    store,
		metrics:  recorder,
		newToken: session.NewToken,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Register creates a user under the caller's session token, issuing a fresh
// token when the caller has none. Duplicate emails fail with ErrEmailExists.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*RegisterOutput, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	_, err := s.store.GetUserByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, ErrEmailExists
	case !errors.Is(err, repository.ErrUserNotFound):
		return nil, err
	}

	token := in.SessionToken
	issued := false
	if token == "" {
		token, err = s.newToken()
		if err != nil {
			return nil, err
		}
		issued = true
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		SessionToken: token,
		CreatedAt:    s.now(),
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		// Another request may have registered the email after our check
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.metrics.IncUserRegistered()
	return &RegisterOutput{User: user, Token: token, Issued: issued}, nil
}

// ListBySession returns the users registered under token.
// Without a token there is nothing to match and the list is empty.
func (s *UserService) ListBySession(ctx context.Context, token string) ([]*model.User, error) {
	if token == "" {
		return []*model.User{}, nil
	}
	return s.store.ListUsersBySessionToken(ctx, token)
}
