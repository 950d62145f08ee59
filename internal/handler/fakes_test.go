package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dailydiet/dailydiet/internal/diet"
	"github.com/dailydiet/dailydiet/internal/model"
	"github.com/dailydiet/dailydiet/internal/service"
	"github.com/dailydiet/dailydiet/internal/session"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// withUser attaches a resolved session user the way RequireSession does.
func withUser(r *http.Request, user *model.User) *http.Request {
	return r.WithContext(session.ContextWithUser(r.Context(), user))
}

// withID sets the {id} route parameter the way chi does.
func withID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

type fakeMealService struct {
	meals   []*model.Meal
	summary diet.Summary
	err     error

	gotUserID string
	gotID     string
	gotInput  service.MealInput
}

func (f *fakeMealService) List(ctx context.Context, userID string) ([]*model.Meal, error) {
	f.gotUserID = userID
	return f.meals, f.err
}

func (f *fakeMealService) Get(ctx context.Context, userID, id string) (*model.Meal, error) {
	f.gotUserID, f.gotID = userID, id
	if f.err != nil {
		return nil, f.err
	}
	return f.meals[0], nil
}

func (f *fakeMealService) Create(ctx context.Context, userID string, in service.MealInput) (*model.Meal, error) {
	f.gotUserID, f.gotInput = userID, in
	if f.err != nil {
		return nil, f.err
	}
	return &model.Meal{
		ID:          "33333333-3333-4333-8333-333333333333",
		UserID:      userID,
		Name:        in.Name,
		Description: in.Description,
		Date:        in.Date,
		Time:        in.Time,
		OnDiet:      in.OnDiet,
	}, nil
}

func (f *fakeMealService) Update(ctx context.Context, userID, id string, in service.MealInput) error {
	f.gotUserID, f.gotID, f.gotInput = userID, id, in
	return f.err
}

func (f *fakeMealService) Delete(ctx context.Context, userID, id string) error {
	f.gotUserID, f.gotID = userID, id
	return f.err
}

func (f *fakeMealService) Summary(ctx context.Context, userID string) (diet.Summary, error) {
	f.gotUserID = userID
	return f.summary, f.err
}

type fakeUserService struct {
	out   *service.RegisterOutput
	users []*model.User
	err   error

	gotInput service.RegisterInput
	gotToken string
}

func (f *fakeUserService) Register(ctx context.Context, in service.RegisterInput) (*service.RegisterOutput, error) {
	f.gotInput = in
	if f.err != nil {
		return nil, f.err
	}
	return f.out, nil
}

func (f *fakeUserService) ListBySession(ctx context.Context, token string) ([]*model.User, error) {
	f.gotToken = token
	return f.users, f.err
}
