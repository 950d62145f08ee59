package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dailydiet/dailydiet/internal/diet"
	"github.com/dailydiet/dailydiet/internal/metrics"
	"github.com/dailydiet/dailydiet/internal/model"
	"github.com/dailydiet/dailydiet/internal/repository"
)

// MealStore is the persistence the meal service needs.
type MealStore interface {
	CreateMeal(ctx context.Context, meal *model.Meal) error
	GetMeal(ctx context.Context, userID, id string) (*model.Meal, error)
	ListMeals(ctx context.Context, userID string, order repository.MealOrder) ([]*model.Meal, error)
	UpdateMeal(ctx context.Context, meal *model.Meal) (int64, error)
	DeleteMeal(ctx context.Context, userID, id string) (int64, error)
}

// MealInput carries the mutable fields of a meal for create and update.
type MealInput struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"required,min=1,max=2000"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string `json:"time" validate:"required,hhmmss"`
	OnDiet      bool   `json:"on_diet"`
}

// Validate checks the input against the meal contract.
func (in MealInput) Validate() error {
	return validateStruct(in)
}

// MealService handles meal business logic. Every operation is scoped to the
// user ID it is given; callers pass the ID resolved from the session.
type MealService struct {
	store   MealStore
	logger  *slog.Logger
	metrics metrics.Recorder
	now     func() time.Time
}

// NewMealService creates a new MealService.
func NewMealService(store MealStore, logger *slog.Logger, recorder metrics.Recorder) *MealService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &MealService{
		store:   store,
		logger:  logger,
		metrics: recorder,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// List returns the user's meals in insertion order.
func (s *MealService) List(ctx context.Context, userID string) ([]*model.Meal, error) {
	return s.store.ListMeals(ctx, userID, repository.OrderInserted)
}

// Get returns one of the user's meals. Meals owned by other users are
// reported as ErrMealNotFound so their existence does not leak.
func (s *MealService) Get(ctx context.Context, userID, id string) (*model.Meal, error) {
	if err := checkMealID(id); err != nil {
		return nil, err
	}

	meal, err := s.store.GetMeal(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrMealNotFound) {
			return nil, ErrMealNotFound
		}
		return nil, err
	}
	return meal, nil
}

// Create validates the input and records a new meal for the user.
func (s *MealService) Create(ctx context.Context, userID string, in MealInput) (*model.Meal, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	meal := &model.Meal{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        in.Name,
		Description: in.Description,
		Date:        in.Date,
		Time:        in.Time,
		OnDiet:      in.OnDiet,
		CreatedAt:   s.now(),
	}

	if err := s.store.CreateMeal(ctx, meal); err != nil {
		return nil, fmt.Errorf("failed to create meal: %w", err)
	}

	s.metrics.IncMealCreated()
	return meal, nil
}

// Update overwrites a meal's fields. When the meal does not exist or belongs
// to another user nothing changes and no error is returned.
func (s *MealService) Update(ctx context.Context, userID, id string, in MealInput) error {
	if err := checkMealID(id); err != nil {
		return err
	}
	if err := in.Validate(); err != nil {
		return err
	}

	n, err := s.store.UpdateMeal(ctx, &model.Meal{
		ID:          id,
		UserID:      userID,
		Name:        in.Name,
		Description: in.Description,
		Date:        in.Date,
		Time:        in.Time,
		OnDiet:      in.OnDiet,
	})
	if err != nil {
		return err
	}

	if n == 0 {
		s.logger.DebugContext(ctx, "meal update matched no rows", "meal_id", id, "user_id", userID)
		return nil
	}
	s.metrics.IncMealUpdated()
	return nil
}

// Delete removes a meal. Like Update, a missing or foreign meal is a no-op.
func (s *MealService) Delete(ctx context.Context, userID, id string) error {
	if err := checkMealID(id); err != nil {
		return err
	}

	n, err := s.store.DeleteMeal(ctx, userID, id)
	if err != nil {
		return err
	}

	if n == 0 {
		s.logger.DebugContext(ctx, "meal delete matched no rows", "meal_id", id, "user_id", userID)
		return nil
	}
	s.metrics.IncMealDeleted()
	return nil
}

// Summary computes the user's meal statistics over their date-ordered history.
func (s *MealService) Summary(ctx context.Context, userID string) (diet.Summary, error) {
	start := time.Now()

	meals, err := s.store.ListMeals(ctx, userID, repository.OrderByDate)
	if err != nil {
		return diet.Summary{}, err
	}

	summary := diet.Summarize(meals)
	s.metrics.ObserveSummaryDuration(time.Since(start))
	return summary, nil
}

func checkMealID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidMealID
	}
	return nil
}
