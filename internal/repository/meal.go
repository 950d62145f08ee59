package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/dailydiet/dailydiet/internal/model"
	"github.com/jackc/pgx/v5"
)

// Common errors for meal repository operations.
var (
	ErrMealNotFound = errors.New("meal not found")
)

// MealOrder selects the ordering of a meal listing.
type MealOrder int

const (
	// OrderInserted lists meals in insertion order.
	OrderInserted MealOrder = iota
	// OrderByDate lists meals by date ascending; same-date meals keep insertion order.
	OrderByDate
)

func (o MealOrder) clause() string {
	if o == OrderByDate {
		return "ORDER BY date ASC, created_at ASC, id ASC"
	}
	return "ORDER BY created_at ASC, id ASC"
}

const mealColumns = `id::text, user_id::text, name, description, date::text, time::text, on_diet, created_at`

// CreateMeal inserts a new meal into the database.
func (r *Repository) CreateMeal(ctx context.Context, meal *model.Meal) error {
	query := `
		INSERT INTO meals (id, user_id, name, description, date, time, on_diet, created_at)
		VALUES ($1, $2, $3, $4, $5::date, $6::time, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		meal.ID,
		meal.UserID,
		meal.Name,
		meal.Description,
		meal.Date,
		meal.Time,
		meal.OnDiet,
		meal.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create meal: %w", err)
	}

	return nil
}

// GetMeal retrieves a meal by ID, scoped to its owner.
// A meal owned by someone else is reported as ErrMealNotFound.
func (r *Repository) GetMeal(ctx context.Context, userID, id string) (*model.Meal, error) {
	query := `SELECT ` + mealColumns + ` FROM meals WHERE id = $1 AND user_id = $2`

	meal, err := scanMeal(r.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMealNotFound
		}
		return nil, fmt.Errorf("failed to get meal: %w", err)
	}

	return meal, nil
}

// ListMeals retrieves all meals owned by a user in the requested order.
func (r *Repository) ListMeals(ctx context.Context, userID string, order MealOrder) ([]*model.Meal, error) {
	query := `SELECT ` + mealColumns + ` FROM meals WHERE user_id = $1 ` + order.clause()

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}
	defer rows.Close()

	meals := make([]*model.Meal, 0)
	for rows.Next() {
		meal, err := scanMeal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan meal: %w", err)
		}
		meals = append(meals, meal)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating meals: %w", err)
	}

	return meals, nil
}

// UpdateMeal overwrites the mutable fields of a meal owned by meal.UserID.
// It returns the number of rows changed; zero means the meal does not exist
// or belongs to another user.
func (r *Repository) UpdateMeal(ctx context.Context, meal *model.Meal) (int64, error) {
	query := `
		UPDATE meals
		SET name = $3, description = $4, date = $5::date, time = $6::time, on_diet = $7
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.pool.Exec(ctx, query,
		meal.ID,
		meal.UserID,
		meal.Name,
		meal.Description,
		meal.Date,
		meal.Time,
		meal.OnDiet,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update meal: %w", err)
	}

	return result.RowsAffected(), nil
}

// DeleteMeal removes a meal owned by userID and returns the number of rows deleted.
func (r *Repository) DeleteMeal(ctx context.Context, userID, id string) (int64, error) {
	result, err := r.pool.Exec(ctx, `DELETE FROM meals WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete meal: %w", err)
	}

	return result.RowsAffected(), nil
}

func scanMeal(row pgx.Row) (*model.Meal, error) {
	var meal model.Meal
	err := row.Scan(
		&meal.ID,
		&meal.UserID,
		&meal.Name,
		&meal.Description,
		&meal.Date,
		&meal.Time,
		&meal.OnDiet,
		&meal.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &meal, nil
}
