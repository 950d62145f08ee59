package model

import "time"

// Wire formats for the calendar date and wall-clock time of a meal.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// Meal is a single meal record owned by exactly one user.
// Date and Time are kept in their wire formats (DateLayout, TimeLayout).
type Meal struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	OnDiet      bool      `json:"on_diet"`
	CreatedAt   time.Time `json:"created_at"`
}

