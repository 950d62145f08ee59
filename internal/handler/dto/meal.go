package dto

import (
	"github.com/dailydiet/dailydiet/internal/model"
	"github.com/dailydiet/dailydiet/internal/service"
)

// MealRequest is the body of POST /meals and PUT /meals/{id}.
type MealRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	OnDiet      Flag   `json:"on_diet"`
}

// ToInput converts the request to a service input.
func (r MealRequest) ToInput() service.MealInput {
	return service.MealInput{
		Name:        r.Name,
		Description: r.Description,
		Date:        r.Date,
		Time:        r.Time,
		OnDiet:      bool(r.OnDiet),
	}
}

// MealEnvelope wraps a single meal.
type MealEnvelope struct {
	Meal *model.Meal `json:"meal"`
}

// MealListEnvelope wraps a list of meals.
type MealListEnvelope struct {
	Meals []*model.Meal `json:"meals"`
}

// ToMealListEnvelope never returns a null list.
func ToMealListEnvelope(meals []*model.Meal) MealListEnvelope {
	if meals == nil {
		meals = []*model.Meal{}
	}
	return MealListEnvelope{Meals: meals}
}
