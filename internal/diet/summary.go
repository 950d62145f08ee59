// Package diet derives aggregate statistics from a user's meal history.
//
// Everything here is a pure function over an in-memory slice, so callers
// decide how meals are fetched and the statistics can be tested without a store.
package diet

import (
	"sort"

	"github.com/dailydiet/dailydiet/internal/model"
)

// Summary holds the aggregate statistics for one user's meals.
type Summary struct {
	TotalMeals          int `json:"totalMeals"`
	TotalMealsOnDiet    int `json:"totalMealsOnDiet"`
	TotalMealsNotOnDiet int `json:"totalMealsNotOnDiet"`
	BestMealSequence    int `json:"bestMealSequence"`
}

// Summarize counts meals and computes the longest on-diet streak.
//
// The streak runs over meals ordered by date ascending. Meals sharing a date
// keep their relative input order, so a store query ordered by date and then
// insertion yields the same result as sorting here. The input is not modified.
func Summarize(meals []*model.Meal) Summary {
	ordered := make([]*model.Meal, len(meals))
	copy(ordered, meals)
	// DateLayout is zero-padded, so lexical order is calendar order.
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date < ordered[j].Date
	})

	flags := make([]bool, len(ordered))
	var s Summary
	for i, m := range ordered {
		flags[i] = m.OnDiet
		if m.OnDiet {
			s.TotalMealsOnDiet++
		} else {
			s.TotalMealsNotOnDiet++
		}
	}
	s.TotalMeals = len(ordered)
	s.BestMealSequence = BestStreak(flags)

	return s
}

// BestStreak returns the length of the longest run of consecutive true values.
func BestStreak(onDiet []bool) int {
	current, best := 0, 0
	for _, ok := range onDiet {
		if ok {
			current++
		} else {
			current = 0
		}
		if current > best {
			best = current
		}
	}
	return best
}
