package service

import (
	"context"
	"sort"
	"sync"

	"github.com/dailydiet/dailydiet/internal/model"
	"github.com/dailydiet/dailydiet/internal/repository"
)

// memStore is an in-memory MealStore and UserStore.
type memStore struct {
	mu    sync.Mutex
	meals []*model.Meal
	users []*model.User
	err   error
}

func (m *memStore) CreateMeal(ctx context.Context, meal *model.Meal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	cp := *meal
	m.meals = append(m.meals, &cp)
	return nil
}

func (m *memStore) GetMeal(ctx context.Context, userID, id string) (*model.Meal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, meal := range m.meals {
		if meal.ID == id && meal.UserID == userID {
			cp := *meal
			return &cp, nil
		}
	}
	return nil, repository.ErrMealNotFound
}

func (m *memStore) ListMeals(ctx context.Context, userID string, order repository.MealOrder) ([]*model.Meal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*model.Meal, 0)
	for _, meal := range m.meals {
		if meal.UserID == userID {
			cp := *meal
			out = append(out, &cp)
		}
	}
	if order == repository.OrderByDate {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	}
	return out, nil
}

func (m *memStore) UpdateMeal(ctx context.Context, meal *model.Meal) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	for _, existing := range m.meals {
		if existing.ID == meal.ID && existing.UserID == meal.UserID {
			existing.Name = meal.Name
			existing.Description = meal.Description
			existing.Date = meal.Date
			existing.Time = meal.Time
			existing.OnDiet = meal.OnDiet
			return 1, nil
		}
	}
	return 0, nil
}

func (m *memStore) DeleteMeal(ctx context.Context, userID, id string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	for i, meal := range m.meals {
		if meal.ID == id && meal.UserID == userID {
			m.meals = append(m.meals[:i], m.meals[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (m *memStore) CreateUser(ctx context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return repository.ErrEmailExists
		}
	}
	cp := *user
	m.users = append(m.users, &cp)
	return nil
}

func (m *memStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *memStore) ListUsersBySessionToken(ctx context.Context, token string) ([]*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*model.User, 0)
	for _, u := range m.users {
		if u.SessionToken == token {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}
