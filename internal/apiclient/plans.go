package apiclient

import (
	"context"
	"net/http"

	"alcyxob/fitsocial/internal/domain"
)

// --- Workout statuses ---

func (c *Client) ListWorkoutStatuses(ctx context.Context) ([]domain.WorkoutStatus, error) {
	var out []domain.WorkoutStatus
	if err := c.do(ctx, http.MethodGet, "/workoutStatus", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetWorkoutStatus(ctx context.Context, id string) (*domain.WorkoutStatus, error) {
	var out domain.WorkoutStatus
	if err := c.do(ctx, http.MethodGet, "/workoutStatus/"+pathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateWorkoutStatus(ctx context.Context, s domain.WorkoutStatus) (*domain.WorkoutStatus, error) {
	var out domain.WorkoutStatus
	if err := c.do(ctx, http.MethodPost, "/workoutStatus", nil, s, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateWorkoutStatus(ctx context.Context, s domain.WorkoutStatus) (*domain.WorkoutStatus, error) {
	var out domain.WorkoutStatus
	if err := c.do(ctx, http.MethodPut, "/workoutStatus/"+pathEscape(s.ID), nil, s, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteWorkoutStatus(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/workoutStatus/"+pathEscape(id), nil, nil, nil)
}

// --- Workout plans ---

func (c *Client) ListWorkoutPlans(ctx context.Context) ([]domain.WorkoutPlan, error) {
	var out []domain.WorkoutPlan
	if err := c.do(ctx, http.MethodGet, "/workoutPlans", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetWorkoutPlan(ctx context.Context, id string) (*domain.WorkoutPlan, error) {
	var out domain.WorkoutPlan
	if err := c.do(ctx, http.MethodGet, "/workoutPlans/"+pathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateWorkoutPlan(ctx context.Context, p domain.WorkoutPlan) (*domain.WorkoutPlan, error) {
	var out domain.WorkoutPlan
	if err := c.do(ctx, http.MethodPost, "/workoutPlans", nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateWorkoutPlan(ctx context.Context, p domain.WorkoutPlan) (*domain.WorkoutPlan, error) {
	var out domain.WorkoutPlan
	if err := c.do(ctx, http.MethodPut, "/workoutPlans/"+pathEscape(p.ID), nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteWorkoutPlan(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/workoutPlans/"+pathEscape(id), nil, nil, nil)
}

// --- Meal plans ---
// The meal plan routes use /add and /update/{id} rather than the plain REST shape.

func (c *Client) ListMealPlans(ctx context.Context) ([]domain.MealPlan, error) {
	var out []domain.MealPlan
	if err := c.do(ctx, http.MethodGet, "/mealPlans", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetMealPlan(ctx context.Context, id string) (*domain.MealPlan, error) {
	var out domain.MealPlan
	if err := c.do(ctx, http.MethodGet, "/mealPlans/"+pathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateMealPlan(ctx context.Context, m domain.MealPlan) (*domain.MealPlan, error) {
	var out domain.MealPlan
	if err := c.do(ctx, http.MethodPost, "/mealPlans/add", nil, m, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateMealPlan(ctx context.Context, m domain.MealPlan) (*domain.MealPlan, error) {
	var out domain.MealPlan
	if err := c.do(ctx, http.MethodPut, "/mealPlans/update/"+pathEscape(m.ID), nil, m, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteMealPlan(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/mealPlans/"+pathEscape(id), nil, nil, nil)
}
