package domain_test

import (
	"encoding/json"
	"testing"

	"alcyxob/fitsocial/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestPlanIDsUseServerFieldNames(t *testing.T) {
	var meal domain.MealPlan
	require.NoError(t, json.Unmarshal([]byte(`{"mealPlanId":"m1","mealType":"Lunch","date":"2030-01-01"}`), &meal))
	require.Equal(t, "m1", meal.Key())

	var plan domain.WorkoutPlan
	require.NoError(t, json.Unmarshal([]byte(`{"workoutPlanId":"w1","workoutPlanName":"Legs"}`), &plan))
	require.Equal(t, "w1", plan.Key())

	var status domain.WorkoutStatus
	require.NoError(t, json.Unmarshal([]byte(`{"statusId":"s1","distance":5}`), &status))
	require.Equal(t, "s1", status.Key())
	require.Equal(t, 5.0, status.Distance)

	raw, err := json.Marshal(meal)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"mealPlanId":"m1"`)
}

func TestAlternativeIDNames(t *testing.T) {
	for _, tc := range []struct {
		name string
		body string
	}{
		{"plain id", `{"id":"x1","mealName":"Oats"}`},
		{"mongo id", `{"_id":"x1","mealName":"Oats"}`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var meal domain.MealPlan
			require.NoError(t, json.Unmarshal([]byte(tc.body), &meal))
			require.Equal(t, "x1", meal.Key())
			require.Equal(t, "Oats", meal.MealName)
		})
	}

	var post domain.Post
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"p1","comments":[{"_id":"c1","content":"hi"}]}`), &post))
	require.Equal(t, "p1", post.Key())
	require.Equal(t, "c1", post.Comments[0].Key())
}
