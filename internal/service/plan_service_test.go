package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"alcyxob/fitsocial/internal/apiclient"
	"alcyxob/fitsocial/internal/domain"
	"alcyxob/fitsocial/internal/notify"
	"alcyxob/fitsocial/internal/service"
	"alcyxob/fitsocial/internal/validation"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
)

func newStatus() domain.WorkoutStatus {
	return domain.WorkoutStatus{
		Distance:    gofakeit.Float64Range(0, 500),
		PushUps:     gofakeit.IntRange(0, 100),
		Weight:      gofakeit.Float64Range(0, 200),
		Description: gofakeit.Sentence(4),
		Date:        date(0),
	}
}

func newMeal(daysFromToday int) domain.MealPlan {
	return domain.MealPlan{
		MealType:    domain.MealLunch,
		MealName:    gofakeit.Lunch(),
		Calories:    650,
		Protein:     40,
		Carbs:       60,
		Fats:        20,
		Description: gofakeit.Sentence(4),
		Date:        date(daysFromToday),
	}
}

func newPlan(daysFromToday int) domain.WorkoutPlan {
	return domain.WorkoutPlan{
		WorkoutPlanName: domain.PlanLegs,
		Exercises:       "Squats, lunges",
		Sets:            4,
		Repetitions:     12,
		Description:     gofakeit.Sentence(4),
		Date:            date(daysFromToday),
	}
}

func mealDates(ms []domain.MealPlan) []domain.Date {
	out := make([]domain.Date, len(ms))
	for i, m := range ms {
		out[i] = m.Date
	}
	return out
}

func TestDoubleSubmitIsGuarded(t *testing.T) {
	env := newEnv(t, nil)
	env.login(t)
	release := env.fake.Hold(http.MethodPost, "/workoutStatus")
	defer release()

	done := make(chan error, 1)
	go func() {
		_, err := env.d.CreateWorkoutStatus(context.Background(), newStatus())
		done <- err
	}()
	require.Eventually(t, func() bool {
		return env.d.State(service.KindWorkoutStatus) == service.StateSubmitting
	}, 2*time.Second, 5*time.Millisecond)

	_, err := env.d.CreateWorkoutStatus(context.Background(), newStatus())
	require.ErrorIs(t, err, service.ErrBusy)

	release()
	require.NoError(t, <-done)
	require.Equal(t, 1, env.fake.Calls(http.MethodPost, "/workoutStatus"))
	require.Len(t, env.fake.WorkoutStatuses(), 1)
	require.Equal(t, service.StateIdle, env.d.State(service.KindWorkoutStatus))
	require.Equal(t, service.StateSucceeded, env.d.Outcome(service.KindWorkoutStatus))
	requireNotice(t, env.notices.Drain(), notify.LevelSuccess, "Workout status added successfully")
}

func TestGuardIsPerEntity(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, nil)
	me := env.login(t)
	a := newStatus()
	a.UserID = me.ID
	a = env.fake.SeedWorkoutStatus(a)
	b := newStatus()
	b.UserID = me.ID
	b = env.fake.SeedWorkoutStatus(b)
	require.NoError(t, env.d.LoadWorkoutStatuses(ctx))

	release := env.fake.Hold(http.MethodDelete, "/workoutStatus/:id")
	done := make(chan error, 1)
	go func() { done <- env.d.DeleteWorkoutStatus(ctx, a.ID) }()
	require.Eventually(t, func() bool {
		return env.d.State(service.GuardKey(service.KindWorkoutStatus, a.ID)) == service.StateSubmitting
	}, 2*time.Second, 5*time.Millisecond)

	require.Equal(t, service.StateIdle, env.d.State(service.GuardKey(service.KindWorkoutStatus, b.ID)))
	require.ErrorIs(t, env.d.DeleteWorkoutStatus(ctx, a.ID), service.ErrBusy)

	release()
	require.NoError(t, <-done)
	require.Equal(t, 1, env.lists.WorkoutStatuses.Len())
}

func TestInvalidStatusIsNeverSent(t *testing.T) {
	cases := map[string]func(*domain.WorkoutStatus){
		"distance over 500":   func(s *domain.WorkoutStatus) { s.Distance = 501 },
		"negative distance":   func(s *domain.WorkoutStatus) { s.Distance = -1 },
		"negative push-ups":   func(s *domain.WorkoutStatus) { s.PushUps = -5 },
		"future date":         func(s *domain.WorkoutStatus) { s.Date = date(1) },
		"missing description": func(s *domain.WorkoutStatus) { s.Description = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			env := newEnv(t, nil)
			env.login(t)
			s := newStatus()
			mutate(&s)

			_, err := env.d.CreateWorkoutStatus(context.Background(), s)
			require.True(t, validation.IsValidationError(err))
			require.Zero(t, env.fake.Calls(http.MethodPost, "/workoutStatus"))
			notices := env.notices.Drain()
			require.Len(t, notices, 1)
			require.Equal(t, notify.LevelError, notices[0].Level)
		})
	}
}

func TestStatusBoundsAreInclusive(t *testing.T) {
	env := newEnv(t, nil)
	env.login(t)
	for _, km := range []float64{0, 500} {
		s := newStatus()
		s.Distance = km
		_, err := env.d.CreateWorkoutStatus(context.Background(), s)
		require.NoError(t, err)
	}
	require.Equal(t, 2, env.lists.WorkoutStatuses.Len())
}

func TestCreateStatusGoesToFront(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, nil)
	me := env.login(t)
	old := newStatus()
	old.UserID = me.ID
	env.fake.SeedWorkoutStatus(old)
	require.NoError(t, env.d.LoadWorkoutStatuses(ctx))

	created, err := env.d.CreateWorkoutStatus(ctx, newStatus())
	require.NoError(t, err)
	require.Equal(t, me.ID, created.UserID)
	require.Equal(t, created.ID, env.lists.WorkoutStatuses.Items()[0].ID)
}

func TestUpdateStatusPreservesLength(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, nil)
	me := env.login(t)
	var ids []string
	for i := 0; i < 3; i++ {
		s := newStatus()
		s.UserID = me.ID
		ids = append(ids, env.fake.SeedWorkoutStatus(s).ID)
	}
	require.NoError(t, env.d.LoadWorkoutStatuses(ctx))

	upd := newStatus()
	upd.Description = "Updated run"
	_, err := env.d.UpdateWorkoutStatus(ctx, ids[1], upd)
	require.NoError(t, err)
	requireNotice(t, env.notices.Drain(), notify.LevelSuccess, "Workout status updated successfully")

	items := env.lists.WorkoutStatuses.Items()
	require.Len(t, items, 3)
	require.Equal(t, ids[1], items[1].ID)
	require.Equal(t, "Updated run", items[1].Description)
	require.Equal(t, me.ID, items[1].UserID)
}

func TestUpdateStatusFailureLeavesList(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, nil)
	me := env.login(t)
	s := newStatus()
	s.UserID = me.ID
	s = env.fake.SeedWorkoutStatus(s)
	require.NoError(t, env.d.LoadWorkoutStatuses(ctx))
	env.fake.Fail(http.MethodPut, "/workoutStatus/:id", http.StatusInternalServerError, "")

	upd := newStatus()
	upd.Description = "Never stored"
	_, err := env.d.UpdateWorkoutStatus(ctx, s.ID, upd)
	require.Error(t, err)
	requireNotice(t, env.notices.Drain(), notify.LevelError, "Failed to update workout status")
	require.Equal(t, []domain.WorkoutStatus{s}, env.lists.WorkoutStatuses.Items())
}

func TestDeleteOthersStatusIsRejected(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, nil)
	env.login(t)
	s := newStatus()
	s.UserID = env.otherUser(t).ID
	s = env.fake.SeedWorkoutStatus(s)
	require.NoError(t, env.d.LoadWorkoutStatuses(ctx))

	require.ErrorIs(t, env.d.DeleteWorkoutStatus(ctx, s.ID), service.ErrNotOwner)
	require.Zero(t, env.fake.Calls(http.MethodDelete, "/workoutStatus/:id"))
}

func TestMealPlansSortedNewestFirst(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, nil)
	me := env.login(t)
	for _, days := range []int{2, 9, 0, 5} {
		m := newMeal(days)
		m.UserID = me.ID
		env.fake.SeedMealPlan(m)
	}
	require.NoError(t, env.d.LoadMealPlans(ctx))
	require.Equal(t, []domain.Date{date(9), date(5), date(2), date(0)}, mealDates(env.lists.MealPlans.Items()))

	created, err := env.d.CreateMealPlan(ctx, newMeal(3))
	require.NoError(t, err)
	require.Equal(t, me.Name, created.Username)
	requireNotice(t, env.notices.Drain(), notify.LevelSuccess, "Meal plan added successfully")
	require.Equal(t, []domain.Date{date(9), date(5), date(3), date(2), date(0)}, mealDates(env.lists.MealPlans.Items()))
}

func TestPastMealPlanIsRejected(t *testing.T) {
	env := newEnv(t, nil)
	env.login(t)

	_, err := env.d.CreateMealPlan(context.Background(), newMeal(-1))
	require.True(t, validation.IsValidationError(err))
	requireNotice(t, env.notices.Drain(), notify.LevelError, "Cannot select past dates")
	require.Zero(t, env.fake.Calls(http.MethodPost, "/mealPlans/add"))
}

func TestDeleteMealPlanRemovesOne(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, nil)
	me := env.login(t)
	var ids []string
	for i := 0; i < 3; i++ {
		m := newMeal(i)
		m.UserID = me.ID
		ids = append(ids, env.fake.SeedMealPlan(m).ID)
	}
	require.NoError(t, env.d.LoadMealPlans(ctx))

	require.NoError(t, env.d.DeleteMealPlan(ctx, ids[0]))
	requireNotice(t, env.notices.Drain(), notify.LevelSuccess, "Meal plan deleted successfully")
	require.Equal(t, 2, env.lists.MealPlans.Len())
	_, ok := env.lists.MealPlans.Get(ids[0])
	require.False(t, ok)
	require.Len(t, env.fake.MealPlans(), 2)
}

func TestWorkoutPlanLifecycle(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, nil)
	env.login(t)
	require.NoError(t, env.d.LoadWorkoutPlans(ctx))

	p, err := env.d.CreateWorkoutPlan(ctx, newPlan(1))
	require.NoError(t, err)
	requireNotice(t, env.notices.Drain(), notify.LevelSuccess, "Workout Plans added Successfully")

	upd := newPlan(2)
	upd.Sets = 5
	_, err = env.d.UpdateWorkoutPlan(ctx, p.ID, upd)
	require.NoError(t, err)
	got, err := env.d.GetWorkoutPlan(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, 5, got.Sets)

	zeroSets := newPlan(2)
	zeroSets.Sets = 0
	_, err = env.d.UpdateWorkoutPlan(ctx, p.ID, zeroSets)
	require.True(t, validation.IsValidationError(err))

	require.NoError(t, env.d.DeleteWorkoutPlan(ctx, p.ID))
	require.Zero(t, env.lists.WorkoutPlans.Len())
}

// idlessAPI answers workout status creates without an id.
type idlessAPI struct {
	service.API
}

func (a idlessAPI) CreateWorkoutStatus(ctx context.Context, s domain.WorkoutStatus) (*domain.WorkoutStatus, error) {
	if _, err := a.API.CreateWorkoutStatus(ctx, s); err != nil {
		return nil, err
	}
	s.ID = ""
	return &s, nil
}

func TestEmptyCreateAnswerIsAFailure(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, nil)
	env.login(t)
	require.NoError(t, env.d.LoadMealPlans(ctx))
	env.fake.Blank(http.MethodPost, "/mealPlans/add", http.StatusCreated)

	_, err := env.d.CreateMealPlan(ctx, newMeal(1))
	require.ErrorIs(t, err, apiclient.ErrEmptyResponse)
	require.Zero(t, env.lists.MealPlans.Len())
	require.Equal(t, service.StateFailed, env.d.Outcome(service.KindMealPlan))
	requireNotice(t, env.notices.Drain(), notify.LevelError, "Failed to add meal plan")
}

func TestCreateAnswerWithoutIDIsAFailure(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, nil)
	env.login(t)
	d := service.NewDispatcher(idlessAPI{env.client}, env.holder, env.lists, validation.New(env.clock), env.notices, nil)
	require.NoError(t, d.LoadWorkoutStatuses(ctx))

	_, err := d.CreateWorkoutStatus(ctx, newStatus())
	require.ErrorIs(t, err, service.ErrMissingID)
	require.Zero(t, env.lists.WorkoutStatuses.Len())
	requireNotice(t, env.notices.Drain(), notify.LevelError, "Failed to add workout status")
}
