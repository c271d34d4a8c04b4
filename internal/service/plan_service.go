package service

import (
	"context"
	"log"

	"alcyxob/fitsocial/internal/domain"
	"alcyxob/fitsocial/internal/listsync"
)

// crudMessages are the notices of one entity type.
type crudMessages struct {
	added, updated, deleted               string
	addFailed, updateFailed, deleteFailed string
}

// crud binds one list to its remote endpoints. Workout statuses, workout
// plans and meal plans all go through it.
type crud[T listsync.Keyed] struct {
	kind   string
	name   string
	list   *listsync.List[T]
	insert listsync.Position
	owner  func(T) string

	fetch  listsync.Fetcher[T]
	get    func(ctx context.Context, id string) (*T, error)
	create func(ctx context.Context, e T) (*T, error)
	update func(ctx context.Context, e T) (*T, error)
	remove func(ctx context.Context, id string) error

	msgs crudMessages
}

func loadEntries[T listsync.Keyed](ctx context.Context, c crud[T]) error {
	err := c.list.Load(ctx, c.fetch)
	if err != nil {
		log.Printf("ERROR: Failed to fetch %s list: %v", c.name, err)
	}
	return err
}

func getEntry[T listsync.Keyed](ctx context.Context, c crud[T], id string) (*T, error) {
	e, err := c.get(ctx, id)
	if err != nil {
		log.Printf("ERROR: Failed to fetch %s %s: %v", c.name, id, err)
		return nil, err
	}
	c.list.ApplyUpdate(*e)
	return e, nil
}

func createEntry[T listsync.Keyed](ctx context.Context, d *Dispatcher, c crud[T], e T) (*T, error) {
	if err := d.validate(e); err != nil {
		return nil, err
	}
	var created *T
	err := d.dispatch(ctx, mutation{
		key:        c.kind,
		successMsg: c.msgs.added,
		failMsg:    c.msgs.addFailed,
		request: func(ctx context.Context) error {
			res, err := c.create(ctx, e)
			if err != nil {
				return err
			}
			created = res
			return identified(res)
		},
		apply: func() {
			c.list.ApplyInsertion(*created, c.insert)
		},
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func updateEntry[T listsync.Keyed](ctx context.Context, d *Dispatcher, c crud[T], e T) (*T, error) {
	if err := d.validate(e); err != nil {
		return nil, err
	}
	var updated *T
	err := d.dispatch(ctx, mutation{
		key:        GuardKey(c.kind, e.Key()),
		successMsg: c.msgs.updated,
		failMsg:    c.msgs.updateFailed,
		request: func(ctx context.Context) error {
			res, err := c.update(ctx, e)
			if err != nil {
				return err
			}
			updated = res
			return identified(res)
		},
		apply: func() {
			c.list.ApplyUpdate(*updated)
		},
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func deleteEntry[T listsync.Keyed](ctx context.Context, d *Dispatcher, c crud[T], id string) error {
	return d.dispatch(ctx, mutation{
		key:        GuardKey(c.kind, id),
		successMsg: c.msgs.deleted,
		failMsg:    c.msgs.deleteFailed,
		request: func(ctx context.Context) error {
			return c.remove(ctx, id)
		},
		apply: func() {
			c.list.ApplyRemoval(id)
		},
	})
}

// checkOwner rejects changes to entries held locally under another user.
// Entries not held locally are left to the server to check.
func checkOwner[T listsync.Keyed](d *Dispatcher, c crud[T], id, userID string) (string, error) {
	e, ok := c.list.Get(id)
	if !ok {
		return userID, nil
	}
	if owner := c.owner(e); owner != "" && owner != userID {
		d.reject(ErrNotOwner)
		return "", ErrNotOwner
	}
	return userID, nil
}

func (d *Dispatcher) statuses() crud[domain.WorkoutStatus] {
	return crud[domain.WorkoutStatus]{
		kind:   KindWorkoutStatus,
		name:   "workout status",
		list:   d.lists.WorkoutStatuses,
		insert: listsync.Front,
		owner:  func(s domain.WorkoutStatus) string { return s.UserID },
		fetch:  d.api.ListWorkoutStatuses,
		get:    d.api.GetWorkoutStatus,
		create: d.api.CreateWorkoutStatus,
		update: d.api.UpdateWorkoutStatus,
		remove: d.api.DeleteWorkoutStatus,
		msgs: crudMessages{
			added:        "Workout status added successfully",
			updated:      "Workout status updated successfully",
			deleted:      "Workout status deleted successfully",
			addFailed:    "Failed to add workout status",
			updateFailed: "Failed to update workout status",
			deleteFailed: "Failed to delete workout status",
		},
	}
}

func (d *Dispatcher) workoutPlans() crud[domain.WorkoutPlan] {
	return crud[domain.WorkoutPlan]{
		kind:   KindWorkoutPlan,
		name:   "workout plan",
		list:   d.lists.WorkoutPlans,
		insert: listsync.Sorted,
		owner:  func(p domain.WorkoutPlan) string { return p.UserID },
		fetch:  d.api.ListWorkoutPlans,
		get:    d.api.GetWorkoutPlan,
		create: d.api.CreateWorkoutPlan,
		update: d.api.UpdateWorkoutPlan,
		remove: d.api.DeleteWorkoutPlan,
		msgs: crudMessages{
			added:        "Workout Plans added Successfully",
			updated:      "Workout Plans Updated Successfully",
			deleted:      "Workout plan deleted successfully",
			addFailed:    "Failed to add workout plans",
			updateFailed: "Failed to update workout plans",
			deleteFailed: "Failed to delete workout plan",
		},
	}
}

func (d *Dispatcher) mealPlans() crud[domain.MealPlan] {
	return crud[domain.MealPlan]{
		kind:   KindMealPlan,
		name:   "meal plan",
		list:   d.lists.MealPlans,
		insert: listsync.Sorted,
		owner:  func(m domain.MealPlan) string { return m.UserID },
		fetch:  d.api.ListMealPlans,
		get:    d.api.GetMealPlan,
		create: d.api.CreateMealPlan,
		update: d.api.UpdateMealPlan,
		remove: d.api.DeleteMealPlan,
		msgs: crudMessages{
			added:        "Meal plan added successfully",
			updated:      "Meal plan updated successfully",
			deleted:      "Meal plan deleted successfully",
			addFailed:    "Failed to add meal plan",
			updateFailed: "Failed to update meal plan",
			deleteFailed: "Failed to delete meal plan",
		},
	}
}

// --- Workout statuses ---

func (d *Dispatcher) LoadWorkoutStatuses(ctx context.Context) error {
	return loadEntries(ctx, d.statuses())
}

func (d *Dispatcher) GetWorkoutStatus(ctx context.Context, id string) (*domain.WorkoutStatus, error) {
	return getEntry(ctx, d.statuses(), id)
}

// CreateWorkoutStatus logs a workout for the logged-in user.
func (d *Dispatcher) CreateWorkoutStatus(ctx context.Context, s domain.WorkoutStatus) (*domain.WorkoutStatus, error) {
	user, err := d.currentUser()
	if err != nil {
		return nil, err
	}
	s.ID, s.UserID = "", user.ID
	return createEntry(ctx, d, d.statuses(), s)
}

func (d *Dispatcher) UpdateWorkoutStatus(ctx context.Context, id string, s domain.WorkoutStatus) (*domain.WorkoutStatus, error) {
	user, err := d.currentUser()
	if err != nil {
		return nil, err
	}
	c := d.statuses()
	if s.UserID, err = checkOwner(d, c, id, user.ID); err != nil {
		return nil, err
	}
	s.ID = id
	return updateEntry(ctx, d, c, s)
}

func (d *Dispatcher) DeleteWorkoutStatus(ctx context.Context, id string) error {
	user, err := d.currentUser()
	if err != nil {
		return err
	}
	c := d.statuses()
	if _, err := checkOwner(d, c, id, user.ID); err != nil {
		return err
	}
	return deleteEntry(ctx, d, c, id)
}

// --- Workout plans ---

func (d *Dispatcher) LoadWorkoutPlans(ctx context.Context) error {
	return loadEntries(ctx, d.workoutPlans())
}

func (d *Dispatcher) GetWorkoutPlan(ctx context.Context, id string) (*domain.WorkoutPlan, error) {
	return getEntry(ctx, d.workoutPlans(), id)
}

// CreateWorkoutPlan plans a workout for the logged-in user.
func (d *Dispatcher) CreateWorkoutPlan(ctx context.Context, p domain.WorkoutPlan) (*domain.WorkoutPlan, error) {
	user, err := d.currentUser()
	if err != nil {
		return nil, err
	}
	p.ID, p.UserID = "", user.ID
	return createEntry(ctx, d, d.workoutPlans(), p)
}

func (d *Dispatcher) UpdateWorkoutPlan(ctx context.Context, id string, p domain.WorkoutPlan) (*domain.WorkoutPlan, error) {
	user, err := d.currentUser()
	if err != nil {
		return nil, err
	}
	c := d.workoutPlans()
	if p.UserID, err = checkOwner(d, c, id, user.ID); err != nil {
		return nil, err
	}
	p.ID = id
	return updateEntry(ctx, d, c, p)
}

func (d *Dispatcher) DeleteWorkoutPlan(ctx context.Context, id string) error {
	user, err := d.currentUser()
	if err != nil {
		return err
	}
	c := d.workoutPlans()
	if _, err := checkOwner(d, c, id, user.ID); err != nil {
		return err
	}
	return deleteEntry(ctx, d, c, id)
}

// --- Meal plans ---

func (d *Dispatcher) LoadMealPlans(ctx context.Context) error {
	return loadEntries(ctx, d.mealPlans())
}

func (d *Dispatcher) GetMealPlan(ctx context.Context, id string) (*domain.MealPlan, error) {
	return getEntry(ctx, d.mealPlans(), id)
}

// CreateMealPlan plans a meal for the logged-in user. The author's name and
// picture travel with it so other users' feeds can show them.
func (d *Dispatcher) CreateMealPlan(ctx context.Context, m domain.MealPlan) (*domain.MealPlan, error) {
	user, err := d.currentUser()
	if err != nil {
		return nil, err
	}
	m.ID, m.UserID = "", user.ID
	m.Username, m.UserProfile = user.Name, user.ProfileImage
	return createEntry(ctx, d, d.mealPlans(), m)
}

func (d *Dispatcher) UpdateMealPlan(ctx context.Context, id string, m domain.MealPlan) (*domain.MealPlan, error) {
	user, err := d.currentUser()
	if err != nil {
		return nil, err
	}
	c := d.mealPlans()
	if m.UserID, err = checkOwner(d, c, id, user.ID); err != nil {
		return nil, err
	}
	m.ID = id
	m.Username, m.UserProfile = user.Name, user.ProfileImage
	return updateEntry(ctx, d, c, m)
}

func (d *Dispatcher) DeleteMealPlan(ctx context.Context, id string) error {
	user, err := d.currentUser()
	if err != nil {
		return err
	}
	c := d.mealPlans()
	if _, err := checkOwner(d, c, id, user.ID); err != nil {
		return err
	}
	return deleteEntry(ctx, d, c, id)
}
