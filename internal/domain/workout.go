package domain

// WorkoutPlanName is the fixed set of workout plan categories.
type WorkoutPlanName string

const (
	PlanChest WorkoutPlanName = "Chest"
	PlanBack  WorkoutPlanName = "Back"
	PlanArms  WorkoutPlanName = "Arms"
	PlanLegs  WorkoutPlanName = "Legs"
)

// WorkoutStatus is a logged workout. Date is YYYY-MM-DD and may not be in the future.
type WorkoutStatus struct {
	ID          string  `json:"statusId"`
	UserID      string  `json:"userId"`
	Distance    float64 `json:"distance" validate:"gte=0,lte=500"`
	PushUps     int     `json:"pushUps" validate:"gte=0"`
	Weight      float64 `json:"weight" validate:"gte=0"`
	Description string  `json:"description" validate:"required"`
	Date        Date    `json:"date" validate:"required,notfuture"`
}

func (w WorkoutStatus) Key() string { return w.ID }

// WorkoutPlan is a planned workout. Date may not be in the past.
type WorkoutPlan struct {
	ID              string          `json:"workoutPlanId"`
	UserID          string          `json:"userId"`
	WorkoutPlanName WorkoutPlanName `json:"workoutPlanName" validate:"required,oneof=Chest Back Arms Legs"`
	Exercises       string          `json:"exercises" validate:"required"`
	Sets            int             `json:"sets" validate:"gte=1"`
	Repetitions     int             `json:"repetitions" validate:"gte=1"`
	Description     string          `json:"description" validate:"required"`
	Date            Date            `json:"date" validate:"required,notpast"`
}

func (w WorkoutPlan) Key() string { return w.ID }
