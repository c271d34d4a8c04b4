package domain

// MealType is the fixed set of meal slots.
type MealType string

const (
	MealBreakfast MealType = "Breakfast"
	MealLunch     MealType = "Lunch"
	MealDinner    MealType = "Dinner"
	MealSnacks    MealType = "Snacks"
)

// MealPlan is a planned meal. Date may not be in the past.
type MealPlan struct {
	ID          string   `json:"mealPlanId"`
	UserID      string   `json:"userId"`
	MealType    MealType `json:"mealType" validate:"required,oneof=Breakfast Lunch Dinner Snacks"`
	MealName    string   `json:"mealName" validate:"required"`
	Calories    float64  `json:"calories" validate:"gte=0"`
	Protein     float64  `json:"protein" validate:"gte=0"`
	Carbs       float64  `json:"carbs" validate:"gte=0"`
	Fats        float64  `json:"fats" validate:"gte=0"`
	Description string   `json:"description" validate:"required"`
	Date        Date     `json:"date" validate:"required,notpast"`
	Username    string   `json:"username,omitempty"`
	UserProfile string   `json:"userProfile,omitempty"`
}

func (m MealPlan) Key() string { return m.ID }
