package models

type Sex string

const (
	SexMale   Sex = "Male"
	SexFemale Sex = "Female"
	SexOther  Sex = "Other"
)

type ActivityLevel string

const (
	ActivitySedentary        ActivityLevel = "Sedentary"
	ActivityLightlyActive    ActivityLevel = "Lightly Active"
	ActivityModeratelyActive ActivityLevel = "Moderately Active"
	ActivityVeryActive       ActivityLevel = "Very Active"
	ActivityAthlete          ActivityLevel = "Athlete"
)

type GoalType string

const (
	GoalFatLoss           GoalType = "Fat Loss"
	GoalMuscleGain        GoalType = "Muscle Gain"
	GoalBodyRecomposition GoalType = "Body Recomposition"
	GoalMaintain          GoalType = "Maintain"
)

type UserProfile struct {
	WeightKg      float64       `json:"weight_kg" validate:"required|min:1"`
	HeightCm      float64       `json:"height_cm" validate:"required|min:1"`
	Age           int           `json:"age" validate:"required|min:1"`
	Sex           Sex           `json:"sex"`
	ActivityLevel ActivityLevel `json:"activity_level"`
	GoalType      GoalType      `json:"goal_type"`
}

type MacroTargets struct {
	ProteinG int `json:"protein_g"`
	CarbsG   int `json:"carbs_g"`
	FatsG    int `json:"fats_g"`
}

type NutritionPlan struct {
	BMR      float64      `json:"bmr"`
	TDEE     int          `json:"tdee"`
	Calories int          `json:"calories"`
	Macros   MacroTargets `json:"macros"`
}

// PlanRequest asks for a nutrition plan. With Save set, the plan is stored as
// the DailyTarget of UserID on Date.
type PlanRequest struct {
	UserProfile
	UserID string `json:"user_id"`
	Date   string `json:"date"`
	Save   bool   `json:"save"`
}

type PlanResult struct {
	NutritionPlan
	Target *DailyTarget `json:"target,omitempty"`
}
