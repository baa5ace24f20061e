package nutrition

import (
	"math"

	"fitscore/internal/models"
)

const (
	KgToLbs = 2.20462

	FatLossDeficit    = 500
	MuscleGainSurplus = 300

	fatCalorieShare = 0.27
	kcalPerGramFat  = 9
	kcalPerGramProt = 4
	kcalPerGramCarb = 4
)

// DefaultActivityMultiplier applies to unknown activity levels.
const DefaultActivityMultiplier = 1.2

var activityMultipliers = map[models.ActivityLevel]float64{
	models.ActivitySedentary:        1.2,
	models.ActivityLightlyActive:    1.375,
	models.ActivityModeratelyActive: 1.55,
	models.ActivityVeryActive:       1.725,
	models.ActivityAthlete:          1.9,
}

// BMR computes the Mifflin-St Jeor basal metabolic rate. The result is not rounded.
func BMR(weightKg, heightCm float64, age int, sex models.Sex) float64 {
	base := 10*weightKg + 6.25*heightCm - 5*float64(age)
	switch sex {
	case models.SexMale:
		return base + 5
	case models.SexFemale:
		return base - 161
	default:
		return base - 78
	}
}

func ActivityMultiplier(level models.ActivityLevel) float64 {
	if m, ok := activityMultipliers[level]; ok {
		return m
	}
	return DefaultActivityMultiplier
}

func TDEE(bmr float64, level models.ActivityLevel) int {
	return round(bmr * ActivityMultiplier(level))
}

func CalorieTarget(tdee int, goal models.GoalType) int {
	switch goal {
	case models.GoalFatLoss:
		return tdee - FatLossDeficit
	case models.GoalMuscleGain:
		return tdee + MuscleGainSurplus
	default:
		return tdee
	}
}

// Macros splits calories into grams. Carbs take the remainder and may be
// negative when calories cannot cover protein and fat.
func Macros(calories int, weightKg float64, goal models.GoalType) models.MacroTargets {
	proteinPerLb := 0.8
	if goal == models.GoalMuscleGain || goal == models.GoalBodyRecomposition {
		proteinPerLb = 1.0
	}

	protein := round(weightKg * KgToLbs * proteinPerLb)
	fats := round(float64(calories) * fatCalorieShare / kcalPerGramFat)
	carbs := round(float64(calories-protein*kcalPerGramProt-fats*kcalPerGramFat) / kcalPerGramCarb)

	return models.MacroTargets{ProteinG: protein, CarbsG: carbs, FatsG: fats}
}

func Plan(p models.UserProfile) models.NutritionPlan {
	bmr := BMR(p.WeightKg, p.HeightCm, p.Age, p.Sex)
	tdee := TDEE(bmr, p.ActivityLevel)
	calories := CalorieTarget(tdee, p.GoalType)

	return models.NutritionPlan{
		BMR:      bmr,
		TDEE:     tdee,
		Calories: calories,
		Macros:   Macros(calories, p.WeightKg, p.GoalType),
	}
}

// round rounds half toward positive infinity.
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}
