package compliance

import (
	"math"

	"fitscore/internal/models"
)

const (
	NutritionFullBand = 150
	NutritionHalfBand = 300
	DailyWaterGoalOz  = 64
)

// Weights of the overall score. They sum to 1.00.
const (
	WeightNutrition  = 0.20
	WeightWorkout    = 0.20
	WeightFasting    = 0.15
	WeightSleep      = 0.15
	WeightMedication = 0.15
	WeightHydration  = 0.15
)

// Score maps one day of activity to its sub-scores and weighted overall.
// Missing records map to fixed values, never to an error.
func Score(data models.DailyData) models.SubScores {
	s := models.SubScores{
		Nutrition:  NutritionScore(data.DailyTarget, data.FoodLogs),
		Workout:    WorkoutScore(data.Workout),
		Fasting:    FastingScore(data.FastingPlan, data.FoodLogs),
		Sleep:      SleepScore(data.SleepLog),
		Medication: MedicationScore(data.MedicationLogs),
		Hydration:  HydrationScore(data.WaterLogs),
	}
	s.Overall = Overall(s)
	return s
}

func NutritionScore(target *models.DailyTarget, logs []models.FoodLog) int {
	if target == nil || target.Calories <= 0 {
		return 0
	}
	var total float64
	for _, l := range logs {
		total += l.Calories
	}
	variance := math.Abs(total - target.Calories)
	switch {
	case variance <= NutritionFullBand:
		return 100
	case variance <= NutritionHalfBand:
		return 50
	default:
		return 0
	}
}

func WorkoutScore(session *models.WorkoutSession) int {
	if session == nil || session.CompletedAt != nil {
		return 100
	}
	return 0
}

// FastingScore zeroes the day if any food log falls outside the eating
// window. "HH:MM" strings order lexicographically.
func FastingScore(plan *models.FastingPlan, logs []models.FoodLog) int {
	if plan == nil || !plan.IsActive {
		return 100
	}
	for _, l := range logs {
		if l.Time < plan.EatingWindowStart || l.Time > plan.EatingWindowEnd {
			return 0
		}
	}
	return 100
}

func SleepScore(log *models.SleepLog) int {
	if log == nil {
		return 0
	}
	hours := float64(log.DurationMinutes) / 60
	switch {
	case hours >= 7 && hours <= 9:
		return 100
	case hours >= 6 && hours < 7, hours > 9 && hours <= 10:
		return 50
	default:
		return 0
	}
}

func MedicationScore(logs []models.MedicationLog) int {
	if len(logs) == 0 {
		return 100
	}
	taken := 0
	for _, l := range logs {
		if l.Taken() {
			taken++
		}
	}
	return Round(100 * float64(taken) / float64(len(logs)))
}

func HydrationScore(logs []models.WaterLog) int {
	var total float64
	for _, l := range logs {
		total += l.AmountOz
	}
	return min(Round(100*total/DailyWaterGoalOz), 100)
}

func Overall(s models.SubScores) int {
	return Round(WeightNutrition*float64(s.Nutrition) +
		WeightWorkout*float64(s.Workout) +
		WeightFasting*float64(s.Fasting) +
		WeightSleep*float64(s.Sleep) +
		WeightMedication*float64(s.Medication) +
		WeightHydration*float64(s.Hydration))
}

// Round rounds half toward positive infinity, so -2.5 becomes -2.
func Round(v float64) int {
	return int(math.Floor(v + 0.5))
}
