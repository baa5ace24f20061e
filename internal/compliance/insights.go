package compliance

import "fitscore/internal/models"

const (
	InsightsWindowDays = 7
	WeakAreaThreshold  = 60

	NoDataRecommendation = "Start tracking to get personalized insights!"
)

const (
	tierExcellent = "Excellent work! You're crushing your health goals this week."
	tierGood      = "Good progress! A few small adjustments can push you over 80%."
	tierRefocus   = "Let's refocus. Pick one area to improve this week and build from there."
)

type area struct {
	name   string
	advice string
}

// Ranking order breaks ties: the first area with the minimum average wins.
var weakAreas = []area{
	{"Nutrition", "Focus on hitting your calorie targets - try meal prepping to stay consistent."},
	{"Workout", "Complete your scheduled workouts - even a shorter session counts."},
	{"Fasting", "Stay within your eating window - set reminders for when it closes."},
	{"Sleep", "Aim for 7-9 hours of sleep - a consistent bedtime helps."},
}

// WeeklyInsights averages the given daily scores and derives recommendations.
// Medication and hydration are not ranked for the weakest area.
func WeeklyInsights(scores []models.ComplianceScore) models.WeeklyInsights {
	if len(scores) == 0 {
		return models.WeeklyInsights{
			AvgOverall:      0,
			Recommendations: []string{NoDataRecommendation},
		}
	}

	var overall, nutrition, workout, fasting, sleep int
	for _, s := range scores {
		overall += s.Overall
		nutrition += s.Nutrition
		workout += s.Workout
		fasting += s.Fasting
		sleep += s.Sleep
	}
	n := float64(len(scores))
	res := models.WeeklyInsights{
		AvgOverall:   Round(float64(overall) / n),
		AvgNutrition: Round(float64(nutrition) / n),
		AvgWorkout:   Round(float64(workout) / n),
		AvgFasting:   Round(float64(fasting) / n),
		AvgSleep:     Round(float64(sleep) / n),
	}

	switch {
	case res.AvgOverall >= GoodDayThreshold:
		res.Recommendations = append(res.Recommendations, tierExcellent)
	case res.AvgOverall >= WeakAreaThreshold:
		res.Recommendations = append(res.Recommendations, tierGood)
	default:
		res.Recommendations = append(res.Recommendations, tierRefocus)
	}

	if i, avg := weakest(res); avg < WeakAreaThreshold {
		res.Recommendations = append(res.Recommendations, weakAreas[i].advice)
	}
	return res
}

// WeakestArea returns the name of the lowest-averaged ranked area.
func WeakestArea(in models.WeeklyInsights) string {
	i, _ := weakest(in)
	return weakAreas[i].name
}

func weakest(in models.WeeklyInsights) (int, int) {
	averages := []int{in.AvgNutrition, in.AvgWorkout, in.AvgFasting, in.AvgSleep}
	idx := 0
	for i := 1; i < len(averages); i++ {
		if averages[i] < averages[idx] {
			idx = i
		}
	}
	return idx, averages[idx]
}
