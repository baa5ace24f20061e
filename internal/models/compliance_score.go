package models

import "time"

const OverallComplianceStreak = "Overall Compliance"

// SubScores are the six per-dimension scores and their weighted overall,
// each in [0,100].
type SubScores struct {
	Nutrition  int `json:"nutrition"`
	Workout    int `json:"workout"`
	Fasting    int `json:"fasting"`
	Sleep      int `json:"sleep"`
	Medication int `json:"medication"`
	Hydration  int `json:"hydration"`
	Overall    int `json:"overall"`
}

// ComplianceScore is unique per (UserID, Date).
type ComplianceScore struct {
	UserID string `json:"user_id"`
	Date   string `json:"date"`
	SubScores
	UpdatedAt time.Time `json:"updated_at"`
}

// Streak is unique per (UserID, Type).
type Streak struct {
	UserID        string `json:"user_id"`
	Type          string `json:"type"`
	CurrentStreak int    `json:"current_streak"`
	LongestStreak int    `json:"longest_streak"`
	LastUpdated   string `json:"last_updated"`
}

type WeeklyInsights struct {
	AvgOverall      int      `json:"avg_overall"`
	AvgNutrition    int      `json:"avg_nutrition"`
	AvgWorkout      int      `json:"avg_workout"`
	AvgFasting      int      `json:"avg_fasting"`
	AvgSleep        int      `json:"avg_sleep"`
	Recommendations []string `json:"recommendations"`
}
