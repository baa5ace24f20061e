package models

import "github.com/google/uuid"

const SnapshotVersion = 1

// Snapshot is the full-store persistence envelope.
type Snapshot struct {
	Version          int               `json:"version"`
	DailyTargets     []DailyTarget     `json:"daily_targets"`
	FoodLogs         []FoodLog         `json:"food_logs"`
	WorkoutSessions  []WorkoutSession  `json:"workout_sessions"`
	SleepLogs        []SleepLog        `json:"sleep_logs"`
	FastingPlans     []FastingPlan     `json:"fasting_plans"`
	Medications      []Medication      `json:"medications"`
	MedicationLogs   []MedicationLog   `json:"medication_logs"`
	WaterLogs        []WaterLog        `json:"water_logs"`
	ComplianceScores []ComplianceScore `json:"compliance_scores"`
	Streaks          []Streak          `json:"streaks"`
}

// EnsureID returns id, or a fresh UUID when id is empty.
func EnsureID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}
