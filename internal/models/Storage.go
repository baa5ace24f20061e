package models

import (
	"context"
	"time"
)

const (
	TableDailyTargets     = "daily_targets"
	TableFoodLogs         = "food_logs"
	TableWorkoutSessions  = "workout_sessions"
	TableSleepLogs        = "sleep_logs"
	TableFastingPlans     = "fasting_plans"
	TableMedications      = "medications"
	TableMedicationLogs   = "medication_logs"
	TableWaterLogs        = "water_logs"
	TableComplianceScores = "compliance_scores"
	TableStreaks          = "streaks"
)

var Tables = []string{
	TableDailyTargets,
	TableFoodLogs,
	TableWorkoutSessions,
	TableSleepLogs,
	TableFastingPlans,
	TableMedications,
	TableMedicationLogs,
	TableWaterLogs,
	TableComplianceScores,
	TableStreaks,
}

// DailyDataReader reads the records that make up a DailyData bundle.
// Absent records are reported as nil with a nil error.
type DailyDataReader interface {
	GetDailyTarget(ctx context.Context, userID, date string) (*DailyTarget, error)
	ListFoodLogs(ctx context.Context, userID, date string) ([]FoodLog, error)
	GetWorkoutSession(ctx context.Context, userID, date string) (*WorkoutSession, error)
	GetSleepLog(ctx context.Context, userID, date string) (*SleepLog, error)
	GetActiveFastingPlan(ctx context.Context, userID string) (*FastingPlan, error)
	ListActiveMedications(ctx context.Context, userID string) ([]Medication, error)
	// ListMedicationLogs returns logs scheduled in [from, to).
	ListMedicationLogs(ctx context.Context, userID string, from, to time.Time) ([]MedicationLog, error)
	ListWaterLogs(ctx context.Context, userID, date string) ([]WaterLog, error)
}

type ActivityWriter interface {
	UpsertDailyTarget(ctx context.Context, target DailyTarget) (DailyTarget, error)
	AddFoodLog(ctx context.Context, log FoodLog) (FoodLog, error)
	UpsertWorkoutSession(ctx context.Context, session WorkoutSession) (WorkoutSession, error)
	UpsertSleepLog(ctx context.Context, log SleepLog) (SleepLog, error)
	UpsertFastingPlan(ctx context.Context, plan FastingPlan) (FastingPlan, error)
	UpsertMedication(ctx context.Context, med Medication) (Medication, error)
	AddMedicationLog(ctx context.Context, log MedicationLog) (MedicationLog, error)
	AddWaterLog(ctx context.Context, log WaterLog) (WaterLog, error)
}

type ScoreStore interface {
	UpsertComplianceScore(ctx context.Context, score ComplianceScore) (ComplianceScore, error)
	GetComplianceScore(ctx context.Context, userID, date string) (*ComplianceScore, error)
	// ListComplianceScores returns scores with from <= date <= to, ascending by date.
	ListComplianceScores(ctx context.Context, userID, from, to string) ([]ComplianceScore, error)
}

type StreakStore interface {
	GetStreak(ctx context.Context, userID, streakType string) (*Streak, error)
	UpsertStreak(ctx context.Context, streak Streak) (Streak, error)
}

type RecordStoreInterface interface {
	DailyDataReader
	ActivityWriter
	ScoreStore
	StreakStore

	GetSnapshot(ctx context.Context) (*Snapshot, error)
	PutSnapshot(ctx context.Context, snapshot *Snapshot) error
	Counts() map[string]int
	Close() error
}
