package models

// DailyData is the snapshot of one user's day that the scorer consumes.
// Optional records are nil when absent.
type DailyData struct {
	UserID         string
	Date           string
	DailyTarget    *DailyTarget
	FoodLogs       []FoodLog
	Workout        *WorkoutSession
	SleepLog       *SleepLog
	FastingPlan    *FastingPlan
	Medications    []Medication
	MedicationLogs []MedicationLog
	WaterLogs      []WaterLog
}
