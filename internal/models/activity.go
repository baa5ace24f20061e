package models

import "time"

const DateLayout = "2006-01-02"

// DailyTarget is the day's nutrition target. A zero Calories value is
// treated as "no target".
type DailyTarget struct {
	UserID   string  `json:"user_id" validate:"required"`
	Date     string  `json:"date" validate:"required|date"`
	Calories float64 `json:"calories" validate:"min:0"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatsG    float64 `json:"fats_g"`
}

type FoodLog struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id" validate:"required"`
	Date        string  `json:"date" validate:"required|date"`
	Time        string  `json:"time"`
	Name        string  `json:"name"`
	Calories    float64 `json:"calories" validate:"min:0"`
	ProteinG    float64 `json:"protein_g"`
	SugarG      float64 `json:"sugar_g"`
	TransFatG   float64 `json:"trans_fat_g"`
	SodiumMg    float64 `json:"sodium_mg"`
	Grade       string  `json:"grade,omitempty"`
	GradeReason string  `json:"grade_reason,omitempty"`
}

type WorkoutSession struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id" validate:"required"`
	Date        string     `json:"date" validate:"required|date"`
	Name        string     `json:"name"`
	CompletedAt *time.Time `json:"completed_at"`
}

type SleepLog struct {
	ID              string `json:"id"`
	UserID          string `json:"user_id" validate:"required"`
	Date            string `json:"date" validate:"required|date"`
	DurationMinutes int    `json:"duration_min" validate:"min:0"`
}

// FastingPlan holds the eating window as "HH:MM" strings.
type FastingPlan struct {
	ID                string `json:"id"`
	UserID            string `json:"user_id" validate:"required"`
	IsActive          bool   `json:"is_active"`
	EatingWindowStart string `json:"eating_window_start"`
	EatingWindowEnd   string `json:"eating_window_end"`
}

type Medication struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Dosage   string `json:"dosage"`
	IsActive bool   `json:"is_active"`
}

type MedicationLog struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id" validate:"required"`
	MedicationID  string     `json:"medication_id"`
	ScheduledTime time.Time  `json:"scheduled_time"`
	TakenAt       *time.Time `json:"taken_at"`
	Skipped       bool       `json:"skipped"`
}

// Taken reports whether the dose counts toward adherence.
func (l MedicationLog) Taken() bool {
	return l.TakenAt != nil && !l.Skipped
}

type WaterLog struct {
	ID       string  `json:"id"`
	UserID   string  `json:"user_id" validate:"required"`
	Date     string  `json:"date" validate:"required|date"`
	AmountOz float64 `json:"amount_oz" validate:"min:0"`
}
