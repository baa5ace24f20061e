package services

import (
	"testing"
	"time"

	"fitscore/internal/models"
	"fitscore/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newActivityService(store models.RecordStoreInterface) *ActivityService {
	return NewActivityService(store, &testutil.MockLogger{}).(*ActivityService)
}

func TestLogFood_GradesOnIngest(t *testing.T) {
	store := models.NewRecordStore()
	as := newActivityService(store)

	saved, err := as.LogFood(ctx, models.FoodLog{UserID: user, Date: day, Time: "08:15", Name: "Donut", Calories: 300, ProteinG: 3, SugarG: 22})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, string(models.GradeAvoid), saved.Grade)
	assert.NotEmpty(t, saved.GradeReason)

	logs, err := store.ListFoodLogs(ctx, user, day)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, saved.Grade, logs[0].Grade)
}

func TestLogFood_Rejects(t *testing.T) {
	as := newActivityService(models.NewRecordStore())

	tests := []struct {
		name string
		log  models.FoodLog
	}{
		{"missing user", models.FoodLog{Date: day}},
		{"bad date", models.FoodLog{UserID: user, Date: "2024/03/01"}},
		{"bad time", models.FoodLog{UserID: user, Date: day, Time: "8:15"}},
		{"hour out of range", models.FoodLog{UserID: user, Date: day, Time: "25:00"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := as.LogFood(ctx, tt.log)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestLogFood_StoreFailure(t *testing.T) {
	as := newActivityService(testutil.NewFailingStore("AddFoodLog"))

	_, err := as.LogFood(ctx, models.FoodLog{UserID: user, Date: day})
	require.ErrorIs(t, err, testutil.ErrStoreUnavailable)
	assert.NotErrorIs(t, err, ErrInvalidInput)
}

func TestSetDailyTarget_Upserts(t *testing.T) {
	store := models.NewRecordStore()
	as := newActivityService(store)

	_, err := as.SetDailyTarget(ctx, models.DailyTarget{UserID: user, Date: day, Calories: 2000})
	require.NoError(t, err)
	_, err = as.SetDailyTarget(ctx, models.DailyTarget{UserID: user, Date: day, Calories: 2200})
	require.NoError(t, err)

	target, err := store.GetDailyTarget(ctx, user, day)
	require.NoError(t, err)
	require.NotNil(t, target)
	assert.Equal(t, 2200.0, target.Calories)

	_, err = as.SetDailyTarget(ctx, models.DailyTarget{UserID: user, Date: day, Calories: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSetDailyTarget_StoreFailure(t *testing.T) {
	as := newActivityService(testutil.NewFailingStore("UpsertDailyTarget"))

	_, err := as.SetDailyTarget(ctx, models.DailyTarget{UserID: user, Date: day, Calories: 2000})
	assert.ErrorIs(t, err, testutil.ErrStoreUnavailable)
}

func TestLogWorkout_AndSleep(t *testing.T) {
	store := models.NewRecordStore()
	as := newActivityService(store)
	done := time.Date(2024, 3, 1, 19, 0, 0, 0, time.UTC)

	w, err := as.LogWorkout(ctx, models.WorkoutSession{UserID: user, Date: day, Name: "Push", CompletedAt: &done})
	require.NoError(t, err)
	assert.NotEmpty(t, w.ID)

	s, err := as.LogSleep(ctx, models.SleepLog{UserID: user, Date: day, DurationMinutes: 420})
	require.NoError(t, err)
	assert.Equal(t, 420, s.DurationMinutes)

	_, err = as.LogSleep(ctx, models.SleepLog{UserID: user, Date: day, DurationMinutes: -5})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = as.LogWorkout(ctx, models.WorkoutSession{Date: day})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSetFastingPlan_ChecksWindow(t *testing.T) {
	store := models.NewRecordStore()
	as := newActivityService(store)

	_, err := as.SetFastingPlan(ctx, models.FastingPlan{UserID: user, IsActive: true, EatingWindowStart: "12:00", EatingWindowEnd: "20:00"})
	require.NoError(t, err)

	plan, err := store.GetActiveFastingPlan(ctx, user)
	require.NoError(t, err)
	require.NotNil(t, plan)

	_, err = as.SetFastingPlan(ctx, models.FastingPlan{UserID: user, IsActive: true, EatingWindowStart: "noon", EatingWindowEnd: "20:00"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = as.SetFastingPlan(ctx, models.FastingPlan{UserID: user, IsActive: true, EatingWindowStart: "12:00", EatingWindowEnd: "20:0"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMedicationDoses(t *testing.T) {
	store := models.NewRecordStore()
	as := newActivityService(store)

	med, err := as.SaveMedication(ctx, models.Medication{UserID: user, Name: "Vitamin D", IsActive: true})
	require.NoError(t, err)
	assert.NotEmpty(t, med.ID)

	_, err = as.SaveMedication(ctx, models.Medication{UserID: user})
	assert.ErrorIs(t, err, ErrInvalidInput)

	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	_, err = as.LogMedicationDose(ctx, models.MedicationLog{UserID: user, MedicationID: med.ID, ScheduledTime: at, TakenAt: &at})
	require.NoError(t, err)

	_, err = as.LogMedicationDose(ctx, models.MedicationLog{UserID: user, MedicationID: med.ID})
	assert.ErrorIs(t, err, ErrInvalidInput)

	logs, err := store.ListMedicationLogs(ctx, user, at.Add(-time.Hour), at.Add(time.Hour))
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestLogWater(t *testing.T) {
	store := models.NewRecordStore()
	as := newActivityService(store)

	for i := 0; i < 3; i++ {
		_, err := as.LogWater(ctx, models.WaterLog{UserID: user, Date: day, AmountOz: 16})
		require.NoError(t, err)
	}
	logs, err := store.ListWaterLogs(ctx, user, day)
	require.NoError(t, err)
	assert.Len(t, logs, 3)

	_, err = as.LogWater(ctx, models.WaterLog{UserID: user, Date: "yesterday", AmountOz: 8})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
