package models

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

func TestRecordStore_MissingRecordsAreNil(t *testing.T) {
	s := NewRecordStore()

	target, err := s.GetDailyTarget(ctx, "u1", "2024-03-01")
	require.NoError(t, err)
	assert.Nil(t, target)

	workout, err := s.GetWorkoutSession(ctx, "u1", "2024-03-01")
	require.NoError(t, err)
	assert.Nil(t, workout)

	sleep, err := s.GetSleepLog(ctx, "u1", "2024-03-01")
	require.NoError(t, err)
	assert.Nil(t, sleep)

	plan, err := s.GetActiveFastingPlan(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, plan)

	streak, err := s.GetStreak(ctx, "u1", OverallComplianceStreak)
	require.NoError(t, err)
	assert.Nil(t, streak)

	logs, err := s.ListFoodLogs(ctx, "u1", "2024-03-01")
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestRecordStore_CountsCoverEveryTable(t *testing.T) {
	s := NewRecordStore()
	counts := s.Counts()
	require.Len(t, counts, len(Tables))
	for _, table := range Tables {
		v, ok := counts[table]
		assert.True(t, ok, table)
		assert.Equal(t, 0, v, table)
	}

	_, _ = s.AddWaterLog(ctx, WaterLog{UserID: "u1", Date: "2024-03-01", AmountOz: 8})
	counts = s.Counts()
	assert.Len(t, counts, len(Tables))
	assert.Equal(t, 1, counts[TableWaterLogs])
	assert.Equal(t, 0, counts[TableMedicationLogs])
}

func TestRecordStore_DailyTargetUpsertReplaces(t *testing.T) {
	s := NewRecordStore()
	_, err := s.UpsertDailyTarget(ctx, DailyTarget{UserID: "u1", Date: "2024-03-01", Calories: 2000})
	require.NoError(t, err)
	_, err = s.UpsertDailyTarget(ctx, DailyTarget{UserID: "u1", Date: "2024-03-01", Calories: 1800})
	require.NoError(t, err)

	target, err := s.GetDailyTarget(ctx, "u1", "2024-03-01")
	require.NoError(t, err)
	require.NotNil(t, target)
	assert.Equal(t, 1800.0, target.Calories)
	assert.Equal(t, 1, s.Counts()[TableDailyTargets])
}

func TestRecordStore_FoodLogsScopedByUserAndDate(t *testing.T) {
	s := NewRecordStore()
	saved, err := s.AddFoodLog(ctx, FoodLog{UserID: "u1", Date: "2024-03-01", Calories: 500})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)

	_, _ = s.AddFoodLog(ctx, FoodLog{UserID: "u1", Date: "2024-03-01", Calories: 300})
	_, _ = s.AddFoodLog(ctx, FoodLog{UserID: "u1", Date: "2024-03-02", Calories: 900})
	_, _ = s.AddFoodLog(ctx, FoodLog{UserID: "u2", Date: "2024-03-01", Calories: 100})

	logs, err := s.ListFoodLogs(ctx, "u1", "2024-03-01")
	require.NoError(t, err)
	assert.Len(t, logs, 2)
	assert.Equal(t, 4, s.Counts()[TableFoodLogs])
}

func TestRecordStore_ListReturnsCopy(t *testing.T) {
	s := NewRecordStore()
	_, _ = s.AddWaterLog(ctx, WaterLog{UserID: "u1", Date: "2024-03-01", AmountOz: 8})

	logs, _ := s.ListWaterLogs(ctx, "u1", "2024-03-01")
	logs[0].AmountOz = 999

	again, _ := s.ListWaterLogs(ctx, "u1", "2024-03-01")
	assert.Equal(t, 8.0, again[0].AmountOz)
}

func TestRecordStore_WorkoutUpsertKeepsID(t *testing.T) {
	s := NewRecordStore()
	first, err := s.UpsertWorkoutSession(ctx, WorkoutSession{UserID: "u1", Date: "2024-03-01", Name: "Legs"})
	require.NoError(t, err)

	done := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)
	second, err := s.UpsertWorkoutSession(ctx, WorkoutSession{UserID: "u1", Date: "2024-03-01", Name: "Legs", CompletedAt: &done})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	got, _ := s.GetWorkoutSession(ctx, "u1", "2024-03-01")
	require.NotNil(t, got)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, done.Equal(*got.CompletedAt))
}

func TestRecordStore_InactiveFastingPlanIsHidden(t *testing.T) {
	s := NewRecordStore()
	_, _ = s.UpsertFastingPlan(ctx, FastingPlan{UserID: "u1", IsActive: false, EatingWindowStart: "12:00", EatingWindowEnd: "20:00"})

	plan, err := s.GetActiveFastingPlan(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, plan)

	_, _ = s.UpsertFastingPlan(ctx, FastingPlan{UserID: "u1", IsActive: true, EatingWindowStart: "12:00", EatingWindowEnd: "20:00"})
	plan, err = s.GetActiveFastingPlan(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, plan)
	assert.Equal(t, "12:00", plan.EatingWindowStart)
	assert.Equal(t, 1, s.Counts()[TableFastingPlans])
}

func TestRecordStore_ActiveMedications(t *testing.T) {
	s := NewRecordStore()
	a, _ := s.UpsertMedication(ctx, Medication{UserID: "u1", Name: "A", IsActive: true})
	_, _ = s.UpsertMedication(ctx, Medication{UserID: "u1", Name: "B", IsActive: false})

	meds, err := s.ListActiveMedications(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, meds, 1)
	assert.Equal(t, "A", meds[0].Name)

	a.IsActive = false
	_, _ = s.UpsertMedication(ctx, a)
	meds, _ = s.ListActiveMedications(ctx, "u1")
	assert.Empty(t, meds)
	assert.Equal(t, 2, s.Counts()[TableMedications])
}

func TestRecordStore_MedicationLogsHalfOpenRange(t *testing.T) {
	s := NewRecordStore()
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	next := day.AddDate(0, 0, 1)

	_, _ = s.AddMedicationLog(ctx, MedicationLog{UserID: "u1", ScheduledTime: day})
	_, _ = s.AddMedicationLog(ctx, MedicationLog{UserID: "u1", ScheduledTime: day.Add(8 * time.Hour)})
	_, _ = s.AddMedicationLog(ctx, MedicationLog{UserID: "u1", ScheduledTime: next})
	_, _ = s.AddMedicationLog(ctx, MedicationLog{UserID: "u1", ScheduledTime: day.Add(-time.Minute)})

	logs, err := s.ListMedicationLogs(ctx, "u1", day, next)
	require.NoError(t, err)
	assert.Len(t, logs, 2)
}

func TestRecordStore_ComplianceScoreUpsertAndRange(t *testing.T) {
	s := NewRecordStore()
	for i, date := range []string{"2024-03-03", "2024-03-01", "2024-03-02", "2024-03-09"} {
		_, err := s.UpsertComplianceScore(ctx, ComplianceScore{UserID: "u1", Date: date, SubScores: SubScores{Overall: i * 10}})
		require.NoError(t, err)
	}
	_, _ = s.UpsertComplianceScore(ctx, ComplianceScore{UserID: "u1", Date: "2024-03-01", SubScores: SubScores{Overall: 99}})
	_, _ = s.UpsertComplianceScore(ctx, ComplianceScore{UserID: "u2", Date: "2024-03-01", SubScores: SubScores{Overall: 1}})

	scores, err := s.ListComplianceScores(ctx, "u1", "2024-03-01", "2024-03-07")
	require.NoError(t, err)
	require.Len(t, scores, 3)
	assert.Equal(t, "2024-03-01", scores[0].Date)
	assert.Equal(t, 99, scores[0].Overall)
	assert.Equal(t, "2024-03-02", scores[1].Date)
	assert.Equal(t, "2024-03-03", scores[2].Date)
	assert.Equal(t, 5, s.Counts()[TableComplianceScores])
}

func TestRecordStore_StreakUpsert(t *testing.T) {
	s := NewRecordStore()
	_, _ = s.UpsertStreak(ctx, Streak{UserID: "u1", Type: OverallComplianceStreak, CurrentStreak: 1, LongestStreak: 1})
	_, _ = s.UpsertStreak(ctx, Streak{UserID: "u1", Type: OverallComplianceStreak, CurrentStreak: 2, LongestStreak: 2})

	st, err := s.GetStreak(ctx, "u1", OverallComplianceStreak)
	require.NoError(t, err)
	require.NotNil(t, st)
	assert.Equal(t, 2, st.CurrentStreak)
	assert.Equal(t, 1, s.Counts()[TableStreaks])
}

func TestRecordStore_SnapshotRoundtrip(t *testing.T) {
	s := NewRecordStore()
	_, _ = s.UpsertDailyTarget(ctx, DailyTarget{UserID: "u1", Date: "2024-03-01", Calories: 2000})
	_, _ = s.AddFoodLog(ctx, FoodLog{UserID: "u1", Date: "2024-03-01", Calories: 500})
	_, _ = s.UpsertSleepLog(ctx, SleepLog{UserID: "u1", Date: "2024-03-01", DurationMinutes: 480})
	_, _ = s.UpsertComplianceScore(ctx, ComplianceScore{UserID: "u1", Date: "2024-03-01", SubScores: SubScores{Overall: 85}})
	_, _ = s.UpsertStreak(ctx, Streak{UserID: "u1", Type: OverallComplianceStreak, CurrentStreak: 3, LongestStreak: 4})

	snap, err := s.GetSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, SnapshotVersion, snap.Version)

	restored := NewRecordStore()
	require.NoError(t, restored.PutSnapshot(ctx, snap))
	assert.Equal(t, s.Counts(), restored.Counts())

	st, _ := restored.GetStreak(ctx, "u1", OverallComplianceStreak)
	require.NotNil(t, st)
	assert.Equal(t, 4, st.LongestStreak)
}

func TestRecordStore_PutSnapshotReplaces(t *testing.T) {
	s := NewRecordStore()
	_, _ = s.AddWaterLog(ctx, WaterLog{UserID: "u1", Date: "2024-03-01", AmountOz: 8})

	require.NoError(t, s.PutSnapshot(ctx, &Snapshot{Version: SnapshotVersion}))
	assert.Equal(t, 0, s.Counts()[TableWaterLogs])

	require.NoError(t, s.PutSnapshot(ctx, nil))
}

func TestRecordStore_ConcurrentAccess(t *testing.T) {
	s := NewRecordStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_, _ = s.AddWaterLog(ctx, WaterLog{UserID: "u1", Date: "2024-03-01", AmountOz: 1})
			_, _ = s.UpsertComplianceScore(ctx, ComplianceScore{UserID: "u1", Date: fmt.Sprintf("2024-03-%02d", i%28+1)})
		}(i)
		go func() {
			defer wg.Done()
			_, _ = s.ListWaterLogs(ctx, "u1", "2024-03-01")
			_ = s.Counts()
		}()
	}
	wg.Wait()

	logs, _ := s.ListWaterLogs(ctx, "u1", "2024-03-01")
	assert.Len(t, logs, 50)
}

func TestMedicationLog_Taken(t *testing.T) {
	now := time.Now()
	assert.True(t, MedicationLog{TakenAt: &now}.Taken())
	assert.False(t, MedicationLog{TakenAt: &now, Skipped: true}.Taken())
	assert.False(t, MedicationLog{}.Taken())
}

func TestEnsureID(t *testing.T) {
	assert.Equal(t, "abc", EnsureID("abc"))
	id := EnsureID("")
	assert.Len(t, id, 36)
	assert.NotEqual(t, id, EnsureID(""))
}
