package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"fitscore/internal/models"
)

//go:embed schema.sql
var schema string

// timeLayout is fixed width so stored timestamps order lexicographically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLiteStore is the durable RecordStoreInterface backed by modernc.org/sqlite.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection serializes writers and keeps :memory: databases shared.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA busy_timeout = 5000", "PRAGMA foreign_keys = ON"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &SQLiteStore{path: path, db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func formatTimePtr(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*t), Valid: true}
}

func parseTimePtr(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid {
		return nil, nil
	}
	t, err := time.Parse(timeLayout, ns.String)
	if err != nil {
		return nil, fmt.Errorf("failed to parse timestamp %q: %w", ns.String, err)
	}
	return &t, nil
}

type scanner interface {
	Scan(dest ...any) error
}

// queryAll runs query and maps every row with scan. Rows are closed before it returns.
func queryAll[T any](ctx context.Context, q querier, scan func(scanner) (T, error), query string, args ...any) ([]T, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// queryOne returns nil when no row matches.
func queryOne[T any](ctx context.Context, q querier, scan func(scanner) (T, error), query string, args ...any) (*T, error) {
	v, err := scan(q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

const (
	selectTarget     = `SELECT user_id, date, calories, protein_g, carbs_g, fats_g FROM daily_targets`
	selectFoodLog    = `SELECT id, user_id, date, time, name, calories, protein_g, sugar_g, trans_fat_g, sodium_mg, grade, grade_reason FROM food_logs`
	selectWorkout    = `SELECT id, user_id, date, name, completed_at FROM workout_sessions`
	selectSleep      = `SELECT id, user_id, date, duration_min FROM sleep_logs`
	selectFasting    = `SELECT id, user_id, is_active, eating_window_start, eating_window_end FROM fasting_plans`
	selectMedication = `SELECT id, user_id, name, dosage, is_active FROM medications`
	selectMedLog     = `SELECT id, user_id, medication_id, scheduled_time, taken_at, skipped FROM medication_logs`
	selectWater      = `SELECT id, user_id, date, amount_oz FROM water_logs`
	selectScore      = `SELECT user_id, date, nutrition, workout, fasting, sleep, medication, hydration, overall, updated_at FROM compliance_scores`
	selectStreak     = `SELECT user_id, type, current_streak, longest_streak, last_updated FROM streaks`
)

func scanTarget(r scanner) (models.DailyTarget, error) {
	var t models.DailyTarget
	err := r.Scan(&t.UserID, &t.Date, &t.Calories, &t.ProteinG, &t.CarbsG, &t.FatsG)
	return t, err
}

func scanFoodLog(r scanner) (models.FoodLog, error) {
	var l models.FoodLog
	err := r.Scan(&l.ID, &l.UserID, &l.Date, &l.Time, &l.Name, &l.Calories, &l.ProteinG, &l.SugarG, &l.TransFatG, &l.SodiumMg, &l.Grade, &l.GradeReason)
	return l, err
}

func scanWorkout(r scanner) (models.WorkoutSession, error) {
	var w models.WorkoutSession
	var completedAt sql.NullString
	if err := r.Scan(&w.ID, &w.UserID, &w.Date, &w.Name, &completedAt); err != nil {
		return w, err
	}
	var err error
	w.CompletedAt, err = parseTimePtr(completedAt)
	return w, err
}

func scanSleep(r scanner) (models.SleepLog, error) {
	var l models.SleepLog
	err := r.Scan(&l.ID, &l.UserID, &l.Date, &l.DurationMinutes)
	return l, err
}

func scanFasting(r scanner) (models.FastingPlan, error) {
	var p models.FastingPlan
	err := r.Scan(&p.ID, &p.UserID, &p.IsActive, &p.EatingWindowStart, &p.EatingWindowEnd)
	return p, err
}

func scanMedication(r scanner) (models.Medication, error) {
	var m models.Medication
	err := r.Scan(&m.ID, &m.UserID, &m.Name, &m.Dosage, &m.IsActive)
	return m, err
}

func scanMedLog(r scanner) (models.MedicationLog, error) {
	var l models.MedicationLog
	var scheduled string
	var takenAt sql.NullString
	if err := r.Scan(&l.ID, &l.UserID, &l.MedicationID, &scheduled, &takenAt, &l.Skipped); err != nil {
		return l, err
	}
	var err error
	if l.ScheduledTime, err = time.Parse(timeLayout, scheduled); err != nil {
		return l, fmt.Errorf("failed to parse scheduled_time: %w", err)
	}
	l.TakenAt, err = parseTimePtr(takenAt)
	return l, err
}

func scanWater(r scanner) (models.WaterLog, error) {
	var l models.WaterLog
	err := r.Scan(&l.ID, &l.UserID, &l.Date, &l.AmountOz)
	return l, err
}

func scanScore(r scanner) (models.ComplianceScore, error) {
	var sc models.ComplianceScore
	var updatedAt string
	err := r.Scan(&sc.UserID, &sc.Date, &sc.Nutrition, &sc.Workout, &sc.Fasting, &sc.Sleep,
		&sc.Medication, &sc.Hydration, &sc.Overall, &updatedAt)
	if err != nil {
		return sc, err
	}
	if sc.UpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
		return sc, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	return sc, nil
}

func scanStreak(r scanner) (models.Streak, error) {
	var st models.Streak
	err := r.Scan(&st.UserID, &st.Type, &st.CurrentStreak, &st.LongestStreak, &st.LastUpdated)
	return st, err
}

func (s *SQLiteStore) GetDailyTarget(ctx context.Context, userID, date string) (*models.DailyTarget, error) {
	return queryOne(ctx, s.db, scanTarget, selectTarget+` WHERE user_id = ? AND date = ?`, userID, date)
}

func (s *SQLiteStore) ListFoodLogs(ctx context.Context, userID, date string) ([]models.FoodLog, error) {
	return queryAll(ctx, s.db, scanFoodLog, selectFoodLog+` WHERE user_id = ? AND date = ? ORDER BY time, rowid`, userID, date)
}

func (s *SQLiteStore) GetWorkoutSession(ctx context.Context, userID, date string) (*models.WorkoutSession, error) {
	return queryOne(ctx, s.db, scanWorkout, selectWorkout+` WHERE user_id = ? AND date = ?`, userID, date)
}

func (s *SQLiteStore) GetSleepLog(ctx context.Context, userID, date string) (*models.SleepLog, error) {
	return queryOne(ctx, s.db, scanSleep, selectSleep+` WHERE user_id = ? AND date = ?`, userID, date)
}

func (s *SQLiteStore) GetActiveFastingPlan(ctx context.Context, userID string) (*models.FastingPlan, error) {
	return queryOne(ctx, s.db, scanFasting, selectFasting+` WHERE user_id = ? AND is_active = 1`, userID)
}

func (s *SQLiteStore) ListActiveMedications(ctx context.Context, userID string) ([]models.Medication, error) {
	return queryAll(ctx, s.db, scanMedication, selectMedication+` WHERE user_id = ? AND is_active = 1 ORDER BY rowid`, userID)
}

func (s *SQLiteStore) ListMedicationLogs(ctx context.Context, userID string, from, to time.Time) ([]models.MedicationLog, error) {
	return queryAll(ctx, s.db, scanMedLog,
		selectMedLog+` WHERE user_id = ? AND scheduled_time >= ? AND scheduled_time < ? ORDER BY scheduled_time`,
		userID, formatTime(from), formatTime(to))
}

func (s *SQLiteStore) ListWaterLogs(ctx context.Context, userID, date string) ([]models.WaterLog, error) {
	return queryAll(ctx, s.db, scanWater, selectWater+` WHERE user_id = ? AND date = ? ORDER BY rowid`, userID, date)
}

func (s *SQLiteStore) UpsertDailyTarget(ctx context.Context, t models.DailyTarget) (models.DailyTarget, error) {
	return t, upsertTarget(ctx, s.db, t)
}

func upsertTarget(ctx context.Context, q querier, t models.DailyTarget) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO daily_targets (user_id, date, calories, protein_g, carbs_g, fats_g)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, date) DO UPDATE SET
			calories = excluded.calories, protein_g = excluded.protein_g,
			carbs_g = excluded.carbs_g, fats_g = excluded.fats_g`,
		t.UserID, t.Date, t.Calories, t.ProteinG, t.CarbsG, t.FatsG)
	return err
}

func (s *SQLiteStore) AddFoodLog(ctx context.Context, l models.FoodLog) (models.FoodLog, error) {
	l.ID = models.EnsureID(l.ID)
	return l, insertFoodLog(ctx, s.db, l)
}

func insertFoodLog(ctx context.Context, q querier, l models.FoodLog) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO food_logs (id, user_id, date, time, name, calories, protein_g, sugar_g, trans_fat_g, sodium_mg, grade, grade_reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.UserID, l.Date, l.Time, l.Name, l.Calories, l.ProteinG, l.SugarG, l.TransFatG, l.SodiumMg, l.Grade, l.GradeReason)
	return err
}

func (s *SQLiteStore) UpsertWorkoutSession(ctx context.Context, w models.WorkoutSession) (models.WorkoutSession, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO workout_sessions (id, user_id, date, name, completed_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, date) DO UPDATE SET
			id = CASE WHEN ? = '' THEN workout_sessions.id ELSE excluded.id END,
			name = excluded.name, completed_at = excluded.completed_at
		RETURNING id`,
		models.EnsureID(w.ID), w.UserID, w.Date, w.Name, formatTimePtr(w.CompletedAt), w.ID).Scan(&w.ID)
	return w, err
}

func (s *SQLiteStore) UpsertSleepLog(ctx context.Context, l models.SleepLog) (models.SleepLog, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO sleep_logs (id, user_id, date, duration_min)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, date) DO UPDATE SET
			id = CASE WHEN ? = '' THEN sleep_logs.id ELSE excluded.id END,
			duration_min = excluded.duration_min
		RETURNING id`,
		models.EnsureID(l.ID), l.UserID, l.Date, l.DurationMinutes, l.ID).Scan(&l.ID)
	return l, err
}

func (s *SQLiteStore) UpsertFastingPlan(ctx context.Context, p models.FastingPlan) (models.FastingPlan, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO fasting_plans (id, user_id, is_active, eating_window_start, eating_window_end)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			id = CASE WHEN ? = '' THEN fasting_plans.id ELSE excluded.id END,
			is_active = excluded.is_active,
			eating_window_start = excluded.eating_window_start,
			eating_window_end = excluded.eating_window_end
		RETURNING id`,
		models.EnsureID(p.ID), p.UserID, p.IsActive, p.EatingWindowStart, p.EatingWindowEnd, p.ID).Scan(&p.ID)
	return p, err
}

func (s *SQLiteStore) UpsertMedication(ctx context.Context, m models.Medication) (models.Medication, error) {
	m.ID = models.EnsureID(m.ID)
	return m, upsertMedication(ctx, s.db, m)
}

func upsertMedication(ctx context.Context, q querier, m models.Medication) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO medications (id, user_id, name, dosage, is_active)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id, name = excluded.name,
			dosage = excluded.dosage, is_active = excluded.is_active`,
		m.ID, m.UserID, m.Name, m.Dosage, m.IsActive)
	return err
}

func (s *SQLiteStore) AddMedicationLog(ctx context.Context, l models.MedicationLog) (models.MedicationLog, error) {
	l.ID = models.EnsureID(l.ID)
	return l, insertMedLog(ctx, s.db, l)
}

func insertMedLog(ctx context.Context, q querier, l models.MedicationLog) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO medication_logs (id, user_id, medication_id, scheduled_time, taken_at, skipped)
		VALUES (?, ?, ?, ?, ?, ?)`,
		l.ID, l.UserID, l.MedicationID, formatTime(l.ScheduledTime), formatTimePtr(l.TakenAt), l.Skipped)
	return err
}

func (s *SQLiteStore) AddWaterLog(ctx context.Context, l models.WaterLog) (models.WaterLog, error) {
	l.ID = models.EnsureID(l.ID)
	return l, insertWater(ctx, s.db, l)
}

func insertWater(ctx context.Context, q querier, l models.WaterLog) error {
	_, err := q.ExecContext(ctx, `INSERT INTO water_logs (id, user_id, date, amount_oz) VALUES (?, ?, ?, ?)`,
		l.ID, l.UserID, l.Date, l.AmountOz)
	return err
}

func (s *SQLiteStore) UpsertComplianceScore(ctx context.Context, sc models.ComplianceScore) (models.ComplianceScore, error) {
	return sc, upsertScore(ctx, s.db, sc)
}

func upsertScore(ctx context.Context, q querier, sc models.ComplianceScore) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO compliance_scores (user_id, date, nutrition, workout, fasting, sleep, medication, hydration, overall, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, date) DO UPDATE SET
			nutrition = excluded.nutrition, workout = excluded.workout, fasting = excluded.fasting,
			sleep = excluded.sleep, medication = excluded.medication, hydration = excluded.hydration,
			overall = excluded.overall, updated_at = excluded.updated_at`,
		sc.UserID, sc.Date, sc.Nutrition, sc.Workout, sc.Fasting, sc.Sleep, sc.Medication, sc.Hydration, sc.Overall,
		formatTime(sc.UpdatedAt))
	return err
}

func (s *SQLiteStore) GetComplianceScore(ctx context.Context, userID, date string) (*models.ComplianceScore, error) {
	return queryOne(ctx, s.db, scanScore, selectScore+` WHERE user_id = ? AND date = ?`, userID, date)
}

func (s *SQLiteStore) ListComplianceScores(ctx context.Context, userID, from, to string) ([]models.ComplianceScore, error) {
	return queryAll(ctx, s.db, scanScore, selectScore+` WHERE user_id = ? AND date >= ? AND date <= ? ORDER BY date`, userID, from, to)
}

func (s *SQLiteStore) GetStreak(ctx context.Context, userID, streakType string) (*models.Streak, error) {
	return queryOne(ctx, s.db, scanStreak, selectStreak+` WHERE user_id = ? AND type = ?`, userID, streakType)
}

func (s *SQLiteStore) UpsertStreak(ctx context.Context, st models.Streak) (models.Streak, error) {
	return st, upsertStreak(ctx, s.db, st)
}

func upsertStreak(ctx context.Context, q querier, st models.Streak) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO streaks (user_id, type, current_streak, longest_streak, last_updated)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, type) DO UPDATE SET
			current_streak = excluded.current_streak, longest_streak = excluded.longest_streak,
			last_updated = excluded.last_updated`,
		st.UserID, st.Type, st.CurrentStreak, st.LongestStreak, st.LastUpdated)
	return err
}

func (s *SQLiteStore) GetSnapshot(ctx context.Context) (*models.Snapshot, error) {
	snap := &models.Snapshot{Version: models.SnapshotVersion}
	var err error
	if snap.DailyTargets, err = queryAll(ctx, s.db, scanTarget, selectTarget); err != nil {
		return nil, fmt.Errorf("%s: %w", models.TableDailyTargets, err)
	}
	if snap.FoodLogs, err = queryAll(ctx, s.db, scanFoodLog, selectFoodLog); err != nil {
		return nil, fmt.Errorf("%s: %w", models.TableFoodLogs, err)
	}
	if snap.WorkoutSessions, err = queryAll(ctx, s.db, scanWorkout, selectWorkout); err != nil {
		return nil, fmt.Errorf("%s: %w", models.TableWorkoutSessions, err)
	}
	if snap.SleepLogs, err = queryAll(ctx, s.db, scanSleep, selectSleep); err != nil {
		return nil, fmt.Errorf("%s: %w", models.TableSleepLogs, err)
	}
	if snap.FastingPlans, err = queryAll(ctx, s.db, scanFasting, selectFasting); err != nil {
		return nil, fmt.Errorf("%s: %w", models.TableFastingPlans, err)
	}
	if snap.Medications, err = queryAll(ctx, s.db, scanMedication, selectMedication); err != nil {
		return nil, fmt.Errorf("%s: %w", models.TableMedications, err)
	}
	if snap.MedicationLogs, err = queryAll(ctx, s.db, scanMedLog, selectMedLog); err != nil {
		return nil, fmt.Errorf("%s: %w", models.TableMedicationLogs, err)
	}
	if snap.WaterLogs, err = queryAll(ctx, s.db, scanWater, selectWater); err != nil {
		return nil, fmt.Errorf("%s: %w", models.TableWaterLogs, err)
	}
	if snap.ComplianceScores, err = queryAll(ctx, s.db, scanScore, selectScore+` ORDER BY user_id, date`); err != nil {
		return nil, fmt.Errorf("%s: %w", models.TableComplianceScores, err)
	}
	if snap.Streaks, err = queryAll(ctx, s.db, scanStreak, selectStreak); err != nil {
		return nil, fmt.Errorf("%s: %w", models.TableStreaks, err)
	}
	return snap, nil
}

// PutSnapshot replaces every table in one transaction. A nil snapshot empties the store.
func (s *SQLiteStore) PutSnapshot(ctx context.Context, snap *models.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := putSnapshotTx(ctx, tx, snap); err != nil {
		return err
	}
	return tx.Commit()
}

func putSnapshotTx(ctx context.Context, tx *sql.Tx, snap *models.Snapshot) error {
	for _, table := range models.Tables {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	if snap == nil {
		return nil
	}

	for _, t := range snap.DailyTargets {
		if err := upsertTarget(ctx, tx, t); err != nil {
			return err
		}
	}
	for _, l := range snap.FoodLogs {
		l.ID = models.EnsureID(l.ID)
		if err := insertFoodLog(ctx, tx, l); err != nil {
			return err
		}
	}
	for _, w := range snap.WorkoutSessions {
		_, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO workout_sessions (id, user_id, date, name, completed_at) VALUES (?, ?, ?, ?, ?)`,
			models.EnsureID(w.ID), w.UserID, w.Date, w.Name, formatTimePtr(w.CompletedAt))
		if err != nil {
			return err
		}
	}
	for _, l := range snap.SleepLogs {
		_, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO sleep_logs (id, user_id, date, duration_min) VALUES (?, ?, ?, ?)`,
			models.EnsureID(l.ID), l.UserID, l.Date, l.DurationMinutes)
		if err != nil {
			return err
		}
	}
	for _, p := range snap.FastingPlans {
		_, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO fasting_plans (id, user_id, is_active, eating_window_start, eating_window_end) VALUES (?, ?, ?, ?, ?)`,
			models.EnsureID(p.ID), p.UserID, p.IsActive, p.EatingWindowStart, p.EatingWindowEnd)
		if err != nil {
			return err
		}
	}
	for _, m := range snap.Medications {
		m.ID = models.EnsureID(m.ID)
		if err := upsertMedication(ctx, tx, m); err != nil {
			return err
		}
	}
	for _, l := range snap.MedicationLogs {
		l.ID = models.EnsureID(l.ID)
		if err := insertMedLog(ctx, tx, l); err != nil {
			return err
		}
	}
	for _, l := range snap.WaterLogs {
		l.ID = models.EnsureID(l.ID)
		if err := insertWater(ctx, tx, l); err != nil {
			return err
		}
	}
	for _, sc := range snap.ComplianceScores {
		if err := upsertScore(ctx, tx, sc); err != nil {
			return err
		}
	}
	for _, st := range snap.Streaks {
		if err := upsertStreak(ctx, tx, st); err != nil {
			return err
		}
	}
	return nil
}

// Counts reports -1 for a table that cannot be counted.
func (s *SQLiteStore) Counts() map[string]int {
	counts := make(map[string]int, len(models.Tables))
	for _, table := range models.Tables {
		var n int
		if err := s.db.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&n); err != nil {
			n = -1
		}
		counts[table] = n
	}
	return counts
}
