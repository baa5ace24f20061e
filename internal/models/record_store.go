package models

import (
	"context"
	"sort"
	"sync"
	"time"
)

type dayKey struct {
	userID string
	date   string
}

type streakKey struct {
	userID     string
	streakType string
}

// RecordStore is the in-memory RecordStoreInterface. Reads return copies.
type RecordStore struct {
	mu             sync.RWMutex
	targets        map[dayKey]DailyTarget
	foodLogs       map[dayKey][]FoodLog
	workouts       map[dayKey]WorkoutSession
	sleepLogs      map[dayKey]SleepLog
	fastingPlans   map[string]FastingPlan
	medications    map[string][]Medication
	medicationLogs map[string][]MedicationLog
	waterLogs      map[dayKey][]WaterLog
	scores         map[dayKey]ComplianceScore
	streaks        map[streakKey]Streak
}

func NewRecordStore() *RecordStore {
	s := &RecordStore{}
	s.reset()
	return s
}

func (s *RecordStore) reset() {
	s.targets = make(map[dayKey]DailyTarget)
	s.foodLogs = make(map[dayKey][]FoodLog)
	s.workouts = make(map[dayKey]WorkoutSession)
	s.sleepLogs = make(map[dayKey]SleepLog)
	s.fastingPlans = make(map[string]FastingPlan)
	s.medications = make(map[string][]Medication)
	s.medicationLogs = make(map[string][]MedicationLog)
	s.waterLogs = make(map[dayKey][]WaterLog)
	s.scores = make(map[dayKey]ComplianceScore)
	s.streaks = make(map[streakKey]Streak)
}

func (s *RecordStore) GetDailyTarget(_ context.Context, userID, date string) (*DailyTarget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.targets[dayKey{userID, date}]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (s *RecordStore) ListFoodLogs(_ context.Context, userID, date string) ([]FoodLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]FoodLog(nil), s.foodLogs[dayKey{userID, date}]...), nil
}

func (s *RecordStore) GetWorkoutSession(_ context.Context, userID, date string) (*WorkoutSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.workouts[dayKey{userID, date}]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (s *RecordStore) GetSleepLog(_ context.Context, userID, date string) (*SleepLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.sleepLogs[dayKey{userID, date}]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (s *RecordStore) GetActiveFastingPlan(_ context.Context, userID string) (*FastingPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.fastingPlans[userID]
	if !ok || !p.IsActive {
		return nil, nil
	}
	return &p, nil
}

func (s *RecordStore) ListActiveMedications(_ context.Context, userID string) ([]Medication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []Medication
	for _, m := range s.medications[userID] {
		if m.IsActive {
			result = append(result, m)
		}
	}
	return result, nil
}

func (s *RecordStore) ListMedicationLogs(_ context.Context, userID string, from, to time.Time) ([]MedicationLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []MedicationLog
	for _, l := range s.medicationLogs[userID] {
		if !l.ScheduledTime.Before(from) && l.ScheduledTime.Before(to) {
			result = append(result, l)
		}
	}
	return result, nil
}

func (s *RecordStore) ListWaterLogs(_ context.Context, userID, date string) ([]WaterLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]WaterLog(nil), s.waterLogs[dayKey{userID, date}]...), nil
}

func (s *RecordStore) UpsertDailyTarget(_ context.Context, target DailyTarget) (DailyTarget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.targets[dayKey{target.UserID, target.Date}] = target
	return target, nil
}

func (s *RecordStore) AddFoodLog(_ context.Context, log FoodLog) (FoodLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	log.ID = EnsureID(log.ID)
	key := dayKey{log.UserID, log.Date}
	s.foodLogs[key] = append(s.foodLogs[key], log)
	return log, nil
}

func (s *RecordStore) UpsertWorkoutSession(_ context.Context, session WorkoutSession) (WorkoutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := dayKey{session.UserID, session.Date}
	if prev, ok := s.workouts[key]; ok && session.ID == "" {
		session.ID = prev.ID
	}
	session.ID = EnsureID(session.ID)
	s.workouts[key] = session
	return session, nil
}

func (s *RecordStore) UpsertSleepLog(_ context.Context, log SleepLog) (SleepLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := dayKey{log.UserID, log.Date}
	if prev, ok := s.sleepLogs[key]; ok && log.ID == "" {
		log.ID = prev.ID
	}
	log.ID = EnsureID(log.ID)
	s.sleepLogs[key] = log
	return log, nil
}

func (s *RecordStore) UpsertFastingPlan(_ context.Context, plan FastingPlan) (FastingPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.fastingPlans[plan.UserID]; ok && plan.ID == "" {
		plan.ID = prev.ID
	}
	plan.ID = EnsureID(plan.ID)
	s.fastingPlans[plan.UserID] = plan
	return plan, nil
}

func (s *RecordStore) UpsertMedication(_ context.Context, med Medication) (Medication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	med.ID = EnsureID(med.ID)
	meds := s.medications[med.UserID]
	for i := range meds {
		if meds[i].ID == med.ID {
			meds[i] = med
			return med, nil
		}
	}
	s.medications[med.UserID] = append(meds, med)
	return med, nil
}

func (s *RecordStore) AddMedicationLog(_ context.Context, log MedicationLog) (MedicationLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	log.ID = EnsureID(log.ID)
	s.medicationLogs[log.UserID] = append(s.medicationLogs[log.UserID], log)
	return log, nil
}

func (s *RecordStore) AddWaterLog(_ context.Context, log WaterLog) (WaterLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	log.ID = EnsureID(log.ID)
	key := dayKey{log.UserID, log.Date}
	s.waterLogs[key] = append(s.waterLogs[key], log)
	return log, nil
}

func (s *RecordStore) UpsertComplianceScore(_ context.Context, score ComplianceScore) (ComplianceScore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores[dayKey{score.UserID, score.Date}] = score
	return score, nil
}

func (s *RecordStore) GetComplianceScore(_ context.Context, userID, date string) (*ComplianceScore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sc, ok := s.scores[dayKey{userID, date}]
	if !ok {
		return nil, nil
	}
	return &sc, nil
}

func (s *RecordStore) ListComplianceScores(_ context.Context, userID, from, to string) ([]ComplianceScore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []ComplianceScore
	for key, sc := range s.scores {
		if key.userID == userID && key.date >= from && key.date <= to {
			result = append(result, sc)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date < result[j].Date
	})
	return result, nil
}

func (s *RecordStore) GetStreak(_ context.Context, userID, streakType string) (*Streak, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.streaks[streakKey{userID, streakType}]
	if !ok {
		return nil, nil
	}
	return &st, nil
}

func (s *RecordStore) UpsertStreak(_ context.Context, streak Streak) (Streak, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.streaks[streakKey{streak.UserID, streak.Type}] = streak
	return streak, nil
}

func (s *RecordStore) GetSnapshot(_ context.Context) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &Snapshot{Version: SnapshotVersion}
	for _, t := range s.targets {
		snap.DailyTargets = append(snap.DailyTargets, t)
	}
	for _, logs := range s.foodLogs {
		snap.FoodLogs = append(snap.FoodLogs, logs...)
	}
	for _, w := range s.workouts {
		snap.WorkoutSessions = append(snap.WorkoutSessions, w)
	}
	for _, l := range s.sleepLogs {
		snap.SleepLogs = append(snap.SleepLogs, l)
	}
	for _, p := range s.fastingPlans {
		snap.FastingPlans = append(snap.FastingPlans, p)
	}
	for _, meds := range s.medications {
		snap.Medications = append(snap.Medications, meds...)
	}
	for _, logs := range s.medicationLogs {
		snap.MedicationLogs = append(snap.MedicationLogs, logs...)
	}
	for _, logs := range s.waterLogs {
		snap.WaterLogs = append(snap.WaterLogs, logs...)
	}
	for _, sc := range s.scores {
		snap.ComplianceScores = append(snap.ComplianceScores, sc)
	}
	for _, st := range s.streaks {
		snap.Streaks = append(snap.Streaks, st)
	}
	return snap, nil
}

// PutSnapshot replaces the whole store with the snapshot contents.
func (s *RecordStore) PutSnapshot(_ context.Context, snap *Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	if snap == nil {
		return nil
	}
	for _, t := range snap.DailyTargets {
		s.targets[dayKey{t.UserID, t.Date}] = t
	}
	for _, l := range snap.FoodLogs {
		key := dayKey{l.UserID, l.Date}
		s.foodLogs[key] = append(s.foodLogs[key], l)
	}
	for _, w := range snap.WorkoutSessions {
		s.workouts[dayKey{w.UserID, w.Date}] = w
	}
	for _, l := range snap.SleepLogs {
		s.sleepLogs[dayKey{l.UserID, l.Date}] = l
	}
	for _, p := range snap.FastingPlans {
		s.fastingPlans[p.UserID] = p
	}
	for _, m := range snap.Medications {
		s.medications[m.UserID] = append(s.medications[m.UserID], m)
	}
	for _, l := range snap.MedicationLogs {
		s.medicationLogs[l.UserID] = append(s.medicationLogs[l.UserID], l)
	}
	for _, l := range snap.WaterLogs {
		key := dayKey{l.UserID, l.Date}
		s.waterLogs[key] = append(s.waterLogs[key], l)
	}
	for _, sc := range snap.ComplianceScores {
		s.scores[dayKey{sc.UserID, sc.Date}] = sc
	}
	for _, st := range snap.Streaks {
		s.streaks[streakKey{st.UserID, st.Type}] = st
	}
	return nil
}

func (s *RecordStore) Counts() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int, len(Tables))
	for _, table := range Tables {
		counts[table] = 0
	}
	counts[TableDailyTargets] = len(s.targets)
	counts[TableWorkoutSessions] = len(s.workouts)
	counts[TableSleepLogs] = len(s.sleepLogs)
	counts[TableFastingPlans] = len(s.fastingPlans)
	counts[TableComplianceScores] = len(s.scores)
	counts[TableStreaks] = len(s.streaks)
	for _, logs := range s.foodLogs {
		counts[TableFoodLogs] += len(logs)
	}
	for _, meds := range s.medications {
		counts[TableMedications] += len(meds)
	}
	for _, logs := range s.medicationLogs {
		counts[TableMedicationLogs] += len(logs)
	}
	for _, logs := range s.waterLogs {
		counts[TableWaterLogs] += len(logs)
	}
	return counts
}

func (s *RecordStore) Close() error {
	return nil
}
