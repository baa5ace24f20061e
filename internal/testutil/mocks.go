package testutil

import (
	"context"
	"errors"
	"sync"
	"time"

	"fitscore/internal/models"
	"fitscore/internal/providers"
)

var ErrStoreUnavailable = errors.New("store unavailable")

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Entries returns the recorded entries of one level.
func (m *MockLogger) Entries(level string) []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []LogEntry
	for _, e := range m.Logs {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Del(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
	Closed       bool
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// identity
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() { m.Closed = true }

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu               sync.Mutex
	Requests         int
	CacheHits        int
	CacheMisses      int
	PersistenceCalls int
	Records          map[string]int
	ScoresComputed   int
	StreakFailures   int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}
func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}
func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistenceCalls++
}
func (m *MockMetrics) SetRecordsTotal(table string, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Records == nil {
		m.Records = make(map[string]int)
	}
	m.Records[table] = count
}
func (m *MockMetrics) RecordCount(table string) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.Records[table]
	return v, ok
}
func (m *MockMetrics) IncScoresComputed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ScoresComputed++
}
func (m *MockMetrics) IncStreakFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StreakFailures++
}

// FailingStore wraps an in-memory store and fails the methods named in Fail.
type FailingStore struct {
	models.RecordStoreInterface
	mu   sync.Mutex
	Fail map[string]error
}

func NewFailingStore(fail ...string) *FailingStore {
	f := &FailingStore{
		RecordStoreInterface: models.NewRecordStore(),
		Fail:                 make(map[string]error, len(fail)),
	}
	for _, name := range fail {
		f.Fail[name] = ErrStoreUnavailable
	}
	return f
}

func (f *FailingStore) err(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Fail[name]
}

func (f *FailingStore) GetDailyTarget(ctx context.Context, userID, date string) (*models.DailyTarget, error) {
	if err := f.err("GetDailyTarget"); err != nil {
		return nil, err
	}
	return f.RecordStoreInterface.GetDailyTarget(ctx, userID, date)
}

func (f *FailingStore) ListMedicationLogs(ctx context.Context, userID string, from, to time.Time) ([]models.MedicationLog, error) {
	if err := f.err("ListMedicationLogs"); err != nil {
		return nil, err
	}
	return f.RecordStoreInterface.ListMedicationLogs(ctx, userID, from, to)
}

func (f *FailingStore) UpsertDailyTarget(ctx context.Context, t models.DailyTarget) (models.DailyTarget, error) {
	if err := f.err("UpsertDailyTarget"); err != nil {
		return models.DailyTarget{}, err
	}
	return f.RecordStoreInterface.UpsertDailyTarget(ctx, t)
}

func (f *FailingStore) AddFoodLog(ctx context.Context, l models.FoodLog) (models.FoodLog, error) {
	if err := f.err("AddFoodLog"); err != nil {
		return models.FoodLog{}, err
	}
	return f.RecordStoreInterface.AddFoodLog(ctx, l)
}

func (f *FailingStore) UpsertComplianceScore(ctx context.Context, sc models.ComplianceScore) (models.ComplianceScore, error) {
	if err := f.err("UpsertComplianceScore"); err != nil {
		return models.ComplianceScore{}, err
	}
	return f.RecordStoreInterface.UpsertComplianceScore(ctx, sc)
}

func (f *FailingStore) GetComplianceScore(ctx context.Context, userID, date string) (*models.ComplianceScore, error) {
	if err := f.err("GetComplianceScore"); err != nil {
		return nil, err
	}
	return f.RecordStoreInterface.GetComplianceScore(ctx, userID, date)
}

func (f *FailingStore) ListComplianceScores(ctx context.Context, userID, from, to string) ([]models.ComplianceScore, error) {
	if err := f.err("ListComplianceScores"); err != nil {
		return nil, err
	}
	return f.RecordStoreInterface.ListComplianceScores(ctx, userID, from, to)
}

func (f *FailingStore) GetStreak(ctx context.Context, userID, streakType string) (*models.Streak, error) {
	if err := f.err("GetStreak"); err != nil {
		return nil, err
	}
	return f.RecordStoreInterface.GetStreak(ctx, userID, streakType)
}

func (f *FailingStore) UpsertStreak(ctx context.Context, st models.Streak) (models.Streak, error) {
	if err := f.err("UpsertStreak"); err != nil {
		return models.Streak{}, err
	}
	return f.RecordStoreInterface.UpsertStreak(ctx, st)
}

func (f *FailingStore) GetSnapshot(ctx context.Context) (*models.Snapshot, error) {
	if err := f.err("GetSnapshot"); err != nil {
		return nil, err
	}
	return f.RecordStoreInterface.GetSnapshot(ctx)
}
