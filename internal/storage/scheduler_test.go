package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitscore/internal/models"
	"fitscore/internal/structures"
	"fitscore/internal/testutil"
)

func testConfig(filePath string) *structures.Config {
	return &structures.Config{
		Persistence: structures.Persistence{
			Enabled:      true,
			FilePath:     filePath,
			SaveInterval: 20 * time.Millisecond,
		},
		Store: structures.StoreConfig{Driver: DriverMemory},
	}
}

func newTestScheduler(conf *structures.Config, store models.RecordStoreInterface, comp *testutil.MockCompressor) (*Scheduler, *testutil.MockMetrics) {
	logger := &testutil.MockLogger{}
	metrics := &testutil.MockMetrics{}
	fm := NewFileManager(comp, store, logger)
	return NewScheduler(conf, logger, store, fm, metrics).(*Scheduler), metrics
}

func TestScheduler_Restore_Success(t *testing.T) {
	path := filepath.Join(t.TempDir(), "restore.dat")
	data, _ := json.Marshal(models.Snapshot{
		Version: models.SnapshotVersion,
		Streaks: []models.Streak{{UserID: "u1", Type: models.OverallComplianceStreak, CurrentStreak: 4, LongestStreak: 4}},
	})
	require.NoError(t, os.WriteFile(path, data, 0644))

	store := models.NewRecordStore()
	s, metrics := newTestScheduler(testConfig(path), store, &testutil.MockCompressor{})
	require.NoError(t, s.Restore())

	st, _ := store.GetStreak(ctx, "u1", models.OverallComplianceStreak)
	require.NotNil(t, st)
	assert.Equal(t, 4, st.CurrentStreak)
	assert.Equal(t, 1, metrics.Records[models.TableStreaks])
}

func TestScheduler_Restore_FileNotExist(t *testing.T) {
	s, _ := newTestScheduler(testConfig("/nonexistent/file.dat"), models.NewRecordStore(), &testutil.MockCompressor{})
	assert.NoError(t, s.Restore())
}

func TestScheduler_Restore_CorruptedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.dat")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	s, _ := newTestScheduler(testConfig(path), models.NewRecordStore(), &testutil.MockCompressor{})
	assert.Error(t, s.Restore())
}

func TestScheduler_Persist_Success(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.dat")
	s, metrics := newTestScheduler(testConfig(path), seededStore(t), &testutil.MockCompressor{})

	require.NoError(t, s.Persist())

	_, err := os.Stat(path)
	assert.NoError(t, err)
	assert.Equal(t, 1, metrics.PersistenceCalls)
	assert.Equal(t, 1, metrics.Records[models.TableFoodLogs])
}

func TestScheduler_Persist_WriteError(t *testing.T) {
	comp := &testutil.MockCompressor{
		CompressFn: func(b []byte) ([]byte, error) {
			return nil, errors.New("compress error")
		},
	}
	s, metrics := newTestScheduler(testConfig(filepath.Join(t.TempDir(), "x.dat")), models.NewRecordStore(), comp)

	assert.Error(t, s.Persist())
	assert.Equal(t, 0, metrics.PersistenceCalls)
}

func TestScheduler_DisabledIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disabled.dat")
	conf := testConfig(path)
	conf.Persistence.Enabled = false

	s, _ := newTestScheduler(conf, seededStore(t), &testutil.MockCompressor{})
	s.Init()
	require.NoError(t, s.Persist())
	require.NoError(t, s.Restore())
	s.Stop()

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestScheduler_SQLiteDriverSkipsSnapshots(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sqlite.dat")
	conf := testConfig(path)
	conf.Store.Driver = DriverSQLite

	s, _ := newTestScheduler(conf, seededStore(t), &testutil.MockCompressor{})
	require.NoError(t, s.Persist())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestScheduler_SQLiteDriverPublishesRecordGauges(t *testing.T) {
	conf := testConfig(filepath.Join(t.TempDir(), "sqlite.dat"))
	conf.Store.Driver = DriverSQLite
	store := seededStore(t)

	s, metrics := newTestScheduler(conf, store, &testutil.MockCompressor{})
	s.Init()
	defer s.Stop()

	count, ok := metrics.RecordCount(models.TableFoodLogs)
	require.True(t, ok)
	assert.Equal(t, 1, count)
	count, ok = metrics.RecordCount(models.TableMedicationLogs)
	require.True(t, ok)
	assert.Equal(t, 0, count)

	_, err := store.AddFoodLog(ctx, models.FoodLog{UserID: "u2", Date: "2024-03-02", Calories: 100})
	require.NoError(t, err)
	assert.Eventually(t, func() bool {
		n, _ := metrics.RecordCount(models.TableFoodLogs)
		return n == 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestScheduler_StopWithoutInit(t *testing.T) {
	s, _ := newTestScheduler(testConfig("/tmp/test.dat"), models.NewRecordStore(), &testutil.MockCompressor{})
	s.Stop()
}

func TestScheduler_InitPersistsOnTick(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lifecycle.dat")
	s, _ := newTestScheduler(testConfig(path), seededStore(t), &testutil.MockCompressor{})

	s.Init()
	s.Init()
	assert.Eventually(t, func() bool {
		_, err := os.Stat(path)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)
	s.Stop()
	s.Stop()
}

func TestScheduler_CloseReleasesCompressor(t *testing.T) {
	comp := &testutil.MockCompressor{}
	s, _ := newTestScheduler(testConfig(filepath.Join(t.TempDir(), "c.dat")), models.NewRecordStore(), comp)

	s.Init()
	s.Close()
	assert.True(t, comp.Closed)
	assert.Nil(t, s.stop)
}
