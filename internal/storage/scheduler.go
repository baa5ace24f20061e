package storage

import (
	"context"
	"sync"
	"time"

	"fitscore/internal/models"
	"fitscore/internal/providers"
	"fitscore/internal/storage/interfaces"
	"fitscore/internal/structures"
)

// Scheduler restores the record store on boot and snapshots it every
// persistence.saveInterval. Record gauges are refreshed on the same tick
// for every driver. Persist runs never overlap.
type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	store       models.RecordStoreInterface
	fileManager *FileManager
	metrics     providers.MetricsProviderInterface
	opsMu       sync.Mutex

	stop chan struct{}
	done chan struct{}
}

// active reports whether snapshots apply. The sqlite driver is durable on its own.
func (s *Scheduler) active() bool {
	return s.config.Persistence.Enabled && s.config.Store.Driver != DriverSQLite
}

func (s *Scheduler) Init() {
	s.reportCounts()
	if s.stop != nil {
		return
	}
	if !s.active() {
		s.logger.Infof(providers.TypeApp, "Snapshot persistence disabled")
	}
	interval := s.config.Persistence.SaveInterval
	if interval <= 0 {
		return
	}

	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	ticker := time.NewTicker(interval)

	go func() {
		defer close(s.done)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.tick()
			case <-s.stop:
				return
			}
		}
	}()
}

// tick snapshots the store, or only refreshes the record gauges when
// snapshots do not apply.
func (s *Scheduler) tick() {
	if !s.active() {
		s.reportCounts()
		return
	}
	if err := s.Persist(); err == nil {
		s.logger.Infof(providers.TypeApp, "Persisted data to file %s", s.config.Persistence.FilePath)
	}
}

func (s *Scheduler) Stop() {
	if s.stop == nil {
		return
	}
	close(s.stop)
	<-s.done
	s.stop = nil
}

func (s *Scheduler) Restore() error {
	if !s.active() {
		return nil
	}
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	err := s.fileManager.LoadFromFile(context.Background(), s.config.Persistence.FilePath)
	if err != nil {
		return err
	}
	s.reportCounts()
	return nil
}

func (s *Scheduler) Persist() error {
	if !s.active() {
		return nil
	}
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	start := time.Now()
	s.logger.Debugf(providers.TypeApp, "Persisting records to file...")
	err := s.fileManager.SaveToFile(context.Background(), s.config.Persistence.FilePath)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
		return err
	}
	s.metrics.ObservePersistenceDuration(time.Since(start))
	s.reportCounts()
	return nil
}

func (s *Scheduler) Close() {
	s.Stop()
	s.opsMu.Lock()
	defer s.opsMu.Unlock()
	s.fileManager.Close()
}

func (s *Scheduler) reportCounts() {
	for table, count := range s.store.Counts() {
		s.metrics.SetRecordsTotal(table, count)
	}
}

func NewScheduler(config *structures.Config, logger providers.Logger, store models.RecordStoreInterface, fileManager *FileManager, metrics providers.MetricsProviderInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		store:       store,
		fileManager: fileManager,
		metrics:     metrics,
	}
}
