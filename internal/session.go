package internal

import (
	"errors"
	"fmt"

	"fitscore/internal/models"
	"fitscore/internal/providers"
	"fitscore/internal/services"
	"fitscore/internal/storage/interfaces"
)

// Session gives one-shot commands the same store and services the server
// uses, without the HTTP side.
type Session struct {
	Compliance services.ComplianceServiceInterface

	logger    providers.Logger
	scheduler interfaces.SchedulerInterface
	store     models.RecordStoreInterface
}

func NewSession(compliance services.ComplianceServiceInterface, scheduler interfaces.SchedulerInterface, store models.RecordStoreInterface, logger providers.Logger) *Session {
	return &Session{
		Compliance: compliance,
		logger:     logger,
		scheduler:  scheduler,
		store:      store,
	}
}

// Open loads the last snapshot into the store.
func (s *Session) Open() error {
	if err := s.scheduler.Restore(); err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	return nil
}

// Close saves what the session changed and releases the store.
func (s *Session) Close() error {
	var errs []error
	if err := s.scheduler.Persist(); err != nil {
		errs = append(errs, fmt.Errorf("persist: %w", err))
	}
	s.scheduler.Close()
	if err := s.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close store: %w", err))
	}
	s.logger.Close()
	return errors.Join(errs...)
}
