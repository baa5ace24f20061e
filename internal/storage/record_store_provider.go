package storage

import (
	"context"
	"fmt"

	"fitscore/internal/models"
	"fitscore/internal/providers"
	"fitscore/internal/structures"
)

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// NewRecordStore builds the store selected by store.driver. An empty driver means memory.
func NewRecordStore(conf *structures.Config, logger providers.Logger) (models.RecordStoreInterface, error) {
	switch conf.Store.Driver {
	case "", DriverMemory:
		logger.Infof(providers.TypeStore, "Using in-memory record store")
		return models.NewRecordStore(), nil
	case DriverSQLite:
		store, err := NewSQLiteStore(context.Background(), conf.Store.DSN)
		if err != nil {
			return nil, fmt.Errorf("sqlite store: %w", err)
		}
		logger.Infof(providers.TypeStore, "Using sqlite record store at %s", conf.Store.DSN)
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", conf.Store.Driver)
	}
}
