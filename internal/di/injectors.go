//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"fitscore/internal"
	"fitscore/internal/controllers"
	"fitscore/internal/providers"
	"fitscore/internal/services"
	"fitscore/internal/storage"
	"fitscore/internal/structures"
)

var storeSet = wire.NewSet(
	providers.NewConfigProvider,
	providers.NewLogProvider,
	storage.NewRecordStore,
	providers.NewMetricsProvider,
	storage.NewZstdCompressor,
	storage.NewFileManager,
	storage.NewScheduler,
	services.NewComplianceService,
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		storeSet,
		providers.NewInstrumentedCacheProvider,

		services.NewActivityService,
		services.NewNutritionService,
		controllers.NewComplianceController,
		controllers.NewActivityController,
		controllers.NewNutritionController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}

func InitSession(cfg *structures.CliFlags) (*internal.Session, error) {

	wire.Build(
		storeSet,
		internal.NewSession,
	)

	return nil, nil
}
