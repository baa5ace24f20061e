package controllers

import (
	"context"
	"net/http"

	"fitscore/internal/models"
	"fitscore/internal/providers"
	"fitscore/internal/services"
)

type ActivityController struct {
	logger  providers.Logger
	service services.ActivityServiceInterface
}

func NewActivityController(logger providers.Logger, service services.ActivityServiceInterface) *ActivityController {
	return &ActivityController{
		logger:  logger,
		service: service,
	}
}

// ingest decodes a T, hands it to save and answers 201 with the stored record.
func ingest[T any, R any](ac *ActivityController, save func(context.Context, T) (R, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload T
		if !decodeBody(w, r, &payload) {
			return
		}
		saved, err := save(r.Context(), payload)
		if err != nil {
			writeError(w, r, ac.logger, err)
			return
		}
		writeJSON(w, http.StatusCreated, saved)
	}
}

func (ac *ActivityController) SetDailyTarget() http.HandlerFunc {
	return ingest[models.DailyTarget](ac, ac.service.SetDailyTarget)
}

func (ac *ActivityController) LogFood() http.HandlerFunc {
	return ingest[models.FoodLog](ac, ac.service.LogFood)
}

func (ac *ActivityController) LogWorkout() http.HandlerFunc {
	return ingest[models.WorkoutSession](ac, ac.service.LogWorkout)
}

func (ac *ActivityController) LogSleep() http.HandlerFunc {
	return ingest[models.SleepLog](ac, ac.service.LogSleep)
}

func (ac *ActivityController) SetFastingPlan() http.HandlerFunc {
	return ingest[models.FastingPlan](ac, ac.service.SetFastingPlan)
}

func (ac *ActivityController) SaveMedication() http.HandlerFunc {
	return ingest[models.Medication](ac, ac.service.SaveMedication)
}

func (ac *ActivityController) LogMedicationDose() http.HandlerFunc {
	return ingest[models.MedicationLog](ac, ac.service.LogMedicationDose)
}

func (ac *ActivityController) LogWater() http.HandlerFunc {
	return ingest[models.WaterLog](ac, ac.service.LogWater)
}
