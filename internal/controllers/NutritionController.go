package controllers

import (
	"net/http"

	"fitscore/internal/models"
	"fitscore/internal/providers"
	"fitscore/internal/services"
)

type NutritionController struct {
	logger  providers.Logger
	service services.NutritionServiceInterface
}

func NewNutritionController(logger providers.Logger, service services.NutritionServiceInterface) *NutritionController {
	return &NutritionController{
		logger:  logger,
		service: service,
	}
}

func (nc *NutritionController) Plan(w http.ResponseWriter, r *http.Request) {
	var payload models.PlanRequest
	if !decodeBody(w, r, &payload) {
		return
	}
	result, err := nc.service.Plan(r.Context(), payload)
	if err != nil {
		writeError(w, r, nc.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (nc *NutritionController) Grade(w http.ResponseWriter, r *http.Request) {
	var payload models.FoodNutrientSample
	if !decodeBody(w, r, &payload) {
		return
	}
	writeJSON(w, http.StatusOK, nc.service.Grade(payload))
}
