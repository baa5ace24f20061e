package services

import (
	"context"
	"fmt"

	"fitscore/internal/models"
	"fitscore/internal/nutrition"
)

type NutritionServiceInterface interface {
	Plan(ctx context.Context, req models.PlanRequest) (*models.PlanResult, error)
	Grade(sample models.FoodNutrientSample) models.FoodGrade
}

type NutritionService struct {
	store models.RecordStoreInterface
}

func NewNutritionService(store models.RecordStoreInterface) NutritionServiceInterface {
	return &NutritionService{store: store}
}

// Plan computes BMR, TDEE, calorie target and macros for the profile. With
// Save set, the result replaces the user's target for the given date.
func (ns *NutritionService) Plan(ctx context.Context, req models.PlanRequest) (*models.PlanResult, error) {
	if err := validate(&req.UserProfile); err != nil {
		return nil, err
	}

	result := &models.PlanResult{NutritionPlan: nutrition.Plan(req.UserProfile)}
	if !req.Save {
		return result, nil
	}

	if err := requireUser(req.UserID); err != nil {
		return nil, err
	}
	if _, err := parseDate(req.Date); err != nil {
		return nil, err
	}

	target, err := ns.store.UpsertDailyTarget(ctx, models.DailyTarget{
		UserID:   req.UserID,
		Date:     req.Date,
		Calories: float64(result.Calories),
		ProteinG: float64(result.Macros.ProteinG),
		CarbsG:   float64(result.Macros.CarbsG),
		FatsG:    float64(result.Macros.FatsG),
	})
	if err != nil {
		return nil, fmt.Errorf("save daily target: %w", err)
	}
	result.Target = &target
	return result, nil
}

func (ns *NutritionService) Grade(sample models.FoodNutrientSample) models.FoodGrade {
	return nutrition.Grade(sample)
}
