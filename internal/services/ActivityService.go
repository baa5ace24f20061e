package services

import (
	"context"
	"fmt"

	"fitscore/internal/models"
	"fitscore/internal/nutrition"
	"fitscore/internal/providers"
)

// ActivityServiceInterface ingests the records other parts of the app own.
type ActivityServiceInterface interface {
	SetDailyTarget(ctx context.Context, target models.DailyTarget) (*models.DailyTarget, error)
	LogFood(ctx context.Context, log models.FoodLog) (*models.FoodLog, error)
	LogWorkout(ctx context.Context, session models.WorkoutSession) (*models.WorkoutSession, error)
	LogSleep(ctx context.Context, log models.SleepLog) (*models.SleepLog, error)
	SetFastingPlan(ctx context.Context, plan models.FastingPlan) (*models.FastingPlan, error)
	SaveMedication(ctx context.Context, med models.Medication) (*models.Medication, error)
	LogMedicationDose(ctx context.Context, log models.MedicationLog) (*models.MedicationLog, error)
	LogWater(ctx context.Context, log models.WaterLog) (*models.WaterLog, error)
}

type ActivityService struct {
	store  models.RecordStoreInterface
	logger providers.Logger
}

func NewActivityService(store models.RecordStoreInterface, logger providers.Logger) ActivityServiceInterface {
	return &ActivityService{store: store, logger: logger}
}

func (as *ActivityService) SetDailyTarget(ctx context.Context, target models.DailyTarget) (*models.DailyTarget, error) {
	if err := validate(&target); err != nil {
		return nil, err
	}
	if _, err := parseDate(target.Date); err != nil {
		return nil, err
	}
	saved, err := as.store.UpsertDailyTarget(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("save daily target: %w", err)
	}
	return &saved, nil
}

// LogFood grades the entry from its nutrients before saving it.
func (as *ActivityService) LogFood(ctx context.Context, log models.FoodLog) (*models.FoodLog, error) {
	if err := validate(&log); err != nil {
		return nil, err
	}
	if _, err := parseDate(log.Date); err != nil {
		return nil, err
	}
	if err := checkClock("time", log.Time); err != nil {
		return nil, err
	}

	grade := nutrition.Grade(models.FoodNutrientSample{
		ProteinG:  log.ProteinG,
		SugarG:    log.SugarG,
		TransFatG: log.TransFatG,
		SodiumMg:  log.SodiumMg,
	})
	log.Grade = string(grade.Grade)
	log.GradeReason = grade.Reason

	saved, err := as.store.AddFoodLog(ctx, log)
	if err != nil {
		return nil, fmt.Errorf("save food log: %w", err)
	}
	as.logger.Debugf(providers.TypeStore, "Food %q for %s graded %s", saved.Name, saved.UserID, saved.Grade)
	return &saved, nil
}

func (as *ActivityService) LogWorkout(ctx context.Context, session models.WorkoutSession) (*models.WorkoutSession, error) {
	if err := validate(&session); err != nil {
		return nil, err
	}
	if _, err := parseDate(session.Date); err != nil {
		return nil, err
	}
	saved, err := as.store.UpsertWorkoutSession(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("save workout session: %w", err)
	}
	return &saved, nil
}

func (as *ActivityService) LogSleep(ctx context.Context, log models.SleepLog) (*models.SleepLog, error) {
	if err := validate(&log); err != nil {
		return nil, err
	}
	if _, err := parseDate(log.Date); err != nil {
		return nil, err
	}
	saved, err := as.store.UpsertSleepLog(ctx, log)
	if err != nil {
		return nil, fmt.Errorf("save sleep log: %w", err)
	}
	return &saved, nil
}

func (as *ActivityService) SetFastingPlan(ctx context.Context, plan models.FastingPlan) (*models.FastingPlan, error) {
	if err := validate(&plan); err != nil {
		return nil, err
	}
	if err := checkClock("eating_window_start", plan.EatingWindowStart); err != nil {
		return nil, err
	}
	if err := checkClock("eating_window_end", plan.EatingWindowEnd); err != nil {
		return nil, err
	}
	saved, err := as.store.UpsertFastingPlan(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("save fasting plan: %w", err)
	}
	return &saved, nil
}

func (as *ActivityService) SaveMedication(ctx context.Context, med models.Medication) (*models.Medication, error) {
	if err := validate(&med); err != nil {
		return nil, err
	}
	saved, err := as.store.UpsertMedication(ctx, med)
	if err != nil {
		return nil, fmt.Errorf("save medication: %w", err)
	}
	return &saved, nil
}

func (as *ActivityService) LogMedicationDose(ctx context.Context, log models.MedicationLog) (*models.MedicationLog, error) {
	if err := validate(&log); err != nil {
		return nil, err
	}
	if log.ScheduledTime.IsZero() {
		return nil, invalidf("scheduled_time is required")
	}
	saved, err := as.store.AddMedicationLog(ctx, log)
	if err != nil {
		return nil, fmt.Errorf("save medication log: %w", err)
	}
	return &saved, nil
}

func (as *ActivityService) LogWater(ctx context.Context, log models.WaterLog) (*models.WaterLog, error) {
	if err := validate(&log); err != nil {
		return nil, err
	}
	if _, err := parseDate(log.Date); err != nil {
		return nil, err
	}
	saved, err := as.store.AddWaterLog(ctx, log)
	if err != nil {
		return nil, fmt.Errorf("save water log: %w", err)
	}
	return &saved, nil
}
