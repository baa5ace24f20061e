package services

import (
	"context"
	"fmt"
	"time"

	"fitscore/internal/compliance"
	"fitscore/internal/models"
	"fitscore/internal/providers"
	"fitscore/internal/structures"
)

const (
	DefaultHistoryDays = 30
	MaxHistoryDays     = 366
)

type ComplianceServiceInterface interface {
	FetchDailyData(ctx context.Context, userID, date string) (*models.DailyData, error)
	CalculateDailyScore(ctx context.Context, userID, date string) (*models.ComplianceScore, error)
	AdvanceStreak(ctx context.Context, userID, streakType, date string, overall int) (*models.Streak, error)
	GetWeeklyInsights(ctx context.Context, userID, date string) (*models.WeeklyInsights, error)
	GetScore(ctx context.Context, userID, date string) (*models.ComplianceScore, error)
	ListScores(ctx context.Context, userID, date string, days int) ([]models.ComplianceScore, error)
	GetStreak(ctx context.Context, userID, streakType string) (*models.Streak, error)
}

type ComplianceService struct {
	store    models.RecordStoreInterface
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
	location *time.Location
	now      func() time.Time
}

func NewComplianceService(conf *structures.Config, store models.RecordStoreInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) ComplianceServiceInterface {
	loc := time.UTC
	if tz := conf.Compliance.Timezone; tz != "" {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		} else {
			logger.Warnf(providers.TypeApp, "Unknown timezone %q, using UTC", tz)
		}
	}
	return &ComplianceService{
		store:    store,
		logger:   logger,
		metrics:  metrics,
		location: loc,
		now:      time.Now,
	}
}

// FetchDailyData reads every record that feeds the day's score. Medication
// logs are taken from the calendar day in the configured timezone.
func (cs *ComplianceService) FetchDailyData(ctx context.Context, userID, date string) (*models.DailyData, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	data := &models.DailyData{UserID: userID, Date: date}

	if data.DailyTarget, err = cs.store.GetDailyTarget(ctx, userID, date); err != nil {
		return nil, fmt.Errorf("fetch daily target: %w", err)
	}
	if data.FoodLogs, err = cs.store.ListFoodLogs(ctx, userID, date); err != nil {
		return nil, fmt.Errorf("fetch food logs: %w", err)
	}
	if data.Workout, err = cs.store.GetWorkoutSession(ctx, userID, date); err != nil {
		return nil, fmt.Errorf("fetch workout session: %w", err)
	}
	if data.SleepLog, err = cs.store.GetSleepLog(ctx, userID, date); err != nil {
		return nil, fmt.Errorf("fetch sleep log: %w", err)
	}
	if data.FastingPlan, err = cs.store.GetActiveFastingPlan(ctx, userID); err != nil {
		return nil, fmt.Errorf("fetch fasting plan: %w", err)
	}
	if data.Medications, err = cs.store.ListActiveMedications(ctx, userID); err != nil {
		return nil, fmt.Errorf("fetch medications: %w", err)
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, cs.location)
	if data.MedicationLogs, err = cs.store.ListMedicationLogs(ctx, userID, start, start.AddDate(0, 0, 1)); err != nil {
		return nil, fmt.Errorf("fetch medication logs: %w", err)
	}
	if data.WaterLogs, err = cs.store.ListWaterLogs(ctx, userID, date); err != nil {
		return nil, fmt.Errorf("fetch water logs: %w", err)
	}

	return data, nil
}

// CalculateDailyScore scores the day, saves it and advances the overall
// streak. The score stays saved when the streak update fails.
func (cs *ComplianceService) CalculateDailyScore(ctx context.Context, userID, date string) (*models.ComplianceScore, error) {
	data, err := cs.FetchDailyData(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	score := models.ComplianceScore{
		UserID:    userID,
		Date:      date,
		SubScores: compliance.Score(*data),
		UpdatedAt: cs.now().UTC(),
	}

	saved, err := cs.store.UpsertComplianceScore(ctx, score)
	if err != nil {
		return nil, fmt.Errorf("save compliance score: %w", err)
	}
	cs.metrics.IncScoresComputed()
	cs.logger.Debugf(providers.TypeStore, "Scored %s on %s: overall %d", userID, date, saved.Overall)

	if _, err := cs.AdvanceStreak(ctx, userID, models.OverallComplianceStreak, date, saved.Overall); err != nil {
		cs.metrics.IncStreakFailures()
		cs.logger.Errorf(providers.TypeStore, "Streak update for %s on %s failed: %s", userID, date, err)
	}

	return &saved, nil
}

// AdvanceStreak applies one scored day to the stored streak. Calling it
// twice for one date counts the day twice.
func (cs *ComplianceService) AdvanceStreak(ctx context.Context, userID, streakType, date string, overall int) (*models.Streak, error) {
	prev, err := cs.store.GetStreak(ctx, userID, streakType)
	if err != nil {
		return nil, fmt.Errorf("read streak: %w", err)
	}

	next := compliance.AdvanceStreak(prev, userID, streakType, date, overall)
	saved, err := cs.store.UpsertStreak(ctx, next)
	if err != nil {
		return nil, fmt.Errorf("save streak: %w", err)
	}
	return &saved, nil
}

// GetWeeklyInsights summarizes the 7 days ending on date, date included.
func (cs *ComplianceService) GetWeeklyInsights(ctx context.Context, userID, date string) (*models.WeeklyInsights, error) {
	scores, err := cs.scoresWindow(ctx, userID, date, compliance.InsightsWindowDays)
	if err != nil {
		return nil, err
	}
	insights := compliance.WeeklyInsights(scores)
	return &insights, nil
}

func (cs *ComplianceService) GetScore(ctx context.Context, userID, date string) (*models.ComplianceScore, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if _, err := parseDate(date); err != nil {
		return nil, err
	}
	score, err := cs.store.GetComplianceScore(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("read compliance score: %w", err)
	}
	return score, nil
}

// ListScores returns up to days scores ending on date, oldest first.
// A non-positive days means DefaultHistoryDays.
func (cs *ComplianceService) ListScores(ctx context.Context, userID, date string, days int) ([]models.ComplianceScore, error) {
	if days <= 0 {
		days = DefaultHistoryDays
	}
	if days > MaxHistoryDays {
		return nil, invalidf("days must be at most %d", MaxHistoryDays)
	}
	return cs.scoresWindow(ctx, userID, date, days)
}

func (cs *ComplianceService) scoresWindow(ctx context.Context, userID, date string, days int) ([]models.ComplianceScore, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	to, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	from := to.AddDate(0, 0, -(days - 1)).Format(models.DateLayout)

	scores, err := cs.store.ListComplianceScores(ctx, userID, from, date)
	if err != nil {
		return nil, fmt.Errorf("list compliance scores: %w", err)
	}
	return scores, nil
}

// GetStreak returns a zero streak when none is stored yet.
func (cs *ComplianceService) GetStreak(ctx context.Context, userID, streakType string) (*models.Streak, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if streakType == "" {
		streakType = models.OverallComplianceStreak
	}
	st, err := cs.store.GetStreak(ctx, userID, streakType)
	if err != nil {
		return nil, fmt.Errorf("read streak: %w", err)
	}
	if st == nil {
		st = &models.Streak{UserID: userID, Type: streakType}
	}
	return st, nil
}
