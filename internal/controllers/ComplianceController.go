package controllers

import (
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"

	"fitscore/internal/compliance"
	"fitscore/internal/models"
	"fitscore/internal/providers"
	"fitscore/internal/services"
)

type ComplianceController struct {
	logger  providers.Logger
	service services.ComplianceServiceInterface
	cache   providers.CacheProviderInterface
}

type calculateRequest struct {
	UserID string `json:"user_id"`
	Date   string `json:"date"`
}

func NewComplianceController(logger providers.Logger, service services.ComplianceServiceInterface, cache providers.CacheProviderInterface) *ComplianceController {
	return &ComplianceController{
		logger:  logger,
		service: service,
		cache:   cache,
	}
}

func insightsKey(userID, date string) string {
	return "insights:" + userID + ":" + date
}

func (cc *ComplianceController) serveFromCacheOrCompute(w http.ResponseWriter, r *http.Request, cacheKey string, compute func() (any, error)) {
	if data, ok := cc.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		writeError(w, r, cc.logger, err)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	cc.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// forgetInsights drops cached insights for every window that contains date.
func (cc *ComplianceController) forgetInsights(userID, date string) {
	d, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return
	}
	for i := 0; i < compliance.InsightsWindowDays; i++ {
		cc.cache.Del(insightsKey(userID, d.AddDate(0, 0, i).Format(models.DateLayout)))
	}
}

func (cc *ComplianceController) Calculate(w http.ResponseWriter, r *http.Request) {
	var payload calculateRequest
	if !decodeBody(w, r, &payload) {
		return
	}

	score, err := cc.service.CalculateDailyScore(r.Context(), payload.UserID, payload.Date)
	if err != nil {
		writeError(w, r, cc.logger, err)
		return
	}
	cc.forgetInsights(payload.UserID, payload.Date)
	writeJSON(w, http.StatusCreated, score)
}

func (cc *ComplianceController) GetScore(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	score, err := cc.service.GetScore(r.Context(), q.Get("user"), q.Get("date"))
	if err != nil {
		writeError(w, r, cc.logger, err)
		return
	}
	if score == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, score)
}

func (cc *ComplianceController) ListScores(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	days := 0
	if raw := q.Get("days"); raw != "" {
		var err error
		if days, err = cast.ToIntE(raw); err != nil {
			http.Error(w, "days must be an integer", http.StatusBadRequest)
			return
		}
	}

	scores, err := cc.service.ListScores(r.Context(), q.Get("user"), q.Get("date"), days)
	if err != nil {
		writeError(w, r, cc.logger, err)
		return
	}
	if scores == nil {
		scores = []models.ComplianceScore{}
	}
	writeJSON(w, http.StatusOK, scores)
}

func (cc *ComplianceController) GetInsights(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	userID, date := q.Get("user"), q.Get("date")
	cc.serveFromCacheOrCompute(w, r, insightsKey(userID, date), func() (any, error) {
		return cc.service.GetWeeklyInsights(r.Context(), userID, date)
	})
}

func (cc *ComplianceController) GetStreak(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	st, err := cc.service.GetStreak(r.Context(), q.Get("user"), q.Get("type"))
	if err != nil {
		writeError(w, r, cc.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
