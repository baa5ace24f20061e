package internal

import (
	"net/http"

	"fitscore/internal/controllers"
	"fitscore/internal/providers"
)

func InitRoutes(compliance *controllers.ComplianceController, activity *controllers.ActivityController, nutrition *controllers.NutritionController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/compliance/calculate", http.HandlerFunc(compliance.Calculate))
	routers.Get("/compliance/score", http.HandlerFunc(compliance.GetScore))
	routers.Get("/compliance/scores", http.HandlerFunc(compliance.ListScores))
	routers.Get("/compliance/insights", http.HandlerFunc(compliance.GetInsights))
	routers.Get("/streak", http.HandlerFunc(compliance.GetStreak))

	routers.Post("/activity/targets", activity.SetDailyTarget())
	routers.Post("/activity/food", activity.LogFood())
	routers.Post("/activity/workout", activity.LogWorkout())
	routers.Post("/activity/sleep", activity.LogSleep())
	routers.Post("/activity/fasting", activity.SetFastingPlan())
	routers.Post("/activity/medication", activity.SaveMedication())
	routers.Post("/activity/medication-log", activity.LogMedicationDose())
	routers.Post("/activity/water", activity.LogWater())

	routers.Post("/nutrition/plan", http.HandlerFunc(nutrition.Plan))
	routers.Post("/nutrition/grade", http.HandlerFunc(nutrition.Grade))
	return routers
}
