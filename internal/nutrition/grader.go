package nutrition

import (
	"strings"

	"fitscore/internal/models"
)

const (
	ReasonTransFat        = "Contains trans fats"
	ReasonVeryHighSugar   = "Very high sugar (>20g)"
	ReasonLowProteinSugar = "Low protein + high sugar"
	ReasonVeryHighSodium  = "Very high sodium (>800mg)"
	ReasonApproved        = "High protein, low sugar, moderate sodium"
	ReasonAverage         = "Average nutritional profile"

	cautionModerateProtein = "Moderate protein"
	cautionModerateSugar   = "Moderate sugar"
	cautionHighSodium      = "High sodium"
)

// Grade classifies a food sample. Rules are evaluated in order and the first match wins.
func Grade(s models.FoodNutrientSample) models.FoodGrade {
	switch {
	case s.TransFatG > 0:
		return avoid(ReasonTransFat)
	case s.SugarG > 20:
		return avoid(ReasonVeryHighSugar)
	case s.ProteinG < 5 && s.SugarG > 10:
		return avoid(ReasonLowProteinSugar)
	case s.SodiumMg > 800:
		return avoid(ReasonVeryHighSodium)
	case s.ProteinG >= 15 && s.SugarG <= 10 && s.SodiumMg < 500:
		return models.FoodGrade{Grade: models.GradeApprove, Reason: ReasonApproved}
	}

	var reasons []string
	if s.ProteinG >= 5 && s.ProteinG < 15 {
		reasons = append(reasons, cautionModerateProtein)
	}
	if s.SugarG > 10 && s.SugarG <= 20 {
		reasons = append(reasons, cautionModerateSugar)
	}
	if s.SodiumMg >= 500 && s.SodiumMg <= 800 {
		reasons = append(reasons, cautionHighSodium)
	}
	if len(reasons) == 0 {
		reasons = append(reasons, ReasonAverage)
	}
	return models.FoodGrade{Grade: models.GradeCaution, Reason: strings.Join(reasons, ", ")}
}

func avoid(reason string) models.FoodGrade {
	return models.FoodGrade{Grade: models.GradeAvoid, Reason: reason}
}
