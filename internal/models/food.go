package models

type Grade string

const (
	GradeApprove Grade = "APPROVE"
	GradeCaution Grade = "CAUTION"
	GradeAvoid   Grade = "AVOID"
)

// FoodNutrientSample is the per-serving nutrient tuple used for grading.
// Missing optional fields decode as zero.
type FoodNutrientSample struct {
	ProteinG  float64 `json:"protein_g"`
	SugarG    float64 `json:"sugar_g"`
	TransFatG float64 `json:"trans_fat_g"`
	SodiumMg  float64 `json:"sodium_mg"`
}

type FoodGrade struct {
	Grade  Grade  `json:"grade"`
	Reason string `json:"reason"`
}
