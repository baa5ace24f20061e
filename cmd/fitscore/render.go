package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"fitscore/internal/compliance"
	"fitscore/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	goodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	fairStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	poorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	labelStyle  = lipgloss.NewStyle().Width(12)
)

// scoreStyle colors a 0-100 value by band.
func scoreStyle(v int) lipgloss.Style {
	switch {
	case v >= compliance.GoodDayThreshold:
		return goodStyle
	case v >= compliance.WeakAreaThreshold:
		return fairStyle
	default:
		return poorStyle
	}
}

func row(label, value string) string {
	return labelStyle.Render(label) + value + "\n"
}

func renderScore(score *models.ComplianceScore, streak *models.Streak) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s on %s", score.UserID, score.Date)) + "\n")
	for _, s := range []struct {
		name  string
		value int
	}{
		{"Nutrition", score.Nutrition},
		{"Workout", score.Workout},
		{"Fasting", score.Fasting},
		{"Sleep", score.Sleep},
		{"Medication", score.Medication},
		{"Hydration", score.Hydration},
	} {
		b.WriteString(row(s.name, scoreStyle(s.value).Render(fmt.Sprintf("%3d", s.value))))
	}
	b.WriteString(row("Overall", scoreStyle(score.Overall).Bold(true).Render(fmt.Sprintf("%3d", score.Overall))))
	if streak != nil {
		b.WriteString(dimStyle.Render(fmt.Sprintf("streak %d, longest %d", streak.CurrentStreak, streak.LongestStreak)) + "\n")
	}
	return b.String()
}

func renderPlan(p models.NutritionPlan) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Nutrition plan") + "\n")
	b.WriteString(row("BMR", fmt.Sprintf("%.2f kcal", p.BMR)))
	b.WriteString(row("TDEE", fmt.Sprintf("%d kcal", p.TDEE)))
	b.WriteString(row("Target", fmt.Sprintf("%d kcal", p.Calories)))
	b.WriteString(row("Protein", fmt.Sprintf("%d g", p.Macros.ProteinG)))
	b.WriteString(row("Carbs", fmt.Sprintf("%d g", p.Macros.CarbsG)))
	b.WriteString(row("Fats", fmt.Sprintf("%d g", p.Macros.FatsG)))
	return b.String()
}

func renderGrade(g models.FoodGrade) string {
	style := fairStyle
	switch g.Grade {
	case models.GradeApprove:
		style = goodStyle
	case models.GradeAvoid:
		style = poorStyle
	}
	return style.Bold(true).Render(string(g.Grade)) + " " + dimStyle.Render(g.Reason) + "\n"
}
