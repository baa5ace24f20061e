package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"fitscore/internal/di"
	"fitscore/internal/models"
	"fitscore/internal/nutrition"
	"fitscore/internal/structures"
)

var flags structures.CliFlags

var rootCmd = &cobra.Command{
	Use:   "fitscore",
	Short: "Daily compliance scoring, streaks and nutrition planning",
	Long: `fitscore turns a day of logged meals, workouts, sleep, fasting, medication
and water into a weighted compliance score, keeps the good-day streak and
serves the results over HTTP.

Run without a subcommand to start the server.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var (
	scoreUser string
	scoreDate string
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Recompute one day's compliance score and print it",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := di.InitSession(&flags)
		if err != nil {
			return err
		}
		if err := session.Open(); err != nil {
			_ = session.Close()
			return err
		}

		score, err := session.Compliance.CalculateDailyScore(cmd.Context(), scoreUser, scoreDate)
		if err != nil {
			_ = session.Close()
			return err
		}
		streak, err := session.Compliance.GetStreak(cmd.Context(), scoreUser, models.OverallComplianceStreak)
		if err != nil {
			_ = session.Close()
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), renderScore(score, streak))
		return session.Close()
	},
}

var planProfile models.UserProfile

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print BMR, TDEE, calorie target and macros for a profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		if planProfile.WeightKg <= 0 || planProfile.HeightCm <= 0 || planProfile.Age <= 0 {
			return fmt.Errorf("--weight, --height and --age must be positive")
		}
		fmt.Fprint(cmd.OutOrStdout(), renderPlan(nutrition.Plan(planProfile)))
		return nil
	},
}

var gradeSample models.FoodNutrientSample

var gradeCmd = &cobra.Command{
	Use:   "grade",
	Short: "Grade a food from its per-serving nutrients",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprint(cmd.OutOrStdout(), renderGrade(nutrition.Grade(gradeSample)))
		return nil
	},
}

func runServe(ctx context.Context) error {
	app, err := di.InitApp(&flags)
	if err != nil {
		return err
	}
	return app.Run(ctx)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "config.yaml", "Path to the YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&flags.DebugMode, "debug", "d", false, "Mirror logs to the console")

	scoreCmd.Flags().StringVarP(&scoreUser, "user", "u", "", "User id")
	scoreCmd.Flags().StringVar(&scoreDate, "date", time.Now().UTC().Format(models.DateLayout), "Day to score (YYYY-MM-DD)")
	_ = scoreCmd.MarkFlagRequired("user")

	planCmd.Flags().Float64Var(&planProfile.WeightKg, "weight", 0, "Weight in kg")
	planCmd.Flags().Float64Var(&planProfile.HeightCm, "height", 0, "Height in cm")
	planCmd.Flags().IntVar(&planProfile.Age, "age", 0, "Age in years")
	planCmd.Flags().StringVar((*string)(&planProfile.Sex), "sex", string(models.SexOther), "Male, Female or Other")
	planCmd.Flags().StringVar((*string)(&planProfile.ActivityLevel), "activity", string(models.ActivitySedentary), "Activity level")
	planCmd.Flags().StringVar((*string)(&planProfile.GoalType), "goal", string(models.GoalMaintain), "Goal type")

	gradeCmd.Flags().Float64Var(&gradeSample.ProteinG, "protein", 0, "Protein per serving (g)")
	gradeCmd.Flags().Float64Var(&gradeSample.SugarG, "sugar", 0, "Sugar per serving (g)")
	gradeCmd.Flags().Float64Var(&gradeSample.TransFatG, "trans-fat", 0, "Trans fat per serving (g)")
	gradeCmd.Flags().Float64Var(&gradeSample.SodiumMg, "sodium", 0, "Sodium per serving (mg)")

	rootCmd.AddCommand(serveCmd, scoreCmd, planCmd, gradeCmd)
}
