package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-food-diary/internal/core/domain"
)

func newTodayCmd(opts *rootOptions) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show the day's meals, totals and remaining budget",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd.Context(), func(a *app) error {
				day := date
				if day == "" {
					day = a.diary.Today()
				}
				summary, err := a.summary.Daily(cmd.Context(), day)
				if err != nil {
					return err
				}
				printDaily(cmd.OutOrStdout(), summary)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Date YYYY-MM-DD (default today)")
	return cmd
}

func printDaily(w io.Writer, s *domain.DailySummary) {
	fmt.Fprintf(w, "Date: %s (%s)\n", s.Date, s.Label)
	for _, meal := range s.Meals {
		if len(meal.Entries) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s: %.0f kcal\n", strings.ToUpper(string(meal.Meal)), meal.Totals.Calories)
		for _, e := range meal.Entries {
			n := e.EffectiveNutrition()
			fmt.Fprintf(w, "  %s\t%s x%g\t%.0f kcal\tP %.0fg C %.0fg F %.0fg\n",
				e.ID, e.Name, e.Servings, n.Calories, n.Protein, n.Carbs, n.Fat)
		}
	}
	fmt.Fprintf(w, "\nTotal: %.0f kcal | P %.0fg | C %.0fg | F %.0fg\n", s.Totals.Calories, s.Totals.Protein, s.Totals.Carbs, s.Totals.Fat)
	fmt.Fprintf(w, "Goal: %.0f kcal | P %.0fg | C %.0fg | F %.0fg\n",
		s.Goals.DailyCalorieGoal, s.Goals.DailyProteinGoal, s.Goals.DailyCarbsGoal, s.Goals.DailyFatGoal)
	fmt.Fprintf(w, "Remaining: %.0f kcal | P %.0fg | C %.0fg | F %.0fg\n",
		s.Remaining.Calories, s.Remaining.Protein, s.Remaining.Carbs, s.Remaining.Fat)
	fmt.Fprintf(w, "Water: %d glasses\n", s.WaterGlasses)
	if s.Weight != nil {
		fmt.Fprintf(w, "Weight: %.1f %s\n", *s.Weight, s.WeightUnit)
	}
}
