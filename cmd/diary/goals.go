package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-food-diary/internal/core/domain"
)

func newGoalsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Show or change daily goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd.Context(), func(a *app) error {
				profile, err := a.settings.Get(cmd.Context())
				if err != nil {
					return err
				}
				printGoals(cmd.OutOrStdout(), profile)
				return nil
			})
		},
	}
	cmd.AddCommand(newGoalsSetCmd(opts))
	return cmd
}

func newGoalsSetCmd(opts *rootOptions) *cobra.Command {
	var in domain.GoalInput

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set goals; omitted flags keep their current value",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd.Context(), func(a *app) error {
				current, err := a.settings.Get(cmd.Context())
				if err != nil {
					return err
				}

				keep := func(v *string, cur string) {
					if *v == "" {
						*v = cur
					}
				}
				keep(&in.Calories, formatFloat(current.DailyCalorieGoal))
				keep(&in.Protein, formatFloat(current.DailyProteinGoal))
				keep(&in.Carbs, formatFloat(current.DailyCarbsGoal))
				keep(&in.Fat, formatFloat(current.DailyFatGoal))
				keep(&in.WeightUnit, string(current.WeightUnit))
				if current.Height != nil {
					keep(&in.Height, formatFloat(*current.Height))
				}
				if current.Age != nil {
					keep(&in.Age, strconv.Itoa(*current.Age))
				}
				keep(&in.Gender, string(current.Gender))

				profile, err := domain.ParseGoalInput(in)
				if err != nil {
					return err
				}
				saved, err := a.settings.Save(cmd.Context(), profile)
				if err != nil {
					return err
				}
				printGoals(cmd.OutOrStdout(), saved)
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.Calories, "calories", "", "Daily calorie goal")
	f.StringVar(&in.Protein, "protein", "", "Daily protein goal (g)")
	f.StringVar(&in.Carbs, "carbs", "", "Daily carbohydrate goal (g)")
	f.StringVar(&in.Fat, "fat", "", "Daily fat goal (g)")
	f.StringVar(&in.WeightUnit, "unit", "", "Weight unit, kg or lbs")
	f.StringVar(&in.Height, "height", "", "Height (cm)")
	f.StringVar(&in.Age, "age", "", "Age in years")
	f.StringVar(&in.Gender, "gender", "", "male or female")
	return cmd
}

func printGoals(w io.Writer, g domain.GoalProfile) {
	fmt.Fprintf(w, "Calories: %.0f kcal\n", g.DailyCalorieGoal)
	fmt.Fprintf(w, "Protein: %.0f g\n", g.DailyProteinGoal)
	fmt.Fprintf(w, "Carbs: %.0f g\n", g.DailyCarbsGoal)
	fmt.Fprintf(w, "Fat: %.0f g\n", g.DailyFatGoal)
	fmt.Fprintf(w, "Weight unit: %s\n", g.WeightUnit)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
