package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-food-diary/internal/core/domain"
)

const barWidth = 30

func newWeekCmd(opts *rootOptions) *cobra.Command {
	var (
		end  string
		days int
		stat string
	)

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Chart a stat over the last days",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := domain.ParseStat(stat)
			if err != nil {
				return err
			}
			return opts.withApp(cmd.Context(), func(a *app) error {
				day := end
				if day == "" {
					day = a.diary.Today()
				}
				summary, err := a.summary.Weekly(cmd.Context(), day, days, s)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s, %s to %s (goal %.0f)\n", s, summary.StartDate, summary.EndDate, summary.Goal)
				if len(summary.Points) == 0 {
					fmt.Fprintln(out, "No entries in this period.")
					return nil
				}
				for _, p := range summary.Points {
					n := 0
					if summary.Max > 0 {
						n = int(p.Value / summary.Max * barWidth)
					}
					marker := ""
					if p.OverGoal {
						marker = " over"
					}
					fmt.Fprintf(out, "%-7s %-*s %.0f%s\n", p.Label, barWidth, strings.Repeat("#", n), p.Value, marker)
				}
				fmt.Fprintf(out, "Average %.0f, %d of %d days over goal\n", summary.Average, summary.DaysOverGoal, len(summary.Points))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&end, "end", "", "Last day YYYY-MM-DD (default today)")
	cmd.Flags().IntVar(&days, "days", 7, "Number of days")
	cmd.Flags().StringVar(&stat, "stat", string(domain.StatCalories), "calories, protein, carbs or fat")
	return cmd
}
