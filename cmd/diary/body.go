package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-food-diary/internal/core/domain"
)

func newWaterCmd(opts *rootOptions) *cobra.Command {
	var (
		date  string
		delta int
	)

	cmd := &cobra.Command{
		Use:   "water",
		Short: "Add (or with a negative --delta, remove) glasses of water",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd.Context(), func(a *app) error {
				day := date
				if day == "" {
					day = a.diary.Today()
				}
				glasses, err := a.diary.AddWater(cmd.Context(), day, delta)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Water on %s: %d glasses\n", day, glasses)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&delta, "delta", 1, "Glasses to add; negative values remove")
	cmd.Flags().StringVar(&date, "date", "", "Date YYYY-MM-DD (default today)")
	return cmd
}

func newWeightCmd(opts *rootOptions) *cobra.Command {
	var (
		date string
		unit string
	)

	cmd := &cobra.Command{
		Use:   "weight <value>",
		Short: "Record the day's weight",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			weight, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return domain.ErrInvalidWeight
			}
			return opts.withApp(cmd.Context(), func(a *app) error {
				day := date
				if day == "" {
					day = a.diary.Today()
				}
				u := domain.WeightUnit(unit)
				if u == "" {
					profile, err := a.settings.Get(cmd.Context())
					if err != nil {
						return err
					}
					u = profile.WeightUnit
				}
				if err := a.diary.SetWeight(cmd.Context(), day, weight, u); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Weight on %s: %g %s\n", day, weight, u)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&unit, "unit", "", "kg or lbs (default from goals)")
	cmd.Flags().StringVar(&date, "date", "", "Date YYYY-MM-DD (default today)")
	return cmd
}
