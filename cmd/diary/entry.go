package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-food-diary/internal/core/domain"
	"github.com/comitanigiacomo/kanso-food-diary/internal/core/services"
)

func newAddCmd(opts *rootOptions) *cobra.Command {
	var (
		in                 domain.FoodEntryInput
		meal               string
		fiber, sugar, salt float64
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log a food with its nutrition per serving",
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := domain.ParseMeal(meal)
			if err != nil {
				return err
			}
			in.Meal = parsed

			flags := cmd.Flags()
			if flags.Changed("fiber") {
				in.Nutrition.Fiber = domain.Float(fiber)
			}
			if flags.Changed("sugar") {
				in.Nutrition.Sugar = domain.Float(sugar)
			}
			if flags.Changed("salt") {
				in.Nutrition.Salt = domain.Float(salt)
			}

			return opts.withApp(cmd.Context(), func(a *app) error {
				entry, err := a.diary.LogFood(cmd.Context(), in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Logged %s (%s) for %s %s\n", entry.Name, entry.ID, entry.ConsumedDate, entry.ConsumedMeal)
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.Name, "name", "", "Food name")
	f.StringVar(&in.Brand, "brand", "", "Brand")
	f.StringVar(&in.Barcode, "barcode", "", "Barcode")
	f.StringVar(&in.ServingSize, "serving-size", "", "Serving description (default 100g)")
	f.Float64Var(&in.Nutrition.Calories, "calories", 0, "Calories per serving")
	f.Float64Var(&in.Nutrition.Protein, "protein", 0, "Protein grams per serving")
	f.Float64Var(&in.Nutrition.Carbs, "carbs", 0, "Carbohydrate grams per serving")
	f.Float64Var(&in.Nutrition.Fat, "fat", 0, "Fat grams per serving")
	f.Float64Var(&fiber, "fiber", 0, "Fiber grams per serving")
	f.Float64Var(&sugar, "sugar", 0, "Sugar grams per serving")
	f.Float64Var(&salt, "salt", 0, "Salt grams per serving")
	f.Float64Var(&in.Servings, "servings", 1, "Number of servings")
	f.StringVar(&meal, "meal", "", "breakfast, lunch, dinner or snacks")
	f.StringVar(&in.Date, "date", "", "Date YYYY-MM-DD (default today)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("meal")
	return cmd
}

func newScanCmd(opts *rootOptions) *cobra.Command {
	var (
		servings float64
		meal     string
		date     string
	)

	cmd := &cobra.Command{
		Use:   "scan <barcode>",
		Short: "Look a barcode up on Open Food Facts and log it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := domain.ParseMeal(meal)
			if err != nil {
				return err
			}
			return opts.withApp(cmd.Context(), func(a *app) error {
				entry, err := a.products.LogProduct(cmd.Context(), services.LogProductInput{
					Barcode:  args[0],
					Servings: servings,
					Meal:     parsed,
					Date:     date,
				})
				if err != nil {
					return err
				}
				n := entry.EffectiveNutrition()
				fmt.Fprintf(cmd.OutOrStdout(), "Logged %s x%g: %.0f kcal (%s)\n", entry.Name, entry.Servings, n.Calories, entry.ID)
				return nil
			})
		},
	}
	cmd.Flags().Float64Var(&servings, "servings", 1, "Number of servings")
	cmd.Flags().StringVar(&meal, "meal", "", "breakfast, lunch, dinner or snacks")
	cmd.Flags().StringVar(&date, "date", "", "Date YYYY-MM-DD (default today)")
	_ = cmd.MarkFlagRequired("meal")
	return cmd
}

func newRemoveCmd(opts *rootOptions) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "remove <entry-id>",
		Short: "Remove a logged food",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd.Context(), func(a *app) error {
				day := date
				if day == "" {
					day = a.diary.Today()
				}
				removed, err := a.diary.RemoveFood(cmd.Context(), day, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from %s\n", removed.Name, day)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Date YYYY-MM-DD (default today)")
	return cmd
}
