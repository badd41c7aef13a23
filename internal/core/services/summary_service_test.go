package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-food-diary/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-food-diary/internal/core/domain"
)

func newTestSummary(t *testing.T) (*SummaryService, *DiaryService, *SettingsService) {
	t.Helper()
	store := repository.NewInMemoryStore()
	diary := newTestDiary(store)
	settings := NewSettingsService(store, nil)
	return NewSummaryService(diary, settings), diary, settings
}

func logMeal(t *testing.T, diary *DiaryService, date string, meal domain.MealSlot, calories, protein float64, servings float64) {
	t.Helper()
	_, err := diary.LogFood(context.Background(), domain.FoodEntryInput{
		Name:      string(meal) + " food",
		Nutrition: domain.Nutrition{Calories: calories, Protein: protein},
		Servings:  servings,
		Date:      date,
		Meal:      meal,
	})
	require.NoError(t, err)
}

func TestSummaryService_Daily(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("Groups entries by meal and sums totals", func(t *testing.T) {
		summary, diary, _ := newTestSummary(t)
		logMeal(t, diary, "2024-03-04", domain.MealDinner, 900, 50, 1)
		logMeal(t, diary, "2024-03-04", domain.MealBreakfast, 400, 20, 1)
		logMeal(t, diary, "2024-03-04", domain.MealBreakfast, 300, 10, 3)

		got, err := summary.Daily(ctx, "2024-03-04")
		require.NoError(t, err)

		require.Len(t, got.Meals, 4)
		assert.Equal(t, domain.MealBreakfast, got.Meals[0].Meal)
		assert.Len(t, got.Meals[0].Entries, 2)
		assert.Equal(t, 1300.0, got.Meals[0].Totals.Calories)
		assert.Empty(t, got.Meals[1].Entries)
		assert.NotNil(t, got.Meals[1].Entries)
		assert.Equal(t, 900.0, got.Meals[2].Totals.Calories)

		assert.Equal(t, 2200.0, got.Totals.Calories)
		assert.Equal(t, -200.0, got.Remaining.Calories)
		assert.InDelta(t, 110, got.Progress.Calories, 1e-9)
		assert.Equal(t, 50.0, got.Remaining.Protein)
		assert.Equal(t, "Mon 4", got.Label)
	})

	t.Run("Empty day has zero totals and full budget", func(t *testing.T) {
		summary, _, _ := newTestSummary(t)

		got, err := summary.Daily(ctx, "2024-03-05")
		require.NoError(t, err)
		assert.Equal(t, 0.0, got.Totals.Calories)
		assert.Equal(t, 2000.0, got.Remaining.Calories)
		assert.Nil(t, got.Weight)
	})

	t.Run("Weight is shown in the profile unit", func(t *testing.T) {
		summary, diary, settings := newTestSummary(t)
		require.NoError(t, diary.SetWeight(ctx, "2024-03-04", 80, domain.WeightUnitKg))
		unit := domain.WeightUnitLbs
		_, err := settings.Update(ctx, domain.GoalPatch{WeightUnit: &unit})
		require.NoError(t, err)

		got, err := summary.Daily(ctx, "2024-03-04")
		require.NoError(t, err)
		require.NotNil(t, got.Weight)
		assert.Equal(t, 176.4, *got.Weight)
		assert.Equal(t, domain.WeightUnitLbs, got.WeightUnit)
	})

	t.Run("Bad date", func(t *testing.T) {
		summary, _, _ := newTestSummary(t)
		_, err := summary.Daily(ctx, "yesterday")
		assert.ErrorIs(t, err, domain.ErrInvalidDate)
	})
}

func TestSummaryService_Weekly(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	summary, diary, _ := newTestSummary(t)
	logMeal(t, diary, "2024-01-02", domain.MealLunch, 2500, 100, 1)
	logMeal(t, diary, "2024-01-07", domain.MealLunch, 1500, 40, 1)
	require.NoError(t, diary.SetWeight(ctx, "2024-01-07", 70.04, domain.WeightUnitKg))

	t.Run("Calories over a week", func(t *testing.T) {
		got, err := summary.Weekly(ctx, "2024-01-07", 7, domain.StatCalories)
		require.NoError(t, err)

		assert.Equal(t, "2024-01-01", got.StartDate)
		assert.Equal(t, "2024-01-07", got.EndDate)
		assert.Equal(t, 7, got.Days)
		assert.Equal(t, 2000.0, got.Goal)
		assert.Equal(t, 2500.0, got.Max)
		assert.Equal(t, 2000.0, got.Average)
		assert.Equal(t, 1, got.DaysOverGoal)

		require.Len(t, got.Points, 2)
		assert.True(t, got.Points[0].OverGoal)
		require.NotNil(t, got.Points[1].Weight)
		assert.Equal(t, 70.0, *got.Points[1].Weight)
	})

	t.Run("Protein uses the protein goal", func(t *testing.T) {
		got, err := summary.Weekly(ctx, "2024-01-07", 7, domain.StatProtein)
		require.NoError(t, err)
		assert.Equal(t, 150.0, got.Goal)
		assert.Equal(t, 150.0, got.Max)
		assert.Equal(t, 0, got.DaysOverGoal)
	})

	t.Run("Empty window", func(t *testing.T) {
		got, err := summary.Weekly(ctx, "2023-06-30", 7, domain.StatCalories)
		require.NoError(t, err)
		assert.Empty(t, got.Points)
		assert.Equal(t, 0.0, got.Average)
		assert.Equal(t, 2000.0, got.Max)
	})

	t.Run("Bad arguments", func(t *testing.T) {
		_, err := summary.Weekly(ctx, "2024-01-07", 7, "sodium")
		assert.ErrorIs(t, err, domain.ErrInvalidStat)

		_, err = summary.Weekly(ctx, "2024-01-07", 400, domain.StatCalories)
		assert.ErrorIs(t, err, domain.ErrInvalidWindow)
	})
}
