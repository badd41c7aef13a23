package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntry(t *testing.T, date string, meal MealSlot, n Nutrition, servings float64) FoodEntry {
	t.Helper()
	entry, err := NewFoodEntry(FoodEntryInput{
		Barcode:   "3017620422003",
		Name:      "Test food",
		Nutrition: n,
		Servings:  servings,
		Date:      date,
		Meal:      meal,
	})
	require.NoError(t, err)
	return entry
}

func TestLedgersGet(t *testing.T) {
	t.Parallel()

	t.Run("Missing day returns an empty ledger without inserting it", func(t *testing.T) {
		s := NewLedgers()

		l, err := s.Get("2024-01-05")

		require.NoError(t, err)
		assert.Equal(t, "2024-01-05", l.Date)
		assert.Empty(t, l.Foods)
		assert.NotNil(t, l.Foods)
		assert.Equal(t, 0, l.WaterGlasses)
		assert.Nil(t, l.Weight)
		assert.Empty(t, s)
	})

	t.Run("Returned ledger is a copy", func(t *testing.T) {
		s := NewLedgers()
		require.NoError(t, s.AddFood("2024-01-05", testEntry(t, "2024-01-05", MealLunch, Nutrition{Calories: 100}, 1)))

		l, err := s.Get("2024-01-05")
		require.NoError(t, err)
		l.Foods[0].Name = "changed"
		l.WaterGlasses = 9

		again, _ := s.Get("2024-01-05")
		assert.Equal(t, "Test food", again.Foods[0].Name)
		assert.Equal(t, 0, again.WaterGlasses)
	})

	t.Run("Rejects malformed dates", func(t *testing.T) {
		s := NewLedgers()
		for _, d := range []string{"", "2024-1-5", "2024-02-30", "05/01/2024", " 2024-01-05"} {
			_, err := s.Get(d)
			assert.ErrorIs(t, err, ErrInvalidDate, d)
		}
	})
}

func TestLedgersAddAndRemoveFood(t *testing.T) {
	t.Parallel()

	t.Run("Add then remove restores the previous ledger", func(t *testing.T) {
		s := NewLedgers()
		first := testEntry(t, "2024-01-05", MealBreakfast, Nutrition{Calories: 200}, 1)
		require.NoError(t, s.AddFood("2024-01-05", first))
		before, _ := s.Get("2024-01-05")

		second := testEntry(t, "2024-01-05", MealDinner, Nutrition{Calories: 500}, 2)
		require.NoError(t, s.AddFood("2024-01-05", second))

		removed, err := s.RemoveFood("2024-01-05", second.ID)
		require.NoError(t, err)
		assert.Equal(t, second.ID, removed.ID)

		after, _ := s.Get("2024-01-05")
		assert.Equal(t, before, after)
	})

	t.Run("Same product can be logged twice", func(t *testing.T) {
		s := NewLedgers()
		a := testEntry(t, "2024-01-05", MealSnacks, Nutrition{Calories: 80}, 1)
		b := testEntry(t, "2024-01-05", MealSnacks, Nutrition{Calories: 80}, 1)

		require.NoError(t, s.AddFood("2024-01-05", a))
		require.NoError(t, s.AddFood("2024-01-05", b))

		l, _ := s.Get("2024-01-05")
		assert.Len(t, l.Foods, 2)
		assert.NotEqual(t, l.Foods[0].ID, l.Foods[1].ID)
	})

	t.Run("Entry must belong to the ledger date", func(t *testing.T) {
		s := NewLedgers()
		e := testEntry(t, "2024-01-05", MealLunch, Nutrition{Calories: 1}, 1)

		err := s.AddFood("2024-01-06", e)

		assert.ErrorIs(t, err, ErrDateMismatch)
		assert.Empty(t, s)
	})

	t.Run("Invalid entry is rejected", func(t *testing.T) {
		s := NewLedgers()
		e := testEntry(t, "2024-01-05", MealLunch, Nutrition{Calories: 1}, 1)
		e.Servings = 0

		err := s.AddFood("2024-01-05", e)

		assert.ErrorIs(t, err, ErrInvalidServings)
		assert.Empty(t, s)
	})

	t.Run("Removing an unknown id fails and changes nothing", func(t *testing.T) {
		s := NewLedgers()
		e := testEntry(t, "2024-01-05", MealLunch, Nutrition{Calories: 1}, 1)
		require.NoError(t, s.AddFood("2024-01-05", e))

		_, err := s.RemoveFood("2024-01-05", "missing")
		assert.ErrorIs(t, err, ErrEntryNotFound)
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = s.RemoveFood("2024-01-09", e.ID)
		assert.ErrorIs(t, err, ErrEntryNotFound)

		l, _ := s.Get("2024-01-05")
		assert.Len(t, l.Foods, 1)
	})
}

func TestLedgersAddWater(t *testing.T) {
	t.Parallel()

	s := NewLedgers()

	n, err := s.AddWater("2024-01-05", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = s.AddWater("2024-01-05", -5)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = s.AddWater("2024-01-05", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestLedgersSetWeight(t *testing.T) {
	t.Parallel()

	s := NewLedgers()
	require.NoError(t, s.SetWeight("2024-01-05", 80.5))
	require.NoError(t, s.SetWeight("2024-01-05", 80.1))

	l, _ := s.Get("2024-01-05")
	require.NotNil(t, l.Weight)
	assert.Equal(t, 80.1, *l.Weight)

	assert.ErrorIs(t, s.SetWeight("2024-01-05", 0), ErrInvalidWeight)
	assert.ErrorIs(t, s.SetWeight("2024-01-05", -3), ErrInvalidWeight)
}

func TestLedgersWindow(t *testing.T) {
	t.Parallel()

	s := NewLedgers()
	_, _ = s.AddWater("2024-01-02", 1)
	_, _ = s.AddWater("2024-01-07", 2)
	_, _ = s.AddWater("2023-12-31", 4)

	t.Run("Skips days without a ledger, oldest first", func(t *testing.T) {
		window, err := s.Window("2024-01-07", 7)

		require.NoError(t, err)
		require.Len(t, window, 2)
		assert.Equal(t, "2024-01-02", window[0].Date)
		assert.Equal(t, "2024-01-07", window[1].Date)
	})

	t.Run("Crosses month and year boundaries", func(t *testing.T) {
		window, err := s.Window("2024-01-02", 3)

		require.NoError(t, err)
		require.Len(t, window, 2)
		assert.Equal(t, "2023-12-31", window[0].Date)
	})

	t.Run("Window size is bounded", func(t *testing.T) {
		_, err := s.Window("2024-01-07", 0)
		assert.ErrorIs(t, err, ErrInvalidWindow)

		_, err = s.Window("2024-01-07", MaxWindowDays+1)
		assert.ErrorIs(t, err, ErrInvalidWindow)
	})
}

func TestLedgersRoundTrip(t *testing.T) {
	t.Parallel()

	s := NewLedgers()
	require.NoError(t, s.AddFood("2024-01-05", testEntry(t, "2024-01-05", MealLunch, Nutrition{Calories: 120, Fiber: Float(2)}, 1.5)))
	require.NoError(t, s.SetWeight("2024-01-05", 72.3))

	data, err := MarshalLedgers(s)
	require.NoError(t, err)

	decoded, err := UnmarshalLedgers(data)
	require.NoError(t, err)

	got, _ := decoded.Get("2024-01-05")
	want, _ := s.Get("2024-01-05")
	assert.Equal(t, want.Foods[0].ID, got.Foods[0].ID)
	assert.Equal(t, want.Foods[0].Nutrition, got.Foods[0].Nutrition)
	assert.Equal(t, *want.Weight, *got.Weight)
}

func TestUnmarshalLedgers(t *testing.T) {
	t.Parallel()

	t.Run("Empty and null payloads decode to an empty store", func(t *testing.T) {
		for _, raw := range []string{"", "null", "{}"} {
			s, err := UnmarshalLedgers([]byte(raw))
			require.NoError(t, err, raw)
			assert.Empty(t, s)
		}
	})

	t.Run("Missing date and foods are filled in", func(t *testing.T) {
		s, err := UnmarshalLedgers([]byte(`{"2024-01-05":{"waterGlasses":2}}`))
		require.NoError(t, err)

		l := s["2024-01-05"]
		assert.Equal(t, "2024-01-05", l.Date)
		assert.NotNil(t, l.Foods)
	})

	t.Run("Ledger filed under another date is rejected", func(t *testing.T) {
		_, err := UnmarshalLedgers([]byte(`{"2024-01-05":{"date":"2024-01-06"}}`))
		assert.Error(t, err)
	})

	t.Run("Bad keys are rejected", func(t *testing.T) {
		_, err := UnmarshalLedgers([]byte(`{"yesterday":{}}`))
		assert.Error(t, err)
	})

	t.Run("Garbage is rejected", func(t *testing.T) {
		_, err := UnmarshalLedgers([]byte(`[1,2`))
		assert.Error(t, err)
	})
}
