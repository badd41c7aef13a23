package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-food-diary/internal/core/domain"
)

const cliDay = "2024-03-04"

func setupCLI(t *testing.T) string {
	t.Helper()
	t.Setenv("STORAGE_BACKEND", "sqlite")
	t.Setenv("AUTH_PASSCODE_HASH", "")
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("TIMEZONE", "UTC")
	return filepath.Join(t.TempDir(), "diary.db")
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootHelp_ListsCommands(t *testing.T) {
	out, err := runCLI(t, "--help")
	require.NoError(t, err)

	for _, name := range []string{"today", "add", "scan", "remove", "water", "weight", "week", "goals", "history", "passcode-hash"} {
		assert.Contains(t, out, name)
	}
}

func TestAddThenToday(t *testing.T) {
	db := setupCLI(t)

	out, err := runCLI(t, "add", "--db", db, "--name", "Apple", "--meal", "Lunch",
		"--calories", "95", "--carbs", "25", "--date", cliDay)
	require.NoError(t, err)
	assert.Contains(t, out, "Logged Apple")
	assert.Contains(t, out, cliDay+" lunch")

	out, err = runCLI(t, "today", "--db", db, "--date", cliDay)
	require.NoError(t, err)
	assert.Contains(t, out, "Date: "+cliDay+" (Mon 4)")
	assert.Contains(t, out, "LUNCH: 95 kcal")
	assert.Contains(t, out, "Total: 95 kcal")
	assert.Contains(t, out, "Remaining: 1905 kcal")
}

func TestAdd_MissingRequiredFlags(t *testing.T) {
	db := setupCLI(t)

	_, err := runCLI(t, "add", "--db", db, "--meal", "lunch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")

	_, err = runCLI(t, "add", "--db", db, "--name", "Apple")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "meal")
}

func TestAdd_UnknownMeal(t *testing.T) {
	db := setupCLI(t)

	_, err := runCLI(t, "add", "--db", db, "--name", "Apple", "--meal", "brunch")
	assert.ErrorIs(t, err, domain.ErrInvalidMeal)
}

func TestRemove(t *testing.T) {
	db := setupCLI(t)

	out, err := runCLI(t, "add", "--db", db, "--name", "Apple", "--meal", "snacks",
		"--calories", "95", "--date", cliDay)
	require.NoError(t, err)

	// "Logged Apple (<id>) for ..."
	start := strings.Index(out, "(")
	end := strings.Index(out, ")")
	require.True(t, start >= 0 && end > start)
	id := out[start+1 : end]

	out, err = runCLI(t, "remove", id, "--db", db, "--date", cliDay)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed Apple")

	_, err = runCLI(t, "remove", id, "--db", db, "--date", cliDay)
	assert.ErrorIs(t, err, domain.ErrEntryNotFound)
}

func TestWater(t *testing.T) {
	db := setupCLI(t)

	out, err := runCLI(t, "water", "--db", db, "--delta", "3", "--date", cliDay)
	require.NoError(t, err)
	assert.Contains(t, out, "Water on "+cliDay+": 3 glasses")

	out, err = runCLI(t, "water", "--db", db, "--delta=-5", "--date", cliDay)
	require.NoError(t, err)
	assert.Contains(t, out, "Water on "+cliDay+": 0 glasses")
}

func TestWeight(t *testing.T) {
	db := setupCLI(t)

	out, err := runCLI(t, "weight", "72.5", "--db", db, "--date", cliDay)
	require.NoError(t, err)
	assert.Contains(t, out, "Weight on "+cliDay+": 72.5 kg")

	out, err = runCLI(t, "today", "--db", db, "--date", cliDay)
	require.NoError(t, err)
	assert.Contains(t, out, "Weight: 72.5 kg")

	_, err = runCLI(t, "weight", "heavy", "--db", db)
	assert.ErrorIs(t, err, domain.ErrInvalidWeight)
}

func TestGoals(t *testing.T) {
	db := setupCLI(t)

	out, err := runCLI(t, "goals", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Calories: 2000 kcal")

	out, err = runCLI(t, "goals", "set", "--db", db, "--calories", "1800", "--unit", "lbs")
	require.NoError(t, err)
	assert.Contains(t, out, "Calories: 1800 kcal")
	assert.Contains(t, out, "Protein: 150 g")
	assert.Contains(t, out, "Weight unit: lbs")

	out, err = runCLI(t, "goals", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Calories: 1800 kcal")

	_, err = runCLI(t, "goals", "set", "--db", db, "--calories=-1")
	assert.ErrorIs(t, err, domain.ErrInvalidGoal)
}

func TestWeek_Empty(t *testing.T) {
	db := setupCLI(t)

	out, err := runCLI(t, "week", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "No entries in this period.")
}

func TestHistory_AfterAdd(t *testing.T) {
	db := setupCLI(t)

	_, err := runCLI(t, "add", "--db", db, "--name", "Oats", "--barcode", "123",
		"--meal", "breakfast", "--calories", "389", "--date", cliDay)
	require.NoError(t, err)

	out, err := runCLI(t, "history", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "123\tOats\t389\t1")
}

func TestPasscodeHash(t *testing.T) {
	out, err := runCLI(t, "passcode-hash", "1234")
	require.NoError(t, err)

	hash := strings.TrimSpace(out)
	assert.True(t, strings.HasPrefix(hash, "$2"))
	assert.NoError(t, domain.CheckPasscode(hash, "1234"))
	assert.ErrorIs(t, domain.CheckPasscode(hash, "4321"), domain.ErrInvalidPasscode)
}
