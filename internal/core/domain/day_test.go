package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	t.Parallel()

	d, err := ParseDay("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), d)
	assert.Equal(t, "2024-02-29", FormatDay(d))

	for _, bad := range []string{"2023-02-29", "2024-13-01", "2024-1-01", "20240101", "today", "2024-01-01T00:00:00Z"} {
		_, err := ParseDay(bad)
		assert.ErrorIs(t, err, ErrInvalidDate, bad)
	}
}

func TestToday(t *testing.T) {
	t.Parallel()

	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	now := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, "2024-01-01", Today(now, time.UTC))
	assert.Equal(t, "2024-01-02", Today(now, tokyo))
}

func TestDayLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Fri 15", DayLabel("2024-03-15"))
	assert.Equal(t, "garbage", DayLabel("garbage"))
}
