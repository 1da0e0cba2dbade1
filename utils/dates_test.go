package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	day, err := ParseDate("2025-06-10")
	require.NoError(t, err)
	assert.Equal(t, 2025, day.Year())
	assert.Equal(t, time.June, day.Month())
	assert.Equal(t, 10, day.Day())
	assert.Equal(t, SalonLocation(), day.Location())

	for _, bad := range []string{"", "10-06-2025", "2025/06/10", "2025-6-1", "yesterday"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestParseTimeOfDay(t *testing.T) {
	minutes, err := ParseTimeOfDay("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, minutes)

	minutes, err = ParseTimeOfDay("10:15")
	require.NoError(t, err)
	assert.Equal(t, 615, minutes)

	minutes, err = ParseTimeOfDay("23:59")
	require.NoError(t, err)
	assert.Equal(t, 1439, minutes)

	// Unpadded hours would sort wrong lexically, so they are invalid input
	for _, bad := range []string{"", "24:00", "9:00", "9:5", "10.15", "10:15:00", "noon"} {
		_, err := ParseTimeOfDay(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestCombineDateTime(t *testing.T) {
	slot, err := CombineDateTime("2025-06-10", "10:15")
	require.NoError(t, err)
	assert.Equal(t, 10, slot.Hour())
	assert.Equal(t, 15, slot.Minute())
	assert.Equal(t, SalonLocation(), slot.Location())

	_, err = CombineDateTime("2025-06-10", "25:00")
	assert.Error(t, err)
}

func TestWeekdayAbbrev(t *testing.T) {
	// 2025-06-10 is a Tuesday
	day, err := ParseDate("2025-06-10")
	require.NoError(t, err)
	assert.Equal(t, "Tue", WeekdayAbbrev(day))

	sunday, err := ParseDate("2025-06-15")
	require.NoError(t, err)
	assert.Equal(t, "Sun", WeekdayAbbrev(sunday))
}

func TestIsValidWeekdayAbbrev(t *testing.T) {
	for _, day := range []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"} {
		assert.True(t, IsValidWeekdayAbbrev(day), day)
	}
	for _, bad := range []string{"mon", "Monday", "MON", "Tues", ""} {
		assert.False(t, IsValidWeekdayAbbrev(bad), bad)
	}
}

func TestFormatMinutesOfDay(t *testing.T) {
	assert.Equal(t, "00:00", FormatMinutesOfDay(0))
	assert.Equal(t, "10:15", FormatMinutesOfDay(615))
	assert.Equal(t, "23:59", FormatMinutesOfDay(1439))
}
