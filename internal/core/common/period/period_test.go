package period_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frahmantamala/smartexpense/internal/core/common/period"
)

func TestMonthRange(t *testing.T) {
	tests := []struct {
		name      string
		year      int
		month     time.Month
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "regular month",
			year:      2024,
			month:     time.March,
			wantStart: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "february in a leap year",
			year:      2024,
			month:     time.February,
			wantStart: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "december rolls into next year",
			year:      2023,
			month:     time.December,
			wantStart: time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := period.MonthRange(tt.year, tt.month, time.UTC)
			assert.True(t, tt.wantStart.Equal(start), "start = %s", start)
			assert.True(t, tt.wantEnd.Equal(end), "end = %s", end)
		})
	}
}

func TestMonthRangeBoundaries(t *testing.T) {
	lastDayOfMarch := time.Date(2024, time.March, 31, 23, 59, 59, 0, time.UTC)

	marchStart, marchEnd := period.MonthRange(2024, time.March, time.UTC)
	require.True(t, period.Contains(marchStart, marchEnd, lastDayOfMarch))

	aprilStart, aprilEnd := period.MonthRange(2024, time.April, time.UTC)
	assert.False(t, period.Contains(aprilStart, aprilEnd, lastDayOfMarch))
	assert.True(t, period.Contains(aprilStart, aprilEnd, aprilStart), "start is inclusive")
	assert.False(t, period.Contains(aprilStart, aprilEnd, aprilEnd), "end is exclusive")

	newYearsEve := time.Date(2023, time.December, 31, 18, 0, 0, 0, time.UTC)
	decStart, decEnd := period.MonthRange(2023, time.December, time.UTC)
	assert.True(t, period.Contains(decStart, decEnd, newYearsEve))
	janStart, janEnd := period.MonthRange(2024, time.January, time.UTC)
	assert.False(t, period.Contains(janStart, janEnd, newYearsEve))
}

func TestMonthRangeDefaultsToLocal(t *testing.T) {
	start, _ := period.MonthRange(2024, time.June, nil)
	assert.Equal(t, time.Local, start.Location())
}
