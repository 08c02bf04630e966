package scoring_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/comitanigiacomo/kanso-tracker/internal/core/scoring"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"Monday is its own start", date(2024, 1, 8), date(2024, 1, 8)},
		{"Sunday belongs to the previous Monday", date(2024, 1, 14), date(2024, 1, 8)},
		{"Wednesday afternoon", time.Date(2025, 3, 12, 15, 30, 0, 0, time.UTC), date(2025, 3, 10)},
		{"Crosses the month", date(2025, 3, 1), date(2025, 2, 24)},
		{"Crosses the year", date(2025, 1, 1), date(2024, 12, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scoring.StartOfWeek(tt.in)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
			assert.Equal(t, time.Monday, got.Weekday())
		})
	}
}

func TestStartOfMonth(t *testing.T) {
	got := scoring.StartOfMonth(time.Date(2025, 3, 31, 23, 59, 0, 0, time.UTC))
	assert.True(t, date(2025, 3, 1).Equal(got))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, scoring.DaysInMonth(date(2025, 1, 15)))
	assert.Equal(t, 28, scoring.DaysInMonth(date(2023, 2, 1)))
	assert.Equal(t, 29, scoring.DaysInMonth(date(2024, 2, 29)))
	assert.Equal(t, 30, scoring.DaysInMonth(date(2025, 4, 30)))
	assert.Equal(t, 31, scoring.DaysInMonth(date(2025, 12, 1)))
	assert.Equal(t, 28, scoring.DaysInMonth(date(2100, 2, 1)))
}
