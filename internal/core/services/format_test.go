package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatHours(t *testing.T) {
	tests := []struct {
		name  string
		hours float64
		want  string
	}{
		{"45 minutes", 0.75, "45min"},
		{"just under an hour", 0.99, "59min"},
		{"90 minutes", 1.5, "1.5h"},
		{"whole hours drop the decimal", 2.0, "2h"},
		{"rounded to one decimal", 2.34, "2.3h"},
		{"30 hours", 30, "1d 6h"},
		{"exactly one day", 24, "1d 0h"},
		{"several days", 75.9, "3d 3h"},
		{"zero", 0, "0min"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatHours(tt.hours))
		})
	}
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 66.7, round1(200.0/3.0))
	assert.Equal(t, 86.0, round1(4.3/5*100))
	assert.Equal(t, 0.0, round1(0))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 50))
	assert.Equal(t, "abcde", truncate("abcdefgh", 5))
	assert.Equal(t, "héllo", truncate("héllo world", 5), "runes, not bytes")
}

func TestPeriodLast30Days(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "16/05/2025 to 15/06/2025", periodLast30Days(now))
}

func TestPreviousMonthLabel(t *testing.T) {
	assert.Equal(t, "May/2025",
		previousMonthLabel(time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, "December/2024",
		previousMonthLabel(time.Date(2025, 1, 3, 8, 0, 0, 0, time.UTC)))
	// Month-end dates must not skip short months.
	assert.Equal(t, "February/2025",
		previousMonthLabel(time.Date(2025, 3, 31, 23, 0, 0, 0, time.UTC)))
}

func TestStartOfMonth(t *testing.T) {
	got := startOfMonth(time.Date(2025, 6, 15, 12, 30, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), got)
}
