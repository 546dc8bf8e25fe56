package services

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

const (
	dateLayout     = "02/01/2006"
	dateTimeLayout = "02/01/2006 15:04"
	buildTSLayout  = "2006-01-02 15:04:05"
)

// FormatHours renders a duration in hours as a compact label:
// under an hour as minutes, under a day as hours with one decimal,
// and a day or more as whole days plus remainder hours.
func FormatHours(hours float64) string {
	if hours < 1 {
		return strconv.Itoa(int(math.Round(hours*60))) + "min"
	}
	if hours < 24 {
		return strconv.FormatFloat(round1(hours), 'f', -1, 64) + "h"
	}
	days := int(hours) / 24
	remainder := int(hours) % 24
	return fmt.Sprintf("%dd %dh", days, remainder)
}

// round1 rounds to one decimal place.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// periodLast30Days renders the rolling 30-day window as
// "dd/mm/yyyy to dd/mm/yyyy".
func periodLast30Days(now time.Time) string {
	start := now.AddDate(0, 0, -30)
	return start.Format(dateLayout) + " to " + now.Format(dateLayout)
}

// previousMonthLabel renders the previous calendar month as
// "January/2006".
func previousMonthLabel(now time.Time) string {
	prev := startOfMonth(now).AddDate(0, -1, 0)
	return fmt.Sprintf("%s/%d", prev.Month().String(), prev.Year())
}

// startOfMonth returns midnight on the first day of t's month.
func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// startOfDay truncates t to midnight in its location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
