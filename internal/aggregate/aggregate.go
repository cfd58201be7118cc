// Package aggregate contains the pure derivation logic over entry
// snapshots: day-bucketing, macro summation, and trend series. Nothing here
// touches the store; callers apply these to whatever snapshot they hold.
package aggregate

import (
	"time"

	"github.com/tmarek/nutrilog/backend/internal/models"
)

// MacroTotals is the arithmetic sum of macro values across a set of entries.
type MacroTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// DayTotals is one day of a trend series.
type DayTotals struct {
	Date string `json:"date"` // 2006-01-02
	MacroTotals
}

// SumMacros totals the macros of the given entries. Empty input yields all
// zeros; the result is independent of entry order.
func SumMacros(entries []models.LogEntry) MacroTotals {
	var t MacroTotals
	for i := range entries {
		t.Calories += entries[i].Calories
		t.Protein += entries[i].Protein
		t.Carbs += entries[i].Carbs
		t.Fat += entries[i].Fat
	}
	return t
}

// EntriesOnDay filters entries whose timestamp falls on the same calendar
// day as day, in loc. Entries without a timestamp always match: legacy rows
// stay visible rather than silently disappearing.
func EntriesOnDay(entries []models.LogEntry, day time.Time, loc *time.Location) []models.LogEntry {
	out := make([]models.LogEntry, 0, len(entries))
	for i := range entries {
		if onDay(entries[i].Timestamp, day, loc) {
			out = append(out, entries[i])
		}
	}
	return out
}

// Trend partitions entries by calendar day across the inclusive [from, to]
// range and returns the summed macros per day. Days without entries report
// zero totals, so the series is gap-free.
func Trend(entries []models.LogEntry, from, to time.Time, loc *time.Location) []DayTotals {
	if loc == nil {
		loc = time.Local
	}
	start := beginningOfDay(from, loc)
	end := beginningOfDay(to, loc)

	var series []DayTotals
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		series = append(series, DayTotals{
			Date:        day.Format("2006-01-02"),
			MacroTotals: SumMacros(EntriesOnDay(entries, day, loc)),
		})
	}
	return series
}

func onDay(ts *int64, day time.Time, loc *time.Location) bool {
	if ts == nil {
		return true
	}
	if loc == nil {
		loc = time.Local
	}
	t := time.UnixMilli(*ts).In(loc)
	d := day.In(loc)
	return t.Year() == d.Year() && t.Month() == d.Month() && t.Day() == d.Day()
}

func beginningOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
