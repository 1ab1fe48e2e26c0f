package history

import (
	"fmt"
	"time"
)

// RecentLookback is the rolling window used for the export listing.
const RecentLookback = 7 * 24 * time.Hour

// Window is a rolling lookback window ending at Reference.
type Window struct {
	Reference time.Time
	Lookback  time.Duration
}

// RecentWindow returns the 7-day window ending at now.
func RecentWindow(now time.Time) Window {
	return Window{Reference: now, Lookback: RecentLookback}
}

// Start returns the inclusive lower bound of the window.
func (w Window) Start() time.Time {
	return w.Reference.Add(-w.Lookback)
}

// Contains reports whether t is at or after the window start. There is no
// upper bound.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start())
}

// Filter returns the records inside the window, preserving order.
func (w Window) Filter(records []Record) []Record {
	start := w.Start()
	var kept []Record
	for _, r := range records {
		if !r.Time.Before(start) {
			kept = append(kept, r)
		}
	}
	return kept
}

// Day is a UTC calendar date.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

// DayOf returns the UTC calendar date of t.
func DayOf(t time.Time) Day {
	y, m, d := t.UTC().Date()
	return Day{Year: y, Month: m, Day: d}
}

// Yesterday returns the UTC calendar date before now's UTC date.
func Yesterday(now time.Time) Day {
	y, m, d := now.UTC().Date()
	return DayOf(time.Date(y, m, d-1, 0, 0, 0, 0, time.UTC))
}

// Contains reports whether t falls on d in UTC, ignoring time of day.
func (d Day) Contains(t time.Time) bool {
	return DayOf(t) == d
}

// String formats the day as YYYY-MM-DD.
func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// SameDay reports whether t falls on day. It is the calendar-day policy used
// by the live flow and is unrelated to the rolling Window.
func SameDay(t time.Time, day Day) bool {
	return day.Contains(t)
}
