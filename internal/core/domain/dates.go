package domain

import "time"

// DateOnly truncates t to its calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddMonthsClamped adds n months and clamps the day to the end of the target month,
// so Jan 31 + 1 month is Feb 28/29 rather than spilling into March.
func AddMonthsClamped(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	firstOfTarget := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	last := daysIn(firstOfTarget.Year(), firstOfTarget.Month())
	if d > last {
		d = last
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// MonthsBetween counts whole months elapsed from start to end (negative if end is before start).
func MonthsBetween(start, end time.Time) int {
	s, e := DateOnly(start), DateOnly(end)
	months := (e.Year()-s.Year())*12 + int(e.Month()-s.Month())
	if months > 0 && e.Day() < s.Day() {
		months--
	} else if months < 0 && e.Day() > s.Day() {
		months++
	}
	return months
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
