package period

import "time"

// MonthRange returns the half-open window [first day of month, first day of
// the following month) in loc. December rolls over into January of year+1.
func MonthRange(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.Local
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	if month == time.December {
		return start, time.Date(year+1, time.January, 1, 0, 0, 0, 0, loc)
	}
	return start, time.Date(year, month+1, 1, 0, 0, 0, 0, loc)
}

// Contains reports whether t falls inside [from, to).
func Contains(from, to, t time.Time) bool {
	return !t.Before(from) && t.Before(to)
}
