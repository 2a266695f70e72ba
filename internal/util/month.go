package util

import "time"

// Month indexes used by the report engine are zero-based: 0 = January, 11 = December.

// MonthIndex converts a time.Month into a zero-based month index
func MonthIndex(m time.Month) int {
	return int(m) - 1
}

// MonthNumber converts a zero-based month index into the 1-12 number shown to users
func MonthNumber(index int) int {
	return index + 1
}

// PreviousMonth returns the year and zero-based month before the given one
func PreviousMonth(year, month int) (int, int) {
	if month == 0 {
		return year - 1, 11
	}
	return year, month - 1
}

// NextMonth returns the year and zero-based month after the given one
func NextMonth(year, month int) (int, int) {
	if month == 11 {
		return year + 1, 0
	}
	return year, month + 1
}

// MonthStart returns the first day of the zero-based month
func MonthStart(year, month int) time.Time {
	return time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
}

// MonthEnd returns the last day of the zero-based month
func MonthEnd(year, month int) time.Time {
	// day 0 of the following month
	return time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC)
}

// StartOfMonth truncates t to the first day of its month (UTC, midnight)
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// IsMonthOnOrBefore reports whether (year, month) is the same as or earlier than (refYear, refMonth)
func IsMonthOnOrBefore(year, month, refYear, refMonth int) bool {
	if year != refYear {
		return year < refYear
	}
	return month <= refMonth
}

// MonthsBetween lists every (year, zero-based month) from the month containing from
// up to and including the month containing to. It returns nil when to is before from.
func MonthsBetween(from, to time.Time) [][2]int {
	start := StartOfMonth(from)
	end := StartOfMonth(to)
	var months [][2]int
	for m := start; !m.After(end); m = m.AddDate(0, 1, 0) {
		months = append(months, [2]int{m.Year(), MonthIndex(m.Month())})
	}
	return months
}
