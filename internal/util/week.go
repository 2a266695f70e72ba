package util

import "time"

// StartOfISOWeek returns the Monday (UTC, midnight) of the ISO week containing t
func StartOfISOWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}

// ISOWeekStart returns the Monday of the given ISO week-year and week number.
// Week 1 is the week containing January 4th.
func ISOWeekStart(year, week int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	return StartOfISOWeek(jan4).AddDate(0, 0, (week-1)*7)
}

// ISOWeekEnd returns the Sunday of the given ISO week
func ISOWeekEnd(year, week int) time.Time {
	return ISOWeekStart(year, week).AddDate(0, 0, 6)
}

// ISOWeeksInYear returns 52 or 53
func ISOWeeksInYear(year int) int {
	_, w := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return w
}

// StartOfDay truncates t to UTC midnight of the same calendar day
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
