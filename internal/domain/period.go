package domain

import (
	"fmt"
	"time"

	"github.com/dafibh/burnrate/burnrate-backend/internal/util"
)

// Granularity is the calendar resolution of a time series
type Granularity int

const (
	GranularityWeek Granularity = iota
	GranularityMonth
	// GranularityDay is only used for the daily-rate sparkline
	GranularityDay
)

func (g Granularity) String() string {
	switch g {
	case GranularityWeek:
		return "week"
	case GranularityMonth:
		return "month"
	case GranularityDay:
		return "day"
	default:
		return fmt.Sprintf("granularity(%d)", int(g))
	}
}

// ParseGranularity parses "week", "month" or "day"
func ParseGranularity(s string) (Granularity, error) {
	switch s {
	case "week", "weekly":
		return GranularityWeek, nil
	case "month", "monthly":
		return GranularityMonth, nil
	case "day", "daily":
		return GranularityDay, nil
	}
	return 0, fmt.Errorf("%w: unknown granularity %q", ErrInvalidInput, s)
}

// PeriodKey identifies one calendar bucket.
// Index is the ISO week (1-53, Year is the ISO week-year), the zero-based month (0-11)
// or the day of year (1-366) depending on the granularity.
type PeriodKey struct {
	Granularity Granularity `json:"-"`
	Year        int         `json:"year"`
	Index       int         `json:"index"`
}

// WeekKey builds an ISO week key
func WeekKey(year, week int) PeriodKey {
	return PeriodKey{Granularity: GranularityWeek, Year: year, Index: week}
}

// MonthKey builds a month key from a zero-based month
func MonthKey(year, month int) PeriodKey {
	return PeriodKey{Granularity: GranularityMonth, Year: year, Index: month}
}

// DayKey builds a day key from a day of year
func DayKey(year, yearDay int) PeriodKey {
	return PeriodKey{Granularity: GranularityDay, Year: year, Index: yearDay}
}

// PeriodOf returns the key of the bucket containing t
func PeriodOf(g Granularity, t time.Time) PeriodKey {
	switch g {
	case GranularityWeek:
		year, week := t.ISOWeek()
		return WeekKey(year, week)
	case GranularityMonth:
		return MonthKey(t.Year(), util.MonthIndex(t.Month()))
	default:
		return DayKey(t.Year(), t.YearDay())
	}
}

// Validate checks that the index is in range for the granularity
func (k PeriodKey) Validate() error {
	switch k.Granularity {
	case GranularityWeek:
		if k.Index < 1 || k.Index > util.ISOWeeksInYear(k.Year) {
			return fmt.Errorf("%w: week %d of %d", ErrInvalidPeriod, k.Index, k.Year)
		}
	case GranularityMonth:
		if k.Index < 0 || k.Index > 11 {
			return fmt.Errorf("%w: month index %d", ErrInvalidPeriod, k.Index)
		}
	case GranularityDay:
		if k.Index < 1 || k.Index > util.MonthEnd(k.Year, 11).YearDay() {
			return fmt.Errorf("%w: day %d of %d", ErrInvalidPeriod, k.Index, k.Year)
		}
	}
	return nil
}

// Compare orders keys by year, then index
func (k PeriodKey) Compare(o PeriodKey) int {
	switch {
	case k.Year < o.Year:
		return -1
	case k.Year > o.Year:
		return 1
	case k.Index < o.Index:
		return -1
	case k.Index > o.Index:
		return 1
	}
	return 0
}

// Less reports whether k is chronologically before o
func (k PeriodKey) Less(o PeriodKey) bool {
	return k.Compare(o) < 0
}

// Start returns the first calendar day of the bucket
func (k PeriodKey) Start() time.Time {
	switch k.Granularity {
	case GranularityWeek:
		return util.ISOWeekStart(k.Year, k.Index)
	case GranularityMonth:
		return util.MonthStart(k.Year, k.Index)
	default:
		return time.Date(k.Year, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, k.Index-1)
	}
}

// End returns the last calendar day of the bucket (Sunday for weeks)
func (k PeriodKey) End() time.Time {
	switch k.Granularity {
	case GranularityWeek:
		return util.ISOWeekEnd(k.Year, k.Index)
	case GranularityMonth:
		return util.MonthEnd(k.Year, k.Index)
	default:
		return k.Start()
	}
}

// Add moves the key by n buckets using calendar arithmetic, so year boundaries
// and 53-week years are handled by the calendar rather than by index wrapping.
func (k PeriodKey) Add(n int) PeriodKey {
	start := k.Start()
	switch k.Granularity {
	case GranularityWeek:
		return PeriodOf(GranularityWeek, start.AddDate(0, 0, 7*n))
	case GranularityMonth:
		return PeriodOf(GranularityMonth, start.AddDate(0, n, 0))
	default:
		return PeriodOf(GranularityDay, start.AddDate(0, 0, n))
	}
}

// Title renders the display label, e.g. "Week 2014-10" or "Month 2014-01"
func (k PeriodKey) Title() string {
	switch k.Granularity {
	case GranularityWeek:
		return fmt.Sprintf("Week %d-%d", k.Year, k.Index)
	case GranularityMonth:
		return fmt.Sprintf("Month %d-%02d", k.Year, util.MonthNumber(k.Index))
	default:
		return "Day " + k.Start().Format("2006-01-02")
	}
}

func (k PeriodKey) String() string {
	return k.Title()
}
