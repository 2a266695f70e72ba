package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodKeyTitle(t *testing.T) {
	tests := []struct {
		name     string
		key      PeriodKey
		expected string
	}{
		{"week is not padded", WeekKey(2014, 10), "Week 2014-10"},
		{"single digit week", WeekKey(2015, 2), "Week 2015-2"},
		{"month is padded and one-based", MonthKey(2014, 0), "Month 2014-01"},
		{"december", MonthKey(2015, 11), "Month 2015-12"},
		{"day", DayKey(2015, 32), "Day 2015-02-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.key.Title())
		})
	}
}

func TestPeriodKeyStartEnd(t *testing.T) {
	tests := []struct {
		name  string
		key   PeriodKey
		start string
		end   string
	}{
		{"iso week", WeekKey(2015, 15), "2015-04-06", "2015-04-12"},
		{"first week starts in previous year", WeekKey(2015, 1), "2014-12-29", "2015-01-04"},
		{"month", MonthKey(2015, 1), "2015-02-01", "2015-02-28"},
		{"leap month", MonthKey(2016, 1), "2016-02-01", "2016-02-29"},
		{"day", DayKey(2016, 60), "2016-02-29", "2016-02-29"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.start, tt.key.Start().Format("2006-01-02"))
			assert.Equal(t, tt.end, tt.key.End().Format("2006-01-02"))
		})
	}
}

func TestPeriodKeyAdd(t *testing.T) {
	tests := []struct {
		name     string
		key      PeriodKey
		n        int
		expected PeriodKey
	}{
		{"week within year", WeekKey(2015, 10), 3, WeekKey(2015, 13)},
		{"week back into 52-week year", WeekKey(2015, 1), -1, WeekKey(2014, 52)},
		{"week into 53rd week", WeekKey(2015, 52), 1, WeekKey(2015, 53)},
		{"week after 53rd week", WeekKey(2015, 53), 1, WeekKey(2016, 1)},
		{"month within year", MonthKey(2015, 4), -2, MonthKey(2015, 2)},
		{"month across year", MonthKey(2015, 0), -1, MonthKey(2014, 11)},
		{"month many years", MonthKey(2015, 5), 25, MonthKey(2017, 6)},
		{"day across year", DayKey(2015, 1), -1, DayKey(2014, 365)},
		{"zero offset", MonthKey(2015, 5), 0, MonthKey(2015, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.key.Add(tt.n))
		})
	}
}

func TestPeriodKeyValidate(t *testing.T) {
	tests := []struct {
		name    string
		key     PeriodKey
		wantErr bool
	}{
		{"valid week", WeekKey(2015, 53), false},
		{"week 53 in 52-week year", WeekKey(2014, 53), true},
		{"week zero", WeekKey(2015, 0), true},
		{"valid month", MonthKey(2015, 11), false},
		{"month twelve", MonthKey(2015, 12), true},
		{"negative month", MonthKey(2015, -1), true},
		{"leap day 366", DayKey(2016, 366), false},
		{"day 366 in common year", DayKey(2015, 366), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.key.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidPeriod))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPeriodOf(t *testing.T) {
	// 2016-01-01 belongs to ISO week 53 of 2015
	newYear := time.Date(2016, time.January, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, WeekKey(2015, 53), PeriodOf(GranularityWeek, newYear))
	assert.Equal(t, MonthKey(2016, 0), PeriodOf(GranularityMonth, newYear))
	assert.Equal(t, DayKey(2016, 1), PeriodOf(GranularityDay, newYear))
}

func TestPeriodKeyCompare(t *testing.T) {
	assert.True(t, WeekKey(2014, 52).Less(WeekKey(2015, 1)))
	assert.True(t, MonthKey(2015, 0).Less(MonthKey(2015, 1)))
	assert.False(t, MonthKey(2015, 1).Less(MonthKey(2015, 1)))
	assert.Equal(t, 0, MonthKey(2015, 1).Compare(MonthKey(2015, 1)))
	assert.Equal(t, 1, WeekKey(2016, 1).Compare(WeekKey(2015, 53)))
}

func TestParseGranularity(t *testing.T) {
	g, err := ParseGranularity("month")
	require.NoError(t, err)
	assert.Equal(t, GranularityMonth, g)

	g, err = ParseGranularity("weekly")
	require.NoError(t, err)
	assert.Equal(t, GranularityWeek, g)

	_, err = ParseGranularity("quarter")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSampleMonthPeriod(t *testing.T) {
	monthly := Sample{Period: MonthKey(2015, 3)}
	assert.Equal(t, MonthKey(2015, 3), monthly.MonthPeriod())

	// week 2015-18 runs from Apr 27 to May 3
	split := Sample{Period: WeekKey(2015, 18), Month: MonthKey(2015, 4)}
	assert.Equal(t, MonthKey(2015, 4), split.MonthPeriod())

	unsplit := Sample{Period: WeekKey(2015, 18)}
	assert.Equal(t, MonthKey(2015, 3), unsplit.MonthPeriod())
}
