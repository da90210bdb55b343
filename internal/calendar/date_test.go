package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsLeapYear(t *testing.T) {
	tests := []struct {
		year int
		want bool
	}{
		{year: 2000, want: true},
		{year: 1900, want: false},
		{year: 2024, want: true},
		{year: 2023, want: false},
		{year: 2100, want: false},
		{year: 2400, want: true},
		{year: 4, want: true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsLeapYear(tt.year), "year %d", tt.year)
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		name  string
		month int
		year  int
		want  int
	}{
		{name: "january", month: 1, year: 2023, want: 31},
		{name: "april", month: 4, year: 2023, want: 30},
		{name: "february leap", month: 2, year: 2024, want: 29},
		{name: "february century", month: 2, year: 1900, want: 28},
		{name: "february 400", month: 2, year: 2000, want: 29},
		{name: "december", month: 12, year: 2023, want: 31},
		{name: "november", month: 11, year: 2023, want: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DaysInMonth(tt.month, tt.year)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, month := range []int{0, 13, -1} {
		_, err := DaysInMonth(month, 2024)
		assert.ErrorIs(t, err, ErrInvalidMonth, "month %d", month)
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, Date{2024, 2, 29}.IsValid())
	assert.False(t, Date{1900, 2, 29}.IsValid())
	assert.False(t, Date{2023, 4, 31}.IsValid())
	assert.False(t, Date{2023, 13, 1}.IsValid())
	assert.False(t, Date{2023, 1, 0}.IsValid())
	assert.False(t, Date{}.IsValid())
	assert.True(t, Date{}.IsZero())
}

func TestNext(t *testing.T) {
	tests := []struct {
		name string
		in   Date
		want Date
	}{
		{name: "mid month", in: Date{2024, 1, 5}, want: Date{2024, 1, 6}},
		{name: "end of month", in: Date{2024, 4, 30}, want: Date{2024, 5, 1}},
		{name: "leap day", in: Date{2024, 2, 28}, want: Date{2024, 2, 29}},
		{name: "after leap day", in: Date{2024, 2, 29}, want: Date{2024, 3, 1}},
		{name: "non leap february", in: Date{2023, 2, 28}, want: Date{2023, 3, 1}},
		{name: "end of year", in: Date{2023, 12, 31}, want: Date{2024, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.Next()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Date{2024, 13, 1}.Next()
	assert.ErrorIs(t, err, ErrInvalidMonth)
}

func TestCompare(t *testing.T) {
	assert.Equal(t, Equal, Compare(Date{2024, 1, 5}, Date{2024, 1, 5}))
	assert.Equal(t, Before, Compare(Date{2023, 12, 31}, Date{2024, 1, 1}))
	assert.Equal(t, After, Compare(Date{2024, 2, 1}, Date{2024, 1, 31}))
	assert.Equal(t, Before, Compare(Date{2024, 1, 5}, Date{2024, 1, 12}))

	assert.True(t, Date{2024, 1, 5}.Before(Date{2024, 1, 12}))
	assert.True(t, Date{2024, 1, 12}.After(Date{2024, 1, 5}))
	assert.False(t, Date{2024, 1, 5}.After(Date{2024, 1, 5}))
	assert.Equal(t, "after", After.String())
}

func TestDayDifference(t *testing.T) {
	tests := []struct {
		name string
		d1   Date
		d2   Date
		want int
	}{
		{name: "same day", d1: Date{2024, 1, 12}, d2: Date{2024, 1, 12}, want: 0},
		{name: "one week", d1: Date{2024, 1, 12}, d2: Date{2024, 1, 5}, want: 7},
		{name: "negative", d1: Date{2024, 1, 5}, d2: Date{2024, 1, 12}, want: -7},
		{name: "across leap day", d1: Date{2024, 3, 1}, d2: Date{2024, 2, 28}, want: 2},
		{name: "across non leap february", d1: Date{2023, 3, 1}, d2: Date{2023, 2, 28}, want: 1},
		{name: "leap year", d1: Date{2025, 1, 1}, d2: Date{2024, 1, 1}, want: 366},
		{name: "common year", d1: Date{2024, 1, 1}, d2: Date{2023, 1, 1}, want: 365},
		{name: "century", d1: Date{1901, 1, 1}, d2: Date{1900, 1, 1}, want: 365},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DayDifference(tt.d1, tt.d2)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := DayDifference(Date{}, Date{2024, 1, 1})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

// sampleDates walks a stretch of days covering leap and century boundaries.
func sampleDates(t *testing.T) []Date {
	t.Helper()

	var dates []Date
	for _, start := range []Date{{1899, 12, 20}, {1999, 12, 25}, {2024, 2, 20}} {
		d := start
		for i := 0; i < 20; i++ {
			dates = append(dates, d)
			next, err := d.Next()
			require.NoError(t, err)
			d = next
		}
	}
	return dates
}

func TestDayDifferenceProperties(t *testing.T) {
	dates := sampleDates(t)

	for _, d := range dates {
		diff, err := DayDifference(d, d)
		require.NoError(t, err)
		assert.Zero(t, diff, "reflexive for %s", d)

		next, err := d.Next()
		require.NoError(t, err)
		diff, err = DayDifference(next, d)
		require.NoError(t, err)
		assert.Equal(t, 1, diff, "successor of %s", d)
	}

	for _, d1 := range dates {
		for _, d2 := range dates {
			forward, err := DayDifference(d1, d2)
			require.NoError(t, err)
			backward, err := DayDifference(d2, d1)
			require.NoError(t, err)
			assert.Equal(t, -forward, backward, "%s vs %s", d1, d2)
		}
	}
}

func TestDayDifferenceMatchesTimePackage(t *testing.T) {
	dates := sampleDates(t)
	toTime := func(d Date) time.Time {
		return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
	}

	for _, d1 := range dates {
		for _, d2 := range dates[:5] {
			got, err := DayDifference(d1, d2)
			require.NoError(t, err)
			want := int(toTime(d1).Sub(toTime(d2)).Hours() / 24)
			assert.Equal(t, want, got, "%s - %s", d1, d2)
		}
	}
}

func TestFromTime(t *testing.T) {
	ts := time.Date(2024, time.March, 9, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, Date{2024, 3, 9}, FromTime(ts))
	assert.Equal(t, "2024-03-09", FromTime(ts).String())
}
