// Package calendar implements the narrow slice of Gregorian calendar
// arithmetic the attendance engine needs: validation, successor, ordering
// and signed day differences over plain year/month/day values.
package calendar

import (
	"errors"
	"fmt"
	"time"
)

// Calendar errors.
var (
	ErrInvalidMonth  = errors.New("invalid month")
	ErrInvalidDate   = errors.New("invalid date")
	ErrMalformedDate = errors.New("malformed date")
)

// Date is a calendar day with no time or zone component.
// The zero Date is not a valid date and is used to mean "unset".
type Date struct {
	Year  int
	Month int
	Day   int
}

// Ordering is the result of comparing two dates.
type Ordering int

// Comparison results.
const (
	Before Ordering = -1
	Equal  Ordering = 0
	After  Ordering = 1
)

func (o Ordering) String() string {
	switch o {
	case Before:
		return "before"
	case Equal:
		return "equal"
	case After:
		return "after"
	default:
		return fmt.Sprintf("Ordering(%d)", int(o))
	}
}

// FromTime returns the calendar day of t in t's location.
func FromTime(t time.Time) Date {
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// IsLeapYear reports whether year has a February 29th.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the length of month in year.
func DaysInMonth(month, year int) (int, error) {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31, nil
	case 4, 6, 9, 11:
		return 30, nil
	case 2:
		if IsLeapYear(year) {
			return 29, nil
		}
		return 28, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidMonth, month)
	}
}

// IsZero reports whether d is the unset Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// IsValid reports whether d names a real day in the Gregorian calendar.
func (d Date) IsValid() bool {
	days, err := DaysInMonth(d.Month, d.Year)
	if err != nil {
		return false
	}
	return d.Day >= 1 && d.Day <= days
}

// Next returns the day after d, carrying into the month and year.
func (d Date) Next() (Date, error) {
	days, err := DaysInMonth(d.Month, d.Year)
	if err != nil {
		return Date{}, err
	}

	next := Date{Year: d.Year, Month: d.Month, Day: d.Day + 1}
	if next.Day > days {
		next.Day = 1
		next.Month++
	}
	if next.Month > 12 {
		next.Month = 1
		next.Year++
	}
	return next, nil
}

// Compare orders d1 and d2 by year, then month, then day.
func Compare(d1, d2 Date) Ordering {
	switch {
	case d1.Year != d2.Year:
		return orderInts(d1.Year, d2.Year)
	case d1.Month != d2.Month:
		return orderInts(d1.Month, d2.Month)
	default:
		return orderInts(d1.Day, d2.Day)
	}
}

func orderInts(a, b int) Ordering {
	switch {
	case a < b:
		return Before
	case a > b:
		return After
	default:
		return Equal
	}
}

// Before reports whether d falls strictly earlier than other.
func (d Date) Before(other Date) bool {
	return Compare(d, other) == Before
}

// After reports whether d falls strictly later than other.
func (d Date) After(other Date) bool {
	return Compare(d, other) == After
}

// DayDifference returns the signed number of days from d2 to d1: positive
// when d1 is later, negative when it is earlier, zero when equal. The count
// is taken by stepping the earlier date forward one day at a time.
func DayDifference(d1, d2 Date) (int, error) {
	for _, d := range []Date{d1, d2} {
		if !d.IsValid() {
			return 0, fmt.Errorf("%w: %s", ErrInvalidDate, d)
		}
	}

	sign := 1
	from, to := d2, d1
	if d1.Before(d2) {
		sign = -1
		from, to = d1, d2
	}

	days := 0
	for from != to {
		next, err := from.Next()
		if err != nil {
			return 0, err
		}
		from = next
		days++
	}
	return sign * days, nil
}

// String renders d as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}
