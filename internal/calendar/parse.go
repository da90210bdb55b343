package calendar

import (
	"fmt"
	"strconv"
	"strings"
)

// Order is the field order of a delimited date string.
type Order int

// Supported field orders.
const (
	MonthDayYear Order = iota
	YearMonthDay
)

// Two-digit years are read as 20YY.
const twoDigitYearBase = 2000

// ParseOrder maps a configuration value ("mdy" or "ymd") to an Order.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "mdy", "m/d/y":
		return MonthDayYear, nil
	case "ymd", "y/m/d":
		return YearMonthDay, nil
	default:
		return 0, fmt.Errorf("unknown date order %q (expected mdy or ymd)", s)
	}
}

func (o Order) String() string {
	switch o {
	case MonthDayYear:
		return "mdy"
	case YearMonthDay:
		return "ymd"
	default:
		return fmt.Sprintf("Order(%d)", int(o))
	}
}

func isDelimiter(r rune) bool {
	return strings.ContainsRune(`/\-_., `+"\t", r)
}

// Parse reads a date such as "1/5/24" or "2024-01-05" in the given order.
// Runs of delimiters are treated as one separator.
func Parse(text string, order Order) (Date, error) {
	tokens := strings.FieldsFunc(text, isDelimiter)
	if len(tokens) != 3 {
		return Date{}, fmt.Errorf("%w: %q has %d fields, want 3", ErrMalformedDate, text, len(tokens))
	}

	fields := make([]int, 3)
	for i, tok := range tokens {
		n, err := parseDigits(tok)
		if err != nil {
			return Date{}, fmt.Errorf("%w: %q: %v", ErrMalformedDate, text, err)
		}
		fields[i] = n
	}

	var d Date
	switch order {
	case MonthDayYear:
		d = Date{Month: fields[0], Day: fields[1], Year: fields[2]}
	case YearMonthDay:
		d = Date{Year: fields[0], Month: fields[1], Day: fields[2]}
	default:
		return Date{}, fmt.Errorf("%w: unsupported order %s", ErrMalformedDate, order)
	}

	if d.Year < 100 {
		d.Year += twoDigitYearBase
	}

	if !d.IsValid() {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, text)
	}
	return d, nil
}

func parseDigits(tok string) (int, error) {
	for _, r := range tok {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("non-numeric field %q", tok)
		}
	}
	return strconv.Atoi(tok)
}

// Format writes d in the given order so that Parse reads it back unchanged
// for any year of 100 or later.
func Format(d Date, order Order) string {
	if order == YearMonthDay {
		return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
	}
	return fmt.Sprintf("%d/%d/%d", d.Month, d.Day, d.Year)
}
