// Package attendance folds attendance rows into per-student statistics.
package attendance

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Veraticus/rollcall/internal/calendar"
)

// Aggregation errors.
var (
	ErrMissingColumn = errors.New("missing column")
	ErrMalformedRow  = errors.New("malformed row")
)

// Required header names, matched exactly.
const (
	ColumnStudentName = "Student Name"
	ColumnClassDate   = "Class Date"
	ColumnAttendance  = "Attendance"
)

// Status is the attendance value of a single row.
type Status int

// Recognized statuses. Unrecognized rows still count as a session.
const (
	StatusUnrecognized Status = iota
	StatusPresent
	StatusAbsent
)

// ParseStatus interprets an attendance cell case-insensitively.
func ParseStatus(value string) Status {
	switch {
	case strings.EqualFold(strings.TrimSpace(value), "present"):
		return StatusPresent
	case strings.EqualFold(strings.TrimSpace(value), "absent"):
		return StatusAbsent
	default:
		return StatusUnrecognized
	}
}

func (s Status) String() string {
	switch s {
	case StatusPresent:
		return "present"
	case StatusAbsent:
		return "absent"
	default:
		return "unrecognized"
	}
}

// Record is one parsed attendance row.
type Record struct {
	Student string
	Date    calendar.Date
	Status  Status
}

// RowError describes why a row could not be used.
type RowError struct {
	Err    error
	Column string
	Value  string
	Line   int
}

func (e *RowError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d, column %q, value %q: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Accumulator is the running state for one student.
type Accumulator struct {
	LastAttended calendar.Date
	Name         string
	Attended     int
	Records      int
}

// HasAttended reports whether the student was ever marked present.
func (a *Accumulator) HasAttended() bool {
	return !a.LastAttended.IsZero()
}

// SessionDates is the set of distinct class dates.
type SessionDates map[calendar.Date]struct{}

// Add inserts d.
func (s SessionDates) Add(d calendar.Date) {
	s[d] = struct{}{}
}

// Len returns the number of distinct dates.
func (s SessionDates) Len() int {
	return len(s)
}

// Sorted returns the dates in ascending order.
func (s SessionDates) Sorted() []calendar.Date {
	dates := make([]calendar.Date, 0, len(s))
	for d := range s {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})
	return dates
}
