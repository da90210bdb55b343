// Package report turns aggregated attendance into the grade report.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Veraticus/rollcall/internal/attendance"
	"github.com/Veraticus/rollcall/internal/calendar"
)

// ErrNoSessions means there are no session dates to divide by.
var ErrNoSessions = errors.New("no class sessions found")

// Fixed report text.
const (
	Title         = "Grade Report"
	ColumnsHeader = "Name\tRate\tDays Since Attended"
	NeverAttended = "never"
)

// Line is one student's row in the report.
type Line struct {
	Name      string
	Attended  int
	Rate      float64
	DaysSince int
	Never     bool
}

// FormatRate renders the rate as a percentage with one decimal place.
func (l Line) FormatRate() string {
	return fmt.Sprintf("%.1f%%", l.Rate*100)
}

// FormatDaysSince renders the day count or the never-attended marker.
func (l Line) FormatDaysSince() string {
	if l.Never {
		return NeverAttended
	}
	return fmt.Sprintf("%d", l.DaysSince)
}

// Report holds the per-student lines in first-seen order.
type Report struct {
	Reference     calendar.Date
	Lines         []Line
	TotalSessions int
}

// Generate computes each student's rate and days since last attendance
// measured from ref.
func Generate(result *attendance.Result, ref calendar.Date) (*Report, error) {
	if result == nil || result.Sessions.Len() == 0 {
		return nil, ErrNoSessions
	}

	total := result.Sessions.Len()
	rep := &Report{
		Reference:     ref,
		TotalSessions: total,
		Lines:         make([]Line, 0, len(result.Students)),
	}

	for _, acc := range result.Students {
		line := Line{
			Name:     acc.Name,
			Attended: acc.Attended,
			Rate:     float64(acc.Attended) / float64(total),
		}

		if acc.HasAttended() {
			days, err := calendar.DayDifference(ref, acc.LastAttended)
			if err != nil {
				return nil, fmt.Errorf("failed to compute days since %s attended: %w", acc.Name, err)
			}
			line.DaysSince = days
		} else {
			line.Never = true
		}

		rep.Lines = append(rep.Lines, line)
	}

	return rep, nil
}

// NeverAttendedCount returns how many students were never present.
func (r *Report) NeverAttendedCount() int {
	n := 0
	for _, l := range r.Lines {
		if l.Never {
			n++
		}
	}
	return n
}

// Render writes the report text to w.
func (r *Report) Render(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s\n\n%s\n", Title, ColumnsHeader); err != nil {
		return err
	}
	for _, l := range r.Lines {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", l.Name, l.FormatRate(), l.FormatDaysSince()); err != nil {
			return err
		}
	}
	return nil
}

func (r *Report) String() string {
	var buf bytes.Buffer
	_ = r.Render(&buf)
	return buf.String()
}

// WriteFile saves the report text to path, creating parent directories.
func (r *Report) WriteFile(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	if err := os.WriteFile(filepath.Clean(path), []byte(r.String()), 0600); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
