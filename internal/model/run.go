// Package model defines the records persisted for report runs.
package model

import (
	"time"
)

// Run is a stored snapshot of one generated grade report.
type Run struct {
	CreatedAt     time.Time
	ID            string
	Source        string // Input path as given on the command line
	SourceHash    string // SHA-256 of the input bytes
	Reference     string // Reference date, YYYY-MM-DD
	Lines         []RunLine
	TotalSessions int
	StudentCount  int
}

// RunLine is one student's stored result.
type RunLine struct {
	DaysSince *int // nil when the student never attended
	Name      string
	Attended  int
	Position  int
	Rate      float64
}

// NeverAttended returns how many students in the run were never present.
func (r *Run) NeverAttended() int {
	n := 0
	for _, l := range r.Lines {
		if l.DaysSince == nil {
			n++
		}
	}
	return n
}
