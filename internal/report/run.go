package report

import (
	"fmt"
	"time"

	"github.com/Veraticus/rollcall/internal/calendar"
	"github.com/Veraticus/rollcall/internal/model"
)

// Snapshot converts the report into a storable run.
func (r *Report) Snapshot(id, source, sourceHash string, createdAt time.Time) *model.Run {
	run := &model.Run{
		ID:            id,
		Source:        source,
		SourceHash:    sourceHash,
		Reference:     calendar.Format(r.Reference, calendar.YearMonthDay),
		TotalSessions: r.TotalSessions,
		StudentCount:  len(r.Lines),
		CreatedAt:     createdAt,
		Lines:         make([]model.RunLine, 0, len(r.Lines)),
	}

	for i, l := range r.Lines {
		line := model.RunLine{
			Name:     l.Name,
			Attended: l.Attended,
			Rate:     l.Rate,
			Position: i,
		}
		if !l.Never {
			days := l.DaysSince
			line.DaysSince = &days
		}
		run.Lines = append(run.Lines, line)
	}

	return run
}

// FromRun rebuilds a report from a stored run.
func FromRun(run *model.Run) (*Report, error) {
	ref, err := calendar.Parse(run.Reference, calendar.YearMonthDay)
	if err != nil {
		return nil, fmt.Errorf("stored run %s has bad reference date: %w", run.ID, err)
	}

	rep := &Report{
		Reference:     ref,
		TotalSessions: run.TotalSessions,
		Lines:         make([]Line, 0, len(run.Lines)),
	}
	for _, l := range run.Lines {
		line := Line{
			Name:     l.Name,
			Attended: l.Attended,
			Rate:     l.Rate,
		}
		if l.DaysSince == nil {
			line.Never = true
		} else {
			line.DaysSince = *l.DaysSince
		}
		rep.Lines = append(rep.Lines, line)
	}
	return rep, nil
}
