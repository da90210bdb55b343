package attendance

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Veraticus/rollcall/internal/calendar"
	"github.com/Veraticus/rollcall/internal/roster"
)

// Result is the outcome of one aggregation pass.
type Result struct {
	Sessions SessionDates
	index    map[string]int
	Students []*Accumulator
	Latest   calendar.Date
	Rows     int
}

func newResult() *Result {
	return &Result{
		Sessions: make(SessionDates),
		index:    make(map[string]int),
	}
}

// Student returns the accumulator for name, if seen.
func (r *Result) Student(name string) (*Accumulator, bool) {
	i, ok := r.index[name]
	if !ok {
		return nil, false
	}
	return r.Students[i], true
}

// student returns the accumulator for name, creating it on first sight so
// that Students keeps first-seen order.
func (r *Result) student(name string) *Accumulator {
	if i, ok := r.index[name]; ok {
		return r.Students[i]
	}
	acc := &Accumulator{Name: name}
	r.index[name] = len(r.Students)
	r.Students = append(r.Students, acc)
	return acc
}

// Apply folds one record into the result.
func (r *Result) Apply(rec Record) {
	r.Rows++
	r.Sessions.Add(rec.Date)
	if rec.Date.After(r.Latest) {
		r.Latest = rec.Date
	}

	acc := r.student(rec.Student)
	acc.Records++
	if rec.Status != StatusPresent {
		return
	}
	acc.Attended++
	if rec.Date.After(acc.LastAttended) {
		acc.LastAttended = rec.Date
	}
}

// Option configures Aggregate.
type Option func(*aggregator)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(a *aggregator) {
		a.logger = logger
	}
}

// WithRowObserver registers fn to be called after every data row is applied.
func WithRowObserver(fn func(rows int)) Option {
	return func(a *aggregator) {
		a.observe = fn
	}
}

type aggregator struct {
	logger  *slog.Logger
	observe func(rows int)
	columns columns
	order   calendar.Order
}

type columns struct {
	name   int
	date   int
	status int
	width  int
}

// lineTracker is implemented by sources that know the input line of the
// last row returned.
type lineTracker interface {
	Line() int
}

// Aggregate reads the header and every data row from src. The first bad
// row aborts the pass; its error is a *RowError wrapping the cause.
// An empty source yields an empty Result.
func Aggregate(src roster.Source, order calendar.Order, opts ...Option) (*Result, error) {
	a := &aggregator{
		order:  order,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}

	result := newResult()

	header, err := src.Next()
	if errors.Is(err, io.EOF) {
		a.logger.Debug("Attendance input is empty")
		return result, nil
	}
	if err != nil {
		return nil, err
	}

	cols, err := locateColumns(header)
	if err != nil {
		return nil, err
	}
	a.columns = cols
	a.logger.Debug("Located attendance columns",
		"student_name", cols.name,
		"class_date", cols.date,
		"attendance", cols.status)

	for line := 2; ; line++ {
		row, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if lt, ok := src.(lineTracker); ok {
			line = lt.Line()
		}

		rec, err := a.record(row, line)
		if err != nil {
			return nil, err
		}
		result.Apply(rec)

		if a.observe != nil {
			a.observe(result.Rows)
		}
	}

	a.logger.Debug("Aggregated attendance",
		"rows", result.Rows,
		"students", len(result.Students),
		"sessions", result.Sessions.Len())

	return result, nil
}

func locateColumns(header []string) (columns, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := positions[name]; !dup {
			positions[name] = i
		}
	}

	find := func(name string) (int, error) {
		i, ok := positions[name]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
		return i, nil
	}

	var cols columns
	var err error
	if cols.name, err = find(ColumnStudentName); err != nil {
		return columns{}, err
	}
	if cols.date, err = find(ColumnClassDate); err != nil {
		return columns{}, err
	}
	if cols.status, err = find(ColumnAttendance); err != nil {
		return columns{}, err
	}
	cols.width = len(header)
	return cols, nil
}

func (a *aggregator) record(row []string, line int) (Record, error) {
	if len(row) < a.columns.width {
		return Record{}, &RowError{
			Line: line,
			Err:  fmt.Errorf("%w: %d fields, header has %d", ErrMalformedRow, len(row), a.columns.width),
		}
	}

	name := strings.TrimSpace(row[a.columns.name])
	if name == "" {
		return Record{}, &RowError{
			Line:   line,
			Column: ColumnStudentName,
			Err:    fmt.Errorf("%w: empty student name", ErrMalformedRow),
		}
	}

	rawDate := row[a.columns.date]
	date, err := calendar.Parse(rawDate, a.order)
	if err != nil {
		return Record{}, &RowError{
			Line:   line,
			Column: ColumnClassDate,
			Value:  rawDate,
			Err:    err,
		}
	}

	return Record{
		Student: name,
		Date:    date,
		Status:  ParseStatus(row[a.columns.status]),
	}, nil
}
