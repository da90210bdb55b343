package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/rollcall/internal/common"
	"github.com/Veraticus/rollcall/internal/model"
	"github.com/Veraticus/rollcall/internal/service"
)

// defaultListLimit caps history listings when no limit is given.
const defaultListLimit = 20

// runQueries holds the run history SQL shared by every backend. Queries are
// written with ? placeholders and rebound per driver.
type runQueries struct {
	db     *sql.DB
	rebind func(string) string
}

func questionMarks(query string) string {
	return query
}

// dollarPlaceholders rewrites ? placeholders as $1, $2, ...
func dollarPlaceholders(query string) string {
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SaveRun stores a run and its lines atomically.
func (q *runQueries) SaveRun(ctx context.Context, run *model.Run) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRun(run); err != nil {
		return err
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	tx, err := q.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, q.rebind(`
		INSERT INTO runs (id, source, source_hash, reference_date, total_sessions, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`), run.ID, run.Source, run.SourceHash, run.Reference, run.TotalSessions, run.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, q.rebind(`
		INSERT INTO run_students (run_id, position, name, attended, rate, days_since)
		VALUES (?, ?, ?, ?, ?, ?)
	`))
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, line := range run.Lines {
		var days sql.NullInt64
		if line.DaysSince != nil {
			days = sql.NullInt64{Int64: int64(*line.DaysSince), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, run.ID, i, line.Name, line.Attended, line.Rate, days); err != nil {
			return fmt.Errorf("failed to save student %q: %w", line.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// GetRun loads a run with its lines in report order.
func (q *runQueries) GetRun(ctx context.Context, id string) (*model.Run, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var run model.Run
	var hash sql.NullString
	err := q.db.QueryRowContext(ctx, q.rebind(`
		SELECT id, source, source_hash, reference_date, total_sessions, created_at
		FROM runs
		WHERE id = ?
	`), id).Scan(&run.ID, &run.Source, &hash, &run.Reference, &run.TotalSessions, &run.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	run.SourceHash = hash.String

	rows, err := q.db.QueryContext(ctx, q.rebind(`
		SELECT position, name, attended, rate, days_since
		FROM run_students
		WHERE run_id = ?
		ORDER BY position
	`), id)
	if err != nil {
		return nil, fmt.Errorf("failed to query run students: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var line model.RunLine
		var days sql.NullInt64
		if err := rows.Scan(&line.Position, &line.Name, &line.Attended, &line.Rate, &days); err != nil {
			return nil, fmt.Errorf("failed to scan run student: %w", err)
		}
		if days.Valid {
			d := int(days.Int64)
			line.DaysSince = &d
		}
		run.Lines = append(run.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating run students: %w", err)
	}

	run.StudentCount = len(run.Lines)
	return &run, nil
}

// ListRuns returns runs newest first without their lines.
func (q *runQueries) ListRuns(ctx context.Context, filter service.RunFilter) ([]model.Run, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := `
		SELECT r.id, r.source, r.source_hash, r.reference_date, r.total_sessions, r.created_at,
			(SELECT COUNT(*) FROM run_students s WHERE s.run_id = r.id) AS student_count
		FROM runs r`
	args := []any{}
	if filter.Source != "" {
		query += ` WHERE r.source = ?`
		args = append(args, filter.Source)
	}
	query += ` ORDER BY r.created_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := q.db.QueryContext(ctx, q.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []model.Run
	for rows.Next() {
		var run model.Run
		var hash sql.NullString
		if err := rows.Scan(&run.ID, &run.Source, &hash, &run.Reference, &run.TotalSessions, &run.CreatedAt, &run.StudentCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.SourceHash = hash.String
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, nil
}
