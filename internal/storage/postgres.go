package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Veraticus/rollcall/internal/service"

	_ "github.com/jackc/pgx/v5/stdlib" // Postgres driver
)

// PostgresStorage keeps run history in a shared Postgres database.
type PostgresStorage struct {
	runQueries
}

var _ service.RunStore = (*PostgresStorage)(nil)

// NewPostgresStorage connects to Postgres using a pgx connection string.
func NewPostgresStorage(ctx context.Context, dsn string) (*PostgresStorage, error) {
	if err := validateString(dsn, "dsn"); err != nil {
		return nil, err
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return NewPostgresStorageFromDB(db), nil
}

// NewPostgresStorageFromDB wraps an already open connection pool.
func NewPostgresStorageFromDB(db *sql.DB) *PostgresStorage {
	return &PostgresStorage{
		runQueries: runQueries{db: db, rebind: dollarPlaceholders},
	}
}

// Migrate creates the history tables if they do not exist.
func (s *PostgresStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		source_hash TEXT,
		reference_date TEXT NOT NULL,
		total_sessions INTEGER NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
	CREATE INDEX IF NOT EXISTS idx_runs_source ON runs(source);

	CREATE TABLE IF NOT EXISTS run_students (
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		attended INTEGER NOT NULL,
		rate DOUBLE PRECISION NOT NULL,
		days_since INTEGER,
		PRIMARY KEY (run_id, position)
	);
	`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create history tables: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (s *PostgresStorage) Close() error {
	return s.db.Close()
}
