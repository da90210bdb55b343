// Package testutil provides shared helpers for tests that need real storage.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/rollcall/internal/model"
	"github.com/Veraticus/rollcall/internal/storage"
)

// SetupTestStore creates a migrated in-memory SQLite store that is closed
// when the test ends.
func SetupTestStore(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

// SeedRuns saves runs into store or fails the test.
func SeedRuns(t *testing.T, store *storage.SQLiteStorage, runs ...*model.Run) {
	t.Helper()

	ctx := context.Background()
	for _, run := range runs {
		if err := store.SaveRun(ctx, run); err != nil {
			t.Fatalf("failed to seed run %q: %v", run.ID, err)
		}
	}
}

// NewRun returns a small valid run for history tests.
func NewRun(id, source string, createdAt time.Time) *model.Run {
	days := 3
	return &model.Run{
		ID:            id,
		Source:        source,
		Reference:     "2024-01-12",
		TotalSessions: 4,
		StudentCount:  2,
		CreatedAt:     createdAt,
		Lines: []model.RunLine{
			{Name: "Alice", Attended: 3, Rate: 0.75, DaysSince: &days},
			{Name: "Bob", Attended: 0, Rate: 0, Position: 1},
		},
	}
}
