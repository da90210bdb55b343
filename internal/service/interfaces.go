// Package service defines the interfaces for the application's collaborators.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/rollcall/internal/model"
)

// RunFilter narrows history queries.
type RunFilter struct {
	Source string
	Limit  int
}

// RunStore persists report runs.
type RunStore interface {
	SaveRun(ctx context.Context, run *model.Run) error
	GetRun(ctx context.Context, id string) (*model.Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error)
	Migrate(ctx context.Context) error
	Close() error
}

// ReportExporter publishes a run to an external destination.
type ReportExporter interface {
	Export(ctx context.Context, run *model.Run) error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
