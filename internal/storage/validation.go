// Package storage provides the run history persistence layer.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/rollcall/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrInvalidRun   = errors.New("invalid run")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateRun checks a run before it is written.
func validateRun(run *model.Run) error {
	if run == nil {
		return fmt.Errorf("%w: run", ErrNilParameter)
	}
	if run.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidRun)
	}
	if run.Source == "" {
		return fmt.Errorf("%w: missing source", ErrInvalidRun)
	}
	if run.Reference == "" {
		return fmt.Errorf("%w: missing reference date", ErrInvalidRun)
	}
	if run.TotalSessions <= 0 {
		return fmt.Errorf("%w: total sessions must be positive", ErrInvalidRun)
	}

	seen := make(map[string]bool, len(run.Lines))
	for i, line := range run.Lines {
		if strings.TrimSpace(line.Name) == "" {
			return fmt.Errorf("%w: line %d has no student name", ErrInvalidRun, i)
		}
		if seen[line.Name] {
			return fmt.Errorf("%w: duplicate student %q", ErrInvalidRun, line.Name)
		}
		seen[line.Name] = true
		if line.Rate < 0 || line.Rate > 1 {
			return fmt.Errorf("%w: rate for %q must be between 0 and 1", ErrInvalidRun, line.Name)
		}
	}
	return nil
}
