package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/schollz/progressbar/v3"
)

// RowProgress shows a spinner with a running row count while input is read.
// The total is unknown until the input ends.
type RowProgress struct {
	bar    *progressbar.ProgressBar
	writer io.Writer
	rows   int
}

// NewRowProgress creates a row counter that draws to w.
func NewRowProgress(w io.Writer, description string) *RowProgress {
	p := &RowProgress{writer: w}
	p.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetDescription("[cyan][bold]"+description+"[reset]"),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(w); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
	return p
}

// Observe records that rows data rows have been read so far.
func (p *RowProgress) Observe(rows int) {
	if delta := rows - p.rows; delta > 0 {
		if err := p.bar.Add(delta); err != nil {
			slog.Warn("Failed to update progress bar", "error", err)
		}
	}
	p.rows = rows
}

// Rows returns the last observed row count.
func (p *RowProgress) Rows() int {
	return p.rows
}

// Finish stops the spinner.
func (p *RowProgress) Finish() {
	if err := p.bar.Finish(); err != nil {
		slog.Warn("Failed to finish progress bar", "error", err)
	}
}
