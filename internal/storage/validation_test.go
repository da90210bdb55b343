package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/Veraticus/rollcall/internal/model"
)

func TestValidateContext(t *testing.T) {
	tests := []struct {
		ctx     context.Context
		name    string
		wantErr bool
	}{
		{
			name:    "valid context",
			ctx:     context.Background(),
			wantErr: false,
		},
		{
			name:    "nil context",
			ctx:     nil,
			wantErr: true,
		},
		{
			name: "canceled context still valid",
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			}(),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateContext(tt.ctx)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateContext() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateRun(t *testing.T) {
	valid := func() *model.Run {
		return createTestRun("run-1", "a.csv", fixedTime)
	}

	tests := []struct {
		run     *model.Run
		wantErr error
		name    string
	}{
		{name: "valid", run: valid()},
		{name: "nil", run: nil, wantErr: ErrNilParameter},
		{name: "missing id", run: func() *model.Run { r := valid(); r.ID = ""; return r }(), wantErr: ErrInvalidRun},
		{name: "missing source", run: func() *model.Run { r := valid(); r.Source = ""; return r }(), wantErr: ErrInvalidRun},
		{name: "missing reference", run: func() *model.Run { r := valid(); r.Reference = ""; return r }(), wantErr: ErrInvalidRun},
		{name: "no sessions", run: func() *model.Run { r := valid(); r.TotalSessions = 0; return r }(), wantErr: ErrInvalidRun},
		{name: "blank student", run: func() *model.Run { r := valid(); r.Lines[1].Name = " "; return r }(), wantErr: ErrInvalidRun},
		{name: "duplicate student", run: func() *model.Run { r := valid(); r.Lines[1].Name = "Alice"; return r }(), wantErr: ErrInvalidRun},
		{name: "rate above one", run: func() *model.Run { r := valid(); r.Lines[0].Rate = 1.5; return r }(), wantErr: ErrInvalidRun},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRun(tt.run)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("validateRun() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validateRun() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
