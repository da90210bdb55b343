package sheets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidation(t *testing.T) {
	base := func() Config {
		c := DefaultConfig()
		c.ServiceAccountPath = "/path/to/key.json"
		return c
	}

	tests := []struct {
		name    string
		errMsg  string
		config  Config
		wantErr bool
	}{
		{
			name:    "valid service account config",
			config:  base(),
			wantErr: false,
		},
		{
			name: "valid oauth config",
			config: Config{
				ClientID:      "test-client",
				ClientSecret:  "test-secret",
				RefreshToken:  "test-token",
				SheetName:     "Grades",
				BatchSize:     100,
				RetryAttempts: 3,
				RetryDelay:    time.Second,
			},
			wantErr: false,
		},
		{
			name: "partial oauth credentials",
			config: Config{
				ClientID:      "test-client",
				ClientSecret:  "", // Missing secret
				RefreshToken:  "test-token",
				SheetName:     "Grades",
				BatchSize:     100,
				RetryAttempts: 3,
				RetryDelay:    time.Second,
			},
			wantErr: true,
			errMsg:  "no authentication method configured",
		},
		{
			name: "multiple auth methods",
			config: func() Config {
				c := base()
				c.ClientID, c.ClientSecret, c.RefreshToken = "id", "secret", "token"
				return c
			}(),
			wantErr: true,
			errMsg:  "multiple authentication methods configured",
		},
		{
			name:    "empty sheet name",
			config:  func() Config { c := base(); c.SheetName = ""; return c }(),
			wantErr: true,
			errMsg:  "sheet name cannot be empty",
		},
		{
			name:    "invalid batch size",
			config:  func() Config { c := base(); c.BatchSize = 0; return c }(),
			wantErr: true,
			errMsg:  "batch size must be positive",
		},
		{
			name:    "zero retry delay is valid",
			config:  func() Config { c := base(); c.RetryAttempts = 0; c.RetryDelay = 0; return c }(),
			wantErr: false,
		},
		{
			name:    "negative retry delay",
			config:  func() Config { c := base(); c.RetryDelay = -1 * time.Second; return c }(),
			wantErr: true,
			errMsg:  "retry delay cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	assert.True(t, c.EnableFormatting)
	assert.Equal(t, "Grades", c.SheetName)
	assert.Equal(t, "Grade Report", c.SpreadsheetName)
	assert.Equal(t, 3, c.RetryAttempts)
}
