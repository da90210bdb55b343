package config

import (
	"fmt"
	"path/filepath"

	"github.com/Veraticus/rollcall/internal/calendar"
	"github.com/Veraticus/rollcall/internal/common"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Settings is the resolved configuration for a report run.
type Settings struct {
	Report  ReportSettings
	History HistorySettings
}

// ReportSettings controls how input is read and where the report goes.
type ReportSettings struct {
	Date      string // Reference date: empty, "today", or a date in DateOrder
	Output    string
	DateOrder calendar.Order
	Progress  bool
}

// HistorySettings controls run history persistence.
type HistorySettings struct {
	Driver  string
	DSN     string
	Enabled bool
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("report.date_order", "mdy")
	v.SetDefault("report.date", "")
	v.SetDefault("report.output", "")
	v.SetDefault("report.progress", false)
	v.SetDefault("history.enabled", false)
	v.SetDefault("storage.driver", DriverSQLite)
	v.SetDefault("storage.dsn", filepath.Join(DefaultDir(), "rollcall.db"))
}

// Load reads and validates settings from v.
func Load(v *viper.Viper) (*Settings, error) {
	order, err := calendar.ParseOrder(v.GetString("report.date_order"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidConfig, err)
	}

	s := &Settings{
		Report: ReportSettings{
			DateOrder: order,
			Date:      v.GetString("report.date"),
			Output:    ExpandPath(v.GetString("report.output")),
			Progress:  v.GetBool("report.progress"),
		},
		History: HistorySettings{
			Enabled: v.GetBool("history.enabled"),
			Driver:  v.GetString("storage.driver"),
			DSN:     v.GetString("storage.dsn"),
		},
	}

	switch s.History.Driver {
	case DriverSQLite:
		s.History.DSN = ExpandPath(s.History.DSN)
	case DriverPostgres:
	default:
		return nil, fmt.Errorf("%w: unknown storage driver %q", common.ErrInvalidConfig, s.History.Driver)
	}

	if s.History.DSN == "" {
		return nil, fmt.Errorf("%w: storage.dsn is empty", common.ErrMissingConfig)
	}

	return s, nil
}
