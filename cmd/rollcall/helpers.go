package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/rollcall/internal/config"
	"github.com/Veraticus/rollcall/internal/service"
	"github.com/Veraticus/rollcall/internal/sheets"
	"github.com/Veraticus/rollcall/internal/storage"
	"github.com/spf13/viper"
)

// now is the clock used for run timestamps and the today reference.
var now = time.Now

// newExporter builds the Google Sheets exporter from configuration.
var newExporter = func(ctx context.Context, v *viper.Viper) (service.ReportExporter, error) {
	cfg, err := config.LoadSheetsConfig(v)
	if err != nil {
		return nil, fmt.Errorf("failed to load sheets config: %w", err)
	}
	return sheets.NewWriter(ctx, *cfg, slog.Default())
}

// openStore opens and migrates the configured run history store.
func openStore(ctx context.Context, settings config.HistorySettings) (service.RunStore, error) {
	var store service.RunStore

	switch settings.Driver {
	case config.DriverPostgres:
		pg, err := storage.NewPostgresStorage(ctx, settings.DSN)
		if err != nil {
			return nil, err
		}
		store = pg
	default:
		lite, err := storage.NewSQLiteStorage(settings.DSN)
		if err != nil {
			return nil, err
		}
		slog.Debug("Using SQLite history", "path", lite.Path())
		store = lite
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Debug("Opened history store", "driver", settings.Driver)
	return store, nil
}

func closeStore(store service.RunStore) {
	if err := store.Close(); err != nil {
		slog.Error("failed to close storage", "error", err)
	}
}
