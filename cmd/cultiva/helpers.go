package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/Veraticus/cultiva/internal/cli"
	"github.com/Veraticus/cultiva/internal/common"
	"github.com/Veraticus/cultiva/internal/config"
	"github.com/Veraticus/cultiva/internal/culture"
	"github.com/Veraticus/cultiva/internal/storage"
	"github.com/Veraticus/cultiva/internal/yield"
)

// loadConfig resolves the application settings from viper.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// getDatabase returns a migrated database connection and a cleanup function.
func getDatabase(ctx context.Context) (*storage.SQLiteStorage, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	db, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	cleanup := func() {
		if err := db.Close(); err != nil {
			common.LogError(err, "Failed to close database", common.Fields{"path": db.Path()})
		}
	}

	return db, cleanup, nil
}

// getClassifier opens the database and loads the curated icon table. The
// store is returned too for commands that query it directly.
func getClassifier(ctx context.Context) (*culture.Classifier, *storage.SQLiteStorage, func(), error) {
	db, cleanup, err := getDatabase(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	classifier := culture.NewClassifier(db)
	if err := classifier.Load(ctx); err != nil {
		cleanup()
		return nil, nil, nil, fmt.Errorf("failed to load culture icons: %w", err)
	}

	return classifier, db, cleanup, nil
}

// getResolver returns a classifier for lookups only. When the database cannot
// be opened or read it warns on w and falls back to the built-in keywords.
func getResolver(ctx context.Context, w io.Writer) (*culture.Classifier, func()) {
	db, cleanup, err := getDatabase(ctx)
	if err != nil {
		warnBuiltinOnly(w, err)
		return culture.NewClassifier(nil), func() {}
	}

	classifier := culture.NewClassifier(db)
	if err := classifier.Load(ctx); err != nil {
		warnBuiltinOnly(w, err)
	}
	return classifier, cleanup
}

func warnBuiltinOnly(w io.Writer, err error) {
	slog.Warn("Curated culture icons unavailable, using built-in keywords only", "error", err)
	_, _ = fmt.Fprintln(w, cli.FormatWarning("Curated icons unavailable, using built-in keywords only: "+err.Error()))
}

// newEstimator builds an estimator, seeded when estimator.seed is set.
func newEstimator() (*yield.Estimator, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if cfg.Seed != 0 {
		return yield.NewEstimator(yield.WithSeed(cfg.Seed)), nil
	}
	return yield.NewEstimator(), nil
}
