package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS culture_icons (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					culture_name TEXT NOT NULL,
					icon_name TEXT NOT NULL,
					category TEXT NOT NULL,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)
			`)
			return err
		},
	},
	{
		Version:     2,
		Description: "Store normalized culture names for lookups",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`ALTER TABLE culture_icons ADD COLUMN normalized_name TEXT NOT NULL DEFAULT ''`,
				`CREATE INDEX idx_culture_icons_normalized ON culture_icons(normalized_name)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query '%s': %w", query, err)
				}
			}

			// Backfill rows written before the column existed.
			rows, err := tx.Query(`SELECT id, culture_name FROM culture_icons`)
			if err != nil {
				return fmt.Errorf("failed to read culture icons: %w", err)
			}
			type pending struct {
				name string
				id   int64
			}
			var backfill []pending
			for rows.Next() {
				var p pending
				if err := rows.Scan(&p.id, &p.name); err != nil {
					_ = rows.Close()
					return fmt.Errorf("failed to scan culture icon: %w", err)
				}
				backfill = append(backfill, p)
			}
			if err := rows.Close(); err != nil {
				return err
			}

			for _, p := range backfill {
				if _, err := tx.Exec(`UPDATE culture_icons SET normalized_name = ? WHERE id = ?`,
					normalizedName(p.name), p.id); err != nil {
					return fmt.Errorf("failed to backfill culture icon %d: %w", p.id, err)
				}
			}
			return nil
		},
	},
}

// Migrate applies all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	// Get current version
	currentVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	// Apply migrations
	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		// Update version
		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	// Verify we're at the expected schema version
	finalVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
