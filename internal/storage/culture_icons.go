package storage

import (
	"context"
	"fmt"

	"github.com/Veraticus/cultiva/internal/common"
	"github.com/Veraticus/cultiva/internal/model"
)

// ListCultureIcons returns every curated record in insertion order.
func (s *SQLiteStorage) ListCultureIcons(ctx context.Context) ([]model.CultureIcon, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, culture_name, icon_name, category, created_at
		FROM culture_icons
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query culture icons: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var icons []model.CultureIcon
	for rows.Next() {
		var icon model.CultureIcon
		if err := rows.Scan(&icon.ID, &icon.CultureName, &icon.IconName, &icon.Category, &icon.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan culture icon: %w", err)
		}
		icons = append(icons, icon)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating culture icons: %w", err)
	}

	return icons, nil
}

// FindCultureIcons returns the records whose normalized name equals the
// normalized form of name.
func (s *SQLiteStorage) FindCultureIcons(ctx context.Context, name string) ([]model.CultureIcon, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, culture_name, icon_name, category, created_at
		FROM culture_icons
		WHERE normalized_name = ?
		ORDER BY id ASC
	`, normalizedName(name))
	if err != nil {
		return nil, fmt.Errorf("failed to query culture icons: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var icons []model.CultureIcon
	for rows.Next() {
		var icon model.CultureIcon
		if err := rows.Scan(&icon.ID, &icon.CultureName, &icon.IconName, &icon.Category, &icon.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan culture icon: %w", err)
		}
		icons = append(icons, icon)
	}

	return icons, rows.Err()
}

// InsertCultureIcon stores a curated record and returns its ID.
func (s *SQLiteStorage) InsertCultureIcon(ctx context.Context, rec model.CultureIcon) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateCultureIcon(rec); err != nil {
		return 0, err
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO culture_icons (culture_name, normalized_name, icon_name, category)
		VALUES (?, ?, ?, ?)
	`, rec.CultureName, normalizedName(rec.CultureName), rec.IconName, rec.Category)
	if err != nil {
		return 0, fmt.Errorf("failed to insert culture icon: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get culture icon ID: %w", err)
	}

	return id, nil
}

// DeleteCultureIcon removes a curated record by ID.
func (s *SQLiteStorage) DeleteCultureIcon(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM culture_icons WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete culture icon: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("culture icon %d: %w", id, common.ErrNotFound)
	}

	return nil
}
