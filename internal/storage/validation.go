// Package storage provides the data persistence layer for the cultiva application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/cultiva/internal/culture"
	"github.com/Veraticus/cultiva/internal/model"
)

// Validation errors.
var (
	ErrNilContext         = errors.New("context cannot be nil")
	ErrEmptyString        = errors.New("string parameter cannot be empty")
	ErrInvalidCultureIcon = errors.New("invalid culture icon")
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

// validateCultureIcon validates a curated record before it is written.
func validateCultureIcon(rec model.CultureIcon) error {
	if err := culture.ValidateRecord(rec); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCultureIcon, err)
	}
	return nil
}

// normalizedName is the lookup key stored alongside each record.
func normalizedName(name string) string {
	return culture.Normalize(name)
}
