package culture

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Veraticus/cultiva/internal/common"
	"github.com/Veraticus/cultiva/internal/model"
)

// Validation errors.
var (
	ErrEmptyCultureName = errors.New("culture name cannot be empty")
	ErrEmptyIconName    = errors.New("icon name cannot be empty")
	ErrEmptyCategory    = errors.New("category cannot be empty")
)

// RecordStore is the persistence contract for curated culture icons.
type RecordStore interface {
	ListCultureIcons(ctx context.Context) ([]model.CultureIcon, error)
	InsertCultureIcon(ctx context.Context, rec model.CultureIcon) (int64, error)
	DeleteCultureIcon(ctx context.Context, id int64) error
}

// ValidateRecord checks that a curated record can be stored.
func ValidateRecord(rec model.CultureIcon) error {
	if Normalize(rec.CultureName) == "" {
		return ErrEmptyCultureName
	}
	if strings.TrimSpace(rec.IconName) == "" {
		return ErrEmptyIconName
	}
	if strings.TrimSpace(rec.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

// MemoryStore is an in-process RecordStore that keeps insertion order.
type MemoryStore struct {
	records []model.CultureIcon
	nextID  int64
	mu      sync.Mutex
}

// NewMemoryStore creates a store seeded with records. Seed records receive
// fresh IDs in the order given.
func NewMemoryStore(records ...model.CultureIcon) *MemoryStore {
	s := &MemoryStore{nextID: 1}
	for _, rec := range records {
		rec.ID = s.nextID
		s.nextID++
		s.records = append(s.records, rec)
	}
	return s
}

// ListCultureIcons returns all records in insertion order.
func (s *MemoryStore) ListCultureIcons(_ context.Context) ([]model.CultureIcon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.CultureIcon, len(s.records))
	copy(out, s.records)
	return out, nil
}

// InsertCultureIcon appends a record and returns its new ID.
func (s *MemoryStore) InsertCultureIcon(_ context.Context, rec model.CultureIcon) (int64, error) {
	if err := ValidateRecord(rec); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ID = s.nextID
	rec.CreatedAt = time.Now()
	s.nextID++
	s.records = append(s.records, rec)
	return rec.ID, nil
}

// DeleteCultureIcon removes the record with the given ID.
func (s *MemoryStore) DeleteCultureIcon(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, rec := range s.records {
		if rec.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("culture icon %d: %w", id, common.ErrNotFound)
}
