package culture

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/Veraticus/cultiva/internal/common"
	"github.com/Veraticus/cultiva/internal/model"
)

// Tier identifies which resolution strategy produced a match.
type Tier int

// Resolution tiers, tried in order.
const (
	TierDefault Tier = iota
	TierExact
	TierCurated
	TierBuiltin
)

func (t Tier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierCurated:
		return "curated"
	case TierBuiltin:
		return "builtin"
	default:
		return "default"
	}
}

// Resolution is the icon, category and color chosen for a crop name.
type Resolution struct {
	IconName string
	Category string
	Color    string
	Tier     Tier
}

// Classifier resolves crop names against curated records and the built-in
// keyword table.
//
// The curated table is replaced wholesale on every load. Readers always see a
// complete table, but a lookup that races a reload may still be answered from
// the previous generation.
type Classifier struct {
	store   RecordStore
	table   atomic.Pointer[Table]
	loading atomic.Bool
	err     error
	loadMu  sync.Mutex
	errMu   sync.RWMutex
}

// NewClassifier creates a classifier backed by store. Until Load succeeds only
// the built-in table is consulted.
func NewClassifier(store RecordStore) *Classifier {
	c := &Classifier{store: store}
	c.table.Store(NewTable(nil, 0))
	return c
}

// Load fetches every curated record and swaps in a fresh table. On failure the
// curated table is emptied, the error is kept for Err, and resolution falls
// back to the built-in keywords.
func (c *Classifier) Load(ctx context.Context) error {
	c.loadMu.Lock()
	defer c.loadMu.Unlock()

	c.loading.Store(true)
	defer c.loading.Store(false)

	next := c.table.Load().Generation() + 1

	if c.store == nil {
		c.table.Store(NewTable(nil, next))
		c.setErr(common.ErrNoStore)
		return common.ErrNoStore
	}

	records, err := c.store.ListCultureIcons(ctx)
	if err != nil {
		err = fmt.Errorf("failed to load culture icons: %w", err)
		c.table.Store(NewTable(nil, next))
		c.setErr(err)
		slog.Warn("Culture icons unavailable, using built-in keywords only",
			"generation", next,
			"error", err)
		return err
	}

	table := NewTable(records, next)
	c.table.Store(table)
	c.setErr(nil)

	slog.Debug("Loaded culture icons",
		"records", len(records),
		"keys", table.Len(),
		"generation", next)

	return nil
}

// Start runs Load in the background. Loading reports true as soon as Start
// returns; the channel yields Load's result and is then closed.
func (c *Classifier) Start(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	c.loading.Store(true)

	go func() {
		defer close(done)
		done <- c.Load(ctx)
	}()

	return done
}

// Loading reports whether a load is in flight.
func (c *Classifier) Loading() bool {
	return c.loading.Load()
}

// Err returns the error from the most recent load, if any.
func (c *Classifier) Err() error {
	c.errMu.RLock()
	defer c.errMu.RUnlock()
	return c.err
}

func (c *Classifier) setErr(err error) {
	c.errMu.Lock()
	c.err = err
	c.errMu.Unlock()
}

// Generation returns the generation of the table currently served.
func (c *Classifier) Generation() uint64 {
	return c.table.Load().Generation()
}

// Records returns the curated records currently loaded, in table order.
func (c *Classifier) Records() []model.CultureIcon {
	return c.table.Load().Records()
}

// ResolveRecord runs the three-tier search for name against a single table
// snapshot.
func (c *Classifier) ResolveRecord(name string) Resolution {
	return resolve(c.table.Load(), name)
}

// ResolveIcon returns the icon identifier for name.
func (c *Classifier) ResolveIcon(name string) string {
	return c.ResolveRecord(name).IconName
}

// ResolveColor returns the color token for name's category.
func (c *Classifier) ResolveColor(name string) string {
	return c.ResolveRecord(name).Color
}

// AddRecord stores a curated record and reloads the whole table.
func (c *Classifier) AddRecord(ctx context.Context, rec model.CultureIcon) (int64, error) {
	if err := ValidateRecord(rec); err != nil {
		return 0, err
	}
	if c.store == nil {
		return 0, common.ErrNoStore
	}

	id, err := c.store.InsertCultureIcon(ctx, rec)
	if err != nil {
		return 0, fmt.Errorf("failed to add culture icon %q: %w", rec.CultureName, err)
	}

	slog.Info("Added culture icon", "id", id, "culture", rec.CultureName, "icon", rec.IconName)

	if err := c.Load(ctx); err != nil {
		return id, err
	}
	return id, nil
}

// DeleteRecord removes a curated record and reloads the whole table.
func (c *Classifier) DeleteRecord(ctx context.Context, id int64) error {
	if c.store == nil {
		return common.ErrNoStore
	}

	if err := c.store.DeleteCultureIcon(ctx, id); err != nil {
		return fmt.Errorf("failed to delete culture icon %d: %w", id, err)
	}

	slog.Info("Deleted culture icon", "id", id)

	return c.Load(ctx)
}

// Resolve runs the search against the built-in keywords only.
func Resolve(name string) Resolution {
	return resolve(nil, name)
}

func resolve(table *Table, name string) Resolution {
	key := Normalize(name)
	if key == "" {
		// An empty key is contained in every stored key; never let it match.
		return defaultResolution()
	}

	if table != nil {
		if rec, ok := table.Exact(key); ok {
			return curatedResolution(rec, TierExact)
		}
		if rec, ok := table.Partial(key); ok {
			return curatedResolution(rec, TierCurated)
		}
	}

	// "pomme" must not be taken by "pomme de terre" just because it is listed first.
	if i, ok := builtinIndex[key]; ok {
		return builtinResolution(builtinMappings[i])
	}
	for _, m := range builtinMappings {
		if containsEither(key, m.Keyword) {
			return builtinResolution(m)
		}
	}

	return defaultResolution()
}

func builtinResolution(m Mapping) Resolution {
	return Resolution{
		IconName: m.Icon,
		Category: string(m.Category),
		Color:    ColorFor(string(m.Category)),
		Tier:     TierBuiltin,
	}
}

func curatedResolution(rec model.CultureIcon, tier Tier) Resolution {
	icon := rec.IconName
	if strings.TrimSpace(icon) == "" {
		icon = DefaultIcon
	}
	return Resolution{
		IconName: icon,
		Category: rec.Category,
		Color:    ColorFor(rec.Category),
		Tier:     tier,
	}
}

func defaultResolution() Resolution {
	return Resolution{
		IconName: DefaultIcon,
		Color:    DefaultColor,
		Tier:     TierDefault,
	}
}

func containsEither(key, stored string) bool {
	return strings.Contains(key, stored) || strings.Contains(stored, key)
}
