package culture

import "github.com/Veraticus/cultiva/internal/model"

// entry pairs a normalized key with the curated record it came from.
type entry struct {
	key    string
	record model.CultureIcon
}

// Table is an immutable, ordered snapshot of curated records keyed by
// normalized culture name. Iteration order is the order of first appearance,
// which decides ties during partial matching.
type Table struct {
	index      map[string]int
	entries    []entry
	generation uint64
}

// NewTable builds a snapshot from records. Duplicate keys keep the position of
// their first occurrence and the value of their last. Records whose name
// normalizes to the empty string are dropped.
func NewTable(records []model.CultureIcon, generation uint64) *Table {
	t := &Table{
		index:      make(map[string]int, len(records)),
		entries:    make([]entry, 0, len(records)),
		generation: generation,
	}

	for _, rec := range records {
		key := Normalize(rec.CultureName)
		if key == "" {
			continue
		}
		if pos, ok := t.index[key]; ok {
			t.entries[pos].record = rec
			continue
		}
		t.index[key] = len(t.entries)
		t.entries = append(t.entries, entry{key: key, record: rec})
	}

	return t
}

// Generation returns the load generation that produced this snapshot.
func (t *Table) Generation() uint64 {
	return t.generation
}

// Len returns the number of distinct keys.
func (t *Table) Len() int {
	return len(t.entries)
}

// Records returns the records in table order.
func (t *Table) Records() []model.CultureIcon {
	out := make([]model.CultureIcon, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.record
	}
	return out
}

// Exact returns the record stored under key.
func (t *Table) Exact(key string) (model.CultureIcon, bool) {
	pos, ok := t.index[key]
	if !ok {
		return model.CultureIcon{}, false
	}
	return t.entries[pos].record, true
}

// Partial returns the first record whose key contains key or is contained by it.
func (t *Table) Partial(key string) (model.CultureIcon, bool) {
	for _, e := range t.entries {
		if containsEither(key, e.key) {
			return e.record, true
		}
	}
	return model.CultureIcon{}, false
}
