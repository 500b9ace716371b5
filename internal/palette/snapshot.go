package palette

import (
	"cmp"
	"slices"
)

// Snapshot is an immutable view of a palette at one version.
type Snapshot struct {
	version uint64
	entries []*Entry
	byID    map[string]*Entry
}

// NewSnapshot builds a version 0 snapshot from entries. Later entries with a
// duplicate id are ignored.
func NewSnapshot(entries ...*Entry) *Snapshot {
	return newSnapshot(0, entries)
}

func newSnapshot(version uint64, entries []*Entry) *Snapshot {
	s := &Snapshot{
		version: version,
		entries: make([]*Entry, 0, len(entries)),
		byID:    make(map[string]*Entry, len(entries)),
	}
	for _, e := range entries {
		if e == nil {
			continue
		}
		if _, dup := s.byID[e.ID]; dup {
			continue
		}
		s.byID[e.ID] = e
		s.entries = append(s.entries, e)
	}
	slices.SortStableFunc(s.entries, func(a, b *Entry) int {
		return cmp.Or(
			cmp.Compare(a.Category, b.Category),
			cmp.Compare(a.Name, b.Name),
			cmp.Compare(a.ID, b.ID),
		)
	})
	return s
}

// Version increases every time the owning store publishes a change.
func (s *Snapshot) Version() uint64 { return s.version }

// Len returns the number of entries, enabled or not.
func (s *Snapshot) Len() int { return len(s.entries) }

// Get returns the entry with the given id.
func (s *Snapshot) Get(id string) (*Entry, bool) {
	e, ok := s.byID[id]
	return e, ok
}

// All returns every entry ordered by category, then display name.
func (s *Snapshot) All() []*Entry {
	return slices.Clone(s.entries)
}

// Enabled returns the enabled entries in All order.
func (s *Snapshot) Enabled() []*Entry {
	var out []*Entry
	for _, e := range s.entries {
		if e.Enabled {
			out = append(out, e)
		}
	}
	return out
}

// WithVariety returns at most maxCount enabled entries, preferring higher
// weights. Equal weights keep their All order. When maxCount is not positive or
// covers every enabled entry, the enabled set is returned unchanged.
func (s *Snapshot) WithVariety(maxCount int) []*Entry {
	enabled := s.Enabled()
	if maxCount <= 0 || maxCount >= len(enabled) {
		return enabled
	}

	slices.SortStableFunc(enabled, func(a, b *Entry) int {
		return cmp.Compare(b.Weight, a.Weight)
	})
	return enabled[:maxCount]
}

// Categories returns the distinct categories in sorted order.
func (s *Snapshot) Categories() []string {
	var cats []string
	for _, e := range s.entries {
		cats = append(cats, e.Category)
	}
	slices.Sort(cats)
	return slices.Compact(cats)
}
