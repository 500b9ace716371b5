package palette

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/jmylchreest/blockify/internal/apperr"
	"github.com/jmylchreest/blockify/internal/colour"
	"github.com/jmylchreest/blockify/internal/image"
)

// ErrUnknownEntry is returned when a mutation names an id the palette does not hold.
var ErrUnknownEntry = errors.New("unknown palette entry")

// Builder provides a fluent interface for constructing a Store.
type Builder struct {
	logger  hclog.Logger
	loader  image.Loader
	workers int
}

// NewBuilder creates a Store builder with default settings.
func NewBuilder() *Builder {
	return &Builder{
		logger:  hclog.NewNullLogger(),
		loader:  image.NewFileLoader(),
		workers: runtime.GOMAXPROCS(0),
	}
}

// WithLogger sets the logger used for load diagnostics.
func (b *Builder) WithLogger(logger hclog.Logger) *Builder {
	if logger != nil {
		b.logger = logger
	}
	return b
}

// WithLoader replaces the texture loader (useful for testing).
func (b *Builder) WithLoader(loader image.Loader) *Builder {
	if loader != nil {
		b.loader = loader
	}
	return b
}

// WithWorkers sets how many textures are decoded concurrently.
func (b *Builder) WithWorkers(n int) *Builder {
	if n > 0 {
		b.workers = n
	}
	return b
}

// Build constructs an empty Store.
func (b *Builder) Build() *Store {
	s := &Store{
		logger:  b.logger.Named("palette"),
		loader:  b.loader,
		workers: b.workers,
	}
	s.current.Store(newSnapshot(0, nil))
	return s
}

// Store owns the current palette snapshot. Reads are lock-free; writers are
// serialised and publish a new snapshot for every change.
type Store struct {
	mu      sync.Mutex
	current atomic.Pointer[Snapshot]

	logger  hclog.Logger
	loader  image.Loader
	workers int
}

// Snapshot returns the current palette view.
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// LoadReport summarises a directory load.
type LoadReport struct {
	Dir     string
	Loaded  int
	Skipped []*apperr.ResourceError
}

// LoadDir replaces the palette with one entry per supported image in dir.
// Unreadable textures are logged and skipped. An invalid directory is an
// InputError and leaves the palette unchanged.
func (s *Store) LoadDir(ctx context.Context, dir string) (*LoadReport, error) {
	files, err := image.ScanTextures(dir)
	if err != nil {
		return nil, apperr.NewInputError("load palette", fmt.Errorf("%w: %s: %w", apperr.ErrInvalidDirectory, dir, err))
	}

	entries := make([]*Entry, len(files))
	failures := make([]error, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			texture, err := s.loader.Load(f.Path)
			if err != nil {
				failures[i] = err
				return nil
			}
			entries[i] = NewEntry(f.ID, texture)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("palette load cancelled: %w", err)
	}

	report := &LoadReport{Dir: dir}
	seen := make(map[string]string, len(files))
	loaded := make([]*Entry, 0, len(files))
	for i, f := range files {
		path := f.Path
		if failures[i] != nil {
			report.skip(s.logger, path, failures[i])
			continue
		}
		id := entries[i].ID
		if first, dup := seen[id]; dup {
			report.skip(s.logger, path, fmt.Errorf("duplicate id %q, already loaded from %s", id, first))
			continue
		}
		seen[id] = path
		loaded = append(loaded, entries[i])
	}
	report.Loaded = len(loaded)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.publish(loaded)

	s.logger.Info("palette loaded", "dir", dir, "entries", report.Loaded, "skipped", len(report.Skipped))
	return report, nil
}

func (r *LoadReport) skip(logger hclog.Logger, path string, err error) {
	rerr := &apperr.ResourceError{Path: path, Err: err}
	logger.Warn("skipping texture", "path", path, "error", err)
	r.Skipped = append(r.Skipped, rerr)
}

// Replace publishes a palette made of entries. Entries are copied, so the
// caller may keep using its values.
func (s *Store) Replace(entries []*Entry) {
	copied := make([]*Entry, 0, len(entries))
	for _, e := range entries {
		if e != nil {
			copied = append(copied, e.clone())
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.publish(copied)
}

// publish swaps in a new snapshot. Callers must hold s.mu.
func (s *Store) publish(entries []*Entry) *Snapshot {
	next := newSnapshot(s.current.Load().version+1, entries)
	s.current.Store(next)
	return next
}

// mutate applies fn to a private copy of the entry with the given id and
// publishes the result.
func (s *Store) mutate(id string, fn func(e *Entry) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.current.Load()
	old, ok := cur.byID[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEntry, id)
	}

	updated := old.clone()
	if err := fn(updated); err != nil {
		return err
	}

	entries := make([]*Entry, 0, len(cur.entries))
	for _, e := range cur.entries {
		if e.ID == id {
			e = updated
		}
		entries = append(entries, e)
	}
	s.publish(entries)
	return nil
}

// SetEnabled includes or excludes an entry from conversions.
func (s *Store) SetEnabled(id string, enabled bool) error {
	return s.mutate(id, func(e *Entry) error {
		e.Enabled = enabled
		return nil
	})
}

// Update holds optional changes to an entry. Nil fields are left alone.
type Update struct {
	// Name overrides the display name; an empty string restores the derived name.
	Name *string
	// Color overrides the matching colour.
	Color *colour.RGB
	// Weight sets the selection priority and must not be negative.
	Weight *float64
}

// Update changes the name, colour or weight of an entry.
func (s *Store) Update(id string, u Update) error {
	if u.Weight != nil && *u.Weight < 0 {
		return fmt.Errorf("weight must be non-negative, got %v", *u.Weight)
	}
	return s.mutate(id, func(e *Entry) error {
		applyUpdate(e, u)
		return nil
	})
}

func applyUpdate(e *Entry, u Update) {
	if u.Name != nil {
		e.Name = *u.Name
		if e.Name == "" {
			e.Name = e.defaultName
		}
	}
	if u.Color != nil {
		e.Color = u.Color.Clamp()
	}
	if u.Weight != nil {
		e.Weight = *u.Weight
	}
}

// Overrides exports the user-tunable state of every entry.
func (s *Store) Overrides() Overrides {
	return s.Snapshot().Overrides()
}

// ApplyOverrides applies o in a single published change and returns how many
// entries it touched. Ids the palette does not hold are ignored, and an invalid
// override rejects the whole set without changing anything.
func (s *Store) ApplyOverrides(o Overrides) (int, error) {
	updates := make(map[string]Update, len(o))
	enabled := make(map[string]bool, len(o))
	for id, ov := range o {
		u, err := ov.update()
		if err != nil {
			return 0, fmt.Errorf("override for %s: %w", id, err)
		}
		updates[id] = u
		if ov.Enabled != nil {
			enabled[id] = *ov.Enabled
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.current.Load()
	applied := 0
	entries := make([]*Entry, 0, len(cur.entries))
	for _, e := range cur.entries {
		u, ok := updates[e.ID]
		if !ok {
			entries = append(entries, e)
			continue
		}
		e = e.clone()
		applyUpdate(e, u)
		if v, ok := enabled[e.ID]; ok {
			e.Enabled = v
		}
		entries = append(entries, e)
		applied++
	}

	for id := range o {
		if _, ok := cur.byID[id]; !ok {
			s.logger.Debug("ignoring override for unknown entry", "id", id)
		}
	}

	if applied > 0 {
		s.publish(entries)
	}
	return applied, nil
}
