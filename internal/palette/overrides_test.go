package palette

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmylchreest/blockify/internal/colour"
)

func newTestStore() *Store {
	store := NewBuilder().Build()
	store.Replace([]*Entry{
		NewColorEntry("red_wool", colour.RGB{R: 1}),
		NewColorEntry("blue_wool", colour.RGB{B: 1}),
		NewColorEntry("stone", colour.RGB{R: 0.5, G: 0.5, B: 0.5}),
	})
	return store
}

func TestOverridesExport(t *testing.T) {
	store := newTestStore()
	name := "Cobble"
	weight := 2.0
	if err := store.Update("stone", Update{Name: &name, Weight: &weight}); err != nil {
		t.Fatal(err)
	}
	if err := store.SetEnabled("blue_wool", false); err != nil {
		t.Fatal(err)
	}

	o := store.Overrides()
	if len(o) != 3 {
		t.Fatalf("Overrides() has %d entries, want 3", len(o))
	}

	stone := o["stone"]
	if stone.Name != "Cobble" || *stone.Weight != 2 || !*stone.Enabled || stone.Color != "" {
		t.Errorf("Overrides()[stone] = %+v", stone)
	}
	if blue := o["blue_wool"]; *blue.Enabled || blue.Name != "" {
		t.Errorf("Overrides()[blue_wool] = %+v", blue)
	}
}

func TestApplyOverrides(t *testing.T) {
	store := newTestStore()
	disabled := false
	weight := 8.0

	applied, err := store.ApplyOverrides(Overrides{
		"red_wool": {Weight: &weight, Color: "#00ff00", Name: "Lime"},
		"stone":    {Enabled: &disabled},
		"unknown":  {Enabled: &disabled},
	})
	if err != nil {
		t.Fatalf("ApplyOverrides() error = %v", err)
	}
	if applied != 2 {
		t.Errorf("ApplyOverrides() applied = %d, want 2", applied)
	}

	snap := store.Snapshot()
	red, _ := snap.Get("red_wool")
	if red.Weight != 8 || red.Color != (colour.RGB{G: 1}) || red.Name != "Lime" {
		t.Errorf("red_wool = %+v", red)
	}
	if stone, _ := snap.Get("stone"); stone.Enabled {
		t.Error("stone still enabled")
	}
	if blue, _ := snap.Get("blue_wool"); !blue.Enabled || blue.Weight != DefaultWeight {
		t.Errorf("untouched entry changed: %+v", blue)
	}
}

func TestApplyOverridesRejectsInvalidSet(t *testing.T) {
	store := newTestStore()
	before := store.Snapshot()
	disabled := false

	_, err := store.ApplyOverrides(Overrides{
		"stone":    {Enabled: &disabled},
		"red_wool": {Color: "not-a-colour"},
	})
	if err == nil {
		t.Fatal("ApplyOverrides() expected error for bad colour")
	}
	if store.Snapshot() != before {
		t.Error("invalid overrides changed the palette")
	}
}

func TestOverridesFileRoundTrip(t *testing.T) {
	for _, name := range []string{"palette.json", "palette.json.xz"} {
		t.Run(name, func(t *testing.T) {
			source := newTestStore()
			weight := 1.5
			if err := source.Update("stone", Update{Weight: &weight}); err != nil {
				t.Fatal(err)
			}
			if err := source.SetEnabled("red_wool", false); err != nil {
				t.Fatal(err)
			}

			path := filepath.Join(t.TempDir(), name)
			if err := WriteOverrides(path, source.Overrides()); err != nil {
				t.Fatalf("WriteOverrides() error = %v", err)
			}
			loaded, err := ReadOverrides(path)
			if err != nil {
				t.Fatalf("ReadOverrides() error = %v", err)
			}

			target := newTestStore()
			if _, err := target.ApplyOverrides(loaded); err != nil {
				t.Fatalf("ApplyOverrides() error = %v", err)
			}
			if stone, _ := target.Snapshot().Get("stone"); stone.Weight != 1.5 {
				t.Errorf("stone weight = %v, want 1.5", stone.Weight)
			}
			if red, _ := target.Snapshot().Get("red_wool"); red.Enabled {
				t.Error("red_wool still enabled")
			}
		})
	}
}

func TestReadOverridesFailures(t *testing.T) {
	dir := t.TempDir()

	if _, err := ReadOverrides(filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ReadOverrides(missing) error = %v, want os.ErrNotExist", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"stone": {"enabled": "yes"}}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadOverrides(bad); err == nil {
		t.Error("ReadOverrides(bad) expected error")
	}

	badColour := filepath.Join(dir, "colour.json")
	if err := os.WriteFile(badColour, []byte(`{"stone": {"color": "#zzzzzz"}}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadOverrides(badColour); err == nil {
		t.Error("ReadOverrides(bad colour) expected error")
	}
}
