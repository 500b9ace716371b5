package palette

import (
	"image"
	"image/color"
	"testing"

	"github.com/jmylchreest/blockify/internal/colour"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"stone", "Stone"},
		{"oak_planks", "Oak Planks"},
		{"white_concrete_powder", "White Concrete Powder"},
		{"double__underscore", "Double  Underscore"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := DisplayName(tt.id); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"stone", "other"},
		{"oak_planks", "oak"},
		{"white_concrete_powder", "white"},
		{"_odd", ""},
	}

	for _, tt := range tests {
		if got := CategoryOf(tt.id); got != tt.want {
			t.Errorf("CategoryOf(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestTextureColorIgnoresTransparentPixels(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(1, 0, color.NRGBA{B: 255, A: 255})
	img.Set(0, 1, color.NRGBA{G: 255, A: 20}) // below the opacity threshold
	// (1, 1) stays fully transparent

	got := TextureColor(img)
	want := colour.RGB{R: 0.5, B: 0.5}
	if got != want {
		t.Errorf("TextureColor() = %+v, want %+v", got, want)
	}

	if got := TextureColor(image.NewNRGBA(image.Rect(0, 0, 3, 3))); got != colour.Black {
		t.Errorf("TextureColor(transparent) = %+v, want black", got)
	}
	if got := TextureColor(nil); got != colour.Black {
		t.Errorf("TextureColor(nil) = %+v, want black", got)
	}
}

func TestNewEntryDefaults(t *testing.T) {
	e := NewColorEntry("red_wool", colour.RGB{R: 1})

	if e.Name != "Red Wool" || e.Category != "red" {
		t.Errorf("NewColorEntry() name/category = %q/%q", e.Name, e.Category)
	}
	if e.Weight != DefaultWeight || !e.Enabled {
		t.Errorf("NewColorEntry() weight/enabled = %v/%v, want %v/true", e.Weight, e.Enabled, DefaultWeight)
	}
	if e.NameOverridden() || e.ColorOverridden() {
		t.Error("fresh entry reports overrides")
	}
	if got, want := e.String(), "Red Wool (red_wool)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func ids(entries []*Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSnapshotOrdering(t *testing.T) {
	snap := NewSnapshot(
		NewColorEntry("stone", colour.Black),
		NewColorEntry("oak_planks", colour.Black),
		NewColorEntry("oak_log", colour.Black),
		NewColorEntry("birch_log", colour.Black),
		NewColorEntry("dirt", colour.Black),
		NewColorEntry("dirt", colour.RGB{R: 1}), // duplicate id is ignored
		nil,
	)

	want := []string{"birch_log", "oak_log", "oak_planks", "dirt", "stone"}
	if got := ids(snap.All()); !equalStrings(got, want) {
		t.Errorf("All() = %v, want %v", got, want)
	}
	if snap.Len() != 5 {
		t.Errorf("Len() = %d, want 5", snap.Len())
	}
	if e, _ := snap.Get("dirt"); e.Color != colour.Black {
		t.Errorf("Get(dirt) kept the duplicate entry")
	}
	if _, ok := snap.Get("missing"); ok {
		t.Error("Get(missing) ok = true")
	}

	wantCats := []string{"birch", "oak", "other"}
	if got := snap.Categories(); !equalStrings(got, wantCats) {
		t.Errorf("Categories() = %v, want %v", got, wantCats)
	}
}

func weighted(id string, weight float64, enabled bool) *Entry {
	e := NewColorEntry(id, colour.Black)
	e.Weight = weight
	e.Enabled = enabled
	return e
}

func TestWithVariety(t *testing.T) {
	snap := NewSnapshot(
		weighted("a", 1, true),
		weighted("b", 9, true),
		weighted("c", 5, true),
		weighted("d", 5, true),
		weighted("e", 10, false),
		weighted("f", 7, true),
	)

	tests := []struct {
		name string
		max  int
		want []string
	}{
		{"unlimited", 0, []string{"a", "b", "c", "d", "f"}},
		{"max equals enabled", 5, []string{"a", "b", "c", "d", "f"}},
		{"max exceeds enabled", 50, []string{"a", "b", "c", "d", "f"}},
		{"top two", 2, []string{"b", "f"}},
		{"ties keep order", 3, []string{"b", "f", "c"}},
		{"one", 1, []string{"b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ids(snap.WithVariety(tt.max)); !equalStrings(got, tt.want) {
				t.Errorf("WithVariety(%d) = %v, want %v", tt.max, got, tt.want)
			}
		})
	}
}

func TestWithVarietySelectionLaw(t *testing.T) {
	var entries []*Entry
	for i, w := range []float64{3, 8, 1, 8, 2, 6, 4, 9, 0, 5} {
		entries = append(entries, weighted(string(rune('a'+i)), w, true))
	}
	snap := NewSnapshot(entries...)

	for maxCount := 1; maxCount < len(entries); maxCount++ {
		chosen := snap.WithVariety(maxCount)
		if len(chosen) != maxCount {
			t.Fatalf("WithVariety(%d) returned %d entries", maxCount, len(chosen))
		}

		picked := make(map[string]bool)
		minChosen := chosen[0].Weight
		for _, e := range chosen {
			picked[e.ID] = true
			minChosen = min(minChosen, e.Weight)
		}
		for _, e := range snap.Enabled() {
			if !picked[e.ID] && e.Weight > minChosen {
				t.Errorf("WithVariety(%d) excluded %s (weight %v) but kept weight %v", maxCount, e.ID, e.Weight, minChosen)
			}
		}
	}
}
