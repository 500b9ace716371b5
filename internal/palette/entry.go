// Package palette holds the set of blocks an image can be converted into.
//
// Entries are published through immutable, versioned snapshots. A Store owns
// the current snapshot and replaces it wholesale on every change, so a
// conversion that holds a snapshot never sees a half-applied edit.
package palette

import (
	"fmt"
	"image"
	"strings"

	"github.com/jmylchreest/blockify/internal/colour"
)

const (
	// DefaultWeight is the selection priority of an entry that has not been tuned.
	DefaultWeight = 5.0

	// DefaultCategory is used for ids without an underscore-separated prefix.
	DefaultCategory = "other"

	// opaqueThreshold is the alpha above which a texture pixel counts toward its colour.
	opaqueThreshold = 0.1
)

// Entry is one block type. Entries reachable from a Snapshot must not be modified.
type Entry struct {
	ID       string
	Name     string
	Category string
	Texture  image.Image
	Color    colour.RGB
	Weight   float64
	Enabled  bool

	defaultName  string
	defaultColor colour.RGB
}

// NewEntry creates an enabled entry for a texture, deriving its name, category
// and colour from the id and pixels.
func NewEntry(id string, texture image.Image) *Entry {
	return newEntry(id, texture, TextureColor(texture))
}

// NewColorEntry creates an enabled entry without a texture.
func NewColorEntry(id string, c colour.RGB) *Entry {
	return newEntry(id, nil, c)
}

func newEntry(id string, texture image.Image, c colour.RGB) *Entry {
	name := DisplayName(id)
	return &Entry{
		ID:           id,
		Name:         name,
		Category:     CategoryOf(id),
		Texture:      texture,
		Color:        c,
		Weight:       DefaultWeight,
		Enabled:      true,
		defaultName:  name,
		defaultColor: c,
	}
}

// String returns "Name (id)".
func (e *Entry) String() string {
	return fmt.Sprintf("%s (%s)", e.Name, e.ID)
}

// NameOverridden reports whether the display name differs from the derived one.
func (e *Entry) NameOverridden() bool {
	return e.Name != e.defaultName
}

// ColorOverridden reports whether the colour differs from the texture average.
func (e *Entry) ColorOverridden() bool {
	return e.Color != e.defaultColor
}

func (e *Entry) clone() *Entry {
	c := *e
	return &c
}

// DisplayName turns an id such as "oak_planks" into "Oak Planks".
func DisplayName(id string) string {
	words := strings.Split(id, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// CategoryOf returns the id prefix before the first underscore, or "other".
func CategoryOf(id string) string {
	if before, _, found := strings.Cut(id, "_"); found {
		return before
	}
	return DefaultCategory
}

// TextureColor averages the pixels of img whose opacity exceeds 0.1.
// A nil or fully transparent texture yields black.
func TextureColor(img image.Image) colour.RGB {
	if img == nil {
		return colour.Black
	}

	bounds := img.Bounds()
	var sum colour.RGB
	n := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c, alpha := colour.FromColorAlpha(img.At(x, y))
			if alpha > opaqueThreshold {
				sum = sum.Add(c)
				n++
			}
		}
	}
	if n == 0 {
		return colour.Black
	}
	return sum.Div(float64(n))
}
