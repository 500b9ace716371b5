// Package edge computes Sobel gradient-magnitude maps used to detect regions
// that need sharper colour matching.
package edge

import (
	"image"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/jmylchreest/blockify/internal/region"
)

// Map holds a normalised edge strength in [0, 1] for every raster pixel.
// Rows index y and columns index x.
type Map struct {
	width  int
	height int
	m      *mat.Dense
}

// Detect builds the edge map of raster. Border pixels are left at 0.
// Rasters smaller than 3x3 have no interior and produce an all-zero map.
func Detect(raster *region.Raster) *Map {
	w, h := raster.Width(), raster.Height()
	if w <= 0 || h <= 0 {
		return &Map{}
	}

	gray := mat.NewDense(h, w, nil)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gray.Set(y, x, raster.At(x, y).Brightness())
		}
	}

	edges := mat.NewDense(h, w, nil)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			g00, g01, g02 := gray.At(y-1, x-1), gray.At(y-1, x), gray.At(y-1, x+1)
			g10, g12 := gray.At(y, x-1), gray.At(y, x+1)
			g20, g21, g22 := gray.At(y+1, x-1), gray.At(y+1, x), gray.At(y+1, x+1)

			gx := (g00 + 2*g01 + g02) - (g20 + 2*g21 + g22)
			gy := (g00 + 2*g10 + g20) - (g02 + 2*g12 + g22)

			edges.Set(y, x, math.Min(1.0, math.Sqrt(gx*gx+gy*gy)/2.0))
		}
	}

	return &Map{width: w, height: h, m: edges}
}

// Width returns the map width in pixels.
func (e *Map) Width() int { return e.width }

// Height returns the map height in pixels.
func (e *Map) Height() int { return e.height }

// At returns the edge strength at (x, y), or 0 outside the map.
func (e *Map) At(x, y int) float64 {
	if e.m == nil || x < 0 || y < 0 || x >= e.width || y >= e.height {
		return 0
	}
	return e.m.At(y, x)
}

// Strength returns the mean edge strength inside rect, clamped to the map.
// An empty rectangle has strength 0.
func (e *Map) Strength(rect image.Rectangle) float64 {
	if e.m == nil {
		return 0
	}
	rect = rect.Intersect(image.Rect(0, 0, e.width, e.height))
	if rect.Empty() {
		return 0
	}

	view := e.m.Slice(rect.Min.Y, rect.Max.Y, rect.Min.X, rect.Max.X)
	return mat.Sum(view) / float64(rect.Dx()*rect.Dy())
}
