// Package region maps output grid cells onto rectangles of a source raster and
// extracts representative colours from those rectangles.
//
// Every cell reads an integer pixel rectangle obtained by scaling grid
// coordinates onto the raster and clamping to its bounds. Sampling is bounded so
// per-cell cost does not grow with the cell's pixel count.
package region

import (
	"image"
	"math"

	"github.com/jmylchreest/blockify/internal/colour"
)

const (
	// DefaultMaxSamples is the sample budget used by the k-means and edge strategies.
	DefaultMaxSamples = 25

	// StrategicSamples is the sample budget used by colour matching.
	StrategicSamples = 16
)

// Raster is a dense float copy of a source image with the origin moved to (0, 0).
type Raster struct {
	width  int
	height int
	pix    []colour.RGB
}

// NewRaster converts img into a Raster. Alpha is discarded.
func NewRaster(img image.Image) *Raster {
	bounds := img.Bounds()
	r := &Raster{
		width:  bounds.Dx(),
		height: bounds.Dy(),
		pix:    make([]colour.RGB, bounds.Dx()*bounds.Dy()),
	}
	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			r.pix[y*r.width+x] = colour.FromColor(img.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return r
}

// Width returns the raster width in pixels.
func (r *Raster) Width() int { return r.width }

// Height returns the raster height in pixels.
func (r *Raster) Height() int { return r.height }

// Bounds returns the raster rectangle, always anchored at the origin.
func (r *Raster) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.width, r.height)
}

// At returns the colour of the pixel at (x, y). The point must be inside Bounds.
func (r *Raster) At(x, y int) colour.RGB {
	return r.pix[y*r.width+x]
}

// Average returns the arithmetic mean colour of rect, clamped to the raster.
// An empty rectangle averages to black.
func (r *Raster) Average(rect image.Rectangle) colour.RGB {
	rect = rect.Intersect(r.Bounds())
	if rect.Empty() {
		return colour.Black
	}

	var sum colour.RGB
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			sum = sum.Add(r.At(x, y))
		}
	}
	return sum.Div(float64(rect.Dx() * rect.Dy()))
}

// Sample returns every pixel of rect when it has at most maxSamples pixels, and
// otherwise a floor(sqrt(maxSamples)) square grid of pixels taken at the centres
// of evenly sized sub-cells.
func (r *Raster) Sample(rect image.Rectangle, maxSamples int) []colour.RGB {
	rect = rect.Intersect(r.Bounds())
	area := rect.Dx() * rect.Dy()
	if rect.Empty() || maxSamples <= 0 {
		return nil
	}

	if area <= maxSamples {
		samples := make([]colour.RGB, 0, area)
		for y := rect.Min.Y; y < rect.Max.Y; y++ {
			for x := rect.Min.X; x < rect.Max.X; x++ {
				samples = append(samples, r.At(x, y))
			}
		}
		return samples
	}

	grid := int(math.Sqrt(float64(maxSamples)))
	xStep := float64(rect.Dx()) / float64(grid)
	yStep := float64(rect.Dy()) / float64(grid)

	samples := make([]colour.RGB, 0, grid*grid)
	for i := 0; i < grid; i++ {
		for j := 0; j < grid; j++ {
			x := rect.Min.X + int(float64(j)*xStep+xStep/2)
			y := rect.Min.Y + int(float64(i)*yStep+yStep/2)
			samples = append(samples, r.At(x, y))
		}
	}
	return samples
}

// StrategicSample takes up to maxSamples pixels from rect on a grid anchored at
// its top-left corner, min(maxSamples, area) samples in total.
func (r *Raster) StrategicSample(rect image.Rectangle, maxSamples int) []colour.RGB {
	rect = rect.Intersect(r.Bounds())
	if rect.Empty() || maxSamples <= 0 {
		return nil
	}

	n := min(maxSamples, rect.Dx()*rect.Dy())
	side := math.Sqrt(float64(n))

	samples := make([]colour.RGB, 0, n)
	for sy := 0; float64(sy) < side; sy++ {
		for sx := 0; float64(sx) < side; sx++ {
			if len(samples) >= n {
				return samples
			}
			x := rect.Min.X + int(float64(sx*rect.Dx())/side)
			y := rect.Min.Y + int(float64(sy*rect.Dy())/side)
			samples = append(samples, r.At(x, y))
		}
	}
	return samples
}
