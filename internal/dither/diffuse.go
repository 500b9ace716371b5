// Package dither implements Floyd-Steinberg error diffusion over a grid of
// working colours.
package dither

import (
	"github.com/jmylchreest/blockify/internal/colour"
)

const (
	// whiteThreshold marks a target cell as already near-white.
	whiteThreshold = 0.85
	// whiteScale damps error arriving at a near-white cell.
	whiteScale = 0.3
	// blueBiasCap limits the residual blue used for the blue bias.
	blueBiasCap = 0.5
	// grayPull is how far a corrected cell moves toward its own gray value.
	grayPull = 0.7
)

// Tap is one neighbour offset of a diffusion kernel and its share of the error.
type Tap struct {
	DX, DY int
	Weight float64
}

// floydSteinberg is ordered by scan position of the target cell.
var floydSteinberg = []Tap{
	{DX: 1, DY: 0, Weight: 7.0 / 16.0},
	{DX: -1, DY: 1, Weight: 3.0 / 16.0},
	{DX: 0, DY: 1, Weight: 5.0 / 16.0},
	{DX: 1, DY: 1, Weight: 1.0 / 16.0},
}

// Kernel returns a copy of the Floyd-Steinberg taps.
func Kernel() []Tap {
	return append([]Tap(nil), floydSteinberg...)
}

// Buffer is the working colour grid of a dithering run, indexed [row][col].
type Buffer struct {
	cols int
	rows int
	pix  []colour.RGB
}

// NewBuffer creates a cols x rows buffer filled with black.
func NewBuffer(cols, rows int) *Buffer {
	return &Buffer{cols: cols, rows: rows, pix: make([]colour.RGB, cols*rows)}
}

// Cols returns the buffer width in cells.
func (b *Buffer) Cols() int { return b.cols }

// Rows returns the buffer height in cells.
func (b *Buffer) Rows() int { return b.rows }

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.cols && y < b.rows
}

// At returns the working colour of cell (x, y), or black outside the buffer.
func (b *Buffer) At(x, y int) colour.RGB {
	if !b.inBounds(x, y) {
		return colour.Black
	}
	return b.pix[y*b.cols+x]
}

// Set stores c at (x, y). Points outside the buffer are ignored.
func (b *Buffer) Set(x, y int, c colour.RGB) {
	if !b.inBounds(x, y) {
		return
	}
	b.pix[y*b.cols+x] = c
}

// Diffuse spreads the residual err of cell (x, y) to its unvisited neighbours.
// Targets outside the buffer are skipped and their share is lost.
func (b *Buffer) Diffuse(x, y int, err colour.RGB) {
	for _, tap := range floydSteinberg {
		b.accumulate(x+tap.DX, y+tap.DY, err, tap.Weight)
	}
}

// accumulate adds err scaled by weight to the cell at (x, y).
// Near-white targets receive damped, less blue error and are then pulled toward gray.
func (b *Buffer) accumulate(x, y int, err colour.RGB, weight float64) {
	if !b.inBounds(x, y) {
		return
	}

	current := b.At(x, y)
	nearWhite := current.R > whiteThreshold && current.G > whiteThreshold && current.B > whiteThreshold

	if !nearWhite {
		b.Set(x, y, current.Add(err.Scale(weight)).Clamp())
		return
	}

	blueBias := 0.0
	if err.B > 0 {
		blueBias = min(blueBiasCap, err.B) * -0.5
	}
	scaled := err.Scale(whiteScale)
	next := colour.RGB{
		R: current.R + scaled.R*weight,
		G: current.G + scaled.G*weight,
		B: current.B + scaled.B*weight + blueBias,
	}.Clamp()

	b.Set(x, y, next.BlendToward(next.Brightness(), grayPull))
}
