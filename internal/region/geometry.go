package region

import (
	"fmt"
	"image"
	"math"
)

// Geometry maps a cols x rows output grid onto a width x height raster.
type Geometry struct {
	Cols   int
	Rows   int
	Width  int
	Height int

	cellWidth  float64
	cellHeight float64
}

// Dimensions returns the grid size for a raster: the long edge gets resolution
// cells, the short edge is scaled by the aspect ratio and floored, and both are
// at least 1.
func Dimensions(width, height, resolution int) (cols, rows int) {
	aspect := float64(width) / float64(height)
	if aspect >= 1.0 {
		cols = resolution
		rows = int(float64(resolution) / aspect)
	} else {
		rows = resolution
		cols = int(float64(resolution) * aspect)
	}
	return max(1, cols), max(1, rows)
}

// NewGeometry creates the cell mapping for a raster of the given size.
func NewGeometry(width, height, cols, rows int) (Geometry, error) {
	if width <= 0 || height <= 0 {
		return Geometry{}, fmt.Errorf("raster must be non-empty, got %dx%d", width, height)
	}
	if cols <= 0 || rows <= 0 {
		return Geometry{}, fmt.Errorf("grid must be non-empty, got %dx%d", cols, rows)
	}
	return Geometry{
		Cols:       cols,
		Rows:       rows,
		Width:      width,
		Height:     height,
		cellWidth:  float64(width) / float64(cols),
		cellHeight: float64(height) / float64(rows),
	}, nil
}

// Cell returns the pixel rectangle covered by the cell at (col, row).
// Cells may be empty when the grid is finer than the raster.
func (g Geometry) Cell(col, row int) image.Rectangle {
	x0 := int(float64(col) * g.cellWidth)
	y0 := int(float64(row) * g.cellHeight)
	x1 := int(math.Min(float64(g.Width), float64(col+1)*g.cellWidth))
	y1 := int(math.Min(float64(g.Height), float64(row+1)*g.cellHeight))
	return image.Rect(x0, y0, x1, y1)
}
