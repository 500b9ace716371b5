package quantize

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/jmylchreest/blockify/internal/palette"
)

// DefaultCellSize is the edge length in pixels of one rendered block.
const DefaultCellSize = 16

// RenderOptions controls preview rendering.
type RenderOptions struct {
	// CellSize is the edge length of each block in pixels; 0 uses DefaultCellSize.
	CellSize int
	// Grid draws 1px lines on every cell boundary.
	Grid bool
	// GridColor defaults to black.
	GridColor color.Color
}

// DrawCell scales the texture of e into the cellSize square at (x, y) of dst.
// Entries without a texture are drawn as a solid square of their colour.
// A nil entry draws nothing.
func DrawCell(dst draw.Image, e *palette.Entry, x, y, cellSize int) {
	if e == nil || cellSize <= 0 {
		return
	}

	rect := image.Rect(x, y, x+cellSize, y+cellSize)
	if e.Texture == nil {
		draw.Draw(dst, rect, image.NewUniform(e.Color.NRGBA()), image.Point{}, draw.Src)
		return
	}
	draw.NearestNeighbor.Scale(dst, rect, e.Texture, e.Texture.Bounds(), draw.Over, nil)
}

// Render composes the preview image of a result. Empty cells stay transparent.
func Render(res *Result, opts RenderOptions) *image.NRGBA {
	size := opts.CellSize
	if size <= 0 {
		size = DefaultCellSize
	}

	img := image.NewNRGBA(image.Rect(0, 0, res.Cols*size, res.Rows*size))
	for row := 0; row < res.Rows; row++ {
		for col := 0; col < res.Cols; col++ {
			DrawCell(img, res.Cells[row][col].Entry, col*size, row*size, size)
		}
	}

	if opts.Grid {
		gridColor := opts.GridColor
		if gridColor == nil {
			gridColor = color.Black
		}
		drawGrid(img, res.Cols, res.Rows, size, gridColor)
	}
	return img
}

// drawGrid draws lines at every cell boundary. The closing right and bottom
// lines fall on the last pixel column and row.
func drawGrid(img draw.Image, cols, rows, size int, c color.Color) {
	bounds := img.Bounds()
	line := image.NewUniform(c)

	for col := 0; col <= cols; col++ {
		x := min(col*size, bounds.Max.X-1)
		draw.Draw(img, image.Rect(x, 0, x+1, bounds.Max.Y), line, image.Point{}, draw.Src)
	}
	for row := 0; row <= rows; row++ {
		y := min(row*size, bounds.Max.Y-1)
		draw.Draw(img, image.Rect(0, y, bounds.Max.X, y+1), line, image.Point{}, draw.Src)
	}
}
