package quantize

import (
	"cmp"
	"slices"

	"github.com/jmylchreest/blockify/internal/colour"
	"github.com/jmylchreest/blockify/internal/palette"
	"github.com/jmylchreest/blockify/internal/region"
)

// Cell is the outcome for one grid position.
type Cell struct {
	// Entry is the chosen block, or nil when no candidate was available.
	Entry *palette.Entry
	// Color is the colour that was matched.
	Color colour.RGB
	// Distance from Color to the entry colour under the run's metric.
	Distance float64
	// Score is Distance scaled by the cell's effective sensitivity.
	Score float64
}

func newCell(c colour.RGB, m match, sensitivity float64) Cell {
	if m.entry == nil {
		return Cell{Color: c}
	}
	return Cell{Entry: m.entry, Color: c, Distance: m.distance, Score: m.distance * sensitivity}
}

// Result is the grid produced by one conversion, indexed [row][col].
type Result struct {
	Algorithm      Algorithm
	Metric         colour.Metric
	Seed           int64
	Cols           int
	Rows           int
	SourceWidth    int
	SourceHeight   int
	PaletteVersion uint64
	Cells          [][]Cell
}

func newResult(opts Options, geom region.Geometry, version uint64) *Result {
	cells := make([][]Cell, geom.Rows)
	for i := range cells {
		cells[i] = make([]Cell, geom.Cols)
	}
	return &Result{
		Algorithm:      opts.Algorithm,
		Metric:         opts.Metric,
		Seed:           opts.Seed,
		Cols:           geom.Cols,
		Rows:           geom.Rows,
		SourceWidth:    geom.Width,
		SourceHeight:   geom.Height,
		PaletteVersion: version,
		Cells:          cells,
	}
}

// At returns the entry at (col, row), or nil for an empty or out-of-range cell.
func (r *Result) At(col, row int) *palette.Entry {
	if row < 0 || row >= r.Rows || col < 0 || col >= r.Cols {
		return nil
	}
	return r.Cells[row][col].Entry
}

// Usage is how many cells use one entry.
type Usage struct {
	Entry *palette.Entry
	Count int
}

// Usage counts cells per entry, most used first; ties are ordered by id.
// Empty cells are not counted.
func (r *Result) Usage() []Usage {
	counts := make(map[*palette.Entry]int)
	for _, row := range r.Cells {
		for _, c := range row {
			if c.Entry != nil {
				counts[c.Entry]++
			}
		}
	}

	out := make([]Usage, 0, len(counts))
	for e, n := range counts {
		out = append(out, Usage{Entry: e, Count: n})
	}
	slices.SortFunc(out, func(a, b Usage) int {
		return cmp.Or(cmp.Compare(b.Count, a.Count), cmp.Compare(a.Entry.ID, b.Entry.ID))
	})
	return out
}

// EmptyCells returns how many cells have no entry.
func (r *Result) EmptyCells() int {
	n := 0
	for _, row := range r.Cells {
		for _, c := range row {
			if c.Entry == nil {
				n++
			}
		}
	}
	return n
}

// MeanDistance returns the average match distance over non-empty cells.
func (r *Result) MeanDistance() float64 {
	total, n := 0.0, 0
	for _, row := range r.Cells {
		for _, c := range row {
			if c.Entry != nil {
				total += c.Distance
				n++
			}
		}
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}
