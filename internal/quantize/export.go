package quantize

import (
	"encoding/json"
	"fmt"

	"github.com/jmylchreest/blockify/internal/compression"
)

// GridExport is the serialised form of a result: block ids by [row][col], with
// null for empty cells.
type GridExport struct {
	Width          int          `json:"width"`
	Height         int          `json:"height"`
	Algorithm      Algorithm    `json:"algorithm"`
	PaletteVersion uint64       `json:"palette_version"`
	Cells          [][]*string  `json:"cells"`
	Usage          []UsageCount `json:"usage"`
}

// UsageCount is one line of the block usage summary.
type UsageCount struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Export converts the result into its serialisable form.
func (r *Result) Export() GridExport {
	cells := make([][]*string, r.Rows)
	for row := range cells {
		cells[row] = make([]*string, r.Cols)
		for col := range cells[row] {
			if e := r.Cells[row][col].Entry; e != nil {
				id := e.ID
				cells[row][col] = &id
			}
		}
	}

	var usage []UsageCount
	for _, u := range r.Usage() {
		usage = append(usage, UsageCount{ID: u.Entry.ID, Name: u.Entry.Name, Count: u.Count})
	}

	return GridExport{
		Width:          r.Cols,
		Height:         r.Rows,
		Algorithm:      r.Algorithm,
		PaletteVersion: r.PaletteVersion,
		Cells:          cells,
		Usage:          usage,
	}
}

// WriteGrid writes the result as JSON to path, compressed when the path ends
// in .xz or .gz.
func WriteGrid(path string, r *Result) error {
	data, err := json.Marshal(r.Export())
	if err != nil {
		return fmt.Errorf("failed to encode grid: %w", err)
	}
	return compression.WriteFile(path, append(data, '\n'))
}
