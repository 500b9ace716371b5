// Package quantize converts a source image into a grid of palette entries.
//
// A conversion is a pure function of the source pixels, a palette snapshot and
// Options: nothing is shared between runs, so independent conversions may run
// concurrently. Use a Runner to discard stale runs when parameters change.
package quantize

import (
	"context"
	"fmt"
	"image"
	"math/rand"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/blockify/internal/apperr"
	"github.com/jmylchreest/blockify/internal/colour"
	"github.com/jmylchreest/blockify/internal/dither"
	"github.com/jmylchreest/blockify/internal/edge"
	"github.com/jmylchreest/blockify/internal/palette"
	"github.com/jmylchreest/blockify/internal/region"
)

// run is the state of one conversion.
type run struct {
	opts       Options
	raster     *region.Raster
	geom       region.Geometry
	candidates []*palette.Entry
	edges      *edge.Map
	clusters2  *colour.KMeansExtractor
	clusters3  *colour.KMeansExtractor
	matcher    *matcher
	logger     hclog.Logger
}

// Quantize converts src into a grid of entries chosen from snap.
//
// A nil source or snapshot and out-of-range options are InputErrors. A palette
// without enabled entries is not an error: every cell of the result is empty.
// The context is checked once per grid row.
func Quantize(ctx context.Context, src image.Image, snap *palette.Snapshot, opts Options) (*Result, error) {
	if src == nil {
		return nil, apperr.NewInputError("quantize", apperr.ErrNilSource)
	}
	if snap == nil {
		return nil, apperr.NewInputError("quantize", apperr.ErrNilPalette)
	}
	if err := opts.Validate(); err != nil {
		return nil, apperr.NewInputError("quantize", fmt.Errorf("%w: %w", apperr.ErrInvalidOptions, err))
	}
	if opts.Metric == "" {
		opts.Metric = colour.MetricWeighted
	}

	bounds := src.Bounds()
	if bounds.Empty() {
		return nil, apperr.NewInputError("quantize", apperr.ErrEmptySource)
	}

	cols, rows := region.Dimensions(bounds.Dx(), bounds.Dy(), opts.Resolution)
	geom, err := region.NewGeometry(bounds.Dx(), bounds.Dy(), cols, rows)
	if err != nil {
		return nil, apperr.NewInputError("quantize", err)
	}

	v := variants[opts.Algorithm]
	r := &run{
		opts:       opts,
		geom:       geom,
		candidates: snap.WithVariety(opts.MaxVariety),
		matcher:    newMatcher(opts.Metric, v.memoise),
		logger:     opts.logger().Named("quantize"),
	}

	result := newResult(opts, geom, snap.Version())
	if len(r.candidates) == 0 {
		r.logger.Warn("no enabled palette entries, every cell is empty")
		return result, nil
	}

	r.raster = region.NewRaster(src)
	if v.needEdges {
		r.edges = edge.Detect(r.raster)
	}
	rng := rand.New(rand.NewSource(opts.Seed)) // #nosec G404 -- deterministic clustering, not security sensitive
	if r.clusters2, err = colour.NewKMeansExtractor(2, rng); err != nil {
		return nil, err
	}
	if r.clusters3, err = colour.NewKMeansExtractor(3, rng); err != nil {
		return nil, err
	}

	r.logger.Debug("converting",
		"algorithm", opts.Algorithm,
		"metric", opts.Metric,
		"cols", cols,
		"rows", rows,
		"candidates", len(r.candidates),
		"palette_version", snap.Version())

	if v.diffusion > 0 {
		err = r.diffused(ctx, v, result)
	} else {
		err = r.independent(ctx, v, result)
	}
	if err != nil {
		return nil, err
	}

	if v.memoise {
		r.logger.Debug("match memo", "hits", r.matcher.hits, "misses", r.matcher.misses)
	}
	return result, nil
}

// independent matches every cell on its own.
func (r *run) independent(ctx context.Context, v variant, result *Result) error {
	for row := 0; row < r.geom.Rows; row++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for col := 0; col < r.geom.Cols; col++ {
			plan := v.pick(r, r.geom.Cell(col, row))
			m := r.matcher.nearest(plan.color, r.candidates)
			result.Cells[row][col] = newCell(plan.color, m, plan.sensitivity)
		}
	}
	return nil
}

// diffused picks every cell colour first, then matches in scan order while
// pushing each cell's residual error onto its unvisited neighbours.
func (r *run) diffused(ctx context.Context, v variant, result *Result) error {
	buf := dither.NewBuffer(r.geom.Cols, r.geom.Rows)
	for row := 0; row < r.geom.Rows; row++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for col := 0; col < r.geom.Cols; col++ {
			buf.Set(col, row, v.pick(r, r.geom.Cell(col, row)).color)
		}
	}

	var light, dark []*palette.Entry
	if v.correctExtremes {
		light, dark = splitExtremes(r.candidates)
	}

	for row := 0; row < r.geom.Rows; row++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for col := 0; col < r.geom.Cols; col++ {
			c := buf.At(col, row)
			candidates := r.candidates
			sensitivity := r.opts.Sensitivity
			strength := v.diffusion

			if v.correctExtremes {
				if offWhite, nearBlack := colour.IsNearWhite(c), colour.IsNearBlack(c); offWhite || nearBlack {
					sensitivity *= correctedSensitivity
					strength *= correctedDiffusion
					if offWhite && len(light) > 0 {
						candidates = light
					} else if !offWhite && len(dark) > 0 {
						candidates = dark
					}
				}
			}

			m := r.matcher.nearest(c, candidates)
			result.Cells[row][col] = newCell(c, m, sensitivity)
			if m.entry == nil {
				continue
			}
			buf.Diffuse(col, row, c.Sub(m.entry.Color).Scale(strength))
		}
	}
	return nil
}

// splitExtremes returns the candidates suitable for off-white cells (light and
// not blue or pink tinted) and for near-black cells.
func splitExtremes(candidates []*palette.Entry) (light, dark []*palette.Entry) {
	for _, e := range candidates {
		if colour.IsLight(e.Color) && !colour.HasBlueOrPinkTint(e.Color) {
			light = append(light, e)
		}
		if colour.IsNearBlack(e.Color) {
			dark = append(dark, e)
		}
	}
	return light, dark
}
