package quantize

import (
	"image"

	"github.com/jmylchreest/blockify/internal/colour"
	"github.com/jmylchreest/blockify/internal/region"
)

const (
	// edgeThreshold is the mean edge strength above which a cell is treated as an edge.
	edgeThreshold = 0.3
	// edgeStrictness scales how much edge strength tightens sensitivity.
	edgeStrictness = 0.5
	// correctedSensitivity scales sensitivity for off-white and near-black cells.
	correctedSensitivity = 0.7
	// correctedDiffusion scales diffused error for off-white and near-black cells.
	correctedDiffusion = 0.5
	// halfStrength is the diffusion strength of the hybrid and average-dither variants.
	halfStrength = 0.5
)

// cellPlan is the colour a cell should match and the sensitivity multiplier
// its score is reported with.
type cellPlan struct {
	color       colour.RGB
	sensitivity float64
}

// picker chooses the colour of one cell.
type picker func(r *run, rect image.Rectangle) cellPlan

// variant describes one algorithm. Variants with a zero diffusion strength
// match cells independently; the others run a Floyd-Steinberg pass over the
// picked colours.
type variant struct {
	pick      picker
	needEdges bool
	diffusion float64
	// correctExtremes enables off-white and near-black candidate filtering.
	correctExtremes bool
	memoise         bool
}

var variants = map[Algorithm]variant{
	AlgorithmAverage:       {pick: pickAverage},
	AlgorithmColorMatching: {pick: pickMedian},
	AlgorithmKMeans:        {pick: pickClusters},
	AlgorithmEdge:          {pick: pickEdgeAware, needEdges: true},
	AlgorithmDithering:     {pick: pickAverage, diffusion: 1, correctExtremes: true, memoise: true},
	AlgorithmHybrid:        {pick: pickEdgeAwareColour, needEdges: true, diffusion: halfStrength, memoise: true},
	AlgorithmAverageDither: {pick: pickAverage, diffusion: halfStrength, memoise: true},
}

func pickAverage(r *run, rect image.Rectangle) cellPlan {
	return cellPlan{color: r.raster.Average(rect), sensitivity: r.opts.Sensitivity}
}

func pickMedian(r *run, rect image.Rectangle) cellPlan {
	samples := r.raster.StrategicSample(rect, region.StrategicSamples)
	return cellPlan{
		color:       colour.MedianExtractor{}.Dominant(samples),
		sensitivity: r.opts.Sensitivity * colour.VarianceFactor(samples),
	}
}

func pickClusters(r *run, rect image.Rectangle) cellPlan {
	samples := r.raster.Sample(rect, region.DefaultMaxSamples)
	return cellPlan{
		color:       r.clusters3.Dominant(samples),
		sensitivity: r.opts.Sensitivity * colour.VarianceFactor(samples),
	}
}

func pickEdgeAware(r *run, rect image.Rectangle) cellPlan {
	strength := r.edges.Strength(rect)
	return cellPlan{
		color:       r.edgeColour(rect, strength),
		sensitivity: r.opts.Sensitivity * (1 - strength*edgeStrictness),
	}
}

func pickEdgeAwareColour(r *run, rect image.Rectangle) cellPlan {
	return cellPlan{
		color:       r.edgeColour(rect, r.edges.Strength(rect)),
		sensitivity: r.opts.Sensitivity,
	}
}

// edgeColour clusters the samples of edge cells and averages the rest.
func (r *run) edgeColour(rect image.Rectangle, strength float64) colour.RGB {
	if strength > edgeThreshold {
		return r.clusters2.Dominant(r.raster.Sample(rect, region.DefaultMaxSamples))
	}
	return r.raster.Average(rect)
}
