package colour

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// DominantExtractor reduces a set of region samples to one representative colour.
type DominantExtractor interface {
	// Dominant returns the representative colour of samples.
	Dominant(samples []RGB) RGB
}

var (
	_ DominantExtractor = MedianExtractor{}
	_ DominantExtractor = (*KMeansExtractor)(nil)
)

// VarianceFactor maps the colour variance of samples to a sensitivity multiplier
// in [0.5, 1.5]: 1 + min(1, variance/(3n)) - 0.5. Fewer than two samples give 1.
func VarianceFactor(samples []RGB) float64 {
	n := len(samples)
	if n <= 1 {
		return 1.0
	}

	rs := make([]float64, n)
	gs := make([]float64, n)
	bs := make([]float64, n)
	for i, s := range samples {
		rs[i], gs[i], bs[i] = s.R, s.G, s.B
	}
	meanR, meanG, meanB := stat.Mean(rs, nil), stat.Mean(gs, nil), stat.Mean(bs, nil)

	variance := 0.0
	for i := range samples {
		variance += (rs[i]-meanR)*(rs[i]-meanR) + (gs[i]-meanG)*(gs[i]-meanG) + (bs[i]-meanB)*(bs[i]-meanB)
	}

	return 1.0 + (math.Min(1.0, variance/(3*float64(n))) - 0.5)
}
