package colour

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Metric selects the distance function used to match a region colour to a palette entry.
type Metric string

const (
	// MetricWeighted is a green-weighted Euclidean distance over linear RGB.
	MetricWeighted Metric = "weighted"

	// MetricPerceptual is MetricWeighted with near-white and near-black handling.
	MetricPerceptual Metric = "perceptual"

	// MetricLab is the CIE76 distance in L*a*b* space.
	MetricLab Metric = "lab"
)

// PerceptualPenalty is returned by PerceptualDistance when a near-white or
// near-black source is compared against a candidate outside its class.
const PerceptualPenalty = 2.0

// Channel weights approximating the eye's sensitivity to each primary.
var (
	defaultWeights = [3]float64{0.3, 0.59, 0.11}
	extremeWeights = [3]float64{0.4, 0.5, 0.1}
)

// ValidMetrics returns the supported metrics.
func ValidMetrics() []Metric {
	return []Metric{MetricWeighted, MetricPerceptual, MetricLab}
}

// ParseMetric converts a string to a Metric.
func ParseMetric(s string) (Metric, error) {
	m := Metric(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range ValidMetrics() {
		if m == valid {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown metric: %s (valid metrics: %v)", s, ValidMetrics())
}

// Distance returns the distance from src to candidate under m.
// An unset metric behaves as MetricWeighted.
func (m Metric) Distance(src, candidate RGB) float64 {
	switch m {
	case MetricPerceptual:
		return PerceptualDistance(src, candidate)
	case MetricLab:
		return LabDistance(src, candidate)
	default:
		return Distance(src, candidate)
	}
}

// Distance is the weighted Euclidean distance with weights (0.3, 0.59, 0.11)
// over gamma-expanded sRGB channels. It is symmetric and zero for equal colours.
func Distance(a, b RGB) float64 {
	ar, ag, ab := colorful.Color{R: a.R, G: a.G, B: a.B}.LinearRgb()
	br, bg, bb := colorful.Color{R: b.R, G: b.G, B: b.B}.LinearRgb()
	return weighted(ar-br, ag-bg, ab-bb, defaultWeights)
}

// PerceptualDistance is Distance with special cases for very light and very dark sources.
// A near-white source only matches near-white candidates (likewise near-black) without
// paying PerceptualPenalty, and both classes are measured on raw channel differences
// with weights (0.4, 0.5, 0.1) to stop hue drift in highlights and shadows.
// The source colour drives the classification, so the function is not symmetric.
func PerceptualDistance(src, candidate RGB) float64 {
	white := IsNearWhite(src)
	black := IsNearBlack(src)

	if white && !IsNearWhite(candidate) {
		return PerceptualPenalty
	}
	if black && !IsNearBlack(candidate) {
		return PerceptualPenalty
	}
	if white || black {
		d := src.Sub(candidate)
		return weighted(d.R, d.G, d.B, extremeWeights)
	}
	return Distance(src, candidate)
}

// LabDistance is the Euclidean distance in CIE L*a*b* (D65).
func LabDistance(a, b RGB) float64 {
	return colorful.Color{R: a.R, G: a.G, B: a.B}.DistanceLab(colorful.Color{R: b.R, G: b.G, B: b.B})
}

// WeightedSquared is the squared weighted distance over raw channels, used by k-means.
func WeightedSquared(a, b RGB) float64 {
	d := a.Sub(b)
	return d.R*d.R*defaultWeights[0] + d.G*d.G*defaultWeights[1] + d.B*d.B*defaultWeights[2]
}

func weighted(dr, dg, db float64, w [3]float64) float64 {
	return math.Sqrt(dr*dr*w[0] + dg*dg*w[1] + db*db*w[2])
}
