package quantize

import (
	"fmt"
	"slices"
	"strings"
)

// Algorithm selects how each grid cell chooses its block.
type Algorithm string

const (
	// AlgorithmAverage matches the mean colour of each cell.
	AlgorithmAverage Algorithm = "average"

	// AlgorithmColorMatching matches the median-brightness colour of 16 samples,
	// with sensitivity scaled by the cell's colour variance.
	AlgorithmColorMatching Algorithm = "color-matching"

	// AlgorithmDithering diffuses matching error across cells with special
	// handling for off-white and near-black cells.
	AlgorithmDithering Algorithm = "dithering"

	// AlgorithmKMeans matches the largest of three colour clusters per cell.
	AlgorithmKMeans Algorithm = "kmeans"

	// AlgorithmEdge uses clustering on edges and the mean elsewhere.
	AlgorithmEdge Algorithm = "edge"

	// AlgorithmHybrid combines edge-aware colour choice with half-strength diffusion.
	AlgorithmHybrid Algorithm = "hybrid"

	// AlgorithmAverageDither diffuses half of the error of plain cell averages.
	AlgorithmAverageDither Algorithm = "average-dither"
)

var algorithmInfo = map[Algorithm]struct {
	label       string
	description string
}{
	AlgorithmAverage:       {"Average Color", "Match the mean colour of each cell"},
	AlgorithmColorMatching: {"Color Matching", "Match the median of 16 samples, stricter on busy cells"},
	AlgorithmDithering:     {"Dithering", "Floyd-Steinberg diffusion with off-white and dark correction"},
	AlgorithmKMeans:        {"K-Means Clustering", "Match the largest of 3 colour clusters per cell"},
	AlgorithmEdge:          {"Edge Preservation", "Cluster colours on edges, average elsewhere"},
	AlgorithmHybrid:        {"Full Hybrid", "Edge-aware colours with half-strength diffusion"},
	AlgorithmAverageDither: {"Average with Dithering", "Cell averages with half-strength diffusion"},
}

// ValidAlgorithms returns every algorithm in presentation order.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{
		AlgorithmAverage,
		AlgorithmColorMatching,
		AlgorithmDithering,
		AlgorithmKMeans,
		AlgorithmEdge,
		AlgorithmHybrid,
		AlgorithmAverageDither,
	}
}

// IsValidAlgorithm checks if the given algorithm name is valid.
func IsValidAlgorithm(alg Algorithm) bool {
	return slices.Contains(ValidAlgorithms(), alg)
}

// ParseAlgorithm accepts an algorithm name or its label, ignoring case
// ("kmeans", "K-Means Clustering" and "k-means clustering" are equivalent).
func ParseAlgorithm(s string) (Algorithm, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, alg := range ValidAlgorithms() {
		if needle == string(alg) || needle == strings.ToLower(alg.Label()) {
			return alg, nil
		}
	}
	return "", fmt.Errorf("unknown algorithm: %s (valid algorithms: %v)", s, ValidAlgorithms())
}

// Label returns the human-readable name.
func (a Algorithm) Label() string {
	if info, ok := algorithmInfo[a]; ok {
		return info.label
	}
	return string(a)
}

// Description returns a one-line summary of the algorithm.
func (a Algorithm) Description() string {
	return algorithmInfo[a].description
}

func (a Algorithm) String() string {
	return string(a)
}
