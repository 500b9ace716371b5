package colour

import (
	"fmt"
	"math/rand"
)

const (
	// mostlyWhiteFraction is the share of bright samples that marks a region as white.
	mostlyWhiteFraction = 0.7
	// whiteBalance pulls a mostly-white average toward its channel mean.
	whiteBalance = 0.7
	// centroidWhite and centroidBalance correct a near-white winning centroid.
	centroidWhite   = 0.8
	centroidBalance = 0.6
)

// KMeansExtractor finds the dominant colour of a sample set with Lloyd's algorithm.
type KMeansExtractor struct {
	k             int
	maxIterations int
	convergence   float64
	rng           *rand.Rand

	// whiteShortcut skips clustering for mostly-white sample sets and
	// returns their gray-balanced average instead.
	whiteShortcut bool
}

// NewKMeansExtractor creates a KMeansExtractor with k clusters.
// Centroids are seeded from rng, so a fixed seed gives reproducible output.
func NewKMeansExtractor(k int, rng *rand.Rand) (*KMeansExtractor, error) {
	if k < 1 {
		return nil, fmt.Errorf("cluster count must be at least 1, got %d", k)
	}
	if rng == nil {
		return nil, fmt.Errorf("random source cannot be nil")
	}
	return &KMeansExtractor{
		k:             k,
		maxIterations: 10,
		convergence:   1e-4,
		rng:           rng,
		whiteShortcut: true,
	}, nil
}

// Dominant returns the centroid of the largest cluster.
// With no samples it returns Black; with at most k samples it returns the first sample.
func (e *KMeansExtractor) Dominant(samples []RGB) RGB {
	if len(samples) == 0 {
		return Black
	}
	if len(samples) <= e.k {
		return samples[0]
	}

	mostlyWhite := isMostlyWhite(samples)
	if mostlyWhite && e.whiteShortcut {
		avg := Average(samples)
		return avg.BlendToward(avg.ChannelMean(), whiteBalance)
	}

	centroids := e.kmeans(samples)
	sizes := clusterSizes(samples, centroids)

	largest := 0
	for i, size := range sizes {
		if size > sizes[largest] {
			largest = i
		}
	}

	dominant := centroids[largest]
	if mostlyWhite && dominant.allAbove(centroidWhite) {
		dominant = dominant.BlendToward(dominant.ChannelMean(), centroidBalance)
	}
	return dominant
}

// isMostlyWhite reports whether at least 70% of samples have every channel above 0.85.
func isMostlyWhite(samples []RGB) bool {
	bright := 0
	for _, s := range samples {
		if IsBright(s) {
			bright++
		}
	}
	return float64(bright) >= float64(len(samples))*mostlyWhiteFraction
}

// kmeans runs Lloyd iterations until no centroid moves more than the convergence
// threshold (squared weighted distance) or the iteration limit is reached.
func (e *KMeansExtractor) kmeans(samples []RGB) []RGB {
	centroids := make([]RGB, e.k)
	for i := range centroids {
		centroids[i] = samples[e.rng.Intn(len(samples))]
	}

	for iter := 0; iter < e.maxIterations; iter++ {
		sums := make([]RGB, e.k)
		counts := make([]int, e.k)
		for _, s := range samples {
			nearest := findNearestCentroid(s, centroids)
			sums[nearest] = sums[nearest].Add(s)
			counts[nearest]++
		}

		changed := false
		for i := range centroids {
			// Empty clusters keep their previous centroid.
			if counts[i] == 0 {
				continue
			}
			next := sums[i].Div(float64(counts[i]))
			if WeightedSquared(next, centroids[i]) > e.convergence {
				centroids[i] = next
				changed = true
			}
		}

		if !changed {
			break
		}
	}

	return centroids
}

// findNearestCentroid returns the index of the closest centroid; ties keep the lowest index.
func findNearestCentroid(s RGB, centroids []RGB) int {
	nearest := 0
	minDist := WeightedSquared(s, centroids[0])
	for i := 1; i < len(centroids); i++ {
		if d := WeightedSquared(s, centroids[i]); d < minDist {
			minDist = d
			nearest = i
		}
	}
	return nearest
}

// clusterSizes counts the samples assigned to each centroid.
func clusterSizes(samples, centroids []RGB) []int {
	sizes := make([]int, len(centroids))
	for _, s := range samples {
		sizes[findNearestCentroid(s, centroids)]++
	}
	return sizes
}
