package colour

import "sort"

// MedianExtractor picks the sample with the median perceptual brightness.
// It resists a few outlier pixels without the cost of clustering.
type MedianExtractor struct{}

// Dominant returns the median-brightness sample, or Black for no samples.
// The input slice is not reordered.
func (MedianExtractor) Dominant(samples []RGB) RGB {
	if len(samples) == 0 {
		return Black
	}
	sorted := make([]RGB, len(samples))
	copy(sorted, samples)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Brightness() < sorted[j].Brightness()
	})
	return sorted[len(sorted)/2]
}
