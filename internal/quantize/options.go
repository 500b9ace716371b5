package quantize

import (
	"fmt"
	"slices"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/blockify/internal/colour"
)

const (
	// DefaultResolution is the default number of cells along the long edge.
	DefaultResolution = 100
	// MaxResolution bounds the grid so a result stays at most a million cells.
	MaxResolution = 1024
	// DefaultSensitivity is the default matching sensitivity.
	DefaultSensitivity = 0.5
	// DefaultMaxVariety is the default cap on distinct block types.
	DefaultMaxVariety = 50
)

// Options configures a single conversion.
type Options struct {
	// Resolution is the number of cells along the long edge of the source.
	Resolution int
	// Sensitivity in [0, 1] scales the reported match score.
	Sensitivity float64
	// MaxVariety caps the number of block types considered; 0 means no cap.
	MaxVariety int
	Algorithm  Algorithm
	// Metric is the colour distance used to rank candidates.
	Metric colour.Metric
	// Seed drives centroid initialisation for the clustering algorithms.
	Seed int64

	Logger hclog.Logger
}

// DefaultOptions returns the default conversion options.
func DefaultOptions() Options {
	return Options{
		Resolution:  DefaultResolution,
		Sensitivity: DefaultSensitivity,
		MaxVariety:  DefaultMaxVariety,
		Algorithm:   AlgorithmAverage,
		Metric:      colour.MetricWeighted,
	}
}

// Validate checks that the options are in range.
func (o Options) Validate() error {
	if o.Resolution <= 0 || o.Resolution > MaxResolution {
		return fmt.Errorf("resolution must be between 1 and %d, got %d", MaxResolution, o.Resolution)
	}
	if o.Sensitivity < 0 || o.Sensitivity > 1 {
		return fmt.Errorf("sensitivity must be between 0 and 1, got %v", o.Sensitivity)
	}
	if o.MaxVariety < 0 {
		return fmt.Errorf("max variety must not be negative, got %d", o.MaxVariety)
	}
	if !IsValidAlgorithm(o.Algorithm) {
		return fmt.Errorf("unknown algorithm: %s (valid algorithms: %v)", o.Algorithm, ValidAlgorithms())
	}
	if o.Metric != "" && !slices.Contains(colour.ValidMetrics(), o.Metric) {
		return fmt.Errorf("unknown metric: %s (valid metrics: %v)", o.Metric, colour.ValidMetrics())
	}
	return nil
}

func (o Options) logger() hclog.Logger {
	if o.Logger == nil {
		return hclog.NewNullLogger()
	}
	return o.Logger
}
