package quantize

import "testing"

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		in      string
		want    Algorithm
		wantErr bool
	}{
		{"average", AlgorithmAverage, false},
		{"Average Color", AlgorithmAverage, false},
		{"color-matching", AlgorithmColorMatching, false},
		{"Dithering", AlgorithmDithering, false},
		{"K-Means Clustering", AlgorithmKMeans, false},
		{"edge preservation", AlgorithmEdge, false},
		{"Full Hybrid", AlgorithmHybrid, false},
		{" hybrid ", AlgorithmHybrid, false},
		{"Average with Dithering", AlgorithmAverageDither, false},
		{"Hybrid Plus", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseAlgorithm(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAlgorithm(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAlgorithm(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEveryAlgorithmHasVariant(t *testing.T) {
	for _, alg := range ValidAlgorithms() {
		v, ok := variants[alg]
		if !ok || v.pick == nil {
			t.Errorf("algorithm %s has no variant", alg)
		}
		if alg.Label() == string(alg) || alg.Description() == "" {
			t.Errorf("algorithm %s is missing its label or description", alg)
		}
	}
	if len(variants) != len(ValidAlgorithms()) {
		t.Errorf("%d variants for %d algorithms", len(variants), len(ValidAlgorithms()))
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Options)
		wantErr bool
	}{
		{"defaults", func(*Options) {}, false},
		{"unset metric", func(o *Options) { o.Metric = "" }, false},
		{"zero sensitivity", func(o *Options) { o.Sensitivity = 0 }, false},
		{"full sensitivity", func(o *Options) { o.Sensitivity = 1 }, false},
		{"unlimited variety", func(o *Options) { o.MaxVariety = 0 }, false},
		{"negative resolution", func(o *Options) { o.Resolution = -4 }, true},
		{"zero resolution", func(o *Options) { o.Resolution = 0 }, true},
		{"largest resolution", func(o *Options) { o.Resolution = MaxResolution }, false},
		{"resolution above limit", func(o *Options) { o.Resolution = MaxResolution + 1 }, true},
		{"huge resolution", func(o *Options) { o.Resolution = 1_000_000 }, true},
		{"sensitivity above one", func(o *Options) { o.Sensitivity = 1.5 }, true},
		{"negative variety", func(o *Options) { o.MaxVariety = -1 }, true},
		{"empty algorithm", func(o *Options) { o.Algorithm = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(&opts)
			if err := opts.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
