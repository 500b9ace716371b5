package colour

import (
	"math"
	"testing"
)

func TestDistanceIdentity(t *testing.T) {
	colours := []RGB{
		{},
		{R: 1, G: 1, B: 1},
		{R: 0.2, G: 0.4, B: 0.6},
		{R: 0.95, G: 0.95, B: 0.97},
	}

	for _, c := range colours {
		for _, m := range ValidMetrics() {
			if got := m.Distance(c, c); got > 1e-9 {
				t.Errorf("%s.Distance(%v, %v) = %v, want 0", m, c, c, got)
			}
		}
	}
}

func TestDistanceSymmetric(t *testing.T) {
	pairs := [][2]RGB{
		{{R: 1}, {B: 1}},
		{{R: 0.1, G: 0.5, B: 0.9}, {R: 0.8, G: 0.3, B: 0.2}},
		{{R: 0.5, G: 0.5, B: 0.5}, {R: 0.51, G: 0.49, B: 0.5}},
	}

	for _, p := range pairs {
		ab := Distance(p[0], p[1])
		ba := Distance(p[1], p[0])
		if math.Abs(ab-ba) > 1e-12 {
			t.Errorf("Distance not symmetric: %v vs %v", ab, ba)
		}
		if ab < 0 {
			t.Errorf("Distance(%v, %v) = %v, want >= 0", p[0], p[1], ab)
		}
	}
}

func TestDistanceWeightsGreen(t *testing.T) {
	black := RGB{}
	red := Distance(black, RGB{R: 1})
	green := Distance(black, RGB{G: 1})
	blue := Distance(black, RGB{B: 1})

	if !(green > red && red > blue) {
		t.Errorf("expected green > red > blue, got green=%v red=%v blue=%v", green, red, blue)
	}
	if want := math.Sqrt(0.59); math.Abs(green-want) > 1e-9 {
		t.Errorf("Distance(black, green) = %v, want %v", green, want)
	}
}

func TestPerceptualDistancePrefersPaleGrayForNearWhite(t *testing.T) {
	src := RGB{R: 0.95, G: 0.95, B: 0.97}
	paleGray := RGB{R: 0.88, G: 0.88, B: 0.88}
	lightBlue := RGB{R: 0.6, G: 0.8, B: 1.0}

	gray := PerceptualDistance(src, paleGray)
	blue := PerceptualDistance(src, lightBlue)

	if gray >= blue {
		t.Errorf("pale gray distance %v should be below blue distance %v", gray, blue)
	}
	if blue != PerceptualPenalty {
		t.Errorf("PerceptualDistance(near-white, blue) = %v, want penalty %v", blue, PerceptualPenalty)
	}
}

func TestPerceptualDistanceNearBlack(t *testing.T) {
	src := RGB{R: 0.1, G: 0.1, B: 0.12}

	if got := PerceptualDistance(src, RGB{R: 0.5, G: 0.5, B: 0.5}); got != PerceptualPenalty {
		t.Errorf("near-black vs mid gray = %v, want %v", got, PerceptualPenalty)
	}

	want := math.Sqrt(0.1*0.1*0.4 + 0.1*0.1*0.5 + 0.12*0.12*0.1)
	if got := PerceptualDistance(src, RGB{}); math.Abs(got-want) > 1e-12 {
		t.Errorf("near-black vs black = %v, want %v", got, want)
	}
}

func TestPerceptualDistanceFallsBackForMidtones(t *testing.T) {
	a := RGB{R: 0.5, G: 0.3, B: 0.4}
	b := RGB{R: 0.2, G: 0.6, B: 0.4}
	if got, want := PerceptualDistance(a, b), Distance(a, b); got != want {
		t.Errorf("PerceptualDistance = %v, want Distance %v", got, want)
	}
}

func TestParseMetric(t *testing.T) {
	tests := []struct {
		input   string
		want    Metric
		wantErr bool
	}{
		{"weighted", MetricWeighted, false},
		{"Perceptual", MetricPerceptual, false},
		{" lab ", MetricLab, false},
		{"ciede2000", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMetric(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMetric(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMetric(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestClassifiers(t *testing.T) {
	tests := []struct {
		name      string
		c         RGB
		nearWhite bool
		nearBlack bool
		light     bool
		tinted    bool
	}{
		{"snow", RGB{R: 0.95, G: 0.95, B: 0.97}, true, false, true, false},
		{"cream", RGB{R: 0.98, G: 0.95, B: 0.9}, true, false, true, false},
		{"sky", RGB{R: 0.5, G: 0.7, B: 0.95}, false, false, false, true},
		{"pink", RGB{R: 0.95, G: 0.6, B: 0.8}, false, false, true, true},
		{"coal", RGB{R: 0.1, G: 0.1, B: 0.1}, false, true, false, false},
		{"grass", RGB{R: 0.3, G: 0.6, B: 0.2}, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNearWhite(tt.c); got != tt.nearWhite {
				t.Errorf("IsNearWhite() = %v, want %v", got, tt.nearWhite)
			}
			if got := IsNearBlack(tt.c); got != tt.nearBlack {
				t.Errorf("IsNearBlack() = %v, want %v", got, tt.nearBlack)
			}
			if got := IsLight(tt.c); got != tt.light {
				t.Errorf("IsLight() = %v, want %v", got, tt.light)
			}
			if got := HasBlueOrPinkTint(tt.c); got != tt.tinted {
				t.Errorf("HasBlueOrPinkTint() = %v, want %v", got, tt.tinted)
			}
		})
	}
}
