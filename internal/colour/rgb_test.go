package colour

import (
	"image/color"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		input   string
		want    RGB
		wantErr bool
	}{
		{"#ffffff", RGB{R: 1, G: 1, B: 1}, false},
		{"ff0000", RGB{R: 1}, false},
		{"#0f0", RGB{G: 1}, false},
		{"#000000", Black, false},
		{"purple", Black, true},
		{"", Black, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseHex(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHex() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseHex() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHexRoundTrip(t *testing.T) {
	for _, hex := range []string{"#000000", "#7f7f7f", "#800000", "#1a2b3c", "#ffffff"} {
		c, err := ParseHex(hex)
		if err != nil {
			t.Fatalf("ParseHex(%q) error = %v", hex, err)
		}
		if got := c.Hex(); got != hex {
			t.Errorf("ParseHex(%q).Hex() = %q", hex, got)
		}
	}
}

func TestFromColorAlpha(t *testing.T) {
	tests := []struct {
		name      string
		input     color.Color
		want      RGB
		wantAlpha float64
	}{
		{"opaque", color.RGBA{R: 255, A: 255}, RGB{R: 1}, 1},
		{"transparent", color.RGBA{}, Black, 0},
		{"premultiplied half", color.RGBA{B: 128, A: 128}, RGB{B: 1}, float64(0x8080) / 0xffff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, alpha := FromColorAlpha(tt.input)
			if WeightedSquared(got, tt.want) > 1e-6 {
				t.Errorf("FromColorAlpha() colour = %v, want %v", got, tt.want)
			}
			if alpha != tt.wantAlpha {
				t.Errorf("FromColorAlpha() alpha = %v, want %v", alpha, tt.wantAlpha)
			}
		})
	}
}

func TestClampAndNRGBA(t *testing.T) {
	c := RGB{R: 1.4, G: -0.2, B: 0.5}
	if got, want := c.Clamp(), (RGB{R: 1, B: 0.5}); got != want {
		t.Errorf("Clamp() = %v, want %v", got, want)
	}
	if got, want := c.NRGBA(), (color.NRGBA{R: 255, B: 128, A: 255}); got != want {
		t.Errorf("NRGBA() = %v, want %v", got, want)
	}
}

func TestBlendToward(t *testing.T) {
	got := RGB{R: 1, G: 0.5, B: 0}.BlendToward(0.5, 0.5)
	if want := (RGB{R: 0.75, G: 0.5, B: 0.25}); got != want {
		t.Errorf("BlendToward() = %v, want %v", got, want)
	}
}

func TestAverage(t *testing.T) {
	if got := Average(nil); got != Black {
		t.Errorf("Average(nil) = %v, want black", got)
	}
	got := Average([]RGB{{R: 1}, {G: 1}, {B: 1}, {R: 1, G: 1, B: 1}})
	if want := (RGB{R: 0.5, G: 0.5, B: 0.5}); got != want {
		t.Errorf("Average() = %v, want %v", got, want)
	}
}
