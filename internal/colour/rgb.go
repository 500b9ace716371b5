// Package colour provides the colour model, distance metrics and dominant-colour
// extraction used when matching image regions against a block palette.
package colour

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is a colour with each channel in the range [0, 1].
type RGB struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// Black is the zero colour, returned for empty regions and sample sets.
var Black = RGB{}

// FromColor converts any color.Color to RGB using straight (non-premultiplied) channels.
func FromColor(c color.Color) RGB {
	rgb, _ := FromColorAlpha(c)
	return rgb
}

// FromColorAlpha converts a color.Color to RGB and returns its opacity in [0, 1].
// Fully transparent colours convert to Black.
func FromColorAlpha(c color.Color) (RGB, float64) {
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	if n.A == 0 {
		return Black, 0
	}
	return RGB{
		R: float64(n.R) / 0xffff,
		G: float64(n.G) / 0xffff,
		B: float64(n.B) / 0xffff,
	}, float64(n.A) / 0xffff
}

// RGBA implements color.Color so an RGB can be drawn directly.
func (c RGB) RGBA() (r, g, b, a uint32) {
	cc := c.Clamp()
	return uint32(cc.R*0xffff + 0.5), uint32(cc.G*0xffff + 0.5), uint32(cc.B*0xffff + 0.5), 0xffff
}

// NRGBA returns the 8-bit representation of the colour.
func (c RGB) NRGBA() color.NRGBA {
	cc := c.Clamp()
	return color.NRGBA{
		R: uint8(math.Round(cc.R * 255)),
		G: uint8(math.Round(cc.G * 255)),
		B: uint8(math.Round(cc.B * 255)),
		A: 255,
	}
}

// Hex returns the colour as a hex string (e.g., "#1a2b3c").
func (c RGB) Hex() string {
	n := c.NRGBA()
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

// String returns the colour in the format "rgb(r, g, b)" with 8-bit channels.
func (c RGB) String() string {
	n := c.NRGBA()
	return fmt.Sprintf("rgb(%d, %d, %d)", n.R, n.G, n.B)
}

// ParseHex parses "#rrggbb" or "#rgb" into an RGB.
func ParseHex(s string) (RGB, error) {
	if len(s) > 0 && s[0] != '#' {
		s = "#" + s
	}
	col, err := colorful.Hex(s)
	if err != nil {
		return Black, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	// Snap to exact 8-bit steps so "#ffffff" parses to 1.0.
	return RGB{
		R: math.Round(col.R*255) / 255,
		G: math.Round(col.G*255) / 255,
		B: math.Round(col.B*255) / 255,
	}, nil
}

// Clamp returns the colour with every channel limited to [0, 1].
func (c RGB) Clamp() RGB {
	return RGB{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B)}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Add returns the channel-wise sum.
func (c RGB) Add(o RGB) RGB {
	return RGB{R: c.R + o.R, G: c.G + o.G, B: c.B + o.B}
}

// Sub returns the channel-wise difference c - o.
func (c RGB) Sub(o RGB) RGB {
	return RGB{R: c.R - o.R, G: c.G - o.G, B: c.B - o.B}
}

// Scale multiplies every channel by f.
func (c RGB) Scale(f float64) RGB {
	return RGB{R: c.R * f, G: c.G * f, B: c.B * f}
}

// Brightness returns the perceptual brightness 0.299r + 0.587g + 0.114b.
func (c RGB) Brightness() float64 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

// ChannelMean returns (r + g + b) / 3.
func (c RGB) ChannelMean() float64 {
	return (c.R + c.G + c.B) / 3
}

// Spread returns the difference between the largest and smallest channel.
func (c RGB) Spread() float64 {
	return math.Max(c.R, math.Max(c.G, c.B)) - math.Min(c.R, math.Min(c.G, c.B))
}

// Div divides every channel by d.
func (c RGB) Div(d float64) RGB {
	return RGB{R: c.R / d, G: c.G / d, B: c.B / d}
}

// BlendToward moves every channel a fraction f of the way toward v.
func (c RGB) BlendToward(v, f float64) RGB {
	return RGB{
		R: c.R*(1-f) + v*f,
		G: c.G*(1-f) + v*f,
		B: c.B*(1-f) + v*f,
	}
}

// allAbove reports whether every channel is strictly greater than t.
func (c RGB) allAbove(t float64) bool {
	return c.R > t && c.G > t && c.B > t
}

// Average returns the arithmetic mean of the colours, or Black for an empty slice.
func Average(colours []RGB) RGB {
	if len(colours) == 0 {
		return Black
	}
	var sum RGB
	for _, c := range colours {
		sum = sum.Add(c)
	}
	return sum.Div(float64(len(colours)))
}
