package colour

// Classification thresholds shared by the metric, the dithering pass and k-means.
const (
	NearWhiteBrightness = 0.85
	NearWhiteSpread     = 0.1
	NearBlackBrightness = 0.25
	LightBrightness     = 0.7

	// BrightChannel is the per-channel threshold for a "white" pixel or buffered cell.
	BrightChannel = 0.85

	tintRatio = 1.2
)

// IsNearWhite reports whether c is bright and nearly unsaturated.
func IsNearWhite(c RGB) bool {
	return c.Brightness() > NearWhiteBrightness && c.Spread() < NearWhiteSpread
}

// IsNearBlack reports whether c is dark.
func IsNearBlack(c RGB) bool {
	return c.Brightness() < NearBlackBrightness
}

// IsLight reports whether c is light enough to stand in for an off-white.
func IsLight(c RGB) bool {
	return c.Brightness() > LightBrightness
}

// HasBlueOrPinkTint reports whether c leans blue (blue dominates red and green)
// or pink/purple (red and blue both dominate green) by more than 20%.
func HasBlueOrPinkTint(c RGB) bool {
	blue := c.B > c.R*tintRatio && c.B > c.G*tintRatio
	pink := c.R > c.G*tintRatio && c.B > c.G*tintRatio
	return blue || pink
}

// IsBright reports whether every channel exceeds BrightChannel.
func IsBright(c RGB) bool {
	return c.allAbove(BrightChannel)
}
