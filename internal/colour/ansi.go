package colour

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// ANSI escape codes for terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

// DisableColourOutput can be used to disable colour output.
var DisableColourOutput = false

// ColourPreview returns a block of width spaces on a 24-bit background of c.
func ColourPreview(c RGB, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	n := c.NRGBA()
	bg := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, n.R, n.G, n.B, ansiSuffix)
	return bg + strings.Repeat(" ", width) + ansiReset
}

// SupportsANSIColours reports whether stdout is a terminal that should receive colour codes.
func SupportsANSIColours() bool {
	if DisableColourOutput || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd())) // #nosec G115 -- file descriptors fit in int
}

// Swatch returns a colour block followed by the hex code when colour output
// is supported, and just the hex code otherwise.
func Swatch(c RGB, width int) string {
	if !SupportsANSIColours() {
		return c.Hex()
	}
	return fmt.Sprintf("%s %s", ColourPreview(c, width), c.Hex())
}
