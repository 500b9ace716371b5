// Package seed derives the random seed used by the clustering strategies, so
// that converting the same image twice places the same blocks.
package seed

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// Mode determines how the seed is generated.
type Mode string

const (
	// ModeContent hashes the image pixels, so identical images share a seed.
	ModeContent Mode = "content"
	// ModeSource hashes where the image came from: its absolute path, or the
	// URL for remote images.
	ModeSource Mode = "source"
	// ModeManual uses a user-provided seed value.
	ModeManual Mode = "manual"
	// ModeRandom uses a different seed on every run.
	ModeRandom Mode = "random"
)

// contentGrid is the number of pixels hashed along each axis.
const contentGrid = 64

// Config holds configuration for seed generation.
type Config struct {
	Mode  Mode
	Value *int64 // required for ModeManual
}

// Calculate returns the seed for converting img, which was read from source.
func Calculate(img image.Image, source string, config Config) (int64, error) {
	switch config.Mode {
	case ModeContent, "":
		if img == nil {
			return 0, fmt.Errorf("content seed mode needs an image")
		}
		return ContentSeed(img), nil
	case ModeSource:
		if source == "" {
			return 0, fmt.Errorf("source seed mode needs an image path or URL")
		}
		return SourceSeed(source), nil
	case ModeManual:
		if config.Value == nil {
			return 0, fmt.Errorf("manual seed mode needs a seed value")
		}
		return *config.Value, nil
	case ModeRandom:
		return time.Now().UnixNano(), nil
	default:
		return 0, fmt.Errorf("unknown seed mode: %s", config.Mode)
	}
}

// ContentSeed hashes the dimensions of img and a fixed lattice of its
// non-premultiplied pixels. The lattice is placed at cell centres relative to
// the bounds, so the origin of img does not affect the result.
func ContentSeed(img image.Image) int64 {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	buf := make([]byte, 0, 8+contentGrid*contentGrid*4)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(w)) // #nosec G115 -- image dimensions are non-negative
	buf = binary.LittleEndian.AppendUint32(buf, uint32(h)) // #nosec G115 -- image dimensions are non-negative

	nx, ny := min(w, contentGrid), min(h, contentGrid)
	for j := range ny {
		y := b.Min.Y + (2*j+1)*h/(2*ny)
		for i := range nx {
			x := b.Min.X + (2*i+1)*w/(2*nx)
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			buf = append(buf, c.R, c.G, c.B, c.A)
		}
	}

	sum := sha256.Sum256(buf)
	return hashToSeed(sum[:])
}

// SourceSeed hashes a source location. Local paths are made absolute first;
// URLs are hashed as given.
func SourceSeed(source string) int64 {
	if !strings.Contains(source, "://") {
		if abs, err := filepath.Abs(source); err == nil {
			source = abs
		}
	}
	sum := sha256.Sum256([]byte(source))
	return hashToSeed(sum[:])
}

func hashToSeed(hash []byte) int64 {
	return int64(binary.LittleEndian.Uint64(hash[:8])) // #nosec G115 -- reinterpreting hash bits
}

// ValidModes returns the accepted seed modes.
func ValidModes() []Mode {
	return []Mode{ModeContent, ModeSource, ModeManual, ModeRandom}
}

// ParseMode converts a string to a Mode. "filepath" is accepted as an alias
// for ModeSource.
func ParseMode(s string) (Mode, error) {
	mode := Mode(strings.ToLower(strings.TrimSpace(s)))
	if mode == "filepath" {
		return ModeSource, nil
	}
	if slices.Contains(ValidModes(), mode) {
		return mode, nil
	}
	return "", fmt.Errorf("invalid seed mode: %s (valid: content, source, manual, random)", s)
}
