package cli

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// runCLI executes a fresh command tree with args and returns its output.
func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

// clearEnv isolates a test from BLOCKIFY_* variables set in the caller's shell.
func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("BLOCKIFY_TEXTURES", "")
	t.Setenv("BLOCKIFY_SETTINGS", "")
	t.Setenv("BLOCKIFY_ALGORITHM", "")
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// fixtures creates a texture directory with red_wool and blue_wool, and an
// 8x8 source image whose left half is red and right half is blue.
func fixtures(t *testing.T) (textures, source string) {
	t.Helper()
	root := t.TempDir()
	textures = filepath.Join(root, "textures")
	if err := os.Mkdir(textures, 0o750); err != nil {
		t.Fatal(err)
	}
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	writePNG(t, filepath.Join(textures, "red_wool.png"), solid(4, 4, red))
	writePNG(t, filepath.Join(textures, "blue_wool.png"), solid(4, 4, blue))

	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if x < 4 {
				src.Set(x, y, red)
			} else {
				src.Set(x, y, blue)
			}
		}
	}
	source = filepath.Join(root, "source.png")
	writePNG(t, source, src)
	return textures, source
}
