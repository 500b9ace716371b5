package image

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string, c color.Color) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestFileLoaderLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stone.png")
	writePNG(t, path, color.RGBA{R: 128, G: 128, B: 128, A: 255})

	img, err := NewFileLoader().Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := img.Bounds().Dx(); got != 2 {
		t.Errorf("Load() width = %d, want 2", got)
	}

	if _, err := NewFileLoader().Load(""); err == nil {
		t.Error("Load(\"\") expected error")
	}
	if _, err := NewFileLoader().Load(dir); err == nil {
		t.Error("Load(dir) expected error")
	}
	if _, err := NewFileLoader().Load(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("Load(missing) expected error")
	}
}

func TestFileLoaderPixelLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "large.png")
	writePNG(t, path, color.White)

	l := &FileLoader{MaxPixels: 3}
	if _, err := l.Load(path); !errors.Is(err, ErrTooManyPixels) {
		t.Errorf("Load() error = %v, want ErrTooManyPixels", err)
	}
	l.MaxPixels = 4
	if _, err := l.Load(path); err != nil {
		t.Errorf("Load() error = %v at the limit", err)
	}
}

func TestFileLoaderRejectsNonImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileLoader().Load(path); err == nil {
		t.Error("Load() succeeded for a file that is not an image")
	}
}

func TestScanTextures(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "wool_white.png"), color.White)
	writePNG(t, filepath.Join(dir, "dirt.PNG"), color.Black)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0o755); err != nil {
		t.Fatal(err)
	}

	files, err := ScanTextures(dir)
	if err != nil {
		t.Fatalf("ScanTextures() error = %v", err)
	}
	want := []TextureFile{
		{ID: "dirt", Path: filepath.Join(dir, "dirt.PNG")},
		{ID: "wool_white", Path: filepath.Join(dir, "wool_white.png")},
	}
	if len(files) != len(want) {
		t.Fatalf("ScanTextures() = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("ScanTextures()[%d] = %v, want %v", i, files[i], want[i])
		}
	}
}

func TestScanTexturesEmpty(t *testing.T) {
	files, err := ScanTextures(t.TempDir())
	if err != nil {
		t.Fatalf("ScanTextures() error = %v", err)
	}
	if len(files) != 0 {
		t.Errorf("ScanTextures() = %v, want empty", files)
	}
}

func TestScanTexturesInvalid(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.png")
	writePNG(t, file, color.White)

	if _, err := ScanTextures(file); err == nil {
		t.Error("expected error for file path")
	}
	if _, err := ScanTextures(filepath.Join(dir, "missing")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestTextureID(t *testing.T) {
	tests := map[string]string{
		"/a/b/oak_planks.png": "oak_planks",
		"stone.webp":          "stone",
		"noext":               "noext",
	}
	for in, want := range tests {
		if got := TextureID(in); got != want {
			t.Errorf("TextureID(%q) = %q, want %q", in, got, want)
		}
	}
}
