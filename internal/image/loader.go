// Package image loads source images and palette textures from disk.
package image

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "golang.org/x/image/webp" // Register WebP format
)

// DefaultMaxPixels bounds the decoded size of a single image.
const DefaultMaxPixels = 1 << 26

// ErrTooManyPixels is returned for images whose header declares more than the
// loader's pixel limit.
var ErrTooManyPixels = errors.New("image exceeds pixel limit")

// Loader decodes the image stored at a path.
type Loader interface {
	Load(path string) (image.Image, error)
}

// FileLoader decodes JPEG, PNG, GIF and WebP files from the local filesystem.
type FileLoader struct {
	// MaxPixels rejects images larger than width*height before decoding;
	// zero means DefaultMaxPixels.
	MaxPixels int
}

// NewFileLoader creates a FileLoader with the default pixel limit.
func NewFileLoader() *FileLoader {
	return &FileLoader{MaxPixels: DefaultMaxPixels}
}

// Load decodes the image at path. The header is checked against MaxPixels
// first so an oversized file is rejected without allocating its raster.
func (l *FileLoader) Load(path string) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("image path cannot be empty")
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("image file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat image file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	cfg, format, err := image.DecodeConfig(file)
	if err != nil {
		return nil, fmt.Errorf("unsupported or invalid image %s: %w", path, err)
	}
	limit := l.MaxPixels
	if limit <= 0 {
		limit = DefaultMaxPixels
	}
	if cfg.Width*cfg.Height > limit {
		return nil, fmt.Errorf("%w: %s is %dx%d", ErrTooManyPixels, path, cfg.Width, cfg.Height)
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind image file: %w", err)
	}
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s image %s: %w", format, path, err)
	}
	return img, nil
}

// SupportedImageExtensions returns the file extensions the loader accepts.
func SupportedImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
}

// IsImageFile reports whether path has a supported extension.
func IsImageFile(path string) bool {
	return slices.Contains(SupportedImageExtensions(), strings.ToLower(filepath.Ext(path)))
}

// TextureFile is a texture found in a palette directory. ID is the file name
// without its extension and doubles as the block id.
type TextureFile struct {
	ID   string
	Path string
}

// TextureID returns the block id for a texture path.
func TextureID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ScanTextures lists the image files directly inside dir in file name order.
// Symlinks are followed; subdirectories and unreadable entries are ignored.
// A directory without images yields an empty list.
func ScanTextures(dir string) ([]TextureFile, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var textures []TextureFile
	for _, entry := range entries {
		if !IsImageFile(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			continue
		}
		textures = append(textures, TextureFile{ID: TextureID(path), Path: path})
	}
	return textures, nil
}
