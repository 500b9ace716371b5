// Package compression reads and writes optionally compressed data files.
// The codec is chosen from the file extension: ".xz" and ".gz" are
// compressed, anything else is stored as-is.
package compression

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
)

const (
	// MaxDecompressedSize caps how many bytes ReadFile will inflate.
	MaxDecompressedSize = 64 * 1024 * 1024

	// FileMode is the permission WriteFile gives the files it creates.
	FileMode os.FileMode = 0o644
)

// Codec identifies how a file is compressed.
type Codec string

const (
	CodecNone Codec = "none"
	CodecXz   Codec = "xz"
	CodecGzip Codec = "gzip"
)

// CodecFor returns the codec implied by the extension of path.
func CodecFor(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xz":
		return CodecXz
	case ".gz":
		return CodecGzip
	default:
		return CodecNone
	}
}

// ReadFile reads path and decompresses it according to its extension.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path) // #nosec G304 - User-specified data path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Decode(CodecFor(path), data)
}

// Decode decompresses data with codec.
func Decode(codec Codec, data []byte) ([]byte, error) {
	var r io.Reader
	switch codec {
	case CodecNone:
		return data, nil
	case CodecXz:
		xzr, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		r = xzr
	case CodecGzip:
		gzr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzr.Close()
		r = gzr
	default:
		return nil, fmt.Errorf("unknown codec: %s", codec)
	}

	out, err := io.ReadAll(NewLimitedReader(r, MaxDecompressedSize))
	if err != nil {
		return nil, fmt.Errorf("failed to decompress %s data: %w", codec, err)
	}
	return out, nil
}

// Encode compresses data with codec.
func Encode(codec Codec, data []byte) ([]byte, error) {
	var buf bytes.Buffer
	var w io.WriteCloser
	switch codec {
	case CodecNone:
		return data, nil
	case CodecXz:
		xzw, err := xz.NewWriter(&buf)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz writer: %w", err)
		}
		w = xzw
	case CodecGzip:
		w = gzip.NewWriter(&buf)
	default:
		return nil, fmt.Errorf("unknown codec: %s", codec)
	}

	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("failed to compress %s data: %w", codec, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish %s stream: %w", codec, err)
	}
	return buf.Bytes(), nil
}

// WriteFile compresses data according to the extension of path and writes it
// atomically through a temporary file in the same directory. The result has
// mode FileMode.
func WriteFile(path string, data []byte) error {
	encoded, err := Encode(CodecFor(path), data)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil { // #nosec G301 - Output directory chosen by user
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()

	writeErr := tmp.Chmod(FileMode)
	if writeErr == nil {
		_, writeErr = tmp.Write(encoded)
	}
	closeErr := tmp.Close()
	if writeErr != nil || closeErr != nil {
		_ = os.Remove(tmpName)
		if writeErr != nil {
			return fmt.Errorf("failed to write %s: %w", path, writeErr)
		}
		return fmt.Errorf("failed to close %s: %w", path, closeErr)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
