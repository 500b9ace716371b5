package image

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmylchreest/blockify/internal/compression"
	"github.com/jmylchreest/blockify/internal/version"
)

const (
	// UserAgentName is the application name used in the User-Agent header.
	UserAgentName = "blockify"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// MaxDownloadSize caps the size of a downloaded image.
	MaxDownloadSize = 64 << 20
)

// ErrDownloadTooLarge is returned when a remote image exceeds MaxDownloadSize.
var ErrDownloadTooLarge = errors.New("remote image exceeds size limit")

// CacheOptions configures remote image caching.
type CacheOptions struct {
	// CacheDir is where downloads are kept. Empty means DefaultCacheDir.
	CacheDir string
	// Refresh downloads the image again even when a cached copy exists.
	Refresh bool
	// Timeout for the request; zero uses DefaultTimeout.
	Timeout time.Duration
	// Client overrides the HTTP client (useful for testing).
	Client *http.Client
}

// IsRemote reports whether src is an http or https URL.
func IsRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// DefaultCacheDir returns the user cache directory for downloaded images.
func DefaultCacheDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine cache directory: %w", err)
		}
		return filepath.Join(home, ".cache", "blockify", "images"), nil
	}
	return filepath.Join(cacheDir, "blockify", "images"), nil
}

// cacheFilename derives a stable file name from a URL: a hash of the URL plus
// the extension of its path, or .img when it has no image extension.
func cacheFilename(url string) string {
	hash := sha256.Sum256([]byte(url))

	p := url
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	ext := strings.ToLower(path.Ext(p))
	if !IsImageFile("x" + ext) {
		ext = ".img"
	}
	return fmt.Sprintf("%x%s", hash[:16], ext)
}

// Resolve returns a local path for src, downloading it into the cache when it
// is a URL. Local paths are returned unchanged.
func Resolve(ctx context.Context, src string, opts CacheOptions) (string, error) {
	if !IsRemote(src) {
		return src, nil
	}
	return DownloadAndCache(ctx, src, opts)
}

// DownloadAndCache downloads a remote image and saves it to the cache
// directory, reusing an earlier download unless opts.Refresh is set.
func DownloadAndCache(ctx context.Context, url string, opts CacheOptions) (string, error) {
	if !IsRemote(url) {
		return "", fmt.Errorf("invalid URL: must start with http:// or https://")
	}

	cacheDir := opts.CacheDir
	if cacheDir == "" {
		dir, err := DefaultCacheDir()
		if err != nil {
			return "", err
		}
		cacheDir = dir
	}

	cachedPath := filepath.Join(cacheDir, cacheFilename(url))
	if !opts.Refresh {
		if _, err := os.Stat(cachedPath); err == nil {
			return cachedPath, nil
		}
	}

	data, err := Fetch(ctx, url, opts)
	if err != nil {
		return "", fmt.Errorf("failed to download image: %w", err)
	}
	if err := compression.WriteFile(cachedPath, data); err != nil {
		return "", fmt.Errorf("failed to cache image: %w", err)
	}
	return cachedPath, nil
}

// Fetch retrieves url with a User-Agent header, failing on non-200 responses
// and on bodies larger than MaxDownloadSize.
func Fetch(ctx context.Context, url string, opts CacheOptions) ([]byte, error) {
	client := opts.Client
	if client == nil {
		timeout := opts.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgentName+"/"+version.Short())

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(compression.NewLimitedReader(resp.Body, MaxDownloadSize+1))
	if errors.Is(err, compression.ErrSizeLimit) || len(data) > MaxDownloadSize {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrDownloadTooLarge, MaxDownloadSize)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return data, nil
}
