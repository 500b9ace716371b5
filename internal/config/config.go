// Package config resolves the defaults shared by blockify commands from the
// environment. Command-line flags always take precedence over these values.
package config

import (
	"os"
	"strings"

	"github.com/jmylchreest/blockify/internal/quantize"
)

// Environment variables read by WithEnvConfig.
const (
	EnvTextures  = "BLOCKIFY_TEXTURES"
	EnvSettings  = "BLOCKIFY_SETTINGS"
	EnvAlgorithm = "BLOCKIFY_ALGORITHM"
)

// Config holds the resolved defaults.
type Config struct {
	// TexturesDir is the directory scanned for block textures.
	TexturesDir string
	// SettingsPath is the palette overrides file. Empty means none.
	SettingsPath string
	// Algorithm is the default quantization algorithm.
	Algorithm quantize.Algorithm
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		TexturesDir: "textures",
		Algorithm:   quantize.DefaultOptions().Algorithm,
	}
}

// Builder provides a fluent API for resolving a Config.
type Builder struct {
	config Config
	useEnv bool
	lookup func(string) (string, bool)
}

// NewBuilder creates a new Builder starting from Default.
func NewBuilder() *Builder {
	return &Builder{
		config: Default(),
		lookup: os.LookupEnv,
	}
}

// WithEnvConfig loads configuration from environment variables.
// Reads BLOCKIFY_TEXTURES, BLOCKIFY_SETTINGS and BLOCKIFY_ALGORITHM.
func (b *Builder) WithEnvConfig() *Builder {
	b.useEnv = true
	return b
}

// WithLookup replaces the environment lookup (useful for testing).
func (b *Builder) WithLookup(lookup func(string) (string, bool)) *Builder {
	if lookup != nil {
		b.lookup = lookup
	}
	return b
}

// Build resolves the configuration. An unknown BLOCKIFY_ALGORITHM is
// reported as an error rather than silently replaced by the default.
func (b *Builder) Build() (Config, error) {
	cfg := b.config
	if !b.useEnv {
		return cfg, nil
	}

	if v := b.env(EnvTextures); v != "" {
		cfg.TexturesDir = v
	}
	if v := b.env(EnvSettings); v != "" {
		cfg.SettingsPath = v
	}
	if v := b.env(EnvAlgorithm); v != "" {
		alg, err := quantize.ParseAlgorithm(v)
		if err != nil {
			return b.config, err
		}
		cfg.Algorithm = alg
	}
	return cfg, nil
}

func (b *Builder) env(key string) string {
	v, _ := b.lookup(key)
	return strings.TrimSpace(v)
}
