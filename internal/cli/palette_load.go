package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/blockify/internal/palette"
)

// paletteFlags locates the textures and settings a command works with.
type paletteFlags struct {
	textures string
	settings string
}

func (f *paletteFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.textures, "textures", "", "directory of block textures (default $BLOCKIFY_TEXTURES or ./textures)")
	cmd.Flags().StringVar(&f.settings, "settings", "", "palette settings file, .xz or .gz compressed by extension (default $BLOCKIFY_SETTINGS)")
}

// texturesDir returns the flag value, falling back to the environment.
func (a *app) texturesDir(f *paletteFlags) string {
	if f.textures != "" {
		return f.textures
	}
	return a.config.TexturesDir
}

func (a *app) settingsPath(f *paletteFlags) string {
	if f.settings != "" {
		return f.settings
	}
	return a.config.SettingsPath
}

// loadPalette loads the texture directory and applies the saved settings.
// A settings file that does not exist yet is treated as empty.
func (a *app) loadPalette(ctx context.Context, f *paletteFlags) (*palette.Store, error) {
	store := palette.NewBuilder().WithLogger(a.logger).Build()

	report, err := store.LoadDir(ctx, a.texturesDir(f))
	if err != nil {
		return nil, err
	}
	if len(report.Skipped) > 0 {
		a.logger.Warn("some textures could not be loaded", "skipped", len(report.Skipped))
	}

	path := a.settingsPath(f)
	if path == "" {
		return store, nil
	}

	overrides, err := palette.ReadOverrides(path)
	if errors.Is(err, fs.ErrNotExist) {
		a.logger.Debug("no palette settings yet", "path", path)
		return store, nil
	}
	if err != nil {
		return nil, err
	}

	applied, err := store.ApplyOverrides(overrides)
	if err != nil {
		return nil, fmt.Errorf("failed to apply palette settings %s: %w", path, err)
	}
	a.logger.Debug("palette settings applied", "path", path, "entries", applied)
	return store, nil
}
