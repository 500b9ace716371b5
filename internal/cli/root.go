// Package cli provides the command-line interface for blockify.
package cli

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/blockify/internal/config"
	"github.com/jmylchreest/blockify/internal/version"
)

// app carries the state shared by every command of one invocation.
type app struct {
	verbose bool
	quiet   bool

	config config.Config
	logger hclog.Logger
}

// NewRootCmd builds the blockify command tree. Each call returns an
// independent tree, so tests can execute commands side by side.
func NewRootCmd() *cobra.Command {
	a := &app{logger: hclog.NewNullLogger()}

	root := &cobra.Command{
		Use:   "blockify",
		Short: "Convert images into grids of textured blocks",
		Long: `Blockify divides an image into a grid of cells and replaces each cell with the
closest block from a palette of textures.

Textures are loaded from a directory of images whose file names become block
ids. Seven algorithms trade speed for detail, from plain cell averages to
edge-aware clustering with error diffusion.`,
		Version:      version.Short(),
		SilenceUsage: true,

		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "suppress non-error output")
	root.MarkFlagsMutuallyExclusive("verbose", "quiet")

	root.SetVersionTemplate(version.String() + "\n")

	root.AddCommand(
		newConvertCmd(a),
		newPaletteCmd(a),
		newAlgorithmsCmd(),
		newVersionCmd(),
	)
	return root
}

// init resolves environment configuration and builds the logger.
func (a *app) init(cmd *cobra.Command) error {
	level := hclog.Info
	switch {
	case a.verbose:
		level = hclog.Debug
	case a.quiet:
		level = hclog.Error
	}
	a.logger = hclog.New(&hclog.LoggerOptions{
		Name:   "blockify",
		Output: cmd.ErrOrStderr(),
		Level:  level,
	})

	cfg, err := config.NewBuilder().WithEnvConfig().Build()
	if err != nil {
		return fmt.Errorf("invalid environment: %w", err)
	}
	a.config = cfg
	a.logger.Debug("configuration resolved",
		"textures", cfg.TexturesDir, "settings", cfg.SettingsPath, "algorithm", cfg.Algorithm)
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
