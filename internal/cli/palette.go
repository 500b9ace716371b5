package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/blockify/internal/colour"
	"github.com/jmylchreest/blockify/internal/palette"
)

func newPaletteCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "palette",
		Short: "Inspect and tune the block palette",
		Long: `Inspect and tune the block palette.

The palette is every texture in the textures directory. Per-block settings
(enabled flag, weight, display name and matching colour) are stored in the
settings file and applied whenever the palette is loaded.`,
	}

	cmd.AddCommand(
		newPaletteListCmd(a),
		newPaletteSetCmd(a),
		newPaletteExportCmd(a),
	)
	return cmd
}

func newPaletteListCmd(a *app) *cobra.Command {
	var (
		flags       paletteFlags
		category    string
		enabledOnly bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the blocks in the palette",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.loadPalette(cmd.Context(), &flags)
			if err != nil {
				return err
			}

			snap := store.Snapshot()
			if category != "" && !slices.Contains(snap.Categories(), category) {
				return fmt.Errorf("unknown category %q (available: %s)", category, strings.Join(snap.Categories(), ", "))
			}

			table := NewTable("ID", "NAME", "CATEGORY", "COLOUR", "WEIGHT", "ENABLED")
			table.AlignRight(4)
			for _, e := range snap.All() {
				if category != "" && e.Category != category {
					continue
				}
				if enabledOnly && !e.Enabled {
					continue
				}
				table.AddRow(e.ID, e.Name, e.Category, colour.Swatch(e.Color, 4),
					strconv.FormatFloat(e.Weight, 'g', -1, 64), strconv.FormatBool(e.Enabled))
			}

			if table.Len() == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No blocks found.")
				return nil
			}
			_, err = table.WriteTo(cmd.OutOrStdout())
			return err
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&category, "category", "", "only list blocks in this category")
	cmd.Flags().BoolVar(&enabledOnly, "enabled", false, "only list enabled blocks")
	return cmd
}

func newPaletteSetCmd(a *app) *cobra.Command {
	var (
		flags   paletteFlags
		enabled bool
		weight  float64
		name    string
		hex     string
	)

	cmd := &cobra.Command{
		Use:   "set <id>",
		Short: "Change the settings of one block",
		Long: `Change the settings of one block and save them to the settings file.

An empty --name restores the name derived from the texture file name.

Examples:
  blockify palette set --settings blocks.json glass --enabled=false
  blockify palette set --settings blocks.json stone --weight 8 --color "#7f7f7f"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			path := a.settingsPath(&flags)
			if path == "" {
				return errors.New("a settings file is required (--settings or $BLOCKIFY_SETTINGS)")
			}

			var u palette.Update
			changed := false
			if cmd.Flags().Changed("weight") {
				u.Weight = &weight
				changed = true
			}
			if cmd.Flags().Changed("name") {
				u.Name = &name
				changed = true
			}
			if cmd.Flags().Changed("color") {
				c, err := colour.ParseHex(hex)
				if err != nil {
					return err
				}
				u.Color = &c
				changed = true
			}
			if !changed && !cmd.Flags().Changed("enabled") {
				return errors.New("nothing to change: use --enabled, --weight, --name or --color")
			}

			store, err := a.loadPalette(cmd.Context(), &flags)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("enabled") {
				if err := store.SetEnabled(id, enabled); err != nil {
					return err
				}
			}
			if changed {
				if err := store.Update(id, u); err != nil {
					return err
				}
			}

			if err := palette.WriteOverrides(path, store.Overrides()); err != nil {
				return err
			}
			e, _ := store.Snapshot().Get(id)
			a.logger.Info("block updated", "id", id, "path", path)
			if !a.quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: enabled=%t weight=%g colour=%s\n",
					e, e.Enabled, e.Weight, e.Color.Hex())
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&enabled, "enabled", true, "include the block in conversions")
	cmd.Flags().Float64Var(&weight, "weight", palette.DefaultWeight, "selection priority when --variety limits block types")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&hex, "color", "", "matching colour as #rrggbb")
	return cmd
}

func newPaletteExportCmd(a *app) *cobra.Command {
	var (
		flags  paletteFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the settings of every block",
		Long: `Export the settings of every block as JSON.

The output can be used as a settings file. Without --output it is printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.loadPalette(cmd.Context(), &flags)
			if err != nil {
				return err
			}

			overrides := store.Overrides()
			if output != "" {
				if err := palette.WriteOverrides(output, overrides); err != nil {
					return err
				}
				a.logger.Info("palette settings exported", "path", output, "entries", len(overrides))
				return nil
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(overrides)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file, .xz or .gz compressed by extension")
	return cmd
}
