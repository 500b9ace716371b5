package cli

import (
	"bytes"
	"cmp"
	"fmt"
	"image/png"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/blockify/internal/colour"
	"github.com/jmylchreest/blockify/internal/compression"
	"github.com/jmylchreest/blockify/internal/image"
	"github.com/jmylchreest/blockify/internal/quantize"
	"github.com/jmylchreest/blockify/internal/seed"
)

type convertOptions struct {
	palette paletteFlags

	resolution  int
	sensitivity float64
	variety     int
	algorithm   quantize.Algorithm
	metric      colour.Metric
	seedMode    seed.Mode
	seedValue   int64

	output    string
	gridJSON  string
	cellSize  int
	grid      bool
	gridColor string

	cacheDir string
	refresh  bool
}

func newConvertCmd(a *app) *cobra.Command {
	o := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert <image>",
		Short: "Convert an image into a grid of blocks",
		Long: `Convert an image into a grid of blocks chosen from the texture palette.

The long edge of the image is divided into --resolution cells and each cell is
matched against the enabled blocks using the selected algorithm. The result can
be rendered as a PNG preview and exported as a JSON grid of block ids.

Supported image formats: JPEG, PNG, GIF, WebP. The image may also be an http or
https URL; downloads are cached and reused.

Examples:
  # Print a block usage summary using the default algorithm
  blockify convert --textures ./blocks photo.jpg

  # Render a 64 block wide preview with grid lines
  blockify convert -r 64 --grid -o preview.png photo.jpg

  # Use k-means clustering with a fixed seed and export the grid
  blockify convert -a kmeans --seed-mode manual --seed-value 42 --grid-json grid.json.xz photo.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("seed-value") && !cmd.Flags().Changed("seed-mode") {
				o.seedMode = seed.ModeManual
			}
			return a.runConvert(cmd, o, args[0])
		},
	}

	defaults := quantize.DefaultOptions()
	o.palette.register(cmd)
	cmd.Flags().IntVarP(&o.resolution, "resolution", "r", defaults.Resolution, fmt.Sprintf("number of blocks along the long edge of the image (1-%d)", quantize.MaxResolution))
	cmd.Flags().Float64VarP(&o.sensitivity, "sensitivity", "s", defaults.Sensitivity, "match sensitivity (0-1)")
	cmd.Flags().IntVar(&o.variety, "variety", defaults.MaxVariety, "maximum number of block types to use (0 = unlimited)")
	algorithmFlag(cmd.Flags(), &o.algorithm, "algorithm", "a", "conversion algorithm, see 'blockify algorithms' (default $BLOCKIFY_ALGORITHM or average)")
	metricFlag(cmd.Flags(), &o.metric, "metric", "m", "colour distance (weighted, perceptual, lab)")
	seedModeFlag(cmd.Flags(), &o.seedMode, "seed-mode", "clustering seed mode (content, source, manual, random)")
	cmd.Flags().Int64Var(&o.seedValue, "seed-value", 0, "seed for manual seed mode")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "write a PNG preview to this file")
	cmd.Flags().StringVar(&o.gridJSON, "grid-json", "", "write the block grid as JSON, .xz or .gz compressed by extension")
	cmd.Flags().IntVar(&o.cellSize, "cell-size", quantize.DefaultCellSize, "preview block size in pixels")
	cmd.Flags().BoolVar(&o.grid, "grid", false, "draw grid lines on the preview")
	cmd.Flags().StringVar(&o.gridColor, "grid-color", "#000000", "grid line colour")
	cmd.Flags().StringVar(&o.cacheDir, "cache-dir", "", "directory for downloaded images (default: user cache directory)")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "download remote images again instead of using the cache")

	return cmd
}

// quantizeOptions turns the flags into conversion options. The seed is filled
// in by the caller once the image is loaded.
func (a *app) quantizeOptions(o *convertOptions) (quantize.Options, error) {
	opts := quantize.Options{
		Resolution:  o.resolution,
		Sensitivity: o.sensitivity,
		MaxVariety:  o.variety,
		Algorithm:   cmp.Or(o.algorithm, a.config.Algorithm),
		Metric:      o.metric,
		Logger:      a.logger,
	}
	return opts, opts.Validate()
}

func (a *app) runConvert(cmd *cobra.Command, o *convertOptions, imagePath string) error {
	opts, err := a.quantizeOptions(o)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if o.cellSize <= 0 {
		return fmt.Errorf("invalid configuration: cell size must be positive, got %d", o.cellSize)
	}
	gridColor, err := colour.ParseHex(o.gridColor)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	localPath, err := image.Resolve(cmd.Context(), imagePath, image.CacheOptions{CacheDir: o.cacheDir, Refresh: o.refresh})
	if err != nil {
		return err
	}
	a.logger.Debug("loading image", "path", localPath)
	img, err := image.NewFileLoader().Load(localPath)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}

	seedCfg := seed.Config{Mode: o.seedMode}
	if cmd.Flags().Changed("seed-value") {
		seedCfg.Value = &o.seedValue
	}
	opts.Seed, err = seed.Calculate(img, imagePath, seedCfg)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	store, err := a.loadPalette(cmd.Context(), &o.palette)
	if err != nil {
		return err
	}

	a.logger.Debug("converting", "algorithm", opts.Algorithm, "metric", opts.Metric,
		"resolution", opts.Resolution, "seed", opts.Seed)
	res, err := quantize.NewRunner(a.logger).Submit(cmd.Context(), img, store.Snapshot(), opts)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	if o.output != "" {
		preview := quantize.Render(res, quantize.RenderOptions{
			CellSize:  o.cellSize,
			Grid:      o.grid,
			GridColor: gridColor.NRGBA(),
		})
		var buf bytes.Buffer
		if err := png.Encode(&buf, preview); err != nil {
			return fmt.Errorf("failed to encode preview: %w", err)
		}
		if err := compression.WriteFile(o.output, buf.Bytes()); err != nil {
			return err
		}
		a.logger.Info("preview written", "path", o.output)
	}

	if o.gridJSON != "" {
		if err := quantize.WriteGrid(o.gridJSON, res); err != nil {
			return err
		}
		a.logger.Info("grid written", "path", o.gridJSON)
	}

	if a.quiet {
		return nil
	}
	return writeSummary(cmd.OutOrStdout(), imagePath, res)
}

// writeSummary prints the conversion summary and block usage table.
func writeSummary(w io.Writer, imagePath string, res *quantize.Result) error {
	fmt.Fprintf(w, "Converted %s (%dx%d) into %dx%d blocks using %s\n",
		imagePath, res.SourceWidth, res.SourceHeight, res.Cols, res.Rows, res.Algorithm.Label())

	usage := res.Usage()
	fmt.Fprintf(w, "Block types: %d, empty cells: %d, mean distance: %.4f\n\n",
		len(usage), res.EmptyCells(), res.MeanDistance())
	if len(usage) == 0 {
		return nil
	}

	table := NewTable("BLOCK", "NAME", "COUNT")
	table.AlignRight(2)
	for _, u := range usage {
		table.AddRow(u.Entry.ID, u.Entry.Name, strconv.Itoa(u.Count))
	}
	_, err := table.WriteTo(w)
	return err
}
