package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jverhoef/cardrail/pkg/pipeline"
)

// renderCommand creates the render command for generating wall artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output  string
		formats string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [manifest]",
		Short: "Render the card wall or its category map",
		Long: `Render the card wall or its category map.

Visualization types:
  wall  the laid-out wall as SVG, optionally mid-scroll via --progress
  map   a category overview diagram rendered with Graphviz

Formats depend on the type: wall supports svg and json; map supports
svg, png, dot, and json. Multiple formats are comma-separated.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.Manifest = args[0]
			}
			opts.Formats = parseFormats(formats)
			return c.runRender(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file basename (default: wall.<format>)")
	cmd.Flags().StringVarP(&formats, "format", "f", "svg", "output formats, comma-separated")
	cmd.Flags().StringVarP(&opts.Viz, "viz", "t", pipeline.VizWall, "visualization type: wall (default), map")
	cmd.Flags().Float64VarP(&opts.ViewportWidth, "viewport", "w", 0, "viewport width in px")
	cmd.Flags().Float64VarP(&opts.Progress, "progress", "p", 0, "scroll progress in [0,1] to render the wall at")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "include size and sort key in map labels")
	cmd.Flags().BoolVar(&opts.ShowFrame, "frame", false, "overlay the viewport bounds (wall)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass the content cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if opts.ViewportWidth == 0 {
		opts.ViewportWidth = cfg.Wall.DefaultViewportWidth
	}
	opts.Phases = cfg.Phases
	opts.BookendScale = cfg.Wall.BookendScale
	opts.Logger = c.Logger

	source, closeSource, err := c.newSource(ctx, cfg, opts.Manifest)
	if err != nil {
		return err
	}
	defer closeSource()
	opts.Manifest = ""
	opts.Source = source

	runner, err := c.newRunner(cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}

	base := output
	if base == "" {
		base = opts.Viz
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))

	printSuccess("Render complete")
	for _, format := range opts.Formats {
		path := base + "." + format
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(result.Stats.CardCount, result.Stats.CategoryCount, result.CacheInfo.RenderHit)

	return nil
}
