package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jverhoef/cardrail/pkg/content"
	"github.com/jverhoef/cardrail/pkg/pipeline"
)

// layoutCommand creates the layout command for computing wall layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output   string
		viewport float64
		noCache  bool
		refresh  bool
	)

	cmd := &cobra.Command{
		Use:   "layout [manifest]",
		Short: "Compute the card wall layout for a viewport width",
		Long: `Compute the card wall layout for a viewport width.

The layout command loads portfolio cards from a manifest file (TOML or JSON)
or from the configured content source, packs them into the two-row wall, and
writes the positions, category anchors, and container dimensions as JSON.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manifest := ""
			if len(args) > 0 {
				manifest = args[0]
			}
			return c.runLayout(cmd.Context(), manifest, viewport, output, noCache, refresh)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <manifest>.layout.json or stdout)")
	cmd.Flags().Float64VarP(&viewport, "viewport", "w", 0, "viewport width in px (default: configured width)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the content cache")

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, manifest string, viewport float64, output string, noCache, refresh bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if viewport == 0 {
		viewport = cfg.Wall.DefaultViewportWidth
	}

	source, closeSource, err := c.newSource(ctx, cfg, manifest)
	if err != nil {
		return err
	}
	defer closeSource()

	runner, err := c.newRunner(cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipeline.Options{
		Source:        source,
		Refresh:       refresh,
		ViewportWidth: viewport,
		Logger:        c.Logger,
	}

	p := newProgress(c.Logger)
	records, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}
	cards := content.Cards(records, c.Logger)
	l, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, cards, opts)
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("Packed %d cards", len(l.Positions)))

	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return err
	}

	if output == "" && manifest != "" {
		base := strings.TrimSuffix(manifest, filepath.Ext(manifest))
		output = base + ".layout.json"
	}
	if output == "" || output == "-" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Layout complete")
	printFile(output)
	printStats(len(cards), len(l.Anchors), cacheHit)
	printNewline()
	printNextStep("Render", appName+" render "+manifest)

	return nil
}
