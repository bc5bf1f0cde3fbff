package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/statecraft/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file path (single format) or base path (multiple)
	formats  []string // output formats: "dot", "svg", "png", "json", "toml"
	prune    bool     // drop unreferenced states before rendering
	minimize bool     // minimize the machine before rendering
	compress bool     // group symbols sharing a target into one edge label
	spaced   bool     // space out compressed labels
	circular bool     // use the circo layout engine
	noCache  bool     // disable the artifact cache
	refresh  bool     // re-render even when artifacts are cached
}

// renderCommand creates the render command for generating state diagrams.
// It supports DOT, SVG, and PNG output plus JSON/TOML re-export.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a machine as a state diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, png, json, toml (comma-separated)")
	cmd.Flags().BoolVar(&opts.prune, "prune", false, "drop unreferenced states before rendering")
	cmd.Flags().BoolVar(&opts.minimize, "minimize", false, "minimize the machine before rendering")
	cmd.Flags().BoolVar(&opts.compress, "compress", false, "group symbols sharing a target into one edge label")
	cmd.Flags().BoolVar(&opts.spaced, "spaced", false, "space out compressed labels")
	cmd.Flags().BoolVar(&opts.circular, "circular", false, "use the circo layout engine")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when artifacts are cached")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(cmd.Context(), "Rendering state diagram...")
	spinner.Start()

	result, err := runner.Execute(cmd.Context(), pipeline.Options{
		Input:    input,
		Prune:    opts.prune,
		Minimize: opts.minimize,
		Formats:  opts.formats,
		Compress: opts.compress,
		Spaced:   opts.spaced,
		Circular: opts.circular,
		Refresh:  opts.refresh,
		Logger:   c.Logger,
	})
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return err
	}
	spinner.Stop()

	printSuccess("Rendered %s", filepath.Base(input))
	printStats(result.Stats.StatesAfter, result.Stats.TransitionsAfter, result.CacheInfo.RenderHit)

	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		path := base + "." + format
		if opts.output != "" && len(opts.formats) == 1 {
			path = opts.output
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input. If output has a
// known format extension, that extension is stripped so multiple formats can
// share the base.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	if pipeline.ValidFormats[ext] {
		return strings.TrimSuffix(output, filepath.Ext(output))
	}
	return output
}
