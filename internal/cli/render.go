package cli

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spanviz/pkg/httputil"
	"github.com/matzehuels/spanviz/pkg/pipeline"
)

// renderCommand creates the render command for the full trace-to-image pipeline.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		paletteStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}
	setCLIDefaults(&opts)

	cmd := &cobra.Command{
		Use:   "render [trace.json]",
		Short: "Render a task trace to SVG(s)",
		Long: `Render a task trace to SVG(s).

The render command runs the full pipeline: it loads the trace from a local
file or URL, validates the spans, builds the fork-join tree, computes the
scene, and renders it to the requested formats.

The default diagram view shows tasks as nested rectangles subdivided where
children ran in parallel; 'tree' renders the raw fork-join structure as a
node-link diagram instead. JSON output exports the computed scene and is
only available for the diagram view.

Remote traces and computed results are cached locally for faster subsequent
runs. Use 'layout' and 'visualize' to run the stages separately.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Source = args[0]
			opts.Formats = parseFormats(formatsStr)
			opts.Palette = parsePalette(paletteStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if err := pipeline.ValidateView(opts.View); err != nil {
				return err
			}
			if err := filterTreeFormats(&opts); err != nil {
				return err
			}
			c.applyRenderConfig(cmd, &opts)
			return c.runRender(cmd.Context(), opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", opts.Refresh, "refetch remote traces, bypassing the cache")

	// Scene flags
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "frame width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "frame height")

	// Render flags
	cmd.Flags().StringVar(&opts.View, "view", opts.View, "visualization view: diagram (default), tree")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVar(&paletteStr, "palette", "", "thread colors as comma-separated CSS values")
	cmd.Flags().BoolVar(&opts.ShowGaps, "gaps", opts.ShowGaps, "show idle gaps in the tree view")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", opts.Detailed, "show span intervals in tree view labels")

	return cmd
}

// filterTreeFormats drops the JSON format for the tree view, which has no
// JSON export. Requesting only JSON for a tree is an error.
func filterTreeFormats(opts *pipeline.Options) error {
	if !opts.IsTree() {
		return nil
	}
	var kept []string
	for _, f := range opts.Formats {
		if f == pipeline.FormatJSON {
			printWarning("Skipping json (scene export only applies to the diagram view)")
			continue
		}
		kept = append(kept, f)
	}
	if len(kept) == 0 {
		return fmt.Errorf("no formats left to render: tree view has no JSON export")
	}
	opts.Formats = kept
	return nil
}

// runRender executes the full pipeline and writes the requested artifacts.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", opts.Source))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     opts.Source,
		output:    output,
		cacheHit:  result.CacheInfo.RenderHit,
		spans:     result.Stats.SpanCount,
		leaves:    result.Stats.LeafCount,
	})
}

// =============================================================================
// Artifact Output
// =============================================================================

// artifactWriteParams bundles the inputs for writeArtifacts.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	cacheHit  bool
	spans     int
	leaves    int
}

// writeArtifacts writes rendered artifacts to disk and prints a summary.
// Span and leaf counts are optional; printStats skips zero values.
func writeArtifacts(p artifactWriteParams) error {
	base := basePath(p.output, p.input)

	var written []string
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}
		outPath := base + "." + format
		if err := os.WriteFile(outPath, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}
		written = append(written, outPath)
	}

	printSuccess("Render complete")
	for _, outPath := range written {
		printFile(outPath)
	}
	printStats(p.spans, p.leaves, p.cacheHit)
	printNewline()
	return nil
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it is derived from the input name.
// If output has a format extension (.svg, .pdf, etc.), that extension is
// stripped so multiple formats can share the base.
func basePath(output, input string) string {
	if output == "" {
		return defaultBase(input)
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// defaultBase derives an output base name from the input source. Remote
// sources use the last URL path element so output lands in the working
// directory rather than mirroring the URL.
func defaultBase(input string) string {
	if httputil.IsURL(input) {
		if u, err := url.Parse(input); err == nil {
			name := path.Base(u.Path)
			name = strings.TrimSuffix(name, path.Ext(name))
			if name != "" && name != "." && name != "/" {
				return name
			}
		}
		return "trace"
	}
	return strings.TrimSuffix(input, filepath.Ext(input))
}
