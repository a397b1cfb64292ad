package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spanviz/pkg/cache"
	"github.com/matzehuels/spanviz/pkg/pipeline"
	"github.com/matzehuels/spanviz/pkg/render/scene"
)

// layoutCommand creates the layout command for computing visualization scenes.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}
	setCLIDefaults(&opts)

	cmd := &cobra.Command{
		Use:   "layout [trace.json]",
		Short: "Compute the visualization scene from a task trace",
		Long: `Compute the visualization scene from a task trace.

The layout command loads a trace from a local file or URL, builds the
fork-join tree, and computes the scene: the flattened rectangles and
divider segments positioned in the viewport. The output is a scene.json
file (same format as 'render -f json') that can be rendered to SVG, PNG,
or PDF using the 'visualize' command.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Source = args[0]
			c.applyRenderConfig(cmd, &opts)
			return c.runLayout(cmd.Context(), opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.scene.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", opts.Refresh, "refetch remote traces, bypassing the cache")

	// Scene flags
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "frame width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "frame height")

	return cmd
}

// runLayout loads the trace, computes the scene, and writes output.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	data, err := runner.Fetch(ctx, opts)
	if err != nil {
		return fmt.Errorf("load trace %s: %w", opts.Source, err)
	}

	idx, root, err := pipeline.BuildTrace(data)
	if err != nil {
		return fmt.Errorf("build trace %s: %w", opts.Source, err)
	}

	spinner := newSpinnerWithContext(ctx, "Computing scene...")
	spinner.Start()

	sc, cacheHit, err := runner.GenerateSceneWithCacheInfo(ctx, cache.Hash(data), root, opts)
	if err != nil {
		spinner.StopWithError("Scene failed")
		return fmt.Errorf("compute scene: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = defaultBase(opts.Source) + ".scene.json"
	}

	if err := scene.WriteSceneFile(sc, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Scene complete")
	printFile(outputPath)
	printStats(idx.Len(), len(root.Leaves()), cacheHit)
	printNewline()
	printNextStep("Render", "spanviz visualize "+outputPath)

	return nil
}
