package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/spanviz/pkg/pipeline"
	"github.com/matzehuels/spanviz/pkg/trace/tree"
)

// inspectCommand creates the inspect command for browsing the fork-join tree.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		plain   bool
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [trace.json]",
		Short: "Browse the fork-join tree of a task trace",
		Long: `Browse the fork-join tree of a task trace.

The inspect command loads a trace, builds the fork-join tree, and opens
an interactive browser: arrow keys navigate, enter folds or unfolds a
group, q quits. Use --plain to print the indented tree to stdout instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], plain, noCache, refresh)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print the tree instead of opening the browser")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "refetch remote traces, bypassing the cache")

	return cmd
}

// runInspect loads the trace and opens the tree browser.
func (c *CLI) runInspect(ctx context.Context, input string, plain, noCache, refresh bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipeline.Options{Source: input, Refresh: refresh, Logger: c.Logger}

	data, err := runner.Fetch(ctx, opts)
	if err != nil {
		return fmt.Errorf("load trace %s: %w", input, err)
	}

	_, root, err := pipeline.BuildTrace(data)
	if err != nil {
		return fmt.Errorf("build trace %s: %w", input, err)
	}

	if plain {
		printTree(root)
		return nil
	}

	m := NewTreeModel(root)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tree browser: %w", err)
	}
	return nil
}

// printTree writes the indented tree to stdout.
func printTree(root *tree.Node) {
	root.Walk(func(n *tree.Node, depth int) {
		indent := strings.Repeat("  ", depth)
		if n.Leaf() {
			fmt.Println(indent + leafLabel(n))
			return
		}
		fmt.Printf("%s%s (%d children)\n", indent, n.Kind, len(n.Children))
	})
}
