package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/spanviz/pkg/pipeline"
	"github.com/matzehuels/spanviz/pkg/stats"
)

// statsCommand creates the stats command for trace summary statistics.
func (c *CLI) statsCommand() *cobra.Command {
	var (
		jsonOut bool
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "stats [trace.json]",
		Short: "Show summary statistics for a task trace",
		Long: `Show summary statistics for a task trace.

The stats command loads a trace from a local file or URL, validates it,
and prints structural counts (spans, threads, depth, fork-join edges)
plus a busy/idle time breakdown per thread. Use --json for a
machine-readable version of the same numbers.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStats(cmd.Context(), args[0], jsonOut, noCache, refresh)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "print statistics as JSON")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "refetch remote traces, bypassing the cache")

	return cmd
}

// runStats loads the trace and prints the summary.
func (c *CLI) runStats(ctx context.Context, input string, jsonOut, noCache, refresh bool) error {
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

	idx, root, err := pipeline.BuildTrace(data)
	if err != nil {
		return fmt.Errorf("build trace %s: %w", input, err)
	}

	summary := stats.Summarize(idx, root)

	if jsonOut {
		out, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal stats: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	printSummary(summary)
	return nil
}

// printSummary renders the summary as styled terminal output.
func printSummary(s stats.Summary) {
	fmt.Println(StyleTitle.Render("Trace summary"))
	printNewline()

	capacity := s.Duration * float64(s.Threads)

	printKeyValue("Spans", fmt.Sprintf("%d (%d leaves, %d gaps)", s.Spans, s.LeafSpans, s.Gaps))
	printKeyValue("Threads", strconv.Itoa(s.Threads))
	printKeyValue("Depth", strconv.Itoa(s.Depth))
	printKeyValue("Edges", strconv.Itoa(s.Edges))
	printKeyValue("Interval", fmt.Sprintf("%s .. %s", formatUnits(s.Start), formatUnits(s.End)))
	printKeyValue("Busy", fmt.Sprintf("%s (%.0f%% of capacity)", formatUnits(s.TotalBusy), percent(s.TotalBusy, capacity)))
	printKeyValue("Idle", fmt.Sprintf("%s (%.0f%% of capacity)", formatUnits(s.TotalIdle), percent(s.TotalIdle, capacity)))

	if len(s.TagBusy) > 0 {
		printNewline()
		fmt.Println(StyleTitle.Render("Busy by tag"))
		printNewline()
		var tags []string
		for tag := range s.TagBusy {
			tags = append(tags, tag)
		}
		slices.Sort(tags)
		for _, tag := range tags {
			printKeyValue(tag, formatUnits(s.TagBusy[tag]))
		}
	}

	printNewline()
	fmt.Println(renderThreadTable(s.PerThread))
}

// renderThreadTable builds the per-thread busy/idle table.
func renderThreadTable(threads []stats.ThreadStats) string {
	rows := make([][]string, 0, len(threads))
	for _, t := range threads {
		rows = append(rows, []string{
			strconv.Itoa(t.Thread),
			strconv.Itoa(t.Spans),
			formatUnits(t.Busy),
			formatUnits(t.Idle),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Thread", "Spans", "Busy", "Idle").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}).
		Render()
}

// formatUnits formats an abstract time value, trimming trailing zeros.
func formatUnits(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// percent returns part as a percentage of total, or 0 when total is empty.
func percent(part, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return part / total * 100
}
