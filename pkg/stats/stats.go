// Package stats computes summary statistics for fork-join traces.
//
// Numbers come from two sources that deliberately stay consistent with
// the rendered picture: structural counts (spans, gaps, depth, edges)
// are taken from the composition tree, and time accounting (busy and
// idle per thread) replays the recorded leaf spans in start order.
// Only leaf spans count as work; enclosing spans overlap their children
// and would double-count.
package stats

import (
	"cmp"
	"slices"

	"github.com/matzehuels/spanviz/pkg/trace"
	"github.com/matzehuels/spanviz/pkg/trace/tree"
)

// Summary aggregates one trace's headline numbers.
type Summary struct {
	// Structural counts.
	Spans     int `json:"spans" bson:"spans"`
	LeafSpans int `json:"leaf_spans" bson:"leaf_spans"`
	Gaps      int `json:"gaps" bson:"gaps"`
	Edges     int `json:"edges" bson:"edges"`
	Depth     int `json:"depth" bson:"depth"`
	Threads   int `json:"threads" bson:"threads"`

	// Trace bounds, from the root span.
	Start    float64 `json:"start" bson:"start"`
	End      float64 `json:"end" bson:"end"`
	Duration float64 `json:"duration" bson:"duration"`

	// Aggregate time accounting. TotalIdle is duration times thread
	// count minus total busy time: everything the threads could have
	// done but did not.
	TotalBusy float64 `json:"total_busy" bson:"total_busy"`
	TotalIdle float64 `json:"total_idle" bson:"total_idle"`

	// TagBusy sums leaf work per non-empty tag.
	TagBusy map[string]float64 `json:"tag_busy,omitempty" bson:"tag_busy,omitempty"`

	PerThread []ThreadStats `json:"per_thread" bson:"per_thread"`
}

// ThreadStats is the busy/idle breakdown for one thread.
type ThreadStats struct {
	Thread int     `json:"thread" bson:"thread"`
	Spans  int     `json:"spans" bson:"spans"`
	Busy   float64 `json:"busy" bson:"busy"`
	Idle   float64 `json:"idle" bson:"idle"`
}

// Summarize computes the summary for a validated index and its
// composition tree. The tree does not need to be placed.
func Summarize(idx *trace.Index, root *tree.Node) Summary {
	rootSpan, _ := idx.Span(idx.Root())

	s := Summary{
		Spans:    idx.Len(),
		Edges:    len(root.Edges()),
		Depth:    root.Depth(),
		Start:    rootSpan.Start,
		End:      rootSpan.End,
		Duration: rootSpan.End - rootSpan.Start,
	}

	for _, l := range root.Leaves() {
		if l.Gap {
			s.Gaps++
		}
	}

	leaves := leafSpans(idx)
	s.LeafSpans = len(leaves)

	threads := threadList(idx)
	s.Threads = len(threads)

	for _, sp := range leaves {
		s.TotalBusy += sp.Duration()
		if sp.Tag != "" {
			if s.TagBusy == nil {
				s.TagBusy = make(map[string]float64)
			}
			s.TagBusy[sp.Tag] += sp.Duration()
		}
	}
	s.TotalIdle = s.Duration*float64(s.Threads) - s.TotalBusy

	s.PerThread = replay(leaves, threads, rootSpan.Start, rootSpan.End)
	return s
}

// leafSpans returns the spans without children, in input order.
func leafSpans(idx *trace.Index) []trace.Span {
	var out []trace.Span
	for _, sp := range idx.Spans() {
		if len(idx.Children(sp.ID)) == 0 {
			out = append(out, sp)
		}
	}
	return out
}

// threadList returns the distinct thread IDs of all spans, ascending.
func threadList(idx *trace.Index) []int {
	seen := make(map[int]bool)
	var out []int
	for _, sp := range idx.Spans() {
		if !seen[sp.Thread] {
			seen[sp.Thread] = true
			out = append(out, sp.Thread)
		}
	}
	slices.Sort(out)
	return out
}

// replay walks leaf spans in start order and accumulates busy and idle
// time per thread. A thread is idle whenever its watermark trails the
// next span's start; trailing idleness up to the trace end counts too,
// so a thread that finishes early shows the wait.
func replay(leaves []trace.Span, threads []int, start, end float64) []ThreadStats {
	out := make([]ThreadStats, len(threads))
	byThread := make(map[int]*ThreadStats, len(threads))
	watermark := make(map[int]float64, len(threads))
	for i, t := range threads {
		out[i] = ThreadStats{Thread: t}
		byThread[t] = &out[i]
		watermark[t] = start
	}

	sorted := slices.Clone(leaves)
	slices.SortStableFunc(sorted, func(a, b trace.Span) int {
		return cmp.Compare(a.Start, b.Start)
	})

	for _, sp := range sorted {
		st := byThread[sp.Thread]
		if sp.Start > watermark[sp.Thread] {
			st.Idle += sp.Start - watermark[sp.Thread]
		}
		if sp.End > watermark[sp.Thread] {
			watermark[sp.Thread] = sp.End
		}
		st.Busy += sp.Duration()
		st.Spans++
	}

	for _, t := range threads {
		if end > watermark[t] {
			byThread[t].Idle += end - watermark[t]
		}
	}
	return out
}
