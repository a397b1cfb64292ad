package tree

import "github.com/matzehuels/spanviz/pkg/trace"

// Build converts a validated trace index into a composition tree rooted
// at the index root.
//
// A childless span becomes a task leaf, whatever its tag. A span tagged
// as a join becomes a parallel group over its children, with no gaps:
// forked work is sized purely by what its branches did. Any other span
// with children becomes a sequence over its children interleaved with
// gaps, so a parent with N children always yields N+1 gap leaves:
//
//	[gap(parent.start..c0.start) c0 gap(c0.end..c1.start) c1 ... gap(cN.end..parent.end)]
//
// Gap bounds come from the child span records, not from the built child
// subtrees, so a child that forks further still bounds its neighbouring
// gaps by its own recorded interval. Gaps run on the parent's thread,
// and a pair of touching child intervals still gets its zero-width gap.
func Build(idx *trace.Index) *Node {
	return buildNode(idx, idx.Root())
}

func buildNode(idx *trace.Index, id int64) *Node {
	span, _ := idx.Span(id)
	children := idx.Children(id)

	if len(children) == 0 {
		n := NewTask(span.Start, span.End, span.Thread)
		n.Span = span.ID
		return n
	}

	built := make([]*Node, len(children))
	for i, childID := range children {
		built[i] = buildNode(idx, childID)
	}

	if span.Tag == trace.TagJoin {
		n := NewParallel(built...)
		n.Span = span.ID
		return n
	}

	nodes := make([]*Node, 0, 2*len(built)+1)
	prev := span.Start
	for i, childID := range children {
		child, _ := idx.Span(childID)
		nodes = append(nodes, NewGap(prev, child.Start, span.Thread))
		nodes = append(nodes, built[i])
		prev = child.End
	}
	nodes = append(nodes, NewGap(prev, span.End, span.Thread))

	n := NewSequence(nodes...)
	n.Span = span.ID
	return n
}
