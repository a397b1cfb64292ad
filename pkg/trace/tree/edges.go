package tree

// Point is a connector coordinate on a node boundary, in the same
// layout units as Place.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Edge is one happened-before connection drawn between two consecutive
// steps of a sequence.
type Edge struct {
	From Point `json:"from" bson:"from"`
	To   Point `json:"to" bson:"to"`
}

// Entries returns the points through which control enters the subtree.
// A leaf is entered at its top-center; a parallel group through every
// entry of every branch; a sequence through the entries of its first
// child.
func (n *Node) Entries() []Point {
	switch n.Kind {
	case KindTask:
		return []Point{{X: n.X + n.width/2, Y: n.Y}}
	case KindParallel:
		var out []Point
		for _, c := range n.Children {
			out = append(out, c.Entries()...)
		}
		return out
	case KindSequence:
		if len(n.Children) == 0 {
			return nil
		}
		return n.Children[0].Entries()
	}
	return nil
}

// Exits returns the points through which control leaves the subtree.
// A leaf is left at its bottom-center; a parallel group through every
// exit of every branch; a sequence through the exits of its last child.
func (n *Node) Exits() []Point {
	switch n.Kind {
	case KindTask:
		return []Point{{X: n.X + n.width/2, Y: n.Y + n.height}}
	case KindParallel:
		var out []Point
		for _, c := range n.Children {
			out = append(out, c.Exits()...)
		}
		return out
	case KindSequence:
		if len(n.Children) == 0 {
			return nil
		}
		return n.Children[len(n.Children)-1].Exits()
	}
	return nil
}

// Edges returns every happened-before edge in the positioned subtree.
// Each sequence contributes the cartesian product of exits and entries
// for every consecutive child pair, so an edge is drawn from each way
// out of one step to each way into the next. Parallel groups contribute
// only their branches' inner edges; the fan-out itself needs no lines
// because forked branches share the enclosing sequence's connections.
//
// Call Place first: edge coordinates come from node positions.
func (n *Node) Edges() []Edge {
	var out []Edge
	n.appendEdges(&out)
	return out
}

func (n *Node) appendEdges(dst *[]Edge) {
	for _, c := range n.Children {
		c.appendEdges(dst)
	}
	if n.Kind != KindSequence {
		return
	}
	for i := 0; i+1 < len(n.Children); i++ {
		entries := n.Children[i+1].Entries()
		for _, from := range n.Children[i].Exits() {
			for _, to := range entries {
				*dst = append(*dst, Edge{From: from, To: to})
			}
		}
	}
}
