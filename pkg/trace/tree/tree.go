package tree

import (
	"fmt"
	"strings"
)

// Kind discriminates the three node shapes of a composition tree.
type Kind int

const (
	// KindTask is a leaf: one uninterrupted interval of work (or idle
	// time, when Gap is set) on a single thread.
	KindTask Kind = iota
	// KindParallel groups children that ran concurrently under a join.
	KindParallel
	// KindSequence groups children that ran one after another on the
	// parent's thread, separated by synthesized gaps.
	KindSequence
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindTask:
		return "task"
	case KindParallel:
		return "parallel"
	case KindSequence:
		return "sequence"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Node is a single node of a composition tree. Leaves carry the time
// interval and thread of one span (or one synthesized gap); groups carry
// only children. The footprint is fixed when the node is constructed:
// leaves are duration wide and one unit tall, parallel groups sum child
// widths and take the tallest child, sequence groups take the widest
// child and sum child heights.
//
// X and Y are zero until Place assigns absolute coordinates.
type Node struct {
	Kind Kind

	// Leaf fields. Span is the originating span ID, zero for gaps.
	Span   int64
	Start  float64
	End    float64
	Thread int
	Gap    bool

	// Group fields. Children preserve input order.
	Children []*Node

	// Position of the top-left corner, assigned by Place.
	X float64
	Y float64

	width  float64
	height float64
}

// NewTask returns a leaf covering [start, end) on the given thread.
func NewTask(start, end float64, thread int) *Node {
	return &Node{
		Kind:   KindTask,
		Start:  start,
		End:    end,
		Thread: thread,
		width:  end - start,
		height: 1,
	}
}

// NewGap returns a leaf marking idle time between the children of a
// sequence. Gaps belong to the enclosing span's thread and may be empty
// (zero width) when consecutive intervals touch.
func NewGap(start, end float64, thread int) *Node {
	n := NewTask(start, end, thread)
	n.Gap = true
	return n
}

// NewParallel groups children that ran concurrently. Its footprint is
// the sum of the child widths and the height of the tallest child.
func NewParallel(children ...*Node) *Node {
	n := &Node{Kind: KindParallel, Children: children}
	for _, c := range children {
		n.width += c.width
		if c.height > n.height {
			n.height = c.height
		}
	}
	return n
}

// NewSequence groups children that ran one after another. Its footprint
// is the width of the widest child and the sum of the child heights.
func NewSequence(children ...*Node) *Node {
	n := &Node{Kind: KindSequence, Children: children}
	for _, c := range children {
		if c.width > n.width {
			n.width = c.width
		}
		n.height += c.height
	}
	return n
}

// Dimensions returns the node's footprint. The footprint is computed
// once at construction, so repeated calls are cheap and always agree.
func (n *Node) Dimensions() (w, h float64) {
	return n.width, n.height
}

// Leaf reports whether the node is a task or gap leaf.
func (n *Node) Leaf() bool {
	return n.Kind == KindTask
}

// Leaves appends every leaf of the subtree in drawing order.
func (n *Node) Leaves() []*Node {
	var out []*Node
	n.Walk(func(c *Node, _ int) {
		if c.Leaf() {
			out = append(out, c)
		}
	})
	return out
}

// Walk visits the subtree in preorder, passing each node's depth
// relative to n (which is visited at depth zero).
func (n *Node) Walk(fn func(c *Node, depth int)) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(c *Node, depth int), depth int) {
	fn(n, depth)
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}

// Depth returns the number of levels in the subtree. A single leaf has
// depth one.
func (n *Node) Depth() int {
	max := 0
	for _, c := range n.Children {
		if d := c.Depth(); d > max {
			max = d
		}
	}
	return max + 1
}

// String renders the subtree in a compact bracket notation: parallel
// groups as {a b}, sequences as [a b], leaves as start..end@thread with
// a ~ prefix for gaps. Useful in tests and debug logs.
func (n *Node) String() string {
	var sb strings.Builder
	nodeString(n, &sb)
	return sb.String()
}

func nodeString(n *Node, sb *strings.Builder) {
	switch n.Kind {
	case KindTask:
		if n.Gap {
			sb.WriteByte('~')
		}
		fmt.Fprintf(sb, "%g..%g@%d", n.Start, n.End, n.Thread)
	case KindParallel:
		sb.WriteByte('{')
		writeChildren(n.Children, sb)
		sb.WriteByte('}')
	case KindSequence:
		sb.WriteByte('[')
		writeChildren(n.Children, sb)
		sb.WriteByte(']')
	}
}

func writeChildren(children []*Node, sb *strings.Builder) {
	for i, c := range children {
		if i > 0 {
			sb.WriteByte(' ')
		}
		nodeString(c, sb)
	}
}
