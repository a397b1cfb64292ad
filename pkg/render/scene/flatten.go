package scene

import "github.com/matzehuels/spanviz/pkg/trace/tree"

// FromTree positions the tree at the origin and flattens it into a
// scene scaled to the given viewport. Leaves become rectangles in
// drawing order, edges become segments; both inherit the tree's
// deterministic ordering.
//
// Scale factors are viewport size over root footprint per axis. A root
// with a zero-width or zero-height footprint gets a zero scale on that
// axis, collapsing the geometry instead of dividing by zero.
func FromTree(root *tree.Node, width, height float64) Scene {
	root.Place(0, 0)

	rw, rh := root.Dimensions()
	var sx, sy float64
	if rw > 0 {
		sx = width / rw
	}
	if rh > 0 {
		sy = height / rh
	}

	s := Scene{Width: width, Height: height}

	for _, l := range root.Leaves() {
		w, _ := l.Dimensions()
		s.Rects = append(s.Rects, Rect{
			X:      l.X * sx,
			Y:      l.Y * sy,
			Width:  w * sx,
			Height: sy,
			Thread: l.Thread,
			Span:   l.Span,
			Gap:    l.Gap,
			Start:  l.Start,
			End:    l.End,
		})
	}

	for _, e := range root.Edges() {
		s.Segments = append(s.Segments, Segment{
			X1: e.From.X * sx,
			Y1: e.From.Y * sy,
			X2: e.To.X * sx,
			Y2: e.To.Y * sy,
		})
	}

	return s
}
