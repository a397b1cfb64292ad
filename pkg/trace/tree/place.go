package tree

// Place assigns the node's absolute top-left corner and recursively
// positions its children inside the node's footprint. Parallel groups
// advance children along the x axis and center each child vertically;
// sequences advance children along the y axis and center each child
// horizontally. Every child therefore stays inside its parent's box.
//
// Positions are in layout units (seconds wide, unit heights); scaling
// to a pixel viewport happens when the tree is flattened into a scene.
func (n *Node) Place(x, y float64) {
	n.X, n.Y = x, y

	switch n.Kind {
	case KindParallel:
		cx := x
		for _, c := range n.Children {
			c.Place(cx, y+(n.height-c.height)/2)
			cx += c.width
		}
	case KindSequence:
		cy := y
		for _, c := range n.Children {
			c.Place(x+(n.width-c.width)/2, cy)
			cy += c.height
		}
	}
}
