// Package render turns traces into visual artifacts.
//
// # Overview
//
// Rendering is split into small, composable pieces:
//
//   - [scene] flattens a positioned composition tree into drawable
//     geometry (rectangles and segments) scaled to a viewport
//   - [svg] writes a scene as a deterministic SVG document
//   - [nodelink] draws the composition tree itself as a Graphviz
//     node-link diagram, for inspecting structure rather than timing
//   - [ToPDF] and [ToPNG] convert any SVG to other formats
//
// # Diagram View
//
// The diagram view is the timing picture: every task and idle gap
// becomes a thread-colored rectangle, every happened-before relation a
// line segment.
//
//	s := scene.FromTree(root, scene.DefaultWidth, scene.DefaultHeight)
//	data := svg.Render(s)
//
// # Tree View
//
// The tree view shows composition structure as boxes and arrows,
// laid out by Graphviz:
//
//	dot := nodelink.ToDOT(root, nodelink.Options{ShowGaps: true})
//	data, err := nodelink.RenderSVG(dot)
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] shell out to rsvg-convert (librsvg) and work on
// any SVG produced by either view:
//
//	pdf, err := render.ToPDF(data)
//	png, err := render.ToPNG(data, 2.0) // 2x scale
//
// [scene]: github.com/matzehuels/spanviz/pkg/render/scene
// [svg]: github.com/matzehuels/spanviz/pkg/render/svg
// [nodelink]: github.com/matzehuels/spanviz/pkg/render/nodelink
package render
