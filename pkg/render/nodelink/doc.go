// Package nodelink renders composition trees as node-link diagrams.
//
// # Overview
//
// The diagram view shows when things ran; this package shows how they
// compose. Every tree node becomes a box, every parent-child relation
// an arrow, laid out top-to-bottom by Graphviz. It is the quickest way
// to see the fork-join structure of an unfamiliar trace.
//
// # Usage
//
// Convert a composition tree to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(root, nodelink.Options{ShowGaps: true})
//	svg, err := nodelink.RenderSVG(dot)
//
// For PDF or PNG output, use the wrapper functions:
//
//	pdf, err := nodelink.RenderPDF(dot)
//	png, err := nodelink.RenderPNG(dot, 2.0) // 2x scale
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - ShowGaps: include synthesized idle gaps as dashed grey boxes
//   - Detailed: add span IDs to node labels
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG]
//   - Saved and processed with external Graphviz tools
//   - Customized before rendering
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering, so no external Graphviz installation is needed. PDF and
// PNG conversion shell out to rsvg-convert (librsvg).
package nodelink
