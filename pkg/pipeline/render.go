package pipeline

import (
	"fmt"

	"github.com/matzehuels/spanviz/pkg/render"
	"github.com/matzehuels/spanviz/pkg/render/nodelink"
	"github.com/matzehuels/spanviz/pkg/render/scene"
	"github.com/matzehuels/spanviz/pkg/render/svg"
	"github.com/matzehuels/spanviz/pkg/trace/tree"
)

// pngScale is the raster scale for PNG output; 2x keeps text and thin
// edges sharp on high-DPI displays.
const pngScale = 2.0

// RenderArtifacts generates output artifacts in the requested formats.
//
// The diagram view renders from the scene; the tree view renders from
// the composition tree directly (DOT is generated on demand, like the
// scene it is a pure function of the tree).
func RenderArtifacts(sc scene.Scene, root *tree.Node, opts Options) (map[string][]byte, error) {
	if opts.IsTree() {
		return renderTree(root, opts)
	}
	return renderDiagram(sc, opts)
}

// RenderFromSceneData renders output from serialized scene data.
// This is useful when the scene was computed elsewhere (e.g., cached or
// written by `layout`). Only the diagram view is available: a scene
// does not retain the tree structure the tree view needs.
func RenderFromSceneData(data []byte, opts Options) (map[string][]byte, error) {
	sc, err := scene.UnmarshalScene(data)
	if err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	return RenderArtifacts(sc, nil, opts)
}

// renderDiagram generates diagram outputs from a scene.
func renderDiagram(sc scene.Scene, opts Options) (map[string][]byte, error) {
	doc := svg.Render(sc, svg.WithPalette(opts.Palette...))
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = doc
		case FormatPNG:
			data, err = render.ToPNG(doc, pngScale)
		case FormatPDF:
			data, err = render.ToPDF(doc)
		case FormatJSON:
			data, err = scene.MarshalScene(sc)
		default:
			return nil, fmt.Errorf("unsupported diagram format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderTree generates tree-view outputs from the composition tree.
func renderTree(root *tree.Node, opts Options) (map[string][]byte, error) {
	if root == nil {
		return nil, fmt.Errorf("tree view requires a trace input")
	}

	dot := nodelink.ToDOT(root, nodelink.Options{
		ShowGaps: opts.ShowGaps,
		Detailed: opts.Detailed,
	})
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = nodelink.RenderSVG(dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(dot, pngScale)
		case FormatPDF:
			data, err = nodelink.RenderPDF(dot)
		case FormatJSON:
			err = fmt.Errorf("json output requires the diagram view")
		default:
			return nil, fmt.Errorf("unsupported tree format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
