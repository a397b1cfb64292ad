// Package svg renders scenes into standalone SVG documents.
//
// The output is deliberately plain: one line element per
// happened-before segment, one rect element per task or gap, colored by
// thread from a rotating palette. Rendering is deterministic, so the
// same scene and options always produce identical bytes.
package svg

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/spanviz/pkg/render/scene"
)

// DefaultPalette is the thread fill rotation: a rectangle on thread t
// is filled with DefaultPalette[t mod len].
var DefaultPalette = []string{"red", "green", "blue"}

const (
	defaultEdgeColor = "black"
	defaultEdgeWidth = 2.0
)

type Option func(*renderer)

type renderer struct {
	palette   []string
	edgeColor string
	edgeWidth float64
}

// WithPalette overrides the thread fill rotation. An empty list keeps
// the default.
func WithPalette(colors ...string) Option {
	return func(r *renderer) {
		if len(colors) > 0 {
			r.palette = colors
		}
	}
}

// WithEdgeColor sets the stroke color for happened-before segments.
func WithEdgeColor(color string) Option { return func(r *renderer) { r.edgeColor = color } }

// WithEdgeWidth sets the stroke width for happened-before segments.
func WithEdgeWidth(width float64) Option { return func(r *renderer) { r.edgeWidth = width } }

// Render emits the scene as a standalone SVG document. Segments are
// written before rectangles so edges end up below tasks.
func Render(s scene.Scene, opts ...Option) []byte {
	r := newRenderer(opts...)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`+"\n",
		s.Width, s.Height, s.Width, s.Height)

	for _, seg := range s.Segments {
		fmt.Fprintf(&buf, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f"/>`+"\n",
			seg.X1, seg.Y1, seg.X2, seg.Y2, r.edgeColor, r.edgeWidth)
	}

	for _, rect := range s.Rects {
		fmt.Fprintf(&buf, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
			rect.X, rect.Y, rect.Width, rect.Height, r.fill(rect.Thread))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newRenderer(opts ...Option) renderer {
	r := renderer{
		palette:   DefaultPalette,
		edgeColor: defaultEdgeColor,
		edgeWidth: defaultEdgeWidth,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// fill picks the palette color for a thread. The modulo is normalized
// so out-of-range thread IDs never index outside the palette.
func (r *renderer) fill(thread int) string {
	n := len(r.palette)
	return r.palette[((thread%n)+n)%n]
}
