package svg

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/spanviz/pkg/render/scene"
)

func testScene() scene.Scene {
	return scene.Scene{
		Width:  100,
		Height: 50,
		Rects: []scene.Rect{
			{X: 0, Y: 0, Width: 100, Height: 10, Thread: 0},
			{X: 0, Y: 10, Width: 40, Height: 10, Thread: 1},
			{X: 40, Y: 10, Width: 60, Height: 10, Thread: 2},
		},
		Segments: []scene.Segment{
			{X1: 50, Y1: 10, X2: 20, Y2: 10},
		},
	}
}

func TestRenderDocument(t *testing.T) {
	got := string(Render(testScene()))

	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50">
<line x1="50.00" y1="10.00" x2="20.00" y2="10.00" stroke="black" stroke-width="2.00"/>
<rect x="0.00" y="0.00" width="100.00" height="10.00" fill="red"/>
<rect x="0.00" y="10.00" width="40.00" height="10.00" fill="green"/>
<rect x="40.00" y="10.00" width="60.00" height="10.00" fill="blue"/>
</svg>
`
	if got != want {
		t.Errorf("rendered SVG mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderDeterministic(t *testing.T) {
	s := testScene()
	if !bytes.Equal(Render(s), Render(s)) {
		t.Error("repeated renders produced different bytes")
	}
}

func TestRenderSegmentsBelowRects(t *testing.T) {
	out := string(Render(testScene()))
	line := strings.Index(out, "<line")
	rect := strings.Index(out, "<rect")
	if line == -1 || rect == -1 {
		t.Fatalf("missing elements in output:\n%s", out)
	}
	if line > rect {
		t.Error("segments must be written before rectangles")
	}
}

func TestPaletteWrapsAround(t *testing.T) {
	s := scene.Scene{Width: 10, Height: 10}
	for thread := 0; thread < 5; thread++ {
		s.Rects = append(s.Rects, scene.Rect{Width: 1, Height: 1, Thread: thread})
	}

	out := string(Render(s))
	for _, fill := range []string{`fill="red"`, `fill="green"`, `fill="blue"`} {
		if strings.Count(out, fill) < 1 {
			t.Errorf("missing %s in output", fill)
		}
	}
	// Threads 0 and 3 share a color, as do 1 and 4.
	if strings.Count(out, `fill="red"`) != 2 || strings.Count(out, `fill="green"`) != 2 || strings.Count(out, `fill="blue"`) != 1 {
		t.Errorf("palette rotation wrong:\n%s", out)
	}
}

func TestRenderOptions(t *testing.T) {
	s := testScene()
	out := string(Render(s,
		WithPalette("#101010", "#202020"),
		WithEdgeColor("grey"),
		WithEdgeWidth(0.5),
	))

	for _, want := range []string{`fill="#101010"`, `fill="#202020"`, `stroke="grey"`, `stroke-width="0.50"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s:\n%s", want, out)
		}
	}
	// Thread 2 wraps back onto the first custom color.
	if strings.Count(out, `fill="#101010"`) != 2 {
		t.Errorf("two-color palette should wrap thread 2 onto the first color:\n%s", out)
	}
}

func TestWithPaletteEmptyKeepsDefault(t *testing.T) {
	out := string(Render(testScene(), WithPalette()))
	if !strings.Contains(out, `fill="red"`) {
		t.Error("empty palette override should keep the default palette")
	}
}

func TestNegativeThreadDoesNotPanic(t *testing.T) {
	s := scene.Scene{Width: 10, Height: 10, Rects: []scene.Rect{{Width: 1, Height: 1, Thread: -2}}}
	out := string(Render(s))
	if !strings.Contains(out, "fill=") {
		t.Errorf("expected a filled rect, got:\n%s", out)
	}
}
