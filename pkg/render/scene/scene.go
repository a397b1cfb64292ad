// Package scene flattens a positioned composition tree into the
// viewport-scaled geometry that sinks actually draw: colored rectangles
// for tasks and gaps, line segments for happened-before edges.
//
// A scene is the cacheable intermediate artifact between layout and
// rendering. It is plain data with stable JSON encoding, so the same
// scene can be written to disk, served over HTTP, or fed to the SVG
// sink, and re-rendering it is byte-for-byte reproducible.
package scene

import (
	"encoding/json"
	"fmt"
	"os"
)

// Default viewport dimensions in pixels.
const (
	DefaultWidth  = 1920.0
	DefaultHeight = 1080.0
)

// Scene is the flattened, viewport-scaled form of one trace.
type Scene struct {
	// Width and Height are the viewport dimensions the geometry was
	// scaled to.
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`

	Rects    []Rect    `json:"rects" bson:"rects"`
	Segments []Segment `json:"segments,omitempty" bson:"segments,omitempty"`
}

// Rect is one drawable rectangle. Coordinates and sizes are in pixels;
// Start and End keep the original timestamps for tooltips and stats.
type Rect struct {
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`

	Thread int     `json:"thread" bson:"thread"`
	Span   int64   `json:"span,omitempty" bson:"span,omitempty"`
	Gap    bool    `json:"gap,omitempty" bson:"gap,omitempty"`
	Start  float64 `json:"start" bson:"start"`
	End    float64 `json:"end" bson:"end"`
}

// Segment is one happened-before line in pixels.
type Segment struct {
	X1 float64 `json:"x1" bson:"x1"`
	Y1 float64 `json:"y1" bson:"y1"`
	X2 float64 `json:"x2" bson:"x2"`
	Y2 float64 `json:"y2" bson:"y2"`
}

// MarshalScene serializes a Scene to pretty-printed JSON bytes.
func MarshalScene(s Scene) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// UnmarshalScene deserializes JSON bytes into a Scene.
// A scene without rectangles is rejected: every valid trace produces at
// least its root leaf.
func UnmarshalScene(data []byte) (Scene, error) {
	var s Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return Scene{}, fmt.Errorf("unmarshal scene: %w", err)
	}
	if len(s.Rects) == 0 {
		return Scene{}, fmt.Errorf("scene must contain rectangles")
	}
	return s, nil
}

// WriteSceneFile writes a Scene to a JSON file.
func WriteSceneFile(s Scene, path string) error {
	data, err := MarshalScene(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadSceneFile reads a Scene from a JSON file.
func ReadSceneFile(path string) (Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scene{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalScene(data)
}
