package scene

import (
	"path/filepath"
	"reflect"
	"testing"
)

func sampleScene() Scene {
	return Scene{
		Width:  1920,
		Height: 1080,
		Rects: []Rect{
			{X: 0, Y: 0, Width: 1920, Height: 216, Thread: 0, Gap: true, Start: 0, End: 2},
			{X: 0, Y: 216, Width: 1920, Height: 216, Thread: 1, Span: 2, Start: 2, End: 4},
		},
		Segments: []Segment{
			{X1: 960, Y1: 216, X2: 960, Y2: 216},
		},
	}
}

func TestSceneRoundTrip(t *testing.T) {
	s := sampleScene()

	data, err := MarshalScene(s)
	if err != nil {
		t.Fatalf("MarshalScene: %v", err)
	}
	got, err := UnmarshalScene(data)
	if err != nil {
		t.Fatalf("UnmarshalScene: %v", err)
	}
	if !reflect.DeepEqual(got, s) {
		t.Errorf("round trip changed scene:\ngot  %+v\nwant %+v", got, s)
	}
}

func TestUnmarshalSceneRejectsEmpty(t *testing.T) {
	if _, err := UnmarshalScene([]byte(`{"width": 100, "height": 100}`)); err == nil {
		t.Error("expected error for scene without rectangles")
	}
	if _, err := UnmarshalScene([]byte(`not json`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestSceneFileRoundTrip(t *testing.T) {
	s := sampleScene()
	path := filepath.Join(t.TempDir(), "trace.scene.json")

	if err := WriteSceneFile(s, path); err != nil {
		t.Fatalf("WriteSceneFile: %v", err)
	}
	got, err := ReadSceneFile(path)
	if err != nil {
		t.Fatalf("ReadSceneFile: %v", err)
	}
	if !reflect.DeepEqual(got, s) {
		t.Error("file round trip changed scene")
	}
}

func TestReadSceneFileMissing(t *testing.T) {
	if _, err := ReadSceneFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
