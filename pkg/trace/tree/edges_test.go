package tree

import (
	"testing"

	"github.com/matzehuels/spanviz/pkg/trace"
)

func TestTaskConnectors(t *testing.T) {
	task := NewTask(2, 6, 0)
	task.Place(3, 5)

	if got := task.Entries(); len(got) != 1 || got[0] != (Point{X: 5, Y: 5}) {
		t.Errorf("entries = %v, want [(5, 5)]", got)
	}
	if got := task.Exits(); len(got) != 1 || got[0] != (Point{X: 5, Y: 6}) {
		t.Errorf("exits = %v, want [(5, 6)]", got)
	}
}

func TestParallelConnectorsUnionBranches(t *testing.T) {
	par := NewParallel(NewTask(0, 1, 0), NewTask(0, 3, 1))
	par.Place(0, 0)

	wantIn := []Point{{X: 0.5, Y: 0}, {X: 2.5, Y: 0}}
	wantOut := []Point{{X: 0.5, Y: 1}, {X: 2.5, Y: 1}}
	checkPoints(t, "entries", par.Entries(), wantIn)
	checkPoints(t, "exits", par.Exits(), wantOut)
}

func TestSequenceConnectorsUseEnds(t *testing.T) {
	seq := NewSequence(NewTask(0, 2, 0), NewTask(2, 4, 0), NewTask(4, 6, 0))
	seq.Place(0, 0)

	checkPoints(t, "entries", seq.Entries(), []Point{{X: 1, Y: 0}})
	checkPoints(t, "exits", seq.Exits(), []Point{{X: 1, Y: 3}})
}

func TestEdgesFlatSequence(t *testing.T) {
	seq := NewSequence(NewTask(0, 2, 0), NewTask(2, 4, 0), NewTask(4, 6, 0))
	seq.Place(0, 0)

	want := []Edge{
		{From: Point{X: 1, Y: 1}, To: Point{X: 1, Y: 1}},
		{From: Point{X: 1, Y: 2}, To: Point{X: 1, Y: 2}},
	}
	checkEdges(t, seq.Edges(), want)
}

func TestEdgesFanOutAndBackIn(t *testing.T) {
	seq := NewSequence(
		NewTask(0, 2, 0),
		NewParallel(NewTask(2, 3, 0), NewTask(2, 3, 1)),
		NewTask(3, 5, 0),
	)
	seq.Place(0, 0)

	want := []Edge{
		{From: Point{X: 1, Y: 1}, To: Point{X: 0.5, Y: 1}},
		{From: Point{X: 1, Y: 1}, To: Point{X: 1.5, Y: 1}},
		{From: Point{X: 0.5, Y: 2}, To: Point{X: 1, Y: 2}},
		{From: Point{X: 1.5, Y: 2}, To: Point{X: 1, Y: 2}},
	}
	checkEdges(t, seq.Edges(), want)
}

func TestEdgesNestedSequence(t *testing.T) {
	seq := NewSequence(
		NewTask(0, 1, 0),
		NewSequence(NewTask(1, 2, 0), NewTask(2, 3, 0)),
	)
	seq.Place(0, 0)

	// Inner edges come first, then the outer connection into the nested
	// sequence's first step.
	want := []Edge{
		{From: Point{X: 0.5, Y: 2}, To: Point{X: 0.5, Y: 2}},
		{From: Point{X: 0.5, Y: 1}, To: Point{X: 0.5, Y: 1}},
	}
	checkEdges(t, seq.Edges(), want)
}

func TestEdgesFromTrace(t *testing.T) {
	idx := mustIndex(t, []trace.Span{
		{ID: 1, Parent: 0, Start: 0, End: 10, Thread: 0},
		{ID: 2, Parent: 1, Start: 2, End: 4, Thread: 0},
		{ID: 3, Parent: 1, Start: 6, End: 8, Thread: 0},
	})

	root := Build(idx)
	root.Place(0, 0)

	// Five leaves in a flat sequence yield four connections.
	if got := root.Edges(); len(got) != 4 {
		t.Errorf("edges = %d, want 4", len(got))
	}
}

func TestEdgesLeafHasNone(t *testing.T) {
	task := NewTask(0, 5, 0)
	task.Place(0, 0)
	if got := task.Edges(); len(got) != 0 {
		t.Errorf("edges = %v, want none", got)
	}
}

func checkPoints(t *testing.T, name string, got, want []Point) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s[%d] = %v, want %v", name, i, got[i], want[i])
		}
	}
}

func checkEdges(t *testing.T, got, want []Edge) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("edges = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("edge[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
