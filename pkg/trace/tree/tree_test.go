package tree

import "testing"

func TestFootprints(t *testing.T) {
	tests := []struct {
		name  string
		node  *Node
		wantW float64
		wantH float64
	}{
		{"task", NewTask(2, 6, 0), 4, 1},
		{"gap", NewGap(3, 3, 1), 0, 1},
		{"parallel sums widths", NewParallel(NewTask(0, 2, 0), NewTask(0, 5, 1)), 7, 1},
		{"parallel takes tallest", NewParallel(NewTask(0, 1, 0), NewSequence(NewTask(0, 1, 1), NewTask(1, 2, 1))), 2, 2},
		{"sequence takes widest", NewSequence(NewTask(0, 2, 0), NewTask(2, 7, 0)), 5, 2},
		{"empty parallel", NewParallel(), 0, 0},
		{"empty sequence", NewSequence(), 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := tt.node.Dimensions()
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("dimensions = (%v, %v), want (%v, %v)", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindTask, "task"},
		{KindParallel, "parallel"},
		{KindSequence, "sequence"},
		{Kind(42), "kind(42)"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}

func TestWalkPreorder(t *testing.T) {
	root := NewSequence(
		NewTask(0, 1, 0),
		NewParallel(NewTask(1, 2, 0), NewTask(1, 2, 1)),
	)

	var kinds []Kind
	var depths []int
	root.Walk(func(n *Node, depth int) {
		kinds = append(kinds, n.Kind)
		depths = append(depths, depth)
	})

	wantKinds := []Kind{KindSequence, KindTask, KindParallel, KindTask, KindTask}
	wantDepths := []int{0, 1, 1, 2, 2}
	if len(kinds) != len(wantKinds) {
		t.Fatalf("visited %d nodes, want %d", len(kinds), len(wantKinds))
	}
	for i := range wantKinds {
		if kinds[i] != wantKinds[i] || depths[i] != wantDepths[i] {
			t.Errorf("visit %d = (%v, %d), want (%v, %d)", i, kinds[i], depths[i], wantKinds[i], wantDepths[i])
		}
	}
}

func TestGapString(t *testing.T) {
	if got := NewGap(2, 4, 1).String(); got != "~2..4@1" {
		t.Errorf("String() = %q, want %q", got, "~2..4@1")
	}
}
