package trace

import (
	"errors"
	"testing"
)

func TestBuildIndex(t *testing.T) {
	tests := []struct {
		name    string
		spans   []Span
		wantErr error
		check   func(t *testing.T, x *Index)
	}{
		{
			name:  "single root",
			spans: []Span{{ID: 1, Parent: 0, Start: 0, End: 10, Thread: 0}},
			check: func(t *testing.T, x *Index) {
				if x.Root() != 1 {
					t.Errorf("Root() = %d, want 1", x.Root())
				}
				if x.Len() != 1 {
					t.Errorf("Len() = %d, want 1", x.Len())
				}
				if got := x.Children(1); len(got) != 0 {
					t.Errorf("Children(1) = %v, want empty", got)
				}
			},
		},
		{
			name: "children keep input order",
			spans: []Span{
				{ID: 5, Parent: 0, Start: 0, End: 10},
				{ID: 9, Parent: 5, Start: 6, End: 8},
				{ID: 2, Parent: 5, Start: 1, End: 3},
				{ID: 7, Parent: 2, Start: 1, End: 2},
			},
			check: func(t *testing.T, x *Index) {
				got := x.Children(5)
				want := []int64{9, 2}
				if len(got) != len(want) {
					t.Fatalf("Children(5) = %v, want %v", got, want)
				}
				for i := range want {
					if got[i] != want[i] {
						t.Errorf("Children(5)[%d] = %d, want %d", i, got[i], want[i])
					}
				}
			},
		},
		{
			name: "zero ID rejected",
			spans: []Span{
				{ID: 1, Parent: 0},
				{ID: 0, Parent: 1},
			},
			wantErr: ErrReservedID,
		},
		{
			name: "negative ID rejected",
			spans: []Span{
				{ID: 1, Parent: 0},
				{ID: -3, Parent: 1},
			},
			wantErr: ErrNegativeID,
		},
		{
			name: "duplicate ID rejected",
			spans: []Span{
				{ID: 1, Parent: 0},
				{ID: 2, Parent: 1},
				{ID: 2, Parent: 1},
			},
			wantErr: ErrDuplicateID,
		},
		{
			name: "unknown parent rejected",
			spans: []Span{
				{ID: 1, Parent: 0},
				{ID: 2, Parent: 42},
			},
			wantErr: ErrUnknownParent,
		},
		{
			name:    "empty trace has no root",
			spans:   nil,
			wantErr: ErrNoRoot,
		},
		{
			name: "no root rejected",
			spans: []Span{
				{ID: 1, Parent: 2},
				{ID: 2, Parent: 1},
			},
			wantErr: ErrNoRoot,
		},
		{
			name: "multiple roots rejected",
			spans: []Span{
				{ID: 1, Parent: 0},
				{ID: 2, Parent: 0},
			},
			wantErr: ErrMultipleRoots,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, err := BuildIndex(tt.spans)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("BuildIndex() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("BuildIndex() error = %v", err)
			}
			if tt.check != nil {
				tt.check(t, x)
			}
		})
	}
}

func TestIndexSpans(t *testing.T) {
	spans := []Span{
		{ID: 3, Parent: 0, Start: 0, End: 5},
		{ID: 1, Parent: 3, Start: 1, End: 2},
		{ID: 8, Parent: 3, Start: 3, End: 4},
	}
	x, err := BuildIndex(spans)
	if err != nil {
		t.Fatalf("BuildIndex() error = %v", err)
	}

	got := x.Spans()
	if len(got) != len(spans) {
		t.Fatalf("Spans() returned %d spans, want %d", len(got), len(spans))
	}
	for i := range spans {
		if got[i] != spans[i] {
			t.Errorf("Spans()[%d] = %+v, want %+v", i, got[i], spans[i])
		}
	}

	ids := x.IDs()
	for i, want := range []int64{3, 1, 8} {
		if ids[i] != want {
			t.Errorf("IDs()[%d] = %d, want %d", i, ids[i], want)
		}
	}
}

func TestSpanDuration(t *testing.T) {
	tests := []struct {
		name string
		span Span
		want float64
	}{
		{"positive", Span{Start: 2, End: 10}, 8},
		{"zero", Span{Start: 5, End: 5}, 0},
		{"fractional", Span{Start: 0.5, End: 2.25}, 1.75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.span.Duration(); got != tt.want {
				t.Errorf("Duration() = %v, want %v", got, tt.want)
			}
		})
	}
}
