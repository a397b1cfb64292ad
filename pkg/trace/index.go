package trace

import (
	"errors"
	"fmt"
)

var (
	// ErrReservedID is returned by [BuildIndex] when a span uses ID 0,
	// which is reserved as the no-parent sentinel.
	ErrReservedID = errors.New("span ID 0 is reserved")

	// ErrNegativeID is returned by [BuildIndex] when a span has a negative ID.
	ErrNegativeID = errors.New("span ID must be positive")

	// ErrDuplicateID is returned by [BuildIndex] when two spans share an ID.
	// Span IDs must be unique within a trace.
	ErrDuplicateID = errors.New("duplicate span ID")

	// ErrUnknownParent is returned by [BuildIndex] when a span references a
	// parent ID that does not appear in the trace. Such spans would be
	// silently unreachable from the root.
	ErrUnknownParent = errors.New("unknown parent ID")

	// ErrNoRoot is returned by [BuildIndex] when no span has parent 0.
	ErrNoRoot = errors.New("trace has no root span")

	// ErrMultipleRoots is returned by [BuildIndex] when more than one span
	// has parent 0. A trace must form a single tree.
	ErrMultipleRoots = errors.New("trace has multiple root spans")
)

// Index is the validated, read-only view of a trace: span lookup by ID, the
// parent→children relation in input order, and the unique root.
//
// An Index is immutable after [BuildIndex] returns and safe for concurrent
// readers.
type Index struct {
	spans    map[int64]Span
	children map[int64][]int64
	order    []int64
	root     int64
}

// BuildIndex validates spans and builds the trace index.
//
// Validation failures are fatal input errors, checked in this order per span:
// reserved ID 0, negative ID, duplicate ID. After all spans are indexed,
// parent references are checked ([ErrUnknownParent]) and the root is located
// ([ErrNoRoot], [ErrMultipleRoots]). Errors wrap the sentinel values above
// with the offending span's identity; use errors.Is to classify them.
//
// Children lists preserve the order spans appear in the input. This order is
// load-bearing: it determines sibling order in the composition tree and
// therefore the geometry of the final diagram.
func BuildIndex(spans []Span) (*Index, error) {
	idx := &Index{
		spans:    make(map[int64]Span, len(spans)),
		children: make(map[int64][]int64),
		order:    make([]int64, 0, len(spans)),
	}

	for i, s := range spans {
		if s.ID == 0 {
			return nil, fmt.Errorf("span at position %d: %w", i, ErrReservedID)
		}
		if s.ID < 0 {
			return nil, fmt.Errorf("span at position %d (ID %d): %w", i, s.ID, ErrNegativeID)
		}
		if _, ok := idx.spans[s.ID]; ok {
			return nil, fmt.Errorf("span ID %d: %w", s.ID, ErrDuplicateID)
		}
		idx.spans[s.ID] = s
		idx.order = append(idx.order, s.ID)
	}

	var roots []int64
	for _, id := range idx.order {
		s := idx.spans[id]
		if s.IsRoot() {
			roots = append(roots, id)
			continue
		}
		if _, ok := idx.spans[s.Parent]; !ok {
			return nil, fmt.Errorf("span ID %d references parent %d: %w", id, s.Parent, ErrUnknownParent)
		}
		idx.children[s.Parent] = append(idx.children[s.Parent], id)
	}

	switch len(roots) {
	case 0:
		return nil, ErrNoRoot
	case 1:
		idx.root = roots[0]
	default:
		return nil, fmt.Errorf("found %d spans with parent 0: %w", len(roots), ErrMultipleRoots)
	}

	return idx, nil
}

// Root returns the ID of the unique root span.
func (x *Index) Root() int64 {
	return x.root
}

// Span returns the span with the given ID. The second result is false when
// the ID is not part of the trace.
func (x *Index) Span(id int64) (Span, bool) {
	s, ok := x.spans[id]
	return s, ok
}

// Children returns the IDs of a span's children in input order. The returned
// slice is shared; callers must not modify it.
func (x *Index) Children(id int64) []int64 {
	return x.children[id]
}

// Len returns the number of spans in the trace.
func (x *Index) Len() int {
	return len(x.spans)
}

// IDs returns all span IDs in input order. The returned slice is shared;
// callers must not modify it.
func (x *Index) IDs() []int64 {
	return x.order
}

// Spans returns all spans in input order.
func (x *Index) Spans() []Span {
	out := make([]Span, len(x.order))
	for i, id := range x.order {
		out[i] = x.spans[id]
	}
	return out
}
