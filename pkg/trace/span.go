// Package trace models fork-join execution traces: flat lists of timed spans
// that reference their parent span by ID, forming a tree rooted at the single
// span with parent 0.
//
// A trace file is a JSON array of span records:
//
//	[
//	  {"ID": 1, "parent": 0, "start": 0.0, "end": 10.0, "thread": 0, "tag": ""},
//	  {"ID": 2, "parent": 1, "start": 2.0, "end": 4.0, "thread": 1, "tag": "join"}
//	]
//
// [BuildIndex] validates the list and produces an [Index], the read-only view
// the rest of the pipeline consumes.
package trace

// TagJoin marks a span whose children executed concurrently (a fork-join
// synchronization point). Any other tag value composes children sequentially.
const TagJoin = "join"

// RootParent is the parent value identifying a root span. It is a sentinel,
// never a valid span ID.
const RootParent = 0

// Span is one recorded execution interval. IDs are positive; parent 0 marks
// the root. Start and End are timestamps in the trace's own time unit
// (typically nanoseconds since the run began).
type Span struct {
	ID     int64   `json:"ID" bson:"id"`
	Parent int64   `json:"parent" bson:"parent"`
	Start  float64 `json:"start" bson:"start"`
	End    float64 `json:"end" bson:"end"`
	Thread int     `json:"thread" bson:"thread"`
	Tag    string  `json:"tag,omitempty" bson:"tag,omitempty"`
}

// Duration returns the span's extent (End - Start).
func (s Span) Duration() float64 {
	return s.End - s.Start
}

// IsRoot reports whether the span has no parent.
func (s Span) IsRoot() bool {
	return s.Parent == RootParent
}
