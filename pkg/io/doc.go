// Package io provides JSON import and export for span traces.
//
// # Overview
//
// A trace is a flat JSON array of spans, one object per recorded
// execution interval. The format is the contract between spanviz and
// whatever produced the trace (an instrumented scheduler, a test
// harness, a converter from another profiler), so it is kept small and
// explicit:
//
//	[
//	  {"ID": 1, "parent": 0, "start": 0.0, "end": 10.0, "thread": 0},
//	  {"ID": 2, "parent": 1, "start": 2.0, "end": 4.0,  "thread": 0, "tag": "sort"},
//	  {"ID": 3, "parent": 1, "start": 6.0, "end": 8.0,  "thread": 1, "tag": "join"}
//	]
//
// # Span Fields
//
// Required:
//   - ID: positive integer, unique within the trace
//   - parent: ID of the enclosing span, or 0 for the single root
//   - start, end: timestamps in arbitrary but consistent units
//   - thread: worker that executed the span
//
// Optional:
//   - tag: free-form label; the value "join" marks a fork-join parent
//     whose children ran in parallel
//
// The ID zero is reserved as the root sentinel and must not be used by
// any span. Exactly one span must have parent 0.
//
// # Division of Labor
//
// This package only moves bytes: [ReadSpans] and [ImportSpans] decode,
// [WriteSpans] and [ExportSpans] encode. Structural validation lives in
// [trace.BuildIndex], which checks IDs, parent links and the unique
// root and reports malformed input before anything is built. Keeping
// the two apart means a tool can load, filter and re-export a broken
// trace it could never visualize.
//
// # Ordering
//
// Span order in the array is preserved on import and carries meaning:
// siblings are composed in input order, which for well-formed traces is
// chronological.
package io
