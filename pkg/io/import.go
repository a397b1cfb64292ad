package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/spanviz/pkg/trace"
)

// ReadSpans decodes a JSON span array from r.
//
// The input must be a JSON array of span objects:
//
//	[
//	  {"ID": 1, "parent": 0, "start": 0.0, "end": 10.0, "thread": 0},
//	  {"ID": 2, "parent": 1, "start": 2.0, "end": 4.0, "thread": 1, "tag": "sort"}
//	]
//
// Decoding is deliberately lenient: unknown fields are ignored and no
// structural validation happens here. Call [trace.BuildIndex] on the
// result to validate IDs, parent links and the unique root before
// using the spans.
//
// ReadSpans does not close r.
func ReadSpans(r io.Reader) ([]trace.Span, error) {
	var spans []trace.Span
	if err := json.NewDecoder(r).Decode(&spans); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return spans, nil
}

// ImportSpans reads a JSON trace file at path and returns its spans.
//
// ImportSpans opens the file, decodes it using [ReadSpans], and closes
// the file. Errors wrap the underlying cause with the file path for
// context.
func ImportSpans(path string) ([]trace.Span, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadSpans(f)
}
