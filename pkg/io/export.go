package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/spanviz/pkg/trace"
)

// WriteSpans encodes spans as a pretty-printed JSON array to w.
// The output can be re-imported with [ReadSpans] for round-trip
// processing, and is what the HTTP server returns from its trace
// endpoint.
func WriteSpans(spans []trace.Span, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(spans); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportSpans writes spans to a JSON file at path.
// This is a convenience wrapper around [WriteSpans] for file-based
// output.
func ExportSpans(spans []trace.Span, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteSpans(spans, f)
}
