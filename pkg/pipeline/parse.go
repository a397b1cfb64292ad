package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/matzehuels/spanviz/pkg/httputil"
	spanio "github.com/matzehuels/spanviz/pkg/io"
	"github.com/matzehuels/spanviz/pkg/trace"
	"github.com/matzehuels/spanviz/pkg/trace/tree"
)

// Fetch loads the raw trace payload from a local file or URL.
//
// Remote sources are retried on transient failures; local files are
// read directly. Caching happens in the Runner, not here.
func Fetch(ctx context.Context, opts Options) ([]byte, error) {
	if httputil.IsURL(opts.Source) {
		data, err := httputil.Fetch(ctx, opts.Source)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", opts.Source, err)
		}
		return data, nil
	}

	data, err := os.ReadFile(opts.Source)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", opts.Source, err)
	}
	return data, nil
}

// BuildTrace decodes the trace payload, validates it and composes the
// fork-join tree.
//
// Validation failures (duplicate IDs, unknown parents, missing root)
// surface here as errors from [trace.BuildIndex]. This stage is never
// cached: a malformed trace must be reported on every run, not just
// the first.
func BuildTrace(data []byte) (*trace.Index, *tree.Node, error) {
	spans, err := spanio.ReadSpans(bytes.NewReader(data))
	if err != nil {
		return nil, nil, err
	}

	idx, err := trace.BuildIndex(spans)
	if err != nil {
		return nil, nil, err
	}

	return idx, tree.Build(idx), nil
}
