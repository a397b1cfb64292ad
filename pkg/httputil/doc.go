// Package httputil fetches remote traces with retry.
//
// # Overview
//
// Trace files can live behind HTTP as easily as on disk: CI jobs
// publish them as build artifacts, services expose them from debug
// endpoints. This package provides the small amount of infrastructure
// needed to consume them reliably:
//
//   - [Fetch]: GET a trace with automatic retry on transient failures
//   - [Retry]: the underlying backoff loop, reusable for other calls
//   - [IsURL]: classify a source argument as remote or local
//
// # Retry
//
// [Retry] re-attempts only errors wrapped in [RetryableError]; anything
// else returns immediately. [Fetch] wraps network errors, 5xx responses
// and 429 rate limits as retryable, so a missing file (404) fails fast
// while a flaky server gets three attempts:
//
//	data, err := httputil.Fetch(ctx, "https://ci.example.com/trace.json")
//
// The delay doubles after each failed attempt (1s, 2s) and the loop
// respects context cancellation between attempts.
//
// # Caching
//
// This package does not cache. The pipeline stores fetched payloads in
// its regular cache backends (see the cache package), keyed by source
// URL, so remote and local inputs flow through the same stages.
package httputil
