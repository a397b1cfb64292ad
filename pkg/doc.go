// Package pkg provides the core libraries for spanviz trace visualization.
//
// # Overview
//
// Spanviz turns fork-join execution traces (flat JSON span lists) into
// diagrams that show which tasks ran in parallel, on which thread, and
// where threads sat idle. The pkg directory is organized into four main
// areas:
//
//  1. [trace] - Domain model (span validation, composition tree)
//  2. [render] - Visualization (scene geometry, SVG sink, node-link tree)
//  3. [pipeline] - Orchestration (fetch → build → scene → render)
//  4. [cache] - Content-addressed caching (file, Redis, MongoDB)
//
// # Architecture
//
// The typical data flow through spanviz:
//
//	Trace file or URL
//	         ↓
//	    [trace] package (decode spans, validate, index parent/child links)
//	         ↓
//	    [trace/tree] package (compose tasks into parallel/sequence groups)
//	         ↓
//	    [render/scene] package (place the tree, flatten to viewport geometry)
//	         ↓
//	    SVG/PDF/PNG/JSON output
//
// # Quick Start
//
// Run the full pipeline with caching through a Runner:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/spanviz/pkg/cache"
//	    "github.com/matzehuels/spanviz/pkg/pipeline"
//	)
//
//	backend, _ := cache.NewFileCache("/tmp/spanviz")
//	runner := pipeline.NewRunner(backend, nil, nil)
//	defer runner.Close()
//
//	result, _ := runner.Execute(context.Background(), pipeline.Options{
//	    Source:  "trace.json",
//	    Formats: []string{"svg"},
//	})
//	svg := result.Artifacts["svg"]
//
// Or run the stages individually without caching:
//
//	data, _ := pipeline.Fetch(ctx, pipeline.Options{Source: "trace.json"})
//	idx, root, _ := pipeline.BuildTrace(data)
//	sc := pipeline.GenerateScene(root, opts)
//	artifacts, _ := pipeline.RenderArtifacts(sc, root, opts)
//
// # Main Packages
//
// ## Domain Model
//
// [trace] - Span records and the validated index. Traces are flat JSON
// arrays of spans referencing their parent by ID; [trace.BuildIndex]
// checks IDs, parent links and root uniqueness and exposes the
// parent→children relation in input order.
//
// [trace/tree] - The composition tree. Children of a span tagged "join"
// ran in parallel (laid out side by side); all other children ran in
// sequence (stacked top to bottom) with idle gaps filled in. The tree
// computes its own dimensions, positions and happened-before edges.
//
// [io] - Span list decoding and encoding (JSON arrays on disk or wire).
//
// [stats] - Summary statistics: structural counts from the tree plus a
// busy/idle replay of leaf spans per thread.
//
// ## Visualization
//
// [render/scene] - Viewport-scaled geometry: colored rectangles for
// tasks and gaps, line segments for happened-before edges. Scenes are
// plain serializable data, the cacheable intermediate between layout
// and rendering.
//
// [render/svg] - The SVG sink. Deterministic output: one rect per leaf,
// one line per edge, threads colored from a rotating palette.
//
// [render/nodelink] - The fork-join tree as a directed graph using
// Graphviz. Useful for inspecting composition structure rather than
// timing.
//
// [render] - Top-level utilities for format conversion (SVG to PDF/PNG).
//
// ## Infrastructure
//
// [pipeline] - Complete visualization pipeline (fetch → build → scene →
// render) shared by the CLI and the preview server. Ensures consistent
// behavior across all entry points. Fetched payloads, scenes and
// artifacts are cached; the build stage never is, so malformed input is
// reported on every run.
//
// [cache] - Content-addressed caching with pluggable backends:
// FileCache for the CLI (filesystem), RedisCache and MongoCache for
// shared deployments, NullCache for tests and --no-cache runs.
//
// [httputil] - HTTP fetching with retry and backoff for remote traces.
//
// [observability] - Pluggable hooks for pipeline stage and cache
// events. No-op by default.
//
// [buildinfo] - Version information embedded at build time.
//
// # Common Workflows
//
// Load and validate a trace file:
//
//	spans, _ := spanio.ImportSpans("trace.json")
//	idx, _ := trace.BuildIndex(spans)
//	root := tree.Build(idx)
//
// Compute a scene and render it later:
//
//	sc := scene.FromTree(root, 1920, 1080)
//	_ = scene.WriteSceneFile(sc, "trace.scene.json")
//	...
//	sc, _ = scene.ReadSceneFile("trace.scene.json")
//	doc := svg.Render(sc)
//
// Summarize thread utilization:
//
//	summary := stats.Summarize(idx, root)
//	fmt.Printf("busy %.0f of %.0f\n", summary.TotalBusy, summary.Duration)
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/trace/...      # Specific package
//	go test -run Example         # Examples only
//
// [trace]: https://pkg.go.dev/github.com/matzehuels/spanviz/pkg/trace
// [trace/tree]: https://pkg.go.dev/github.com/matzehuels/spanviz/pkg/trace/tree
// [io]: https://pkg.go.dev/github.com/matzehuels/spanviz/pkg/io
// [stats]: https://pkg.go.dev/github.com/matzehuels/spanviz/pkg/stats
// [render]: https://pkg.go.dev/github.com/matzehuels/spanviz/pkg/render
// [render/scene]: https://pkg.go.dev/github.com/matzehuels/spanviz/pkg/render/scene
// [render/svg]: https://pkg.go.dev/github.com/matzehuels/spanviz/pkg/render/svg
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/spanviz/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/spanviz/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/spanviz/pkg/cache
// [httputil]: https://pkg.go.dev/github.com/matzehuels/spanviz/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/matzehuels/spanviz/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/spanviz/pkg/buildinfo
package pkg
