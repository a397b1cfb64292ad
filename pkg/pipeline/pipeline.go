// Package pipeline provides the core visualization pipeline for spanviz.
//
// This package implements the complete fetch → build → scene → render
// pipeline that is shared by the CLI and the preview server. By
// centralizing this logic, we ensure consistent behavior across all
// entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Fetch: Load the raw trace JSON from a local file or URL
//  2. Build: Decode and validate spans, compose the fork-join tree
//  3. Scene: Position the tree and flatten it to viewport geometry
//  4. Render: Generate output in various formats (SVG, PNG, PDF, JSON)
//
// Fetched payloads, scenes and artifacts are cached; the build stage
// never is, so malformed input is reported on every run.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Source:  "trace.json",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Fetch only
//	data, err := runner.Fetch(ctx, opts)
//
//	// Build with fetched bytes
//	idx, root, err := pipeline.BuildTrace(data)
//
//	// Render with an existing scene
//	artifacts, err := runner.Render(ctx, sc, root, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/spanviz/pkg/cache"
	"github.com/matzehuels/spanviz/pkg/render/scene"
	"github.com/matzehuels/spanviz/pkg/render/svg"
	"github.com/matzehuels/spanviz/pkg/trace"
	"github.com/matzehuels/spanviz/pkg/trace/tree"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultWidth is the default viewport width in pixels.
	DefaultWidth = scene.DefaultWidth

	// DefaultHeight is the default viewport height in pixels.
	DefaultHeight = scene.DefaultHeight
)

// View constants for visualization views.
const (
	ViewDiagram = "diagram"
	ViewTree    = "tree"
)

// DefaultView is the default visualization view.
const DefaultView = ViewDiagram

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidViews is the set of supported visualization views.
var ValidViews = map[string]bool{
	ViewDiagram: true,
	ViewTree:    true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the visualization pipeline.
// This struct supports JSON serialization for server requests.
type Options struct {
	// Fetch options
	Source  string `json:"source"`
	Refresh bool   `json:"refresh,omitempty"`

	// Scene options
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Render options
	View     string   `json:"view,omitempty"`
	Formats  []string `json:"formats,omitempty"`
	Palette  []string `json:"palette,omitempty"`
	ShowGaps bool     `json:"show_gaps,omitempty"` // Include idle gaps in the tree view
	Detailed bool     `json:"detailed,omitempty"`  // Include span IDs in tree view labels

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this pipeline execution.
	RunID string

	// Index is the validated span index.
	Index *trace.Index

	// Tree is the composed fork-join tree.
	Tree *tree.Node

	// TraceHash is the content hash of the fetched trace bytes.
	TraceHash string

	// Scene is the flattened viewport geometry.
	Scene scene.Scene

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	SpanCount  int
	LeafCount  int
	FetchTime  time.Duration
	BuildTime  time.Duration
	SceneTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	FetchHit  bool // Whether the trace payload came from cache (remote sources only)
	SceneHit  bool // Whether the scene came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateView checks that a visualization view is valid.
func ValidateView(view string) error {
	if !ValidViews[view] {
		return fmt.Errorf("invalid view: %q (must be one of: diagram, tree)", view)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForFetch(); err != nil {
		return err
	}
	o.SetSceneDefaults()
	o.SetRenderDefaults()
	if err := ValidateView(o.View); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForFetch checks required fields for fetching.
func (o *Options) ValidateForFetch() error {
	if o.Source == "" {
		return fmt.Errorf("source is required")
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// SetSceneDefaults sets default values for scene computation.
func (o *Options) SetSceneDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.View == "" {
		o.View = DefaultView
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if len(o.Palette) == 0 {
		o.Palette = append([]string(nil), svg.DefaultPalette...)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetSceneDefaults()
	o.SetRenderDefaults()
	if err := ValidateView(o.View); err != nil {
		return err
	}
	return ValidateFormats(o.Formats)
}

// IsDiagram returns true if this is a diagram visualization.
func (o *Options) IsDiagram() bool {
	return o.View == "" || o.View == ViewDiagram
}

// IsTree returns true if this is a tree visualization.
func (o *Options) IsTree() bool {
	return o.View == ViewTree
}

// SceneKeyOpts returns cache key options for scene computation.
func (o *Options) SceneKeyOpts() cache.SceneKeyOpts {
	return cache.SceneKeyOpts{
		Width:  o.Width,
		Height: o.Height,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		View:     o.View,
		Palette:  o.Palette,
		ShowGaps: o.ShowGaps,
		Detailed: o.Detailed,
	}
}
