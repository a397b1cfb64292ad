// Package cache provides pluggable byte caches for pipeline results.
//
// Three stages of the pipeline cache their output: fetched remote
// traces, computed scenes, and rendered artifacts. All backends speak
// the same [Cache] interface, so the CLI can run against local files
// while a server deployment points the identical pipeline at Redis or
// MongoDB. Keys are produced by a [Keyer] so every consumer agrees on
// the layout and a shared backend stays coherent.
package cache

import (
	"context"
	"time"
)

// Cache TTLs per pipeline stage. Fetched traces can change at their
// source, so they expire quickly; scenes and artifacts are pure
// functions of the trace bytes and options and can live longer.
const (
	TTLTrace    = 24 * time.Hour
	TTLScene    = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiry.
//
// Get returns the stored bytes and whether the key was present; a
// missing or expired entry is a miss, not an error. A ttl of zero in
// Set stores the entry without expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// TraceKey keys fetched trace payloads by their source URL.
	TraceKey(source string) string

	// SceneKey keys computed scenes by the trace content hash and the
	// scene options that shaped them.
	SceneKey(traceHash string, opts SceneKeyOpts) string

	// ArtifactKey keys rendered outputs by the scene content hash and
	// the render options that shaped them.
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string
}

// SceneKeyOpts are the options that change scene geometry.
type SceneKeyOpts struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ArtifactKeyOpts are the options that change rendered bytes.
type ArtifactKeyOpts struct {
	Format   string   `json:"format"`
	View     string   `json:"view"`
	Palette  []string `json:"palette,omitempty"`
	ShowGaps bool     `json:"show_gaps,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`
}

// DefaultKeyer is the standard key layout.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// TraceKey generates a key for fetched trace payloads.
// Sources are kept readable in the key; file backends hash keys anyway.
func (k *DefaultKeyer) TraceKey(source string) string {
	return "trace:" + source
}

// SceneKey generates a key for computed scenes.
func (k *DefaultKeyer) SceneKey(traceHash string, opts SceneKeyOpts) string {
	return hashKey("scene", traceHash, opts)
}

// ArtifactKey generates a key for rendered artifacts.
func (k *DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sceneHash, opts)
}
