package cache

// ScopedKeyer wraps a Keyer with a prefix to isolate namespaces.
// Useful when several deployments share one Redis or MongoDB backend
// and their entries must not collide.
//
// Example usage:
//
//	// Per-environment keys on a shared backend
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// TraceKey generates a prefixed key for fetched trace payloads.
func (k *ScopedKeyer) TraceKey(source string) string {
	return k.prefix + k.inner.TraceKey(source)
}

// SceneKey generates a prefixed key for computed scenes.
func (k *ScopedKeyer) SceneKey(traceHash string, opts SceneKeyOpts) string {
	return k.prefix + k.inner.SceneKey(traceHash, opts)
}

// ArtifactKey generates a prefixed key for rendered artifacts.
func (k *ScopedKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(sceneHash, opts)
}
