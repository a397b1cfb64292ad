package cache

import (
	"context"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// TraceKey keeps the source readable
	traceKey := k.TraceKey("https://example.com/trace.json")
	if traceKey != "trace:https://example.com/trace.json" {
		t.Errorf("TraceKey unexpected: %s", traceKey)
	}

	// SceneKey should include options in hash
	sk1 := k.SceneKey("hash123", SceneKeyOpts{Width: 1920, Height: 1080})
	sk2 := k.SceneKey("hash123", SceneKeyOpts{Width: 800, Height: 1080})
	if sk1 == sk2 {
		t.Error("Different SceneKeyOpts should produce different keys")
	}
	if sk1 != k.SceneKey("hash123", SceneKeyOpts{Width: 1920, Height: 1080}) {
		t.Error("SceneKey should be deterministic")
	}

	// ArtifactKey
	ak1 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg", View: "diagram"})
	ak2 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "png", View: "diagram"})
	ak3 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg", View: "tree"})
	if ak1 == ak2 || ak1 == ak3 {
		t.Error("Different ArtifactKeyOpts should produce different keys")
	}

	// Palette changes the artifact key
	ap1 := k.ArtifactKey("h", ArtifactKeyOpts{Format: "svg", View: "diagram", Palette: []string{"red"}})
	ap2 := k.ArtifactKey("h", ArtifactKeyOpts{Format: "svg", View: "diagram", Palette: []string{"blue"}})
	if ap1 == ap2 {
		t.Error("Different palettes should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "staging:")

	// All keys should be prefixed
	traceKey := scoped.TraceKey("trace.json")
	if traceKey != "staging:trace:trace.json" {
		t.Errorf("ScopedKeyer TraceKey unexpected: %s", traceKey)
	}

	sceneKey := scoped.SceneKey("abc", SceneKeyOpts{})
	if len(sceneKey) < 10 || sceneKey[:8] != "staging:" {
		t.Errorf("ScopedKeyer SceneKey should be prefixed: %s", sceneKey)
	}

	artifactKey := scoped.ArtifactKey("abc", ArtifactKeyOpts{Format: "svg"})
	if artifactKey[:8] != "staging:" {
		t.Errorf("ScopedKeyer ArtifactKey should be prefixed: %s", artifactKey)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.TraceKey("t.json")
	if key != "prefix:trace:t.json" {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}
