package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/spanviz/pkg/cache"
	"github.com/matzehuels/spanviz/pkg/pipeline"
)

func newTestCLI() *CLI {
	return New(io.Discard, log.InfoLevel)
}

func TestCacheDir(t *testing.T) {
	// Clear XDG_CACHE_HOME to test default behavior
	oldXdg := os.Getenv("XDG_CACHE_HOME")
	os.Unsetenv("XDG_CACHE_HOME")
	defer func() {
		if oldXdg != "" {
			os.Setenv("XDG_CACHE_HOME", oldXdg)
		}
	}()

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	if dir == "" {
		t.Error("cacheDir() returned empty string")
	}

	home, _ := os.UserHomeDir()
	if !strings.HasPrefix(dir, home) {
		t.Errorf("cacheDir() = %q, should be under home %q", dir, home)
	}

	if !strings.HasSuffix(dir, appName) {
		t.Errorf("cacheDir() = %q, should end with %q", dir, appName)
	}

	if !strings.Contains(dir, ".cache") {
		t.Errorf("cacheDir() = %q, should contain '.cache'", dir)
	}
}

func TestCacheDirStructure(t *testing.T) {
	// Clear XDG_CACHE_HOME to test default behavior
	oldXdg := os.Getenv("XDG_CACHE_HOME")
	os.Unsetenv("XDG_CACHE_HOME")
	defer func() {
		if oldXdg != "" {
			os.Setenv("XDG_CACHE_HOME", oldXdg)
		}
	}()

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := "/tmp/custom-cache"
	oldXdg := os.Getenv("XDG_CACHE_HOME")
	os.Setenv("XDG_CACHE_HOME", customCache)
	defer func() {
		if oldXdg != "" {
			os.Setenv("XDG_CACHE_HOME", oldXdg)
		} else {
			os.Unsetenv("XDG_CACHE_HOME")
		}
	}()

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestRootCommandUse(t *testing.T) {
	root := newTestCLI().RootCommand()
	if root.Use != "spanviz" {
		t.Errorf("root.Use = %q, want %q", root.Use, "spanviz")
	}
}

func TestRootCommandSubcommands(t *testing.T) {
	root := newTestCLI().RootCommand()

	want := []string{"render", "layout", "visualize", "stats", "inspect", "serve", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("RootCommand() missing subcommand %q", name)
		}
	}
}

func TestNewCacheNoCache(t *testing.T) {
	backend, err := newTestCLI().newCache(true)
	if err != nil {
		t.Fatalf("newCache(true) error: %v", err)
	}
	defer backend.Close()

	if _, ok := backend.(*cache.NullCache); !ok {
		t.Errorf("newCache(true) = %T, want *cache.NullCache", backend)
	}
}

func TestNewCacheBackendNone(t *testing.T) {
	c := newTestCLI()
	c.Config.Cache.Backend = "none"

	backend, err := c.newCache(false)
	if err != nil {
		t.Fatalf("newCache() error: %v", err)
	}
	defer backend.Close()

	if _, ok := backend.(*cache.NullCache); !ok {
		t.Errorf("newCache() with backend none = %T, want *cache.NullCache", backend)
	}
}

func TestNewCacheBackendFile(t *testing.T) {
	c := newTestCLI()
	c.Config.Cache.Backend = "file"
	c.Config.Cache.Dir = t.TempDir()

	backend, err := c.newCache(false)
	if err != nil {
		t.Fatalf("newCache() error: %v", err)
	}
	defer backend.Close()

	if _, ok := backend.(*cache.FileCache); !ok {
		t.Errorf("newCache() with backend file = %T, want *cache.FileCache", backend)
	}
}

func TestNewCacheUnknownBackend(t *testing.T) {
	c := newTestCLI()
	c.Config.Cache.Backend = "etcd"

	if _, err := c.newCache(false); err == nil {
		t.Error("newCache() with unknown backend should error")
	}
}

func TestSetCLIDefaults(t *testing.T) {
	opts := pipeline.Options{}
	setCLIDefaults(&opts)

	if opts.Width != pipeline.DefaultWidth {
		t.Errorf("Width = %v, want %v", opts.Width, pipeline.DefaultWidth)
	}
	if opts.Height != pipeline.DefaultHeight {
		t.Errorf("Height = %v, want %v", opts.Height, pipeline.DefaultHeight)
	}
	if opts.View != pipeline.ViewDiagram {
		t.Errorf("View = %q, want %q", opts.View, pipeline.ViewDiagram)
	}
	if len(opts.Formats) == 0 {
		t.Error("Formats should default to at least one entry")
	}
	if !opts.ShowGaps {
		t.Error("setCLIDefaults() should enable ShowGaps")
	}
}
