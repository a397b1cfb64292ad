package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spanviz/pkg/pipeline"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Cache.Backend != "file" {
		t.Errorf("Cache.Backend = %q, want %q", cfg.Cache.Backend, "file")
	}
	if cfg.Serve.Addr != "localhost:8080" {
		t.Errorf("Serve.Addr = %q, want %q", cfg.Serve.Addr, "localhost:8080")
	}
}

func TestLoadConfigExplicitMissing(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("LoadConfig() with explicit missing path should error")
	}
}

func TestLoadConfigMissingDefault(t *testing.T) {
	// Point XDG_CONFIG_HOME at an empty dir so no config file is found.
	old := os.Getenv("XDG_CONFIG_HOME")
	os.Setenv("XDG_CONFIG_HOME", t.TempDir())
	defer func() {
		if old != "" {
			os.Setenv("XDG_CONFIG_HOME", old)
		} else {
			os.Unsetenv("XDG_CONFIG_HOME")
		}
	}()

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.Cache.Backend != "file" {
		t.Errorf("Cache.Backend = %q, want default %q", cfg.Cache.Backend, "file")
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[render]
width = 1200.0
palette = ["#111111", "#222222"]

[cache]
backend = "redis"
redis_addr = "localhost:6379"

[serve]
addr = "0.0.0.0:9999"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.Render.Width != 1200 {
		t.Errorf("Render.Width = %v, want 1200", cfg.Render.Width)
	}
	if cfg.Render.Height != 0 {
		t.Errorf("Render.Height = %v, want 0 (unset)", cfg.Render.Height)
	}
	if len(cfg.Render.Palette) != 2 || cfg.Render.Palette[0] != "#111111" {
		t.Errorf("Render.Palette = %v, want two entries", cfg.Render.Palette)
	}
	if cfg.Cache.Backend != "redis" {
		t.Errorf("Cache.Backend = %q, want %q", cfg.Cache.Backend, "redis")
	}
	if cfg.Cache.RedisAddr != "localhost:6379" {
		t.Errorf("Cache.RedisAddr = %q, want %q", cfg.Cache.RedisAddr, "localhost:6379")
	}
	if cfg.Serve.Addr != "0.0.0.0:9999" {
		t.Errorf("Serve.Addr = %q, want %q", cfg.Serve.Addr, "0.0.0.0:9999")
	}
}

func TestLoadConfigInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not toml ["), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() with invalid TOML should error")
	}
}

func TestApplyRenderConfigPrecedence(t *testing.T) {
	c := newTestCLI()
	c.Config.Render.Width = 1024
	c.Config.Render.Height = 768
	c.Config.Render.Palette = []string{"#abc"}

	cmd := &cobra.Command{}
	cmd.Flags().Float64("width", pipeline.DefaultWidth, "")
	cmd.Flags().Float64("height", pipeline.DefaultHeight, "")
	cmd.Flags().String("palette", "", "")

	// Simulate the user passing --width on the command line.
	if err := cmd.Flags().Set("width", "500"); err != nil {
		t.Fatalf("set flag: %v", err)
	}

	opts := pipeline.Options{Width: 500, Height: pipeline.DefaultHeight}
	c.applyRenderConfig(cmd, &opts)

	if opts.Width != 500 {
		t.Errorf("Width = %v, want flag value 500", opts.Width)
	}
	if opts.Height != 768 {
		t.Errorf("Height = %v, want config value 768", opts.Height)
	}
	if len(opts.Palette) != 1 || opts.Palette[0] != "#abc" {
		t.Errorf("Palette = %v, want config palette", opts.Palette)
	}
}

func TestApplyRenderConfigEmptyConfig(t *testing.T) {
	c := newTestCLI()

	cmd := &cobra.Command{}
	cmd.Flags().Float64("width", pipeline.DefaultWidth, "")
	cmd.Flags().Float64("height", pipeline.DefaultHeight, "")
	cmd.Flags().String("palette", "", "")

	opts := pipeline.Options{Width: pipeline.DefaultWidth, Height: pipeline.DefaultHeight}
	c.applyRenderConfig(cmd, &opts)

	if opts.Width != pipeline.DefaultWidth {
		t.Errorf("Width = %v, want untouched default", opts.Width)
	}
	if opts.Palette != nil {
		t.Errorf("Palette = %v, want nil", opts.Palette)
	}
}
