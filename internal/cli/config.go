package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/spanviz/pkg/pipeline"
)

// =============================================================================
// Config Types
// =============================================================================

// Config holds settings loaded from the spanviz config file.
//
// All fields are optional; anything not set in the file keeps its default.
// Command-line flags take precedence over config file values.
type Config struct {
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Serve  ServeConfig  `toml:"serve"`
}

// RenderConfig holds default rendering settings.
type RenderConfig struct {
	Width   float64  `toml:"width"`
	Height  float64  `toml:"height"`
	Palette []string `toml:"palette"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend string `toml:"backend"` // file, redis, mongo, or none
	Dir     string `toml:"dir"`     // file backend only

	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`

	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// ServeConfig holds settings for the HTTP server.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Cache: CacheConfig{Backend: "file"},
		Serve: ServeConfig{Addr: "localhost:8080"},
	}
}

// =============================================================================
// Loading
// =============================================================================

// LoadConfig reads the config file at path, or the default location when path
// is empty. A missing file at the default location is not an error; a missing
// file at an explicitly given path is.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		p, err := defaultConfigPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	if _, err := os.Stat(path); err != nil {
		if explicit {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// defaultConfigPath returns the config path using XDG standard
// (~/.config/spanviz/config.toml).
func defaultConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// =============================================================================
// Precedence
// =============================================================================

// applyRenderConfig fills render options from the config file for flags the
// user did not set on the command line. Flag defaults are bound before the
// config is loaded, so precedence has to be resolved here.
func (c *CLI) applyRenderConfig(cmd *cobra.Command, opts *pipeline.Options) {
	r := c.Config.Render
	if r.Width > 0 && !cmd.Flags().Changed("width") {
		opts.Width = r.Width
	}
	if r.Height > 0 && !cmd.Flags().Changed("height") {
		opts.Height = r.Height
	}
	if len(r.Palette) > 0 && !cmd.Flags().Changed("palette") {
		opts.Palette = append([]string(nil), r.Palette...)
	}
}
