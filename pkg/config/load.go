package config

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Load reads configuration from the standard config path.
// Search order:
//  1. ./fastscale.toml
//  2. $XDG_CONFIG_HOME/fastscale/config.toml
//  3. ~/.fastscale.toml
//
// If no file exists, returns DefaultConfig().
func Load() (*Config, error) {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return LoadFromFile(p)
		}
	}
	return DefaultConfig(), nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}
	defer f.Close()
	return LoadFromReader(f)
}

// LoadFromReader reads configuration from an io.Reader.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// DefaultConfig returns the default configuration with sensible defaults.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	cacheDir := filepath.Join(xdgCacheHome(home), "fastscale")

	return &Config{
		Image: ImageConfig{
			Resize: ResizeConfig{
				Preset: "photo-downscale",
				Workers: 0, // 0 means "let the caller decide, e.g. runtime.NumCPU()"
			},
			OutputFormat:   "png",
			Preview:        false,
			Protocol:       "auto",
			MaxCacheSizeMB: 32,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       cacheDir,
			MaxSizeMB: 256,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Bench: BenchConfig{
			Timeout: Duration{2 * time.Minute},
		},
	}
}

// applyEnvOverrides checks environment variables and overrides config values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FASTSCALE_PRESET"); v != "" {
		cfg.Image.Resize.Preset = v
	}
	if v := os.Getenv("FASTSCALE_FILTER"); v != "" {
		cfg.Image.Resize.Filter = v
	}
	if v := os.Getenv("FASTSCALE_PROTOCOL"); v != "" {
		cfg.Image.Protocol = v
	}
	if v := os.Getenv("FASTSCALE_CACHE_DIR"); v != "" {
		cfg.Cache.Dir = v
	}
	if v := os.Getenv("FASTSCALE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// configSearchPaths returns the ordered list of config file paths to try.
func configSearchPaths() []string {
	home, _ := os.UserHomeDir()
	var paths []string

	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, "fastscale.toml"))
	}

	xdg := xdgConfigHome(home)
	paths = append(paths, filepath.Join(xdg, "fastscale", "config.toml"))

	paths = append(paths, filepath.Join(home, ".fastscale.toml"))

	return paths
}

// xdgConfigHome returns XDG_CONFIG_HOME or ~/.config as fallback.
func xdgConfigHome(home string) string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".config")
}

// xdgCacheHome returns XDG_CACHE_HOME or ~/.cache as fallback.
func xdgCacheHome(home string) string {
	if v := os.Getenv("XDG_CACHE_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".cache")
}
