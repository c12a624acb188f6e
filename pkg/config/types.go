package config

// Config is the root configuration document.
type Config struct {
	Image ImageConfig `toml:"image"`
	Cache CacheConfig `toml:"cache"`
	Log   LogConfig   `toml:"log"`
	Bench BenchConfig `toml:"bench"`
}

// ResizeConfig mirrors the tunables of resampler.ResizeOptions in a
// TOML-friendly shape, plus a Preset name. When Preset names a known preset,
// the resize command uses that preset's options as they are and ignores the
// other fields here; when Preset is empty or unknown, these fields are used.
type ResizeConfig struct {
	Preset string `toml:"preset"`

	Filter string  `toml:"filter"`
	CubicB float64 `toml:"cubic_b"`
	CubicC float64 `toml:"cubic_c"`
	Blur   float64 `toml:"blur"`

	SharpenPercentGoal       float64 `toml:"sharpen_percent_goal"`
	PostResizeSharpenPercent float64 `toml:"post_resize_sharpen_percent"`
	IntegratedSharpenPercent float64 `toml:"integrated_sharpen_percent"`

	UseHalving           bool `toml:"use_halving"`
	HalveOnlyWhenPerfect bool `toml:"halve_only_when_perfect"`

	Workers int `toml:"workers"`
}

// ImageConfig groups everything about how images are read, resized, and
// optionally previewed in a terminal.
type ImageConfig struct {
	Resize ResizeConfig `toml:"resize"`

	// OutputFormat names a default output codec (e.g. "png", "jpeg"). The
	// resize command does not read it; it picks the codec from the -out
	// extension and falls back to PNG.
	OutputFormat string `toml:"output_format"`

	// Preview names the optional terminal preview (pkg/image.Renderer). The
	// resize command does not read it; its preview is turned on only by the
	// -preview flag.
	Preview  bool   `toml:"preview"`
	Protocol string `toml:"protocol"` // "auto", "kitty", "iterm2", "sixel", "halfblocks", "none"

	// MaxCacheSizeMB bounds pkg/image.Renderer's in-memory rendered-escape-
	// sequence cache. Distinct from CacheConfig.MaxSizeMB, which bounds the
	// on-disk resized-output cache (pkg/cache).
	MaxCacheSizeMB int `toml:"max_cache_size_mb"`
}

// CacheConfig controls the on-disk output cache (pkg/cache).
type CacheConfig struct {
	Enabled        bool   `toml:"enabled"`
	Dir            string `toml:"dir"`
	MaxSizeMB      int    `toml:"max_size_mb"`
}

// LogConfig controls the structured logger (log/slog).
type LogConfig struct {
	Level  string `toml:"level"`  // "debug", "info", "warn", "error"
	Format string `toml:"format"` // "text" or "json"
}

// BenchConfig controls the `fastscale bench` regression harness
// (pkg/perf).
type BenchConfig struct {
	Baseline string   `toml:"baseline"` // path to a saved baseline report
	Timeout  Duration `toml:"timeout"`
}
