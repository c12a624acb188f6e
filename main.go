// fastscale is a CPU-bound 2D image resampler: a command-line front end over
// pkg/resampler's separable-filter scale/sharpen/color-matrix pipeline.
//
// Usage:
//
//	fastscale resize -in src.png -out dst.png -width 800 -height 600 \
//	  [-filter lanczos3] [-preset thumbnail-sharp] [-config fastscale.toml] \
//	  [-halve] [-sharpen 0.25] [-color-matrix grayscale] [-preview] [-cache]
//	fastscale presets list
//	fastscale bench [-baseline bench.json] [-workers 4]
package main

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gitlab.com/tinyland/lab/fastscale/pkg/cache"
	"gitlab.com/tinyland/lab/fastscale/pkg/config"
	ppimage "gitlab.com/tinyland/lab/fastscale/pkg/image"
	"gitlab.com/tinyland/lab/fastscale/pkg/perf"
	"gitlab.com/tinyland/lab/fastscale/pkg/preset"
	"gitlab.com/tinyland/lab/fastscale/pkg/resampler"
	"gitlab.com/tinyland/lab/fastscale/pkg/terminal"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "resize":
		runResize(os.Args[2:])
	case "presets":
		runPresets(os.Args[2:])
	case "bench":
		runBench(os.Args[2:])
	case "-version", "--version", "version":
		fmt.Printf("fastscale %s (%s) built %s\n", version, commit, date)
	case "-h", "-help", "--help", "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `fastscale - CPU-bound 2D image resampler

Usage:
  fastscale resize -in src.png -out dst.png -width 800 -height 600 [flags]
  fastscale presets list
  fastscale bench [-baseline bench.json] [-workers 4]

Run "fastscale resize -h" for resize flags.`)
}

// newLogger builds the structured logger used by every subcommand. -v raises
// the level to Info, -vv to Debug; with neither, only Warn and above are
// logged, matching the teacher's slog-based verbosity convention.
func newLogger(verbosity int) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case verbosity >= 2:
		level = slog.LevelDebug
	case verbosity == 1:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// countVerbosity inspects argv for -v/-vv occurrences since flag.Bool can't
// naturally stack repeated single-letter flags.
func countVerbosity(args []string) int {
	n := 0
	for _, a := range args {
		switch a {
		case "-v":
			n++
		case "-vv":
			n += 2
		}
	}
	return n
}

// --- resize ------------------------------------------------------------

func runResize(args []string) {
	fs := flag.NewFlagSet("resize", flag.ExitOnError)
	var (
		inPath      = fs.String("in", "", "source image path (required)")
		outPath     = fs.String("out", "", "destination image path (required)")
		width       = fs.Int("width", 0, "target width in pixels (required)")
		height      = fs.Int("height", 0, "target height in pixels (required)")
		filterName  = fs.String("filter", "", "filter override, e.g. lanczos3, catmull-rom, triangle")
		presetName  = fs.String("preset", "", "named preset to start from, e.g. thumbnail-sharp")
		configPath  = fs.String("config", "", "path to fastscale.toml (default: standard search path)")
		halve       = fs.Bool("halve", false, "enable the integer box-halving pre-pass")
		sharpen     = fs.Float64("sharpen", 0, "post-resize sharpen amount, 0..1 (0.25 = 25%)")
		colorMatrix = fs.String("color-matrix", "", "named color matrix: grayscale, sepia, invert")
		preview     = fs.Bool("preview", false, "render a terminal preview of the result after writing -out")
		useCache    = fs.Bool("cache", false, "read/write the on-disk output cache")
		retries     = fs.Int("retries", 0, "number of retries on a failed decode/render")
		_           = fs.Bool("v", false, "verbose logging (info level)")
		_           = fs.Bool("vv", false, "very verbose logging (debug level)")
	)
	fs.Parse(args)
	logger := newLogger(countVerbosity(args))

	if *inPath == "" || *outPath == "" || *width <= 0 || *height <= 0 {
		fmt.Fprintln(os.Stderr, "resize requires -in, -out, -width and -height")
		fs.Usage()
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	opts, err := resolveResizeOptions(cfg, *presetName, logger)
	if err != nil {
		logger.Error("failed to resolve resize options", slog.String("error", err.Error()))
		os.Exit(1)
	}
	applyResizeOverrides(&opts, *filterName, *halve, *sharpen, *colorMatrix, logger)
	opts.Workers = perf.PickWorkers(*height)

	var store *cache.Store
	if *useCache {
		store, err = cache.NewStore(cache.StoreConfig{
			Dir:       cfg.Cache.Dir,
			MaxSizeMB: cfg.Cache.MaxSizeMB,
		})
		if err != nil {
			logger.Warn("output cache unavailable", slog.String("error", err.Error()))
			store = nil
		} else {
			defer store.Close()
		}
	}

	var lastErr error
	for attempt := 0; attempt <= *retries; attempt++ {
		start := time.Now()
		lastErr = resizeOneFile(*inPath, *outPath, *width, *height, opts, store, *preview, logger)
		if lastErr == nil {
			logger.Info("resize complete",
				slog.String("in", *inPath),
				slog.String("out", *outPath),
				slog.Duration("elapsed", time.Since(start)),
			)
			return
		}
		logger.Warn("resize attempt failed",
			slog.String("in", *inPath),
			slog.Int("attempt", attempt+1),
			slog.String("error", lastErr.Error()),
		)
	}
	logger.Error("resize failed after retries", slog.String("in", *inPath), slog.String("error", lastErr.Error()))
	os.Exit(1)
}

// resizeOneFile runs a single decode -> (optional cache lookup) -> render ->
// encode -> (optional preview) pass. Errors are returned rather than
// terminating the process so runResize's retry loop can log and retry.
func resizeOneFile(inPath, outPath string, width, height int, opts resampler.ResizeOptions, store *cache.Store, preview bool, logger *slog.Logger) error {
	srcBytes, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", inPath, err)
	}

	target := resampler.Rect{W: width, H: height}
	var key string
	if store != nil {
		key = cacheKeyFor(srcBytes, opts, target)
		if cached, ok := store.Get(key); ok {
			if err := os.WriteFile(outPath, cached, 0644); err != nil {
				return fmt.Errorf("write cached output %s: %w", outPath, err)
			}
			logger.Info("served from cache", slog.String("key", key[:16]))
			return nil
		}
	}

	src, _, err := ppimage.DecodeBitmap(bytes.NewReader(srcBytes))
	if err != nil {
		return fmt.Errorf("decode %s: %w", inPath, err)
	}

	dst, err := resampler.NewBitmap8(width, height, 4, true)
	if err != nil {
		return err
	}
	details := &resampler.RenderDetails{
		Source:      src,
		SourceCrop:  resampler.Rect{W: src.Width, H: src.Height},
		Destination: dst,
		TargetRect:  target,
		Options:     opts,
	}
	if err := resampler.PerformRender(details); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	outFile, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer outFile.Close()
	if err := ppimage.EncodeBitmap(outFile, dst, outputFormatFor(outPath)); err != nil {
		return fmt.Errorf("encode %s: %w", outPath, err)
	}

	if store != nil {
		if encoded, err := os.ReadFile(outPath); err == nil {
			if err := store.Put(key, encoded); err != nil {
				logger.Warn("failed to populate output cache", slog.String("error", err.Error()))
			}
		}
	}

	if preview {
		caps := terminal.DetectCapabilities()
		if err := ppimage.RenderTerminalPreview(dst, *caps, os.Stdout); err != nil {
			logger.Warn("terminal preview failed", slog.String("error", err.Error()))
		}
	}

	return nil
}

// outputFormatFor derives a codec name from an output path's extension.
func outputFormatFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "jpeg"
	default:
		return "png"
	}
}

// cacheKeyFor hashes the source bytes together with the resize options and
// target rect, so the same source resized two different ways never collides.
func cacheKeyFor(srcBytes []byte, opts resampler.ResizeOptions, target resampler.Rect) string {
	h := sha256.New()
	h.Write(srcBytes)
	fmt.Fprintf(h, "|%+v|%+v", opts, target)
	return hex.EncodeToString(h.Sum(nil))
}

// resolveResizeOptions builds the base ResizeOptions either from a named
// preset or from the loaded config's [image.resize] table.
func resolveResizeOptions(cfg *config.Config, presetName string, logger *slog.Logger) (resampler.ResizeOptions, error) {
	if presetName != "" {
		p, ok := preset.Get(presetName)
		if !ok {
			if suggestion := preset.Suggest(presetName); suggestion != "" {
				return resampler.ResizeOptions{}, fmt.Errorf("unknown preset %q, did you mean %q?", presetName, suggestion)
			}
			return resampler.ResizeOptions{}, fmt.Errorf("unknown preset %q (see: fastscale presets list)", presetName)
		}
		return p.ResizeOptions(), nil
	}
	if cfg.Image.Resize.Preset != "" {
		if p, ok := preset.Get(cfg.Image.Resize.Preset); ok {
			logger.Debug("using preset from config", slog.String("preset", cfg.Image.Resize.Preset))
			return p.ResizeOptions(), nil
		}
	}
	return resizeOptionsFromConfig(cfg.Image.Resize), nil
}

func resizeOptionsFromConfig(rc config.ResizeConfig) resampler.ResizeOptions {
	filter := resampler.FilterRobidoux
	if rc.Filter != "" {
		if f, ok := resampler.ParseFilterName(rc.Filter); ok {
			filter = f
		}
	}
	return resampler.ResizeOptions{
		Filter:                   filter,
		CubicB:                   rc.CubicB,
		CubicC:                   rc.CubicC,
		Blur:                     rc.Blur,
		SharpenPercentGoal:       rc.SharpenPercentGoal,
		PostResizeSharpenPercent: rc.PostResizeSharpenPercent,
		IntegratedSharpenPercent: rc.IntegratedSharpenPercent,
		UseHalving:               rc.UseHalving,
		HalveOnlyWhenPerfect:     rc.HalveOnlyWhenPerfect,
		Workers:                  rc.Workers,
	}
}

// applyResizeOverrides layers CLI flags on top of whatever ResizeOptions
// resolveResizeOptions produced. CLI flags always win over preset/config.
func applyResizeOverrides(opts *resampler.ResizeOptions, filterName string, halve bool, sharpen float64, colorMatrix string, logger *slog.Logger) {
	if filterName != "" {
		if f, ok := resampler.ParseFilterName(filterName); ok {
			opts.Filter = f
		} else {
			logger.Warn("unknown -filter name, keeping preset/config filter", slog.String("filter", filterName))
		}
	}
	if halve {
		opts.UseHalving = true
	}
	if sharpen > 0 {
		opts.PostResizeSharpenPercent = sharpen * 100
	}
	if colorMatrix != "" {
		if m, ok := namedColorMatrix(colorMatrix); ok {
			opts.ColorMatrix = m
		} else {
			logger.Warn("unknown -color-matrix name, ignoring", slog.String("color-matrix", colorMatrix))
		}
	}
}

// namedColorMatrix resolves a spec color matrix name to its 5x5 BGRA
// transform. Unlike filter names, these are an expansion convenience (the
// core package only exposes IdentityColorMatrix and raw ColorMatrix values).
func namedColorMatrix(name string) (*resampler.ColorMatrix, bool) {
	switch name {
	case "identity":
		m := resampler.IdentityColorMatrix()
		return &m, true
	case "grayscale":
		return &resampler.ColorMatrix{
			{0.114, 0.587, 0.299, 0, 0},
			{0.114, 0.587, 0.299, 0, 0},
			{0.114, 0.587, 0.299, 0, 0},
			{0, 0, 0, 1, 0},
		}, true
	case "sepia":
		return &resampler.ColorMatrix{
			{0.131, 0.534, 0.272, 0, 0},
			{0.168, 0.686, 0.349, 0, 0},
			{0.189, 0.769, 0.393, 0, 0},
			{0, 0, 0, 1, 0},
		}, true
	case "invert":
		return &resampler.ColorMatrix{
			{-1, 0, 0, 0, 255},
			{0, -1, 0, 0, 255},
			{0, 0, -1, 0, 255},
			{0, 0, 0, 1, 0},
		}, true
	default:
		return nil, false
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFromFile(path)
}

// --- presets -------------------------------------------------------------

func runPresets(args []string) {
	if len(args) == 0 || args[0] != "list" {
		fmt.Fprintln(os.Stderr, "usage: fastscale presets list")
		os.Exit(1)
	}
	for _, name := range preset.Names() {
		p, _ := preset.Get(name)
		fmt.Printf("%-20s %s\n", p.Name, p.Description)
	}
}

// --- bench -----------------------------------------------------------------

// benchScenario is one named load the `bench` command exercises; its order
// must match perf.DefaultThresholds() so CheckRegression's position-based
// matching lines results up with their budgets.
type benchScenario struct {
	name       string
	srcW, srcH int
	dstW, dstH int
	opts       resampler.ResizeOptions
}

func benchScenarios() []benchScenario {
	lanczos := resampler.ResizeOptions{Filter: resampler.FilterLanczos3}
	grayscale, _ := namedColorMatrix("grayscale")
	return []benchScenario{
		{"resize_1mp_triangle", 1000, 1000, 500, 500, resampler.ResizeOptions{Filter: resampler.FilterTriangle}},
		{"resize_1mp_lanczos3", 1000, 1000, 500, 500, lanczos},
		{"resize_8mp_lanczos3", 3264, 2448, 1600, 1200, lanczos},
		{"resize_halve_prepass", 3264, 2448, 800, 600, resampler.ResizeOptions{Filter: resampler.FilterLanczos3, UseHalving: true}},
		{"resize_sharpen_pass", 1600, 1200, 1600, 1200, resampler.ResizeOptions{Filter: resampler.FilterTriangle, PostResizeSharpenPercent: 50}},
		{"resize_color_matrix", 1600, 1200, 1600, 1200, resampler.ResizeOptions{Filter: resampler.FilterTriangle, ColorMatrix: grayscale}},
	}
}

func runBench(args []string) {
	fs := flag.NewFlagSet("bench", flag.ExitOnError)
	var (
		baseline = fs.String("baseline", "", "path to a saved baseline (ns/op per scenario, JSON)")
		workers  = fs.Int("workers", 0, "override worker count (0 = auto)")
		_        = fs.Bool("v", false, "verbose logging (info level)")
		_        = fs.Bool("vv", false, "very verbose logging (debug level)")
	)
	fs.Parse(args)
	logger := newLogger(countVerbosity(args))

	scenarios := benchScenarios()
	results := make([]testing.BenchmarkResult, len(scenarios))
	current := make(map[string]int64, len(scenarios))

	for i, sc := range scenarios {
		opts := sc.opts
		if *workers > 0 {
			opts.Workers = *workers
		} else {
			opts.Workers = perf.PickWorkers(sc.dstH)
		}
		src := benchGradientBitmap(sc.srcW, sc.srcH)
		r := perf.BenchmarkRender(src, opts, sc.dstW, sc.dstH)
		results[i] = r
		current[sc.name] = r.NsPerOp()
		logger.Info("scenario complete",
			slog.String("scenario", sc.name),
			slog.Duration("elapsed", time.Duration(r.NsPerOp())),
			slog.Int("workers", opts.Workers),
		)
	}

	violations := perf.CheckRegression(results, perf.DefaultThresholds())
	if len(violations) == 0 {
		fmt.Println("all scenarios within budget")
	}
	for _, v := range violations {
		fmt.Printf("BUDGET VIOLATION: %s exceeded %s: actual=%d threshold=%d\n",
			v.Threshold.Name, v.Field, v.Actual, thresholdValue(v))
	}

	if *baseline != "" {
		compareAndUpdateBaseline(*baseline, current, logger)
	}
}

func thresholdValue(v perf.Violation) int64 {
	if v.Field == "alloc" {
		return v.Threshold.MaxAlloc
	}
	return v.Threshold.MaxNs
}

// compareAndUpdateBaseline loads a saved ns/op-per-scenario baseline, reports
// any scenario that regressed by more than 15%, then overwrites the baseline
// file with the current run's numbers (a ratchet: each successful run
// becomes the next run's comparison point).
func compareAndUpdateBaseline(path string, current map[string]int64, logger *slog.Logger) {
	const regressionThreshold = 0.15

	if data, err := os.ReadFile(path); err == nil {
		var prior map[string]int64
		if err := json.Unmarshal(data, &prior); err != nil {
			logger.Warn("baseline file unreadable, ignoring", slog.String("path", path), slog.String("error", err.Error()))
		} else {
			for name, ns := range current {
				base, ok := prior[name]
				if !ok || base <= 0 {
					continue
				}
				change := float64(ns-base) / float64(base)
				if change > regressionThreshold {
					fmt.Printf("REGRESSION: %s is %.1f%% slower than baseline (%d ns/op vs %d ns/op)\n",
						name, change*100, ns, base)
				}
			}
		}
	} else {
		logger.Info("no existing baseline, creating one", slog.String("path", path))
	}

	data, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		logger.Warn("failed to marshal baseline", slog.String("error", err.Error()))
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		logger.Warn("failed to write baseline", slog.String("path", path), slog.String("error", err.Error()))
	}
}

// benchGradientBitmap builds a deterministic, non-uniform BGRA source so
// resize benchmarks exercise real contribution-table work rather than a
// degenerate solid-color fast path.
func benchGradientBitmap(w, h int) *resampler.Bitmap8 {
	b, err := resampler.NewBitmap8(w, h, 4, true)
	if err != nil {
		panic(err) // w,h are caller-controlled constants, never <= 0
	}
	for y := 0; y < h; y++ {
		row := b.Row(y)
		for x := 0; x < w; x++ {
			base := x * 4
			row[base+0] = byte((x * 255) / w)             // B
			row[base+1] = byte((y * 255) / h)             // G
			row[base+2] = byte(((x + y) * 255) / (w + h)) // R
			row[base+3] = 255                             // A
		}
	}
	return b
}

