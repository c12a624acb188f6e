// Package preset defines named, reusable bundles of resize options. Users
// select a preset by name via config or the CLI, or define their own in
// TOML alongside the built-ins.
package preset

import (
	"sort"
	"strings"

	"gitlab.com/tinyland/lab/fastscale/pkg/resampler"
)

// Preset is a named resize recipe. Zero-valued fields behave exactly as
// the corresponding resampler.ResizeOptions zero value (stage disabled).
type Preset struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`

	Filter string  `toml:"filter"` // matches resampler filter names, e.g. "lanczos3"
	CubicB float64 `toml:"cubic_b"`
	CubicC float64 `toml:"cubic_c"`
	Blur   float64 `toml:"blur"`

	SharpenPercentGoal       float64 `toml:"sharpen_percent_goal"`
	PostResizeSharpenPercent float64 `toml:"post_resize_sharpen_percent"`
	IntegratedSharpenPercent float64 `toml:"integrated_sharpen_percent"`

	UseHalving           bool `toml:"use_halving"`
	HalveOnlyWhenPerfect bool `toml:"halve_only_when_perfect"`
}

// filterByName maps the external filter name surface to resampler.FilterKind.
var filterByName = map[string]resampler.FilterKind{
	"robidoux":       resampler.FilterRobidoux,
	"cubic":          resampler.FilterCubicGeneral,
	"catmull-rom":    resampler.FilterCatmullRom,
	"mitchell":       resampler.FilterMitchell,
	"robidoux-sharp": resampler.FilterRobidouxSharp,
	"hermite":        resampler.FilterHermite,
	"lanczos3":       resampler.FilterLanczos3,
	"lanczos3-sharp": resampler.FilterLanczos3Sharp,
	"lanczos2":       resampler.FilterLanczos2,
	"lanczos2-sharp": resampler.FilterLanczos2Sharp,
	"lanczos":        resampler.FilterLanczosTruncated,
	"triangle":       resampler.FilterTriangle,
	"box":            resampler.FilterBox,
}

// ResizeOptions converts p into a resampler.ResizeOptions. An unrecognized
// or empty Filter name falls back to FilterRobidoux, the package default.
func (p Preset) ResizeOptions() resampler.ResizeOptions {
	kind, ok := filterByName[p.Filter]
	if !ok {
		kind = resampler.FilterRobidoux
	}
	return resampler.ResizeOptions{
		Filter:                   kind,
		CubicB:                   p.CubicB,
		CubicC:                   p.CubicC,
		Blur:                     p.Blur,
		SharpenPercentGoal:       p.SharpenPercentGoal,
		PostResizeSharpenPercent: p.PostResizeSharpenPercent,
		IntegratedSharpenPercent: p.IntegratedSharpenPercent,
		UseHalving:               p.UseHalving,
		HalveOnlyWhenPerfect:     p.HalveOnlyWhenPerfect,
	}
}

// builtins holds the presets shipped with the binary; LoadUserPresetsFile
// may add to or override entries by name.
var builtins map[string]Preset

func init() {
	builtins = map[string]Preset{
		"photo-downscale":   prPhotoDownscale(),
		"pixel-art-upscale": prPixelArtUpscale(),
		"thumbnail-sharp":   prThumbnailSharp(),
		"archival-quality":  prArchivalQuality(),
	}
	registry = builtins
}

// registry is the active preset set: builtins plus any user-loaded presets.
var registry map[string]Preset

// Register adds or overrides a preset at runtime, e.g. after loading user
// TOML presets from a config search path.
func Register(p Preset) {
	if registry == nil {
		registry = make(map[string]Preset, len(builtins))
	}
	registry[p.Name] = p
}

// Get returns a preset by name and whether it was found.
func Get(name string) (Preset, bool) {
	p, ok := registry[name]
	return p, ok
}

// Names returns all known preset names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for k := range registry {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Suggest returns the closest known preset name to an unrecognized one, for
// use in error messages ("did you mean ...?"). Returns "" when nothing on
// record is within an edit distance of 4.
func Suggest(name string) string {
	best := ""
	bestDist := 5
	for _, n := range Names() {
		d := levenshtein(strings.ToLower(name), n)
		if d < bestDist {
			bestDist = d
			best = n
		}
	}
	return best
}

// levenshtein computes the edit distance between a and b.
func levenshtein(a, b string) int {
	la, lb := len(a), len(b)
	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[lb]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
