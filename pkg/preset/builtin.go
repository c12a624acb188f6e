package preset

// prPhotoDownscale targets photographic downscaling: Lanczos3 for its sharp
// but ringing-free response on natural images, a modest integrated sharpen
// to recover the contrast lost to the low-pass filter, and halving enabled
// since photo sources are usually many times larger than the target.
func prPhotoDownscale() Preset {
	return Preset{
		Name:                     "photo-downscale",
		Description:              "General-purpose photographic downscaling (Lanczos3 + light sharpen)",
		Filter:                   "lanczos3",
		IntegratedSharpenPercent: 5,
		UseHalving:               true,
	}
}

// prPixelArtUpscale targets nearest-neighbor-adjacent upscaling of small,
// hard-edged source images: box keeps flat color regions flat instead of
// introducing the ringing a cubic or sinc filter would.
func prPixelArtUpscale() Preset {
	return Preset{
		Name:        "pixel-art-upscale",
		Description: "Upscaling small hard-edged sprites without introducing ringing",
		Filter:      "box",
	}
}

// prThumbnailSharp targets small output sizes where aggressive downscaling
// flattens detail: Mitchell trades a touch of ringing for retained edge
// contrast, plus a stronger post-resize sharpen since there is no second
// scale pass left to integrate it into.
func prThumbnailSharp() Preset {
	return Preset{
		Name:                     "thumbnail-sharp",
		Description:              "Small thumbnails with aggressive post-resize sharpening",
		Filter:                   "mitchell",
		PostResizeSharpenPercent: 15,
		UseHalving:               true,
		HalveOnlyWhenPerfect:     true,
	}
}

// prArchivalQuality targets the highest-fidelity resample this package can
// produce: Robidoux minimizes ringing and blur simultaneously and no
// sharpening stage runs, so the output never drifts from what the filter
// alone produces.
func prArchivalQuality() Preset {
	return Preset{
		Name:        "archival-quality",
		Description: "Maximum-fidelity resample with no sharpening applied",
		Filter:      "robidoux",
	}
}
