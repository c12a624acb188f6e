// Package resampler implements a CPU-bound, separable 2-D image resampler
// for 8-bit BGRA/BGR raster buffers.
//
// The pipeline is: optional integer box halving, float unpack (with an
// optional sRGB-to-linear LUT), two passes of a weighted separable scale
// (each pass also transposes its output so the next pass can iterate rows
// again, and packs its floats back to 8-bit), optional unsharp sharpening,
// the optional post flips/transpose, an optional 5x5 color matrix applied
// to the 8-bit result, and an optional separable convolution. Filter
// weights are produced once per axis by
// ContributionsCalc and reused for every row/column on that axis.
//
// The package has no knowledge of file formats, host bitmap types, or
// option parsing; callers hand it a Bitmap8 source and destination plus a
// RenderDetails describing the desired transform.
package resampler
