// Package imaging provides the image-side collaborators of the bbox nodes.
//
// Geometry lives in package bbox; this package applies it to pixels. It covers
// aspect-fit resizing through a pluggable Resampler, cropping to a box,
// drawing boxes for preview over an optional coordinate grid, and a cache of
// decoded images keyed by path.
//
// # Coordinate System
//
// Boxes use the same coordinates as package bbox: (0,0) is the top-left pixel,
// X increases rightward, Y increases downward, and the max corner is exclusive.
// Images are decoded with EXIF auto-orientation so coordinates refer to the
// image as it is displayed.
//
// # Resampling
//
// Pixel resampling is delegated to a Resampler. Two backends are available:
//   - "imaging": github.com/disintegration/imaging filters
//   - "bild": github.com/anthonynsimon/bild/transform filters
//
// The size is always decided by bbox.FitSize; a Resampler only moves pixels.
//
// # Output
//
// Image results are returned as base64-encoded PNG, or written to a file when
// an output path is given.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. All other functions are stateless.
package imaging
