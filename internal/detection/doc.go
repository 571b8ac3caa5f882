// Package detection finds bounding boxes of rectangular shapes in an image.
//
// It is a box source for the node suite: the boxes it returns feed straight
// into bbox.Pad, bbox.Resize and the crop and draw nodes. It is designed for
// clean, high-contrast content such as diagrams, screenshots and UI captures.
//
// # Coordinate System
//
// Boxes are bbox.Rect values relative to the top-left pixel of the image:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//
// A solid shape is reported by the one-pixel ring on the brighter side of its
// edge. A light box on a dark background is reported exactly; a dark box on a
// light background is reported one pixel larger on every side.
//
// # Confidence Scores
//
// Confidence is the rectangularity of the outline (0.0 to 1.0): the fraction
// of the bounding box perimeter the outline actually follows.
//   - 1.0 = every side fully traced
//   - a circle scores about 0.3
//
// Noisy images and photographs produce many small contours; raise MinArea and
// EdgeThreshold for those.
package detection
