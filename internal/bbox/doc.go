// Package bbox implements integer bounding-box geometry for the node suite.
//
// A bounding box is an axis-aligned rectangle in pixel space with (0,0) at the
// top-left corner, X increasing rightward and Y increasing downward.
//
// # Representations
//
// Two forms are used:
//   - Rect: origin plus extent (X, Y, Width, Height). This is the canonical form
//     every operation accepts and returns.
//   - Corners: (XMin, YMin, XMax, YMax). This is how boxes travel between nodes
//     as a 4-element array. Convert at the boundary with FromCorners, FromSlice
//     and Rect.Corners.
//
// XMax = X + Width and YMax = Y + Height, so the max corner is exclusive when
// iterating pixels.
//
// # Operations
//
//   - New: construct a non-degenerate box
//   - Pad: grow a box on every side, clamped to the frame origin and
//     optionally to a frame size
//   - Resize: set a new extent, either exactly or aspect-fit inside a target
//   - FitSize: the aspect-fit rule shared with image resizing
//
// # Errors
//
// Every validation failure wraps ErrInvalidArgument. All functions are pure and
// safe for concurrent use.
package bbox
