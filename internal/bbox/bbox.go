package bbox

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned (wrapped) for every rejected input.
var ErrInvalidArgument = errors.New("invalid argument")

// MaxCoordinate is the largest origin, extent, corner, target size or padding
// any operation accepts. The product of two such values fits in an int64.
const MaxCoordinate = 1<<31 - 1

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// Rect is a bounding box in origin+extent form.
//
// Rect is a value type; operations never modify their input and always
// return a new Rect.
type Rect struct {
	X      int `json:"x"`      // Left edge
	Y      int `json:"y"`      // Top edge
	Width  int `json:"width"`  // Horizontal extent in pixels
	Height int `json:"height"` // Vertical extent in pixels
}

// Corners is a bounding box in corner form.
type Corners struct {
	XMin int `json:"x_min"`
	YMin int `json:"y_min"`
	XMax int `json:"x_max"`
	YMax int `json:"y_max"`
}

// New constructs a Rect from its origin and extent.
//
// The origin must be non-negative and both extents must be at least 1;
// degenerate boxes cannot be constructed directly.
func New(x, y, width, height int) (Rect, error) {
	if x < 0 || y < 0 {
		return Rect{}, invalid("origin (%d,%d) must be non-negative", x, y)
	}
	if width < 1 || height < 1 {
		return Rect{}, invalid("size %dx%d must be at least 1x1", width, height)
	}
	if x > MaxCoordinate || y > MaxCoordinate || width > MaxCoordinate || height > MaxCoordinate {
		return Rect{}, invalid("rect (%d,%d,%d,%d) exceeds %d", x, y, width, height, MaxCoordinate)
	}
	return Rect{X: x, Y: y, Width: width, Height: height}, nil
}

// FromCorners converts a corner-form box into a Rect.
func FromCorners(c Corners) (Rect, error) {
	if c.XMin < 0 || c.YMin < 0 {
		return Rect{}, invalid("corner (%d,%d) must be non-negative", c.XMin, c.YMin)
	}
	if c.XMin > c.XMax || c.YMin > c.YMax {
		return Rect{}, invalid("corners (%d,%d)-(%d,%d) are inverted", c.XMin, c.YMin, c.XMax, c.YMax)
	}
	if c.XMax > MaxCoordinate || c.YMax > MaxCoordinate {
		return Rect{}, invalid("corner (%d,%d) exceeds %d", c.XMax, c.YMax, MaxCoordinate)
	}
	return Rect{X: c.XMin, Y: c.YMin, Width: c.XMax - c.XMin, Height: c.YMax - c.YMin}, nil
}

// FromSlice converts a [x_min, y_min, x_max, y_max] array into a Rect.
func FromSlice(v []int) (Rect, error) {
	if len(v) != 4 {
		return Rect{}, invalid("bbox must contain exactly four elements, got %d", len(v))
	}
	return FromCorners(Corners{XMin: v[0], YMin: v[1], XMax: v[2], YMax: v[3]})
}

// XMax returns the right edge.
func (r Rect) XMax() int { return r.X + r.Width }

// YMax returns the bottom edge.
func (r Rect) YMax() int { return r.Y + r.Height }

// Corners projects r into corner form.
func (r Rect) Corners() Corners {
	return Corners{XMin: r.X, YMin: r.Y, XMax: r.XMax(), YMax: r.YMax()}
}

// Slice returns r as [x_min, y_min, x_max, y_max].
func (r Rect) Slice() []int {
	return []int{r.X, r.Y, r.XMax(), r.YMax()}
}

// validate checks the Rect invariant for values built outside New.
func (r Rect) validate() error {
	if r.X < 0 || r.Y < 0 || r.Width < 0 || r.Height < 0 {
		return invalid("rect (%d,%d,%d,%d) has a negative component", r.X, r.Y, r.Width, r.Height)
	}
	if r.X > MaxCoordinate || r.Y > MaxCoordinate || r.Width > MaxCoordinate || r.Height > MaxCoordinate {
		return invalid("rect (%d,%d,%d,%d) exceeds %d", r.X, r.Y, r.Width, r.Height, MaxCoordinate)
	}
	return nil
}

// String formats r as (x,y,width,height).
func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d)", r.X, r.Y, r.Width, r.Height)
}
