package bbox

// Pad grows r by padding pixels on every side.
//
// The origin moves up and left by padding but never below 0. Each extent grows
// by 2*padding regardless of that clamp, so a box pressed against the frame
// origin gains all of its growth on the far side.
//
// maxWidth and maxHeight bound the frame; 0 means unbounded. When set, the
// extent is clamped so that origin+extent never exceeds the bound.
//
// # Errors
//
//   - padding, maxWidth or maxHeight is negative or above MaxCoordinate
//   - r has a negative component or one above MaxCoordinate
//   - a bound leaves the padded box with an extent below 1 (the padded origin
//     lies at or beyond the frame edge)
//   - the padded extent exceeds MaxCoordinate
func Pad(r Rect, padding, maxWidth, maxHeight int) (Rect, error) {
	if err := r.validate(); err != nil {
		return Rect{}, err
	}
	if padding < 0 || padding > MaxCoordinate {
		return Rect{}, invalid("padding %d must be within [0,%d]", padding, MaxCoordinate)
	}
	if maxWidth < 0 || maxHeight < 0 || maxWidth > MaxCoordinate || maxHeight > MaxCoordinate {
		return Rect{}, invalid("frame bound %dx%d must be within [0,%d]", maxWidth, maxHeight, MaxCoordinate)
	}

	x := max(int64(r.X)-int64(padding), 0)
	y := max(int64(r.Y)-int64(padding), 0)
	w := int64(r.Width) + 2*int64(padding)
	h := int64(r.Height) + 2*int64(padding)

	if maxWidth > 0 {
		w = min(w, int64(maxWidth)-x)
	}
	if maxHeight > 0 {
		h = min(h, int64(maxHeight)-y)
	}
	if w < 1 || h < 1 {
		return Rect{}, invalid("padded box at (%d,%d) does not fit in frame %dx%d", x, y, maxWidth, maxHeight)
	}
	if w > MaxCoordinate || h > MaxCoordinate {
		return Rect{}, invalid("padded size %dx%d exceeds %d", w, h, MaxCoordinate)
	}

	return Rect{X: int(x), Y: int(y), Width: int(w), Height: int(h)}, nil
}

// Resize gives r a new extent and returns it with the resolved width and height.
//
// Without keepRatio the extent becomes exactly targetWidth x targetHeight and
// the origin is kept; zero targets yield a degenerate box.
//
// With keepRatio a zero target takes the source extent on that axis, the new
// extent is the aspect-fit of r inside the target (see FitSize), and the
// origin is scaled by the same factor so the box stays anchored to the same
// relative position on an image resized by that factor. The free axis rounds
// down and may reach 0 for extreme aspect ratios.
//
// Targets above MaxCoordinate are rejected.
func Resize(r Rect, targetWidth, targetHeight int, keepRatio bool) (Rect, int, int, error) {
	if err := r.validate(); err != nil {
		return Rect{}, 0, 0, err
	}
	if err := validateTarget(targetWidth, targetHeight); err != nil {
		return Rect{}, 0, 0, err
	}

	if !keepRatio {
		return Rect{X: r.X, Y: r.Y, Width: targetWidth, Height: targetHeight}, targetWidth, targetHeight, nil
	}

	w, h, err := FitSize(r.Width, r.Height, targetWidth, targetHeight)
	if err != nil {
		return Rect{}, 0, 0, err
	}

	out := Rect{
		X:      int(int64(r.X) * int64(w) / int64(r.Width)),
		Y:      int(int64(r.Y) * int64(h) / int64(r.Height)),
		Width:  w,
		Height: h,
	}
	return out, w, h, nil
}

// FitSize returns the largest size with the aspect ratio of srcWidth x srcHeight
// that fits inside targetWidth x targetHeight.
//
// A zero target means "use the source size" on that axis. One axis matches its
// target exactly; the other is rounded down, so it is 0 when the source is far
// more elongated than the target. Callers that need pixels floor it at 1.
//
// The comparison target ratio > source ratio is done by cross-multiplying in
// int64, so the choice of binding axis is exact for every accepted input.
func FitSize(srcWidth, srcHeight, targetWidth, targetHeight int) (int, int, error) {
	if srcWidth < 1 || srcHeight < 1 || srcWidth > MaxCoordinate || srcHeight > MaxCoordinate {
		return 0, 0, invalid("source size %dx%d must be within [1,%d]", srcWidth, srcHeight, MaxCoordinate)
	}
	if err := validateTarget(targetWidth, targetHeight); err != nil {
		return 0, 0, err
	}
	if targetWidth == 0 {
		targetWidth = srcWidth
	}
	if targetHeight == 0 {
		targetHeight = srcHeight
	}

	sw, sh := int64(srcWidth), int64(srcHeight)
	tw, th := int64(targetWidth), int64(targetHeight)
	if tw*sh > th*sw {
		// Height binds.
		return int(sw * th / sh), targetHeight, nil
	}
	return targetWidth, int(tw * sh / sw), nil
}

func validateTarget(width, height int) error {
	if width < 0 || height < 0 || width > MaxCoordinate || height > MaxCoordinate {
		return invalid("target size %dx%d must be within [0,%d]", width, height, MaxCoordinate)
	}
	return nil
}
