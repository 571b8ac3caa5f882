package detection

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/bbox-tools-mcp/internal/bbox"
)

// createCanvas creates a solid image of the given color
func createCanvas(width, height int, bg color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, bg)
		}
	}
	return img
}

// fillRect paints the half-open region [x1,x2) x [y1,y2)
func fillRect(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			img.Set(x, y, c)
		}
	}
}

// fillCircle paints a solid disc
func fillCircle(img *image.RGBA, cx, cy, r int, c color.Color) {
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			if (x-cx)*(x-cx)+(y-cy)*(y-cy) <= r*r {
				img.Set(x, y, c)
			}
		}
	}
}

func TestDetectBoxes_LightOnDark(t *testing.T) {
	img := createCanvas(100, 100, color.Black)
	fillRect(img, 20, 20, 60, 50, color.White)

	found, err := DetectBoxes(img, DefaultOptions())
	if err != nil {
		t.Fatalf("DetectBoxes failed: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("found %d boxes, want 1: %+v", len(found), found)
	}

	want := bbox.Rect{X: 20, Y: 20, Width: 40, Height: 30}
	if found[0].Box != want {
		t.Errorf("Box: got %v, want %v", found[0].Box, want)
	}
	if found[0].Confidence != 1.0 {
		t.Errorf("Confidence: got %v, want 1.0", found[0].Confidence)
	}
	if found[0].Area != 1200 {
		t.Errorf("Area: got %d, want 1200", found[0].Area)
	}
}

func TestDetectBoxes_DarkOnLight(t *testing.T) {
	img := createCanvas(100, 100, color.White)
	fillRect(img, 20, 20, 60, 50, color.Black)

	found, err := DetectBoxes(img, DefaultOptions())
	if err != nil {
		t.Fatalf("DetectBoxes failed: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("found %d boxes, want 1: %+v", len(found), found)
	}

	want := bbox.Rect{X: 19, Y: 19, Width: 42, Height: 32}
	if found[0].Box != want {
		t.Errorf("Box: got %v, want %v", found[0].Box, want)
	}
}

func TestDetectBoxes_SortedByArea(t *testing.T) {
	img := createCanvas(200, 100, color.Black)
	fillRect(img, 10, 10, 30, 30, color.White)
	fillRect(img, 60, 10, 160, 90, color.White)

	found, err := DetectBoxes(img, DefaultOptions())
	if err != nil {
		t.Fatalf("DetectBoxes failed: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("found %d boxes, want 2", len(found))
	}
	if found[0].Area < found[1].Area {
		t.Errorf("boxes not sorted by area: %d then %d", found[0].Area, found[1].Area)
	}
	if found[0].Box.X != 60 {
		t.Errorf("largest box: got %v, want origin x=60", found[0].Box)
	}
}

func TestDetectBoxes_MinArea(t *testing.T) {
	img := createCanvas(100, 100, color.Black)
	fillRect(img, 10, 10, 20, 20, color.White)

	opts := DefaultOptions()
	opts.MinArea = 500
	found, err := DetectBoxes(img, opts)
	if err != nil {
		t.Fatalf("DetectBoxes failed: %v", err)
	}
	if len(found) != 0 {
		t.Errorf("found %d boxes, want 0", len(found))
	}
}

func TestDetectBoxes_RejectsCircle(t *testing.T) {
	img := createCanvas(100, 100, color.White)
	fillCircle(img, 50, 50, 25, color.Black)

	found, err := DetectBoxes(img, DefaultOptions())
	if err != nil {
		t.Fatalf("DetectBoxes failed: %v", err)
	}
	if len(found) != 0 {
		t.Errorf("circle detected as box: %+v", found)
	}
}

func TestDetectBoxes_ZeroToleranceKeepsCircle(t *testing.T) {
	img := createCanvas(100, 100, color.White)
	fillCircle(img, 50, 50, 25, color.Black)

	opts := DefaultOptions()
	opts.Tolerance = 0
	found, err := DetectBoxes(img, opts)
	if err != nil {
		t.Fatalf("DetectBoxes failed: %v", err)
	}
	if len(found) == 0 {
		t.Fatal("zero tolerance dropped the circle")
	}
	if found[0].Confidence >= DefaultTolerance {
		t.Errorf("circle confidence %v, want below %v", found[0].Confidence, DefaultTolerance)
	}
}

func TestDefaultOptions(t *testing.T) {
	want := Options{MinArea: 100, Tolerance: 0.9, EdgeThreshold: 128}
	if got := DefaultOptions(); got != want {
		t.Errorf("DefaultOptions: got %+v, want %+v", got, want)
	}
}

func TestDetectBoxes_UniformImage(t *testing.T) {
	found, err := DetectBoxes(createCanvas(50, 50, color.White), DefaultOptions())
	if err != nil {
		t.Fatalf("DetectBoxes failed: %v", err)
	}
	if found == nil || len(found) != 0 {
		t.Errorf("want empty non-nil result, got %#v", found)
	}
}

func TestDetectBoxes_InvalidOptions(t *testing.T) {
	img := createCanvas(10, 10, color.White)

	tests := []struct {
		name   string
		modify func(*Options)
	}{
		{"negative min area", func(o *Options) { o.MinArea = -1 }},
		{"tolerance above one", func(o *Options) { o.Tolerance = 1.5 }},
		{"negative tolerance", func(o *Options) { o.Tolerance = -0.1 }},
		{"zero edge threshold", func(o *Options) { o.EdgeThreshold = 0 }},
		{"zero value options", func(o *Options) { *o = Options{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(&opts)
			if _, err := DetectBoxes(img, opts); !errors.Is(err, bbox.ErrInvalidArgument) {
				t.Errorf("got %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestRectangularity(t *testing.T) {
	box := bbox.Rect{X: 0, Y: 0, Width: 4, Height: 4}

	var ring []point
	for i := 0; i < 4; i++ {
		ring = append(ring, point{i, 0}, point{i, 3}, point{0, i}, point{3, i})
	}
	if got := rectangularity(ring, box); got != 1.0 {
		t.Errorf("full ring: got %v, want 1.0", got)
	}

	top := []point{{0, 0}, {1, 0}, {2, 0}, {3, 0}}
	// The top row also touches the first row of the left and right sides.
	if got := rectangularity(top, box); got != 6.0/16.0 {
		t.Errorf("top row only: got %v, want %v", got, 6.0/16.0)
	}
}
