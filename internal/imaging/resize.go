package imaging

import (
	"fmt"
	"image"
	"sort"

	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/bbox-tools-mcp/internal/bbox"
)

// Resampler moves pixels into a new size. It never decides the size itself.
type Resampler interface {
	Resize(img image.Image, width, height int) image.Image
}

// Resampler backends.
const (
	BackendImaging = "imaging"
	BackendBild    = "bild"
)

// Defaults used when a backend or filter name is empty. Catmull-Rom is a
// bicubic filter.
const (
	DefaultBackend = BackendImaging
	DefaultFilter  = "catmullrom"
)

var imagingFilters = map[string]imaging.ResampleFilter{
	"nearest":    imaging.NearestNeighbor,
	"box":        imaging.Box,
	"linear":     imaging.Linear,
	"hermite":    imaging.Hermite,
	"mitchell":   imaging.MitchellNetravali,
	"catmullrom": imaging.CatmullRom,
	"bspline":    imaging.BSpline,
	"gaussian":   imaging.Gaussian,
	"lanczos":    imaging.Lanczos,
}

var bildFilters = map[string]transform.ResampleFilter{
	"nearest":    transform.NearestNeighbor,
	"box":        transform.Box,
	"linear":     transform.Linear,
	"gaussian":   transform.Gaussian,
	"mitchell":   transform.MitchellNetravali,
	"catmullrom": transform.CatmullRom,
	"lanczos":    transform.Lanczos,
}

type imagingResampler struct {
	filter imaging.ResampleFilter
}

func (r imagingResampler) Resize(img image.Image, width, height int) image.Image {
	return imaging.Resize(img, width, height, r.filter)
}

type bildResampler struct {
	filter transform.ResampleFilter
}

func (r bildResampler) Resize(img image.Image, width, height int) image.Image {
	return transform.Resize(img, width, height, r.filter)
}

// NewResampler returns the Resampler for a backend and filter name.
// Empty names select DefaultBackend and DefaultFilter.
func NewResampler(backend, filter string) (Resampler, error) {
	if backend == "" {
		backend = DefaultBackend
	}
	if filter == "" {
		filter = DefaultFilter
	}

	switch backend {
	case BackendImaging:
		f, ok := imagingFilters[filter]
		if !ok {
			return nil, fmt.Errorf("%w: unknown %s filter %q (have %v)", bbox.ErrInvalidArgument, backend, filter, filterNames(backend))
		}
		return imagingResampler{filter: f}, nil
	case BackendBild:
		f, ok := bildFilters[filter]
		if !ok {
			return nil, fmt.Errorf("%w: unknown %s filter %q (have %v)", bbox.ErrInvalidArgument, backend, filter, filterNames(backend))
		}
		return bildResampler{filter: f}, nil
	default:
		return nil, fmt.Errorf("%w: unknown resampler backend %q", bbox.ErrInvalidArgument, backend)
	}
}

// filterNames lists the filters a backend supports, sorted.
func filterNames(backend string) []string {
	var names []string
	switch backend {
	case BackendImaging:
		for name := range imagingFilters {
			names = append(names, name)
		}
	case BackendBild:
		for name := range bildFilters {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// FitImage resizes img to the aspect-fit of its size inside width x height.
//
// A zero width or height means "keep the source size" on that axis. The
// returned size is the size of the returned image; an axis that rounds down
// to 0 is kept at 1 pixel.
func FitImage(img image.Image, width, height int, r Resampler) (image.Image, int, int, error) {
	bounds := img.Bounds()
	newWidth, newHeight, err := bbox.FitSize(bounds.Dx(), bounds.Dy(), width, height)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("cannot fit %dx%d image: %w", bounds.Dx(), bounds.Dy(), err)
	}
	newWidth, newHeight = max(newWidth, 1), max(newHeight, 1)
	return r.Resize(img, newWidth, newHeight), newWidth, newHeight, nil
}

// ResizeOptions controls ResizeKeepRatio.
type ResizeOptions struct {
	// Resampler moves the pixels. Nil selects the default backend and filter.
	Resampler Resampler

	// Letterbox places the fitted image centered on a canvas of the full
	// requested size instead of returning it at its fitted size.
	Letterbox bool

	// FillColor is the CSS color of the letterbox canvas. Default "black".
	FillColor string

	// OutputPath writes the result to disk instead of returning base64.
	OutputPath string
}

// ResizeResult is the outcome of ResizeKeepRatio.
type ResizeResult struct {
	ImageResult

	// NewWidth and NewHeight are the fitted content size.
	NewWidth  int `json:"new_width"`
	NewHeight int `json:"new_height"`

	// OffsetX and OffsetY locate the content on the letterbox canvas. Boxes
	// resized with bbox.Resize move onto the canvas by adding this offset.
	OffsetX int `json:"offset_x"`
	OffsetY int `json:"offset_y"`
}

// ResizeKeepRatio resizes img to fit inside width x height, preserving its
// aspect ratio, and encodes the result.
func ResizeKeepRatio(img image.Image, width, height int, opts ResizeOptions) (*ResizeResult, error) {
	r := opts.Resampler
	if r == nil {
		var err error
		if r, err = NewResampler("", ""); err != nil {
			return nil, err
		}
	}

	fitted, newWidth, newHeight, err := FitImage(img, width, height, r)
	if err != nil {
		return nil, err
	}

	out := fitted
	var offsetX, offsetY int
	if opts.Letterbox {
		// Zero targets mean "source size", so the canvas axis equals the content axis.
		canvasWidth, canvasHeight := width, height
		if canvasWidth == 0 {
			canvasWidth = newWidth
		}
		if canvasHeight == 0 {
			canvasHeight = newHeight
		}

		fillName := opts.FillColor
		if fillName == "" {
			fillName = "black"
		}
		fill, err := ParseColor(fillName)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", bbox.ErrInvalidArgument, err)
		}

		offsetX = canvasWidth/2 - newWidth/2
		offsetY = canvasHeight/2 - newHeight/2
		canvas := imaging.New(canvasWidth, canvasHeight, fill)
		out = imaging.Paste(canvas, fitted, image.Pt(offsetX, offsetY))
	}

	encoded, err := newImageResult(out, opts.OutputPath)
	if err != nil {
		return nil, err
	}

	return &ResizeResult{
		ImageResult: *encoded,
		NewWidth:    newWidth,
		NewHeight:   newHeight,
		OffsetX:     offsetX,
		OffsetY:     offsetY,
	}, nil
}
