package imaging

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/ironsheep/bbox-tools-mcp/internal/bbox"
)

// DrawOptions controls DrawBoxes.
type DrawOptions struct {
	// Color is a CSS color applied to every box. Empty gives each box its own
	// color from a distinct-hue palette.
	Color string

	// LineWidth is the stroke width in pixels. Default 2.
	LineWidth float64

	// Labels are drawn inside the top-left corner of the matching box. When
	// nil and ShowIndex is set, boxes are labeled with their index.
	Labels    []string
	ShowIndex bool

	// GridSpacing rules a coordinate grid under the boxes every GridSpacing
	// pixels. Zero draws no grid.
	GridSpacing int

	// GridColor is the CSS color of the grid. Default semi-transparent red.
	GridColor string

	// GridLabels writes "x,y" at each grid intersection.
	GridLabels bool

	// OutputPath writes the result to disk instead of returning base64.
	OutputPath string
}

// DrawBoxes returns a copy of img with every box outlined.
//
// Boxes are in the same coordinates as CropToBox. Boxes partly outside the
// image are drawn clipped; the input image is never modified.
func DrawBoxes(img image.Image, boxes []bbox.Rect, opts DrawOptions) (*ImageResult, error) {
	if opts.LineWidth == 0 {
		opts.LineWidth = 2
	}
	if opts.LineWidth < 0 {
		return nil, fmt.Errorf("%w: line width %g must be positive", bbox.ErrInvalidArgument, opts.LineWidth)
	}
	if opts.Labels != nil && len(opts.Labels) != len(boxes) {
		return nil, fmt.Errorf("%w: %d labels for %d boxes", bbox.ErrInvalidArgument, len(opts.Labels), len(boxes))
	}

	var colors []color.Color
	if opts.Color != "" {
		c, err := ParseColor(opts.Color)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", bbox.ErrInvalidArgument, err)
		}
		colors = make([]color.Color, len(boxes))
		for i := range colors {
			colors[i] = c
		}
	} else {
		colors = boxPalette(len(boxes))
	}

	if opts.GridSpacing < 0 {
		return nil, fmt.Errorf("%w: grid spacing %d must be non-negative", bbox.ErrInvalidArgument, opts.GridSpacing)
	}
	var gridColor color.Color = defaultGridColor
	if opts.GridColor != "" {
		c, err := ParseColor(opts.GridColor)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", bbox.ErrInvalidArgument, err)
		}
		gridColor = c
	}

	dc := gg.NewContextForImage(img)
	if opts.GridSpacing > 0 {
		drawGrid(dc, opts.GridSpacing, gridColor, opts.GridLabels)
	}
	dc.SetLineWidth(opts.LineWidth)
	dc.SetFontFace(basicfont.Face7x13)

	for i, r := range boxes {
		dc.SetColor(colors[i])
		dc.DrawRectangle(float64(r.X), float64(r.Y), float64(r.Width), float64(r.Height))
		dc.Stroke()

		label := ""
		switch {
		case opts.Labels != nil:
			label = opts.Labels[i]
		case opts.ShowIndex:
			label = strconv.Itoa(i)
		}
		if label != "" {
			dc.DrawStringAnchored(label, float64(r.X)+opts.LineWidth+1, float64(r.Y)+opts.LineWidth+1, 0, 1)
		}
	}

	return newImageResult(dc.Image(), opts.OutputPath)
}
