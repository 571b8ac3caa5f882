package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/bbox-tools-mcp/internal/bbox"
)

// CropToBox extracts the region covered by r from img.
//
// r is given in image coordinates relative to the top-left pixel, even when
// img.Bounds() does not start at (0,0). A scale other than 1 resizes the crop
// by that factor with Lanczos resampling.
func CropToBox(img image.Image, r bbox.Rect, scale float64, outputPath string) (*ImageResult, error) {
	bounds := img.Bounds()

	if r.Width < 1 || r.Height < 1 {
		return nil, fmt.Errorf("%w: cannot crop degenerate box %v", bbox.ErrInvalidArgument, r)
	}
	if r.X < 0 || r.Y < 0 || r.XMax() > bounds.Dx() || r.YMax() > bounds.Dy() {
		return nil, fmt.Errorf("%w: box %v outside image bounds %dx%d",
			bbox.ErrInvalidArgument, r, bounds.Dx(), bounds.Dy())
	}
	if scale <= 0 {
		return nil, fmt.Errorf("%w: scale %g must be positive", bbox.ErrInvalidArgument, scale)
	}

	region := image.Rect(r.X, r.Y, r.XMax(), r.YMax()).Add(bounds.Min)
	cropped := imaging.Crop(img, region)

	if scale != 1.0 {
		newWidth := max(int(float64(cropped.Bounds().Dx())*scale), 1)
		newHeight := max(int(float64(cropped.Bounds().Dy())*scale), 1)
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos)
	}

	return newImageResult(cropped, outputPath)
}
