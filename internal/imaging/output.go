package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// ImageResult describes an image produced by a node.
//
// Exactly one of ImageBase64 and Path is set: Path when the caller asked for
// the image to be written to disk, ImageBase64 otherwise.
type ImageResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64,omitempty"`
	Path        string `json:"path,omitempty"`
	MimeType    string `json:"mime_type"`
}

// newImageResult encodes img as PNG, either inline or to outputPath.
func newImageResult(img image.Image, outputPath string) (*ImageResult, error) {
	result := &ImageResult{
		Width:    img.Bounds().Dx(),
		Height:   img.Bounds().Dy(),
		MimeType: "image/png",
	}

	if outputPath != "" {
		format, err := imaging.FormatFromFilename(outputPath)
		if err != nil {
			return nil, fmt.Errorf("unsupported output path %q: %w", outputPath, err)
		}
		if err := imaging.Save(img, outputPath); err != nil {
			return nil, fmt.Errorf("failed to save image: %w", err)
		}
		result.Path = outputPath
		result.MimeType = "image/" + formatMimeSuffix(format)
		return result, nil
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	result.ImageBase64 = base64.StdEncoding.EncodeToString(buf.Bytes())
	return result, nil
}

func formatMimeSuffix(f imaging.Format) string {
	switch f {
	case imaging.JPEG:
		return "jpeg"
	case imaging.GIF:
		return "gif"
	case imaging.BMP:
		return "bmp"
	case imaging.TIFF:
		return "tiff"
	default:
		return "png"
	}
}
