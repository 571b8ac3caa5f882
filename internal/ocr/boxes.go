package ocr

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"

	"github.com/ironsheep/bbox-tools-mcp/internal/bbox"
)

// DefaultLanguage is used when Options.Language is empty.
const DefaultLanguage = "eng"

var levels = map[string]gosseract.PageIteratorLevel{
	"block":     gosseract.RIL_BLOCK,
	"paragraph": gosseract.RIL_PARA,
	"line":      gosseract.RIL_TEXTLINE,
	"word":      gosseract.RIL_WORD,
}

// Options controls TextBoxes.
type Options struct {
	// Language is a Tesseract language code such as "eng" or "deu".
	Language string

	// MinConfidence drops boxes below this OCR confidence (0.0 to 1.0).
	MinConfidence float64

	// Level is the granularity: "word" (default), "line", "paragraph" or "block".
	Level string
}

// TextBox is one piece of recognized text and where it is.
type TextBox struct {
	Text       string    `json:"text"`
	Confidence float64   `json:"confidence"`
	Box        bbox.Rect `json:"box"`
}

// TextBoxes runs OCR over img, or over region of it when region is non-nil,
// and returns the boxes of the recognized text in reading order.
//
// Boxes with empty text or a confidence below opts.MinConfidence are dropped.
func TextBoxes(img image.Image, region *bbox.Rect, opts Options) ([]TextBox, error) {
	if opts.Language == "" {
		opts.Language = DefaultLanguage
	}
	if opts.Level == "" {
		opts.Level = "word"
	}
	level, ok := levels[opts.Level]
	if !ok {
		return nil, fmt.Errorf("%w: unknown text level %q", bbox.ErrInvalidArgument, opts.Level)
	}
	if opts.MinConfidence < 0 || opts.MinConfidence > 1 {
		return nil, fmt.Errorf("%w: min confidence %g must be within [0,1]", bbox.ErrInvalidArgument, opts.MinConfidence)
	}

	bounds := img.Bounds()
	var offsetX, offsetY int
	if region != nil {
		if region.Width < 1 || region.Height < 1 ||
			region.X < 0 || region.Y < 0 || region.XMax() > bounds.Dx() || region.YMax() > bounds.Dy() {
			return nil, fmt.Errorf("%w: region %v outside image bounds %dx%d",
				bbox.ErrInvalidArgument, *region, bounds.Dx(), bounds.Dy())
		}
		img = imaging.Crop(img, image.Rect(region.X, region.Y, region.XMax(), region.YMax()).Add(bounds.Min))
		offsetX, offsetY = region.X, region.Y
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image for OCR: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(opts.Language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	found, err := client.GetBoundingBoxes(level)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	boxes := make([]TextBox, 0, len(found))
	for _, b := range found {
		text := strings.TrimSpace(b.Word)
		if text == "" {
			continue
		}
		confidence := b.Confidence / 100.0
		if confidence < opts.MinConfidence {
			continue
		}
		boxes = append(boxes, TextBox{
			Text:       text,
			Confidence: confidence,
			Box: bbox.Rect{
				X:      b.Box.Min.X + offsetX,
				Y:      b.Box.Min.Y + offsetY,
				Width:  b.Box.Dx(),
				Height: b.Box.Dy(),
			},
		})
	}

	return boxes, nil
}
