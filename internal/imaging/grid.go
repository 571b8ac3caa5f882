package imaging

import (
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// defaultGridColor is semi-transparent red.
var defaultGridColor = color.NRGBA{R: 255, A: 128}

// drawGrid rules lines every spacing pixels across the whole context, and
// optionally labels each intersection with its "x,y" coordinate.
//
// Lines are one pixel wide and land exactly on columns and rows that are
// multiples of spacing.
func drawGrid(dc *gg.Context, spacing int, c color.Color, showCoordinates bool) {
	width, height := dc.Width(), dc.Height()

	dc.Push()
	defer dc.Pop()

	dc.SetLineWidth(1)
	dc.SetColor(c)
	for x := spacing; x < width; x += spacing {
		dc.DrawLine(float64(x)+0.5, 0, float64(x)+0.5, float64(height))
	}
	for y := spacing; y < height; y += spacing {
		dc.DrawLine(0, float64(y)+0.5, float64(width), float64(y)+0.5)
	}
	dc.Stroke()

	if !showCoordinates {
		return
	}

	dc.SetFontFace(basicfont.Face7x13)
	for y := spacing; y < height; y += spacing {
		for x := spacing; x < width; x += spacing {
			label := fmt.Sprintf("%d,%d", x, y)
			w, h := dc.MeasureString(label)

			dc.SetColor(color.NRGBA{A: 180})
			dc.DrawRectangle(float64(x)+2, float64(y)+2, w+2, h+2)
			dc.Fill()

			dc.SetColor(color.White)
			dc.DrawStringAnchored(label, float64(x)+3, float64(y)+3, 0, 1)
		}
	}
}
