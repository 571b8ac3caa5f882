package imaging

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"
)

// ParseColor parses a CSS color string ("black", "#FF000080", "rgb(0,128,255)").
func ParseColor(s string) (color.NRGBA, error) {
	c, err := csscolorparser.Parse(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b, a := c.RGBA255()
	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}

// goldenAngle spreads successive hues so neighbouring boxes never share a color.
const goldenAngle = 360 / math.Phi / math.Phi

// boxPalette returns n visually distinct, fully saturated colors.
// The sequence is deterministic: box i always gets the same color.
func boxPalette(n int) []color.Color {
	palette := make([]color.Color, n)
	for i := range palette {
		hue := math.Mod(float64(i)*goldenAngle, 360)
		palette[i] = colorful.Hsv(hue, 0.85, 0.95).Clamped()
	}
	return palette
}
