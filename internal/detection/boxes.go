package detection

import (
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"

	"github.com/ironsheep/bbox-tools-mcp/internal/bbox"
)

// Default detection parameters.
const (
	DefaultMinArea       = 100
	DefaultTolerance     = 0.9
	DefaultEdgeThreshold = 128
)

// minContourPixels discards edge fragments too small to outline a box.
const minContourPixels = 10

// sideBand is how far (in pixels) inside its bounding box a contour pixel
// may lie and still count as covering that side.
const sideBand = 2

// Options controls DetectBoxes. Every field is used as given; start from
// DefaultOptions to change only some of them.
type Options struct {
	// MinArea drops boxes smaller than this many square pixels.
	MinArea int

	// Tolerance is the minimum rectangularity (0.0 to 1.0).
	Tolerance float64

	// EdgeThreshold is the edge response (1-255) at which a pixel becomes an
	// edge pixel.
	EdgeThreshold uint8
}

// DefaultOptions returns the default detection parameters.
func DefaultOptions() Options {
	return Options{
		MinArea:       DefaultMinArea,
		Tolerance:     DefaultTolerance,
		EdgeThreshold: DefaultEdgeThreshold,
	}
}

// Detected is one box found in an image.
type Detected struct {
	// Box is the bounding box of the outline, in image coordinates.
	Box bbox.Rect `json:"box"`

	// Confidence is the rectangularity of the outline (0.0 to 1.0): the
	// fraction of the box perimeter that the outline actually runs along.
	Confidence float64 `json:"confidence"`

	// Area is Box.Width * Box.Height.
	Area int `json:"area"`
}

type point struct {
	x, y int
}

// DetectBoxes finds axis-aligned rectangular outlines in img and returns their
// bounding boxes, largest first.
//
// # Algorithm
//
//  1. Edge map: grayscale, Laplacian edge response and a threshold (bild).
//     The response is clamped at zero, so each edge shows up on its brighter
//     side and a solid shape yields a closed one-pixel ring.
//  2. Contours: 8-connected flood fill over edge pixels
//  3. Box: bounding box of each contour
//  4. Rectangularity: walk the four sides of the box and count the positions
//     where the contour lies within sideBand pixels of that side
//  5. Filter by MinArea and Tolerance
//
// An outlined or filled rectangle scores close to 1.0. A circle touches its
// bounding box only near four tangent points and scores far lower.
//
// # Limitations
//
//   - Rotated rectangles are reported by their axis-aligned bounding box and
//     usually fall below the tolerance.
//   - Shapes touching each other merge into one contour.
func DetectBoxes(img image.Image, opts Options) ([]Detected, error) {
	if opts.MinArea < 0 {
		return nil, fmt.Errorf("%w: min area %d must be non-negative", bbox.ErrInvalidArgument, opts.MinArea)
	}
	if opts.Tolerance < 0 || opts.Tolerance > 1 {
		return nil, fmt.Errorf("%w: tolerance %g must be within [0,1]", bbox.ErrInvalidArgument, opts.Tolerance)
	}
	if opts.EdgeThreshold == 0 {
		// A zero threshold marks every pixel as an edge.
		return nil, fmt.Errorf("%w: edge threshold must be within [1,255]", bbox.ErrInvalidArgument)
	}

	edges := edgeMask(img, opts.EdgeThreshold)
	width, height := edges.Bounds().Dx(), edges.Bounds().Dy()

	found := make([]Detected, 0)
	for _, contour := range findContours(edges, width, height) {
		minX, minY := width, height
		maxX, maxY := 0, 0
		for _, p := range contour {
			minX = min(minX, p.x)
			maxX = max(maxX, p.x)
			minY = min(minY, p.y)
			maxY = max(maxY, p.y)
		}

		box := bbox.Rect{X: minX, Y: minY, Width: maxX - minX + 1, Height: maxY - minY + 1}
		area := box.Width * box.Height
		if area < opts.MinArea {
			continue
		}

		score := rectangularity(contour, box)
		if score < opts.Tolerance {
			continue
		}

		found = append(found, Detected{
			Box:        box,
			Confidence: math.Round(score*1000) / 1000,
			Area:       area,
		})
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].Area > found[j].Area
	})

	return found, nil
}

// edgeMask returns a binary image where 0xFF marks an edge pixel.
func edgeMask(img image.Image, threshold uint8) *image.Gray {
	gray := effect.Grayscale(img)
	return segment.Threshold(effect.EdgeDetection(gray, 1), threshold)
}

// findContours groups edge pixels into 8-connected components.
func findContours(edges *image.Gray, width, height int) [][]point {
	visited := make([]bool, width*height)
	contours := make([][]point, 0)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if visited[y*width+x] || !isEdge(edges, x, y) {
				continue
			}
			contour := floodFill(edges, visited, x, y, width, height)
			if len(contour) >= minContourPixels {
				contours = append(contours, contour)
			}
		}
	}

	return contours
}

// floodFill collects the component containing (startX, startY).
// It is iterative so large outlines cannot overflow the goroutine stack.
func floodFill(edges *image.Gray, visited []bool, startX, startY, width, height int) []point {
	var contour []point
	stack := []point{{startX, startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.x < 0 || p.x >= width || p.y < 0 || p.y >= height {
			continue
		}
		if visited[p.y*width+p.x] || !isEdge(edges, p.x, p.y) {
			continue
		}

		visited[p.y*width+p.x] = true
		contour = append(contour, p)

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx != 0 || dy != 0 {
					stack = append(stack, point{p.x + dx, p.y + dy})
				}
			}
		}
	}

	return contour
}

func isEdge(edges *image.Gray, x, y int) bool {
	return edges.Pix[y*edges.Stride+x] != 0
}

// rectangularity returns the fraction of box's perimeter positions that the
// contour covers.
func rectangularity(contour []point, box bbox.Rect) float64 {
	top := make([]bool, box.Width)
	bottom := make([]bool, box.Width)
	left := make([]bool, box.Height)
	right := make([]bool, box.Height)

	for _, p := range contour {
		col, row := p.x-box.X, p.y-box.Y
		if row < sideBand {
			top[col] = true
		}
		if row >= box.Height-sideBand {
			bottom[col] = true
		}
		if col < sideBand {
			left[row] = true
		}
		if col >= box.Width-sideBand {
			right[row] = true
		}
	}

	covered := 0
	for _, side := range [][]bool{top, bottom, left, right} {
		for _, hit := range side {
			if hit {
				covered++
			}
		}
	}
	return float64(covered) / float64(2*(box.Width+box.Height))
}
