package bbox

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	r, err := New(10, 10, 100, 50)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	want := Rect{X: 10, Y: 10, Width: 100, Height: 50}
	if r != want {
		t.Errorf("New: got %v, want %v", r, want)
	}

	c := r.Corners()
	wantCorners := Corners{XMin: 10, YMin: 10, XMax: 110, YMax: 60}
	if c != wantCorners {
		t.Errorf("Corners: got %+v, want %+v", c, wantCorners)
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		x, y, w, h int
	}{
		{"negative x", -1, 0, 10, 10},
		{"negative y", 0, -1, 10, 10},
		{"zero width", 0, 0, 0, 10},
		{"zero height", 0, 0, 10, 0},
		{"negative width", 0, 0, -5, 10},
		{"x beyond limit", MaxCoordinate + 1, 0, 10, 10},
		{"height beyond limit", 0, 0, 10, 1 << 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.x, tt.y, tt.w, tt.h)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("New(%d,%d,%d,%d): got %v, want ErrInvalidArgument", tt.x, tt.y, tt.w, tt.h, err)
			}
		})
	}
}

func TestNew_CornerProjection(t *testing.T) {
	for x := 0; x < 20; x += 7 {
		for w := 1; w < 40; w += 9 {
			r, err := New(x, x+3, w, w+2)
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			c := r.Corners()
			if c.XMax-c.XMin != r.Width || c.YMax-c.YMin != r.Height {
				t.Errorf("corners %+v do not match extent of %v", c, r)
			}
		}
	}
}

func TestFromSlice(t *testing.T) {
	r, err := FromSlice([]int{10, 20, 110, 70})
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	want := Rect{X: 10, Y: 20, Width: 100, Height: 50}
	if r != want {
		t.Errorf("FromSlice: got %v, want %v", r, want)
	}

	back := r.Slice()
	for i, v := range []int{10, 20, 110, 70} {
		if back[i] != v {
			t.Errorf("Slice()[%d]: got %d, want %d", i, back[i], v)
		}
	}
}

func TestFromSlice_Invalid(t *testing.T) {
	tests := []struct {
		name string
		v    []int
	}{
		{"nil", nil},
		{"three elements", []int{1, 2, 3}},
		{"five elements", []int{1, 2, 3, 4, 5}},
		{"inverted x", []int{50, 0, 10, 10}},
		{"inverted y", []int{0, 50, 10, 10}},
		{"negative origin", []int{-1, 0, 10, 10}},
		{"corner beyond limit", []int{0, 0, MaxCoordinate + 1, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromSlice(tt.v); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("FromSlice(%v): got %v, want ErrInvalidArgument", tt.v, err)
			}
		})
	}
}

func TestRect_String(t *testing.T) {
	r := Rect{X: 1, Y: 2, Width: 3, Height: 4}
	if got := r.String(); got != "(1,2,3,4)" {
		t.Errorf("String: got %q, want %q", got, "(1,2,3,4)")
	}
}
