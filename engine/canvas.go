package engine

import (
	"math"
	"math/rand"

	"github.com/Zyko0/go-sdl3/sdl"
)

// Surface is the window the stimuli are drawn on, in window coordinates.
type Surface interface {
	Size() (w, h int)
	Clear(c sdl.Color)
	Line(x1, y1, x2, y2 float32, c sdl.Color)
	FillCircle(cx, cy, r float32, c sdl.Color)
}

// Canvas draws inside the largest centered square of a Surface.
type Canvas struct {
	Surface Surface
}

// Square returns the horizontal margin and the side of the drawable square.
func (cv Canvas) Square() (margin, side int) {
	w, h := cv.Surface.Size()
	side = h
	if w < h {
		side = w
	}
	if w > h {
		margin = (w - h) / 2
	}
	return margin, side
}

func (cv Canvas) Clear(bg sdl.Color) {
	cv.Surface.Clear(bg)
}

// Cross draws the fixation cross at the center of the square.
func (cv Canvas) Cross(c sdl.Color) {
	margin, side := cv.Square()
	mid := float32(math.Floor(float64(side)/2)) + 0.5
	radius := float32(math.Floor(float64(mid) / 10))
	x := float32(margin) + mid

	cv.Surface.Line(x, mid-radius, x, mid+radius, c)
	cv.Surface.Line(x-radius, mid, x+radius, mid, c)
}

// Disc draws a filled circle of the given diameter whose bounding box has
// its top-left corner at (x, y) in square coordinates.
func (cv Canvas) Disc(x, y, size int, c sdl.Color) {
	margin, _ := cv.Square()
	r := float32(size) / 2
	cv.Surface.FillCircle(float32(margin+x)+r, float32(y)+r, r, c)
}

// TargetPosition picks a uniformly random top-left corner such that a target
// of the given size stays fully inside a square of the given side.
func TargetPosition(rng *rand.Rand, side, size int) (x, y int) {
	span := side - size
	if span <= 0 {
		return 0, 0
	}
	return rng.Intn(span + 1), rng.Intn(span + 1)
}
