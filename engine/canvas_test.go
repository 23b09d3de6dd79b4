package engine_test

import (
	"math/rand"
	"testing"

	"github.com/Zyko0/go-sdl3/sdl"
	"github.com/advanderveer/go-test"
	"github.com/iainireland/signal-detection-demo/engine"
)

type line struct{ x1, y1, x2, y2 float32 }

type circle struct{ cx, cy, r float32 }

// recordSurface keeps every call for inspection.
type recordSurface struct {
	w, h    int
	clears  int
	lines   []line
	circles []circle
}

func (s *recordSurface) Size() (int, int) { return s.w, s.h }
func (s *recordSurface) Clear(sdl.Color)  { s.clears++; s.lines = nil; s.circles = nil }
func (s *recordSurface) Line(x1, y1, x2, y2 float32, _ sdl.Color) {
	s.lines = append(s.lines, line{x1, y1, x2, y2})
}
func (s *recordSurface) FillCircle(cx, cy, r float32, _ sdl.Color) {
	s.circles = append(s.circles, circle{cx, cy, r})
}

var _ engine.Surface = &recordSurface{}
var _ engine.Surface = &engine.Scene{}

func TestCanvasSquare(t *testing.T) {
	m, side := engine.Canvas{Surface: &recordSurface{w: 800, h: 600}}.Square()
	test.Equals(t, 100, m)
	test.Equals(t, 600, side)

	m, side = engine.Canvas{Surface: &recordSurface{w: 600, h: 800}}.Square()
	test.Equals(t, 0, m)
	test.Equals(t, 600, side)

	m, side = engine.Canvas{Surface: &recordSurface{w: 801, h: 600}}.Square()
	test.Equals(t, 100, m)
	test.Equals(t, 600, side)
}

func TestCanvasCross(t *testing.T) {
	s := &recordSurface{w: 800, h: 600}
	engine.Canvas{Surface: s}.Cross(sdl.Color{A: 255})

	//mid = 300.5, radius = 30, offset by the 100px margin
	test.Equals(t, []line{
		{400.5, 270.5, 400.5, 330.5},
		{370.5, 300.5, 430.5, 300.5},
	}, s.lines)
}

func TestCanvasDiscStaysInside(t *testing.T) {
	s := &recordSurface{w: 800, h: 600}
	cv := engine.Canvas{Surface: s}
	cv.Disc(0, 0, 20, sdl.Color{A: 255})
	cv.Disc(580, 580, 20, sdl.Color{A: 255})

	test.Equals(t, []circle{{110, 10, 10}, {690, 590, 10}}, s.circles)
}

func TestTargetPositionBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, tc := range []struct{ side, size int }{
		{600, 20}, {600, 599}, {100, 1}, {50, 50}, {10, 40},
	} {
		hi := tc.side - tc.size
		if hi < 0 {
			hi = 0
		}
		for i := 0; i < 2000; i++ {
			x, y := engine.TargetPosition(rng, tc.side, tc.size)
			test.Assert(t, x >= 0 && x <= hi, "x=%d out of [0,%d]", x, hi)
			test.Assert(t, y >= 0 && y <= hi, "y=%d out of [0,%d]", y, hi)
		}
	}
}

func TestSceneRecordsAndClears(t *testing.T) {
	s := engine.NewScene(640, 480, sdl.Color{A: 255})
	s.Line(0, 0, 1, 1, sdl.Color{A: 255})
	s.FillCircle(5, 5, 2, sdl.Color{A: 255})
	test.Equals(t, 2, s.Ops())

	s.Clear(sdl.Color{R: 1, A: 255})
	test.Equals(t, 0, s.Ops())

	s.Resize(1024, 768)
	w, h := s.Size()
	test.Equals(t, 1024, w)
	test.Equals(t, 768, h)
}
