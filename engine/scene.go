package engine

import (
	"math"
	"sync"

	"github.com/Zyko0/go-sdl3/sdl"
)

type opKind int

const (
	opLine opKind = iota
	opCircle
)

type drawOp struct {
	kind           opKind
	x1, y1, x2, y2 float32
	color          sdl.Color
}

// Scene records what the sequencer draws so the render loop, which owns the
// renderer, can replay it every frame.
type Scene struct {
	mu   sync.Mutex
	w, h int
	bg   sdl.Color
	ops  []drawOp
}

func NewScene(w, h int, bg sdl.Color) *Scene {
	return &Scene{w: w, h: h, bg: bg}
}

func (s *Scene) Size() (w, h int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w, s.h
}

func (s *Scene) Resize(w, h int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.w, s.h = w, h
}

func (s *Scene) Clear(c sdl.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bg = c
	s.ops = s.ops[:0]
}

func (s *Scene) Line(x1, y1, x2, y2 float32, c sdl.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops = append(s.ops, drawOp{kind: opLine, x1: x1, y1: y1, x2: x2, y2: y2, color: c})
}

func (s *Scene) FillCircle(cx, cy, r float32, c sdl.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops = append(s.ops, drawOp{kind: opCircle, x1: cx, y1: cy, x2: r, color: c})
}

// Ops returns the number of recorded draw operations.
func (s *Scene) Ops() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ops)
}

// Render clears the target to the scene background and replays the
// recorded operations. It does not present.
func (s *Scene) Render(renderer *sdl.Renderer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	renderer.SetDrawColor(s.bg.R, s.bg.G, s.bg.B, s.bg.A)
	renderer.Clear()
	for _, op := range s.ops {
		renderer.SetDrawColor(op.color.R, op.color.G, op.color.B, op.color.A)
		switch op.kind {
		case opLine:
			renderer.RenderLine(op.x1, op.y1, op.x2, op.y2)
		case opCircle:
			fillCircle(renderer, op.x1, op.y1, op.x2)
		}
	}
}

// fillCircle draws one horizontal span per pixel row.
func fillCircle(renderer *sdl.Renderer, cx, cy, r float32) {
	for dy := -r; dy <= r; dy++ {
		dx := float32(math.Sqrt(float64(r*r - dy*dy)))
		renderer.RenderLine(cx-dx, cy+dy, cx+dx, cy+dy)
	}
}
