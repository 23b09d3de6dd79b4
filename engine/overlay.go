package engine

import (
	"fmt"
	"sync"

	"github.com/Zyko0/go-sdl3/sdl"
)

// Overlay is the on-screen status: progress, last results and which keys
// are live. The sequencer writes to it, the render loop reads it.
type Overlay struct {
	mu       sync.Mutex
	lines    []string
	controls map[Control]bool
}

func NewOverlay() *Overlay {
	return &Overlay{
		lines: []string{"Welcome to the Signal Detection Demo!"},
		controls: map[Control]bool{
			ControlStart:    true,
			ControlPractice: true,
			ControlSettings: true,
		},
	}
}

func (o *Overlay) Progress(current, total int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lines = []string{fmt.Sprintf("Trial %d / %d", current, total)}
}

func (o *Overlay) Summary(number int, s Summary) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lines = []string{fmt.Sprintf("Experiment #%d Results", number)}
	for _, row := range SummaryTable(s)[1:] {
		o.lines = append(o.lines, fmt.Sprintf("%s: %s", row[0], row[1]))
	}
}

func (o *Overlay) Controls(c Control, enabled bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.controls[c] = enabled
}

func (o *Overlay) Cancelled(number int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lines = []string{fmt.Sprintf("Experiment #%d cancelled.", number)}
}

func (o *Overlay) Enabled(c Control) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.controls[c]
}

// Lines returns the status text followed by the key help for the current
// control state. While trials run nothing is shown until the response
// window opens, so the text never covers a target.
func (o *Overlay) Lines(p Params) []string {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.controls[ControlStart] && !o.controls[ControlResponse] {
		return nil
	}
	out := append([]string(nil), o.lines...)
	if o.controls[ControlSettings] {
		out = append(out, fmt.Sprintf("Duration %dms (UP/DOWN)  Size %dpx (LEFT/RIGHT)",
			p.StimulusDuration.Milliseconds(), p.StimulusSize))
	}
	if o.controls[ControlStart] {
		out = append(out, "SPACE start  T practice  ESC quit")
	}
	if o.controls[ControlCancel] {
		out = append(out, "ESC cancel")
	}
	if o.controls[ControlResponse] {
		out = append(out, "Did you see it? Y / N")
	}
	return out
}

func (o *Overlay) Render(renderer *sdl.Renderer, texts *TextCache, p Params, color sdl.Color) {
	y := float32(10)
	for _, line := range o.Lines(p) {
		y += texts.Draw(renderer, line, color, 10, y) + 4
	}
}
