package engine

import (
	"fmt"
	"log/slog"

	"github.com/Zyko0/go-sdl3/sdl"
	"github.com/Zyko0/go-sdl3/ttf"
)

type colorOption struct {
	Color sdl.Color
	Label string
}

var stimulusColors = []colorOption{
	{sdl.Color{R: 140, G: 140, B: 140, A: 255}, "Light grey"},
	{sdl.Color{R: 255, G: 255, B: 255, A: 255}, "White"},
	{sdl.Color{R: 200, G: 40, B: 40, A: 255}, "Red"},
	{sdl.Color{R: 40, G: 160, B: 40, A: 255}, "Green"},
	{sdl.Color{R: 40, G: 80, B: 200, A: 255}, "Blue"},
}

var backgroundColors = []colorOption{
	{sdl.Color{R: 128, G: 128, B: 128, A: 255}, "Grey"},
	{sdl.Color{R: 0, G: 0, B: 0, A: 255}, "Black"},
	{sdl.Color{R: 255, G: 255, B: 255, A: 255}, "White"},
}

// stepper is a numeric field edited with - and + buttons.
type stepper struct {
	Label    string
	Value    *int
	Step     int
	Min, Max int
}

func (s stepper) bump(dir int) {
	v := *s.Value + dir*s.Step
	if v < s.Min {
		v = s.Min
	}
	if v > s.Max {
		v = s.Max
	}
	*s.Value = v
}

func colorIndex(opts []colorOption, c sdl.Color) int {
	for i, o := range opts {
		if o.Color == c {
			return i
		}
	}
	return 0
}

// RunGuiSetup shows the settings form. It returns false when the window is
// closed without pressing START.
func RunGuiSetup(cfg *Config, logger *slog.Logger) bool {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		logger.Error("SDL_Init failed", "err", err)
		return false
	}
	defer sdl.Quit()

	if err := ttf.Init(); err != nil {
		logger.Error("TTF_Init failed", "err", err)
		return false
	}
	defer ttf.Quit()

	window, renderer, err := sdl.CreateWindowAndRenderer("Signal Detection Setup", 640, 520, 0)
	if err != nil {
		logger.Error("CreateWindowAndRenderer failed", "err", err)
		return false
	}
	defer window.Destroy()
	defer renderer.Destroy()

	fontPath := GetDefaultFontPath()
	if fontPath == "" {
		logger.Error("no default font found for GUI setup")
		return false
	}
	guiFont, err := ttf.OpenFont(fontPath, 18)
	if err != nil {
		logger.Error("failed to load GUI font", "err", err)
		return false
	}
	defer guiFont.Close()
	texts := NewTextCache(guiFont)
	defer texts.Destroy()

	steppers := []stepper{
		{"Stimulus duration (ms)", &cfg.DurationMS, 50, 50, int(MaxStimulusDuration.Milliseconds())},
		{"Stimulus size (px)", &cfg.StimulusSize, 5, 5, 200},
		{"Trials", &cfg.TotalTrials, 5, 5, 200},
	}
	stimIdx := colorIndex(stimulusColors, cfg.StimulusColor)
	bgIdx := colorIndex(backgroundColors, cfg.BGColor)

	black := sdl.Color{R: 0, G: 0, B: 0, A: 255}
	white := sdl.Color{R: 255, G: 255, B: 255, A: 255}

	for {
		var e sdl.Event
		for sdl.PollEvent(&e) {
			switch e.Type {
			case sdl.EVENT_QUIT:
				return false
			case sdl.EVENT_MOUSE_BUTTON_DOWN:
				me := e.MouseButtonEvent()
				mx, my := me.X, me.Y

				for i, s := range steppers {
					y := float32(50 + i*60)
					if my >= y && my <= y+30 {
						if mx >= 360 && mx <= 390 {
							s.bump(-1)
						} else if mx >= 480 && mx <= 510 {
							s.bump(1)
						}
					}
				}

				if mx >= 360 && mx <= 510 {
					if my >= 230 && my <= 260 {
						stimIdx = (stimIdx + 1) % len(stimulusColors)
						cfg.StimulusColor = stimulusColors[stimIdx].Color
					} else if my >= 290 && my <= 320 {
						bgIdx = (bgIdx + 1) % len(backgroundColors)
						cfg.BGColor = backgroundColors[bgIdx].Color
					}
				}
				if mx >= 50 && mx <= 300 && my >= 350 && my <= 380 {
					cfg.Fullscreen = !cfg.Fullscreen
				}

				if mx >= 270 && mx <= 370 && my >= 440 && my <= 480 {
					if err := cfg.Params().Validate(); err != nil {
						logger.Warn("settings rejected", "err", err)
						break
					}
					if err := cfg.SaveCache(CacheFile); err != nil {
						logger.Warn("failed to save settings", "err", err)
					}
					return true
				}
			}
		}

		renderer.SetDrawColor(240, 240, 240, 255)
		renderer.Clear()

		for i, s := range steppers {
			y := float32(50 + i*60)
			texts.Draw(renderer, s.Label, black, 50, y+4)
			drawButton(renderer, texts, sdl.FRect{X: 360, Y: y, W: 30, H: 30}, "-", black)
			texts.Draw(renderer, fmt.Sprint(*s.Value), black, 410, y+4)
			drawButton(renderer, texts, sdl.FRect{X: 480, Y: y, W: 30, H: 30}, "+", black)
		}

		texts.Draw(renderer, "Stimulus colour", black, 50, 234)
		drawSwatch(renderer, texts, sdl.FRect{X: 360, Y: 230, W: 150, H: 30}, stimulusColors[stimIdx])
		texts.Draw(renderer, "Background colour", black, 50, 294)
		drawSwatch(renderer, texts, sdl.FRect{X: 360, Y: 290, W: 150, H: 30}, backgroundColors[bgIdx])

		// Fullscreen checkbox
		renderer.SetDrawColor(255, 255, 255, 255)
		fullCheck := sdl.FRect{X: 50, Y: 355, W: 20, H: 20}
		renderer.RenderFillRect(&fullCheck)
		renderer.SetDrawColor(0, 0, 0, 255)
		renderer.RenderRect(&fullCheck)
		if cfg.Fullscreen {
			mark := sdl.FRect{X: 54, Y: 359, W: 12, H: 12}
			renderer.SetDrawColor(0, 150, 0, 255)
			renderer.RenderFillRect(&mark)
		}
		texts.Draw(renderer, "Fullscreen mode", black, 80, 355)

		if err := cfg.Params().Validate(); err != nil {
			texts.Draw(renderer, err.Error(), sdl.Color{R: 200, G: 0, B: 0, A: 255}, 50, 400)
		}

		// Start button
		renderer.SetDrawColor(0, 150, 0, 255)
		startBtn := sdl.FRect{X: 270, Y: 440, W: 100, H: 40}
		renderer.RenderFillRect(&startBtn)
		texts.Draw(renderer, "START", white, 293, 450)

		renderer.Present()
		sdl.Delay(10)
	}
}

func drawButton(renderer *sdl.Renderer, texts *TextCache, r sdl.FRect, label string, color sdl.Color) {
	renderer.SetDrawColor(200, 200, 200, 255)
	renderer.RenderFillRect(&r)
	renderer.SetDrawColor(0, 0, 0, 255)
	renderer.RenderRect(&r)
	texts.Draw(renderer, label, color, r.X+10, r.Y+4)
}

func drawSwatch(renderer *sdl.Renderer, texts *TextCache, r sdl.FRect, opt colorOption) {
	renderer.SetDrawColor(opt.Color.R, opt.Color.G, opt.Color.B, opt.Color.A)
	renderer.RenderFillRect(&r)
	renderer.SetDrawColor(0, 0, 0, 255)
	renderer.RenderRect(&r)
	label := sdl.Color{R: 0, G: 0, B: 0, A: 255}
	if int(opt.Color.R)+int(opt.Color.G)+int(opt.Color.B) < 300 {
		label = sdl.Color{R: 255, G: 255, B: 255, A: 255}
	}
	texts.Draw(renderer, opt.Label, label, r.X+8, r.Y+4)
}
