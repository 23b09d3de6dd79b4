package engine

import (
	"context"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/Zyko0/go-sdl3/sdl"
	"github.com/Zyko0/go-sdl3/ttf"
	"github.com/pkg/errors"
)

const (
	durationStep = 50 * time.Millisecond
	sizeStep     = 5
)

// Run opens the stimulus window and serves the keyboard until the operator
// quits. The event log is written to a timestamped variant of
// cfg.OutputFile on the way out.
func Run(cfg *Config, logger *slog.Logger) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return errors.Wrap(err, "SDL_Init failed")
	}
	defer sdl.Quit()

	if err := ttf.Init(); err != nil {
		return errors.Wrap(err, "TTF_Init failed")
	}
	defer ttf.Quit()

	windowFlags := sdl.WINDOW_RESIZABLE
	if cfg.Fullscreen {
		windowFlags |= sdl.WINDOW_FULLSCREEN
	}

	window, renderer, err := sdl.CreateWindowAndRenderer("Signal Detection Demo", cfg.ScreenWidth, cfg.ScreenHeight, windowFlags)
	if err != nil {
		return errors.Wrap(err, "CreateWindowAndRenderer failed")
	}
	defer window.Destroy()
	defer renderer.Destroy()

	if cfg.VSync {
		renderer.SetVSync(1)
	} else {
		renderer.SetVSync(0)
	}

	w, h := cfg.ScreenWidth, cfg.ScreenHeight
	if ow, oh, err := renderer.CurrentOutputSize(); err == nil {
		w, h = int(ow), int(oh)
	}

	fontPath := cfg.FontFile
	if fontPath == "" {
		fontPath = GetDefaultFontPath()
	}
	var font *ttf.Font
	if fontPath != "" {
		font, err = ttf.OpenFont(fontPath, float32(cfg.FontSize))
		if err != nil {
			logger.Warn("failed to load font, status text disabled", "font", fontPath, "err", err)
		}
	}
	defer func() {
		if font != nil {
			font.Close()
		}
	}()
	texts := NewTextCache(font)
	defer texts.Destroy()

	var trigger Trigger = nopTrigger{}
	if cfg.DLPDevice != "" {
		dlp, err := NewDLPIO8G(cfg.DLPDevice, 9600, logger)
		if err != nil {
			logger.Error("failed to initialize DLP device", "device", cfg.DLPDevice, "err", err)
		} else {
			defer dlp.Close()
			trigger = dlp
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	params := cfg.Params()
	scene := NewScene(w, h, params.BackgroundColor)
	settings := NewSettings(params)
	overlay := NewOverlay()
	log := NewEventLog()

	seq := NewSequencer(settings, scene,
		WithRand(rand.New(rand.NewSource(seed))),
		WithLogger(logger),
		WithEventLog(log),
		WithTrigger(trigger),
		WithStatus(Statuses{ConsoleStatus{}, overlay}),
	)

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		seq.Run(ctx)
	}()

	logger.Info("ready", "run", log.RunID, "width", w, "height", h, "seed", seed)

	events := eventLoop{seq: seq, overlay: overlay, settings: settings, scene: scene, logger: logger}
	for run := true; run; {
		var batch []windowEvent
		for {
			var ev sdl.Event
			if !sdl.PollEvent(&ev) {
				break
			}
			batch = append(batch, decodeEvent(&ev))
		}
		run = events.dispatch(batch)

		scene.Render(renderer)
		overlay.Render(renderer, texts, settings.Params(), cfg.TextColor)
		renderer.Present()

		if !cfg.VSync {
			sdl.Delay(1)
		}
	}

	cancel()
	<-stopped

	if log.Len() == 0 {
		return nil
	}
	timestamp := time.Now().Format("20060102-150405")
	outputName := strings.Replace(cfg.OutputFile, ".csv", "_"+timestamp+".csv", 1)
	if err := log.Save(outputName); err != nil {
		return err
	}
	logger.Info("results saved", "file", outputName)
	return nil
}

// windowEvent is the part of an SDL event the render loop acts on.
type windowEvent struct {
	kind sdl.EventType
	key  sdl.Keycode
	w, h int
}

func decodeEvent(ev *sdl.Event) windowEvent {
	we := windowEvent{kind: ev.Type}
	switch ev.Type {
	case sdl.EVENT_KEY_DOWN:
		we.key = ev.KeyboardEvent().Key
	case sdl.EVENT_WINDOW_PIXEL_SIZE_CHANGED:
		e := ev.WindowEvent()
		we.w, we.h = int(e.Data1), int(e.Data2)
	}
	return we
}

type eventLoop struct {
	seq      *Sequencer
	overlay  *Overlay
	settings *Settings
	scene    *Scene
	logger   *slog.Logger
}

// dispatch handles one poll batch. It returns false once the operator has
// quit; later events in the batch do not revive the loop.
func (l eventLoop) dispatch(batch []windowEvent) bool {
	run := true
	for _, ev := range batch {
		switch ev.kind {
		case sdl.EVENT_QUIT:
			run = false
		case sdl.EVENT_KEY_DOWN:
			if !handleKey(ev.key, l.seq, l.overlay, l.settings, l.logger) {
				run = false
			}
		case sdl.EVENT_WINDOW_PIXEL_SIZE_CHANGED:
			l.scene.Resize(ev.w, ev.h)
			l.logger.Debug("window resized", "width", ev.w, "height", ev.h)
		}
	}
	return run
}

// handleKey maps a key press to a sequencer command. Keys whose control is
// disabled are ignored. ESC cancels a running block and quits when idle.
// It returns false when the operator quits.
func handleKey(key sdl.Keycode, seq *Sequencer, overlay *Overlay, settings *Settings, logger *slog.Logger) bool {
	var err error
	switch key {
	case sdl.K_ESCAPE:
		switch {
		case overlay.Enabled(ControlCancel):
			err = seq.Cancel()
		case overlay.Enabled(ControlStart):
			return false
		}
	case sdl.K_SPACE:
		if overlay.Enabled(ControlStart) {
			err = seq.Start()
		}
	case sdl.K_T:
		if overlay.Enabled(ControlPractice) {
			err = seq.Practice()
		}
	case sdl.K_Y, sdl.K_N:
		if overlay.Enabled(ControlResponse) {
			err = seq.Respond(key == sdl.K_Y)
		}
	case sdl.K_UP, sdl.K_DOWN, sdl.K_LEFT, sdl.K_RIGHT:
		if overlay.Enabled(ControlSettings) {
			settings.Update(func(p *Params) { adjust(p, key) })
		}
	}
	if err != nil {
		logger.Warn("command refused", "err", err)
	}
	return true
}

func adjust(p *Params, key sdl.Keycode) {
	switch key {
	case sdl.K_UP:
		p.StimulusDuration = min(p.StimulusDuration+durationStep, MaxStimulusDuration)
	case sdl.K_DOWN:
		p.StimulusDuration = max(p.StimulusDuration-durationStep, durationStep)
	case sdl.K_RIGHT:
		p.StimulusSize += sizeStep
	case sdl.K_LEFT:
		p.StimulusSize = max(p.StimulusSize-sizeStep, 1)
	}
}
