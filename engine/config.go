package engine

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/Zyko0/go-sdl3/sdl"
	"github.com/pkg/errors"
)

const (
	MinStimulusDuration = time.Millisecond
	MaxStimulusDuration = 2000 * time.Millisecond
)

type Config struct {
	OutputFile    string
	FontFile      string
	DLPDevice     string
	FontSize      int
	ScreenWidth   int
	ScreenHeight  int
	Fullscreen    bool
	VSync         bool
	Seed          int64
	DurationMS    int
	StimulusSize  int
	TotalTrials   int
	BGColor       sdl.Color
	TextColor     sdl.Color
	FixationColor sdl.Color
	StimulusColor sdl.Color
}

// Params is the part of the configuration a block runs with.
type Params struct {
	StimulusColor    sdl.Color
	BackgroundColor  sdl.Color
	FixationColor    sdl.Color
	StimulusDuration time.Duration
	StimulusSize     int
	TotalTrials      int
}

func (p Params) Validate() error {
	if p.TotalTrials <= 0 {
		return errors.Wrapf(ErrInvalidTrialCount, "got %d", p.TotalTrials)
	}
	if p.StimulusDuration < MinStimulusDuration || p.StimulusDuration > MaxStimulusDuration {
		return errors.Wrapf(ErrInvalidDuration, "got %s, want %s..%s", p.StimulusDuration, MinStimulusDuration, MaxStimulusDuration)
	}
	if p.StimulusSize <= 0 {
		return errors.Wrapf(ErrInvalidSize, "got %d", p.StimulusSize)
	}
	return nil
}

// ConfigSource is read whenever a block or practice run starts.
type ConfigSource interface {
	Params() Params
}

func (cfg *Config) Params() Params {
	return Params{
		StimulusColor:    cfg.StimulusColor,
		BackgroundColor:  cfg.BGColor,
		FixationColor:    cfg.FixationColor,
		StimulusDuration: time.Duration(cfg.DurationMS) * time.Millisecond,
		StimulusSize:     cfg.StimulusSize,
		TotalTrials:      cfg.TotalTrials,
	}
}

// Settings is a ConfigSource that the UI may adjust while the sequencer
// reads it.
type Settings struct {
	mu sync.RWMutex
	p  Params
}

func NewSettings(p Params) *Settings {
	return &Settings{p: p}
}

func (s *Settings) Params() Params {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.p
}

func (s *Settings) Update(fn func(p *Params)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.p)
}

func ParseColor(s string) sdl.Color {
	var r, g, b, a uint8
	n, _ := fmt.Sscanf(s, "%d,%d,%d,%d", &r, &g, &b, &a)
	if n < 4 {
		a = 255
	}
	return sdl.Color{R: r, G: g, B: b, A: a}
}

func FormatColor(c sdl.Color) string {
	return fmt.Sprintf("%d,%d,%d,%d", c.R, c.G, c.B, c.A)
}

const CacheFile = ".sigdetect_cache"

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func (cfg *Config) SaveCache(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create cache file")
	}
	defer f.Close()

	fmt.Fprintf(f, "output_file=%s\n", cfg.OutputFile)
	fmt.Fprintf(f, "screen_w=%d\n", cfg.ScreenWidth)
	fmt.Fprintf(f, "screen_h=%d\n", cfg.ScreenHeight)
	fmt.Fprintf(f, "fullscreen=%s\n", boolFlag(cfg.Fullscreen))
	fmt.Fprintf(f, "duration_ms=%d\n", cfg.DurationMS)
	fmt.Fprintf(f, "stimulus_size=%d\n", cfg.StimulusSize)
	fmt.Fprintf(f, "trials=%d\n", cfg.TotalTrials)
	fmt.Fprintf(f, "bg_color=%s\n", FormatColor(cfg.BGColor))
	fmt.Fprintf(f, "fixation_color=%s\n", FormatColor(cfg.FixationColor))
	fmt.Fprintf(f, "stimulus_color=%s\n", FormatColor(cfg.StimulusColor))
	return f.Close()
}

// LoadCache overlays values from a cache file written by SaveCache. Unknown
// keys are ignored.
func (cfg *Config) LoadCache(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "failed to read cache file")
	}

	for _, line := range strings.Split(string(data), "\n") {
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key, val := parts[0], strings.TrimSpace(parts[1])

		switch key {
		case "output_file":
			cfg.OutputFile = val
		case "screen_w":
			fmt.Sscanf(val, "%d", &cfg.ScreenWidth)
		case "screen_h":
			fmt.Sscanf(val, "%d", &cfg.ScreenHeight)
		case "fullscreen":
			cfg.Fullscreen = (val != "0")
		case "duration_ms":
			fmt.Sscanf(val, "%d", &cfg.DurationMS)
		case "stimulus_size":
			fmt.Sscanf(val, "%d", &cfg.StimulusSize)
		case "trials":
			fmt.Sscanf(val, "%d", &cfg.TotalTrials)
		case "bg_color":
			cfg.BGColor = ParseColor(val)
		case "fixation_color":
			cfg.FixationColor = ParseColor(val)
		case "stimulus_color":
			cfg.StimulusColor = ParseColor(val)
		}
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		OutputFile:    "results.csv",
		FontSize:      20,
		ScreenWidth:   1024,
		ScreenHeight:  768,
		VSync:         true,
		DurationMS:    250,
		StimulusSize:  20,
		TotalTrials:   DefaultTrials,
		BGColor:       sdl.Color{R: 128, G: 128, B: 128, A: 255},
		TextColor:     sdl.Color{R: 255, G: 255, B: 255, A: 255},
		FixationColor: sdl.Color{R: 0, G: 0, B: 0, A: 255},
		StimulusColor: sdl.Color{R: 140, G: 140, B: 140, A: 255},
	}
}
