package engine_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Zyko0/go-sdl3/sdl"
	"github.com/advanderveer/go-test"
	"github.com/iainireland/signal-detection-demo/engine"
	"github.com/pkg/errors"
)

func TestParseColor(t *testing.T) {
	test.Equals(t, sdl.Color{R: 10, G: 20, B: 30, A: 255}, engine.ParseColor("10,20,30"))
	test.Equals(t, sdl.Color{R: 10, G: 20, B: 30, A: 40}, engine.ParseColor("10,20,30,40"))
	test.Equals(t, sdl.Color{R: 10, G: 20, B: 30, A: 0}, engine.ParseColor("10,20,30,0"))
	test.Equals(t, "1,2,3,4", engine.FormatColor(sdl.Color{R: 1, G: 2, B: 3, A: 4}))
}

func TestDefaultParamsAreValid(t *testing.T) {
	p := engine.DefaultConfig().Params()
	test.Ok(t, p.Validate())
	test.Equals(t, 250*time.Millisecond, p.StimulusDuration)
	test.Equals(t, engine.DefaultTrials, p.TotalTrials)
}

func TestParamsValidate(t *testing.T) {
	base := engine.DefaultConfig().Params()

	p := base
	p.TotalTrials = 0
	test.Equals(t, engine.ErrInvalidTrialCount, errors.Cause(p.Validate()))

	p = base
	p.StimulusDuration = 0
	test.Equals(t, engine.ErrInvalidDuration, errors.Cause(p.Validate()))

	p = base
	p.StimulusDuration = engine.MaxStimulusDuration + time.Millisecond
	test.Equals(t, engine.ErrInvalidDuration, errors.Cause(p.Validate()))

	p = base
	p.StimulusSize = -1
	test.Equals(t, engine.ErrInvalidSize, errors.Cause(p.Validate()))
}

func TestCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), engine.CacheFile)

	cfg := engine.DefaultConfig()
	cfg.OutputFile = "out.csv"
	cfg.Fullscreen = true
	cfg.DurationMS = 1200
	cfg.StimulusSize = 35
	cfg.TotalTrials = 12
	cfg.StimulusColor = sdl.Color{R: 200, G: 10, B: 10, A: 255}
	test.Ok(t, cfg.SaveCache(path))

	loaded := engine.DefaultConfig()
	test.Ok(t, loaded.LoadCache(path))
	test.Equals(t, cfg, loaded)
}

func TestLoadCacheMissing(t *testing.T) {
	cfg := engine.DefaultConfig()
	test.Assert(t, cfg.LoadCache(filepath.Join(t.TempDir(), "nope")) != nil, "missing cache should error")
	test.Equals(t, engine.DefaultConfig(), cfg)
}

func TestSettingsUpdate(t *testing.T) {
	s := engine.NewSettings(engine.DefaultConfig().Params())
	s.Update(func(p *engine.Params) { p.StimulusSize += 5 })
	test.Equals(t, 25, s.Params().StimulusSize)
}
