package main

import (
	"os"
	"runtime"

	"github.com/Zyko0/go-sdl3/bin/binsdl"
	"github.com/Zyko0/go-sdl3/bin/binttf"
	"github.com/iainireland/signal-detection-demo/engine"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	defer binsdl.Load().Unload()
	defer binttf.Load().Unload()

	logger := engine.NewLogger(false)

	cfg := engine.DefaultConfig()
	if err := cfg.LoadCache(engine.CacheFile); err != nil {
		logger.Debug("no cached settings", "err", err)
	}

	if !engine.RunGuiSetup(cfg, logger) {
		return
	}
	if err := engine.Run(cfg, logger); err != nil {
		logger.Error("run failed", "err", err)
		os.Exit(1)
	}
}
