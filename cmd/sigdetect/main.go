package main

import (
	"flag"
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

	cfg := engine.DefaultConfig()

	outputFile := flag.String("output", cfg.OutputFile, "Event log CSV file")
	fontFile := flag.String("font", "", "TTF font file")
	fontSize := flag.Int("font-size", cfg.FontSize, "Font size")
	dlpDevice := flag.String("dlp", "", "DLP-IO8-G device")
	screenW := flag.Int("width", cfg.ScreenWidth, "Screen width")
	screenH := flag.Int("height", cfg.ScreenHeight, "Screen height")
	noVSync := flag.Bool("no-vsync", false, "Disable VSync")
	fullscreen := flag.Bool("fullscreen", false, "Enable fullscreen")
	duration := flag.Int("duration", cfg.DurationMS, "Stimulus duration (ms)")
	size := flag.Int("size", cfg.StimulusSize, "Stimulus size (px)")
	trials := flag.Int("trials", cfg.TotalTrials, "Trials per block")
	seed := flag.Int64("seed", 0, "Random seed (0 picks one)")
	debug := flag.Bool("debug", false, "Log every phase transition")
	bgColorStr := flag.String("bg-color", engine.FormatColor(cfg.BGColor), "Background color (R,G,B,A)")
	textColorStr := flag.String("text-color", engine.FormatColor(cfg.TextColor), "Text color (R,G,B,A)")
	fixColorStr := flag.String("fixation-color", engine.FormatColor(cfg.FixationColor), "Fixation color (R,G,B,A)")
	stimColorStr := flag.String("stimulus-color", engine.FormatColor(cfg.StimulusColor), "Stimulus color (R,G,B,A)")

	flag.Parse()

	cfg.OutputFile = *outputFile
	cfg.FontFile = *fontFile
	cfg.FontSize = *fontSize
	cfg.DLPDevice = *dlpDevice
	cfg.ScreenWidth = *screenW
	cfg.ScreenHeight = *screenH
	cfg.VSync = !*noVSync
	cfg.Fullscreen = *fullscreen
	cfg.DurationMS = *duration
	cfg.StimulusSize = *size
	cfg.TotalTrials = *trials
	cfg.Seed = *seed
	cfg.BGColor = engine.ParseColor(*bgColorStr)
	cfg.TextColor = engine.ParseColor(*textColorStr)
	cfg.FixationColor = engine.ParseColor(*fixColorStr)
	cfg.StimulusColor = engine.ParseColor(*stimColorStr)

	logger := engine.NewLogger(*debug)
	if err := cfg.Params().Validate(); err != nil {
		logger.Error("invalid settings", "err", err)
		flag.Usage()
		os.Exit(1)
	}

	if err := engine.Run(cfg, logger); err != nil {
		logger.Error("run failed", "err", err)
		os.Exit(1)
	}
}
