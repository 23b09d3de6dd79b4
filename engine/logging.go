package engine

import (
	"log/slog"

	"github.com/pterm/pterm"
)

// NewLogger returns a slog logger printing through pterm. Debug enables the
// per-phase trace.
func NewLogger(debug bool) *slog.Logger {
	logger := &pterm.DefaultLogger
	if debug {
		logger = pterm.DefaultLogger.WithLevel(pterm.LogLevelDebug)
	}
	return slog.New(pterm.NewSlogHandler(logger))
}
