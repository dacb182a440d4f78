// Package logging configures the process-wide zerolog logger used across
// layerkit's stages for mesh-topology warnings, planning anomalies, and
// stage timings (spec.md §7: these are diagnostics, never returned errors).
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Options controls how the root logger is constructed.
type Options struct {
	Verbosity int  // 0 = info, 1 = debug, 2+ = trace
	JSON      bool // emit machine-readable JSON instead of console output
	Output    io.Writer
}

// New builds the root logger for a layerkit run.
func New(opts Options) zerolog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	level := zerolog.InfoLevel
	switch {
	case opts.Verbosity >= 2:
		level = zerolog.TraceLevel
	case opts.Verbosity == 1:
		level = zerolog.DebugLevel
	}

	var writer io.Writer = out
	if !opts.JSON {
		writer = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
