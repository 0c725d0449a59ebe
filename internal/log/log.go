// Package log provides the ambient operational logger: a thin zerolog
// wrapper with three fixed levels (quiet, normal, verbose) matching
// spec.md §6's -q/-v flags. It carries no per-job state — the engine core
// reports its own diagnostics straight to stderr (see internal/engine) —
// this package only logs the process-level lifecycle events around a run.
package log

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New builds a zerolog.Logger writing to w using a human-readable console
// writer, honoring quiet (every level disabled, the caller's summary line
// included) and verbose (debug-level) flags.
func New(w io.Writer, quiet, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	switch {
	case quiet:
		level = zerolog.Disabled
	case verbose:
		level = zerolog.DebugLevel
	}

	console := zerolog.ConsoleWriter{Out: w, NoColor: !isTerminal(w), TimeFormat: "15:04:05"}
	return zerolog.New(console).Level(level).With().Timestamp().Logger()
}

// isTerminal reports whether w looks like an interactive terminal, used
// only to decide whether the console writer should emit ANSI color.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
