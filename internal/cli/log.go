package cli

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// newLogger returns the diagnostic logger. It stays quiet below warn level
// unless verbose output was requested.
func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
