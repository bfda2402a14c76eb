// Package corelog wires up the CLI's structured logging: a
// zerolog.Logger bound to stderr, level-switched by --verbose, and a
// per-invocation correlation ID so a single `schedule` run's lines can be
// grepped out of a shared log file. Grounded on the pack's zerolog
// logger.go constructor.
package corelog

import (
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// New returns a console-formatted zerolog.Logger at info level, or debug
// level when verbose is true, with a "run" field carrying a fresh
// correlation ID for this invocation.
func New(verbose bool) zerolog.Logger {
	lvl := zerolog.InfoLevel
	if verbose {
		lvl = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(lvl)

	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return zerolog.New(out).With().Timestamp().Str("run", uuid.NewString()).Logger()
}
