// Package logging provides structured logging for chargefleet built on
// zerolog. Loggers are carried through context.Context so every component
// logs with the run's trace ID attached.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Output format names accepted in Config.Format.
const (
	// FormatConsole renders human-readable, colorized output.
	FormatConsole = "console"
	// FormatJSON renders one JSON object per line.
	FormatJSON = "json"
)

// Config controls logger construction.
type Config struct {
	// Level is a zerolog level name ("trace".."fatal"). Invalid values
	// fall back to "info".
	Level string
	// Format selects console or JSON output. Invalid values fall back to
	// console.
	Format string
	// File, when non-empty, appends log output to the named file in
	// addition to stderr.
	File string
	// Caller adds the caller file:line to each event.
	Caller bool
}

// New builds a zerolog.Logger from cfg. It never fails: unparseable levels
// degrade to info and an unopenable log file degrades to stderr-only output.
// The second return value reports whether the file sink was attached.
func New(cfg Config) (zerolog.Logger, bool) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	var writers []io.Writer
	if cfg.Format == FormatJSON {
		writers = append(writers, os.Stderr)
	} else {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}

	usingFile := false
	if cfg.File != "" {
		f, fileErr := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if fileErr == nil {
			writers = append(writers, f)
			usingFile = true
		}
	}

	ctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lvl).
		With().
		Timestamp()
	if cfg.Caller {
		ctx = ctx.Caller()
	}

	return ctx.Logger(), usingFile
}

// ComponentLogger returns a child logger tagged with a component name.
// Components use this once at setup so every event carries its origin.
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// Nop returns a disabled logger for tests and library defaults.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
