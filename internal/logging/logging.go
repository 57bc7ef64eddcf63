// Package logging builds the zerolog loggers handed to every component.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Config selects level and output format.
type Config struct {
	// Level is one of trace, debug, info, warn, error, disabled. Default info.
	Level string
	// Format is json, console or auto. Auto picks console on a terminal.
	Format string
	// Output defaults to os.Stderr.
	Output io.Writer
}

// New returns a logger configured from cfg, tagged with the service name.
func New(cfg Config, service string) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	zerolog.TimeFieldFormat = time.RFC3339

	if useConsole(cfg.Format, out) {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	return zerolog.New(out).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Str("service", service).
		Logger()
}

func useConsole(format string, out io.Writer) bool {
	switch strings.ToLower(format) {
	case "console":
		return true
	case "json":
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ParseLevel converts a level name, falling back to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
