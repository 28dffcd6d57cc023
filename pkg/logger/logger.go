// Package logger builds the service-wide structured logger backed by zerolog.
package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger configured for the given environment and level.
// Development gets human-friendly console output; everything else emits
// pure JSON. Unrecognised levels fall back to info.
func New(env, level string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	lvl := parseLevel(level)
	zerolog.SetGlobalLevel(lvl)

	var out = zerolog.New(os.Stdout)
	if env == "development" {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	return out.
		Level(lvl).
		With().
		Timestamp().
		Str("service", "directory-api").
		Logger()
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
