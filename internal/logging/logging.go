// Package logging builds the zerolog loggers used across the dashboard.
package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// ParseLevel maps debug|info|warn|error onto a zerolog level. An empty
// string is info.
func ParseLevel(level string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "", "info":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	}
	return zerolog.NoLevel, fmt.Errorf("unknown log level %q", level)
}

// New returns a timestamped logger writing to w in the given format.
func New(level, format string, w io.Writer) (zerolog.Logger, error) {
	lv, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}

	switch strings.ToLower(format) {
	case "", FormatConsole:
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: true}
	case FormatJSON:
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log format %q", format)
	}

	return zerolog.New(w).Level(lv).With().Timestamp().Logger(), nil
}
