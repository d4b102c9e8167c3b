// Package logger builds the service's zerolog logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options describes the process logger.
type Options struct {
	// Level is a zerolog level name, or "warning". Empty means info.
	Level string
	// Pretty switches to the coloured console writer for local runs.
	Pretty bool
	// Service and Version are stamped on every line when set.
	Service string
	Version string
	Output  io.Writer
}

// New returns a logger configured from opts. An unknown level falls back to
// info; callers that must reject it validate with ParseLevel first.
func New(opts Options) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	lvl, err := ParseLevel(opts.Level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	fields := zerolog.New(out).Level(lvl).With().Timestamp()
	if opts.Service != "" {
		fields = fields.Str("service", opts.Service)
	}
	if opts.Version != "" {
		fields = fields.Str("version", opts.Version)
	}
	if lvl <= zerolog.DebugLevel {
		fields = fields.Caller()
	}
	return fields.Logger()
}

// ParseLevel maps LOG_LEVEL values onto zerolog levels.
func ParseLevel(s string) (zerolog.Level, error) {
	switch s = strings.ToLower(strings.TrimSpace(s)); s {
	case "":
		return zerolog.InfoLevel, nil
	case "warning":
		return zerolog.WarnLevel, nil
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel, fmt.Errorf("logger: unknown level %q", s)
	}
	return lvl, nil
}
