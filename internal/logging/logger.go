package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logger configuration
type Config struct {
	Level  string // debug, info, warn, error
	Pretty bool   // Enable pretty console output

	// Out defaults to stderr so report output on stdout stays clean.
	Out io.Writer
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(name string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
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

// New creates a new structured logger
func New(cfg Config) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	var output io.Writer = os.Stderr
	if cfg.Out != nil {
		output = cfg.Out
	}
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: "15:04:05",
		}
	}

	return zerolog.New(output).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()
}

// Adapter exposes a zerolog.Logger through the printf-style interface the
// calculation package expects.
type Adapter struct {
	log zerolog.Logger
}

// NewAdapter wraps l, tagging every entry with the given component.
func NewAdapter(l zerolog.Logger, component string) *Adapter {
	if component != "" {
		l = l.With().Str("component", component).Logger()
	}
	return &Adapter{log: l}
}

func (a *Adapter) Debugf(format string, args ...any) {
	a.log.Debug().Msgf(format, args...)
}

func (a *Adapter) Infof(format string, args ...any) {
	a.log.Info().Msgf(format, args...)
}

func (a *Adapter) Warnf(format string, args ...any) {
	a.log.Warn().Msgf(format, args...)
}

func (a *Adapter) Errorf(format string, args ...any) {
	a.log.Error().Msgf(format, args...)
}
