package config

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/QuadDarv1ne/chess-rules-go/internal/errors"
)

// Log output formats.
const (
	LogFormatJSON    = "json"
	LogFormatConsole = "console"
)

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string // zerolog level name: debug, info, warn, error
	Format string // json or console
}

// NewLogConfig creates a LogConfig with default values.
func NewLogConfig() *LogConfig {
	return &LogConfig{
		Level:  "info",
		Format: LogFormatConsole,
	}
}

// Validate checks the level name and format.
func (l *LogConfig) Validate() error {
	if _, err := zerolog.ParseLevel(l.Level); err != nil || l.Level == "" {
		return fmt.Errorf("log level %q: %w", l.Level, errors.ErrInvalidConfig)
	}
	if l.Format != LogFormatJSON && l.Format != LogFormatConsole {
		return fmt.Errorf("log format %q: %w", l.Format, errors.ErrInvalidConfig)
	}
	return nil
}

// NewLogger builds a zerolog.Logger writing to w.
func (l *LogConfig) NewLogger(w io.Writer) (zerolog.Logger, error) {
	if err := l.Validate(); err != nil {
		return zerolog.Nop(), err
	}
	level, _ := zerolog.ParseLevel(l.Level)

	out := w
	if l.Format == LogFormatConsole {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}
