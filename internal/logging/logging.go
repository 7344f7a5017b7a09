// Package logging builds the zap loggers used by the xps commands.
//
// Logs always go to stderr (or a configured writer) so that stdout stays
// reserved for tool output.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// Supported output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config configures a logger.
type Config struct {
	// Level is the minimum level: debug, info, warn or error.
	Level string
	// Format is "console" or "json".
	Format string
	// Output is where logs are written. Defaults to os.Stderr.
	Output io.Writer
	// Component is attached to every entry when non-empty.
	Component string
}

// DefaultConfig returns the default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  "warn",
		Format: FormatConsole,
		Output: os.Stderr,
	}
}

// ParseLevel parses a level name. An empty name means info.
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", s)
	}
}

// New creates a logger from cfg.
func New(cfg Config) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	enc, err := newEncoder(cfg.Format)
	if err != nil {
		return nil, err
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	logger := zap.New(zapcore.NewCore(enc, zapcore.AddSync(out), level))
	if cfg.Component != "" {
		logger = logger.With(zap.String("component", cfg.Component))
	}
	return logger, nil
}

// newEncoder creates a JSON or console encoder.
func newEncoder(format string) (zapcore.Encoder, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	switch format {
	case "", FormatConsole:
		return zapcore.NewConsoleEncoder(encoderCfg), nil
	case FormatJSON:
		return zapcore.NewJSONEncoder(encoderCfg), nil
	default:
		return nil, fmt.Errorf("log format must be %q or %q, got %q", FormatConsole, FormatJSON, format)
	}
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}

// NewObserved returns a logger that records entries at or above level in
// memory, for tests.
func NewObserved(level zapcore.Level) (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return zap.New(core), logs
}
