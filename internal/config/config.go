package config

import (
	"fmt"
	"time"

	"github.com/dshills/xps/internal/logging"
)

// Config holds all tool settings.
type Config struct {
	Log      LogConfig      `toml:"log" yaml:"log"`
	Match    MatchConfig    `toml:"match" yaml:"match"`
	Truncate TruncateConfig `toml:"truncate" yaml:"truncate"`
	Script   ScriptConfig   `toml:"script" yaml:"script"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// MatchConfig sets the lines printed by the matcher.
type MatchConfig struct {
	Matched   string `toml:"matched" yaml:"matched"`
	Unmatched string `toml:"unmatched" yaml:"unmatched"`
}

// TruncateConfig sets the truncation geometry.
// Lines longer than Limit bytes become Head bytes, Ellipsis, and Tail bytes.
type TruncateConfig struct {
	Limit    int    `toml:"limit" yaml:"limit"`
	Head     int    `toml:"head" yaml:"head"`
	Tail     int    `toml:"tail" yaml:"tail"`
	Ellipsis string `toml:"ellipsis" yaml:"ellipsis"`
}

// ScriptConfig limits Lua filter scripts.
type ScriptConfig struct {
	// TimeoutMs bounds each per-line call. Zero disables the limit.
	TimeoutMs int `toml:"timeout_ms" yaml:"timeout_ms"`
}

// Timeout returns the per-line script timeout.
func (c ScriptConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  "warn",
			Format: logging.FormatConsole,
		},
		Match: MatchConfig{
			Matched:   "Match!",
			Unmatched: "No match.",
		},
		Truncate: TruncateConfig{
			Limit:    20,
			Head:     10,
			Tail:     7,
			Ellipsis: "...",
		},
		Script: ScriptConfig{
			TimeoutMs: 1000,
		},
	}
}

// Validate checks that all settings are usable.
func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return &ValidationError{Path: "log.level", Value: c.Log.Level, Message: err.Error()}
	}
	if c.Log.Format != logging.FormatConsole && c.Log.Format != logging.FormatJSON {
		return &ValidationError{Path: "log.format", Value: c.Log.Format, Message: "must be console or json"}
	}

	t := c.Truncate
	switch {
	case t.Limit < 0:
		return &ValidationError{Path: "truncate.limit", Value: t.Limit, Message: "must not be negative"}
	case t.Head < 0:
		return &ValidationError{Path: "truncate.head", Value: t.Head, Message: "must not be negative"}
	case t.Tail < 0:
		return &ValidationError{Path: "truncate.tail", Value: t.Tail, Message: "must not be negative"}
	case t.Head+t.Tail > t.Limit:
		return &ValidationError{
			Path:    "truncate",
			Value:   fmt.Sprintf("head=%d tail=%d limit=%d", t.Head, t.Tail, t.Limit),
			Message: "head + tail must not exceed limit",
		}
	}

	if c.Script.TimeoutMs < 0 {
		return &ValidationError{Path: "script.timeout_ms", Value: c.Script.TimeoutMs, Message: "must not be negative"}
	}
	return nil
}
