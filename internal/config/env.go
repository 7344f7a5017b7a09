package config

import (
	"fmt"
	"strconv"
)

// EnvPrefix is the prefix of every environment variable the loader reads.
const EnvPrefix = "XPS_"

// EnvConfigPath names the variable holding the default config file path.
const EnvConfigPath = EnvPrefix + "CONFIG"

// LookupFunc looks up an environment variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// envSetting maps one environment variable onto a setting.
type envSetting struct {
	name string
	path string
	set  func(c *Config, v string) error
}

func stringSetting(name, path string, field func(*Config) *string) envSetting {
	return envSetting{name: name, path: path, set: func(c *Config, v string) error {
		*field(c) = v
		return nil
	}}
}

func intSetting(name, path string, field func(*Config) *int) envSetting {
	return envSetting{name: name, path: path, set: func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*field(c) = n
		return nil
	}}
}

// envSettings lists the recognized variables.
var envSettings = []envSetting{
	stringSetting(EnvPrefix+"LOG_LEVEL", "log.level", func(c *Config) *string { return &c.Log.Level }),
	stringSetting(EnvPrefix+"LOG_FORMAT", "log.format", func(c *Config) *string { return &c.Log.Format }),
	stringSetting(EnvPrefix+"MATCH_MATCHED", "match.matched", func(c *Config) *string { return &c.Match.Matched }),
	stringSetting(EnvPrefix+"MATCH_UNMATCHED", "match.unmatched", func(c *Config) *string { return &c.Match.Unmatched }),
	intSetting(EnvPrefix+"TRUNCATE_LIMIT", "truncate.limit", func(c *Config) *int { return &c.Truncate.Limit }),
	intSetting(EnvPrefix+"TRUNCATE_HEAD", "truncate.head", func(c *Config) *int { return &c.Truncate.Head }),
	intSetting(EnvPrefix+"TRUNCATE_TAIL", "truncate.tail", func(c *Config) *int { return &c.Truncate.Tail }),
	stringSetting(EnvPrefix+"TRUNCATE_ELLIPSIS", "truncate.ellipsis", func(c *Config) *string { return &c.Truncate.Ellipsis }),
	intSetting(EnvPrefix+"SCRIPT_TIMEOUT_MS", "script.timeout_ms", func(c *Config) *int { return &c.Script.TimeoutMs }),
}

// EnvVars returns the names of the recognized environment variables.
func EnvVars() []string {
	names := make([]string, len(envSettings))
	for i, s := range envSettings {
		names[i] = s.name
	}
	return names
}

// ApplyEnv overlays environment variables onto cfg.
// Empty values are treated as set, not as unset.
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	if lookup == nil {
		return nil
	}

	for _, s := range envSettings {
		v, ok := lookup(s.name)
		if !ok {
			continue
		}
		if err := s.set(cfg, v); err != nil {
			return fmt.Errorf("environment %s (%s): %w", s.name, s.path, err)
		}
	}
	return nil
}
