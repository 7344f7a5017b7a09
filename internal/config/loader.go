package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FileSystem is the file access the loader needs.
// It allows tests to supply in-memory files.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Loader resolves configuration from defaults, a file and the environment.
type Loader struct {
	fs     FileSystem
	lookup LookupFunc
}

// NewLoader creates a loader that reads the OS file system and environment.
func NewLoader() *Loader {
	return &Loader{fs: OSFS{}, lookup: os.LookupEnv}
}

// NewLoaderWith creates a loader with a custom file system and environment lookup.
func NewLoaderWith(fsys FileSystem, lookup LookupFunc) *Loader {
	return &Loader{fs: fsys, lookup: lookup}
}

// Load resolves the configuration with the default loader.
func Load(path string) (Config, error) {
	return NewLoader().Load(path)
}

// Load resolves defaults, then the file at path (if any), then the
// environment, and validates the result. An empty path skips the file layer.
func (l *Loader) Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := l.loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := ApplyEnv(&cfg, l.lookup); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadFile overlays the settings found in path onto cfg.
func (l *Loader) loadFile(path string, cfg *Config) error {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil // File doesn't exist, not an error
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return parseTOML(path, data, cfg)
	case ".yaml", ".yml":
		return parseYAML(path, data, cfg)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

func parseTOML(path string, data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if err := dec.Decode(cfg); err != nil {
		perr := &ParseError{Path: path, Message: err.Error(), Err: err}

		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) && len(serr.Errors) > 0 {
			perr.Line, perr.Column = serr.Errors[0].Position()
			perr.Message = "unknown key " + strings.Join(serr.Errors[0].Key(), ".")
		}
		return perr
	}
	return nil
}

func parseYAML(path string, data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(cfg); err != nil {
		// An empty document decodes as io.EOF; treat it as no settings.
		if len(bytes.TrimSpace(data)) == 0 {
			return nil
		}
		return &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	return nil
}
