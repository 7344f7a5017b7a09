// Package cli holds the startup code shared by the xps binaries.
package cli

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/dshills/xps/internal/config"
	"github.com/dshills/xps/internal/logging"
	"github.com/dshills/xps/internal/tools"
)

// Env is the process environment a command runs with.
type Env struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Lookup config.LookupFunc
	FS     config.FileSystem
}

// Setup loads settings and builds the logger. The config file is taken
// from path, or from XPS_CONFIG when path is empty.
func Setup(env Env, path string) (config.Config, *zap.Logger, error) {
	if path == "" && env.Lookup != nil {
		path, _ = env.Lookup(config.EnvConfigPath)
	}

	fsys := env.FS
	if fsys == nil {
		fsys = config.OSFS{}
	}
	cfg, err := config.NewLoaderWith(fsys, env.Lookup).Load(path)
	if err != nil {
		return config.Config{}, nil, err
	}

	logger, err := logging.New(logging.Config{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		Output:    env.Stderr,
		Component: "xps",
	})
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}

// Legacy describes a single-purpose line tool.
//
// When the argument count differs from Args, Run prints Usage on stdout
// and exits with status 1. A negative Args accepts any arguments.
type Legacy struct {
	Name  string
	Usage string
	Args  int
	Build func(cfg config.Config, args []string) (tools.Filter, error)
}

// Run executes the tool over env.Stdin and returns the exit status.
// args excludes the program name.
func (l Legacy) Run(ctx context.Context, env Env, args []string) int {
	if l.Args >= 0 && len(args) != l.Args {
		fmt.Fprintf(env.Stdout, "USAGE: %s\n", l.Usage)
		return 1
	}

	cfg, logger, err := Setup(env, "")
	if err != nil {
		fmt.Fprintf(env.Stderr, "Error: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	filter, err := l.Build(cfg, args)
	if err != nil {
		fmt.Fprintf(env.Stderr, "Error: %v\n", err)
		return 1
	}

	stats, err := tools.Run(ctx, env.Stdin, env.Stdout, filter, tools.WithLogger(logger.Named(l.Name)))
	if err != nil {
		logger.Error("run failed", zap.String("tool", l.Name), zap.Error(err))
		fmt.Fprintf(env.Stderr, "Error: %v\n", err)
		return 1
	}
	logger.Debug("done", zap.String("tool", l.Name), zap.Int("lines", stats.LinesIn))
	return 0
}
