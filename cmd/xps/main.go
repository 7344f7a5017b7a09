// Command xps runs line tools built on chunked strings and inspects the
// chunked wire format.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/xps/internal/cli"
	"github.com/dshills/xps/internal/config"
)

// version is set via ldflags during build.
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.LookupEnv).ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}

// app holds the state shared by all subcommands.
type app struct {
	lookup     config.LookupFunc
	fs         config.FileSystem
	configPath string
	logLevel   string

	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd(lookup config.LookupFunc) *cobra.Command {
	a := &app{lookup: lookup, fs: config.OSFS{}, logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "xps",
		Short: "Line tools and codec for chunked strings",
		Long: `xps works with chunked strings: byte strings stored as a series of chunks
of at most 15 bytes, each preceded by a one-byte length header.

Settings come from, in order of precedence, command-line flags, XPS_*
environment variables, the config file (TOML or YAML) and built-in defaults.`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default $XPS_CONFIG)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		a.matchCmd(),
		a.replaceCmd(),
		a.truncateCmd(),
		a.scriptCmd(),
		a.encodeCmd(),
		a.decodeCmd(),
		a.dumpCmd(),
	)
	return root
}

// setup resolves settings and builds the logger before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	lookup := a.lookup
	if a.logLevel != "" {
		level := a.logLevel
		lookup = func(key string) (string, bool) {
			if key == config.EnvPrefix+"LOG_LEVEL" {
				return level, true
			}
			if a.lookup == nil {
				return "", false
			}
			return a.lookup(key)
		}
	}

	cfg, logger, err := cli.Setup(cli.Env{
		Stderr: cmd.ErrOrStderr(),
		Lookup: lookup,
		FS:     a.fs,
	}, a.configPath)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger.Named(cmd.Name())
	return nil
}
