// Command match prints Match! or No match. for each line of standard input.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/xps/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	env := cli.Env{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Lookup: os.LookupEnv,
	}
	return cli.Match.Run(ctx, env, os.Args[1:])
}
