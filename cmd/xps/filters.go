package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/xps/internal/cli"
	"github.com/dshills/xps/internal/script"
	"github.com/dshills/xps/internal/tools"
)

// runFilter applies f to every line of the command's input.
func (a *app) runFilter(cmd *cobra.Command, f tools.Filter) error {
	stats, err := tools.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), f, tools.WithLogger(a.logger))
	if err != nil {
		return err
	}
	a.logger.Debug("filtered", zap.Int("lines", stats.LinesIn), zap.Int64("bytes_out", stats.BytesOut))
	return nil
}

func (a *app) matchCmd() *cobra.Command {
	var matched, unmatched string

	cmd := &cobra.Command{
		Use:   "match PATTERN",
		Short: "Report whether each line matches a pattern",
		Long: `Print a message for each input line telling whether it matches PATTERN.

Without '*' the pattern matches any line containing it. With '*' the whole
line must match, where '*' stands for any run of bytes.

Examples:
  xps match error < app.log
  xps match 'GET */health*' < access.log`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("matched") {
				a.cfg.Match.Matched = matched
			}
			if cmd.Flags().Changed("unmatched") {
				a.cfg.Match.Unmatched = unmatched
			}
			return a.runFilter(cmd, cli.NewMatcher(a.cfg, args[0]))
		},
	}

	cmd.Flags().StringVar(&matched, "matched", "", "line printed for a match")
	cmd.Flags().StringVar(&unmatched, "unmatched", "", "line printed otherwise")
	return cmd
}

func (a *app) replaceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replace OLD NEW",
		Short: "Replace every occurrence of OLD with NEW",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFilter(cmd, tools.NewReplacer(args[0], args[1]))
		},
	}
}

func (a *app) truncateCmd() *cobra.Command {
	var limit, head, tail int
	var ellipsis string

	cmd := &cobra.Command{
		Use:   "truncate",
		Short: "Shorten long lines around an ellipsis",
		Long: `Lines longer than the limit are replaced by their first head bytes, the
ellipsis and their last tail bytes. Defaults: limit 20, head 10, tail 7.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if flags.Changed("limit") {
				a.cfg.Truncate.Limit = limit
			}
			if flags.Changed("head") {
				a.cfg.Truncate.Head = head
			}
			if flags.Changed("tail") {
				a.cfg.Truncate.Tail = tail
			}
			if flags.Changed("ellipsis") {
				a.cfg.Truncate.Ellipsis = ellipsis
			}

			t, err := cli.NewTruncator(a.cfg)
			if err != nil {
				return err
			}
			return a.runFilter(cmd, t)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "longest line left unchanged")
	cmd.Flags().IntVar(&head, "head", 0, "bytes kept from the start")
	cmd.Flags().IntVar(&tail, "tail", 0, "bytes kept from the end")
	cmd.Flags().StringVar(&ellipsis, "ellipsis", "", "text inserted between head and tail")
	return cmd
}

func (a *app) scriptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "script FILE",
		Short: "Filter lines through a Lua function",
		Long: `Run the Lua script FILE and pass every input line to its global
filter(line) function. The line is an xps value; the function returns a
string, an xps value, or nil for an empty line.

Example script:
  function filter(line)
    local i = line:find("=")
    if i == nil then return line end
    return line:slice(0, i)
  end`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := script.LoadFilter(args[0],
				script.WithTimeout(a.cfg.Script.Timeout()),
				script.WithLogger(a.logger))
			if err != nil {
				return err
			}
			defer f.Close()
			return a.runFilter(cmd, f)
		},
	}
}
