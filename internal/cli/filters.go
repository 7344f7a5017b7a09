package cli

import (
	"github.com/dshills/xps/internal/config"
	"github.com/dshills/xps/internal/tools"
)

// NewMatcher builds the matcher with the configured messages.
func NewMatcher(cfg config.Config, pattern string) *tools.Matcher {
	return tools.NewMatcher(pattern, tools.WithMessages(cfg.Match.Matched, cfg.Match.Unmatched))
}

// NewTruncator builds the truncator with the configured geometry.
func NewTruncator(cfg config.Config) (*tools.Truncator, error) {
	t := cfg.Truncate
	return tools.NewTruncator(t.Limit, t.Head, t.Tail, t.Ellipsis)
}

// Match is the legacy match tool.
var Match = Legacy{
	Name:  "match",
	Usage: "match [pattern]",
	Args:  1,
	Build: func(cfg config.Config, args []string) (tools.Filter, error) {
		return NewMatcher(cfg, args[0]), nil
	},
}

// Replace is the legacy replace tool.
var Replace = Legacy{
	Name:  "replace",
	Usage: "replace [old] [new]",
	Args:  2,
	Build: func(_ config.Config, args []string) (tools.Filter, error) {
		return tools.NewReplacer(args[0], args[1]), nil
	},
}

// Truncate is the legacy truncate tool. It ignores its arguments.
var Truncate = Legacy{
	Name:  "truncate",
	Usage: "truncate",
	Args:  -1,
	Build: func(cfg config.Config, _ []string) (tools.Filter, error) {
		return NewTruncator(cfg)
	},
}
