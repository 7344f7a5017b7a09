// Package tools implements line filters built on chunked strings.
//
// A Filter maps one input line to one output line. Run drives a Filter over
// newline-delimited input:
//
//	m := tools.NewMatcher("err*timeout")
//	stats, err := tools.Run(ctx, os.Stdin, os.Stdout, m)
//
// The filters provided are:
//   - Matcher: reports whether each line matches a substring or glob pattern
//   - Replacer: replaces every occurrence of a pattern
//   - Truncator: shortens long lines around an ellipsis
//
// Lines are handled as bytes; no character encoding is assumed.
package tools
