package tools

import "github.com/dshills/xps/internal/engine/xps"

// Replacer replaces every occurrence of one pattern with another.
// Occurrences are found left to right and do not overlap.
type Replacer struct {
	old  xps.String
	repl xps.String
}

// NewReplacer creates a replacer. An empty old pattern replaces nothing.
func NewReplacer(old, replacement string) *Replacer {
	return &Replacer{old: xps.FromText(old), repl: xps.FromText(replacement)}
}

// Replace returns line with every occurrence of the old pattern replaced.
func (r *Replacer) Replace(line xps.String) xps.String {
	if r.old.IsEmpty() {
		return line
	}

	i, ok := xps.Find(line, r.old)
	if !ok {
		return line
	}

	b := xps.NewBuilder(line.Len())
	pos := 0
	for ok {
		b.WriteXPS(line.Slice(pos, i))
		b.WriteXPS(r.repl)
		pos = i + r.old.Len()
		i, ok = xps.FindFrom(line, r.old, pos)
	}
	b.WriteXPS(line.SliceFrom(pos))
	return b.Build()
}

// Apply implements Filter.
func (r *Replacer) Apply(line xps.String) (xps.String, error) {
	return r.Replace(line), nil
}
