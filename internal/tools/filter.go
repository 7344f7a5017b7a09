package tools

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/dshills/xps/internal/engine/xps"
)

// Filter transforms one line. The line excludes its trailing newline.
type Filter interface {
	Apply(line xps.String) (xps.String, error)
}

// FilterFunc adapts a function to the Filter interface.
type FilterFunc func(line xps.String) (xps.String, error)

// Apply calls f(line).
func (f FilterFunc) Apply(line xps.String) (xps.String, error) {
	return f(line)
}

// Stats summarizes a Run.
type Stats struct {
	LinesIn  int
	LinesOut int
	BytesIn  int64
	BytesOut int64
}

// Option configures Run.
type Option func(*runOptions)

type runOptions struct {
	logger *zap.Logger
	pool   *xps.BufferPool
}

// WithLogger sets the logger used for run diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(o *runOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithBufferPool sets the pool output lines are assembled in.
func WithBufferPool(pool *xps.BufferPool) Option {
	return func(o *runOptions) {
		if pool != nil {
			o.pool = pool
		}
	}
}

// Run reads newline-delimited lines from r, applies f to each and writes
// the results to w, one line per input line, each terminated by '\n'.
// A final line without a newline is still processed. Carriage returns are
// kept as ordinary bytes.
//
// Run checks ctx between lines and returns ctx.Err() when it is done.
// Output for the lines handled before an error is still written to w, and
// Stats.BytesOut counts only bytes that reached w.
func Run(ctx context.Context, r io.Reader, w io.Writer, f Filter, opts ...Option) (Stats, error) {
	if f == nil {
		return Stats{}, ErrNilFilter
	}

	o := runOptions{logger: zap.NewNop(), pool: xps.DefaultPool}
	for _, opt := range opts {
		opt(&o)
	}

	cw := &countingWriter{w: w}
	bw := bufio.NewWriter(cw)

	o.logger.Debug("run started", zap.String("filter", fmt.Sprintf("%T", f)))

	stats, err := runLines(ctx, bufio.NewReader(r), bw, f, o)

	// A failed write leaves its error in bw; Flush then repeats it.
	if ferr := bw.Flush(); ferr != nil && !errors.Is(err, ferr) {
		err = errors.Join(err, fmt.Errorf("flushing output: %w", ferr))
	}
	stats.BytesOut = cw.n

	if err != nil {
		o.logger.Debug("run failed", zap.Int("lines_out", stats.LinesOut), zap.Error(err))
		return stats, err
	}

	o.logger.Debug("run finished",
		zap.Int("lines_in", stats.LinesIn),
		zap.Int("lines_out", stats.LinesOut),
		zap.Int64("bytes_in", stats.BytesIn),
		zap.Int64("bytes_out", stats.BytesOut))
	return stats, nil
}

// runLines filters lines from br into bw until input ends or an error occurs.
func runLines(ctx context.Context, br *bufio.Reader, bw *bufio.Writer, f Filter, o runOptions) (Stats, error) {
	var stats Stats
	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		raw, readErr := br.ReadBytes('\n')
		if len(raw) == 0 && readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return stats, nil
			}
			return stats, fmt.Errorf("reading line %d: %w", stats.LinesIn+1, readErr)
		}

		stats.LinesIn++
		stats.BytesIn += int64(len(raw))
		if raw[len(raw)-1] == '\n' {
			raw = raw[:len(raw)-1]
		}

		out, err := f.Apply(xps.FromBytes(raw))
		if err != nil {
			o.logger.Debug("filter failed", zap.Int("line", stats.LinesIn), zap.Error(err))
			return stats, fmt.Errorf("line %d: %w", stats.LinesIn, err)
		}

		if err := writeLine(bw, o.pool, out); err != nil {
			return stats, fmt.Errorf("writing line %d: %w", stats.LinesIn, err)
		}
		stats.LinesOut++

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return stats, nil
			}
			return stats, fmt.Errorf("reading line %d: %w", stats.LinesIn+1, readErr)
		}
	}
}

// countingWriter counts the bytes accepted by w.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// writeLine writes s followed by a newline in a single call.
func writeLine(w io.Writer, pool *xps.BufferPool, s xps.String) error {
	bp := pool.Get(s.Len() + 1)
	defer pool.Put(bp)

	buf := s.AppendTo((*bp)[:0])
	buf = append(buf, '\n')
	*bp = buf

	_, err := w.Write(buf)
	return err
}
