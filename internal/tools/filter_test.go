package tools

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dshills/xps/internal/engine/xps"
)

var identity = FilterFunc(func(line xps.String) (xps.String, error) {
	return line, nil
})

func TestRunLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		lines int
	}{
		{"empty input", "", "", 0},
		{"one line", "a\n", "a\n", 1},
		{"missing final newline", "a\nb", "a\nb\n", 2},
		{"blank lines", "\n\n", "\n\n", 2},
		{"carriage return kept", "a\r\n", "a\r\n", 1},
		{"embedded zero", "a\x00b\n", "a\x00b\n", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			stats, err := Run(context.Background(), strings.NewReader(tt.input), &out, identity)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if out.String() != tt.want {
				t.Errorf("output = %q, want %q", out.String(), tt.want)
			}
			if stats.LinesIn != tt.lines || stats.LinesOut != tt.lines {
				t.Errorf("stats = %+v, want %d lines", stats, tt.lines)
			}
			if stats.BytesIn != int64(len(tt.input)) {
				t.Errorf("BytesIn = %d, want %d", stats.BytesIn, len(tt.input))
			}
			if stats.BytesOut != int64(len(tt.want)) {
				t.Errorf("BytesOut = %d, want %d", stats.BytesOut, len(tt.want))
			}
		})
	}
}

func TestRunTools(t *testing.T) {
	input := "hello world\nthe quick brown fox jumps\nfoo\n"

	tests := []struct {
		name   string
		filter Filter
		want   string
	}{
		{"match", NewMatcher("o"), "Match!\nMatch!\nMatch!\n"},
		{"glob", NewMatcher("h*d"), "Match!\nNo match.\nNo match.\n"},
		{"replace", NewReplacer("o", "0"), "hell0 w0rld\nthe quick br0wn f0x jumps\nf00\n"},
		{"truncate", DefaultTruncator(), "hello world\nthe quick ...x jumps\nfoo\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if _, err := Run(context.Background(), strings.NewReader(input), &out, tt.filter); err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if out.String() != tt.want {
				t.Errorf("output = %q, want %q", out.String(), tt.want)
			}
		})
	}
}

func TestRunFilterError(t *testing.T) {
	errBoom := errors.New("boom")
	calls := 0
	f := FilterFunc(func(line xps.String) (xps.String, error) {
		calls++
		if calls == 2 {
			return xps.String{}, errBoom
		}
		return line, nil
	})

	var out bytes.Buffer
	stats, err := Run(context.Background(), strings.NewReader("a\nb\nc\n"), &out, f)
	if !errors.Is(err, errBoom) {
		t.Fatalf("Run() error = %v, want errBoom", err)
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error %q does not name the line", err)
	}
	if stats.LinesOut != 1 {
		t.Errorf("LinesOut = %d, want 1", stats.LinesOut)
	}
	if out.String() != "a\n" {
		t.Errorf("output = %q, want the line handled before the failure", out.String())
	}
	if stats.BytesOut != int64(out.Len()) {
		t.Errorf("BytesOut = %d, but %d bytes were written", stats.BytesOut, out.Len())
	}
}

func TestRunFilterErrorOnLastLine(t *testing.T) {
	errBoom := errors.New("boom")
	f := FilterFunc(func(line xps.String) (xps.String, error) {
		if line.String() == "c" {
			return xps.String{}, errBoom
		}
		return line, nil
	})

	var out bytes.Buffer
	stats, err := Run(context.Background(), strings.NewReader("a\nb\nc\n"), &out, f)
	if !errors.Is(err, errBoom) {
		t.Fatalf("Run() error = %v, want errBoom", err)
	}
	if out.String() != "a\nb\n" {
		t.Errorf("output = %q, want %q", out.String(), "a\nb\n")
	}
	if stats.LinesOut != 2 || stats.BytesOut != 4 {
		t.Errorf("stats = %+v, want 2 lines and 4 bytes out", stats)
	}
}

func TestRunNilFilter(t *testing.T) {
	_, err := Run(context.Background(), strings.NewReader("a\n"), &bytes.Buffer{}, nil)
	if !errors.Is(err, ErrNilFilter) {
		t.Errorf("Run() error = %v, want ErrNilFilter", err)
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	stats, err := Run(ctx, strings.NewReader("a\nb\n"), &out, identity)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if stats.LinesIn != 0 {
		t.Errorf("LinesIn = %d, want 0", stats.LinesIn)
	}
}

func TestRunCanceledMidway(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f := FilterFunc(func(line xps.String) (xps.String, error) {
		if line.String() == "b" {
			cancel()
		}
		return line, nil
	})

	var out bytes.Buffer
	stats, err := Run(ctx, strings.NewReader("a\nb\nc\n"), &out, f)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if out.String() != "a\nb\n" {
		t.Errorf("output = %q, want the lines handled before cancellation", out.String())
	}
	if stats.LinesOut != 2 || stats.BytesOut != 4 {
		t.Errorf("stats = %+v, want 2 lines and 4 bytes out", stats)
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestRunWriteError(t *testing.T) {
	stats, err := Run(context.Background(), strings.NewReader("a\n"), failingWriter{}, identity)
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Run() error = %v, want write failure", err)
	}
	if stats.BytesOut != 0 {
		t.Errorf("BytesOut = %d, want 0", stats.BytesOut)
	}
}

func TestRunLogs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	_, err := Run(context.Background(), strings.NewReader("a\nb\n"), &bytes.Buffer{}, identity,
		WithLogger(zap.New(core)), WithBufferPool(xps.NewBufferPool()))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	finished := logs.FilterMessage("run finished").All()
	if len(finished) != 1 {
		t.Fatalf("got %d finish entries, want 1", len(finished))
	}
	if got := finished[0].ContextMap()["lines_in"]; got != int64(2) {
		t.Errorf("lines_in = %v, want 2", got)
	}
}
