package script

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/xps/internal/engine/xps"
	"github.com/dshills/xps/internal/tools"
)

func TestFilterApply(t *testing.T) {
	tests := []struct {
		name string
		code string
		line string
		want string
	}{
		{"return lua string", `function filter(line) return "<" .. line:text() .. ">" end`, "x", "<x>"},
		{"return xps value", `function filter(line) return line:slice(0, 3) end`, "hello", "hel"},
		{"return nil", `function filter(line) return nil end`, "hello", ""},
		{"return nothing", `function filter(line) end`, "hello", ""},
		{"mutate line", `function filter(line) xps.set_byte(line, 0, 72); return line end`, "hello", "Hello"},
		{"uses state", `n = 0; function filter(line) n = n + 1; return tostring(n) end`, "a", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFilter(tt.code)
			if err != nil {
				t.Fatalf("NewFilter() error = %v", err)
			}
			defer f.Close()

			got, err := f.Apply(xps.FromText(tt.line))
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("Apply(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestFilterBadResult(t *testing.T) {
	f, err := NewFilter(`function filter(line) return 42 end`)
	if err != nil {
		t.Fatalf("NewFilter() error = %v", err)
	}
	defer f.Close()

	if _, err := f.Apply(xps.FromText("x")); !errors.Is(err, ErrBadResult) {
		t.Errorf("Apply() error = %v, want ErrBadResult", err)
	}
}

func TestFilterLoadErrors(t *testing.T) {
	if _, err := NewFilter(`x = 1`); !errors.Is(err, ErrNoFilter) {
		t.Errorf("NewFilter(no filter) error = %v, want ErrNoFilter", err)
	}
	if _, err := NewFilter(`function filter(`); err == nil {
		t.Error("NewFilter(syntax error) should fail")
	}
	if _, err := LoadFilter(filepath.Join(t.TempDir(), "missing.lua")); err == nil {
		t.Error("LoadFilter(missing) should fail")
	}
}

func TestFilterTimeout(t *testing.T) {
	f, err := NewFilter(`function filter(line) while true do end end`, WithTimeout(20*time.Millisecond))
	if err != nil {
		t.Fatalf("NewFilter() error = %v", err)
	}
	defer f.Close()

	if _, err := f.Apply(xps.FromText("x")); !errors.Is(err, ErrTimeout) {
		t.Errorf("Apply() error = %v, want ErrTimeout", err)
	}
}

func TestLoadFilterRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "upper.lua")
	code := `
function filter(line)
  if line:find("skip") then
    return nil
  end
  return string.upper(line:text())
end
`
	if err := os.WriteFile(path, []byte(code), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := LoadFilter(path)
	if err != nil {
		t.Fatalf("LoadFilter() error = %v", err)
	}
	defer f.Close()

	var out bytes.Buffer
	stats, err := tools.Run(context.Background(), strings.NewReader("one\nskip me\ntwo\n"), &out, f)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out.String() != "ONE\n\nTWO\n" {
		t.Errorf("output = %q", out.String())
	}
	if stats.LinesOut != 3 {
		t.Errorf("LinesOut = %d, want 3", stats.LinesOut)
	}
}
