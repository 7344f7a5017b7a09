package script

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// DefaultTimeout bounds a single call into Lua.
const DefaultTimeout = time.Second

// State wraps a sandboxed gopher-lua state with the xps module installed.
//
// gopher-lua's LState is not goroutine-safe. The mutex serializes calls
// made through State; Lua code itself always runs single-threaded.
type State struct {
	L *lua.LState

	mu      sync.Mutex
	timeout time.Duration
	logger  *zap.Logger
	closed  bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithTimeout sets the deadline for each call. Zero disables it.
func WithTimeout(d time.Duration) StateOption {
	return func(s *State) {
		if d >= 0 {
			s.timeout = d
		}
	}
}

// WithLogger sets the logger that receives Lua print output.
func WithLogger(logger *zap.Logger) StateOption {
	return func(s *State) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewState creates a sandboxed Lua state.
func NewState(opts ...StateOption) *State {
	s := &State{
		timeout: DefaultTimeout,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(s.L)
	s.sandbox()
	registerModule(s.L)
	return s
}

// openSafeLibraries opens only the libraries without host access.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes code loading and redirects print.
func (s *State) sandbox() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		s.L.SetGlobal(name, lua.LNil)
	}

	logger := s.logger
	s.L.SetGlobal("print", s.L.NewFunction(func(L *lua.LState) int {
		top := L.GetTop()
		parts := make([]string, 0, top)
		for i := 1; i <= top; i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		logger.Info("lua print", zap.String("text", strings.Join(parts, "\t")))
		return 0
	}))
}

// DoString executes a chunk of Lua code.
func (s *State) DoString(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}
	return s.withDeadline(func() error {
		return s.L.DoString(code)
	})
}

// DoFile executes a Lua file.
func (s *State) DoFile(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}
	return s.withDeadline(func() error {
		return s.L.DoFile(path)
	})
}

// Call calls a global Lua function and returns its results.
// Returns an empty slice (not nil) if the function returns no values.
func (s *State) Call(fn string, args ...lua.LValue) ([]lua.LValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrStateClosed
	}

	fnVal := s.L.GetGlobal(fn)
	if fnVal.Type() != lua.LTFunction {
		return nil, fmt.Errorf("%q is not a function (got %s)", fn, fnVal.Type())
	}

	top := s.L.GetTop()
	s.L.Push(fnVal)
	for _, arg := range args {
		s.L.Push(arg)
	}

	err := s.withDeadline(func() error {
		return s.L.PCall(len(args), lua.MultRet, nil)
	})
	if err != nil {
		s.L.SetTop(top)
		return nil, err
	}

	n := s.L.GetTop() - top
	results := make([]lua.LValue, 0, n)
	for i := 1; i <= n; i++ {
		results = append(results, s.L.Get(top+i))
	}
	s.L.SetTop(top)
	return results, nil
}

// HasFunction reports whether a global function with the given name exists.
func (s *State) HasFunction(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	return s.L.GetGlobal(name).Type() == lua.LTFunction
}

// withDeadline runs fn with the call timeout applied and panics recovered.
func (s *State) withDeadline(fn func() error) (err error) {
	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()

	err = fn()
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w after %s", ErrTimeout, s.timeout)
	}
	return err
}

// Close releases the Lua state. Further calls return ErrStateClosed.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.L.Close()
	s.closed = true
	return nil
}
