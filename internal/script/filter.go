package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/xps/internal/engine/xps"
)

// FilterFunc is the global function a filter script must define.
const FilterFunc = "filter"

// Filter applies a Lua function to each line.
// It implements tools.Filter.
type Filter struct {
	state *State
}

// LoadFilter runs the script at path and returns a filter calling its
// global filter function.
func LoadFilter(path string, opts ...StateOption) (*Filter, error) {
	s := NewState(opts...)
	if err := s.DoFile(path); err != nil {
		s.Close()
		return nil, fmt.Errorf("loading script %s: %w", path, err)
	}
	return newFilter(s)
}

// NewFilter compiles code and returns a filter calling its global filter
// function.
func NewFilter(code string, opts ...StateOption) (*Filter, error) {
	s := NewState(opts...)
	if err := s.DoString(code); err != nil {
		s.Close()
		return nil, fmt.Errorf("loading script: %w", err)
	}
	return newFilter(s)
}

func newFilter(s *State) (*Filter, error) {
	if !s.HasFunction(FilterFunc) {
		s.Close()
		return nil, ErrNoFilter
	}
	return &Filter{state: s}, nil
}

// Apply calls filter(line). A nil result produces an empty line.
func (f *Filter) Apply(line xps.String) (xps.String, error) {
	results, err := f.state.Call(FilterFunc, NewValue(f.state.L, line))
	if err != nil {
		return xps.String{}, err
	}
	if len(results) == 0 || results[0] == lua.LNil {
		return xps.String{}, nil
	}

	out, ok := ToString(results[0])
	if !ok {
		return xps.String{}, fmt.Errorf("%w: got %s", ErrBadResult, results[0].Type())
	}
	return out, nil
}

// Close releases the Lua state.
func (f *Filter) Close() error {
	return f.state.Close()
}
