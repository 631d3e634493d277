// Package script drives a character from a tengo program instead of a
// keyboard. A program defines update(frame) and returns a map with "axis"
// and "jump" keys.
package script

import (
	"context"
	"errors"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

var (
	ErrNotCompiled = errors.New("script: not compiled")
	ErrBadResult   = errors.New("script: update must return a map")
)

const dispatch = `
__out = update(__in)
`

// Frame is what a program sees each tick.
type Frame struct {
	Tick     int
	Time     float64
	X        float64
	Y        float64
	VX       float64
	VY       float64
	Grounded bool
}

// Command is what a program asks for each tick.
type Command struct {
	Axis float64
	Jump bool
}

type InputScript struct {
	name     string
	compiled *tengo.Compiled
}

// Compile builds src with the tengo stdlib available to import.
func Compile(name string, src []byte) (*InputScript, error) {
	s := tengo.NewScript(append(append([]byte{}, src...), dispatch...))
	_ = s.Add("__in", map[string]any{})
	_ = s.Add("__out", map[string]any{})
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}
	return &InputScript{name: name, compiled: compiled}, nil
}

func (s *InputScript) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

// Run executes update for one frame. A missing key leaves that part of the
// command at its zero value.
func (s *InputScript) Run(ctx context.Context, f Frame) (Command, error) {
	if s == nil || s.compiled == nil {
		return Command{}, ErrNotCompiled
	}
	in := map[string]any{
		"tick":     f.Tick,
		"time":     f.Time,
		"x":        f.X,
		"y":        f.Y,
		"vx":       f.VX,
		"vy":       f.VY,
		"grounded": f.Grounded,
	}
	if err := s.compiled.Set("__in", in); err != nil {
		return Command{}, fmt.Errorf("script: %s: %w", s.name, err)
	}
	if err := s.compiled.RunContext(ctx); err != nil {
		return Command{}, fmt.Errorf("script: run %s: %w", s.name, err)
	}

	out := s.compiled.Get("__out")
	if out.ValueType() != "map" {
		return Command{}, fmt.Errorf("%w: %s returned %s", ErrBadResult, s.name, out.ValueType())
	}
	result := out.Map()

	var cmd Command
	switch v := result["axis"].(type) {
	case float64:
		cmd.Axis = v
	case int64:
		cmd.Axis = float64(v)
	}
	if v, ok := result["jump"].(bool); ok {
		cmd.Jump = v
	}
	return cmd, nil
}
