package sim

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/script"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func drainJumps(s *Scene) int {
	n := 0
	for _, ev := range s.World.Events().Drain() {
		if me, ok := ev.Data.(ecs.MotorEvent); ok && me.Kind == ecs.MotorEventJumped {
			n++
		}
	}
	return n
}

func TestNewRejectsUnknownGround(t *testing.T) {
	_, err := New(Options{Level: "demo.json", Ground: "quadtree", Logger: quietLogger()})
	if !errors.Is(err, ErrUnknownGround) {
		t.Fatalf("expected ErrUnknownGround, got %v", err)
	}
}

func TestNewRejectsMissingScript(t *testing.T) {
	if _, err := New(Options{Level: "demo.json", Script: "nope", Logger: quietLogger()}); err == nil {
		t.Fatalf("expected an error for a missing script")
	}
}

// The demo level has a four tile gap at x in [10, 14). The script only
// presses jump once the player is past the ledge, so crossing proves the
// coyote window on both ground backends.
func TestCoyoteJumpCrossesGap(t *testing.T) {
	for _, ground := range []string{GroundChipmunk, GroundGrid} {
		t.Run(ground, func(t *testing.T) {
			s, err := New(Options{Level: "demo.json", Ground: ground, Script: "ledge_coyote", Logger: quietLogger()})
			if err != nil {
				t.Fatalf("New: %v", err)
			}

			jumps := 0
			for range 3 * 60 {
				s.Step()
				jumps += drainJumps(s)
			}

			pos := s.PlayerBody().Position()
			if pos.X <= 14 || pos.Y <= 2 {
				t.Fatalf("expected the player past the gap on the ground, got %v", pos)
			}
			if jumps != 1 {
				t.Fatalf("expected exactly one jump, got %d", jumps)
			}
			if !s.PlayerMotor().Grounded() {
				t.Fatalf("expected the player grounded at the end")
			}
		})
	}
}

// holdAxis feeds a constant movement axis to every Input.
type holdAxis float64

func (h holdAxis) Update(w *ecs.World) {
	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, in *component.Input) {
		in.MoveX = float64(h)
	})
}

// A slow walk on the flat floor before the first gap must read as grounded on
// every tick, whatever the player's offset inside a tile.
func TestFlatWalkStaysGrounded(t *testing.T) {
	for _, ground := range []string{GroundChipmunk, GroundGrid} {
		t.Run(ground, func(t *testing.T) {
			axis := holdAxis(0)
			s, err := New(Options{Level: "demo.json", Ground: ground, Input: &axis, Logger: quietLogger()})
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			for range 60 {
				s.Step()
			}
			if !s.PlayerMotor().Grounded() {
				t.Fatalf("expected the player to have landed, at %v", s.PlayerBody().Position())
			}

			axis = 0.3
			for tick := range 60 {
				s.Step()
				st := s.PlayerMotor().State()
				if !st.Grounded {
					t.Fatalf("tick %d: airborne on flat floor at %v", tick, s.PlayerBody().Position())
				}
				if st.CoyoteTimer != s.PlayerMotor().Config().CoyoteTime {
					t.Fatalf("tick %d: coyote timer decayed to %v while grounded", tick, st.CoyoteTimer)
				}
			}
			// below the drag threshold the walk settles near 1 unit/s
			if x := s.PlayerBody().Position().X; x < 3.8 || x > 9.5 {
				t.Fatalf("expected a slow walk to stay on the first floor, got x=%v", x)
			}
		})
	}
}

func TestDeviceInputRunsFirst(t *testing.T) {
	s, err := New(Options{Level: "demo.json", Input: holdAxis(1), Logger: quietLogger()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	start := s.PlayerBody().Position().X
	for range 60 {
		s.Step()
	}
	if got := s.PlayerBody().Position().X; got <= start+1 {
		t.Fatalf("expected the player to move right from %v, got %v", start, got)
	}
	if s.Tick() != 60 || math.Abs(s.Time()-1) > 1e-9 {
		t.Fatalf("expected tick 60 at 1s, got %d at %v", s.Tick(), s.Time())
	}
}

func TestReload(t *testing.T) {
	s, err := New(Options{Level: "demo.json", Script: "ledge_coyote", Logger: quietLogger()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := s.Reload("player.yaml"); err != nil {
		t.Fatalf("Reload player.yaml: %v", err)
	}
	reconfigured := false
	for _, ev := range s.World.Events().Drain() {
		if me, ok := ev.Data.(ecs.MotorEvent); ok && me.Kind == ecs.MotorEventReconfigured {
			reconfigured = true
		}
	}
	if !reconfigured {
		t.Fatalf("expected a reconfigured event")
	}

	si, _ := ecs.Get(s.World, s.Player, component.ScriptInputComponent.Kind())
	before := si.Script
	if err := s.Reload("run_jump.tengo"); err != nil {
		t.Fatalf("Reload unrelated script: %v", err)
	}
	if si.Script != before {
		t.Fatalf("unrelated script should not replace the active one")
	}
	if err := s.Reload("ledge_coyote.tengo"); err != nil {
		t.Fatalf("Reload active script: %v", err)
	}
	if si.Script == before || si.Script.Name() != "ledge_coyote" {
		t.Fatalf("expected a freshly compiled ledge_coyote script")
	}
}

func TestSetScript(t *testing.T) {
	s, err := New(Options{Level: "demo.json", Logger: quietLogger()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	next, err := LoadInputScript("run_jump")
	if err != nil {
		t.Fatalf("LoadInputScript: %v", err)
	}

	if err := s.SetScript(next); err != nil {
		t.Fatalf("SetScript on device input: %v", err)
	}
	si, ok := ecs.Get(s.World, s.Player, component.ScriptInputComponent.Kind())
	if !ok || si.Script != next {
		t.Fatalf("expected the script to be attached")
	}

	if err := s.SetScript(nil); !errors.Is(err, script.ErrNotCompiled) {
		t.Fatalf("expected ErrNotCompiled for a nil script, got %v", err)
	}

	s.World.DestroyEntity(s.Player)
	if err := s.SetScript(next); !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("expected ErrEntityNotAlive after the player is gone, got %v", err)
	}
}
