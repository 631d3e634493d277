package entity

import (
	"errors"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/motor"
	"github.com/milk9111/platformer/physics"
	"github.com/milk9111/platformer/prefabs"
)

func testLevel() *levels.Level {
	return &levels.Level{
		Width:  6,
		Height: 4,
		Layers: [][]int{
			{
				0, 0, 0, 0, 0, 0,
				0, 0, 0, 0, 0, 0,
				0, 0, 0, 0, 0, 0,
				1, 1, 1, 0, 1, 1,
			},
			{
				0, 0, 0, 0, 0, 0,
				0, 1, 1, 0, 0, 0,
				0, 0, 0, 0, 0, 0,
				0, 0, 0, 0, 0, 0,
			},
			{
				1, 1, 1, 1, 1, 1,
				0, 0, 0, 0, 0, 0,
				0, 0, 0, 0, 0, 0,
				0, 0, 0, 0, 0, 0,
			},
		},
		LayerMeta: []levels.LayerMeta{
			{Physics: true, Color: "slategray"},
			{Physics: true, Collision: "platform"},
			{Physics: false},
		},
		Entities: []levels.Entity{{Type: "player", X: 1, Y: 2}},
	}
}

func TestLoadLevelToWorld(t *testing.T) {
	w := ecs.NewWorld()
	pw := physics.NewWorld(common.Gravity)
	grid := physics.NewGridSpace(6, 4)

	if err := LoadLevelToWorld(w, pw, grid, testLevel()); err != nil {
		t.Fatalf("LoadLevelToWorld: %v", err)
	}

	_, bounds, ok := ecs.Single(w, component.LevelBoundsComponent.Kind())
	if !ok || bounds.Width != 6 || bounds.Height != 4 {
		t.Fatalf("unexpected bounds %+v ok=%v", bounds, ok)
	}

	layers := map[motor.LayerMask]int{}
	ecs.ForEach(w, component.StaticTileComponent.Kind(), func(_ ecs.Entity, tile *component.StaticTile) {
		layers[tile.Layer]++
	})
	// solid row splits into two runs around the gap; the platform is one run
	if layers[physics.LayerSolid] != 2 || layers[physics.LayerPlatform] != 1 {
		t.Fatalf("unexpected tile runs per layer %v", layers)
	}
	gridCaster := physics.NewGridCaster(grid)
	if !gridCaster.BoxCast(cp.Vector{X: 1.5, Y: 3.5}, cp.Vector{X: 0.3, Y: 0.5}, cp.Vector{Y: -1}, 0.1, physics.LayerPlatform) {
		t.Fatalf("expected the platform run in the grid space")
	}

	caster := pw.Caster(nil)
	if !caster.BoxCast(cp.Vector{X: 1, Y: 1.5}, cp.Vector{X: 0.3, Y: 0.5}, cp.Vector{Y: -1}, 0.1, physics.LayerSolid) {
		t.Fatalf("expected the merged floor to be in the physics space")
	}
}

func TestLoadLevelToWorldUnknownLayer(t *testing.T) {
	lvl := testLevel()
	lvl.LayerMeta[1].Collision = "lava"
	err := LoadLevelToWorld(ecs.NewWorld(), physics.NewWorld(common.Gravity), nil, lvl)
	if !errors.Is(err, prefabs.ErrUnknownLayer) {
		t.Fatalf("expected ErrUnknownLayer, got %v", err)
	}
}

func TestPlayerSpawn(t *testing.T) {
	spawn, ok := PlayerSpawn(testLevel())
	if !ok || spawn != (cp.Vector{X: 1.5, Y: 1}) {
		t.Fatalf("expected (1.5, 1), got %v ok=%v", spawn, ok)
	}
	if _, ok := PlayerSpawn(&levels.Level{Width: 1, Height: 1}); ok {
		t.Fatalf("expected no spawn")
	}
}

func loadPlayerSpec(t *testing.T) *prefabs.PlayerSpec {
	t.Helper()
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		t.Fatalf("LoadPlayerSpec: %v", err)
	}
	return spec
}

func TestNewPlayer(t *testing.T) {
	w := ecs.NewWorld()
	pw := physics.NewWorld(common.Gravity)
	spec := loadPlayerSpec(t)
	spawn := cp.Vector{X: 2, Y: 1}

	e, err := NewPlayer(w, pw, spec, PlayerOptions{Spawn: &spawn})
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}

	for name, has := range map[string]bool{
		"transform": ecs.Has(w, e, component.TransformComponent.Kind()),
		"body":      ecs.Has(w, e, component.PhysicsBodyComponent.Kind()),
		"input":     ecs.Has(w, e, component.InputComponent.Kind()),
		"motor":     ecs.Has(w, e, component.CharacterMotorComponent.Kind()),
		"tag":       ecs.Has(w, e, component.PlayerTagComponent.Kind()),
		"script":    !ecs.Has(w, e, component.ScriptInputComponent.Kind()),
	} {
		if !has {
			t.Fatalf("unexpected component set: %s", name)
		}
	}

	pb, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	want := cp.Vector{X: 2, Y: 1 + spec.Collider.Height/2}
	if pb.Body.Position() != want {
		t.Fatalf("expected body center %v, got %v", want, pb.Body.Position())
	}
	cm, _ := ecs.Get(w, e, component.CharacterMotorComponent.Kind())
	if cm.Motor.Config().GroundLayers != physics.GroundLayers {
		t.Fatalf("expected ground layers from the prefab, got %b", cm.Motor.Config().GroundLayers)
	}
}

func TestNewPlayerRejectsBadSpec(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*prefabs.PlayerSpec)
		want   error
	}{
		{"bad_motor", func(s *prefabs.PlayerSpec) {
			zero := 0.0
			s.Motor.MaxSpeed = &zero
		}, motor.ErrInvalidConfig},
		{"bad_layer", func(s *prefabs.PlayerSpec) { s.Collider.Layer = "lava" }, prefabs.ErrUnknownLayer},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			spec := loadPlayerSpec(t)
			c.mutate(spec)
			w := ecs.NewWorld()
			_, err := NewPlayer(w, physics.NewWorld(common.Gravity), spec, PlayerOptions{})
			if !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
			if len(w.Entities()) != 0 {
				t.Fatalf("expected no entities after a failed spawn")
			}
		})
	}
}

func TestApplyMotorSpec(t *testing.T) {
	w := ecs.NewWorld()
	pw := physics.NewWorld(common.Gravity)
	spec := loadPlayerSpec(t)
	e, err := NewPlayer(w, pw, spec, PlayerOptions{})
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}

	jump := 14.0
	spec.Motor.JumpForce = &jump
	if err := ApplyMotorSpec(w, spec); err != nil {
		t.Fatalf("ApplyMotorSpec: %v", err)
	}
	cm, _ := ecs.Get(w, e, component.CharacterMotorComponent.Kind())
	if cm.Motor.Config().JumpForce != 14 {
		t.Fatalf("expected jump force 14, got %v", cm.Motor.Config().JumpForce)
	}
	events := w.Events().Drain()
	if len(events) != 1 || events[0].Data.(ecs.MotorEvent).Kind != ecs.MotorEventReconfigured {
		t.Fatalf("expected a reconfigured event, got %v", events)
	}

	bad := -1.0
	spec.Motor.CoyoteTime = &bad
	if err := ApplyMotorSpec(w, spec); !errors.Is(err, motor.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if cm.Motor.Config().JumpForce != 14 {
		t.Fatalf("a rejected reload must keep the old tuning")
	}
}

func TestDemoLevelPlayerLandsWithEitherCaster(t *testing.T) {
	lvl, err := levels.Load("demo.json")
	if err != nil {
		t.Fatalf("levels.Load: %v", err)
	}
	spawn, ok := PlayerSpawn(lvl)
	if !ok {
		t.Fatalf("demo level has no player spawn")
	}

	for _, ground := range []string{"cp", "grid"} {
		t.Run(ground, func(t *testing.T) {
			w := ecs.NewWorld()
			pw := physics.NewWorld(common.Gravity)
			grid := physics.NewGridSpace(float64(lvl.Width), float64(lvl.Height))
			if err := LoadLevelToWorld(w, pw, grid, lvl); err != nil {
				t.Fatalf("LoadLevelToWorld: %v", err)
			}
			opts := PlayerOptions{Spawn: &spawn}
			if ground == "grid" {
				opts.Caster = physics.NewGridCaster(grid)
			}
			e, err := NewPlayer(w, pw, loadPlayerSpec(t), opts)
			if err != nil {
				t.Fatalf("NewPlayer: %v", err)
			}
			cm, _ := ecs.Get(w, e, component.CharacterMotorComponent.Kind())

			const dt = 1.0 / common.TicksPerSecond
			for i := 0; i < 2*common.TicksPerSecond; i++ {
				cm.Motor.Step(dt)
				pw.Step(dt)
			}
			if !cm.Motor.State().Grounded {
				pb, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
				t.Fatalf("expected the player to be grounded, body at %v", pb.Body.Position())
			}
		})
	}
}
