// Package sim assembles a playable scene: level geometry, the player and its
// motor, the camera, and the fixed-tick system order.
package sim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/ecs/entity"
	"github.com/milk9111/platformer/ecs/system"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/motor"
	"github.com/milk9111/platformer/physics"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/script"
	"github.com/solarlune/resolv"
)

const (
	GroundChipmunk = "cp"
	GroundGrid     = "grid"
)

var ErrUnknownGround = errors.New("sim: unknown ground query")

// DT is the fixed tick length in seconds.
const DT = 1.0 / common.TicksPerSecond

type Options struct {
	Level  string
	Ground string
	// Script names a prefab input script; empty means device input.
	Script string
	// Input runs before every other system, e.g. a keyboard reader.
	Input  ecs.System
	Logger *slog.Logger
	Ctx    context.Context
}

type Scene struct {
	World   *ecs.World
	Physics *physics.World
	Grid    *resolv.Space
	Level   *levels.Level
	Player  ecs.Entity
	Camera  *system.CameraSystem

	scheduler *ecs.Scheduler
	tick      int
	log       *slog.Logger
}

func New(opts Options) (*Scene, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	ctx := opts.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Ground == "" {
		opts.Ground = GroundChipmunk
	}
	if opts.Ground != GroundChipmunk && opts.Ground != GroundGrid {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGround, opts.Ground)
	}

	lvl, err := levels.Load(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("sim: level %s: %w", opts.Level, err)
	}

	s := &Scene{
		World:   ecs.NewWorld(),
		Physics: physics.NewWorld(common.Gravity),
		Level:   lvl,
		log:     log,
	}
	if opts.Ground == GroundGrid {
		s.Grid = physics.NewGridSpace(float64(lvl.Width)*common.TileSize, float64(lvl.Height)*common.TileSize)
	}
	if err := entity.LoadLevelToWorld(s.World, s.Physics, s.Grid, lvl); err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}

	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, err
	}
	playerOpts := entity.PlayerOptions{Logger: log}
	if spawn, ok := entity.PlayerSpawn(lvl); ok {
		playerOpts.Spawn = &spawn
	}
	if s.Grid != nil {
		playerOpts.Caster = physics.NewGridCaster(s.Grid)
	}
	if opts.Script != "" {
		inputScript, err := LoadInputScript(opts.Script)
		if err != nil {
			return nil, err
		}
		playerOpts.Script = inputScript
	}
	s.Player, err = entity.NewPlayer(s.World, s.Physics, spec, playerOpts)
	if err != nil {
		return nil, err
	}

	camSpec, err := prefabs.LoadCameraSpec()
	if err != nil {
		return nil, err
	}
	start := s.PlayerBody().Position()
	if _, err := entity.NewCamera(s.World, camSpec, start.X, start.Y); err != nil {
		return nil, fmt.Errorf("sim: camera: %w", err)
	}

	s.Camera = system.NewCameraSystem(DT)
	s.scheduler = ecs.NewScheduler(
		opts.Input,
		system.NewScriptInputSystem(ctx, DT, log),
		system.NewMotorSystem(DT, log),
		system.NewPhysicsSystem(s.Physics, DT),
		s.Camera,
	)

	log.Info("scene ready", "level", opts.Level, "ground", opts.Ground, "script", opts.Script, "spawn", start)
	return s, nil
}

// LoadInputScript compiles a prefab script by name.
func LoadInputScript(name string) (*script.InputScript, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("sim: script %s: %w", name, err)
	}
	return script.Compile(name, src)
}

// Step advances the scene by one fixed tick.
func (s *Scene) Step() {
	s.scheduler.Update(s.World)
	s.tick++
}

func (s *Scene) Tick() int {
	return s.tick
}

func (s *Scene) Time() float64 {
	return float64(s.tick) * DT
}

func (s *Scene) PlayerBody() *physics.Body {
	pb, ok := ecs.Get(s.World, s.Player, component.PhysicsBodyComponent.Kind())
	if !ok {
		return nil
	}
	return pb.Body
}

func (s *Scene) PlayerMotor() *motor.Motor {
	cm, ok := ecs.Get(s.World, s.Player, component.CharacterMotorComponent.Kind())
	if !ok {
		return nil
	}
	return cm.Motor
}

// SetScript swaps the player's input script, keeping its tick count. A
// player on device input switches to the script.
func (s *Scene) SetScript(next *script.InputScript) error {
	if next == nil {
		return fmt.Errorf("sim: set script: %w", script.ErrNotCompiled)
	}
	if si, ok := ecs.Get(s.World, s.Player, component.ScriptInputComponent.Kind()); ok {
		si.Script = next
		return nil
	}
	if err := ecs.Add(s.World, s.Player, component.ScriptInputComponent.Kind(), &component.ScriptInput{Script: next}); err != nil {
		return fmt.Errorf("sim: set script: %w", err)
	}
	return nil
}

// Reload re-reads a changed prefab file. Unrelated names are ignored.
func (s *Scene) Reload(name string) error {
	switch {
	case name == "player.yaml":
		spec, err := prefabs.LoadPlayerSpec()
		if err != nil {
			return err
		}
		if err := entity.ApplyMotorSpec(s.World, spec); err != nil {
			return err
		}
		s.log.Info("motor tuning reloaded", "file", name)
	case s.scriptName() != "" && name == strings.TrimSuffix(s.scriptName(), ".tengo")+".tengo":
		next, err := LoadInputScript(s.scriptName())
		if err != nil {
			return err
		}
		if err := s.SetScript(next); err != nil {
			return err
		}
		s.log.Info("input script reloaded", "file", name)
	}
	return nil
}

func (s *Scene) scriptName() string {
	si, ok := ecs.Get(s.World, s.Player, component.ScriptInputComponent.Kind())
	if !ok || si.Script == nil {
		return ""
	}
	return si.Script.Name()
}
