package entity

import (
	"fmt"
	"log/slog"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/motor"
	"github.com/milk9111/platformer/physics"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/script"
	"golang.org/x/image/colornames"
)

// PlayerOptions override parts of the player prefab at spawn time.
type PlayerOptions struct {
	// Spawn is the bottom-center of the collider in world units. When nil
	// the prefab transform is used.
	Spawn *cp.Vector
	// Caster replaces the Chipmunk ground query.
	Caster motor.ShapeCaster
	// Script drives the player instead of device input.
	Script *script.InputScript
	Logger *slog.Logger
}

// NewPlayer creates the player entity, its body and its motor.
func NewPlayer(w *ecs.World, pw *physics.World, spec *prefabs.PlayerSpec, opts PlayerOptions) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("player: nil spec")
	}
	cfg, err := spec.Motor.Config()
	if err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}

	layer := physics.LayerPlayer
	if spec.Collider.Layer != "" {
		l, ok := physics.LayerByName(spec.Collider.Layer)
		if !ok {
			return 0, fmt.Errorf("player: collider: %w: %q", prefabs.ErrUnknownLayer, spec.Collider.Layer)
		}
		layer = l
	}

	bottom := cp.Vector{X: spec.Transform.X, Y: spec.Transform.Y}
	if opts.Spawn != nil {
		bottom = *opts.Spawn
	}
	body := pw.AddBody(physics.BodySpec{
		Center:   cp.Vector{X: bottom.X, Y: bottom.Y + spec.Collider.Height/2},
		Width:    spec.Collider.Width,
		Height:   spec.Collider.Height,
		Mass:     spec.Body.Mass,
		Friction: spec.Body.Friction,
		Layer:    layer,
	})

	caster := opts.Caster
	if caster == nil {
		caster = pw.Caster(body)
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	m, err := motor.New(cfg, body, body, caster, motor.WithLogger(log.With("entity", spec.Name)))
	if err != nil {
		pw.RemoveBody(body)
		return 0, fmt.Errorf("player: %w", err)
	}

	e := w.CreateEntity()
	p := body.Position()
	adds := []error{
		ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: p.X, Y: p.Y}),
		ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Body: body}),
		ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{Category: layer}),
		ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}),
		ecs.Add(w, e, component.CharacterMotorComponent.Kind(), &component.CharacterMotor{Motor: m, PrefabSource: "player.yaml"}),
		ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}),
		ecs.Add(w, e, component.BoxRenderComponent.Kind(), &component.BoxRender{Color: spec.Color.ColorOr(colornames.Orange)}),
	}
	if opts.Script != nil {
		adds = append(adds, ecs.Add(w, e, component.ScriptInputComponent.Kind(), &component.ScriptInput{Script: opts.Script}))
	}
	for _, err := range adds {
		if err != nil {
			w.DestroyEntity(e)
			pw.RemoveBody(body)
			return 0, fmt.Errorf("player: %w", err)
		}
	}
	return e, nil
}

// ApplyMotorSpec re-tunes every player motor from spec. Motors keep their
// runtime state.
func ApplyMotorSpec(w *ecs.World, spec *prefabs.PlayerSpec) error {
	if spec == nil {
		return fmt.Errorf("player: nil spec")
	}
	cfg, err := spec.Motor.Config()
	if err != nil {
		return fmt.Errorf("player: reload: %w", err)
	}
	for _, e := range w.Query(component.PlayerTagComponent.Kind(), component.CharacterMotorComponent.Kind()) {
		cm, _ := ecs.Get(w, e, component.CharacterMotorComponent.Kind())
		if cm.Motor == nil {
			continue
		}
		if err := cm.Motor.Reconfigure(cfg); err != nil {
			return fmt.Errorf("player: reload: %w", err)
		}
		w.Events().Push(ecs.Event{Type: "motor", Data: ecs.MotorEvent{Entity: e, Kind: ecs.MotorEventReconfigured}})
	}
	return nil
}
