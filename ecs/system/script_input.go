package system

import (
	"context"
	"log/slog"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/script"
)

// ScriptInputSystem fills Input from each entity's tengo program.
type ScriptInputSystem struct {
	ctx context.Context
	dt  float64
	log *slog.Logger
}

func NewScriptInputSystem(ctx context.Context, dt float64, log *slog.Logger) *ScriptInputSystem {
	if ctx == nil {
		ctx = context.Background()
	}
	if log == nil {
		log = slog.Default()
	}
	return &ScriptInputSystem{ctx: ctx, dt: dt, log: log}
}

func (ss *ScriptInputSystem) Update(w *ecs.World) {
	if ss == nil || w == nil {
		return
	}
	ecs.ForEach2(w, component.ScriptInputComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, si *component.ScriptInput, input *component.Input) {
		frame := script.Frame{Tick: si.Tick, Time: float64(si.Tick) * ss.dt}
		if pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && pb.Body != nil {
			p, v := pb.Body.Position(), pb.Body.Velocity()
			frame.X, frame.Y, frame.VX, frame.VY = p.X, p.Y, v.X, v.Y
		}
		if cm, ok := ecs.Get(w, e, component.CharacterMotorComponent.Kind()); ok && cm.Motor != nil {
			frame.Grounded = cm.Motor.State().Grounded
		}
		si.Tick++

		cmd, err := si.Script.Run(ss.ctx, frame)
		if err != nil {
			ss.log.Warn("input script failed", "entity", e, "script", si.Script.Name(), "tick", frame.Tick, "err", err)
			cmd = script.Command{}
		}

		input.MoveX = cmd.Axis
		input.Jump = cmd.Jump
		input.JumpPressed = cmd.Jump && !si.JumpWasHeld
		si.JumpWasHeld = cmd.Jump
	})
}
