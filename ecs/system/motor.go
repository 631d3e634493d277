package system

import (
	"log/slog"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// MotorSystem feeds each entity's Input into its CharacterMotor and steps the
// motor once per tick. It runs after input and before physics.
type MotorSystem struct {
	dt  float64
	log *slog.Logger
}

func NewMotorSystem(dt float64, log *slog.Logger) *MotorSystem {
	if log == nil {
		log = slog.Default()
	}
	return &MotorSystem{dt: dt, log: log}
}

func (ms *MotorSystem) Update(w *ecs.World) {
	if ms == nil || w == nil {
		return
	}
	ecs.ForEach2(w, component.InputComponent.Kind(), component.CharacterMotorComponent.Kind(), func(e ecs.Entity, input *component.Input, cm *component.CharacterMotor) {
		m := cm.Motor
		if m == nil {
			return
		}

		m.SetMovementAxis(input.MoveX)
		if input.JumpPressed && m.RequestJump() {
			ms.log.Debug("jump", "entity", e)
			pushMotorEvent(w, e, ecs.MotorEventJumped)
		}
		m.SetJumpHeld(input.Jump)
		m.Step(ms.dt)

		grounded := m.State().Grounded
		switch {
		case grounded && !cm.WasGrounded:
			pushMotorEvent(w, e, ecs.MotorEventLanded)
		case !grounded && cm.WasGrounded:
			pushMotorEvent(w, e, ecs.MotorEventLeftGround)
		}
		cm.WasGrounded = grounded
	})
}

func pushMotorEvent(w *ecs.World, e ecs.Entity, kind ecs.MotorEventKind) {
	w.Events().Push(ecs.Event{Type: "motor", Data: ecs.MotorEvent{Entity: e, Kind: kind}})
}
