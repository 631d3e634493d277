package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/physics"
)

// PhysicsSystem steps the physics world and copies body positions back into
// transforms.
type PhysicsSystem struct {
	world *physics.World
	dt    float64
}

func NewPhysicsSystem(world *physics.World, dt float64) *PhysicsSystem {
	return &PhysicsSystem{world: world, dt: dt}
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || ps.world == nil || w == nil {
		return
	}

	ps.world.Step(ps.dt)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		if pb.Body == nil {
			return
		}
		p := pb.Body.Position()
		t.X = p.X
		t.Y = p.Y
	})
}
