package component

import (
	"github.com/milk9111/platformer/motor"
	"github.com/milk9111/platformer/physics"
)

// PhysicsBody links an entity to its dynamic body in the physics world.
type PhysicsBody struct {
	Body *physics.Body
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

// CollisionLayer declares which category an entity's shapes belong to.
type CollisionLayer struct {
	Category motor.LayerMask
}

var CollisionLayerComponent = NewComponent[CollisionLayer]()
