package physics

import "github.com/jakecoffman/cp"

// Body is a dynamic Chipmunk body that implements motor.RigidBody and
// motor.Collider.
type Body struct {
	body  *cp.Body
	shape *cp.Shape
	half  cp.Vector

	drag         float64
	gravityScale float64
}

// updateVelocity replaces Chipmunk's integrator so that gravity is scaled
// per body and linear drag is applied after gravity.
func (b *Body) updateVelocity(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
	cp.BodyUpdateVelocity(body, gravity.Mult(b.gravityScale), damping, dt)
	if b.drag > 0 {
		body.SetVelocityVector(body.Velocity().Mult(1 / (1 + dt*b.drag)))
	}
}

func (b *Body) CP() *cp.Body {
	return b.body
}

func (b *Body) Shape() *cp.Shape {
	return b.shape
}

func (b *Body) Position() cp.Vector {
	return b.body.Position()
}

func (b *Body) SetPosition(p cp.Vector) {
	b.body.SetPosition(p)
}

func (b *Body) Velocity() cp.Vector {
	return b.body.Velocity()
}

func (b *Body) SetVelocity(v cp.Vector) {
	b.body.SetVelocityVector(v)
}

func (b *Body) ApplyImpulse(j cp.Vector) {
	b.body.ApplyImpulseAtWorldPoint(j, b.body.Position())
}

func (b *Body) Mass() float64 {
	return b.body.Mass()
}

func (b *Body) SetDrag(drag float64) {
	b.drag = drag
}

func (b *Body) Drag() float64 {
	return b.drag
}

func (b *Body) SetGravityScale(scale float64) {
	b.gravityScale = scale
}

func (b *Body) GravityScale() float64 {
	return b.gravityScale
}

// Bounds returns the world-space center and half extents of the box.
func (b *Body) Bounds() (cp.Vector, cp.Vector) {
	return b.body.Position(), b.half
}

// Size returns the full width and height of the box.
func (b *Body) Size() (float64, float64) {
	return b.half.X * 2, b.half.Y * 2
}
