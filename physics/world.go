// Package physics hosts the motor on a Chipmunk2D space: dynamic bodies with
// per-body gravity scale and drag, static level geometry, and the ground
// shape casts the motor consumes.
package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/motor"
)

// Collision layer categories.
const (
	LayerSolid motor.LayerMask = 1 << iota
	LayerPlatform
	LayerPlayer
)

// GroundLayers is the default ground filter for characters.
const GroundLayers = LayerSolid | LayerPlatform

// World owns the Chipmunk space.
type World struct {
	space *cp.Space
}

// NewWorld creates a Y-up space with the given gravity along Y.
func NewWorld(gravity float64) *World {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: gravity})
	return &World{space: space}
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float64) {
	if w == nil || w.space == nil {
		return
	}
	w.space.Step(dt)
}

// AddStaticBox adds an immovable box on the given layer.
func (w *World) AddStaticBox(bb cp.BB, layer motor.LayerMask, friction float64) *cp.Shape {
	shape := cp.NewBox2(w.space.StaticBody, bb, 0)
	shape.SetFriction(friction)
	shape.SetElasticity(0)
	shape.SetFilter(layerFilter(layer))
	w.space.AddShape(shape)
	return shape
}

// BodySpec describes a dynamic box body.
type BodySpec struct {
	Center   cp.Vector
	Width    float64
	Height   float64
	Mass     float64
	Friction float64
	Layer    motor.LayerMask
}

// AddBody creates a dynamic box body with locked rotation.
func (w *World) AddBody(spec BodySpec) *Body {
	mass := spec.Mass
	if mass <= 0 {
		mass = 1
	}
	width, height := spec.Width, spec.Height
	if width <= 0 || height <= 0 {
		width, height = 1, 1
	}
	layer := spec.Layer
	if layer == 0 {
		layer = LayerPlayer
	}

	cpBody := cp.NewBody(mass, math.Inf(1))
	cpBody.SetPosition(spec.Center)
	cpBody.SetAngle(0)

	shape := cp.NewBox(cpBody, width, height, 0)
	shape.SetFriction(spec.Friction)
	shape.SetElasticity(0)
	shape.SetFilter(layerFilter(layer))

	b := &Body{
		body:         cpBody,
		shape:        shape,
		half:         cp.Vector{X: width / 2, Y: height / 2},
		gravityScale: 1,
	}
	cpBody.SetVelocityUpdateFunc(b.updateVelocity)

	w.space.AddBody(cpBody)
	w.space.AddShape(shape)
	return b
}

// RemoveBody takes a body and its shape out of the space.
func (w *World) RemoveBody(b *Body) {
	if w == nil || b == nil {
		return
	}
	w.space.RemoveShape(b.shape)
	w.space.RemoveBody(b.body)
}

// Caster returns a ground caster that never reports the given body.
func (w *World) Caster(ignore *Body) *SpaceCaster {
	c := &SpaceCaster{space: w.space}
	if ignore != nil {
		c.ignore = ignore.body
	}
	return c
}

func layerFilter(layer motor.LayerMask) cp.ShapeFilter {
	return cp.ShapeFilter{
		Group:      cp.NO_GROUP,
		Categories: uint(layer),
		Mask:       cp.ALL_CATEGORIES,
	}
}
