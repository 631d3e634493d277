// Package motor drives a platformer character through impulses, drag and
// gravity scale on a rigid body owned by the physics engine.
//
// A Motor is stepped once per fixed simulation tick and receives input
// events between ticks. It holds no locks: the host guarantees a single
// writer per entity per tick.
package motor

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
)

// RigidBody is the slice of a physics body the motor writes to.
type RigidBody interface {
	Velocity() cp.Vector
	SetVelocity(v cp.Vector)
	ApplyImpulse(j cp.Vector)
	Mass() float64
	// SetDrag sets continuous linear damping, v *= 1/(1+dt*drag).
	SetDrag(drag float64)
	SetGravityScale(scale float64)
}

// Collider exposes the world-space box of the controlled entity.
type Collider interface {
	Bounds() (center, halfExtents cp.Vector)
}

// ShapeCaster sweeps a box from origin along direction and reports whether
// it meets anything on the given layers within maxDistance.
type ShapeCaster interface {
	BoxCast(origin, halfExtents, direction cp.Vector, maxDistance float64, layers LayerMask) bool
}

// State is a snapshot of the motor's per-entity runtime data.
type State struct {
	MovementDirection float64
	CoyoteTimer       float64
	Grounded          bool
	JumpHeld          bool
	GravityScale      float64
	Drag              float64
}

// Motor is the per-entity character controller.
type Motor struct {
	cfg      Config
	body     RigidBody
	collider Collider
	caster   ShapeCaster
	logger   *slog.Logger

	state State
}

type Option func(*Motor)

// WithLogger routes motor diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return func(m *Motor) {
		if l != nil {
			m.logger = l
		}
	}
}

var down = cp.Vector{X: 0, Y: -1}

// targetEpsilon separates "driving toward a target" from "letting go".
const targetEpsilon = 0.01

// New builds a motor bound to the host services. Missing services and
// invalid tuning are reported here and nowhere else.
func New(cfg Config, body RigidBody, collider Collider, caster ShapeCaster, opts ...Option) (*Motor, error) {
	if body == nil {
		return nil, ErrMissingRigidBody
	}
	if collider == nil {
		return nil, ErrMissingCollider
	}
	if caster == nil {
		return nil, ErrMissingShapeCaster
	}
	if err := validateFor(cfg, collider); err != nil {
		return nil, err
	}

	m := &Motor{
		cfg:      cfg,
		body:     body,
		collider: collider,
		caster:   caster,
		logger:   slog.Default(),
		state:    State{GravityScale: 1},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// validateFor checks cfg on its own and against the collider it will cast
// with. The skinned cast box must keep some width.
func validateFor(cfg Config, collider Collider) error {
	err := cfg.Validate()
	if _, half := collider.Bounds(); cfg.GroundSkin >= half.X {
		err = errors.Join(err, fmt.Errorf("%w: ground_skin %v must be smaller than the collider half width %v",
			ErrInvalidConfig, cfg.GroundSkin, half.X))
	}
	return err
}

// Config returns the active tuning.
func (m *Motor) Config() Config {
	return m.cfg
}

// State returns a copy of the runtime state.
func (m *Motor) State() State {
	return m.state
}

// Reconfigure swaps the tuning between ticks. The runtime state survives,
// with the coyote timer capped at the new window.
func (m *Motor) Reconfigure(cfg Config) error {
	if err := validateFor(cfg, m.collider); err != nil {
		return err
	}
	m.cfg = cfg
	m.state.CoyoteTimer = math.Min(m.state.CoyoteTimer, cfg.CoyoteTime)
	return nil
}

// SetMovementAxis records the horizontal input axis. It takes effect on
// the next Step.
func (m *Motor) SetMovementAxis(v float64) {
	switch {
	case math.IsNaN(v):
		m.logger.Warn("motor: movement axis is NaN, treating as 0")
		v = 0
	case v < -1 || v > 1:
		m.logger.Warn("motor: movement axis out of range, clamping", "value", v)
		v = common.Clamp(v, -1, 1)
	}
	m.state.MovementDirection = v
}

// SetJumpHeld records whether the jump button is currently down.
func (m *Motor) SetJumpHeld(held bool) {
	m.state.JumpHeld = held
}

// RequestJump handles the rising edge of the jump button. The impulse is
// applied only inside the coyote window, which the jump then closes.
func (m *Motor) RequestJump() bool {
	if m.state.CoyoteTimer <= 0 {
		return false
	}
	m.body.ApplyImpulse(cp.Vector{X: 0, Y: m.cfg.JumpForce})
	m.state.CoyoteTimer = 0
	return true
}

// Grounded casts the collider box, narrowed by GroundSkin, downward.
func (m *Motor) Grounded() bool {
	center, half := m.collider.Bounds()
	half.X = math.Max(half.X-m.cfg.GroundSkin, 0)
	return m.caster.BoxCast(center, half, down, m.cfg.GroundCastDistance, m.cfg.GroundLayers)
}

// Step advances the motor by one fixed tick of dt seconds.
func (m *Motor) Step(dt float64) {
	grounded := m.Grounded()
	m.state.Grounded = grounded

	if grounded {
		m.state.CoyoteTimer = m.cfg.CoyoteTime
	} else {
		m.state.CoyoteTimer = math.Max(m.state.CoyoteTimer-dt, 0)
	}

	m.move(dt)
	if grounded {
		m.applyGroundedDrag()
	} else {
		m.setDrag(m.cfg.AirDrag)
	}
	m.shapeFall(grounded)
}

func (m *Motor) move(dt float64) {
	v := m.body.Velocity()
	if math.Abs(v.X) >= m.cfg.MaxSpeed {
		m.body.SetVelocity(cp.Vector{X: common.Sign(v.X) * m.cfg.MaxSpeed, Y: v.Y})
		return
	}

	target := m.state.MovementDirection * m.cfg.MaxSpeed
	diff := target - v.X
	rate := m.cfg.Deceleration
	if math.Abs(target) > targetEpsilon {
		rate = m.cfg.Acceleration
	}
	force := common.Sign(diff) * math.Pow(math.Abs(diff*rate), m.cfg.VelocityExponent)

	mass := m.body.Mass()
	impulse := force * dt
	// never push past the target speed in a single tick
	if limit := math.Abs(diff) * mass; math.Abs(impulse) > limit {
		impulse = common.Sign(impulse) * limit
	}
	if impulse != 0 {
		m.body.ApplyImpulse(cp.Vector{X: impulse, Y: 0})
	}
}

func (m *Motor) changingDirection(vx float64) bool {
	dir := m.state.MovementDirection
	return (vx > 0 && dir < 0) || (vx < 0 && dir > 0)
}

func (m *Motor) applyGroundedDrag() {
	m.setDrag(0)

	vx := m.body.Velocity().X
	if math.Abs(m.state.MovementDirection) >= m.cfg.DirectionChangeDragThreshold && !m.changingDirection(vx) {
		return
	}
	strength := math.Min(math.Abs(vx), m.cfg.GroundedDrag) * common.Sign(vx)
	if strength == 0 {
		return
	}
	m.body.ApplyImpulse(cp.Vector{X: -strength * m.body.Mass(), Y: 0})
}

func (m *Motor) shapeFall(grounded bool) {
	vy := m.body.Velocity().Y
	scale := 1.0
	switch {
	case vy < 0:
		scale = m.cfg.FallMultiplier - 1
	case vy > 0 && !grounded && !m.state.JumpHeld:
		scale = m.cfg.LowJumpMultiplier
	}
	m.state.GravityScale = scale
	m.body.SetGravityScale(scale)
}

func (m *Motor) setDrag(drag float64) {
	m.state.Drag = drag
	m.body.SetDrag(drag)
}
