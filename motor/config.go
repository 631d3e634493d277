package motor

import (
	"errors"
	"fmt"
	"math"
)

// LayerMask selects which collision categories count as ground.
type LayerMask uint32

// AllLayers matches every collision category.
const AllLayers LayerMask = ^LayerMask(0)

var (
	ErrInvalidConfig      = errors.New("motor: invalid config")
	ErrMissingRigidBody   = errors.New("motor: missing rigid body")
	ErrMissingCollider    = errors.New("motor: missing collider")
	ErrMissingShapeCaster = errors.New("motor: missing ground shape caster")
)

// Config holds the author-time tuning of a motor. Velocities are in world
// units per second, forces in mass*units per second squared.
type Config struct {
	Acceleration     float64
	Deceleration     float64
	MaxSpeed         float64
	VelocityExponent float64

	GroundedDrag float64
	AirDrag      float64

	JumpForce         float64
	FallMultiplier    float64
	LowJumpMultiplier float64

	GroundCastDistance float64
	// GroundSkin is removed from each side of the collider before the
	// ground cast so that wall contact does not read as ground.
	GroundSkin   float64
	GroundLayers LayerMask

	CoyoteTime float64
	// DirectionChangeDragThreshold is the axis magnitude below which the
	// input counts as released and grounded drag engages.
	DirectionChangeDragThreshold float64
}

// DefaultConfig returns the tuning the demo player ships with.
func DefaultConfig() Config {
	return Config{
		Acceleration:                 12,
		Deceleration:                 8,
		MaxSpeed:                     8,
		VelocityExponent:             0.9,
		GroundedDrag:                 0.2,
		AirDrag:                      0.5,
		JumpForce:                    10,
		FallMultiplier:               2.5,
		LowJumpMultiplier:            2,
		GroundCastDistance:           0.2,
		GroundSkin:                   0.15,
		GroundLayers:                 AllLayers,
		CoyoteTime:                   0.15,
		DirectionChangeDragThreshold: 0.4,
	}
}

// Validate reports every field that breaks the config invariants.
func (c Config) Validate() error {
	var errs []error
	nonNegative := []struct {
		name  string
		value float64
	}{
		{"acceleration", c.Acceleration},
		{"deceleration", c.Deceleration},
		{"grounded_drag", c.GroundedDrag},
		{"air_drag", c.AirDrag},
		{"jump_force", c.JumpForce},
		{"low_jump_multiplier", c.LowJumpMultiplier},
		{"ground_cast_distance", c.GroundCastDistance},
		{"ground_skin", c.GroundSkin},
		{"coyote_time", c.CoyoteTime},
		{"direction_change_drag_threshold", c.DirectionChangeDragThreshold},
	}
	for _, f := range nonNegative {
		if math.IsNaN(f.value) || f.value < 0 {
			errs = append(errs, fmt.Errorf("%w: %s must be >= 0, got %v", ErrInvalidConfig, f.name, f.value))
		}
	}
	if !(c.MaxSpeed > 0) {
		errs = append(errs, fmt.Errorf("%w: max_speed must be > 0, got %v", ErrInvalidConfig, c.MaxSpeed))
	}
	if !(c.VelocityExponent > 0) {
		errs = append(errs, fmt.Errorf("%w: velocity_exponent must be > 0, got %v", ErrInvalidConfig, c.VelocityExponent))
	}
	// fall gravity scale is FallMultiplier-1 and must not invert gravity
	if !(c.FallMultiplier >= 1) {
		errs = append(errs, fmt.Errorf("%w: fall_multiplier must be >= 1, got %v", ErrInvalidConfig, c.FallMultiplier))
	}
	return errors.Join(errs...)
}
