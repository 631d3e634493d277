package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"slices"
	"strconv"
	"strings"

	"github.com/milk9111/platformer/motor"
	"github.com/milk9111/platformer/physics"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

var ErrUnknownLayer = errors.New("prefabs: unknown collision layer")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type PlayerSpec struct {
	Name      string        `yaml:"name"`
	Transform TransformSpec `yaml:"transform"`
	Collider  ColliderSpec  `yaml:"collider"`
	Body      BodySpec      `yaml:"body"`
	Motor     MotorSpec     `yaml:"motor"`
	Color     YAMLColor     `yaml:"color"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type CameraSpec struct {
	Name       string  `yaml:"name"`
	Target     string  `yaml:"target"`
	Zoom       float64 `yaml:"zoom"`
	Smoothness float64 `yaml:"smoothness"`
}

func LoadCameraSpec() (*CameraSpec, error) {
	spec, err := LoadSpec[CameraSpec]("camera.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type TransformSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type ColliderSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Layer  string  `yaml:"layer"`
}

type BodySpec struct {
	Mass     float64 `yaml:"mass"`
	Friction float64 `yaml:"friction"`
}

// MotorSpec is the YAML form of motor.Config. Omitted fields keep the
// motor defaults.
type MotorSpec struct {
	Acceleration                 *float64 `yaml:"acceleration,omitempty"`
	Deceleration                 *float64 `yaml:"deceleration,omitempty"`
	MaxSpeed                     *float64 `yaml:"max_speed,omitempty"`
	VelocityExponent             *float64 `yaml:"velocity_exponent,omitempty"`
	GroundedDrag                 *float64 `yaml:"grounded_drag,omitempty"`
	AirDrag                      *float64 `yaml:"air_drag,omitempty"`
	JumpForce                    *float64 `yaml:"jump_force,omitempty"`
	FallMultiplier               *float64 `yaml:"fall_multiplier,omitempty"`
	LowJumpMultiplier            *float64 `yaml:"low_jump_multiplier,omitempty"`
	GroundCastDistance           *float64 `yaml:"ground_cast_distance,omitempty"`
	GroundSkin                   *float64 `yaml:"ground_skin,omitempty"`
	GroundLayers                 []string `yaml:"ground_layers,omitempty"`
	CoyoteTime                   *float64 `yaml:"coyote_time,omitempty"`
	DirectionChangeDragThreshold *float64 `yaml:"direction_change_drag_threshold,omitempty"`
}

// Config resolves the spec against motor.DefaultConfig and validates it.
func (m MotorSpec) Config() (motor.Config, error) {
	cfg := motor.DefaultConfig()
	fields := []struct {
		src *float64
		dst *float64
	}{
		{m.Acceleration, &cfg.Acceleration},
		{m.Deceleration, &cfg.Deceleration},
		{m.MaxSpeed, &cfg.MaxSpeed},
		{m.VelocityExponent, &cfg.VelocityExponent},
		{m.GroundedDrag, &cfg.GroundedDrag},
		{m.AirDrag, &cfg.AirDrag},
		{m.JumpForce, &cfg.JumpForce},
		{m.FallMultiplier, &cfg.FallMultiplier},
		{m.LowJumpMultiplier, &cfg.LowJumpMultiplier},
		{m.GroundCastDistance, &cfg.GroundCastDistance},
		{m.GroundSkin, &cfg.GroundSkin},
		{m.CoyoteTime, &cfg.CoyoteTime},
		{m.DirectionChangeDragThreshold, &cfg.DirectionChangeDragThreshold},
	}
	for _, f := range fields {
		if f.src != nil {
			*f.dst = *f.src
		}
	}

	if m.GroundLayers != nil {
		mask, err := ParseLayers(m.GroundLayers)
		if err != nil {
			return motor.Config{}, err
		}
		cfg.GroundLayers = mask
	}

	if err := cfg.Validate(); err != nil {
		return motor.Config{}, err
	}
	return cfg, nil
}

// MotorSpecFrom fills every field of a spec from cfg.
func MotorSpecFrom(cfg motor.Config) MotorSpec {
	f := func(v float64) *float64 { return &v }
	return MotorSpec{
		Acceleration:                 f(cfg.Acceleration),
		Deceleration:                 f(cfg.Deceleration),
		MaxSpeed:                     f(cfg.MaxSpeed),
		VelocityExponent:             f(cfg.VelocityExponent),
		GroundedDrag:                 f(cfg.GroundedDrag),
		AirDrag:                      f(cfg.AirDrag),
		JumpForce:                    f(cfg.JumpForce),
		FallMultiplier:               f(cfg.FallMultiplier),
		LowJumpMultiplier:            f(cfg.LowJumpMultiplier),
		GroundCastDistance:           f(cfg.GroundCastDistance),
		GroundSkin:                   f(cfg.GroundSkin),
		GroundLayers:                 LayerNames(cfg.GroundLayers),
		CoyoteTime:                   f(cfg.CoyoteTime),
		DirectionChangeDragThreshold: f(cfg.DirectionChangeDragThreshold),
	}
}

// MarshalMotor renders cfg as a `motor:` YAML block.
func MarshalMotor(cfg motor.Config) ([]byte, error) {
	return yaml.Marshal(struct {
		Motor MotorSpec `yaml:"motor"`
	}{MotorSpecFrom(cfg)})
}

// ParseLayers converts layer names into a mask. "all" selects every layer.
func ParseLayers(names []string) (motor.LayerMask, error) {
	var mask motor.LayerMask
	var errs []error
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "all" {
			mask |= motor.AllLayers
			continue
		}
		layer, ok := physics.LayerByName(name)
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownLayer, name))
			continue
		}
		mask |= layer
	}
	if err := errors.Join(errs...); err != nil {
		return 0, err
	}
	return mask, nil
}

// LayerNames lists the named layers in mask in bit order.
func LayerNames(mask motor.LayerMask) []string {
	if mask == motor.AllLayers {
		return []string{"all"}
	}
	var layers []motor.LayerMask
	for layer := range physics.LayerTags {
		if mask&layer != 0 {
			layers = append(layers, layer)
		}
	}
	slices.Sort(layers)
	names := make([]string, 0, len(layers))
	for _, layer := range layers {
		names = append(names, physics.LayerTags[layer])
	}
	return names
}

// YAMLColor accepts "#rrggbb", "#rrggbbaa" or an SVG color name.
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	if named, ok := colornames.Map[strings.ToLower(value.Value)]; ok {
		c.Color = named
		return nil
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// ColorOr returns the decoded color, or fallback when none was set.
func (c YAMLColor) ColorOr(fallback color.Color) color.Color {
	if c.Color == nil {
		return fallback
	}
	return c.Color
}
