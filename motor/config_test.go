package motor

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{"negative_acceleration", func(c *Config) { c.Acceleration = -1 }, "acceleration"},
		{"zero_max_speed", func(c *Config) { c.MaxSpeed = 0 }, "max_speed"},
		{"nan_max_speed", func(c *Config) { c.MaxSpeed = math.NaN() }, "max_speed"},
		{"zero_exponent", func(c *Config) { c.VelocityExponent = 0 }, "velocity_exponent"},
		{"negative_air_drag", func(c *Config) { c.AirDrag = -0.1 }, "air_drag"},
		{"fall_multiplier_below_one", func(c *Config) { c.FallMultiplier = 0.5 }, "fall_multiplier"},
		{"negative_coyote", func(c *Config) { c.CoyoteTime = -0.2 }, "coyote_time"},
		{"nan_jump_force", func(c *Config) { c.JumpForce = math.NaN() }, "jump_force"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := DefaultConfig()
			c.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
			if !strings.Contains(err.Error(), c.field) {
				t.Fatalf("expected error to name %q, got %v", c.field, err)
			}
		})
	}

	t.Run("reports_every_field", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Acceleration = -1
		cfg.MaxSpeed = -1
		err := cfg.Validate()
		for _, field := range []string{"acceleration", "max_speed"} {
			if !strings.Contains(err.Error(), field) {
				t.Fatalf("expected %q in %v", field, err)
			}
		}
	})
}
