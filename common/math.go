package common

import "math"

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// TileSize is the edge length of a level tile in world units.
	TileSize = 1.0
	// PixelsPerUnit converts world units to screen pixels at zoom 1.
	PixelsPerUnit = 32.0

	// Gravity is the world gravity along Y. The world is Y-up.
	Gravity = -20.0

	// TicksPerSecond is the fixed simulation rate.
	TicksPerSecond = 60
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Sign returns -1, 0 or 1.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
