package component

import (
	"image/color"

	"github.com/milk9111/platformer/motor"
)

// StaticTile is a merged run of solid tiles, stored by its world-space
// bottom-left corner in the entity transform.
type StaticTile struct {
	Width  float64
	Height float64
	Layer  motor.LayerMask
	Color  color.Color
}

var StaticTileComponent = NewComponent[StaticTile]()

// LevelBounds stores the world-space size of the current level.
type LevelBounds struct {
	Width  float64
	Height float64
}

var LevelBoundsComponent = NewComponent[LevelBounds]()
