package component

import "image/color"

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// BoxRender draws the entity's physics box in a flat color.
type BoxRender struct {
	Color color.Color
}

var BoxRenderComponent = NewComponent[BoxRender]()
