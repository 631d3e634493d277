// Package render draws the ECS world with ebiten. World space is Y-up; all
// conversions go through system.View.
package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/ecs/system"
	"golang.org/x/image/colornames"
)

var backgroundColor = colornames.Midnightblue

type RenderSystem struct{}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	screen.Fill(backgroundColor)

	b := screen.Bounds()
	view := system.CameraView(w, float64(b.Dx()), float64(b.Dy()))

	ecs.ForEach2(w, component.StaticTileComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, tile *component.StaticTile, t *component.Transform) {
		fillBox(screen, view, cp.BB{L: t.X, B: t.Y, R: t.X + tile.Width, T: t.Y + tile.Height}, tile.Color)
	})

	ecs.ForEach2(w, component.BoxRenderComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(_ ecs.Entity, box *component.BoxRender, pb *component.PhysicsBody) {
		if pb.Body == nil {
			return
		}
		center, half := pb.Body.Bounds()
		fillBox(screen, view, cp.NewBBForExtents(center, half.X, half.Y), box.Color)
	})
}

// fillBox draws a world-space box; its top edge maps to the smaller screen y.
func fillBox(screen *ebiten.Image, view system.View, bb cp.BB, c color.Color) {
	if c == nil {
		c = colornames.White
	}
	x, y := view.ToScreen(cp.Vector{X: bb.L, Y: bb.T})
	vector.FillRect(screen, float32(x), float32(y), float32((bb.R-bb.L)*view.Scale), float32((bb.T-bb.B)*view.Scale), c, false)
}
