package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// View maps Y-up world coordinates onto a Y-down screen centered on a
// camera position.
type View struct {
	CenterX float64
	CenterY float64
	// Scale is screen pixels per world unit.
	Scale   float64
	ScreenW float64
	ScreenH float64
}

func (v View) ToScreen(p cp.Vector) (float64, float64) {
	return (p.X-v.CenterX)*v.Scale + v.ScreenW/2, v.ScreenH/2 - (p.Y-v.CenterY)*v.Scale
}

func (v View) ToWorld(sx, sy float64) cp.Vector {
	return cp.Vector{
		X: (sx-v.ScreenW/2)/v.Scale + v.CenterX,
		Y: (v.ScreenH/2-sy)/v.Scale + v.CenterY,
	}
}

// CameraView builds the view of the first camera entity for a screen size.
func CameraView(w *ecs.World, screenW, screenH float64) View {
	view := View{Scale: common.PixelsPerUnit, ScreenW: screenW, ScreenH: screenH}
	camEntity, ok := w.First(component.CameraComponent.Kind(), component.TransformComponent.Kind())
	if !ok {
		return view
	}
	t, _ := ecs.Get(w, camEntity, component.TransformComponent.Kind())
	cam, _ := ecs.Get(w, camEntity, component.CameraComponent.Kind())
	view.CenterX, view.CenterY = t.X, t.Y
	if cam.Zoom > 0 {
		view.Scale *= cam.Zoom
	}
	return view
}

// CameraSystem eases the camera toward its target and keeps the view inside
// the level bounds.
type CameraSystem struct {
	dt        float64
	camEntity ecs.Entity

	ScreenW float64
	ScreenH float64
}

func NewCameraSystem(dt float64) *CameraSystem {
	return &CameraSystem{dt: dt, ScreenW: common.BaseWidth, ScreenH: common.BaseHeight}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}
	if !w.IsAlive(cs.camEntity) {
		camEntity, ok := w.First(component.CameraComponent.Kind(), component.TransformComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
	}
	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}
	camTransform, ok := ecs.Get(w, cs.camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	target, ok := findTarget(w, cam.TargetName)
	if !ok {
		return
	}
	targetTransform, ok := ecs.Get(w, target, component.TransformComponent.Kind())
	if !ok {
		return
	}

	alpha := 1.0
	if cam.Smoothness > 0 && cam.Smoothness < 1 {
		alpha = 1 - math.Pow(cam.Smoothness, cs.dt)
	}
	x := common.Lerp(camTransform.X, targetTransform.X, alpha)
	y := common.Lerp(camTransform.Y, targetTransform.Y, alpha)

	if _, bounds, ok := ecs.Single(w, component.LevelBoundsComponent.Kind()); ok {
		scale := common.PixelsPerUnit
		if cam.Zoom > 0 {
			scale *= cam.Zoom
		}
		x = clampAxis(x, cs.ScreenW/scale/2, bounds.Width)
		y = clampAxis(y, cs.ScreenH/scale/2, bounds.Height)
	}
	camTransform.X = x
	camTransform.Y = y
}

// clampAxis keeps a view of half-size half inside [0, size], centering it
// when the level is smaller than the view.
func clampAxis(center, half, size float64) float64 {
	if size <= 2*half {
		return size / 2
	}
	return common.Clamp(center, half, size-half)
}

func findTarget(w *ecs.World, name string) (ecs.Entity, bool) {
	if name == "" || name == "player" {
		return w.First(component.PlayerTagComponent.Kind(), component.TransformComponent.Kind())
	}
	return 0, false
}
