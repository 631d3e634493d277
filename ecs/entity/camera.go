package entity

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
)

func NewCamera(w *ecs.World, spec *prefabs.CameraSpec, x, y float64) (ecs.Entity, error) {
	cam := component.Camera{TargetName: "player", Zoom: 1}
	if spec != nil {
		cam.TargetName = spec.Target
		cam.Zoom = spec.Zoom
		cam.Smoothness = spec.Smoothness
	}
	e := w.CreateEntity()
	if err := ecs.Add(w, e, component.CameraComponent.Kind(), &cam); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}); err != nil {
		return 0, err
	}
	return e, nil
}
