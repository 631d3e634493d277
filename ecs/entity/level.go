package entity

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/physics"
	"github.com/milk9111/platformer/prefabs"
	"github.com/solarlune/resolv"
	"golang.org/x/image/colornames"
)

const tileFriction = 1.0

// LoadLevelToWorld adds the level bounds and one static box per merged tile
// run of every physics layer. When grid is non-nil the same boxes are added
// to it for the grid ground query.
func LoadLevelToWorld(w *ecs.World, pw *physics.World, grid *resolv.Space, lvl *levels.Level) error {
	if lvl == nil {
		return fmt.Errorf("level: nil level")
	}
	boundsEntity := w.CreateEntity()
	if err := ecs.Add(w, boundsEntity, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		Width:  float64(lvl.Width) * common.TileSize,
		Height: float64(lvl.Height) * common.TileSize,
	}); err != nil {
		return err
	}

	for i := range lvl.Layers {
		meta := lvl.Meta(i)
		if !meta.Physics {
			continue
		}
		layer := physics.LayerSolid
		if meta.Collision != "" {
			l, ok := physics.LayerByName(meta.Collision)
			if !ok {
				return fmt.Errorf("level: layer %d: %w: %q", i, prefabs.ErrUnknownLayer, meta.Collision)
			}
			layer = l
		}
		tint := layerColor(meta.Color)

		for _, run := range lvl.Runs(i) {
			bb := cp.BB{
				L: float64(run.X) * common.TileSize,
				B: float64(run.Y) * common.TileSize,
				R: float64(run.X+run.Len) * common.TileSize,
				T: float64(run.Y+1) * common.TileSize,
			}
			pw.AddStaticBox(bb, layer, tileFriction)
			if grid != nil {
				physics.AddGridBox(grid, bb, layer)
			}

			e := w.CreateEntity()
			if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: bb.L, Y: bb.B}); err != nil {
				return err
			}
			if err := ecs.Add(w, e, component.StaticTileComponent.Kind(), &component.StaticTile{
				Width:  bb.R - bb.L,
				Height: bb.T - bb.B,
				Layer:  layer,
				Color:  tint,
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

// PlayerSpawn returns the bottom-center of the level's player spawn tile.
func PlayerSpawn(lvl *levels.Level) (cp.Vector, bool) {
	x, y, ok := lvl.Spawn("player")
	if !ok {
		return cp.Vector{}, false
	}
	return cp.Vector{X: (float64(x) + 0.5) * common.TileSize, Y: float64(y) * common.TileSize}, true
}

func layerColor(name string) color.Color {
	if c, ok := colornames.Map[strings.ToLower(name)]; ok {
		return c
	}
	return colornames.Slategray
}
