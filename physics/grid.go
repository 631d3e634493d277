package physics

import (
	"math"
	"math/bits"
	"slices"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/motor"
	"github.com/solarlune/resolv"
)

// gridCellSize is the resolv cell edge in pixels. The space works in pixel
// coordinates, one tile per cell.
const gridCellSize = int(common.PixelsPerUnit * common.TileSize)

// LayerTags names the resolv tag used for each collision layer.
var LayerTags = map[motor.LayerMask]string{
	LayerSolid:    "solid",
	LayerPlatform: "platform",
	LayerPlayer:   "player",
}

// LayerByName resolves a layer tag such as "solid" to its mask bit.
func LayerByName(name string) (motor.LayerMask, bool) {
	for layer, tag := range LayerTags {
		if tag == name {
			return layer, true
		}
	}
	return 0, false
}

// GridCaster implements motor.ShapeCaster on a resolv cell grid. The cells
// under the swept box give the candidates; the final test is an exact AABB
// overlap in world units.
type GridCaster struct {
	space *resolv.Space
}

func NewGridCaster(space *resolv.Space) *GridCaster {
	return &GridCaster{space: space}
}

// NewGridSpace builds a resolv space covering width x height world units.
func NewGridSpace(width, height float64) *resolv.Space {
	w := max(int(math.Ceil(width/common.TileSize)), 1)
	h := max(int(math.Ceil(height/common.TileSize)), 1)
	return resolv.NewSpace(w*gridCellSize, h*gridCellSize, gridCellSize, gridCellSize)
}

// AddGridBox adds a static box, given in world units, tagged with layer.
func AddGridBox(space *resolv.Space, bb cp.BB, layer motor.LayerMask) *resolv.Object {
	obj := resolv.NewObject(
		bb.L*common.PixelsPerUnit, bb.B*common.PixelsPerUnit,
		(bb.R-bb.L)*common.PixelsPerUnit, (bb.T-bb.B)*common.PixelsPerUnit,
		tagsFor(layer)...,
	)
	space.Add(obj)
	return obj
}

func (g *GridCaster) BoxCast(origin, halfExtents, direction cp.Vector, maxDistance float64, layers motor.LayerMask) bool {
	if g == nil || g.space == nil {
		return false
	}
	tags := tagsFor(layers)
	if len(tags) == 0 {
		return false
	}

	dir := direction.Normalize()
	swept := sweptBB(origin, halfExtents, dir, maxDistance)
	start := origin.Dot(dir)

	hit := false
	g.candidates(swept, func(obj *resolv.Object) bool {
		if !obj.HasTags(tags...) {
			return true
		}
		bb := worldBB(obj)
		if !overlaps(swept, bb) || nearProjection(bb, dir) < start {
			return true
		}
		hit = true
		return false
	})
	return hit
}

// candidates visits each object registered in a cell touched by bb, once,
// until fn returns false. The span is closed: a box lying on a cell edge
// also visits the cell on the other side.
func (g *GridCaster) candidates(bb cp.BB, fn func(*resolv.Object) bool) {
	cx, ex := cellSpan(bb.L, bb.R, g.space.CellWidth)
	cy, ey := cellSpan(bb.B, bb.T, g.space.CellHeight)
	seen := make(map[*resolv.Object]struct{})
	for y := cy; y <= ey; y++ {
		for x := cx; x <= ex; x++ {
			cell := g.space.Cell(x, y)
			if cell == nil {
				continue
			}
			for _, obj := range cell.Objects {
				if _, ok := seen[obj]; ok {
					continue
				}
				seen[obj] = struct{}{}
				if !fn(obj) {
					return
				}
			}
		}
	}
}

func cellSpan(lo, hi float64, cellSize int) (int, int) {
	size := float64(cellSize)
	lo *= common.PixelsPerUnit
	hi *= common.PixelsPerUnit
	return int(math.Ceil(lo/size)) - 1, int(math.Floor(hi / size))
}

func worldBB(obj *resolv.Object) cp.BB {
	return cp.BB{
		L: obj.X / common.PixelsPerUnit,
		B: obj.Y / common.PixelsPerUnit,
		R: (obj.X + obj.W) / common.PixelsPerUnit,
		T: (obj.Y + obj.H) / common.PixelsPerUnit,
	}
}

// tagsFor lists the tags of every layer set in mask, in layer order.
func tagsFor(mask motor.LayerMask) []string {
	layers := make([]motor.LayerMask, 0, bits.OnesCount32(uint32(mask)))
	for layer := range LayerTags {
		if mask&layer != 0 {
			layers = append(layers, layer)
		}
	}
	slices.Sort(layers)
	tags := make([]string, 0, len(layers))
	for _, layer := range layers {
		tags = append(tags, LayerTags[layer])
	}
	return tags
}
