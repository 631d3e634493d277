package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/motor"
)

// SpaceCaster implements motor.ShapeCaster with a bounding-box sweep over a
// Chipmunk space. Tiles are boxes, so the BB test is exact for them.
type SpaceCaster struct {
	space  *cp.Space
	ignore *cp.Body
}

// BoxCast reports whether a box swept from origin along direction meets a
// non-sensor shape on layers. Shapes whose near face lies behind the cast
// origin (ceilings, for a downward cast) do not count.
func (c *SpaceCaster) BoxCast(origin, halfExtents, direction cp.Vector, maxDistance float64, layers motor.LayerMask) bool {
	if c == nil || c.space == nil || layers == 0 {
		return false
	}
	dir := direction.Normalize()
	bb := sweptBB(origin, halfExtents, dir, maxDistance)
	filter := cp.ShapeFilter{
		Group:      cp.NO_GROUP,
		Categories: cp.ALL_CATEGORIES,
		Mask:       uint(layers),
	}
	start := origin.Dot(dir)

	hit := false
	c.space.BBQuery(bb, filter, func(shape *cp.Shape, data interface{}) {
		if hit || shape.Sensor() {
			return
		}
		if c.ignore != nil && shape.Body() == c.ignore {
			return
		}
		if nearProjection(shape.BB(), dir) < start {
			return
		}
		hit = true
	}, nil)
	return hit
}

// sweptBB is the box covering the start and end positions of a cast.
func sweptBB(origin, half, dir cp.Vector, dist float64) cp.BB {
	end := origin.Add(dir.Mult(dist))
	return cp.BB{
		L: math.Min(origin.X, end.X) - half.X,
		B: math.Min(origin.Y, end.Y) - half.Y,
		R: math.Max(origin.X, end.X) + half.X,
		T: math.Max(origin.Y, end.Y) + half.Y,
	}
}

// nearProjection is the smallest projection of bb's corners onto dir.
func nearProjection(bb cp.BB, dir cp.Vector) float64 {
	corners := [4]cp.Vector{
		{X: bb.L, Y: bb.B},
		{X: bb.L, Y: bb.T},
		{X: bb.R, Y: bb.B},
		{X: bb.R, Y: bb.T},
	}
	near := math.Inf(1)
	for _, p := range corners {
		near = math.Min(near, p.Dot(dir))
	}
	return near
}

func overlaps(a, b cp.BB) bool {
	return a.L <= b.R && b.L <= a.R && a.B <= b.T && b.B <= a.T
}
