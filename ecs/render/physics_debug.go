package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/ecs/system"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 4
	debugLineWidth      = 1
)

func DrawPhysicsDebug(space *cp.Space, w *ecs.World, screen *ebiten.Image) {
	if space == nil || w == nil || screen == nil {
		return
	}

	b := screen.Bounds()
	drawer := &physicsDebugDrawer{
		screen: screen,
		view:   system.CameraView(w, float64(b.Dx()), float64(b.Dy())),
	}
	cp.DrawSpace(space, drawer)
	drawGroundCasts(w, drawer)
}

// DrawMotorDebug prints the player's motor state in the top-left corner.
func DrawMotorDebug(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	player, ok := w.First(component.PlayerTagComponent.Kind(), component.CharacterMotorComponent.Kind())
	if !ok {
		return
	}
	cm, _ := ecs.Get(w, player, component.CharacterMotorComponent.Kind())
	if cm.Motor == nil {
		return
	}
	st := cm.Motor.State()
	vel := cp.Vector{}
	if pb, ok := ecs.Get(w, player, component.PhysicsBodyComponent.Kind()); ok && pb.Body != nil {
		vel = pb.Body.Velocity()
	}
	text := fmt.Sprintf("Grounded: %v\nCoyote: %.3f\nAxis: %.2f\nJump held: %v\nGravity: %.2f\nDrag: %.2f\nVelocity: %.2f, %.2f",
		st.Grounded, st.CoyoteTimer, st.MovementDirection, st.JumpHeld, st.GravityScale, st.Drag, vel.X, vel.Y)
	ebitenutil.DebugPrintAt(screen, text, 10, 10)
}

// drawGroundCasts outlines the box each motor sweeps for ground.
func drawGroundCasts(w *ecs.World, d *physicsDebugDrawer) {
	ecs.ForEach2(w, component.CharacterMotorComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(_ ecs.Entity, cm *component.CharacterMotor, pb *component.PhysicsBody) {
		if cm.Motor == nil || pb.Body == nil {
			return
		}
		cfg := cm.Motor.Config()
		center, half := pb.Body.Bounds()
		half.X = math.Max(half.X-cfg.GroundSkin, 0)
		bb := cp.BB{
			L: center.X - half.X,
			B: center.Y - half.Y - cfg.GroundCastDistance,
			R: center.X + half.X,
			T: center.Y + half.Y,
		}
		c := cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
		if cm.Motor.State().Grounded {
			c = cp.FColor{R: 0.2, G: 0.6, B: 1, A: 0.9}
		}
		d.drawPolygon([]cp.Vector{{X: bb.L, Y: bb.B}, {X: bb.R, Y: bb.B}, {X: bb.R, Y: bb.T}, {X: bb.L, Y: bb.T}}, c)
	})
}

type physicsDebugDrawer struct {
	screen *ebiten.Image
	view   system.View
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	d.drawCircle(pos, radius, outline)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, outline)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
	if radius > 0 {
		d.drawCircle(a, radius, outline)
		d.drawCircle(b, radius, outline)
	}
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], outline)
}

// DrawDot sizes are in screen pixels.
func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	x, y := d.view.ToScreen(pos)
	half := float32(size / 2)
	c := toNRGBA(fill)
	vector.StrokeLine(d.screen, float32(x)-half, float32(y), float32(x)+half, float32(y), debugLineWidth, c, false)
	vector.StrokeLine(d.screen, float32(x), float32(y)-half, float32(x), float32(y)+half, debugLineWidth, c, false)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES | cp.DRAW_COLLISION_POINTS
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	return cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5}
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, c cp.FColor) {
	x1, y1 := d.view.ToScreen(a)
	x2, y2 := d.view.ToScreen(b)
	vector.StrokeLine(d.screen, float32(x1), float32(y1), float32(x2), float32(y2), debugLineWidth, toNRGBA(c), false)
}

func (d *physicsDebugDrawer) drawPolygon(verts []cp.Vector, c cp.FColor) {
	for i := range verts {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], c)
	}
}

func (d *physicsDebugDrawer) drawCircle(center cp.Vector, radius float64, c cp.FColor) {
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, c)
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	return min(max(v, 0), 1)
}
