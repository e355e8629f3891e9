package system

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/orbhop/ecs"
	"github.com/milk9111/orbhop/ecs/component"
)

const debugCircleSegments = 24

// DrawPhysicsDebug outlines every shape of space through the camera.
func DrawPhysicsDebug(space *cp.Space, w *ecs.World, screen *ebiten.Image) {
	if space == nil || w == nil || screen == nil {
		return
	}
	_, cam, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return
	}
	cp.DrawSpace(space, &physicsDebugDrawer{screen: screen, cam: cam})
}

// DrawPlayerStateDebug prints the motion, dash and ability state of the
// player plus recent events.
func DrawPlayerStateDebug(w *ecs.World, screen *ebiten.Image, recent []string) {
	if w == nil || screen == nil {
		return
	}
	_, p, ok := ecs.First(w, component.PlayerComponent.Kind())
	if !ok {
		return
	}
	ebitenutil.DebugPrintAt(screen, PlayerStateText(p, recent), 10, 10)
}

// PlayerStateText formats the overlay text.
func PlayerStateText(p *component.Player, recent []string) string {
	snap := p.Core.Snapshot()
	vel := p.Body.Velocity()
	var b strings.Builder
	fmt.Fprintf(&b, "t=%.2f grounded=%v facing_left=%v\n", snap.Time, snap.Motion.Grounded, snap.FacingLeft)
	fmt.Fprintf(&b, "vel=(%.2f, %.2f) frame_vel=(%.2f, %.2f)\n", vel.X, vel.Y, snap.Motion.FrameVelocity.X, snap.Motion.FrameVelocity.Y)
	fmt.Fprintf(&b, "coyote=%v buffered=%v ended_early=%v\n", snap.Motion.CoyoteUsable, snap.Motion.BufferedJumpUsable, snap.Motion.EndedJumpEarly)
	fmt.Fprintf(&b, "dashing=%v dash_left=%.2f cooldown=%.2f\n", snap.Dash.Dashing, snap.Dash.RemainingDuration, snap.Dash.CooldownRemaining)
	fmt.Fprintf(&b, "orb=%s stack=%d air_jumps=%d dash_charges=%d jump_x%.3f\n",
		snap.Stack.ActiveKind, snap.Stack.StackCount, snap.Stack.RemainingAirJumps, snap.Stack.RemainingDashCharges, p.Core.Abilities().JumpPowerMultiplier())
	for _, line := range recent {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

type physicsDebugDrawer struct {
	screen *ebiten.Image
	cam    *component.Camera
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: pos.X + math.Cos(t)*radius, Y: pos.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, outline)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], outline)
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	x, y := d.cam.ToScreen(pos.X, pos.Y)
	ebitenutil.DrawRect(d.screen, x-1, y-1, 2, 2, toNRGBA(fill))
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

// ShapeColor marks sensors red.
func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape != nil && shape.Sensor() {
		return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.6}
	}
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
	x1, y1 := d.cam.ToScreen(a.X, a.Y)
	x2, y2 := d.cam.ToScreen(b.X, b.Y)
	ebitenutil.DrawLine(d.screen, x1, y1, x2, y2, toNRGBA(c))
}

func (d *physicsDebugDrawer) drawPolygon(verts []cp.Vector, c cp.FColor) {
	for i := range verts {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], c)
	}
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
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
