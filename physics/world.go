package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeSensor
	collisionTypePlayer
)

const (
	categorySolid uint = 1 << iota
	categorySensor
	categoryPlayer
)

// probeInset is the overlap a solid needs along the probe's face to count.
// Floors under a sideways probe and walls beside a downward probe only graze
// the face and are ignored.
const probeInset = 0.1

const (
	// resolvePasses bounds the push-out iterations after a step.
	resolvePasses  = 4
	contactEpsilon = 1e-9
)

// World owns the Chipmunk space. Coordinates are world units, y up. Gravity
// is zero: the motion controller integrates it and writes velocities.
type World struct {
	space   *cp.Space
	bodies  []*Body
	sensors []*cp.Shape
	log     *zap.Logger
}

func NewWorld() *World {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{})
	return &World{space: space, log: zap.NewNop()}
}

func (w *World) SetLogger(log *zap.Logger) {
	if w == nil || log == nil {
		return
	}
	w.log = log.Named("physics")
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// AddSolid adds a static box.
func (w *World) AddSolid(bb cp.BB) *cp.Shape {
	if w == nil || w.space == nil {
		return nil
	}
	shape := cp.NewBox2(w.space.StaticBody, bb, 0)
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypeSolid)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categorySolid, cp.ALL_CATEGORIES))
	w.space.AddShape(shape)
	return shape
}

// AddSensor adds a static trigger box. Sensors never block bodies or probes;
// data is returned by Overlaps.
func (w *World) AddSensor(bb cp.BB, data any) *cp.Shape {
	if w == nil || w.space == nil {
		return nil
	}
	shape := cp.NewBox2(w.space.StaticBody, bb, 0)
	shape.SetSensor(true)
	shape.SetCollisionType(collisionTypeSensor)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categorySensor, cp.ALL_CATEGORIES))
	shape.UserData = data
	w.space.AddShape(shape)
	w.sensors = append(w.sensors, shape)
	return shape
}

// AddBounds walls in the rectangle [0,width] x [0,height].
func (w *World) AddBounds(width, height float64) {
	if w == nil || w.space == nil || width <= 0 || height <= 0 {
		return
	}
	const thickness = 1.0
	w.AddSolid(cp.BB{L: -thickness, B: -thickness, R: width + thickness, T: 0})
	w.AddSolid(cp.BB{L: -thickness, B: height, R: width + thickness, T: height + thickness})
	w.AddSolid(cp.BB{L: -thickness, B: 0, R: 0, T: height})
	w.AddSolid(cp.BB{L: width, B: 0, R: width + thickness, T: height})
}

// NewBody adds a dynamic, non-rotating box body centred at center.
func (w *World) NewBody(center cp.Vector, width, height float64) *Body {
	if w == nil || w.space == nil || width <= 0 || height <= 0 {
		return nil
	}
	body := cp.NewBody(1, math.Inf(1))
	body.SetPosition(center)
	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetCollisionType(collisionTypePlayer)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categoryPlayer, categorySolid))

	w.space.AddBody(body)
	w.space.AddShape(shape)

	b := &Body{body: body, shape: shape, halfW: width / 2, halfH: height / 2}
	w.bodies = append(w.bodies, b)
	return b
}

// BoxCast reports whether bounds, swept distance along dir, touches a solid
// shape. Sensors and bodies are ignored. Probes are axis aligned: the
// dominant axis of dir picks the face, and a solid must overlap that face by
// more than probeInset to count.
func (w *World) BoxCast(bounds cp.BB, dir cp.Vector, distance float64) bool {
	if w == nil || w.space == nil || distance < 0 {
		return false
	}
	horizontal := math.Abs(dir.X) > math.Abs(dir.Y)
	probe := probeBB(bounds, dir, distance)
	hit := false
	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, categorySolid)
	w.space.BBQuery(probe, filter, func(shape *cp.Shape, _ interface{}) {
		if hit || shape.Sensor() {
			return
		}
		bb := shape.BB()
		if horizontal {
			hit = overlap(bb.B, bb.T, bounds.B, bounds.T) > math.Min(probeInset, (bounds.T-bounds.B)/4)
		} else {
			hit = overlap(bb.L, bb.R, bounds.L, bounds.R) > math.Min(probeInset, (bounds.R-bounds.L)/4)
		}
	}, nil)
	return hit
}

// Overlaps returns the data of every sensor intersecting bounds.
func (w *World) Overlaps(bounds cp.BB) []any {
	if w == nil || w.space == nil {
		return nil
	}
	var out []any
	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, categorySensor)
	w.space.BBQuery(bounds, filter, func(shape *cp.Shape, _ interface{}) {
		if !shape.Sensor() || shape.UserData == nil {
			return
		}
		out = append(out, shape.UserData)
	}, nil)
	return out
}

// Step advances the simulation, then pushes bodies out of any solid they
// overlap.
func (w *World) Step(dt float64) {
	if w == nil || w.space == nil || dt <= 0 {
		return
	}
	w.space.Step(dt)
	for _, b := range w.bodies {
		w.resolve(b)
	}
}

func (w *World) resolve(b *Body) {
	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, categorySolid)
	for pass := 0; pass < resolvePasses; pass++ {
		bounds := b.Bounds()
		var push cp.Vector
		w.space.BBQuery(bounds, filter, func(shape *cp.Shape, _ interface{}) {
			if shape.Sensor() || push != (cp.Vector{}) {
				return
			}
			push = separation(bounds, shape.BB())
		}, nil)
		if push == (cp.Vector{}) {
			return
		}

		b.body.SetPosition(b.body.Position().Add(push))
		v := b.body.Velocity()
		if push.X*v.X < 0 {
			v.X = 0
		}
		if push.Y*v.Y < 0 {
			v.Y = 0
		}
		b.body.SetVelocity(v.X, v.Y)
	}
}

// separation is the shortest axis-aligned move taking body out of solid, or
// zero when they only touch.
func separation(body, solid cp.BB) cp.Vector {
	left := body.R - solid.L
	right := solid.R - body.L
	down := body.T - solid.B
	up := solid.T - body.B
	if left <= contactEpsilon || right <= contactEpsilon || down <= contactEpsilon || up <= contactEpsilon {
		return cp.Vector{}
	}
	move := math.Min(math.Min(left, right), math.Min(down, up))
	switch move {
	case up:
		return cp.Vector{Y: up}
	case down:
		return cp.Vector{Y: -down}
	case left:
		return cp.Vector{X: -left}
	default:
		return cp.Vector{X: right}
	}
}

func overlap(a0, a1, b0, b1 float64) float64 {
	return math.Min(a1, b1) - math.Max(a0, b0)
}

func probeBB(b cp.BB, dir cp.Vector, d float64) cp.BB {
	switch {
	case math.Abs(dir.X) > math.Abs(dir.Y) && dir.X > 0:
		return cp.BB{L: b.R, B: b.B, R: b.R + d, T: b.T}
	case math.Abs(dir.X) > math.Abs(dir.Y):
		return cp.BB{L: b.L - d, B: b.B, R: b.L, T: b.T}
	case dir.Y > 0:
		return cp.BB{L: b.L, B: b.T, R: b.R, T: b.T + d}
	default:
		return cp.BB{L: b.L, B: b.B - d, R: b.R, T: b.B}
	}
}
