package physics

import "github.com/jakecoffman/cp"

// Body is an axis-aligned dynamic box driven by velocity writes.
type Body struct {
	body  *cp.Body
	shape *cp.Shape
	halfW float64
	halfH float64
}

func (b *Body) Bounds() cp.BB {
	if b == nil || b.body == nil {
		return cp.BB{}
	}
	p := b.body.Position()
	return cp.BB{L: p.X - b.halfW, B: p.Y - b.halfH, R: p.X + b.halfW, T: p.Y + b.halfH}
}

func (b *Body) Velocity() cp.Vector {
	if b == nil || b.body == nil {
		return cp.Vector{}
	}
	return b.body.Velocity()
}

func (b *Body) SetVelocity(v cp.Vector) {
	if b == nil || b.body == nil {
		return
	}
	b.body.SetVelocityVector(v)
}

func (b *Body) Position() cp.Vector {
	if b == nil || b.body == nil {
		return cp.Vector{}
	}
	return b.body.Position()
}

// Teleport moves the body to center and stops it.
func (b *Body) Teleport(center cp.Vector) {
	if b == nil || b.body == nil {
		return
	}
	b.body.SetPosition(center)
	b.body.SetVelocityVector(cp.Vector{})
}

func (b *Body) Size() (width, height float64) {
	if b == nil {
		return 0, 0
	}
	return b.halfW * 2, b.halfH * 2
}

// Shape returns the collision shape.
func (b *Body) Shape() *cp.Shape {
	if b == nil {
		return nil
	}
	return b.shape
}
