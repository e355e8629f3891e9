package system

import (
	"math"

	"github.com/milk9111/orbhop/ecs"
	"github.com/milk9111/orbhop/ecs/component"
)

const (
	bobAmplitude = 0.12
	bobSpeed     = 0.08
)

// PickupHoverSystem bobs orb transforms around their trigger centre. The
// trigger itself does not move.
type PickupHoverSystem struct{}

func NewPickupHoverSystem() *PickupHoverSystem { return &PickupHoverSystem{} }

func (s *PickupHoverSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.OrbPickupComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pickup *component.OrbPickup, t *component.Transform) {
		pickup.BobPhase += bobSpeed
		c := pickup.Bounds.Center()
		t.X = c.X
		t.Y = c.Y + math.Sin(pickup.BobPhase)*bobAmplitude
	})
}
