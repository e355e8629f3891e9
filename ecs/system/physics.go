package system

import (
	"github.com/milk9111/orbhop/ecs"
	"github.com/milk9111/orbhop/ecs/component"
	"github.com/milk9111/orbhop/physics"
)

// PhysicsSystem steps the collision world and copies body positions into
// transforms.
type PhysicsSystem struct {
	world *physics.World
}

func NewPhysicsSystem(world *physics.World) *PhysicsSystem {
	return &PhysicsSystem{world: world}
}

func (s *PhysicsSystem) World() *physics.World {
	if s == nil {
		return nil
	}
	return s.world
}

func (s *PhysicsSystem) FixedUpdate(w *ecs.World, dt float64) {
	if w == nil || s == nil || s.world == nil {
		return
	}
	s.world.Step(dt)
	ecs.ForEach2(w, component.PlayerComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Player, t *component.Transform) {
		pos := p.Body.Position()
		t.X, t.Y = pos.X, pos.Y
		t.FacingLeft = p.Core.Motion().FacingLeft()
	})
}
