package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/orbhop/ecs"
	"github.com/milk9111/orbhop/ecs/component"
	"go.uber.org/zap"
)

// ResetSystem handles ResetRequests: the player goes back to its spawn with
// default abilities and every orb pickup is restored. It runs after the
// pickup system.
type ResetSystem struct {
	resets int
	log    *zap.Logger
}

func NewResetSystem() *ResetSystem { return &ResetSystem{log: zap.NewNop()} }

func (s *ResetSystem) SetLogger(log *zap.Logger) {
	if s == nil || log == nil {
		return
	}
	s.log = log.Named("reset")
}

// Resets is the number of resets performed.
func (s *ResetSystem) Resets() int {
	if s == nil {
		return 0
	}
	return s.resets
}

func (s *ResetSystem) FixedUpdate(w *ecs.World, dt float64) {
	if w == nil || s == nil {
		return
	}

	handled := false
	ecs.ForEach(w, component.ResetRequestComponent.Kind(), func(e ecs.Entity, req *component.ResetRequest) {
		_ = ecs.Remove(w, e, component.ResetRequestComponent.Kind())

		p, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
		if !ok {
			return
		}
		if spawn, ok := ecs.Get(w, e, component.SpawnComponent.Kind()); ok {
			center := cp.Vector{X: spawn.X, Y: spawn.Y}
			p.Body.Teleport(center)
			if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
				t.X, t.Y = center.X, center.Y
			}
		}
		p.Core.Respawn()
		handled = true
		s.resets++
		s.log.Debug("player reset", zap.String("reason", req.Reason), zap.Int("resets", s.resets))
	})

	if !handled {
		return
	}
	ecs.ForEach(w, component.OrbPickupComponent.Kind(), func(e ecs.Entity, p *component.OrbPickup) {
		p.Active = true
		p.RespawnIn = 0
	})
}
