package system

import (
	"math"

	"github.com/milk9111/orbhop/ecs"
	"github.com/milk9111/orbhop/ecs/component"
	"github.com/milk9111/orbhop/physics"
	"go.uber.org/zap"
)

// PickupSystem collects orbs the player overlaps, counts down respawns and
// turns hazard contact into a ResetRequest.
type PickupSystem struct {
	world *physics.World
	log   *zap.Logger
}

func NewPickupSystem(world *physics.World) *PickupSystem {
	return &PickupSystem{world: world, log: zap.NewNop()}
}

func (s *PickupSystem) SetLogger(log *zap.Logger) {
	if s == nil || log == nil {
		return
	}
	s.log = log.Named("pickup")
}

func (s *PickupSystem) FixedUpdate(w *ecs.World, dt float64) {
	if w == nil || s == nil {
		return
	}

	ecs.ForEach(w, component.OrbPickupComponent.Kind(), func(e ecs.Entity, p *component.OrbPickup) {
		if p.Active || math.IsInf(p.RespawnIn, 1) {
			return
		}
		p.RespawnIn -= dt
		if p.RespawnIn <= 0 {
			p.RespawnIn = 0
			p.Active = true
			s.log.Debug("orb respawned", zap.String("orb", p.Definition.Name))
		}
	})

	ecs.ForEach(w, component.PlayerComponent.Kind(), func(pe ecs.Entity, pl *component.Player) {
		bounds := pl.Body.Bounds()

		ecs.ForEach(w, component.OrbPickupComponent.Kind(), func(oe ecs.Entity, p *component.OrbPickup) {
			if !p.Active || p.Definition == nil || !bounds.Intersects(p.Bounds) {
				return
			}
			pl.Core.CollectOrb(p.Definition)
			p.Active = false
			if p.Definition.RespawnDelay > 0 {
				p.RespawnIn = p.Definition.RespawnDelay
			} else {
				p.RespawnIn = math.Inf(1)
			}
		})

		if s.world == nil {
			return
		}
		for _, data := range s.world.Overlaps(bounds) {
			if h, ok := data.(physics.Hazard); ok {
				s.log.Debug("hazard touched", zap.Int("col", h.Col), zap.Int("row", h.Row))
				_ = ecs.Add(w, pe, component.ResetRequestComponent.Kind(), &component.ResetRequest{Reason: "hazard"})
				return
			}
		}
	})
}
