package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/orbhop/ecs"
	"github.com/milk9111/orbhop/ecs/component"
	"github.com/milk9111/orbhop/motion"
)

// PlayerSystem hands each frame's Input to the player core and advances the
// core once per fixed step. A reset press becomes a ResetRequest.
type PlayerSystem struct{}

func NewPlayerSystem() *PlayerSystem { return &PlayerSystem{} }

func (s *PlayerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.PlayerComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, p *component.Player, input *component.Input) {
		p.Core.SampleInput(motion.FrameInput{
			Move:     cp.Vector{X: input.MoveX, Y: input.MoveY},
			JumpDown: input.JumpDown,
			JumpHeld: input.JumpHeld,
			DashDown: input.DashDown,
		})
		if input.ResetDown {
			_ = ecs.Add(w, e, component.ResetRequestComponent.Kind(), &component.ResetRequest{Reason: "input"})
		}
	})
}

func (s *PlayerSystem) FixedUpdate(w *ecs.World, dt float64) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.PlayerComponent.Kind(), func(e ecs.Entity, p *component.Player) {
		p.Core.FixedTick(dt)
	})
}
