package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/orbhop/ecs"
	"github.com/milk9111/orbhop/physics"
	"go.uber.org/zap"
)

// Pipeline is the system set of one scene, registered in run order.
//
// Frame: input, player sampling, pickup hover, camera, event log.
// Fixed: player core (dash, then motion), physics step, pickups, resets.
type Pipeline struct {
	Scheduler *ecs.Scheduler
	Input     ecs.System
	Player    *PlayerSystem
	Physics   *PhysicsSystem
	Pickups   *PickupSystem
	Resets    *ResetSystem
	Hover     *PickupHoverSystem
	Camera    *CameraSystem
	Events    *EventLogSystem
}

func NewPipeline(phys *physics.World, bounds cp.BB, input ecs.System, step float64, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Pipeline{
		Scheduler: ecs.NewScheduler(step),
		Input:     input,
		Player:    NewPlayerSystem(),
		Physics:   NewPhysicsSystem(phys),
		Pickups:   NewPickupSystem(phys),
		Resets:    NewResetSystem(),
		Hover:     NewPickupHoverSystem(),
		Camera:    NewCameraSystem(bounds),
		Events:    NewEventLogSystem(log),
	}
	p.Pickups.SetLogger(log)
	p.Resets.SetLogger(log)

	if input != nil {
		p.Scheduler.AddFrame(input)
	}
	p.Scheduler.AddFrame(p.Player)
	p.Scheduler.AddFrame(p.Hover)
	p.Scheduler.AddFrame(p.Camera)
	p.Scheduler.AddFrame(p.Events)

	p.Scheduler.AddFixed(p.Player)
	p.Scheduler.AddFixed(p.Physics)
	p.Scheduler.AddFixed(p.Pickups)
	p.Scheduler.AddFixed(p.Resets)
	return p
}

// Update runs one rendered frame of frameDt seconds.
func (p *Pipeline) Update(w *ecs.World, frameDt float64) int {
	if p == nil {
		return 0
	}
	return p.Scheduler.Update(w, frameDt)
}

// Flush logs events produced since the last frame.
func (p *Pipeline) Flush(w *ecs.World) {
	if p == nil {
		return
	}
	p.Events.Update(w)
}
