package player

import (
	"github.com/milk9111/orbhop/ability"
	"github.com/milk9111/orbhop/dash"
	"github.com/milk9111/orbhop/event"
	"github.com/milk9111/orbhop/motion"
	"github.com/milk9111/orbhop/orb"
	"go.uber.org/zap"
)

// Snapshot is a read-only view of the whole core, for overlays and logs.
type Snapshot struct {
	Time       float64
	FacingLeft bool
	Motion     motion.State
	Dash       dash.State
	Stack      ability.Stack
}

// Coordinator wires the ability collector, dash system and motion
// controller together and republishes their events on one bus.
type Coordinator struct {
	bus       *event.Bus
	abilities *ability.Collector
	dash      *dash.System
	motion    *motion.Controller
	stats     motion.Stats
	log       *zap.Logger
}

// NewCoordinator wires already constructed leaves.
func NewCoordinator(abilities *ability.Collector, dashes *dash.System, ctrl *motion.Controller) *Coordinator {
	c := &Coordinator{
		bus:       event.NewBus(),
		abilities: abilities,
		dash:      dashes,
		motion:    ctrl,
		log:       zap.NewNop(),
	}

	abilities.SetPublisher(c.bus)
	dashes.SetPublisher(c.bus)
	dashes.SetFacer(ctrl)
	ctrl.SetPublisher(c.bus)
	ctrl.SetAbilities(abilities)
	ctrl.SetDasher(dashes)

	if s := ctrl.Stats(); s != nil {
		c.applyStats(*s)
	}
	return c
}

// New builds the three leaves for one body and wires them.
func New(stats motion.Stats, body motion.Body, caster motion.Caster) *Coordinator {
	abilities := ability.NewCollector()
	c := NewCoordinator(
		abilities,
		dash.NewSystem(body, caster, abilities),
		motion.NewController(nil, body, caster),
	)
	c.SetStats(stats)
	return c
}

func (c *Coordinator) SetLogger(log *zap.Logger) {
	if c == nil || log == nil {
		return
	}
	c.log = log.Named("player")
	c.abilities.SetLogger(log)
	c.dash.SetLogger(log)
	c.motion.SetLogger(log)
}

// SetStats sanitizes and applies new tuning to every leaf.
func (c *Coordinator) SetStats(stats motion.Stats) {
	if c == nil {
		return
	}
	if clamped := stats.Sanitize(); len(clamped) > 0 {
		c.log.Warn("set stats: clamped invalid values", zap.Strings("fields", clamped))
	}
	c.applyStats(stats)
}

func (c *Coordinator) applyStats(stats motion.Stats) {
	c.stats = stats
	c.motion.SetStats(&c.stats)
	c.dash.SetDefaults(&c.stats.Dash)
	c.dash.SetProbeDistance(c.stats.DashProbeDistance)
	c.abilities.SetClearDashOnLanding(c.stats.ClearDashOnLanding)
}

// SampleInput takes the input snapshot of a rendered frame. Edges latch
// until the next fixed tick.
func (c *Coordinator) SampleInput(in motion.FrameInput) {
	if c == nil {
		return
	}
	c.motion.SetInput(in)
	c.dash.SetInput(c.motion.Input().Move.X, in.DashDown)
}

// FixedTick advances the dash system, then the motion controller.
func (c *Coordinator) FixedTick(dt float64) {
	if c == nil || dt <= 0 {
		return
	}
	c.dash.Tick(dt)
	c.motion.FixedTick(dt)
}

func (c *Coordinator) CollectOrb(def *orb.Definition) {
	if c == nil {
		return
	}
	c.abilities.CollectOrb(def)
}

// ResetPlayerToDefault clears abilities and charges and drops an active
// dash.
func (c *Coordinator) ResetPlayerToDefault() {
	if c == nil {
		return
	}
	c.dash.Cancel()
	c.abilities.ResetToDefault()
}

// Respawn is ResetPlayerToDefault plus a motion reset, for use after the
// body was teleported.
func (c *Coordinator) Respawn() {
	if c == nil {
		return
	}
	c.ResetPlayerToDefault()
	c.motion.Reset()
	c.log.Debug("respawn", zap.Float64("t", c.motion.Time()))
}

func (c *Coordinator) ClearGroundedCharges() {
	if c == nil {
		return
	}
	c.abilities.ClearGroundedCharges()
}

// Subscribe registers l for every core event and returns its unsubscribe.
func (c *Coordinator) Subscribe(l event.Listener) func() {
	if c == nil {
		return func() {}
	}
	return c.bus.Subscribe(l)
}

func (c *Coordinator) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	return Snapshot{
		Time:       c.motion.Time(),
		FacingLeft: c.motion.FacingLeft(),
		Motion:     c.motion.State(),
		Dash:       c.dash.State(),
		Stack:      c.abilities.Snapshot(),
	}
}

func (c *Coordinator) Stats() motion.Stats {
	if c == nil {
		return motion.Stats{}
	}
	return c.stats
}

func (c *Coordinator) Abilities() *ability.Collector { return c.abilities }
func (c *Coordinator) Dash() *dash.System            { return c.dash }
func (c *Coordinator) Motion() *motion.Controller    { return c.motion }
