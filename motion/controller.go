package motion

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/orbhop/common"
	"github.com/milk9111/orbhop/event"
	"go.uber.org/zap"
)

// Body is the simulated rigid body the controller drives.
type Body interface {
	Bounds() cp.BB
	Velocity() cp.Vector
	SetVelocity(v cp.Vector)
}

// Caster probes the level geometry. BoxCast reports whether bounds swept by
// distance along dir touch a solid, non-trigger shape other than the player.
type Caster interface {
	BoxCast(bounds cp.BB, dir cp.Vector, distance float64) bool
}

// Abilities is the slice of the ability collector the controller consults.
type Abilities interface {
	JumpPowerScale() float64
	JumpPowerMultiplier() float64
	CanAirJump() bool
	ConsumeAirJump() bool
	ClearGroundedCharges()
}

// Dasher reports whether a dash currently owns the body's velocity.
type Dasher interface {
	IsDashing() bool
}

var (
	down = cp.Vector{X: 0, Y: -1}
	up   = cp.Vector{X: 0, Y: 1}
)

// State is the controller's per-tick motion state.
type State struct {
	Grounded              bool
	FrameVelocity         cp.Vector
	FrameLeftGroundedTime float64
	CoyoteUsable          bool
	BufferedJumpUsable    bool
	JumpWasPressedTime    float64
	EndedJumpEarly        bool
}

// Controller integrates velocity once per fixed tick and runs the
// grounded/airborne jump state machine. While a dash is active the
// horizontal, gravity and apply steps are skipped and the dash owns the
// body's velocity.
type Controller struct {
	stats     *Stats
	body      Body
	caster    Caster
	abilities Abilities
	dash      Dasher
	pub       event.Publisher
	log       *zap.Logger

	state      State
	input      FrameInput
	time       float64
	jumpQueued bool
	// jumpToConsume is a press waiting for the jump step.
	jumpToConsume bool
	wasDashing    bool
	facingLeft    bool
	warnedConfig  bool
}

func NewController(stats *Stats, body Body, caster Caster) *Controller {
	c := &Controller{
		stats:  stats,
		body:   body,
		caster: caster,
		log:    zap.NewNop(),
	}
	c.Reset()
	return c
}

func (c *Controller) SetAbilities(a Abilities) {
	if c == nil {
		return
	}
	c.abilities = a
}

func (c *Controller) SetDasher(d Dasher) {
	if c == nil {
		return
	}
	c.dash = d
}

func (c *Controller) SetPublisher(pub event.Publisher) {
	if c == nil {
		return
	}
	c.pub = pub
}

func (c *Controller) SetLogger(log *zap.Logger) {
	if c == nil || log == nil {
		return
	}
	c.log = log.Named("motion")
}

// SetStats swaps the tuning, e.g. after a prefab reload.
func (c *Controller) SetStats(stats *Stats) {
	if c == nil {
		return
	}
	c.stats = stats
	c.warnedConfig = false
}

func (c *Controller) Stats() *Stats {
	if c == nil {
		return nil
	}
	return c.stats
}

// Reset puts the controller back into its spawn state: airborne, no
// pending jump, zero velocity. The clock keeps running.
func (c *Controller) Reset() {
	if c == nil {
		return
	}
	c.state = State{
		FrameLeftGroundedTime: math.Inf(-1),
		JumpWasPressedTime:    math.Inf(-1),
	}
	c.input = FrameInput{}
	c.jumpQueued = false
	c.jumpToConsume = false
	c.wasDashing = false
}

// SetInput stores the latest input snapshot. The jump-down edge is latched
// until the next fixed tick consumes it, so presses between ticks are not
// lost.
func (c *Controller) SetInput(in FrameInput) {
	if c == nil {
		return
	}
	in = in.Snap(c.stats)
	c.input.Move = in.Move
	c.input.JumpHeld = in.JumpHeld
	if in.JumpDown {
		c.jumpQueued = true
	}
	if in.Move.X != 0 {
		c.facingLeft = in.Move.X < 0
	}
}

// SyncVelocity makes v the controller's frame velocity. Used when another
// system wrote the body velocity directly.
func (c *Controller) SyncVelocity(v cp.Vector) {
	if c == nil {
		return
	}
	c.state.FrameVelocity = v
}

// FixedTick advances the controller by dt seconds.
func (c *Controller) FixedTick(dt float64) {
	if c == nil || dt <= 0 {
		return
	}
	c.time += dt

	if c.stats == nil || c.body == nil || c.caster == nil {
		c.jumpQueued = false
		if !c.warnedConfig {
			c.warnedConfig = true
			c.log.Warn("fixed tick: missing configuration, motion disabled",
				zap.Bool("stats", c.stats != nil),
				zap.Bool("body", c.body != nil),
				zap.Bool("caster", c.caster != nil),
			)
		}
		return
	}

	if c.jumpQueued {
		c.jumpQueued = false
		c.jumpToConsume = true
		c.state.JumpWasPressedTime = c.time
	}

	dashing := c.isDashing()
	if c.wasDashing && !dashing {
		c.state.FrameVelocity = c.body.Velocity()
	}
	c.wasDashing = dashing

	c.checkCollisions()

	if dashing {
		if c.jumpToConsume && c.time >= c.state.JumpWasPressedTime+c.stats.JumpBuffer {
			c.jumpToConsume = false
		}
		return
	}

	c.handleJump()
	c.handleDirection(dt)
	c.handleGravity(dt)
	c.body.SetVelocity(c.state.FrameVelocity)
}

func (c *Controller) checkCollisions() {
	bounds := c.body.Bounds()
	groundHit := c.caster.BoxCast(bounds, down, c.stats.GrounderDistance)
	ceilingHit := c.caster.BoxCast(bounds, up, c.stats.GrounderDistance)

	if ceilingHit {
		c.state.FrameVelocity.Y = math.Min(0, c.state.FrameVelocity.Y)
	}

	switch {
	case !c.state.Grounded && groundHit:
		c.state.Grounded = true
		c.state.CoyoteUsable = true
		c.state.BufferedJumpUsable = true
		c.state.EndedJumpEarly = false
		if c.abilities != nil {
			c.abilities.ClearGroundedCharges()
		}
		impact := math.Abs(c.state.FrameVelocity.Y)
		c.log.Debug("landed", zap.Float64("t", c.time), zap.Float64("impact", impact))
		c.publish(event.GroundedChanged{Grounded: true, ImpactSpeed: impact})
	case c.state.Grounded && !groundHit:
		c.state.Grounded = false
		c.state.FrameLeftGroundedTime = c.time
		c.log.Debug("left ground", zap.Float64("t", c.time))
		c.publish(event.GroundedChanged{Grounded: false})
	}
}

func (c *Controller) hasBufferedJump() bool {
	return c.state.BufferedJumpUsable && c.time < c.state.JumpWasPressedTime+c.stats.JumpBuffer
}

func (c *Controller) canUseCoyote() bool {
	return c.state.CoyoteUsable && !c.state.Grounded && c.time < c.state.FrameLeftGroundedTime+c.stats.CoyoteTime
}

func (c *Controller) handleJump() {
	if !c.state.EndedJumpEarly && !c.state.Grounded && !c.input.JumpHeld && c.body.Velocity().Y > 0 {
		c.state.EndedJumpEarly = true
	}

	buffered := c.hasBufferedJump()
	if !c.jumpToConsume && !buffered {
		return
	}

	canJump := c.state.Grounded || c.canUseCoyote()
	airJump := false
	if !canJump && c.abilities != nil && c.abilities.CanAirJump() {
		canJump = true
		airJump = true
	}

	if canJump {
		c.executeJump(airJump, !c.jumpToConsume)
	}
	c.jumpToConsume = false
}

func (c *Controller) executeJump(airJump, buffered bool) {
	c.state.EndedJumpEarly = false
	c.state.JumpWasPressedTime = math.Inf(-1)
	c.state.BufferedJumpUsable = false
	c.state.CoyoteUsable = false

	power := c.stats.JumpPower
	if c.abilities != nil {
		power *= c.abilities.JumpPowerScale() * c.abilities.JumpPowerMultiplier()
	}
	if airJump {
		c.abilities.ConsumeAirJump()
	}

	c.state.FrameVelocity.Y = power
	c.log.Debug("jump",
		zap.Float64("t", c.time),
		zap.Float64("power", power),
		zap.Bool("air", airJump),
		zap.Bool("buffered", buffered),
	)
	c.publish(event.Jumped{Power: power, AirJump: airJump, Buffered: buffered})
}

func (c *Controller) handleDirection(dt float64) {
	v := &c.state.FrameVelocity
	if c.input.Move.X == 0 {
		decel := c.stats.AirDeceleration
		if c.state.Grounded {
			decel = c.stats.GroundDeceleration
		}
		v.X = common.MoveTowards(v.X, 0, decel*dt)
		return
	}
	v.X = common.MoveTowards(v.X, c.input.Move.X*c.stats.MaxSpeed, c.stats.Acceleration*dt)
}

func (c *Controller) handleGravity(dt float64) {
	v := &c.state.FrameVelocity
	if c.state.Grounded && v.Y <= 0 {
		v.Y = c.stats.GroundingForce
		return
	}
	gravity := c.stats.FallAcceleration
	if c.state.EndedJumpEarly && v.Y > 0 {
		gravity *= c.stats.JumpEndEarlyGravityModifier
	}
	v.Y = common.MoveTowards(v.Y, -c.stats.MaxFallSpeed, gravity*dt)
}

func (c *Controller) isDashing() bool {
	return c.dash != nil && c.dash.IsDashing()
}

func (c *Controller) publish(evt event.Event) {
	if c.pub == nil {
		return
	}
	c.pub.Publish(evt)
}

func (c *Controller) State() State {
	if c == nil {
		return State{}
	}
	return c.state
}

func (c *Controller) Grounded() bool {
	return c != nil && c.state.Grounded
}

// Time is the simulation clock in seconds, advanced by FixedTick.
func (c *Controller) Time() float64 {
	if c == nil {
		return 0
	}
	return c.time
}

// FacingLeft is the sign of the last non-zero horizontal input.
func (c *Controller) FacingLeft() bool {
	return c != nil && c.facingLeft
}

// Input returns the current (snapped) input snapshot.
func (c *Controller) Input() FrameInput {
	if c == nil {
		return FrameInput{}
	}
	return c.input
}
