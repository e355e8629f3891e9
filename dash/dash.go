package dash

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/orbhop/event"
	"github.com/milk9111/orbhop/orb"
	"go.uber.org/zap"
)

const (
	// EndDamping scales horizontal velocity when a dash ends.
	EndDamping = 0.8
	// DefaultProbeDistance is how far ahead a dash looks for walls.
	DefaultProbeDistance = 0.3
	// DirectionDeadZone is the horizontal input needed to steer a dash.
	DirectionDeadZone = 0.1
)

type Body interface {
	Bounds() cp.BB
	Velocity() cp.Vector
	SetVelocity(v cp.Vector)
}

type Caster interface {
	BoxCast(bounds cp.BB, dir cp.Vector, distance float64) bool
}

// Charges is the slice of the ability collector a dash needs.
type Charges interface {
	HasDashCharge() bool
	ConsumeDashCharge() bool
	DashParams() (orb.DashParams, bool)
}

// Facer reports the character's facing when there is no steering input.
type Facer interface {
	FacingLeft() bool
}

// State is the dash sub-system's state.
type State struct {
	Dashing           bool
	Direction         cp.Vector
	RemainingDuration float64
	CooldownRemaining float64
}

// System runs timed, collision-aware horizontal dashes. While a dash is
// active it owns the body's velocity.
type System struct {
	body    Body
	caster  Caster
	charges Charges
	facer   Facer

	defaults      *orb.DashParams
	probeDistance float64

	pub event.Publisher
	log *zap.Logger

	state     State
	params    orb.DashParams
	requested bool
	moveX     float64

	warnedConfig bool
	warnedParams bool
}

func NewSystem(body Body, caster Caster, charges Charges) *System {
	return &System{
		body:          body,
		caster:        caster,
		charges:       charges,
		probeDistance: DefaultProbeDistance,
		log:           zap.NewNop(),
	}
}

func (s *System) SetFacer(f Facer) {
	if s == nil {
		return
	}
	s.facer = f
}

// SetDefaults sets the params used when no Dash orb has provided any.
func (s *System) SetDefaults(p *orb.DashParams) {
	if s == nil {
		return
	}
	s.defaults = p
	s.warnedParams = false
}

func (s *System) SetProbeDistance(d float64) {
	if s == nil || d < 0 {
		return
	}
	s.probeDistance = d
}

func (s *System) SetPublisher(pub event.Publisher) {
	if s == nil {
		return
	}
	s.pub = pub
}

func (s *System) SetLogger(log *zap.Logger) {
	if s == nil || log == nil {
		return
	}
	s.log = log.Named("dash")
}

// SetInput stores the horizontal axis and latches the dash-pressed edge
// until the next tick.
func (s *System) SetInput(moveX float64, dashDown bool) {
	if s == nil {
		return
	}
	s.moveX = moveX
	if dashDown {
		s.requested = true
	}
}

// Tick advances cooldown, starts a requested dash and moves an active one.
func (s *System) Tick(dt float64) {
	if s == nil || dt <= 0 {
		return
	}

	if s.state.CooldownRemaining > 0 {
		s.state.CooldownRemaining = math.Max(0, s.state.CooldownRemaining-dt)
	}

	if s.requested {
		s.requested = false
		s.tryStart()
	}

	if s.state.Dashing {
		s.update(dt)
	}
}

func (s *System) tryStart() {
	if s.state.Dashing || s.state.CooldownRemaining > 0 {
		return
	}
	if s.charges == nil || !s.charges.HasDashCharge() {
		return
	}
	if s.body == nil || s.caster == nil {
		if !s.warnedConfig {
			s.warnedConfig = true
			s.log.Warn("start dash: missing body or caster")
		}
		return
	}

	params, ok := s.resolveParams()
	if !ok {
		if !s.warnedParams {
			s.warnedParams = true
			s.log.Warn("start dash: no dash params configured")
		}
		return
	}
	if !s.charges.ConsumeDashCharge() {
		return
	}

	s.params = params
	s.state = State{
		Dashing:           true,
		Direction:         s.direction(),
		RemainingDuration: params.Duration(),
		CooldownRemaining: params.Cooldown,
	}

	s.log.Debug("dash started",
		zap.Float64("dir", s.state.Direction.X),
		zap.Float64("duration", s.state.RemainingDuration),
		zap.Float64("speed", params.Speed),
	)
	s.publish(event.DashStarted{DirectionX: s.state.Direction.X, Duration: s.state.RemainingDuration})
}

func (s *System) resolveParams() (orb.DashParams, bool) {
	if p, ok := s.charges.DashParams(); ok && p.Valid() {
		return p, true
	}
	if s.defaults != nil && s.defaults.Valid() {
		return *s.defaults, true
	}
	return orb.DashParams{}, false
}

func (s *System) direction() cp.Vector {
	if math.Abs(s.moveX) > DirectionDeadZone {
		if s.moveX < 0 {
			return cp.Vector{X: -1}
		}
		return cp.Vector{X: 1}
	}
	if s.facer != nil && s.facer.FacingLeft() {
		return cp.Vector{X: -1}
	}
	return cp.Vector{X: 1}
}

func (s *System) update(dt float64) {
	s.state.RemainingDuration -= dt
	if s.state.RemainingDuration <= 0 {
		s.end(false)
		return
	}
	if s.caster.BoxCast(s.body.Bounds(), s.state.Direction, s.probeDistance) {
		s.end(true)
		return
	}
	s.body.SetVelocity(s.state.Direction.Mult(s.params.Speed))
}

func (s *System) end(blocked bool) {
	v := s.body.Velocity()
	v.X *= EndDamping
	s.body.SetVelocity(v)

	s.state.Dashing = false
	s.state.RemainingDuration = 0

	s.log.Debug("dash ended", zap.Bool("blocked", blocked), zap.Float64("vx", v.X))
	s.publish(event.DashEnded{Blocked: blocked})
}

// Cancel drops an active dash and any pending request without touching the
// body. Cooldown is kept.
func (s *System) Cancel() {
	if s == nil {
		return
	}
	s.requested = false
	s.state.Dashing = false
	s.state.RemainingDuration = 0
}

func (s *System) publish(evt event.Event) {
	if s.pub == nil {
		return
	}
	s.pub.Publish(evt)
}

func (s *System) IsDashing() bool {
	return s != nil && s.state.Dashing
}

func (s *System) State() State {
	if s == nil {
		return State{}
	}
	return s.state
}

// Params returns the params of the current or last dash.
func (s *System) Params() orb.DashParams {
	if s == nil {
		return orb.DashParams{}
	}
	return s.params
}
