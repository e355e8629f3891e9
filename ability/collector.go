package ability

import (
	"math"

	"github.com/milk9111/orbhop/event"
	"github.com/milk9111/orbhop/orb"
	"go.uber.org/zap"
)

// Stack is a snapshot of the collector's ability state.
type Stack struct {
	ActiveKind           orb.Kind
	ActiveColor          string
	StackCount           int
	RemainingAirJumps    int
	RemainingDashCharges int
}

// Collector turns collected orbs into ability stacks and jump/dash charges.
//
// Charges are additive: every Jump orb adds one air jump and every Dash orb
// adds one dash charge, independent of the clamped stack count.
type Collector struct {
	active      *orb.Definition
	dashDef     *orb.Definition
	stackCount  int
	airJumps    int
	dashCharges int
	everOrb     bool

	// clearDashOnLanding selects the landing policy that also drops dash
	// charges. Off by default: dash charges persist until spent or reset.
	clearDashOnLanding bool

	pub event.Publisher
	log *zap.Logger
}

func NewCollector() *Collector {
	return &Collector{log: zap.NewNop()}
}

func (c *Collector) SetPublisher(pub event.Publisher) {
	if c == nil {
		return
	}
	c.pub = pub
}

func (c *Collector) SetLogger(log *zap.Logger) {
	if c == nil || log == nil {
		return
	}
	c.log = log.Named("ability")
}

// SetClearDashOnLanding switches the landing reset policy.
func (c *Collector) SetClearDashOnLanding(v bool) {
	if c == nil {
		return
	}
	c.clearDashOnLanding = v
}

// CollectOrb applies one orb pickup.
func (c *Collector) CollectOrb(def *orb.Definition) {
	if c == nil {
		return
	}
	if def == nil {
		c.log.Warn("collect orb: missing definition")
		return
	}

	if def.Kind == orb.KindReset {
		c.ResetToDefault()
		c.log.Debug("reset orb collected", zap.String("orb", def.Name))
		return
	}

	c.everOrb = true
	if c.active == nil || !c.active.SameColor(def) {
		c.active = def
		c.stackCount = 1
	} else {
		maxStacks := def.MaxStacks
		if maxStacks < 1 {
			maxStacks = 1
		}
		c.stackCount = min(c.stackCount+1, maxStacks)
	}

	switch def.Kind {
	case orb.KindJump:
		c.airJumps++
	case orb.KindDash:
		c.dashCharges++
		c.dashDef = def
	}

	c.log.Debug("orb collected",
		zap.String("orb", def.Name),
		zap.Stringer("kind", def.Kind),
		zap.Int("stacks", c.stackCount),
		zap.Int("air_jumps", c.airJumps),
		zap.Int("dash_charges", c.dashCharges),
	)

	c.publish(event.OrbCollected{Definition: *def, StackCount: c.stackCount})
	if def.Kind == orb.KindDash {
		c.publish(event.DashChargeCountChanged{Remaining: c.dashCharges})
	}
	c.publishStacks()
}

// ConsumeAirJump spends one air jump. It reports false and publishes nothing
// when no charge is left.
func (c *Collector) ConsumeAirJump() bool {
	if c == nil || c.airJumps <= 0 {
		return false
	}
	c.airJumps--
	c.publishStacks()
	return true
}

// ConsumeDashCharge spends one dash charge. It reports false and publishes
// nothing when no charge is left.
func (c *Collector) ConsumeDashCharge() bool {
	if c == nil || c.dashCharges <= 0 {
		return false
	}
	c.dashCharges--
	c.publish(event.DashChargeCountChanged{Remaining: c.dashCharges})
	c.publishStacks()
	return true
}

// ClearGroundedCharges is the landing reset. It always clears air jumps and
// clears dash charges only under the clear-dash-on-landing policy.
func (c *Collector) ClearGroundedCharges() {
	if c == nil {
		return
	}
	changed := c.airJumps != 0
	c.airJumps = 0
	if c.clearDashOnLanding && c.dashCharges != 0 {
		c.dashCharges = 0
		changed = true
		c.publish(event.DashChargeCountChanged{Remaining: 0})
	}
	if changed {
		c.publishStacks()
	}
}

// ResetToDefault clears everything: active ability, stacks and charges.
func (c *Collector) ResetToDefault() {
	if c == nil {
		return
	}
	c.active = nil
	c.dashDef = nil
	c.stackCount = 0
	c.airJumps = 0
	c.dashCharges = 0
	c.everOrb = false

	c.publish(event.PlayerResetToDefault{})
	c.publish(event.DashChargeCountChanged{Remaining: 0})
	c.publishStacks()
}

// JumpPowerMultiplier is growth^stacks while a Jump orb is active, else 1.
func (c *Collector) JumpPowerMultiplier() float64 {
	if c == nil || c.active == nil || c.active.Kind != orb.KindJump {
		return 1
	}
	return math.Pow(c.active.GrowthFactor, float64(c.stackCount))
}

// JumpPowerScale is the active Jump orb's base power, a factor on the stock
// jump power. An unset base power counts as 1.
func (c *Collector) JumpPowerScale() float64 {
	if c == nil || c.active == nil || c.active.Kind != orb.KindJump || c.active.BasePower <= 0 {
		return 1
	}
	return c.active.BasePower
}

func (c *Collector) CanAirJump() bool {
	return c != nil && c.airJumps > 0
}

func (c *Collector) HasDashCharge() bool {
	return c != nil && c.dashCharges > 0
}

// DashParams returns the params of the most recently collected Dash orb.
func (c *Collector) DashParams() (orb.DashParams, bool) {
	if c == nil || c.dashDef == nil {
		return orb.DashParams{}, false
	}
	return c.dashDef.Dash, true
}

func (c *Collector) ActiveKind() orb.Kind {
	if c == nil || c.active == nil {
		return orb.KindNone
	}
	return c.active.Kind
}

// ActiveDefinition returns the definition currently driving the stack, or nil.
func (c *Collector) ActiveDefinition() *orb.Definition {
	if c == nil {
		return nil
	}
	return c.active
}

func (c *Collector) StackCount() int {
	if c == nil {
		return 0
	}
	return c.stackCount
}

func (c *Collector) RemainingAirJumps() int {
	if c == nil {
		return 0
	}
	return c.airJumps
}

func (c *Collector) RemainingDashCharges() int {
	if c == nil {
		return 0
	}
	return c.dashCharges
}

// HasEverCollected is false until the first non-reset orb and after a reset.
func (c *Collector) HasEverCollected() bool {
	return c != nil && c.everOrb
}

func (c *Collector) Snapshot() Stack {
	if c == nil {
		return Stack{}
	}
	s := Stack{
		ActiveKind:           c.ActiveKind(),
		StackCount:           c.stackCount,
		RemainingAirJumps:    c.airJumps,
		RemainingDashCharges: c.dashCharges,
	}
	if c.active != nil {
		s.ActiveColor = c.active.Color
	}
	return s
}

func (c *Collector) publishStacks() {
	c.publish(event.AbilityStacksChanged{AirJumps: c.airJumps, DashCharges: c.dashCharges})
}

func (c *Collector) publish(evt event.Event) {
	if c.pub == nil {
		return
	}
	c.pub.Publish(evt)
}
