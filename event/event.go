package event

import "github.com/milk9111/orbhop/orb"

// Kind identifies an event type.
type Kind string

const (
	KindGroundedChanged        Kind = "grounded_changed"
	KindJumped                 Kind = "jumped"
	KindDashStarted            Kind = "dash_started"
	KindDashEnded              Kind = "dash_ended"
	KindDashChargeCountChanged Kind = "dash_charge_count_changed"
	KindAbilityStacksChanged   Kind = "ability_stacks_changed"
	KindOrbCollected           Kind = "orb_collected"
	KindPlayerResetToDefault   Kind = "player_reset_to_default"
)

// Event is a payload published to collaborators (UI, audio, sprite).
type Event interface {
	Kind() Kind
}

type GroundedChanged struct {
	Grounded    bool
	ImpactSpeed float64
}

type Jumped struct {
	Power    float64
	AirJump  bool
	Buffered bool
}

type DashStarted struct {
	DirectionX float64
	Duration   float64
}

type DashEnded struct {
	// Blocked is true when the dash was cut short by a wall.
	Blocked bool
}

type DashChargeCountChanged struct {
	Remaining int
}

type AbilityStacksChanged struct {
	AirJumps    int
	DashCharges int
}

type OrbCollected struct {
	Definition orb.Definition
	StackCount int
}

type PlayerResetToDefault struct{}

func (GroundedChanged) Kind() Kind        { return KindGroundedChanged }
func (Jumped) Kind() Kind                 { return KindJumped }
func (DashStarted) Kind() Kind            { return KindDashStarted }
func (DashEnded) Kind() Kind              { return KindDashEnded }
func (DashChargeCountChanged) Kind() Kind { return KindDashChargeCountChanged }
func (AbilityStacksChanged) Kind() Kind   { return KindAbilityStacksChanged }
func (OrbCollected) Kind() Kind           { return KindOrbCollected }
func (PlayerResetToDefault) Kind() Kind   { return KindPlayerResetToDefault }
