package orb

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownKind = errors.New("orb: unknown ability kind")

// Kind is the ability an orb grants. The set is closed.
type Kind uint8

const (
	KindNone Kind = iota
	KindJump
	KindDash
	KindReset
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindJump:
		return "jump"
	case KindDash:
		return "dash"
	case KindReset:
		return "reset"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ParseKind parses the lower-case names produced by String.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return KindNone, nil
	case "jump":
		return KindJump, nil
	case "dash":
		return KindDash, nil
	case "reset":
		return KindReset, nil
	default:
		return KindNone, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// DashParams is the dash displacement a Dash orb grants.
type DashParams struct {
	Distance float64 `yaml:"dash_distance"`
	Speed    float64 `yaml:"dash_speed"`
	Cooldown float64 `yaml:"dash_cooldown"`
}

// Duration is how long a dash with these params lasts.
func (p DashParams) Duration() float64 {
	if p.Speed <= 0 {
		return 0
	}
	return p.Distance / p.Speed
}

// Valid reports whether p can drive a dash.
func (p DashParams) Valid() bool {
	return p.Distance > 0 && p.Speed > 0
}

// Definition is the externally authored, read-only config of one orb color.
type Definition struct {
	Name         string     `yaml:"name"`
	Color        string     `yaml:"color"`
	Kind         Kind       `yaml:"ability"`
	BasePower    float64    `yaml:"base_power"`
	GrowthFactor float64    `yaml:"power_growth_factor"`
	MaxStacks    int        `yaml:"max_stacks"`
	Dash         DashParams `yaml:",inline"`
	// RespawnDelay is seconds until a collected pickup of this orb returns.
	// Zero or less means the pickup is single-use.
	RespawnDelay float64 `yaml:"respawn_delay"`
}

const (
	minGrowthFactor = 0.01
	minDashSpeed    = 0.01
	minStacks       = 1
)

// Sanitize clamps invalid tunables to safe minimums and returns the names
// of the fields it changed.
func (d *Definition) Sanitize() []string {
	if d == nil {
		return nil
	}
	var clamped []string
	if d.MaxStacks < minStacks {
		d.MaxStacks = minStacks
		clamped = append(clamped, "max_stacks")
	}
	if d.BasePower < 0 {
		d.BasePower = 0
		clamped = append(clamped, "base_power")
	}
	if d.GrowthFactor <= 0 {
		d.GrowthFactor = 1
		clamped = append(clamped, "power_growth_factor")
	} else if d.GrowthFactor < minGrowthFactor {
		d.GrowthFactor = minGrowthFactor
		clamped = append(clamped, "power_growth_factor")
	}
	if d.Kind == KindDash {
		if d.Dash.Speed < minDashSpeed {
			d.Dash.Speed = minDashSpeed
			clamped = append(clamped, "dash_speed")
		}
		if d.Dash.Distance < 0 {
			d.Dash.Distance = 0
			clamped = append(clamped, "dash_distance")
		}
		if d.Dash.Cooldown < 0 {
			d.Dash.Cooldown = 0
			clamped = append(clamped, "dash_cooldown")
		}
	}
	return clamped
}

// SameColor reports whether d and other share a color identity.
func (d *Definition) SameColor(other *Definition) bool {
	if d == nil || other == nil {
		return false
	}
	return strings.EqualFold(d.Color, other.Color)
}
