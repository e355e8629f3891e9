package motion

import "github.com/milk9111/orbhop/orb"

// Stats are the tunables of the motion controller. Units are world units
// and seconds, y up.
type Stats struct {
	// Input
	SnapInput                   bool    `yaml:"snap_input"`
	HorizontalDeadZoneThreshold float64 `yaml:"horizontal_dead_zone"`
	VerticalDeadZoneThreshold   float64 `yaml:"vertical_dead_zone"`

	// Movement
	MaxSpeed           float64 `yaml:"max_speed"`
	Acceleration       float64 `yaml:"acceleration"`
	GroundDeceleration float64 `yaml:"ground_deceleration"`
	AirDeceleration    float64 `yaml:"air_deceleration"`
	GroundingForce     float64 `yaml:"grounding_force"`
	GrounderDistance   float64 `yaml:"grounder_distance"`

	// Jump
	JumpPower                   float64 `yaml:"jump_power"`
	MaxFallSpeed                float64 `yaml:"max_fall_speed"`
	FallAcceleration            float64 `yaml:"fall_acceleration"`
	JumpEndEarlyGravityModifier float64 `yaml:"jump_end_early_gravity_modifier"`
	CoyoteTime                  float64 `yaml:"coyote_time"`
	JumpBuffer                  float64 `yaml:"jump_buffer"`

	// Dash defaults, used until a Dash orb provides its own.
	Dash orb.DashParams `yaml:"dash"`
	// DashProbeDistance is how far ahead a dash looks for walls.
	DashProbeDistance float64 `yaml:"dash_probe_distance"`
	// ClearDashOnLanding also drops dash charges on landing.
	ClearDashOnLanding bool `yaml:"clear_dash_on_landing"`
}

// DefaultStats returns the stock tuning.
func DefaultStats() Stats {
	return Stats{
		SnapInput:                   true,
		HorizontalDeadZoneThreshold: 0.1,
		VerticalDeadZoneThreshold:   0.3,
		MaxSpeed:                    14,
		Acceleration:                120,
		GroundDeceleration:          60,
		AirDeceleration:             30,
		GroundingForce:              -1.5,
		GrounderDistance:            0.05,
		JumpPower:                   36,
		MaxFallSpeed:                40,
		FallAcceleration:            110,
		JumpEndEarlyGravityModifier: 3,
		CoyoteTime:                  0.15,
		JumpBuffer:                  0.2,
		Dash:                        orb.DashParams{Distance: 5, Speed: 20, Cooldown: 0.5},
		DashProbeDistance:           0.3,
	}
}

const (
	minGrounderDistance = 0.001
	minDashSpeed        = 0.01
)

// Sanitize clamps invalid tunables to safe minimums and returns the names
// of the fields it changed.
func (s *Stats) Sanitize() []string {
	if s == nil {
		return nil
	}
	var clamped []string
	nonNegative := func(name string, v *float64) {
		if *v < 0 {
			*v = 0
			clamped = append(clamped, name)
		}
	}
	nonNegative("max_speed", &s.MaxSpeed)
	nonNegative("acceleration", &s.Acceleration)
	nonNegative("ground_deceleration", &s.GroundDeceleration)
	nonNegative("air_deceleration", &s.AirDeceleration)
	nonNegative("jump_power", &s.JumpPower)
	nonNegative("max_fall_speed", &s.MaxFallSpeed)
	nonNegative("fall_acceleration", &s.FallAcceleration)
	nonNegative("coyote_time", &s.CoyoteTime)
	nonNegative("jump_buffer", &s.JumpBuffer)
	nonNegative("horizontal_dead_zone", &s.HorizontalDeadZoneThreshold)
	nonNegative("vertical_dead_zone", &s.VerticalDeadZoneThreshold)
	nonNegative("dash_probe_distance", &s.DashProbeDistance)
	nonNegative("dash.dash_distance", &s.Dash.Distance)
	nonNegative("dash.dash_cooldown", &s.Dash.Cooldown)

	if s.GroundingForce > 0 {
		s.GroundingForce = -s.GroundingForce
		clamped = append(clamped, "grounding_force")
	}
	if s.GrounderDistance < minGrounderDistance {
		s.GrounderDistance = minGrounderDistance
		clamped = append(clamped, "grounder_distance")
	}
	if s.JumpEndEarlyGravityModifier < 1 {
		s.JumpEndEarlyGravityModifier = 1
		clamped = append(clamped, "jump_end_early_gravity_modifier")
	}
	if s.Dash.Speed < minDashSpeed {
		s.Dash.Speed = minDashSpeed
		clamped = append(clamped, "dash.dash_speed")
	}
	return clamped
}
