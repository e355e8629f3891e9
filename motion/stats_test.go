package motion

import (
	"testing"

	"github.com/jakecoffman/cp"
)

func TestSanitize(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Stats)
		clamped []string
		check   func(Stats) bool
	}{
		{
			name:   "defaults_untouched",
			mutate: func(*Stats) {},
			check:  func(s Stats) bool { return s == DefaultStats() },
		},
		{
			name:    "negative_speed",
			mutate:  func(s *Stats) { s.MaxSpeed = -1 },
			clamped: []string{"max_speed"},
			check:   func(s Stats) bool { return s.MaxSpeed == 0 },
		},
		{
			name:    "positive_grounding_force_flips",
			mutate:  func(s *Stats) { s.GroundingForce = 4 },
			clamped: []string{"grounding_force"},
			check:   func(s Stats) bool { return s.GroundingForce == -4 },
		},
		{
			name:    "zero_grounder_distance",
			mutate:  func(s *Stats) { s.GrounderDistance = 0 },
			clamped: []string{"grounder_distance"},
			check:   func(s Stats) bool { return s.GrounderDistance == minGrounderDistance },
		},
		{
			name:    "gravity_modifier_below_one",
			mutate:  func(s *Stats) { s.JumpEndEarlyGravityModifier = 0.5 },
			clamped: []string{"jump_end_early_gravity_modifier"},
			check:   func(s Stats) bool { return s.JumpEndEarlyGravityModifier == 1 },
		},
		{
			name: "dash_defaults",
			mutate: func(s *Stats) {
				s.Dash.Distance = -2
				s.Dash.Speed = 0
			},
			clamped: []string{"dash.dash_distance", "dash.dash_speed"},
			check:   func(s Stats) bool { return s.Dash.Distance == 0 && s.Dash.Speed == minDashSpeed },
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := DefaultStats()
			tc.mutate(&s)
			got := s.Sanitize()
			if len(got) != len(tc.clamped) {
				t.Fatalf("expected clamped %v, got %v", tc.clamped, got)
			}
			for i := range got {
				if got[i] != tc.clamped[i] {
					t.Fatalf("expected clamped %v, got %v", tc.clamped, got)
				}
			}
			if !tc.check(s) {
				t.Fatalf("unexpected stats after sanitize: %+v", s)
			}
		})
	}
}

func TestSnap(t *testing.T) {
	stats := DefaultStats()
	raw := DefaultStats()
	raw.SnapInput = false

	cases := []struct {
		name  string
		stats *Stats
		in    cp.Vector
		want  cp.Vector
	}{
		{"inside_dead_zone", &stats, cp.Vector{X: 0.05, Y: 0.2}, cp.Vector{}},
		{"snaps_to_sign", &stats, cp.Vector{X: -0.4, Y: 0.9}, cp.Vector{X: -1, Y: 1}},
		{"snap_disabled", &raw, cp.Vector{X: 0.05, Y: -0.4}, cp.Vector{X: 0.05, Y: -0.4}},
		{"nil_stats", nil, cp.Vector{X: 0.3}, cp.Vector{X: 0.3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FrameInput{Move: tc.in, JumpDown: true}.Snap(tc.stats)
			if got.Move != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got.Move)
			}
			if !got.JumpDown {
				t.Fatalf("snap must keep buttons")
			}
		})
	}
}
