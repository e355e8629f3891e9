package orb

import (
	"errors"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseKind(t *testing.T) {
	cases := []struct {
		in   string
		want Kind
	}{
		{"jump", KindJump},
		{"Dash", KindDash},
		{" reset ", KindReset},
		{"", KindNone},
		{"none", KindNone},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := ParseKind(c.in)
			if err != nil || got != c.want {
				t.Fatalf("ParseKind(%q) = %v, %v; want %v", c.in, got, err, c.want)
			}
		})
	}

	if _, err := ParseKind("teleport"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestDefinitionYAML(t *testing.T) {
	src := `
name: green
color: green
ability: dash
max_stacks: 3
power_growth_factor: 1
dash_distance: 5
dash_speed: 20
dash_cooldown: 0.5
respawn_delay: 3
`
	var def Definition
	if err := yaml.Unmarshal([]byte(src), &def); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if def.Kind != KindDash {
		t.Fatalf("expected dash kind, got %v", def.Kind)
	}
	if def.Dash.Distance != 5 || def.Dash.Speed != 20 || def.Dash.Cooldown != 0.5 {
		t.Fatalf("unexpected dash params %+v", def.Dash)
	}
	if d := def.Dash.Duration(); d != 0.25 {
		t.Fatalf("expected 0.25s duration, got %v", d)
	}

	if err := yaml.Unmarshal([]byte("ability: warp"), &def); err == nil {
		t.Fatalf("expected error for unknown ability")
	}
}

func TestDefinitionSanitize(t *testing.T) {
	def := Definition{Kind: KindDash, MaxStacks: 0, GrowthFactor: -2, Dash: DashParams{Distance: 5, Speed: 0, Cooldown: -1}}
	clamped := def.Sanitize()
	if len(clamped) != 4 {
		t.Fatalf("expected 4 clamped fields, got %v", clamped)
	}
	if def.MaxStacks != 1 || def.GrowthFactor != 1 || def.Dash.Speed != minDashSpeed || def.Dash.Cooldown != 0 {
		t.Fatalf("unexpected sanitized definition %+v", def)
	}

	neg := Definition{Kind: KindJump, MaxStacks: 1, GrowthFactor: 1, BasePower: -1}
	if clamped := neg.Sanitize(); len(clamped) != 1 || clamped[0] != "base_power" || neg.BasePower != 0 {
		t.Fatalf("expected base_power clamped to 0, got %v %+v", clamped, neg)
	}

	ok := Definition{Kind: KindJump, MaxStacks: 5, GrowthFactor: 1.2}
	if clamped := ok.Sanitize(); len(clamped) != 0 {
		t.Fatalf("expected nothing clamped, got %v", clamped)
	}
}
