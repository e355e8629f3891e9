package dash

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/orbhop/ability"
	"github.com/milk9111/orbhop/event"
	"github.com/milk9111/orbhop/orb"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const tick = 0.02

var greenOrb = &orb.Definition{
	Name: "green", Color: "green", Kind: orb.KindDash, GrowthFactor: 1, MaxStacks: 5,
	Dash: orb.DashParams{Distance: 5, Speed: 20, Cooldown: 0.5},
}

type fakeBody struct{ vel cp.Vector }

func (b *fakeBody) Bounds() cp.BB           { return cp.BB{L: 0, B: 0, R: 1, T: 2} }
func (b *fakeBody) Velocity() cp.Vector     { return b.vel }
func (b *fakeBody) SetVelocity(v cp.Vector) { b.vel = v }

type fakeCaster struct{ wall bool }

func (f *fakeCaster) BoxCast(cp.BB, cp.Vector, float64) bool { return f.wall }

type facing bool

func (f facing) FacingLeft() bool { return bool(f) }

type fakeCharges struct {
	n      int
	params orb.DashParams
	ok     bool
}

func (f *fakeCharges) HasDashCharge() bool { return f.n > 0 }
func (f *fakeCharges) ConsumeDashCharge() bool {
	if f.n <= 0 {
		return false
	}
	f.n--
	return true
}
func (f *fakeCharges) DashParams() (orb.DashParams, bool) { return f.params, f.ok }

func newTestSystem() (*System, *fakeBody, *fakeCaster, *ability.Collector, *event.Recorder) {
	body := &fakeBody{}
	caster := &fakeCaster{}
	abil := ability.NewCollector()
	rec := &event.Recorder{}
	s := NewSystem(body, caster, abil)
	s.SetPublisher(rec)
	return s, body, caster, abil, rec
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestDashDurationAndEndDamping(t *testing.T) {
	s, body, _, abil, rec := newTestSystem()
	abil.CollectOrb(greenOrb)
	body.vel = cp.Vector{X: 3, Y: -5}

	s.SetInput(1, true)
	s.Tick(tick)

	started, ok := rec.Last(event.KindDashStarted)
	if !ok {
		t.Fatalf("expected dash to start, got %v", rec.Events())
	}
	if d := started.(event.DashStarted).Duration; !approx(d, 0.25) {
		t.Fatalf("expected duration 0.25, got %v", d)
	}
	if body.vel != (cp.Vector{X: 20, Y: 0}) {
		t.Fatalf("expected dash velocity on the start tick, got %v", body.vel)
	}
	if abil.RemainingDashCharges() != 0 {
		t.Fatalf("expected the charge to be consumed")
	}

	ticks := 1
	for s.IsDashing() {
		s.Tick(tick)
		ticks++
		if ticks > 100 {
			t.Fatalf("dash never ended")
		}
	}
	if ticks != 13 {
		t.Fatalf("expected dash to end on tick 13, got %d", ticks)
	}
	if !approx(body.vel.X, 16) || body.vel.Y != 0 {
		t.Fatalf("expected end velocity (16, 0), got %v", body.vel)
	}
	ended, _ := rec.Last(event.KindDashEnded)
	if ended.(event.DashEnded).Blocked {
		t.Fatalf("timed end must not be reported as blocked")
	}
	if !approx(s.State().CooldownRemaining, 0.5-12*tick) {
		t.Fatalf("cooldown must tick during the dash, got %v", s.State().CooldownRemaining)
	}
}

func TestDashCooldownGatesNextStart(t *testing.T) {
	s, _, _, abil, rec := newTestSystem()
	abil.CollectOrb(greenOrb)
	abil.CollectOrb(greenOrb)

	s.SetInput(1, true)
	s.Tick(tick)
	for s.IsDashing() {
		s.Tick(tick)
	}
	rec.Drain()

	s.SetInput(1, true)
	s.Tick(tick)
	if s.IsDashing() || len(rec.Events()) != 0 {
		t.Fatalf("dash during cooldown must be ignored silently, got %v", rec.Events())
	}
	if abil.RemainingDashCharges() != 1 {
		t.Fatalf("ignored dash must keep the charge")
	}

	for s.State().CooldownRemaining > 0 {
		s.Tick(tick)
	}
	s.SetInput(1, true)
	s.Tick(tick)
	if !s.IsDashing() {
		t.Fatalf("expected dash after cooldown")
	}
}

func TestDashWhileDashingIgnored(t *testing.T) {
	s, _, _, abil, rec := newTestSystem()
	abil.CollectOrb(greenOrb)
	abil.CollectOrb(greenOrb)
	s.SetInput(1, true)
	s.Tick(tick)
	s.SetInput(-1, true)
	s.Tick(tick)

	if rec.Count(event.KindDashStarted) != 1 {
		t.Fatalf("expected a single dash start, got %v", rec.Events())
	}
	if s.State().Direction.X != 1 {
		t.Fatalf("second press must not redirect the dash")
	}
	if abil.RemainingDashCharges() != 1 {
		t.Fatalf("second press must not consume a charge")
	}
}

func TestDashWithoutChargeIsNoop(t *testing.T) {
	s, body, _, _, rec := newTestSystem()
	body.vel = cp.Vector{X: 2, Y: 1}
	s.SetInput(1, true)
	s.Tick(tick)
	if s.IsDashing() || len(rec.Events()) != 0 {
		t.Fatalf("dash without charge must be ignored, got %v", rec.Events())
	}
	if body.vel != (cp.Vector{X: 2, Y: 1}) {
		t.Fatalf("body velocity must be untouched")
	}
}

func TestDashAbortsOnWall(t *testing.T) {
	s, body, caster, abil, rec := newTestSystem()
	abil.CollectOrb(greenOrb)
	s.SetInput(1, true)
	s.Tick(tick)
	s.Tick(tick)
	s.Tick(tick)

	caster.wall = true
	s.Tick(tick)

	if s.IsDashing() {
		t.Fatalf("wall must end the dash")
	}
	ended, ok := rec.Last(event.KindDashEnded)
	if !ok || !ended.(event.DashEnded).Blocked {
		t.Fatalf("expected blocked dash end, got %v", rec.Events())
	}
	if !approx(body.vel.X, 16) {
		t.Fatalf("expected damped velocity 16, got %v", body.vel.X)
	}
}

func TestDashDirection(t *testing.T) {
	cases := []struct {
		name  string
		moveX float64
		facer Facer
		want  float64
	}{
		{"input_right", 0.5, facing(true), 1},
		{"input_left", -0.5, facing(false), -1},
		{"dead_zone_uses_facing_left", 0.05, facing(true), -1},
		{"dead_zone_uses_facing_right", -0.05, facing(false), 1},
		{"no_facer_defaults_right", 0, nil, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, body, _, abil, _ := newTestSystem()
			if tc.facer != nil {
				s.SetFacer(tc.facer)
			}
			abil.CollectOrb(greenOrb)
			s.SetInput(tc.moveX, true)
			s.Tick(tick)
			if s.State().Direction.X != tc.want || body.vel.X != tc.want*20 {
				t.Fatalf("expected direction %v, got %v (vel %v)", tc.want, s.State().Direction, body.vel)
			}
		})
	}
}

func TestDashParamsFallback(t *testing.T) {
	cases := []struct {
		name      string
		charges   *fakeCharges
		defaults  *orb.DashParams
		wantStart bool
		wantSpeed float64
	}{
		{"orb_params", &fakeCharges{n: 1, params: orb.DashParams{Distance: 3, Speed: 30}, ok: true}, &orb.DashParams{Distance: 5, Speed: 20}, true, 30},
		{"defaults", &fakeCharges{n: 1}, &orb.DashParams{Distance: 5, Speed: 20}, true, 20},
		{"invalid_orb_params_use_defaults", &fakeCharges{n: 1, params: orb.DashParams{Speed: 30}, ok: true}, &orb.DashParams{Distance: 5, Speed: 20}, true, 20},
		{"nothing_configured", &fakeCharges{n: 1}, nil, false, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := &fakeBody{}
			s := NewSystem(body, &fakeCaster{}, tc.charges)
			s.SetDefaults(tc.defaults)
			s.SetInput(1, true)
			s.Tick(tick)
			if s.IsDashing() != tc.wantStart {
				t.Fatalf("expected dashing=%v", tc.wantStart)
			}
			if !tc.wantStart {
				if tc.charges.n != 1 {
					t.Fatalf("unconfigured dash must not consume a charge")
				}
				return
			}
			if body.vel.X != tc.wantSpeed {
				t.Fatalf("expected speed %v, got %v", tc.wantSpeed, body.vel.X)
			}
		})
	}
}

func TestMissingParamsWarnsOnce(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	charges := &fakeCharges{n: 2}
	s := NewSystem(&fakeBody{}, &fakeCaster{}, charges)
	s.SetLogger(zap.New(core))

	for i := 0; i < 3; i++ {
		s.SetInput(1, true)
		s.Tick(tick)
	}
	if logs.FilterMessage("start dash: no dash params configured").Len() != 1 {
		t.Fatalf("expected one warning, got %v", logs.All())
	}
}

func TestCancel(t *testing.T) {
	s, body, _, abil, _ := newTestSystem()
	abil.CollectOrb(greenOrb)
	s.SetInput(1, true)
	s.Tick(tick)
	s.Cancel()
	if s.IsDashing() {
		t.Fatalf("cancel must stop the dash")
	}
	if body.vel.X != 20 {
		t.Fatalf("cancel must not touch the body")
	}
	if s.State().CooldownRemaining <= 0 {
		t.Fatalf("cancel keeps the cooldown")
	}
}
