package script

import (
	"errors"
	"testing"

	"github.com/jakecoffman/cp"
)

type fakeProbe struct {
	grounded bool
	pos      cp.Vector
}

func (p fakeProbe) Grounded() bool      { return p.grounded }
func (p fakeProbe) Position() cp.Vector { return p.pos }
func (p fakeProbe) FacingLeft() bool    { return false }

const hopper = `
input := func(engine, state) {
	engine.move(-1, 0.5)
	if engine.frame() == 2 {
		engine.press("jump")
	} else if engine.frame() == 3 {
		engine.hold("jump")
	}
	if engine.grounded() && engine.position()[0] > 4 {
		engine.press("dash")
	}
	if is_undefined(state.calls) {
		state.calls = 0
	}
	state.calls += 1
	if state.calls == 5 {
		engine.press("reset")
	}
}
`

func TestScriptFrames(t *testing.T) {
	s, err := Compile("hopper", []byte(hopper))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	probe := fakeProbe{}
	var frames []Frame
	for i := 0; i < 5; i++ {
		if i == 1 {
			probe = fakeProbe{grounded: true, pos: cp.Vector{X: 5}}
		} else {
			probe = fakeProbe{}
		}
		f, err := s.Next(float64(i)/60, probe)
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		frames = append(frames, f)
	}

	if frames[0].Input.Move != (cp.Vector{X: -1, Y: 0.5}) {
		t.Fatalf("unexpected move %v", frames[0].Input.Move)
	}
	if !frames[1].Input.DashDown || frames[0].Input.DashDown {
		t.Fatalf("dash only when grounded past x=4")
	}
	if !frames[2].Input.JumpDown || !frames[2].Input.JumpHeld {
		t.Fatalf("press must set down and held: %+v", frames[2])
	}
	if frames[3].Input.JumpDown || !frames[3].Input.JumpHeld {
		t.Fatalf("hold must set held only: %+v", frames[3])
	}
	if frames[4].Input.JumpHeld {
		t.Fatalf("buttons must not stick between frames")
	}
	if !frames[4].Reset {
		t.Fatalf("state must persist between frames")
	}
	if s.Frame() != 5 {
		t.Fatalf("expected 5 frames, got %d", s.Frame())
	}
}

func TestCompileErrors(t *testing.T) {
	if _, err := Compile("empty", []byte("  ")); !errors.Is(err, ErrNoScript) {
		t.Fatalf("expected ErrNoScript, got %v", err)
	}
	if _, err := Compile("broken", []byte("input := func(")); err == nil {
		t.Fatalf("expected a compile error")
	}
	if _, err := Load(""); !errors.Is(err, ErrNoScript) {
		t.Fatalf("expected ErrNoScript, got %v", err)
	}
	var s *InputScript
	if _, err := s.Next(0, nil); !errors.Is(err, ErrNoScript) {
		t.Fatalf("nil script should report ErrNoScript")
	}
}

func TestRuntimeError(t *testing.T) {
	s, err := Compile("boom", []byte(`input := func(engine, state) { x := 1 / 0 }`))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if _, err := s.Next(0, nil); err == nil {
		t.Fatalf("expected runtime error")
	}
}

func TestEmbeddedScriptsCompile(t *testing.T) {
	for _, name := range []string{"demo", "idle.tengo"} {
		s, err := Load(name)
		if err != nil {
			t.Fatalf("load %s: %v", name, err)
		}
		if _, err := s.Next(0, nil); err != nil {
			t.Fatalf("run %s: %v", name, err)
		}
	}
}
