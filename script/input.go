package script

import (
	"errors"
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/orbhop/motion"
	"github.com/milk9111/orbhop/prefabs"
	"go.uber.org/zap"
)

var ErrNoScript = errors.New("script: no input script")

// The user script defines input(engine, state); this runs it once.
const dispatch = `
input(__engine, __state)
`

// Probe exposes read-only simulation state to scripts.
type Probe interface {
	Grounded() bool
	Position() cp.Vector
	FacingLeft() bool
}

// Frame is one frame of scripted input.
type Frame struct {
	Input motion.FrameInput
	Reset bool
}

// InputScript drives the player from a tengo script, one call per frame.
type InputScript struct {
	name     string
	compiled *tengo.Compiled
	state    *tengo.Map
	frame    int
	out      Frame
	log      *zap.Logger
}

// Load compiles a script from prefabs/scripts.
func Load(name string) (*InputScript, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNoScript
	}
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", name, err)
	}
	return Compile(name, src)
}

func Compile(name string, src []byte) (*InputScript, error) {
	if len(strings.TrimSpace(string(src))) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrNoScript, name)
	}

	script := tengo.NewScript([]byte(string(src) + "\n" + dispatch))
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap("math", "text", "fmt"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}
	return &InputScript{
		name:     name,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
		log:      zap.NewNop(),
	}, nil
}

func (s *InputScript) SetLogger(log *zap.Logger) {
	if s == nil || log == nil {
		return
	}
	s.log = log.Named("script").With(zap.String("script", s.name))
}

func (s *InputScript) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

// Frame is the number of frames sampled so far.
func (s *InputScript) Frame() int {
	if s == nil {
		return 0
	}
	return s.frame
}

// Next runs the script for the next frame at simulation time t.
func (s *InputScript) Next(t float64, probe Probe) (Frame, error) {
	if s == nil || s.compiled == nil {
		return Frame{}, ErrNoScript
	}
	s.out = Frame{}
	if err := s.compiled.Set("__engine", s.engine(t, probe)); err != nil {
		return Frame{}, err
	}
	if err := s.compiled.Set("__state", s.state); err != nil {
		return Frame{}, err
	}
	if err := s.compiled.Run(); err != nil {
		return Frame{}, fmt.Errorf("script: %s frame %d: %w", s.name, s.frame, err)
	}
	s.frame++
	return s.out, nil
}

func (s *InputScript) engine(t float64, probe Probe) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}
	frame := s.frame

	values["frame"] = &tengo.UserFunction{Name: "frame", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(frame)}, nil
	}}

	values["time"] = &tengo.UserFunction{Name: "time", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: t}, nil
	}}

	values["move"] = &tengo.UserFunction{Name: "move", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		x, _ := tengo.ToFloat64(args[0])
		var y float64
		if len(args) > 1 {
			y, _ = tengo.ToFloat64(args[1])
		}
		s.out.Input.Move = cp.Vector{X: x, Y: y}
		return tengo.TrueValue, nil
	}}

	values["press"] = &tengo.UserFunction{Name: "press", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(s.button(args, true)), nil
	}}

	values["hold"] = &tengo.UserFunction{Name: "hold", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(s.button(args, false)), nil
	}}

	values["grounded"] = &tengo.UserFunction{Name: "grounded", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(probe != nil && probe.Grounded()), nil
	}}

	values["facing_left"] = &tengo.UserFunction{Name: "facing_left", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(probe != nil && probe.FacingLeft()), nil
	}}

	values["position"] = &tengo.UserFunction{Name: "position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		var p cp.Vector
		if probe != nil {
			p = probe.Position()
		}
		return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: p.X}, &tengo.Float{Value: p.Y}}}, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, arg := range args {
			str, _ := tengo.ToString(arg)
			parts = append(parts, str)
		}
		s.log.Debug(strings.Join(parts, " "), zap.Int("frame", frame))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

// button applies press (edge + held) or hold (held only) for one button.
func (s *InputScript) button(args []tengo.Object, edge bool) bool {
	if len(args) < 1 {
		return false
	}
	name, _ := tengo.ToString(args[0])
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "jump":
		s.out.Input.JumpHeld = true
		if edge {
			s.out.Input.JumpDown = true
		}
	case "dash":
		if edge {
			s.out.Input.DashDown = true
		}
	case "reset":
		if edge {
			s.out.Reset = true
		}
	default:
		return false
	}
	return true
}

func boolObject(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}
