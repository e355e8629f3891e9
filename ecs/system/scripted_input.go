package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/orbhop/ecs"
	"github.com/milk9111/orbhop/ecs/component"
	"github.com/milk9111/orbhop/script"
	"go.uber.org/zap"
)

// ScriptedInputSystem feeds the player Input from a tengo script, one
// script call per frame. A failing script stops driving input.
type ScriptedInputSystem struct {
	script *script.InputScript
	failed bool
	err    error
	root   *zap.Logger
	log    *zap.Logger
}

func NewScriptedInputSystem(s *script.InputScript) *ScriptedInputSystem {
	return &ScriptedInputSystem{script: s, root: zap.NewNop(), log: zap.NewNop()}
}

func (s *ScriptedInputSystem) SetLogger(log *zap.Logger) {
	if s == nil || log == nil {
		return
	}
	s.root = log
	s.log = log.Named("script")
	s.script.SetLogger(log)
}

// Err is the error that stopped the script, if any.
func (s *ScriptedInputSystem) Err() error {
	if s == nil {
		return nil
	}
	return s.err
}

func (s *ScriptedInputSystem) Update(w *ecs.World) {
	if w == nil || s == nil || s.failed {
		return
	}
	ecs.ForEach2(w, component.PlayerComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, p *component.Player, input *component.Input) {
		if s.failed {
			return
		}
		frame, err := s.script.Next(p.Core.Motion().Time(), playerProbe{p})
		if err != nil {
			s.failed = true
			s.err = err
			*input = component.Input{}
			s.log.Warn("input script stopped", zap.String("script", s.script.Name()), zap.Error(err))
			return
		}
		*input = component.Input{
			MoveX:     frame.Input.Move.X,
			MoveY:     frame.Input.Move.Y,
			JumpDown:  frame.Input.JumpDown,
			JumpHeld:  frame.Input.JumpHeld,
			DashDown:  frame.Input.DashDown,
			ResetDown: frame.Reset,
		}
	})
}

type playerProbe struct {
	p *component.Player
}

func (pp playerProbe) Grounded() bool      { return pp.p.Core.Motion().Grounded() }
func (pp playerProbe) Position() cp.Vector { return pp.p.Body.Position() }
func (pp playerProbe) FacingLeft() bool    { return pp.p.Core.Motion().FacingLeft() }

// SetScript swaps the running script, clearing a previous failure.
func (s *ScriptedInputSystem) SetScript(next *script.InputScript) {
	if s == nil || next == nil {
		return
	}
	next.SetLogger(s.root)
	s.script = next
	s.failed = false
	s.err = nil
}

func (s *ScriptedInputSystem) Script() *script.InputScript {
	if s == nil {
		return nil
	}
	return s.script
}
