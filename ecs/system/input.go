package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/orbhop/ecs"
	"github.com/milk9111/orbhop/ecs/component"
)

const stickDeadzone = 0.2

// Sampler reads the devices once per frame.
type Sampler func() component.Input

// InputSystem writes the sampled keyboard and gamepad state into every
// Input component.
type InputSystem struct {
	sample Sampler
}

func NewInputSystem() *InputSystem {
	return &InputSystem{sample: SampleDevices}
}

// NewInputSystemWith uses sample instead of the real devices.
func NewInputSystemWith(sample Sampler) *InputSystem {
	return &InputSystem{sample: sample}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil || i == nil || i.sample == nil {
		return
	}
	in := i.sample()
	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		*input = in
	})
}

// SampleDevices reads the keyboard and the first gamepad. The vertical axis
// is y up.
func SampleDevices() component.Input {
	var in component.Input

	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		in.MoveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		in.MoveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		in.MoveY += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		in.MoveY -= 1
	}

	in.JumpHeld = ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsKeyPressed(ebiten.KeyK)
	in.JumpDown = inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyK)
	in.DashDown = inpututil.IsKeyJustPressed(ebiten.KeyShiftLeft) || inpututil.IsKeyJustPressed(ebiten.KeyJ)
	in.ResetDown = inpututil.IsKeyJustPressed(ebiten.KeyR)

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			return in
		}
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if math.Abs(lx) > stickDeadzone {
			in.MoveX = lx
		}
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Abs(ly) > stickDeadzone {
			in.MoveY = -ly
		}

		in.JumpHeld = in.JumpHeld || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		in.JumpDown = in.JumpDown || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		in.DashDown = in.DashDown ||
			inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightLeft) ||
			inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonFrontBottomRight)
		in.ResetDown = in.ResetDown || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterLeft)
	}
	return in
}
