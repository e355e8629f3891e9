package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/orbhop/common"
	"github.com/milk9111/orbhop/ecs"
	"github.com/milk9111/orbhop/ecs/component"
)

// CameraSystem eases the camera toward the player and keeps the view inside
// the level bounds.
type CameraSystem struct {
	bounds  cp.BB
	snapped bool
}

func NewCameraSystem(bounds cp.BB) *CameraSystem {
	return &CameraSystem{bounds: bounds}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil || cs == nil {
		return
	}
	_, cam, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return
	}
	target, ok := cs.target(w)
	if !ok {
		return
	}
	target = cs.clamp(cam, target)

	if !cs.snapped || cam.Smooth <= 0 || cam.Smooth >= 1 {
		cam.X, cam.Y = target.X, target.Y
		cs.snapped = true
		return
	}
	cam.X = common.Lerp(cam.X, target.X, cam.Smooth)
	cam.Y = common.Lerp(cam.Y, target.Y, cam.Smooth)
}

func (cs *CameraSystem) target(w *ecs.World) (cp.Vector, bool) {
	e, _, ok := ecs.First(w, component.PlayerComponent.Kind())
	if !ok {
		return cp.Vector{}, false
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return cp.Vector{}, false
	}
	return cp.Vector{X: t.X, Y: t.Y}, true
}

// clamp keeps the view inside the bounds; a level smaller than the view is
// centred on that axis.
func (cs *CameraSystem) clamp(cam *component.Camera, p cp.Vector) cp.Vector {
	if cs.bounds.R <= cs.bounds.L || cs.bounds.T <= cs.bounds.B || cam.Zoom <= 0 {
		return p
	}
	halfW := float64(cam.ScreenW) / cam.Zoom / 2
	halfH := float64(cam.ScreenH) / cam.Zoom / 2
	axis := func(v, lo, hi, half float64) float64 {
		if hi-lo <= 2*half {
			return (lo + hi) / 2
		}
		return common.Clamp(v, lo+half, hi-half)
	}
	return cp.Vector{
		X: axis(p.X, cs.bounds.L, cs.bounds.R, halfW),
		Y: axis(p.Y, cs.bounds.B, cs.bounds.T, halfH),
	}
}
