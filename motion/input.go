package motion

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/orbhop/common"
)

// FrameInput is the immutable input snapshot taken once per rendered frame.
type FrameInput struct {
	Move     cp.Vector
	JumpDown bool
	JumpHeld bool
	DashDown bool
}

// Snap zeroes axes inside their dead zone and snaps the rest to their sign.
func (in FrameInput) Snap(stats *Stats) FrameInput {
	if stats == nil || !stats.SnapInput {
		return in
	}
	in.Move.X = snapAxis(in.Move.X, stats.HorizontalDeadZoneThreshold)
	in.Move.Y = snapAxis(in.Move.Y, stats.VerticalDeadZoneThreshold)
	return in
}

func snapAxis(v, deadZone float64) float64 {
	if math.Abs(v) < deadZone {
		return 0
	}
	return common.Sign(v)
}
