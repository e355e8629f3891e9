package component

// Input stores per-frame input state for an entity. Edge flags (JumpDown,
// DashDown, ResetDown) are true only on the frame the button went down.
type Input struct {
	MoveX     float64
	MoveY     float64
	JumpDown  bool
	JumpHeld  bool
	DashDown  bool
	ResetDown bool
}

var InputComponent = NewNamedComponent[Input]("input")
