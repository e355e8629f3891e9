package component

// ResetRequest is a marker asking the reset system to put the player back
// at its spawn with default abilities. Hazards and the reset key add it.
type ResetRequest struct {
	Reason string
}

var ResetRequestComponent = NewNamedComponent[ResetRequest]("reset_request")
