package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/orbhop/orb"
)

// OrbPickup is a level-placed orb. A collected orb goes inactive and comes
// back after its definition's respawn delay; a non-positive delay makes it
// single-use.
type OrbPickup struct {
	Definition *orb.Definition
	Bounds     cp.BB
	Active     bool
	RespawnIn  float64
	BobPhase   float64
}

var OrbPickupComponent = NewNamedComponent[OrbPickup]("orb_pickup")
