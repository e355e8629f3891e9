package component

import (
	"github.com/milk9111/orbhop/physics"
	"github.com/milk9111/orbhop/player"
)

// Player binds an entity to its simulation core and physics body.
type Player struct {
	Core *player.Coordinator
	Body *physics.Body
}

var PlayerComponent = NewNamedComponent[Player]("player")
