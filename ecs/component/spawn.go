package component

// Spawn is where the player (re)appears.
type Spawn struct {
	X float64
	Y float64
}

var SpawnComponent = NewNamedComponent[Spawn]("spawn")
