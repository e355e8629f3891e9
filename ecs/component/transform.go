package component

// Transform is an entity's centre in world units, y up.
type Transform struct {
	X          float64
	Y          float64
	FacingLeft bool
}

var TransformComponent = NewNamedComponent[Transform]("transform")
