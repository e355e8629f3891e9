package component

import "image/color"

// Appearance is the flat-colour box or disc an entity is drawn as.
type Appearance struct {
	Width  float64
	Height float64
	Color  color.Color
	Round  bool
	Layer  int
}

var AppearanceComponent = NewNamedComponent[Appearance]("appearance")
