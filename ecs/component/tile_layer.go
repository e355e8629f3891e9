package component

import "image/color"

// TileLayer is one drawable layer of the level grid. Row 0 is the top row.
type TileLayer struct {
	Tiles       []int
	Width       int
	Height      int
	TileSize    float64
	Color       color.Color
	HazardColor color.Color
	Index       int
}

var TileLayerComponent = NewNamedComponent[TileLayer]("tile_layer")
