package component

// Camera maps world units to screen pixels. X and Y are the world point at
// the centre of the screen; Zoom is pixels per world unit. Smooth in (0,1]
// is the fraction of the distance to the target covered per frame.
type Camera struct {
	X       float64
	Y       float64
	Zoom    float64
	Smooth  float64
	ScreenW int
	ScreenH int
}

var CameraComponent = NewNamedComponent[Camera]("camera")

// ToScreen converts a world point to screen pixels, flipping y.
func (c *Camera) ToScreen(x, y float64) (float64, float64) {
	zoom := c.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return (x-c.X)*zoom + float64(c.ScreenW)/2, float64(c.ScreenH)/2 - (y-c.Y)*zoom
}
