package physics

import "github.com/jakecoffman/cp"

const (
	TileEmpty  = 0
	TileSolid  = 1
	TileHazard = 2
)

// Hazard is the sensor data attached to hazard tiles.
type Hazard struct {
	Col, Row int
}

// AddTileLayer turns a row-major tile layer into static shapes. Row 0 is the
// top row of the level. Contiguous solid tiles are merged greedily into
// rectangles (width first, then height); hazard tiles become individual
// sensors. It returns the number of solid boxes created.
func (w *World) AddTileLayer(tiles []int, width, height int, tileSize float64) int {
	if w == nil || w.space == nil || width <= 0 || height <= 0 || len(tiles) != width*height || tileSize <= 0 {
		return 0
	}

	// top edge of row r in y-up world space
	rowTop := func(r int) float64 { return float64(height-r) * tileSize }

	boxes := 0
	processed := make([]bool, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := y*width + x
			if processed[idx] {
				continue
			}
			switch tiles[idx] {
			case TileEmpty:
				processed[idx] = true
				continue
			case TileHazard:
				x0 := float64(x) * tileSize
				w.AddSensor(cp.BB{L: x0, B: rowTop(y) - tileSize, R: x0 + tileSize, T: rowTop(y)}, Hazard{Col: x, Row: y})
				processed[idx] = true
				continue
			}

			solid := func(i int) bool {
				v := tiles[i]
				return !processed[i] && v != TileEmpty && v != TileHazard
			}

			rw := 1
			for x+rw < width && solid(y*width+x+rw) {
				rw++
			}

			rh := 1
		heightLoop:
			for y+rh < height {
				for xi := x; xi < x+rw; xi++ {
					if !solid((y+rh)*width + xi) {
						break heightLoop
					}
				}
				rh++
			}

			bb := cp.BB{
				L: float64(x) * tileSize,
				B: rowTop(y + rh),
				R: float64(x+rw) * tileSize,
				T: rowTop(y),
			}
			w.AddSolid(bb)
			boxes++

			for yy := y; yy < y+rh; yy++ {
				for xx := x; xx < x+rw; xx++ {
					processed[yy*width+xx] = true
				}
			}
		}
	}
	return boxes
}
