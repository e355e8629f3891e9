package system

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/orbhop/ecs"
	"github.com/milk9111/orbhop/ecs/component"
	"github.com/milk9111/orbhop/physics"
	"github.com/milk9111/orbhop/prefabs"
	"golang.org/x/image/colornames"
)

// RenderSystem draws tile layers and flat-colour appearances through the
// camera. The player is tinted with the colour of its active orb.
type RenderSystem struct {
	Background color.Color
	tints      map[string]color.Color
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{Background: colornames.Midnightblue, tints: make(map[string]color.Color)}
}

type drawable struct {
	layer  int
	entity ecs.Entity
	x, y   float64
	look   *component.Appearance
	tint   color.Color
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	screen.Fill(r.Background)

	_, cam, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return
	}

	var layers []*component.TileLayer
	ecs.ForEach(w, component.TileLayerComponent.Kind(), func(e ecs.Entity, l *component.TileLayer) {
		layers = append(layers, l)
	})
	sort.SliceStable(layers, func(i, j int) bool { return layers[i].Index < layers[j].Index })
	for _, l := range layers {
		drawTileLayer(screen, cam, l)
	}

	var items []drawable
	ecs.ForEach2(w, component.AppearanceComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, look *component.Appearance, t *component.Transform) {
		if pickup, ok := ecs.Get(w, e, component.OrbPickupComponent.Kind()); ok && !pickup.Active {
			return
		}
		item := drawable{layer: look.Layer, entity: e, x: t.X, y: t.Y, look: look, tint: look.Color}
		if p, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok {
			item.tint = r.playerTint(p, look.Color)
		}
		items = append(items, item)
	})
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].layer != items[j].layer {
			return items[i].layer < items[j].layer
		}
		return uint64(items[i].entity) < uint64(items[j].entity)
	})

	for _, it := range items {
		sx, sy := cam.ToScreen(it.x, it.y)
		pw, ph := it.look.Width*cam.Zoom, it.look.Height*cam.Zoom
		if it.look.Round {
			vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(pw/2), it.tint, true)
			continue
		}
		vector.DrawFilledRect(screen, float32(sx-pw/2), float32(sy-ph/2), float32(pw), float32(ph), it.tint, false)
	}
}

func (r *RenderSystem) playerTint(p *component.Player, base color.Color) color.Color {
	if !p.Core.Abilities().HasEverCollected() {
		return base
	}
	def := p.Core.Abilities().ActiveDefinition()
	if def == nil {
		return base
	}
	if c, ok := r.tints[def.Color]; ok {
		return c
	}
	c, err := prefabs.ParseColor(def.Color)
	if err != nil {
		c = base
	}
	r.tints[def.Color] = c
	return c
}

func drawTileLayer(screen *ebiten.Image, cam *component.Camera, l *component.TileLayer) {
	ts := l.TileSize
	if ts <= 0 {
		ts = 1
	}
	size := float32(ts * cam.Zoom)
	for row := 0; row < l.Height; row++ {
		for col := 0; col < l.Width; col++ {
			v := l.Tiles[row*l.Width+col]
			if v == physics.TileEmpty {
				continue
			}
			clr := l.Color
			if v == physics.TileHazard && l.HazardColor != nil {
				clr = l.HazardColor
			}
			// top-left corner of the tile in world space
			x, y := cam.ToScreen(float64(col)*ts, float64(l.Height-row)*ts)
			vector.DrawFilledRect(screen, float32(x), float32(y), size, size, clr, false)
		}
	}
}
