package entity

import (
	"fmt"
	"image/color"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/orbhop/ecs"
	"github.com/milk9111/orbhop/ecs/component"
	"github.com/milk9111/orbhop/event"
	"github.com/milk9111/orbhop/levels"
	"github.com/milk9111/orbhop/orb"
	"github.com/milk9111/orbhop/physics"
	"github.com/milk9111/orbhop/player"
	"github.com/milk9111/orbhop/prefabs"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"
)

// OrbSize is the side of an orb pickup's square trigger.
const OrbSize = 0.6

// Scene is a level instantiated into an ECS world and a physics world.
type Scene struct {
	World   *ecs.World
	Physics *physics.World
	Level   *levels.Level
	Player  ecs.Entity
	Orbs    []ecs.Entity
}

// Options carries the prefabs a level is built from.
type Options struct {
	Player  *prefabs.PlayerSpec
	Catalog *prefabs.OrbCatalog
	Logger  *zap.Logger
}

// LoadLevelToWorld builds the level geometry, the player at the spawn and
// every orb pickup.
func LoadLevelToWorld(w *ecs.World, lvl *levels.Level, opts Options) (*Scene, error) {
	if w == nil || lvl == nil {
		return nil, fmt.Errorf("entity: load level: missing world or level")
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	spec := opts.Player
	if spec == nil {
		def := prefabs.DefaultPlayerSpec()
		spec = &def
	}

	phys := BuildPhysics(lvl)
	phys.SetLogger(log)

	spawn, err := lvl.Spawn()
	if err != nil {
		return nil, fmt.Errorf("entity: load level %s: %w", lvl.Name, err)
	}
	center := SpawnCenter(lvl, spawn, spec.Body.Height)

	scene := &Scene{World: w, Physics: phys, Level: lvl}
	if err := addTileLayers(w, lvl, log); err != nil {
		return nil, err
	}
	scene.Player, err = NewPlayerAt(w, phys, spec, center, log)
	if err != nil {
		return nil, err
	}

	for _, ent := range lvl.Orbs() {
		def, err := opts.Catalog.Lookup(ent.OrbName())
		if err != nil {
			return nil, fmt.Errorf("entity: load level %s: orb at %d,%d: %w", lvl.Name, ent.X, ent.Y, err)
		}
		e, err := NewOrbAt(w, def, lvl.TileCenter(ent.X, ent.Y))
		if err != nil {
			return nil, err
		}
		err = ecs.Add(w, e, component.AppearanceComponent.Kind(), &component.Appearance{
			Width:  OrbSize,
			Height: OrbSize,
			Color:  resolveColor(def.Color, colornames.White, log),
			Round:  true,
			Layer:  1,
		})
		if err != nil {
			return nil, err
		}
		scene.Orbs = append(scene.Orbs, e)
	}

	log.Named("entity").Debug("level loaded",
		zap.String("level", lvl.Name),
		zap.Int("orbs", len(scene.Orbs)),
		zap.Float64("spawn_x", center.X),
		zap.Float64("spawn_y", center.Y),
	)
	return scene, nil
}

// BuildPhysics creates the collision world of a level: merged solids and
// hazard sensors for every physics layer, and walls around the level.
func BuildPhysics(lvl *levels.Level) *physics.World {
	phys := physics.NewWorld()
	if lvl == nil {
		return phys
	}
	for _, layer := range lvl.PhysicsLayers() {
		phys.AddTileLayer(layer, lvl.Width, lvl.Height, lvl.TileSize)
	}
	bounds := lvl.Bounds()
	phys.AddBounds(bounds.R, bounds.T)
	return phys
}

// SpawnCenter places a body of the given height standing on the bottom of
// the spawn tile.
func SpawnCenter(lvl *levels.Level, spawn levels.Entity, height float64) cp.Vector {
	feet := lvl.TileBottom(spawn.X, spawn.Y)
	return cp.Vector{X: feet.X, Y: feet.Y + height/2 + 0.01}
}

// NewPlayerAt creates the player body and core and the entity holding them.
// Core events are forwarded to the world event queue.
func NewPlayerAt(w *ecs.World, phys *physics.World, spec *prefabs.PlayerSpec, center cp.Vector, log *zap.Logger) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("entity: player: missing spec")
	}
	body := phys.NewBody(center, spec.Body.Width, spec.Body.Height)
	if body == nil {
		return 0, fmt.Errorf("entity: player: no physics world")
	}

	core := player.New(spec.Stats, body, phys)
	if log != nil {
		core.SetLogger(log)
	}
	core.Subscribe(func(evt event.Event) {
		w.Events().Push(evt)
	})

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: center.X, Y: center.Y}); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}
	if err := ecs.Add(w, e, component.SpawnComponent.Kind(), &component.Spawn{X: center.X, Y: center.Y}); err != nil {
		return 0, fmt.Errorf("player: add spawn: %w", err)
	}
	if err := ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{Core: core, Body: body}); err != nil {
		return 0, fmt.Errorf("player: add player: %w", err)
	}
	look := &component.Appearance{Width: spec.Body.Width, Height: spec.Body.Height, Color: spec.Color.Color, Layer: 2}
	if look.Color == nil {
		look.Color = colornames.Lightskyblue
	}
	if err := ecs.Add(w, e, component.AppearanceComponent.Kind(), look); err != nil {
		return 0, fmt.Errorf("player: add appearance: %w", err)
	}
	return e, nil
}

// NewCamera creates the camera entity, centred on the level.
func NewCamera(w *ecs.World, lvl *levels.Level, zoom float64, screenW, screenH int) (ecs.Entity, error) {
	cam := &component.Camera{Zoom: zoom, Smooth: 0.2, ScreenW: screenW, ScreenH: screenH}
	if lvl != nil {
		c := lvl.Bounds().Center()
		cam.X, cam.Y = c.X, c.Y
	}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.CameraComponent.Kind(), cam); err != nil {
		return 0, fmt.Errorf("camera: add camera: %w", err)
	}
	return e, nil
}

func addTileLayers(w *ecs.World, lvl *levels.Level, log *zap.Logger) error {
	for i, tiles := range lvl.Layers {
		meta := lvl.Meta(i)
		fallback := color.Color(colornames.Darkolivegreen)
		if meta.Physics {
			fallback = colornames.Saddlebrown
		}
		e := ecs.CreateEntity(w)
		err := ecs.Add(w, e, component.TileLayerComponent.Kind(), &component.TileLayer{
			Tiles:       tiles,
			Width:       lvl.Width,
			Height:      lvl.Height,
			TileSize:    lvl.TileSize,
			Color:       resolveColor(meta.Color, fallback, log),
			HazardColor: colornames.Crimson,
			Index:       i,
		})
		if err != nil {
			return fmt.Errorf("entity: tile layer %d: %w", i, err)
		}
	}
	return nil
}

func resolveColor(name string, fallback color.Color, log *zap.Logger) color.Color {
	if name == "" {
		return fallback
	}
	c, err := prefabs.ParseColor(name)
	if err != nil {
		log.Named("entity").Warn("unknown color", zap.String("color", name), zap.Error(err))
		return fallback
	}
	return c
}

// NewOrbAt creates an active orb pickup centred at center.
func NewOrbAt(w *ecs.World, def *orb.Definition, center cp.Vector) (ecs.Entity, error) {
	if def == nil {
		return 0, fmt.Errorf("entity: orb: missing definition")
	}
	half := OrbSize / 2
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: center.X, Y: center.Y}); err != nil {
		return 0, fmt.Errorf("orb: add transform: %w", err)
	}
	pickup := &component.OrbPickup{
		Definition: def,
		Bounds:     cp.BB{L: center.X - half, B: center.Y - half, R: center.X + half, T: center.Y + half},
		Active:     true,
		BobPhase:   center.X,
	}
	if err := ecs.Add(w, e, component.OrbPickupComponent.Kind(), pickup); err != nil {
		return 0, fmt.Errorf("orb: add pickup: %w", err)
	}
	return e, nil
}
