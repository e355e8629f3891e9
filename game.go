package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/orbhop/ecs"
	"github.com/milk9111/orbhop/ecs/component"
	"github.com/milk9111/orbhop/ecs/entity"
	"github.com/milk9111/orbhop/ecs/system"
	"github.com/milk9111/orbhop/levels"
	"github.com/milk9111/orbhop/prefabs"
	"github.com/milk9111/orbhop/script"
	"go.uber.org/zap"
)

const (
	baseWidth     = 1280
	baseHeight    = 720
	pixelsPerUnit = 40
	fixedStep     = 1.0 / 60.0
	defaultLevel  = "meadow"
)

// Options are the command line settings of the game.
type Options struct {
	Level  string
	Script string
	Debug  bool
	Hot    bool
}

type Game struct {
	opts Options
	log  *zap.Logger

	world    *ecs.World
	scene    *entity.Scene
	pipe     *system.Pipeline
	scripted *system.ScriptedInputSystem
	render   *system.RenderSystem
	catalog  *prefabs.OrbCatalog

	watcher *prefabs.Watcher
	pauseUI *ebitenui.UI
	paused  bool
	quit    bool
	frames  int
}

func NewGame(opts Options, log *zap.Logger) (*Game, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Level == "" {
		opts.Level = defaultLevel
	}
	g := &Game{opts: opts, log: log.Named("game"), render: system.NewRenderSystem()}
	if err := g.load(log); err != nil {
		return nil, err
	}
	g.pauseUI = NewPauseUI(g)

	if opts.Hot {
		w, err := prefabs.NewWatcher("prefabs", "prefabs/scripts")
		if err != nil {
			g.log.Warn("hot reload disabled", zap.Error(err))
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) load(log *zap.Logger) error {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return err
	}
	catalog, err := prefabs.LoadOrbCatalog()
	if err != nil {
		return err
	}
	for name, fields := range catalog.Clamped {
		g.log.Warn("orb definition clamped", zap.String("orb", name), zap.Strings("fields", fields))
	}
	lvl, err := levels.Load(g.opts.Level)
	if err != nil {
		return err
	}

	world := ecs.NewWorld()
	scene, err := entity.LoadLevelToWorld(world, lvl, entity.Options{Player: spec, Catalog: catalog, Logger: log})
	if err != nil {
		return err
	}
	if _, err := entity.NewCamera(world, lvl, pixelsPerUnit, baseWidth, baseHeight); err != nil {
		return err
	}

	var input ecs.System = system.NewInputSystem()
	if g.opts.Script != "" {
		sc, err := script.Load(g.opts.Script)
		if err != nil {
			return err
		}
		g.scripted = system.NewScriptedInputSystem(sc)
		g.scripted.SetLogger(log)
		input = g.scripted
	}

	g.world = world
	g.scene = scene
	g.catalog = catalog
	g.pipe = system.NewPipeline(scene.Physics, lvl.Bounds(), input, fixedStep, log)
	g.log.Info("level ready", zap.String("level", g.opts.Level), zap.Strings("orbs", catalog.Names()))
	return nil
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.pollReload()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.opts.Debug = !g.opts.Debug
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.frames++
	g.pipe.Update(g.world, 1/float64(ebiten.TPS()))
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)

	if g.opts.Debug {
		system.DrawPhysicsDebug(g.scene.Physics.Space(), g.world, screen)
		system.DrawPlayerStateDebug(g.world, screen, g.pipe.Events.Recent())
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.1f  resets: %d", ebiten.ActualFPS(), g.pipe.Resets.Resets()), 10, baseHeight-20)

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}

// RequestReset sends the player back to the spawn.
func (g *Game) RequestReset(reason string) {
	_ = ecs.Add(g.world, g.scene.Player, component.ResetRequestComponent.Kind(), &component.ResetRequest{Reason: reason})
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if err := g.reload(change); err != nil {
				g.log.Warn("hot reload failed", zap.String("file", change.Name), zap.Error(err))
			}
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.log.Warn("watcher error", zap.Error(err))
			}
			return
		default:
			return
		}
	}
}

var errNotReloadable = errors.New("not reloadable")

// reload applies an edited prefab to the running scene.
func (g *Game) reload(change prefabs.Change) error {
	switch {
	case change.Kind == prefabs.ChangeSpec && change.Name == prefabs.PlayerFile:
		spec, err := prefabs.LoadPlayerSpec()
		if err != nil {
			return err
		}
		p, ok := ecs.Get(g.world, g.scene.Player, component.PlayerComponent.Kind())
		if !ok {
			return fmt.Errorf("no player")
		}
		p.Core.SetStats(spec.Stats)
	case change.Kind == prefabs.ChangeSpec && change.Name == prefabs.OrbsFile:
		catalog, err := prefabs.LoadOrbCatalog()
		if err != nil {
			return err
		}
		ecs.ForEach(g.world, component.OrbPickupComponent.Kind(), func(e ecs.Entity, p *component.OrbPickup) {
			if def, err := catalog.Lookup(p.Definition.Name); err == nil {
				p.Definition = def
			}
		})
		g.catalog = catalog
	case change.Kind == prefabs.ChangeScript && g.scripted != nil:
		if !sameScript(change.Name, g.opts.Script) {
			return nil
		}
		sc, err := script.Load(g.opts.Script)
		if err != nil {
			return err
		}
		g.scripted.SetScript(sc)
	default:
		return fmt.Errorf("%w: %s", errNotReloadable, change.Name)
	}
	g.log.Info("reloaded", zap.String("file", change.Name))
	return nil
}

func sameScript(a, b string) bool {
	norm := func(s string) string {
		return strings.TrimSuffix(filepath.Base(filepath.ToSlash(s)), ".tengo")
	}
	return norm(a) == norm(b)
}
