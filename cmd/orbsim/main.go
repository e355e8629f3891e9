// Command orbsim runs a level headless with scripted input and logs the
// core events frame by frame.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/milk9111/orbhop/ecs"
	"github.com/milk9111/orbhop/ecs/component"
	"github.com/milk9111/orbhop/ecs/entity"
	"github.com/milk9111/orbhop/ecs/system"
	"github.com/milk9111/orbhop/event"
	"github.com/milk9111/orbhop/levels"
	"github.com/milk9111/orbhop/logging"
	"github.com/milk9111/orbhop/prefabs"
	"github.com/milk9111/orbhop/script"
	"go.uber.org/zap"
)

type config struct {
	level  string
	script string
	frames int
	dt     float64
	step   float64
}

func main() {
	var cfg config
	flag.StringVar(&cfg.level, "level", "meadow", "level name in levels/")
	flag.StringVar(&cfg.script, "script", "demo", "input script in prefabs/scripts/")
	flag.IntVar(&cfg.frames, "frames", 600, "number of rendered frames to simulate")
	flag.Float64Var(&cfg.dt, "dt", 1.0/60.0, "rendered frame time in seconds")
	flag.Float64Var(&cfg.step, "step", 1.0/60.0, "fixed simulation step in seconds")
	quiet := flag.Bool("q", false, "only log the summary")
	logFile := flag.String("log", "", "also write logs to this rotating file")
	flag.Parse()

	log, closeLog := logging.New(logging.Options{Debug: !*quiet, File: *logFile})
	defer closeLog()

	res, err := run(cfg, log)
	if err != nil {
		log.Error("orbsim", zap.Error(err))
		closeLog()
		os.Exit(1)
	}
	log.Info("summary",
		zap.Int("frames", res.frames),
		zap.Uint64("steps", res.steps),
		zap.Float64("x", res.x),
		zap.Float64("y", res.y),
		zap.Int("jumps", res.jumps),
		zap.Int("dashes", res.dashes),
		zap.Int("orbs", res.orbs),
		zap.Int("resets", res.resets),
	)
	if res.scriptErr != nil {
		fmt.Fprintln(os.Stderr, "script stopped:", res.scriptErr)
	}
}

type result struct {
	frames    int
	steps     uint64
	x, y      float64
	jumps     int
	dashes    int
	orbs      int
	resets    int
	scriptErr error
}

func run(cfg config, log *zap.Logger) (result, error) {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return result{}, err
	}
	catalog, err := prefabs.LoadOrbCatalog()
	if err != nil {
		return result{}, err
	}
	lvl, err := levels.Load(cfg.level)
	if err != nil {
		return result{}, err
	}
	sc, err := script.Load(cfg.script)
	if err != nil {
		return result{}, err
	}

	world := ecs.NewWorld()
	scene, err := entity.LoadLevelToWorld(world, lvl, entity.Options{Player: spec, Catalog: catalog, Logger: log})
	if err != nil {
		return result{}, err
	}

	input := system.NewScriptedInputSystem(sc)
	input.SetLogger(log)
	pipe := system.NewPipeline(scene.Physics, lvl.Bounds(), input, cfg.step, log)

	for i := 0; i < cfg.frames; i++ {
		pipe.Update(world, cfg.dt)
	}
	pipe.Flush(world)

	res := result{
		frames:    cfg.frames,
		steps:     pipe.Scheduler.Steps(),
		jumps:     pipe.Events.Count(event.KindJumped),
		dashes:    pipe.Events.Count(event.KindDashStarted),
		orbs:      pipe.Events.Count(event.KindOrbCollected),
		resets:    pipe.Resets.Resets(),
		scriptErr: input.Err(),
	}
	if p, ok := ecs.Get(world, scene.Player, component.PlayerComponent.Kind()); ok {
		pos := p.Body.Position()
		res.x, res.y = pos.X, pos.Y
	}
	return res, nil
}
