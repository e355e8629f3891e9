package main

import (
	"flag"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/orbhop/logging"
	"go.uber.org/zap"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug overlay and debug logging")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "", "level name in levels/ (basename, .json optional)")
	scriptName := flag.String("script", "", "drive the player from prefabs/scripts/<name>.tengo instead of the keyboard")
	logFile := flag.String("log", "", "also write logs to this rotating file")
	hot := flag.Bool("hot", false, "reload prefabs from ./prefabs when they change")
	flag.Parse()

	log, closeLog := logging.New(logging.Options{Debug: *debug, File: *logFile})
	defer closeLog()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("orbhop")

	game, err := NewGame(Options{Level: *levelName, Script: *scriptName, Debug: *debug, Hot: *hot}, log)
	if err != nil {
		log.Fatal("start game", zap.Error(err))
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Error("run game", zap.Error(err))
	}
}
