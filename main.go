package main

import (
	"flag"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/thirdperson/common"
)

func main() {
	levelName := flag.String("level", "courtyard", "arena name in levels/ (basename, .json optional)")
	logLevel := flag.String("log", "info", "log level (debug, info, warn, error)")
	debug := flag.Bool("debug", false, "draw collision shapes (toggle with F3)")
	watch := flag.Bool("watch", true, "hot reload prefabs/controller.yaml from disk")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	log := common.NewLogger(*logLevel)

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("thirdperson")
	ebiten.SetTPS(common.TicksPerSecond)

	game, err := NewGame(*levelName, *watch, *debug, log)
	if err != nil {
		log.Fatalf("setup: %v", err)
	}
	defer game.Close()

	// Mouse look reads relative motion, so the cursor stays captured until
	// the pause panel opens.
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)

	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}
}
