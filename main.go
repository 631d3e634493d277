package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/sim"
)

func main() {
	debug := flag.Bool("debug", false, "start with the physics debug overlay")
	verbose := flag.Bool("v", false, "log motor events")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "demo.json", "level name in levels/ (basename, .json optional)")
	ground := flag.String("ground", sim.GroundChipmunk, "ground query backend: cp or grid")
	scriptName := flag.String("script", "", "drive the player with prefabs/scripts/<name>.tengo")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("platformer")
	ebiten.SetTPS(common.TicksPerSecond)

	game, err := NewGame(GameOptions{
		Level:  *levelName,
		Ground: *ground,
		Script: *scriptName,
		Debug:  *debug,
		Logger: log,
	})
	if err != nil {
		log.Error("start game", "err", err)
		os.Exit(1)
	}

	err = ebiten.RunGame(game)
	_ = game.Close()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		log.Error("run game", "err", err)
		os.Exit(1)
	}
}
