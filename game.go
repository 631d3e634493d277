package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/render"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/sim"
	"golang.design/x/clipboard"
)

type GameOptions struct {
	Level  string
	Ground string
	Script string
	Debug  bool
	Logger *slog.Logger
}

type Game struct {
	scene    *sim.Scene
	renderer *render.RenderSystem
	watcher  *prefabs.Watcher
	log      *slog.Logger

	pause     *PauseMenu
	paused    bool
	quit      bool
	debug     bool
	clipboard bool
	status    string
}

func NewGame(opts GameOptions) (*Game, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	scene, err := sim.New(sim.Options{
		Level:  opts.Level,
		Ground: opts.Ground,
		Script: opts.Script,
		Input:  KeyboardInput{},
		Logger: log,
	})
	if err != nil {
		return nil, err
	}

	g := &Game{
		scene:    scene,
		renderer: render.NewRenderSystem(),
		log:      log,
		debug:    opts.Debug,
	}
	g.pause = NewPauseMenu(g)

	var dirs []string
	for _, dir := range []string{prefabs.Dir, filepath.Join(prefabs.Dir, "scripts")} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) > 0 {
		w, err := prefabs.NewWatcher(dirs...)
		if err != nil {
			log.Warn("prefab hot reload disabled", "err", err)
		} else {
			g.watcher = w
		}
	}

	if err := clipboard.Init(); err != nil {
		log.Warn("clipboard unavailable", "err", err)
	} else {
		g.clipboard = true
	}

	return g, nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyTuning()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
		if g.paused {
			if m := g.scene.PlayerMotor(); m != nil {
				g.pause.Refresh(m.Config())
			}
		}
	}
	if g.quit {
		return ebiten.Termination
	}

	g.pollReloads()
	if g.paused {
		g.pause.UI.Update()
		return nil
	}
	g.scene.Step()

	for _, ev := range g.scene.World.Events().Drain() {
		if me, ok := ev.Data.(ecs.MotorEvent); ok {
			g.log.Debug("motor event", "entity", me.Entity, "kind", me.Kind, "tick", g.scene.Tick())
		}
	}
	return nil
}

func (g *Game) pollReloads() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(name)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.Warn("prefab watcher", "err", err)
		default:
			return
		}
	}
}

func (g *Game) reload(name string) {
	if err := g.scene.Reload(name); err != nil {
		g.log.Error("reload failed", "file", name, "err", err)
		g.status = "reload failed: " + name
		return
	}
	g.status = "reloaded " + name
	if m := g.scene.PlayerMotor(); m != nil && g.paused {
		g.pause.Refresh(m.Config())
	}
}

// copyTuning puts the live motor config on the clipboard as a prefab block.
func (g *Game) copyTuning() {
	m := g.scene.PlayerMotor()
	if m == nil {
		return
	}
	data, err := prefabs.MarshalMotor(m.Config())
	if err != nil {
		g.log.Error("marshal motor", "err", err)
		return
	}
	if !g.clipboard {
		fmt.Fprint(os.Stdout, string(data))
		g.status = "clipboard unavailable, tuning written to stdout"
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	g.status = "motor tuning copied"
}

func (g *Game) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	g.scene.Camera.ScreenW = float64(b.Dx())
	g.scene.Camera.ScreenH = float64(b.Dy())

	g.renderer.Draw(g.scene.World, screen)
	if g.debug {
		render.DrawPhysicsDebug(g.scene.Physics.Space(), g.scene.World, screen)
		render.DrawMotorDebug(g.scene.World, screen)
	}
	if g.paused {
		g.pause.UI.Draw(screen)
	}
	if g.status != "" {
		ebitenutil.DebugPrintAt(screen, g.status, 10, b.Dy()-20)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}
