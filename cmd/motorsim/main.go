// motorsim runs a level headless with a scripted player and writes the
// motor trace as CSV, one row per tick.
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/sim"
)

var header = []string{"tick", "time", "x", "y", "vx", "vy", "grounded", "coyote", "gravity"}

func main() {
	os.Exit(realMain())
}

func realMain() int {
	levelName := flag.String("level", "demo.json", "level name in levels/")
	scriptName := flag.String("script", "run_jump", "input script in prefabs/scripts")
	ticks := flag.Int("ticks", 300, "number of fixed ticks to simulate")
	ground := flag.String("ground", sim.GroundChipmunk, "ground query backend: cp or grid")
	outPath := flag.String("out", "", "write CSV here instead of stdout")
	verbose := flag.Bool("v", false, "log motor events")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	opts := sim.Options{Level: *levelName, Ground: *ground, Script: *scriptName, Logger: log}
	if err := writeTrace(*outPath, log, opts, *ticks); err != nil {
		log.Error("motorsim", "err", err)
		return 1
	}
	return 0
}

// writeTrace runs the simulation into path, or stdout when path is empty.
// The file is closed on every return.
func writeTrace(path string, log *slog.Logger, opts sim.Options, ticks int) (err error) {
	if path == "" {
		return run(os.Stdout, log, opts, ticks)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return run(f, log, opts, ticks)
}

func run(out io.Writer, log *slog.Logger, opts sim.Options, ticks int) error {
	scene, err := sim.New(opts)
	if err != nil {
		return err
	}

	w := csv.NewWriter(out)
	if err := w.Write(header); err != nil {
		return err
	}

	jumps := 0
	for range ticks {
		scene.Step()
		for _, ev := range scene.World.Events().Drain() {
			me, ok := ev.Data.(ecs.MotorEvent)
			if !ok {
				continue
			}
			if me.Kind == ecs.MotorEventJumped {
				jumps++
			}
			log.Debug("motor event", "kind", me.Kind, "tick", scene.Tick())
		}
		if err := w.Write(row(scene)); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}

	pos := scene.PlayerBody().Position()
	log.Info("simulation done", "ticks", ticks, "jumps", jumps, "x", pos.X, "y", pos.Y)
	return nil
}

func row(scene *sim.Scene) []string {
	body := scene.PlayerBody()
	st := scene.PlayerMotor().State()
	pos, vel := body.Position(), body.Velocity()
	return []string{
		strconv.Itoa(scene.Tick()),
		ftoa(scene.Time()),
		ftoa(pos.X),
		ftoa(pos.Y),
		ftoa(vel.X),
		ftoa(vel.Y),
		strconv.FormatBool(st.Grounded),
		ftoa(st.CoyoteTimer),
		ftoa(st.GravityScale),
	}
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
