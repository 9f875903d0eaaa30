// Command navplan drives the planner through a simulated control loop: the
// robot steps toward each local goal until it reaches the global goal, and
// the map, planned path and driven trajectory are rendered to an image.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/plot/vg"

	"github.com/pdrpinto/planner"
	"github.com/pdrpinto/planner/config"
	"github.com/pdrpinto/planner/geometry"
	"github.com/pdrpinto/planner/vectormap"
	"github.com/pdrpinto/planner/viz"
)

const trajectoryColor uint32 = 0x1F77B4

// errNoPlan is returned when the robot cannot make progress toward the goal.
var errNoPlan = errors.New("no path to goal")

type pose struct {
	loc     geometry.Point
	heading float64
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "navplan:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("navplan", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "tuning YAML file (defaults when empty)")
	mapDir := fs.String("maps", "maps", "directory holding map files")
	mapName := fs.String("map", "", "map name or file inside -maps")
	startFlag := fs.String("start", "0,0,0", "start pose x,y[,heading]")
	goalFlag := fs.String("goal", "", "goal pose x,y[,heading]")
	speed := fs.Float64("speed", 0.2, "distance driven per control cycle")
	maxCycles := fs.Int("cycles", 2000, "maximum control cycles")
	output := fs.String("o", "navplan.png", "output image (png, svg, pdf)")
	watch := fs.Bool("watch", false, "reload the map when its file changes")
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	tuning := config.Default()
	if *configPath != "" {
		var err error
		if tuning, err = config.Load(*configPath); err != nil {
			return err
		}
	}

	start, err := parsePose(*startFlag)
	if err != nil {
		return fmt.Errorf("invalid -start: %w", err)
	}
	if *goalFlag == "" {
		return errors.New("-goal is required")
	}
	goal, err := parsePose(*goalFlag)
	if err != nil {
		return fmt.Errorf("invalid -goal: %w", err)
	}
	if *speed <= 0 {
		return fmt.Errorf("invalid -speed %f: must be positive", *speed)
	}

	p, err := planner.New(
		planner.WithTuning(tuning),
		planner.WithLogger(logger),
		planner.WithMapLoader(planner.VectorMapLoader(*mapDir)),
	)
	if err != nil {
		return err
	}
	if *mapName != "" {
		if err := p.SetMap(*mapName); err != nil {
			return err
		}
	}

	var watcher *vectormap.Watcher
	if *watch && *mapName != "" {
		if watcher, err = vectormap.NewWatcher(*mapDir); err != nil {
			return fmt.Errorf("watch %s: %w", *mapDir, err)
		}
		defer watcher.Close()
	}

	p.SetGlobalGoal(goal.loc, goal.heading)
	trajectory, driveErr := drive(ctx, p, start, *speed, *maxCycles, watcher, *mapName, logger)

	scene := viz.NewPlot(fmt.Sprintf("navplan %s", *mapName))
	if m := p.Obstacles(); m != nil {
		scene.DrawObstacles(m.Segments())
	}
	p.VisualizePath(scene)
	scene.DrawTrajectory(trajectory, trajectoryColor)
	if err := scene.Save(*output, 6*vg.Inch, 6*vg.Inch); err != nil {
		return err
	}
	logger.Info("rendered", "file", *output, "cycles", len(trajectory)-1)
	return driveErr
}

// drive runs the control loop until the robot is at the goal. Map reloads
// from the watcher are applied between cycles.
func drive(
	ctx context.Context,
	p *planner.Planner,
	start pose,
	speed float64,
	maxCycles int,
	watcher *vectormap.Watcher,
	mapName string,
	logger *slog.Logger,
) ([]geometry.Point, error) {
	robot := start
	trajectory := []geometry.Point{robot.loc}

	for cycle := 0; cycle < maxCycles; cycle++ {
		if err := ctx.Err(); err != nil {
			return trajectory, err
		}
		if watcher != nil {
			reloadChanged(p, watcher, mapName, logger)
		}
		if p.AtGoal(robot.loc) {
			logger.Info("goal reached", "cycles", cycle, "x", robot.loc.X, "y", robot.loc.Y)
			return trajectory, nil
		}

		target := p.LocalGoal(ctx, robot.loc, robot.heading)
		if target == robot.loc {
			return trajectory, errNoPlan
		}
		robot = advance(robot, target, speed)
		trajectory = append(trajectory, robot.loc)
		logger.Debug("cycle", "n", cycle, "x", robot.loc.X, "y", robot.loc.Y,
			"target_x", target.X, "target_y", target.Y, "cursor", p.Cursor())
	}
	return trajectory, fmt.Errorf("goal not reached after %d cycles", maxCycles)
}

// reloadChanged drains pending watcher events without blocking.
func reloadChanged(p *planner.Planner, watcher *vectormap.Watcher, mapName string, logger *slog.Logger) {
	for {
		select {
		case name, ok := <-watcher.Events:
			if !ok {
				return
			}
			if strings.TrimSuffix(filepath.Base(name), filepath.Ext(name)) != strings.TrimSuffix(mapName, filepath.Ext(mapName)) {
				continue
			}
			if err := p.SetMap(mapName); err != nil {
				logger.Warn("map reload failed", "file", name, "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("map watcher", "error", err)
		default:
			return
		}
	}
}

// advance moves the robot up to speed meters toward target.
func advance(robot pose, target geometry.Point, speed float64) pose {
	delta := r2.Sub(target, robot.loc)
	dist := r2.Norm(delta)
	if dist == 0 {
		return robot
	}
	step := math.Min(speed, dist)
	return pose{
		loc:     r2.Add(robot.loc, r2.Scale(step/dist, delta)),
		heading: math.Atan2(delta.Y, delta.X),
	}
}

// parsePose reads "x,y" or "x,y,heading".
func parsePose(s string) (pose, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 && len(parts) != 3 {
		return pose{}, fmt.Errorf("expected x,y[,heading], got %q", s)
	}
	var v [3]float64
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return pose{}, err
		}
		v[i] = f
	}
	return pose{loc: geometry.Point{X: v[0], Y: v[1]}, heading: v[2]}, nil
}
