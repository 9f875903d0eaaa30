package planner

import (
	"context"
	"fmt"

	"github.com/pdrpinto/planner/geometry"
)

// Goal is a target pose.
type Goal struct {
	Location Point
	Heading  float64
}

// Planner owns the map, the goal and the current global path. It is meant
// to be driven from a single control loop and is not safe for concurrent use.
type Planner struct {
	options   Options
	obstacles ObstacleMap

	goal    Goal
	goalSet bool

	path   []Point
	cursor int
	last   Result
}

// New creates a planner. The tuning is validated up front.
func New(options ...Option) (*Planner, error) {
	opts := applyOptions(options)
	if err := opts.Tuning.Validate(); err != nil {
		return nil, err
	}
	return &Planner{options: opts}, nil
}

// SetMap loads the named obstacle map through the configured MapLoader.
func (p *Planner) SetMap(name string) error {
	if p.options.MapLoader == nil {
		return ErrNoMapLoader
	}
	m, err := p.options.MapLoader.Load(name)
	if err != nil {
		return fmt.Errorf("load map %q: %w", name, err)
	}
	p.SetObstacles(m)
	segments := 0
	if m != nil {
		segments = len(m.Segments())
	}
	p.options.Logger.Info("map loaded", "name", name, "segments", segments)
	return nil
}

// SetObstacles installs an obstacle map directly. Nil means no obstacles.
func (p *Planner) SetObstacles(m ObstacleMap) {
	p.obstacles = m
}

// Obstacles returns the installed obstacle map, possibly nil.
func (p *Planner) Obstacles() ObstacleMap {
	return p.obstacles
}

// SetGlobalGoal sets the goal pose. The existing path is dropped; the next
// LocalGoal call plans toward the new goal.
func (p *Planner) SetGlobalGoal(loc Point, heading float64) {
	p.goal = Goal{Location: loc, Heading: heading}
	p.goalSet = true
	p.path = nil
	p.cursor = 0
	p.options.Logger.Info("global goal set", "x", loc.X, "y", loc.Y, "heading", heading)
}

// Goal returns the current goal and whether one is set.
func (p *Planner) Goal() (Goal, bool) {
	return p.goal, p.goalSet
}

// GetPath returns a copy of the current path. It may be empty.
func (p *Planner) GetPath() []Point {
	return append([]Point(nil), p.path...)
}

// Cursor returns the index just past the last local goal handed out.
func (p *Planner) Cursor() int {
	return p.cursor
}

// Stats returns the result of the last global search.
func (p *Planner) Stats() Result {
	return p.last
}

// AtGoal reports whether loc is within the stop distance of the goal.
// Without a goal the robot is trivially there.
func (p *Planner) AtGoal(loc Point) bool {
	if !p.goalSet {
		return true
	}
	return geometry.Distance(loc, p.goal.Location) < p.options.Tuning.StopDistance
}

// GetGlobalPlan replaces the path with a fresh search from loc. The heading
// does not influence the search. A goal that cannot be reached leaves the
// path empty and returns nil; errors come only from ctx or the expansion cap.
func (p *Planner) GetGlobalPlan(ctx context.Context, loc Point, heading float64) error {
	if !p.goalSet {
		return nil
	}

	result, err := search(ctx, p.obstacles, loc, p.goal.Location, p.options)
	p.last = result
	p.path = result.Path
	p.cursor = 0
	if err != nil {
		return fmt.Errorf("global plan %s: %w", result.PlanID, err)
	}
	if !result.Found {
		p.options.Logger.Warn("no path to goal",
			"plan_id", result.PlanID,
			"x", loc.X, "y", loc.Y,
			"heading", heading,
			"expanded", result.ExpandedNodes)
	}
	return nil
}
