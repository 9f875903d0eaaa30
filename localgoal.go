package planner

import (
	"context"

	"github.com/pdrpinto/planner/geometry"
)

// LocalGoal returns the waypoint the robot at loc should steer toward.
//
// The path is scanned from the last returned waypoint for the first one
// farther than the lookahead radius. When none is found the path is
// exhausted or stale, so a new global plan is made from loc and the scan is
// repeated once. Without a goal, or without a path after replanning, loc
// itself is returned.
func (p *Planner) LocalGoal(ctx context.Context, loc Point, heading float64) Point {
	if !p.goalSet {
		return loc
	}

	if j, ok := p.scan(loc); ok {
		p.cursor = j + 1
		return p.path[j]
	}

	if err := p.GetGlobalPlan(ctx, loc, heading); err != nil {
		p.options.Logger.Warn("replan failed", "error", err)
	}

	if j, ok := p.scan(loc); ok {
		p.cursor = j + 1
		return p.path[j]
	}
	if len(p.path) == 0 {
		return loc
	}
	// the whole path is inside the lookahead radius
	p.cursor = len(p.path)
	return p.path[len(p.path)-1]
}

// scan finds the first waypoint at or after the last returned one that lies
// outside the lookahead radius.
func (p *Planner) scan(loc Point) (int, bool) {
	radius := p.options.Tuning.LookaheadRadius
	for i := max(p.cursor-1, 0); i < len(p.path); i++ {
		if geometry.Distance(p.path[i], loc) > radius {
			return i, true
		}
	}
	return 0, false
}
