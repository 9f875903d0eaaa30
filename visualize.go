package planner

const (
	pathColor uint32 = 0x000000
	goalColor uint32 = 0xFF0000
)

const goalCrossSize = 0.3

// VisualizePath draws the path as a polyline and the goal as a cross.
// Nothing is drawn when no goal is set.
func (p *Planner) VisualizePath(scene Scene) {
	if !p.goalSet {
		return
	}

	for i := 1; i < len(p.path); i++ {
		scene.DrawLine(p.path[i-1], p.path[i], pathColor)
	}

	scene.DrawCross(p.goal.Location, goalCrossSize, goalColor)
}
