package planner

// StepSnapshot exposes the per-iteration state of the search
type StepSnapshot struct {
	Current   Point
	Open      []Point
	Closed    []Point
	Done      bool
	Found     bool
	Path      []Point
	StepIndex int
}

// Stepper runs the lattice search one expansion at a time. It expands nodes
// exactly like Search, without the expansion cap.
type Stepper struct {
	engine    *engine
	stepCount int
}

// NewStepper prepares a search from start toward goal.
func NewStepper(obstacles ObstacleMap, start, goal Point, options ...Option) *Stepper {
	opts := applyOptions(options)
	return &Stepper{engine: newEngine(obstacles, start, goal, opts.Tuning)}
}

// Step advances the search by one node expansion and returns a snapshot.
// Once the search is over every further call returns the final snapshot.
func (s *Stepper) Step() StepSnapshot {
	e := s.engine
	if !e.done {
		s.stepCount++
		e.step()
	}

	snapshot := StepSnapshot{
		Open:      s.openPoints(),
		Closed:    s.closedPoints(),
		Done:      e.done,
		Found:     e.found,
		StepIndex: s.stepCount,
	}
	if e.last >= 0 {
		snapshot.Current = e.nodes[e.last].point
	}
	if e.found {
		snapshot.Path = e.path()
	}
	return snapshot
}

// Result returns the search outcome so far.
func (s *Stepper) Result() Result {
	return s.engine.result()
}

func (s *Stepper) openPoints() []Point {
	open := make([]Point, 0, s.engine.openSet.Len())
	for _, item := range s.engine.openSet {
		open = append(open, s.engine.nodes[item.Node].point)
	}
	return open
}

func (s *Stepper) closedPoints() []Point {
	closed := make([]Point, 0, s.engine.expanded)
	for _, n := range s.engine.nodes {
		if n.closed {
			closed = append(closed, n.point)
		}
	}
	return closed
}
