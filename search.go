package planner

import (
	"container/heap"
	"context"

	"github.com/pdrpinto/planner/config"
	"github.com/pdrpinto/planner/geometry"
	"github.com/pdrpinto/planner/internal"
)

// ctxCheckInterval is how many expansions run between context checks.
const ctxCheckInterval = 64

// searchNode is one arena entry. Closed nodes form the visited set and
// parent indices form the parent map.
type searchNode struct {
	cell   cell
	point  Point
	gScore float64
	parent int
	closed bool
	item   *PriorityQueueItem
}

// engine owns the state of a single search. It is shared by Search and the
// Stepper so both expand nodes the same way.
type engine struct {
	neighbors NeighborGenerator
	start     Point
	goal      Point
	tuning    config.Tuning

	nodes    []searchNode
	index    map[cell]int
	openSet  PriorityQueue
	sequence uint64

	expanded int
	last     int
	done     bool
	found    bool
}

func newEngine(obstacles ObstacleMap, start, goal Point, tuning config.Tuning) *engine {
	lattice := NewLattice(tuning.GridSize)
	e := &engine{
		neighbors: NewNeighborGenerator(lattice, obstacles, tuning.SafetyClearance),
		start:     start,
		goal:      goal,
		tuning:    tuning,
		index:     make(map[cell]int),
		openSet:   make(PriorityQueue, 0),
		last:      -1,
	}
	heap.Init(&e.openSet)
	e.push(cell{}, start, 0, -1)
	return e
}

func (e *engine) heuristic(p Point) float64 {
	return geometry.Distance(p, e.goal)
}

func (e *engine) atGoal(p Point) bool {
	return geometry.Distance(p, e.goal) < e.tuning.StopDistance
}

// push adds a cell to the frontier or lowers its cost. It reports whether
// the parent was recorded.
func (e *engine) push(c cell, p Point, gScore float64, parent int) bool {
	idx, seen := e.index[c]
	if !seen {
		idx = len(e.nodes)
		item := &PriorityQueueItem{
			Node:     idx,
			FCost:    gScore + e.heuristic(p),
			Sequence: e.sequence,
		}
		e.sequence++
		e.nodes = append(e.nodes, searchNode{cell: c, point: p, gScore: gScore, parent: parent, item: item})
		e.index[c] = idx
		heap.Push(&e.openSet, item)
		return true
	}

	n := &e.nodes[idx]
	if n.closed || gScore >= n.gScore {
		return false
	}
	n.gScore = gScore
	n.parent = parent
	n.item.FCost = gScore + e.heuristic(n.point)
	heap.Fix(&e.openSet, n.item.IndexInQueue)
	return true
}

// step expands one node. It returns false once the search is over.
func (e *engine) step() bool {
	if e.done {
		return false
	}
	if e.openSet.Len() == 0 {
		e.done = true
		return false
	}

	currentItem := heap.Pop(&e.openSet).(*PriorityQueueItem)
	current := currentItem.Node
	e.nodes[current].item = nil
	e.nodes[current].closed = true
	e.expanded++
	e.last = current

	currentCell := e.nodes[current].cell
	currentPoint := e.nodes[current].point
	currentG := e.nodes[current].gScore

	if e.atGoal(currentPoint) {
		e.done = true
		e.found = true
		return false
	}

	for _, n := range e.neighbors.neighbors(e.start, currentCell) {
		if idx, seen := e.index[n.cell]; seen && e.nodes[idx].closed {
			continue
		}
		e.push(n.cell, n.point, currentG+geometry.Distance(currentPoint, n.point), current)
	}
	return true
}

// run drives step until the search ends, the context is done or the
// expansion cap is hit.
func (e *engine) run(ctx context.Context) error {
	for {
		if e.expanded%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if limit := e.tuning.MaxExpansions; limit > 0 && e.expanded >= limit {
			return ErrExpansionLimit
		}
		if !e.step() {
			return nil
		}
	}
}

// path returns the waypoints from the start to the last expanded node.
func (e *engine) path() []Point {
	if e.last < 0 {
		return nil
	}
	cameFrom := func(i int) (int, bool) {
		p := e.nodes[i].parent
		return p, p >= 0
	}
	indices := internal.ReconstructPath(cameFrom, e.last, 0)
	points := make([]Point, len(indices))
	for k, idx := range indices {
		points[k] = e.nodes[idx].point
	}
	return points
}

func (e *engine) result() Result {
	if !e.found {
		return Result{ExpandedNodes: e.expanded}
	}
	return Result{
		Path:          e.path(),
		TotalCost:     e.nodes[e.last].gScore,
		ExpandedNodes: e.expanded,
		Found:         true,
	}
}
