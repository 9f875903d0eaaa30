package planner

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pdrpinto/planner/geometry"
)

// cell is a quantized lattice index relative to the search start.
type cell struct {
	i, j int
}

// latticeDeltas are the eight compass moves in declaration order:
// E, W, N, S, NE, SW, SE, NW.
var latticeDeltas = [8]cell{
	{1, 0}, {-1, 0},
	{0, 1}, {0, -1},
	{1, 1}, {-1, -1},
	{1, -1}, {-1, 1},
}

// Lattice is the fixed set of displacement vectors reachable in one move.
type Lattice struct {
	step    float64
	offsets [8]Point
}

// NewLattice derives the eight offsets from the grid size.
func NewLattice(gridSize float64) Lattice {
	l := Lattice{step: gridSize}
	for k, d := range latticeDeltas {
		l.offsets[k] = Point{X: float64(d.i) * gridSize, Y: float64(d.j) * gridSize}
	}
	return l
}

// Offsets returns the displacement vectors in declaration order.
func (l Lattice) Offsets() [8]Point { return l.offsets }

// Step returns the grid size the lattice was built from.
func (l Lattice) Step() float64 { return l.step }

// point maps a cell back to map coordinates. It is computed from the
// integers each time so no error accumulates along a route.
func (l Lattice) point(origin Point, c cell) Point {
	return r2.Add(origin, Point{X: float64(c.i) * l.step, Y: float64(c.j) * l.step})
}

// NeighborGenerator combines the lattice with the obstacle segments.
type NeighborGenerator struct {
	lattice       Lattice
	segments      []geometry.Segment
	halfClearance float64
}

// NewNeighborGenerator snapshots the obstacle segments of m. A nil map has
// no obstacles.
func NewNeighborGenerator(lattice Lattice, m ObstacleMap, clearance float64) NeighborGenerator {
	var segments []geometry.Segment
	if m != nil {
		segments = m.Segments()
	}
	return NeighborGenerator{lattice: lattice, segments: segments, halfClearance: clearance / 2}
}

// Clear reports whether travelling from one point to another stays farther
// than half the safety clearance from every obstacle segment.
func (g NeighborGenerator) Clear(from, to Point) bool {
	for _, s := range g.segments {
		if geometry.SegmentDistance(s.P0, s.P1, from, to) <= g.halfClearance {
			return false
		}
	}
	return true
}

// neighbor is a reachable lattice cell and its map coordinates.
type neighbor struct {
	cell  cell
	point Point
}

// neighbors returns the collision-free lattice cells adjacent to c, in
// lattice declaration order. Cells are relative to origin.
func (g NeighborGenerator) neighbors(origin Point, c cell) []neighbor {
	from := g.lattice.point(origin, c)
	res := make([]neighbor, 0, len(latticeDeltas))
	for _, d := range latticeDeltas {
		next := cell{c.i + d.i, c.j + d.j}
		to := g.lattice.point(origin, next)
		if g.Clear(from, to) {
			res = append(res, neighbor{cell: next, point: to})
		}
	}
	return res
}

// Neighbors returns the collision-free lattice destinations from loc, in
// lattice declaration order.
func (g NeighborGenerator) Neighbors(loc Point) []Point {
	cells := g.neighbors(loc, cell{})
	points := make([]Point, len(cells))
	for k, n := range cells {
		points[k] = n.point
	}
	return points
}
