// Package geometry holds the planar primitives shared by the planner, the
// map loader and the renderers.
package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a location in map coordinates (meters).
type Point = r2.Vec

// Segment is a line segment between two endpoints.
type Segment struct {
	P0, P1 Point
}

// NewSegment builds a segment from raw coordinates.
func NewSegment(x0, y0, x1, y1 float64) Segment {
	return Segment{P0: Point{X: x0, Y: y0}, P1: Point{X: x1, Y: y1}}
}

// Length returns the Euclidean length of s.
func (s Segment) Length() float64 {
	return r2.Norm(r2.Sub(s.P1, s.P0))
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	return r2.Norm(r2.Sub(a, b))
}

// PointSegmentDistance returns the minimum distance from p to the segment a-b.
func PointSegmentDistance(p, a, b Point) float64 {
	ab := r2.Sub(b, a)
	l2 := r2.Norm2(ab)
	if l2 == 0 {
		return Distance(p, a)
	}
	t := r2.Dot(r2.Sub(p, a), ab) / l2
	t = math.Max(0, math.Min(1, t))
	closest := r2.Add(a, r2.Scale(t, ab))
	return Distance(p, closest)
}

// Intersects reports whether segments a0-a1 and b0-b1 share at least one point.
func Intersects(a0, a1, b0, b1 Point) bool {
	d1 := orientation(b0, b1, a0)
	d2 := orientation(b0, b1, a1)
	d3 := orientation(a0, a1, b0)
	d4 := orientation(a0, a1, b1)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	// collinear touching cases
	switch {
	case d1 == 0 && onSegment(b0, b1, a0):
		return true
	case d2 == 0 && onSegment(b0, b1, a1):
		return true
	case d3 == 0 && onSegment(a0, a1, b0):
		return true
	case d4 == 0 && onSegment(a0, a1, b1):
		return true
	}
	return false
}

// SegmentDistance returns the minimum distance between segments a0-a1 and
// b0-b1. Intersecting segments are at distance zero.
func SegmentDistance(a0, a1, b0, b1 Point) float64 {
	if Intersects(a0, a1, b0, b1) {
		return 0
	}
	return math.Min(
		math.Min(PointSegmentDistance(a0, b0, b1), PointSegmentDistance(a1, b0, b1)),
		math.Min(PointSegmentDistance(b0, a0, a1), PointSegmentDistance(b1, a0, a1)),
	)
}

func orientation(a, b, c Point) float64 {
	return r2.Cross(r2.Sub(b, a), r2.Sub(c, a))
}

// onSegment assumes p is collinear with a-b.
func onSegment(a, b, p Point) bool {
	return p.X >= math.Min(a.X, b.X) && p.X <= math.Max(a.X, b.X) &&
		p.Y >= math.Min(a.Y, b.Y) && p.Y <= math.Max(a.Y, b.Y)
}
