// Package viz provides scenes that collect or render planner drawing
// primitives.
package viz

import (
	"image/color"

	"github.com/pdrpinto/planner/geometry"
)

// Line is a recorded line primitive.
type Line struct {
	P0, P1 geometry.Point
	Color  uint32
}

// Cross is a recorded cross marker.
type Cross struct {
	Center geometry.Point
	Size   float64
	Color  uint32
}

// Recorder keeps every primitive drawn into it, in order.
type Recorder struct {
	Lines   []Line
	Crosses []Cross
}

// DrawLine records a line.
func (r *Recorder) DrawLine(p0, p1 geometry.Point, c uint32) {
	r.Lines = append(r.Lines, Line{P0: p0, P1: p1, Color: c})
}

// DrawCross records a cross marker.
func (r *Recorder) DrawCross(p geometry.Point, size float64, c uint32) {
	r.Crosses = append(r.Crosses, Cross{Center: p, Size: size, Color: c})
}

// Reset drops all recorded primitives.
func (r *Recorder) Reset() {
	r.Lines = r.Lines[:0]
	r.Crosses = r.Crosses[:0]
}

// RGB converts a 0xRRGGBB value to an opaque color.
func RGB(c uint32) color.RGBA {
	return color.RGBA{R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c), A: 255}
}
