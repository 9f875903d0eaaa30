package viz

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/pdrpinto/planner/geometry"
)

// ObstacleColor is used by DrawObstacles.
const ObstacleColor uint32 = 0x808080

// Plot renders primitives onto a gonum plot that can be saved as an image.
type Plot struct {
	plot *plot.Plot
	err  error
}

// NewPlot creates an empty plot in map coordinates.
func NewPlot(title string) *Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "y (m)"
	return &Plot{plot: p}
}

// DrawLine adds a line segment.
func (p *Plot) DrawLine(p0, p1 geometry.Point, c uint32) {
	p.addLine(plotter.XYs{{X: p0.X, Y: p0.Y}, {X: p1.X, Y: p1.Y}}, c, 1)
}

// DrawCross adds an X-shaped marker of the given size centered on center.
func (p *Plot) DrawCross(center geometry.Point, size float64, c uint32) {
	h := size / 2
	p.addLine(plotter.XYs{{X: center.X - h, Y: center.Y - h}, {X: center.X + h, Y: center.Y + h}}, c, 2)
	p.addLine(plotter.XYs{{X: center.X - h, Y: center.Y + h}, {X: center.X + h, Y: center.Y - h}}, c, 2)
}

// DrawObstacles adds every segment in ObstacleColor.
func (p *Plot) DrawObstacles(segments []geometry.Segment) {
	for _, s := range segments {
		p.addLine(plotter.XYs{{X: s.P0.X, Y: s.P0.Y}, {X: s.P1.X, Y: s.P1.Y}}, ObstacleColor, 1.5)
	}
}

// DrawTrajectory adds a polyline through points.
func (p *Plot) DrawTrajectory(points []geometry.Point, c uint32) {
	if len(points) < 2 {
		return
	}
	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
	}
	p.addLine(xys, c, 1)
}

func (p *Plot) addLine(xys plotter.XYs, c uint32, width float64) {
	if p.err != nil {
		return
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		p.err = err
		return
	}
	line.Color = RGB(c)
	line.Width = vg.Points(width)
	p.plot.Add(line)
}

// Save writes the plot to path; the format follows the extension.
// Errors from earlier drawing calls are reported here.
func (p *Plot) Save(path string, width, height vg.Length) error {
	if p.err != nil {
		return fmt.Errorf("failed to build plot: %w", p.err)
	}
	if err := p.plot.Save(width, height, path); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	return nil
}
