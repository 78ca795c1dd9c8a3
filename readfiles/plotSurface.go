package readfiles

import (
	"fmt"
	"image/color"
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/notargets/gosurface/bspline"
)

var (
	meshColor    = color.RGBA{R: 120, G: 120, B: 120, A: 255}
	controlColor = color.RGBA{R: 220, G: 40, B: 40, A: 255}
	sampleColor  = color.RGBA{R: 30, G: 80, B: 220, A: 255}
)

// PlotSurface writes a preview of the XY projection of the sampled mesh as a
// wireframe, with the input samples and the control points overlaid. The
// axes start out fitted to the mesh and grow to take in any control point
// outside it. The image format follows the file extension.
func PlotSurface(filename, title string, s *bspline.Surface, mesh *bspline.Mesh) (err error) {
	var (
		p    = plot.New()
		rows = mesh.Rows()
		m    = mesh.Resolution()
	)
	p.Title.Text = title
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"
	p.Add(plotter.NewGrid())
	lo, hi := mesh.Bounds()
	pad := 0.05 * math.Max(hi.X-lo.X, hi.Y-lo.Y)
	p.X.Min, p.X.Max = lo.X-pad, hi.X+pad
	p.Y.Min, p.Y.Max = lo.Y-pad, hi.Y+pad

	wire := func(pts []r3.Vec) (err error) {
		var l *plotter.Line
		if l, err = plotter.NewLine(projectXY(pts)); err != nil {
			return
		}
		l.Color = meshColor
		l.Width = vg.Points(0.5)
		p.Add(l)
		return
	}
	for i := 0; i < m; i++ {
		col := make([]r3.Vec, m)
		for j := 0; j < m; j++ {
			col[j] = rows[j][i]
		}
		if err = wire(rows[i]); err != nil {
			return
		}
		if err = wire(col); err != nil {
			return
		}
	}

	scatter := func(name string, grid [][]r3.Vec, c color.Color, shape draw.GlyphDrawer) (err error) {
		var (
			pts []r3.Vec
			sc  *plotter.Scatter
		)
		for _, row := range grid {
			pts = append(pts, row...)
		}
		if sc, err = plotter.NewScatter(projectXY(pts)); err != nil {
			return
		}
		sc.GlyphStyle.Color = c
		sc.GlyphStyle.Shape = shape
		sc.GlyphStyle.Radius = vg.Points(3)
		p.Add(sc)
		p.Legend.Add(name, sc)
		return
	}
	if err = scatter("samples", s.Points().Rows(), sampleColor, draw.CircleGlyph{}); err != nil {
		return
	}
	if err = scatter("control points", s.ControlPoints().Rows(), controlColor, draw.CrossGlyph{}); err != nil {
		return
	}
	if err = p.Save(6*vg.Inch, 6*vg.Inch, filename); err != nil {
		return fmt.Errorf("unable to save plot %s: %w", filename, err)
	}
	logrus.Infof("Wrote surface plot to %s", filename)
	return
}

func projectXY(pts []r3.Vec) (xys plotter.XYs) {
	xys = make(plotter.XYs, len(pts))
	for i, pt := range pts {
		xys[i].X, xys[i].Y = pt.X, pt.Y
	}
	return
}
