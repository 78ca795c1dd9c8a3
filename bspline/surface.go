// Package bspline fits an interpolating tensor product B-spline surface to a
// square grid of 3D samples and evaluates it on [0,1]x[0,1].
package bspline

import (
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/spatial/r3"
)

// Surface is immutable once built; only the basis caches grow afterwards.
type Surface struct {
	points  PointGrid
	degree  int
	sCol    []float64 // Averaged column axis parameters, one per grid row index
	sRow    []float64 // Averaged row axis parameters, one per grid column index
	column  ColumnBasis
	row     RowBasis
	control ControlPointGrid
}

// NewSurface fits a degree k surface through every point of grid. Construction
// either completes or returns the first error encountered.
func NewSurface(grid PointGrid, k int) (s *Surface, err error) {
	var (
		n                    = grid.Size()
		colParams, rowParams = make([][]float64, n), make([][]float64, n)
	)
	if k < 1 || n <= k {
		err = &InvalidDegreeError{Degree: k, Samples: n}
		return
	}
	for i := 0; i < n; i++ {
		if colParams[i], err = chordLength(grid.Column(i), ColumnAxis, i); err != nil {
			return
		}
		if rowParams[i], err = chordLength(grid.Row(i), RowAxis, i); err != nil {
			return
		}
	}
	sCol, sRow := AverageParameters(colParams), AverageParameters(rowParams)
	logrus.Debugf("column parameters: %v", sCol)
	logrus.Debugf("row parameters: %v", sRow)

	var colKnots, rowKnots KnotVector
	if colKnots, err = NewKnotVector(sCol, k); err != nil {
		return
	}
	if rowKnots, err = NewKnotVector(sRow, k); err != nil {
		return
	}
	logrus.Debugf("column knots: %v", colKnots)
	logrus.Debugf("row knots: %v", rowKnots)

	var (
		column = ColumnBasis{NewBasis(colKnots, k)}
		row    = RowBasis{NewBasis(rowKnots, k)}
	)
	Q, err := solveColumns(column, sCol, grid)
	if err != nil {
		return
	}
	control, err := solveRows(row, sRow, Q)
	if err != nil {
		return
	}
	s = &Surface{
		points:  grid,
		degree:  k,
		sCol:    sCol,
		sRow:    sRow,
		column:  column,
		row:     row,
		control: control,
	}
	return
}

func (s *Surface) Degree() int                     { return s.degree }
func (s *Surface) Size() int                       { return s.points.Size() }
func (s *Surface) Points() PointGrid               { return s.points }
func (s *Surface) ControlPoints() ControlPointGrid { return s.control }
func (s *Surface) ColumnBasis() ColumnBasis        { return s.column }
func (s *Surface) RowBasis() RowBasis              { return s.row }

func (s *Surface) ColumnParameters() []float64 { return append([]float64(nil), s.sCol...) }
func (s *Surface) RowParameters() []float64    { return append([]float64(nil), s.sRow...) }
func (s *Surface) ColumnKnots() KnotVector     { return append(KnotVector(nil), s.column.Knots...) }
func (s *Surface) RowKnots() KnotVector        { return append(KnotVector(nil), s.row.Knots...) }

// Evaluate returns the surface point at (u,v), u along the column axis and v
// along the row axis.
func (s *Surface) Evaluate(u, v float64) (pt r3.Vec, err error) {
	if !(u >= 0 && u <= 1 && v >= 0 && v <= 1) {
		err = &DomainError{U: u, V: v}
		return
	}
	pt = s.evaluate(u, v)
	return
}

func (s *Surface) evaluate(u, v float64) (pt r3.Vec) {
	var (
		n  = s.Size()
		Nu = s.column.Values(u)
		Nv = s.row.Values(v)
	)
	for i := 0; i < n; i++ {
		if Nu[i] == 0 {
			continue
		}
		var rowSum r3.Vec
		for j := 0; j < n; j++ {
			if Nv[j] == 0 {
				continue
			}
			rowSum = r3.Add(rowSum, r3.Scale(Nv[j], s.control.At(i, j)))
		}
		pt = r3.Add(pt, r3.Scale(Nu[i], rowSum))
	}
	return
}

// evaluateLocal sums only the (Degree+1)^2 live terms at (u,v), with basis
// values from the per call de Boor table instead of the cache.
func (s *Surface) evaluateLocal(u, v float64) (pt r3.Vec) {
	var (
		k         = s.degree
		spanU, Nu = s.column.Local(u)
		spanV, Nv = s.row.Local(v)
	)
	for a, nu := range Nu {
		var rowSum r3.Vec
		for b, nv := range Nv {
			rowSum = r3.Add(rowSum, r3.Scale(nv, s.control.At(spanU-k+a, spanV-k+b)))
		}
		pt = r3.Add(pt, r3.Scale(nu, rowSum))
	}
	return
}

// MaxDeviation is the largest distance between a sample and the surface
// evaluated at that sample's parameters. It is computed without the basis
// caches, so it also checks the cached evaluation path independently.
func (s *Surface) MaxDeviation() (dev float64) {
	var (
		n = s.Size()
	)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			d := r3.Norm(r3.Sub(s.evaluateLocal(s.sCol[i], s.sRow[j]), s.points.At(i, j)))
			dev = math.Max(dev, d)
		}
	}
	return
}
