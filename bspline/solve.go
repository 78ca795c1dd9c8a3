package bspline

import (
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gosurface/utils"
)

const (
	// MaxConditionNumber is the largest collocation condition number accepted
	// before a system is reported as singular.
	MaxConditionNumber = 1.e12
	residualTol        = 1.e-8
)

// CollocationMatrix assembles M[p][q] = N(q,Degree)(sites[p]). Only the
// Degree+1 functions supported on the span of each site are evaluated.
func CollocationMatrix(b *Basis, sites []float64) (C utils.DOK) {
	C = utils.NewDOK(len(sites), b.N)
	for p, t := range sites {
		span := b.Knots.Span(b.Degree, t)
		for q := max(span-b.Degree, 0); q <= span && q < b.N; q++ {
			if val := b.Eval(q, t); val != 0 {
				C.Set(p, q, val)
			}
		}
	}
	C.SetReadOnly("collocation")
	return
}

// solveCollocation solves M X = rhs for the collocation matrix of b at sites.
// Every column of rhs is solved against a single factorization.
func solveCollocation(b *Basis, axis Axis, sites []float64, rhs utils.Matrix) (X utils.Matrix, err error) {
	var (
		C    = CollocationMatrix(b, sites)
		M    = C.ToMatrix()
		cond = M.ConditionNumber()
	)
	logrus.Debugf("%s collocation: %d non-zeros, condition number %8.3g", axis, C.NNZ(), cond)
	if cond > MaxConditionNumber {
		err = &SingularSystemError{Axis: axis, Condition: cond,
			Reason: "parameter sites are repeated or too close for the degree"}
		return
	}
	if X, err = M.LUSolve(rhs); err != nil {
		err = &SingularSystemError{Axis: axis, Condition: cond, Reason: err.Error()}
		return
	}
	if utils.IsNan(X) {
		err = &SingularSystemError{Axis: axis, Condition: cond, Reason: "solution is not finite"}
		return
	}
	scale := math.Max(1, math.Max(math.Abs(rhs.Min()), math.Abs(rhs.Max())))
	if resid := C.ToCSR().MulMatrix(X).MaxAbsDiff(rhs); resid > residualTol*scale {
		err = &SingularSystemError{Axis: axis, Condition: cond, Reason: "solution does not reproduce the samples"}
		logrus.Debugf("%s collocation residual %g exceeds %g", axis, resid, residualTol*scale)
		return
	}
	return
}

// solveColumns is the first stage of the control point solve. Column d of the
// point grid, per coordinate, is the right hand side of column 3*d+c, giving
// the intermediate grid Q with the same layout.
func solveColumns(col ColumnBasis, sites []float64, P PointGrid) (Q utils.Matrix, err error) {
	var (
		n   = P.Size()
		rhs = utils.NewMatrix(n, 3*n)
	)
	for p := 0; p < n; p++ {
		row := make([]float64, 3*n)
		for d, pt := range P.Row(p) {
			row[3*d], row[3*d+1], row[3*d+2] = pt.X, pt.Y, pt.Z
		}
		rhs.SetRow(p, row)
	}
	return solveCollocation(col.Basis, ColumnAxis, sites, rhs)
}

// solveRows is the second stage: each row c of Q is solved against the row
// axis collocation matrix, giving row c of the control points.
func solveRows(row RowBasis, sites []float64, Q utils.Matrix) (cp ControlPointGrid, err error) {
	var (
		n, _ = Q.Dims()
		rhs  = utils.NewMatrix(n, 3*n)
		X    utils.Matrix
	)
	for c := 0; c < n; c++ {
		qc := Q.Row(c)
		for j := 0; j < n; j++ {
			for ch := 0; ch < 3; ch++ {
				rhs.Set(j, 3*c+ch, qc.AtVec(3*j+ch))
			}
		}
	}
	if X, err = solveCollocation(row.Basis, RowAxis, sites, rhs); err != nil {
		return
	}
	cp = ControlPointGrid{newVecGrid(n)}
	for c := 0; c < n; c++ {
		x, y, z := X.Col(3*c), X.Col(3*c+1), X.Col(3*c+2)
		for j := 0; j < n; j++ {
			cp.data[c*n+j] = r3.Vec{X: x.AtVec(j), Y: y.AtVec(j), Z: z.AtVec(j)}
		}
	}
	return
}
