package bspline

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// ChordLengthParameters assigns each point a parameter in [0,1] proportional
// to the cumulative polyline length up to that point.
func ChordLengthParameters(points []r3.Vec) (t []float64, err error) {
	return chordLength(points, ColumnAxis, -1)
}

func chordLength(points []r3.Vec, axis Axis, line int) (t []float64, err error) {
	var (
		n = len(points)
	)
	if n < 2 {
		err = &DegenerateInputError{Axis: axis, Line: line,
			Reason: fmt.Sprintf("need at least 2 points, have %d", n)}
		return
	}
	dist := make([]float64, n-1)
	for i := 1; i < n; i++ {
		dist[i-1] = r3.Norm(r3.Sub(points[i], points[i-1]))
	}
	L := floats.Sum(dist)
	if !(L > 0) || math.IsInf(L, 0) {
		err = &DegenerateInputError{Axis: axis, Line: line,
			Reason: fmt.Sprintf("total chord length is %g", L)}
		return
	}
	t = make([]float64, n)
	for i := 1; i < n-1; i++ {
		t[i] = math.Min(t[i-1]+dist[i-1]/L, 1)
	}
	t[n-1] = 1
	return
}

// AverageParameters collapses one parameter vector per grid line into a
// single vector for the axis: s[j] is the mean over lines of params[i][j].
func AverageParameters(params [][]float64) (s []float64) {
	var (
		n = len(params)
	)
	if n == 0 {
		return
	}
	s = make([]float64, len(params[0]))
	for _, p := range params {
		floats.Add(s, p)
	}
	for j := range s {
		s[j] /= float64(n)
	}
	return
}
