package bspline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gosurface/utils"
)

func TestCollocationMatrix(t *testing.T) {
	sites := []float64{0, 0.2, 0.5, 0.7, 1}
	kv, err := NewKnotVector(sites, 2)
	require.NoError(t, err)
	b := NewBasis(kv, 2)
	C := CollocationMatrix(b, sites)
	nr, nc := C.Dims()
	assert.Equal(t, 5, nr)
	assert.Equal(t, 5, nc)
	assert.True(t, C.NNZ() <= 5*3)
	M := C.ToMatrix()
	for p := 0; p < nr; p++ {
		var sum float64
		for q := 0; q < nc; q++ {
			assert.Equal(t, b.Eval(q, sites[p]), M.At(p, q))
			sum += M.At(p, q)
		}
		assert.InDelta(t, 1., sum, 1.e-14)
	}
	// Clamped ends interpolate the end points
	assert.Equal(t, 1., M.At(0, 0))
	assert.Equal(t, 1., M.At(4, 4))
	assert.Panics(t, func() { C.Set(0, 0, 2) })
}

func TestSolveCollocation(t *testing.T) {
	{ // Solution reproduces the right hand side
		sites := []float64{0, 0.2, 0.5, 0.7, 1}
		kv, err := NewKnotVector(sites, 3)
		require.NoError(t, err)
		b := NewBasis(kv, 3)
		rhs := utils.NewMatrix(5, 2, []float64{
			1, -1,
			2, 0,
			0, 4,
			-3, 1,
			5, 2,
		})
		X, err := solveCollocation(b, ColumnAxis, sites, rhs)
		require.NoError(t, err)
		R := CollocationMatrix(b, sites).ToCSR().MulMatrix(X)
		assert.InDelta(t, 0., R.MaxAbsDiff(rhs), 1.e-12)
	}
	{ // Repeated sites make the system singular
		sites := []float64{0, 0.5, 0.5, 1}
		kv, err := NewKnotVector(sites, 1)
		require.NoError(t, err)
		b := NewBasis(kv, 1)
		_, err = solveCollocation(b, RowAxis, sites, utils.NewMatrix(4, 1, []float64{0, 1, 2, 3}))
		var sErr *SingularSystemError
		require.True(t, errors.As(err, &sErr))
		assert.Equal(t, RowAxis, sErr.Axis)
		assert.True(t, sErr.Condition > MaxConditionNumber)
	}
}
