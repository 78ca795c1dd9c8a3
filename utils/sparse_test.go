package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSparse(t *testing.T) {
	{ // Banded assembly and dense conversion
		D := NewDOK(3, 3)
		D.Set(0, 0, 1).Set(1, 0, 0.5).Set(1, 1, 0.5).Set(2, 2, 1)
		assert.Equal(t, 4, D.NNZ())
		M := D.ToMatrix()
		assert.Equal(t, []float64{
			1, 0, 0,
			0.5, 0.5, 0,
			0, 0, 1,
		}, M.Data())
		assert.Panics(t, func() { D.Set(3, 0, 1) })
		D.SetReadOnly("D")
		assert.Panics(t, func() { D.Set(0, 0, 2) })
	}
	{ // CSR product agrees with the dense product
		D := NewDOK(2, 3)
		D.Set(0, 1, 2).Set(1, 0, -1).Set(1, 2, 3)
		X := NewMatrix(3, 2, []float64{
			1, 2,
			3, 4,
			5, 6,
		})
		R := D.ToCSR().MulMatrix(X)
		Dense := NewMatrix(2, 2)
		Dense.M.Mul(D.ToMatrix().M, X.M)
		assert.Equal(t, Dense.Data(), R.Data())
		assert.Equal(t, []float64{6, 8, 14, 16}, R.Data())
	}
}
