package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func mathNaN() float64 { return math.NaN() }
func mathInf() float64 { return math.Inf(1) }

func TestVector(t *testing.T) {
	v := NewVector(3, []float64{1, -4, 2})
	nr, nc := v.Dims()
	assert.Equal(t, [2]int{3, 1}, [2]int{nr, nc})
	assert.Equal(t, -4., v.AtVec(1))
	assert.Equal(t, 2., v.At(2, 0))
	assert.Equal(t, []float64{1, -4, 2}, v.Data())
	assert.Equal(t, []float64{0, 0}, NewVector(2).Data())
	assert.Panics(t, func() { NewVector(2, []float64{1}) })
}
