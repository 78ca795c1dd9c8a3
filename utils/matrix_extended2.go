package utils

import (
	"gonum.org/v1/gonum/mat"
)

const IllConditioned = 1e16

// ConditionNumber is the ratio of the largest to the smallest singular value.
// A failed or degenerate factorization reports IllConditioned.
func (m Matrix) ConditionNumber() float64 {
	min, max := m.SingularValues()
	if min < 1e-16 {
		return IllConditioned
	}
	return max / min
}

func (m Matrix) SingularValues() (min, max float64) {
	var svd mat.SVD
	if !svd.Factorize(m.M, mat.SVDNone) {
		return 0, IllConditioned
	}
	values := svd.Values(nil)
	if len(values) == 0 {
		return 0, IllConditioned
	}
	// Singular values are in descending order
	return values[len(values)-1], values[0]
}
