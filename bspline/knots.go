package bspline

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// KnotVector is a clamped, non-decreasing knot sequence on [0,1].
type KnotVector []float64

// NewKnotVector places knots by averaging: the k+1 end knots are clamped to 0
// and 1, and each interior knot is the mean of k consecutive parameters.
func NewKnotVector(s []float64, k int) (kv KnotVector, err error) {
	var (
		n = len(s)
	)
	if k < 1 || n <= k {
		err = &InvalidDegreeError{Degree: k, Samples: n}
		return
	}
	kv = make(KnotVector, n+k+1)
	for j := 1; j <= n-k-1; j++ {
		kv[j+k] = floats.Sum(s[j:j+k]) / float64(k)
	}
	for j := 0; j <= k; j++ {
		kv[j] = 0
		kv[n+k-j] = 1
	}
	return
}

func (kv KnotVector) Len() int { return len(kv) }

func (kv KnotVector) Domain() (lo, hi float64) {
	return kv[0], kv[len(kv)-1]
}

// NumBasis is the number of degree k basis functions the knots support.
func (kv KnotVector) NumBasis(k int) int { return len(kv) - k - 1 }

// Span finds the index s of the non-empty knot span with kv[s] <= t < kv[s+1].
// Parameters at or beyond the right end of the domain map to the last
// non-empty span, parameters before the left end to the first.
func (kv KnotVector) Span(k int, t float64) int {
	var (
		n = kv.NumBasis(k) - 1
	)
	if t >= kv[n+1] {
		return n
	}
	if t < kv[k] {
		return k
	}
	low, high := k, n+1
	mid := (low + high) / 2
	for t < kv[mid] || t >= kv[mid+1] {
		if t < kv[mid] {
			high = mid
		} else {
			low = mid
		}
		mid = (low + high) / 2
	}
	return mid
}

// Validate checks the shape of a clamped knot vector for degree k.
func (kv KnotVector) Validate(k int) (err error) {
	var (
		m = len(kv)
	)
	if m < 2*(k+1) {
		return fmt.Errorf("knot vector of length %d is too short for degree %d", m, k)
	}
	for j := 1; j < m; j++ {
		if kv[j] < kv[j-1] {
			return fmt.Errorf("knot vector decreases at index %d: %g < %g", j, kv[j], kv[j-1])
		}
	}
	for j := 0; j <= k; j++ {
		if kv[j] != 0 || kv[m-1-j] != 1 {
			return fmt.Errorf("knot vector is not clamped to [0,1] with multiplicity %d", k+1)
		}
	}
	return
}
