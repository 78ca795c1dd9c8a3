package bspline

import (
	"fmt"
	"math"
	"sync"

	"github.com/notargets/gosurface/utils"
)

type basisKey struct {
	t    uint64 // exact bit pattern of the parameter
	i, k int
}

// Basis evaluates the B-spline basis functions of one knot vector. Values are
// memoized for the life of the Basis; the cache is safe for concurrent use.
type Basis struct {
	Knots  KnotVector
	Degree int
	N      int // Number of basis functions
	cache  sync.Map
}

// ColumnBasis and RowBasis bind a Basis to one axis of a surface.
type ColumnBasis struct{ *Basis }
type RowBasis struct{ *Basis }

func NewBasis(knots KnotVector, k int) *Basis {
	return &Basis{
		Knots:  knots,
		Degree: k,
		N:      knots.NumBasis(k),
	}
}

// Eval returns N(i,Degree)(t).
func (b *Basis) Eval(i int, t float64) float64 {
	return b.EvalDegree(i, b.Degree, t)
}

// EvalDegree returns N(i,k)(t) for any k up to Degree using the Cox-de Boor
// recursion, memoizing every intermediate value.
func (b *Basis) EvalDegree(i, k int, t float64) float64 {
	if i < 0 || k < 0 || i+k+1 >= len(b.Knots) {
		panic(fmt.Errorf("basis index out of bounds: i = %d, k = %d, knots = %d", i, k, len(b.Knots)))
	}
	key := basisKey{t: math.Float64bits(t), i: i, k: k}
	if val, ok := b.cache.Load(key); ok {
		return val.(float64)
	}
	val, _ := b.cache.LoadOrStore(key, b.coxDeBoor(i, k, t))
	return val.(float64)
}

func (b *Basis) coxDeBoor(i, k int, t float64) (val float64) {
	var (
		kv = b.Knots
	)
	if k == 0 {
		return b.indicator(i, t)
	}
	if d := kv[i+k] - kv[i]; math.Abs(d) > utils.NODETOL {
		val += (t - kv[i]) / d * b.EvalDegree(i, k-1, t)
	}
	if d := kv[i+k+1] - kv[i+1]; math.Abs(d) > utils.NODETOL {
		val += (kv[i+k+1] - t) / d * b.EvalDegree(i+1, k-1, t)
	}
	return
}

// indicator is the degree zero basis on the half open span [kv[i], kv[i+1]).
// The right end of the domain belongs to the last non-empty span.
func (b *Basis) indicator(i int, t float64) float64 {
	var (
		kv   = b.Knots
		last = kv[len(kv)-1]
	)
	if kv[i] <= t && t < kv[i+1] {
		return 1
	}
	if t == last && kv[i] < kv[i+1] && kv[i+1] == last {
		return 1
	}
	return 0
}

// Values returns N(i,Degree)(t) for every i.
func (b *Basis) Values(t float64) (vals []float64) {
	vals = make([]float64, b.N)
	for i := range vals {
		vals[i] = b.Eval(i, t)
	}
	return
}

// Local computes the Degree+1 basis functions that can be non-zero at t,
// N(span-Degree..span, Degree)(t), with the triangular de Boor table. It does
// not touch the cache.
func (b *Basis) Local(t float64) (span int, vals []float64) {
	var (
		p     = b.Degree
		kv    = b.Knots
		left  = make([]float64, p+1)
		right = make([]float64, p+1)
	)
	span = kv.Span(p, t)
	vals = make([]float64, p+1)
	vals[0] = 1
	for j := 1; j <= p; j++ {
		left[j] = t - kv[span+1-j]
		right[j] = kv[span+j] - t
		var saved float64
		for r := 0; r < j; r++ {
			temp := vals[r] / (right[r+1] + left[j-r])
			vals[r] = saved + right[r+1]*temp
			saved = left[j-r] * temp
		}
		vals[j] = saved
	}
	return
}

// Warm fills the cache for every basis function at each parameter in ts.
func (b *Basis) Warm(ts []float64) {
	for _, t := range ts {
		for i := 0; i < b.N; i++ {
			b.Eval(i, t)
		}
	}
}

func (b *Basis) CacheLen() (n int) {
	b.cache.Range(func(_, _ any) bool {
		n++
		return true
	})
	return
}
