package bspline

import (
	"context"
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gosurface/utils"
)

// Mesh is an m x m sampling of a surface on evenly spaced parameters.
type Mesh struct {
	m       int
	params  []float64
	samples []r3.Vec
}

func (mesh *Mesh) Resolution() int    { return mesh.m }
func (mesh *Mesh) Params() []float64  { return append([]float64(nil), mesh.params...) }
func (mesh *Mesh) At(i, j int) r3.Vec { return mesh.samples[i*mesh.m+j] }

// Rows returns the samples as nested slices, row i holding u = Params()[i].
func (mesh *Mesh) Rows() (rows [][]r3.Vec) {
	rows = make([][]r3.Vec, mesh.m)
	for i := range rows {
		rows[i] = append([]r3.Vec(nil), mesh.samples[i*mesh.m:(i+1)*mesh.m]...)
	}
	return
}

// Bounds is the axis aligned box containing every sample.
func (mesh *Mesh) Bounds() (min, max r3.Vec) {
	min = r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	max = r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, p := range mesh.samples {
		min = r3.Vec{X: math.Min(min.X, p.X), Y: math.Min(min.Y, p.Y), Z: math.Min(min.Z, p.Z)}
		max = r3.Vec{X: math.Max(max.X, p.X), Y: math.Max(max.Y, p.Y), Z: math.Max(max.Z, p.Z)}
	}
	return
}

// Linspace returns m evenly spaced parameters covering [0,1]; a single
// parameter is 0.
func Linspace(m int) (t []float64) {
	t = make([]float64, m)
	if m > 1 {
		floats.Span(t, 0, 1)
		t[m-1] = 1
	}
	return
}

// SampleMesh evaluates the surface on an m x m parameter grid. Mesh rows are
// split across workers goroutines (one per CPU when workers < 1). The basis
// caches are filled before the workers start. Cancelling ctx stops the sweep
// and returns the context error.
func (s *Surface) SampleMesh(ctx context.Context, m, workers int) (mesh *Mesh, err error) {
	if m < 1 {
		err = fmt.Errorf("mesh resolution must be at least 1, have %d", m)
		return
	}
	var (
		params = Linspace(m)
		pm     = utils.NewPartitionMap(workers, m)
		errs   = make([]error, pm.ParallelDegree)
		wg     = sync.WaitGroup{}
	)
	s.column.Warm(params)
	s.row.Warm(params)
	samples := make([]r3.Vec, m*m)
	for np := 0; np < pm.ParallelDegree; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			iMin, iMax := pm.GetBucketRange(np)
			for i := iMin; i < iMax; i++ {
				if errs[np] = ctx.Err(); errs[np] != nil {
					return
				}
				for j := 0; j < m; j++ {
					samples[i*m+j] = s.evaluate(params[i], params[j])
				}
			}
		}(np)
	}
	wg.Wait()
	for _, e := range errs {
		if e != nil {
			err = e
			return
		}
	}
	mesh = &Mesh{m: m, params: params, samples: samples}
	return
}
