package bspline

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// vecGrid is a square, row major grid of 3D points.
type vecGrid struct {
	n    int
	data []r3.Vec
}

func newVecGrid(n int) vecGrid {
	return vecGrid{n: n, data: make([]r3.Vec, n*n)}
}

// Size is the number of points along either axis.
func (g vecGrid) Size() int { return g.n }

func (g vecGrid) At(i, j int) r3.Vec {
	if i < 0 || i >= g.n || j < 0 || j >= g.n {
		panic(fmt.Errorf("grid index out of bounds: i, j = %d, %d, size = %d", i, j, g.n))
	}
	return g.data[i*g.n+j]
}

// Row returns a copy of the points with first index i.
func (g vecGrid) Row(i int) (row []r3.Vec) {
	row = make([]r3.Vec, g.n)
	copy(row, g.data[i*g.n:(i+1)*g.n])
	return
}

// Column returns a copy of the points with second index j.
func (g vecGrid) Column(j int) (col []r3.Vec) {
	col = make([]r3.Vec, g.n)
	for i := range col {
		col[i] = g.data[i*g.n+j]
	}
	return
}

// Rows returns a copy of the grid as nested slices.
func (g vecGrid) Rows() (rows [][]r3.Vec) {
	rows = make([][]r3.Vec, g.n)
	for i := range rows {
		rows[i] = g.Row(i)
	}
	return
}

// PointGrid is the n x n matrix of samples a surface interpolates.
type PointGrid struct {
	vecGrid
}

// ControlPointGrid holds the coefficients of the fitted basis expansion.
type ControlPointGrid struct {
	vecGrid
}

func NewPointGrid(rows [][]r3.Vec) (pg PointGrid, err error) {
	var (
		n = len(rows)
	)
	if n == 0 {
		err = &InvalidGridError{Reason: "grid is empty"}
		return
	}
	g := newVecGrid(n)
	for i, row := range rows {
		if len(row) != n {
			err = &InvalidGridError{Reason: fmt.Sprintf("row %d has %d points, grid needs %d", i, len(row), n)}
			return
		}
		copy(g.data[i*n:], row)
	}
	pg = PointGrid{g}
	return
}

// NewPointGridFromPlacements builds an n x n grid from points that each carry
// an explicit (row, column) placement. Every cell must be filled exactly once.
func NewPointGridFromPlacements(n int, points []r3.Vec, indices [][2]int) (pg PointGrid, err error) {
	if n < 1 {
		err = &InvalidGridError{Reason: fmt.Sprintf("grid size must be positive, have %d", n)}
		return
	}
	if len(points) != len(indices) {
		err = &InvalidGridError{Reason: fmt.Sprintf("have %d points but %d placements", len(points), len(indices))}
		return
	}
	var (
		g      = newVecGrid(n)
		filled = make([]bool, n*n)
	)
	for p, ind := range indices {
		i, j := ind[0], ind[1]
		if i < 0 || i >= n || j < 0 || j >= n {
			err = &InvalidGridError{Reason: fmt.Sprintf("placement (%d, %d) of point %d is outside a %dx%d grid", i, j, p, n, n)}
			return
		}
		if filled[i*n+j] {
			err = &InvalidGridError{Reason: fmt.Sprintf("cell (%d, %d) is placed more than once", i, j)}
			return
		}
		filled[i*n+j] = true
		g.data[i*n+j] = points[p]
	}
	for c, ok := range filled {
		if !ok {
			err = &InvalidGridError{Reason: fmt.Sprintf("cell (%d, %d) has no point", c/n, c%n)}
			return
		}
	}
	pg = PointGrid{g}
	return
}
