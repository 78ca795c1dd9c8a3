package readfiles

import (
	"fmt"
	"os"

	"github.com/ghodss/yaml"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gosurface/bspline"
)

// SurfaceGridFile is the on disk description of a sampled surface, e.g.
//
//	{"surface": {"gridSize": [2, 2],
//	             "points": [[0,0,0], [1,0,0], [0,1,0], [1,1,1]],
//	             "indices": [[0,0], [0,1], [1,0], [1,1]]}}
//
// The same structure may be written as YAML.
type SurfaceGridFile struct {
	Surface struct {
		GridSize []int       `json:"gridSize"`
		Points   [][]float64 `json:"points"`
		Indices  [][]int     `json:"indices"`
	} `json:"surface"`
}

func ReadSurfaceGrid(filename string) (grid bspline.PointGrid, points []r3.Vec, err error) {
	var (
		data []byte
	)
	logrus.Infof("Reading surface grid file named: %s", filename)
	if data, err = os.ReadFile(filename); err != nil {
		err = fmt.Errorf("unable to read grid file %s: %w", filename, err)
		return
	}
	if grid, points, err = ParseSurfaceGrid(data); err != nil {
		err = fmt.Errorf("grid file %s: %w", filename, err)
	}
	return
}

// ParseSurfaceGrid decodes a JSON or YAML grid description and places every
// point at its (row, column) index.
func ParseSurfaceGrid(data []byte) (grid bspline.PointGrid, points []r3.Vec, err error) {
	var (
		sf SurfaceGridFile
	)
	if err = yaml.Unmarshal(data, &sf); err != nil {
		err = fmt.Errorf("unable to parse grid: %w", err)
		return
	}
	var (
		size    = sf.Surface.GridSize
		indices = make([][2]int, len(sf.Surface.Indices))
	)
	if len(size) != 2 {
		err = fmt.Errorf("gridSize must have 2 entries, have %d", len(size))
		return
	}
	if size[0] != size[1] {
		err = fmt.Errorf("grid must be square, have gridSize %d x %d", size[0], size[1])
		return
	}
	points = make([]r3.Vec, len(sf.Surface.Points))
	for i, p := range sf.Surface.Points {
		if len(p) != 3 {
			err = fmt.Errorf("point %d has %d coordinates, need 3", i, len(p))
			return
		}
		points[i] = r3.Vec{X: p[0], Y: p[1], Z: p[2]}
	}
	for i, ind := range sf.Surface.Indices {
		if len(ind) != 2 {
			err = fmt.Errorf("index %d has %d entries, need 2", i, len(ind))
			return
		}
		indices[i] = [2]int{ind[0], ind[1]}
	}
	if grid, err = bspline.NewPointGridFromPlacements(size[0], points, indices); err != nil {
		return
	}
	logrus.Debugf("Read %d x %d grid with %d points", size[0], size[1], len(points))
	return
}
