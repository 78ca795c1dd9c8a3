package readfiles

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gosurface/bspline"
)

// SurfaceOutput is the numeric result of a fit handed to downstream renderers.
type SurfaceOutput struct {
	Title            string         `json:"title,omitempty"`
	Degree           int            `json:"degree"`
	ColumnParameters []float64      `json:"columnParameters"`
	RowParameters    []float64      `json:"rowParameters"`
	ColumnKnots      []float64      `json:"columnKnots"`
	RowKnots         []float64      `json:"rowKnots"`
	MaxDeviation     float64        `json:"maxDeviation"`
	Points           [][][3]float64 `json:"points"`
	ControlPoints    [][][3]float64 `json:"controlPoints"`
	MeshParameters   []float64      `json:"meshParameters,omitempty"`
	Mesh             [][][3]float64 `json:"mesh,omitempty"`
}

func NewSurfaceOutput(title string, s *bspline.Surface, mesh *bspline.Mesh) (so *SurfaceOutput) {
	so = &SurfaceOutput{
		Title:            title,
		Degree:           s.Degree(),
		ColumnParameters: s.ColumnParameters(),
		RowParameters:    s.RowParameters(),
		ColumnKnots:      s.ColumnKnots(),
		RowKnots:         s.RowKnots(),
		MaxDeviation:     s.MaxDeviation(),
		Points:           toArrays(s.Points().Rows()),
		ControlPoints:    toArrays(s.ControlPoints().Rows()),
	}
	if mesh != nil {
		so.MeshParameters = mesh.Params()
		so.Mesh = toArrays(mesh.Rows())
	}
	return
}

func toArrays(rows [][]r3.Vec) (out [][][3]float64) {
	out = make([][][3]float64, len(rows))
	for i, row := range rows {
		out[i] = make([][3]float64, len(row))
		for j, p := range row {
			out[i][j] = [3]float64{p.X, p.Y, p.Z}
		}
	}
	return
}

type Format uint8

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatFromFilename selects YAML for .yaml and .yml files and JSON otherwise.
func FormatFromFilename(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

func WriteSurface(w io.Writer, so *SurfaceOutput, format Format) (err error) {
	var (
		data []byte
	)
	switch format {
	case FormatYAML:
		data, err = yaml.Marshal(so)
	default:
		data, err = json.MarshalIndent(so, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("unable to encode surface: %w", err)
	}
	_, err = w.Write(data)
	return
}

func WriteSurfaceFile(filename string, so *SurfaceOutput) (err error) {
	var (
		file *os.File
	)
	if file, err = os.Create(filename); err != nil {
		return fmt.Errorf("unable to create %s: %w", filename, err)
	}
	if err = WriteSurface(file, so, FormatFromFilename(filename)); err != nil {
		file.Close()
		return
	}
	if err = file.Close(); err != nil {
		return
	}
	logrus.Infof("Wrote surface to %s", filename)
	return
}
