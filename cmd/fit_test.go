package cmd

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gosurface/InputParameters"
	"github.com/notargets/gosurface/readfiles"
)

var testGrid = []byte(`
surface:
  gridSize: [3, 3]
  points:
    - [0, 0, 0]
    - [1, 0, 0.5]
    - [2, 0, 0]
    - [0, 1, 0.5]
    - [1, 1, 1]
    - [2, 1, 0.5]
    - [0, 2, 0]
    - [1, 2, 0.5]
    - [2, 2, 0]
  indices: [[0, 0], [0, 1], [0, 2], [1, 0], [1, 1], [1, 2], [2, 0], [2, 1], [2, 2]]
`)

func writeTestFile(t *testing.T, name string, data []byte) string {
	fileName := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(fileName, data, 0o644))
	return fileName
}

func TestProcessInput(t *testing.T) {
	inputFile := writeTestFile(t, "input.yaml", []byte(`
Title: Test Case
GridFile: grid.yaml
BasisDegree: 2
Resolution: 12
`))
	{ // Input file over defaults
		ip, err := processInput(viper.New(), &FitModel{InputFile: inputFile})
		require.NoError(t, err)
		assert.Equal(t, "Test Case", ip.Title)
		assert.Equal(t, "grid.yaml", ip.GridFile)
		assert.Equal(t, 2, ip.BasisDegree)
		assert.Equal(t, 12, ip.Resolution)
		assert.Equal(t, 0, ip.Workers)
	}
	{ // Flags, env and config over the input file
		v := viper.New()
		v.Set("degree", 1)
		v.Set("workers", 4)
		v.Set("output", "out.yaml")
		ip, err := processInput(v, &FitModel{InputFile: inputFile, GridFile: "other.json"})
		require.NoError(t, err)
		assert.Equal(t, "other.json", ip.GridFile)
		assert.Equal(t, 1, ip.BasisDegree)
		assert.Equal(t, 12, ip.Resolution)
		assert.Equal(t, 4, ip.Workers)
		assert.Equal(t, "out.yaml", ip.OutputFile)
	}
	{ // Defaults only
		ip, err := processInput(viper.New(), &FitModel{GridFile: "grid.json"})
		require.NoError(t, err)
		assert.Equal(t, InputParameters.DefaultBasisDegree, ip.BasisDegree)
		assert.Equal(t, InputParameters.DefaultResolution, ip.Resolution)
	}
	{ // Failures
		_, err := processInput(viper.New(), &FitModel{})
		assert.Error(t, err)
		v := viper.New()
		v.Set("resolution", 0)
		_, err = processInput(v, &FitModel{GridFile: "grid.json"})
		assert.Error(t, err)
		_, err = processInput(viper.New(), &FitModel{InputFile: filepath.Join(t.TempDir(), "missing.yaml")})
		assert.Error(t, err)
	}
}

func TestRunFit(t *testing.T) {
	gridFile := writeTestFile(t, "grid.yaml", testGrid)
	dir := t.TempDir()
	ip := InputParameters.NewInputParametersSurface()
	ip.Title = "dome"
	ip.GridFile = gridFile
	ip.BasisDegree = 2
	ip.Resolution = 5
	ip.Workers = 2
	ip.OutputFile = filepath.Join(dir, "dome.yaml")
	ip.PlotFile = filepath.Join(dir, "dome.png")
	so, err := RunFit(context.Background(), ip)
	require.NoError(t, err)
	assert.Equal(t, "dome", so.Title)
	assert.Len(t, so.Mesh, 5)
	assert.Len(t, so.ControlPoints, 3)
	assert.InDelta(t, 0., so.MaxDeviation, 1.e-9)
	// Mesh corners are the grid corners
	assert.InDeltaSlice(t, []float64{0, 0, 0}, so.Mesh[0][0][:], 1.e-9)
	assert.InDeltaSlice(t, []float64{2, 2, 0}, so.Mesh[4][4][:], 1.e-9)
	for _, fileName := range []string{ip.OutputFile, ip.PlotFile} {
		_, err = os.Stat(fileName)
		assert.NoError(t, err)
	}
	assert.Equal(t, readfiles.FormatYAML, readfiles.FormatFromFilename(ip.OutputFile))
	data, err := os.ReadFile(ip.OutputFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "columnKnots:")
	{ // Degree too high for the grid
		ip.BasisDegree = 3
		_, err = RunFit(context.Background(), ip)
		assert.Error(t, err)
	}
	{ // Cancelled before sampling
		ip.BasisDegree = 2
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = RunFit(ctx, ip)
		assert.ErrorIs(t, err, context.Canceled)
	}
}

func TestFitCmdStdout(t *testing.T) {
	gridFile := writeTestFile(t, "grid.yaml", testGrid)
	r, w, err := os.Pipe()
	require.NoError(t, err)
	stdout := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = stdout }()
	out := make(chan []byte)
	go func() {
		data, _ := io.ReadAll(r)
		out <- data
	}()
	rootCmd.SetArgs([]string{"fit", "-F", gridFile, "-k", "2", "-m", "3"})
	err = rootCmd.Execute()
	w.Close()
	os.Stdout = stdout
	data := <-out
	require.NoError(t, err)
	// Nothing but the export may reach stdout
	var so readfiles.SurfaceOutput
	require.NoError(t, json.Unmarshal(data, &so), "stdout: %s", data)
	assert.Equal(t, 2, so.Degree)
	assert.Len(t, so.Mesh, 3)
	assert.Len(t, so.Points, 3)
}
