package InputParameters

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputParametersSurface(t *testing.T) {
	{ // Values in the file override the defaults
		ip := NewInputParametersSurface()
		require.NoError(t, ip.Parse([]byte(`
Title: Test Case
GridFile: 9.json
BasisDegree: 2
Workers: 4
OutputFile: mesh.json
`)))
		assert.Equal(t, "Test Case", ip.Title)
		assert.Equal(t, "9.json", ip.GridFile)
		assert.Equal(t, 2, ip.BasisDegree)
		assert.Equal(t, DefaultResolution, ip.Resolution)
		assert.Equal(t, 4, ip.Workers)
		assert.Equal(t, "mesh.json", ip.OutputFile)
		assert.NoError(t, ip.Validate())
		var buf bytes.Buffer
		ip.Print(&buf)
		assert.Contains(t, buf.String(), "[9.json]")
		assert.Contains(t, buf.String(), "[mesh.json]")
		assert.NotContains(t, buf.String(), "Plot File")
	}
	{ // Invalid values
		ip := NewInputParametersSurface()
		require.NoError(t, ip.Parse([]byte("BasisDegree: 0")))
		assert.Error(t, ip.Validate())
		ip = NewInputParametersSurface()
		require.NoError(t, ip.Parse([]byte("Resolution: -3")))
		assert.Error(t, ip.Validate())
		ip = NewInputParametersSurface()
		require.NoError(t, ip.Parse([]byte("Workers: -1")))
		assert.Error(t, ip.Validate())
		assert.Error(t, ip.Parse([]byte("BasisDegree: [1, 2]")))
	}
}
