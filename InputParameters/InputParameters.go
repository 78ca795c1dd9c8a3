package InputParameters

import (
	"fmt"
	"io"

	"github.com/ghodss/yaml"
)

const (
	DefaultBasisDegree = 3
	DefaultResolution  = 30
)

// Parameters obtained from the YAML input file
type InputParametersSurface struct {
	Title       string `yaml:"Title"`
	GridFile    string `yaml:"GridFile"`
	BasisDegree int    `yaml:"BasisDegree"`
	Resolution  int    `yaml:"Resolution"` // Samples per axis of the output mesh
	Workers     int    `yaml:"Workers"`    // Zero uses one worker per CPU
	OutputFile  string `yaml:"OutputFile"`
	PlotFile    string `yaml:"PlotFile"`
}

func NewInputParametersSurface() *InputParametersSurface {
	return &InputParametersSurface{
		BasisDegree: DefaultBasisDegree,
		Resolution:  DefaultResolution,
	}
}

// Parse overlays the values present in data onto ip.
func (ip *InputParametersSurface) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *InputParametersSurface) Validate() (err error) {
	switch {
	case ip.BasisDegree < 1:
		err = fmt.Errorf("BasisDegree must be at least 1, have %d", ip.BasisDegree)
	case ip.Resolution < 1:
		err = fmt.Errorf("Resolution must be at least 1, have %d", ip.Resolution)
	case ip.Workers < 0:
		err = fmt.Errorf("Workers must not be negative, have %d", ip.Workers)
	}
	return
}

// Print writes the parameter table to w, keeping stdout free for exports.
func (ip *InputParametersSurface) Print(w io.Writer) {
	fmt.Fprintf(w, "\"%s\"\t\t= Title\n", ip.Title)
	fmt.Fprintf(w, "[%s]\t\t= Grid File\n", ip.GridFile)
	fmt.Fprintf(w, "[%d]\t\t\t\t= Basis Degree\n", ip.BasisDegree)
	fmt.Fprintf(w, "[%d]\t\t\t\t= Mesh Resolution\n", ip.Resolution)
	fmt.Fprintf(w, "[%d]\t\t\t\t= Workers\n", ip.Workers)
	if len(ip.OutputFile) != 0 {
		fmt.Fprintf(w, "[%s]\t\t= Output File\n", ip.OutputFile)
	}
	if len(ip.PlotFile) != 0 {
		fmt.Fprintf(w, "[%s]\t\t= Plot File\n", ip.PlotFile)
	}
}
