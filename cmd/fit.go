/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gosurface/InputParameters"
	"github.com/notargets/gosurface/bspline"
	"github.com/notargets/gosurface/readfiles"
	"github.com/notargets/gosurface/utils"
)

type FitModel struct {
	GridFile  string
	InputFile string
	Profile   string
}

// FitCmd represents the fit command
var FitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Fit a B-spline surface to a grid file and sample it on a regular mesh",
	Long: `Fit a B-spline surface to a grid file and sample it on a regular mesh.
The fitted knots, control points and mesh are written as JSON, or YAML when the
output file name ends in .yaml or .yml`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		fm := &FitModel{}
		if fm.GridFile, err = cmd.Flags().GetString("gridFile"); err != nil {
			return
		}
		if fm.InputFile, err = cmd.Flags().GetString("inputParametersFile"); err != nil {
			return
		}
		fm.Profile, _ = cmd.Flags().GetString("profile")
		var ip *InputParameters.InputParametersSurface
		if ip, err = processInput(viper.GetViper(), fm); err != nil {
			return
		}
		ip.Print(os.Stderr)
		switch fm.Profile {
		case "":
		case "cpu":
			defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
		case "mem":
			defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
		default:
			return fmt.Errorf("unknown profile type %q, use cpu or mem", fm.Profile)
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		_, err = RunFit(ctx, ip)
		return
	},
}

func init() {
	rootCmd.AddCommand(FitCmd)
	FitCmd.Flags().StringP("gridFile", "F", "", "Grid file to read in JSON or YAML format")
	FitCmd.Flags().StringP("inputParametersFile", "I", "", "YAML file for input parameters like:\n\t- BasisDegree\n\t- Resolution")
	FitCmd.Flags().IntP("degree", "k", InputParameters.DefaultBasisDegree, "B-spline basis degree")
	FitCmd.Flags().IntP("resolution", "m", InputParameters.DefaultResolution, "samples per axis of the output mesh")
	FitCmd.Flags().IntP("workers", "p", 0, "number of sampling goroutines, 0 uses one per CPU")
	FitCmd.Flags().StringP("output", "o", "", "output file, .json or .yaml (default is stdout)")
	FitCmd.Flags().StringP("plot", "g", "", "write a PNG preview of the fit to this file")
	FitCmd.Flags().String("profile", "", "write a cpu or mem profile to the current directory")
	for _, key := range []string{"degree", "resolution", "workers", "output", "plot"} {
		_ = viper.BindPFlag(key, FitCmd.Flags().Lookup(key))
	}
}

// processInput layers the input parameters file, then config file, environment and
// flags on top of the defaults.
func processInput(v *viper.Viper, fm *FitModel) (ip *InputParameters.InputParametersSurface, err error) {
	ip = InputParameters.NewInputParametersSurface()
	if len(fm.InputFile) != 0 {
		var data []byte
		if data, err = os.ReadFile(fm.InputFile); err != nil {
			return
		}
		if err = ip.Parse(data); err != nil {
			err = fmt.Errorf("unable to parse %s: %w", fm.InputFile, err)
			return
		}
	}
	if v.IsSet("degree") {
		ip.BasisDegree = v.GetInt("degree")
	}
	if v.IsSet("resolution") {
		ip.Resolution = v.GetInt("resolution")
	}
	if v.IsSet("workers") {
		ip.Workers = v.GetInt("workers")
	}
	if v.IsSet("output") {
		ip.OutputFile = v.GetString("output")
	}
	if v.IsSet("plot") {
		ip.PlotFile = v.GetString("plot")
	}
	if len(fm.GridFile) != 0 {
		ip.GridFile = fm.GridFile
	}
	if len(ip.GridFile) == 0 {
		exampleFile := `
########################################
Title: "Test Case"
GridFile: grid.json
BasisDegree: 3
Resolution: 30
########################################
`
		err = fmt.Errorf("must supply a grid file (-F, --gridFile) or GridFile in the input parameters, example:%s",
			exampleFile)
		return
	}
	err = ip.Validate()
	return
}

func RunFit(ctx context.Context, ip *InputParameters.InputParametersSurface) (so *readfiles.SurfaceOutput, err error) {
	var (
		grid bspline.PointGrid
		s    *bspline.Surface
		mesh *bspline.Mesh
	)
	if grid, _, err = readfiles.ReadSurfaceGrid(ip.GridFile); err != nil {
		return
	}
	start := time.Now()
	if s, err = bspline.NewSurface(grid, ip.BasisDegree); err != nil {
		return
	}
	logrus.Infof("Fit %dx%d grid with degree %d in %v, max deviation %8.5e",
		s.Size(), s.Size(), s.Degree(), time.Since(start), s.MaxDeviation())
	start = time.Now()
	if mesh, err = s.SampleMesh(ctx, ip.Resolution, ip.Workers); err != nil {
		return
	}
	logrus.Infof("Sampled %dx%d mesh in %v, %s",
		mesh.Resolution(), mesh.Resolution(), time.Since(start), utils.GetMemUsage())
	lo, hi := mesh.Bounds()
	logrus.Infof("Mesh bounds [%g, %g, %g] to [%g, %g, %g]", lo.X, lo.Y, lo.Z, hi.X, hi.Y, hi.Z)
	so = readfiles.NewSurfaceOutput(ip.Title, s, mesh)
	if len(ip.OutputFile) != 0 {
		err = readfiles.WriteSurfaceFile(ip.OutputFile, so)
	} else {
		err = readfiles.WriteSurface(os.Stdout, so, readfiles.FormatJSON)
	}
	if err != nil {
		return
	}
	if len(ip.PlotFile) != 0 {
		err = readfiles.PlotSurface(ip.PlotFile, ip.Title, s, mesh)
	}
	return
}
