// Copyright 2025 Sonic Labs
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.


package montecarlo

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/0xsoniclabs/montecarlo/stochastic"
	"github.com/0xsoniclabs/montecarlo/utils"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

const testKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func newTestApp(command *cli.Command) *cli.App {
	app := cli.NewApp()
	app.Commands = []*cli.Command{command}
	return app
}

// readReport decodes the JSON report written to filename.
func readReport(t *testing.T, filename string, report any) {
	t.Helper()
	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, report))
}

func TestCmd_List(t *testing.T) {
	err := newTestApp(&ListCommand).Run(utils.NewArgs("test").Arg(ListCommand.Name).Build())
	assert.NoError(t, err)

	err = newTestApp(&ListCommand).Run(utils.NewArgs("test").Arg(ListCommand.Name).Arg("extra").Build())
	assert.True(t, errors.Is(err, stochastic.ErrInvalidArgument), "got %v", err)
}

func TestCmd_Estimate(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "estimate.json")
	app := newTestApp(&EstimateCommand)
	args := utils.NewArgs("test").
		Arg(EstimateCommand.Name).
		Flag(utils.SeedFlag.Name, uint64(3)).
		Flag(utils.SamplesFlag.Name, 4000).
		Flag(utils.OutputFlag.Name, outputFile).
		Arg("exponential").
		Build()

	// when
	err := app.Run(args)

	// then
	require.NoError(t, err)
	var report estimateReport
	readReport(t, outputFile, &report)
	assert.Equal(t, "exponential", report.Experiment)
	assert.Equal(t, uint64(3), report.Seed)
	assert.False(t, report.Keyed)
	assert.Equal(t, 0.5, report.Expected)
	assert.Equal(t, 4000, report.Result.N)
	assert.Equal(t, 0.95, report.Result.Confidence)
	assert.InDelta(t, 0.5, report.Result.Mean, 0.05)
	assert.Greater(t, report.Result.HalfWidth, 0.0)
}

func TestCmd_EstimateIsReproducible(t *testing.T) {
	dir := t.TempDir()
	var reports [2]estimateReport
	for i := range reports {
		outputFile := filepath.Join(dir, "estimate.json")
		args := utils.NewArgs("test").
			Arg(EstimateCommand.Name).
			Flag(utils.KeyFlag.Name, testKey).
			Flag(utils.SamplesFlag.Name, 500).
			Flag(utils.OutputFlag.Name, outputFile).
			Arg("unit-disk").
			Build()
		require.NoError(t, newTestApp(&EstimateCommand).Run(args))
		readReport(t, outputFile, &reports[i])
	}
	assert.True(t, reports[0].Keyed)
	assert.Equal(t, reports[0], reports[1])
}

func TestCmd_EstimateErrors(t *testing.T) {
	err := newTestApp(&EstimateCommand).Run(utils.NewArgs("test").Arg(EstimateCommand.Name).Arg("no-such-experiment").Build())
	assert.True(t, errors.Is(err, stochastic.ErrInvalidArgument), "got %v", err)

	err = newTestApp(&EstimateCommand).Run(utils.NewArgs("test").Arg(EstimateCommand.Name).Build())
	assert.True(t, errors.Is(err, stochastic.ErrInvalidArgument), "got %v", err)

	err = newTestApp(&EstimateCommand).Run(utils.NewArgs("test").Arg(EstimateCommand.Name).Flag(utils.SamplesFlag.Name, 1).Arg("discrete").Build())
	assert.True(t, errors.Is(err, stochastic.ErrInvalidSampleSize), "got %v", err)

	err = newTestApp(&EstimateCommand).Run(utils.NewArgs("test").Arg(EstimateCommand.Name).Flag(utils.ConfidenceFlag.Name, 1.5).Arg("discrete").Build())
	assert.True(t, errors.Is(err, stochastic.ErrInvalidConfidence), "got %v", err)
}

func TestCmd_Convergence(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "convergence.json")
	app := newTestApp(&ConvergenceCommand)
	args := utils.NewArgs("test").
		Arg(ConvergenceCommand.Name).
		Flag(utils.SizesFlag.Name, []int{500, 2000, 8000, 32000}).
		Flag(utils.OutputFlag.Name, outputFile).
		Arg("discrete").
		Build()

	require.NoError(t, app.Run(args))
	var report convergenceReport
	readReport(t, outputFile, &report)
	assert.Equal(t, "discrete", report.Experiment)
	require.Len(t, report.Results, 4)
	for i, n := range []int{500, 2000, 8000, 32000} {
		assert.Equal(t, n, report.Results[i].N)
	}
	assert.InDelta(t, -0.5, report.Slope, 0.1)
}

func TestCmd_ConvergenceNeedsTwoSizes(t *testing.T) {
	app := newTestApp(&ConvergenceCommand)
	args := utils.NewArgs("test").
		Arg(ConvergenceCommand.Name).
		Flag(utils.SizesFlag.Name, []int{1000}).
		Arg("discrete").
		Build()
	err := app.Run(args)
	assert.True(t, errors.Is(err, stochastic.ErrInvalidSampleSize), "got %v", err)
}

func TestCmd_Search(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "search.json")
	app := newTestApp(&SearchCommand)
	args := utils.NewArgs("test").
		Arg(SearchCommand.Name).
		Flag(utils.TargetFlag.Name, 0.05).
		Flag(utils.OutputFlag.Name, outputFile).
		Arg("exponential").
		Build()

	require.NoError(t, app.Run(args))
	var report estimateReport
	readReport(t, outputFile, &report)
	assert.LessOrEqual(t, report.Result.HalfWidth, 0.05)
	assert.GreaterOrEqual(t, report.Result.N, 100)
}

func TestCmd_SearchDoesNotConverge(t *testing.T) {
	app := newTestApp(&SearchCommand)
	args := utils.NewArgs("test").
		Arg(SearchCommand.Name).
		Flag(utils.TargetFlag.Name, 1e-6).
		Flag(utils.MaxIterationsFlag.Name, 2).
		Arg("exponential").
		Build()
	err := app.Run(args)
	assert.True(t, errors.Is(err, stochastic.ErrNonConvergentSearch), "got %v", err)
}

func writeChain(t *testing.T, content string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "chain.json")
	require.NoError(t, os.WriteFile(filename, []byte(content), 0644))
	return filename
}

func TestCmd_Stationary(t *testing.T) {
	chain := writeChain(t, `{"labels": ["sunny", "rainy"], "matrix": [[0.9, 0.1], [0.5, 0.5]]}`)
	outputFile := filepath.Join(t.TempDir(), "stationary.json")
	app := newTestApp(&StationaryCommand)
	args := utils.NewArgs("test").
		Arg(StationaryCommand.Name).
		Flag(utils.StepsFlag.Name, 100_000).
		Flag(utils.OutputFlag.Name, outputFile).
		Arg(chain).
		Build()

	require.NoError(t, app.Run(args))
	var report stationaryReport
	readReport(t, outputFile, &report)
	assert.Equal(t, []string{"sunny", "rainy"}, report.Labels)
	require.Len(t, report.Stationary, 2)
	assert.InDelta(t, 5.0/6, report.Stationary[0], 1e-9)
	assert.InDelta(t, 1.0/6, report.Stationary[1], 1e-9)
	assert.Equal(t, 100_000, report.Steps)
	assert.InDelta(t, 5.0/6, report.Occupancy[0], 0.02)
}

func TestCmd_StationaryDefaultLabels(t *testing.T) {
	mc, err := readChain(writeChain(t, `{"matrix": [[0, 1], [1, 0]]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"s0", "s1"}, mc.Labels())
}

func TestCmd_StationaryErrors(t *testing.T) {
	notStochastic := writeChain(t, `{"matrix": [[0.5, 0.2], [0.5, 0.5]]}`)
	err := newTestApp(&StationaryCommand).Run(utils.NewArgs("test").Arg(StationaryCommand.Name).Arg(notStochastic).Build())
	assert.True(t, errors.Is(err, stochastic.ErrInvalidDistribution), "got %v", err)

	malformed := writeChain(t, `{"matrix": [[`)
	err = newTestApp(&StationaryCommand).Run(utils.NewArgs("test").Arg(StationaryCommand.Name).Arg(malformed).Build())
	assert.True(t, errors.Is(err, stochastic.ErrInvalidDistribution), "got %v", err)

	err = newTestApp(&StationaryCommand).Run(utils.NewArgs("test").Arg(StationaryCommand.Name).Arg(filepath.Join(t.TempDir(), "missing.json")).Build())
	assert.Error(t, err)
}
