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
	"fmt"

	"github.com/0xsoniclabs/montecarlo/logger"
	"github.com/0xsoniclabs/montecarlo/stochastic/estimation"
	"github.com/0xsoniclabs/montecarlo/utils"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"
)

// ConvergenceCommand estimates an experiment for increasing sample sizes.
var ConvergenceCommand = cli.Command{
	Action:    convergenceAction,
	Name:      "convergence",
	Usage:     "show how the confidence interval of an experiment shrinks with the sample size",
	ArgsUsage: "<experiment>",
	Flags: []cli.Flag{
		&logger.LogLevelFlag,
		&utils.SeedFlag,
		&utils.KeyFlag,
		&utils.SizesFlag,
		&utils.ConfidenceFlag,
		&utils.MaxAttemptsFlag,
		&utils.OutputFlag,
	},
	Description: "Runs one estimate per --sizes entry and fits the slope of log(half-width) over log(n), which is -1/2 for Monte Carlo.",
}

// convergenceReport is the JSON report of a convergence curve.
type convergenceReport struct {
	Experiment string              `json:"experiment"`
	Seed       uint64              `json:"seed"`
	Keyed      bool                `json:"keyed"`
	Expected   float64             `json:"expected"`
	Slope      float64             `json:"slope"`
	Results    []estimation.Result `json:"results"`
}

func convergenceAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx, utils.OneArg)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Convergence")

	e, err := lookupExperiment(cfg)
	if err != nil {
		return err
	}
	src, err := newSource(cfg)
	if err != nil {
		return err
	}

	log.Infof("Estimate %v for sample sizes %v", e.Name, cfg.Sizes)
	results, err := e.Curve(src, cfg.Sizes, cfg.Confidence)
	if err != nil {
		return err
	}
	slope, err := estimation.LogLogSlope(results)
	if err != nil {
		return err
	}
	log.Debugf("Fitted slope %v", slope)

	ps := utils.NewPrinters().
		AddPrinterToTable(table.Row{"n", "mean", "half-width", "covers expected"}, func() []table.Row {
			rows := make([]table.Row, len(results))
			for i, r := range results {
				rows[i] = table.Row{r.N, r.Mean, r.HalfWidth, r.Covers(e.Expected)}
			}
			return rows
		}).
		AddPrinterToConsole(false, func() string {
			return fmt.Sprintf("log-log slope of the half-width: %.4f (expected -0.5)", slope)
		})
	report := convergenceReport{
		Experiment: e.Name,
		Seed:       cfg.Seed,
		Keyed:      cfg.Key != "",
		Expected:   e.Expected,
		Slope:      slope,
		Results:    results,
	}
	if err := addReportPrinter(ps, cfg.Output, report); err != nil {
		return err
	}
	return ps.Print()
}
