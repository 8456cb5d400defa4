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
	"time"

	"github.com/0xsoniclabs/montecarlo/logger"
	"github.com/0xsoniclabs/montecarlo/utils"
	"github.com/urfave/cli/v2"
)

// EstimateCommand runs a single estimate of an experiment.
var EstimateCommand = cli.Command{
	Action:    estimateAction,
	Name:      "estimate",
	Usage:     "estimate the expectation of an experiment",
	ArgsUsage: "<experiment>",
	Flags: []cli.Flag{
		&logger.LogLevelFlag,
		&utils.SeedFlag,
		&utils.KeyFlag,
		&utils.SamplesFlag,
		&utils.ConfidenceFlag,
		&utils.MaxAttemptsFlag,
		&utils.OutputFlag,
	},
	Description: "Draws --samples values of the experiment and reports the sample mean with its confidence interval.",
}

func estimateAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx, utils.OneArg)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Estimate")

	e, err := lookupExperiment(cfg)
	if err != nil {
		return err
	}
	src, err := newSource(cfg)
	if err != nil {
		return err
	}

	log.Infof("Estimate %v with %d samples", e.Name, cfg.Samples)
	start := time.Now()
	r, err := e.Run(src, cfg.Samples, cfg.Confidence)
	if err != nil {
		return err
	}
	h, m, s := logger.ParseTime(time.Since(start))
	log.Noticef("Estimation finished in %vh %vm %vs", h, m, s)

	report := newEstimateReport(cfg, e, r)
	ps := utils.NewPrinters().AddPrinterToConsole(false, func() string {
		lo, hi := r.Interval()
		return fmt.Sprintf("%v: mean %.6f, %v%% interval [%.6f, %.6f], expected %.6f (covered: %v)",
			e.Name, r.Mean, r.Confidence*100, lo, hi, e.Expected, report.Covered)
	})
	if err := addReportPrinter(ps, cfg.Output, report); err != nil {
		return err
	}
	return ps.Print()
}
