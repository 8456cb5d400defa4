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
	"github.com/0xsoniclabs/montecarlo/stochastic/estimation"
	"github.com/0xsoniclabs/montecarlo/utils"
	"github.com/urfave/cli/v2"
)

// SearchCommand finds a sample size reaching a target precision.
var SearchCommand = cli.Command{
	Action:    searchAction,
	Name:      "search",
	Usage:     "grow the sample size until the confidence interval is narrow enough",
	ArgsUsage: "<experiment>",
	Flags: []cli.Flag{
		&logger.LogLevelFlag,
		&utils.SeedFlag,
		&utils.KeyFlag,
		&utils.TargetFlag,
		&utils.StartFlag,
		&utils.GrowthFlag,
		&utils.MaxIterationsFlag,
		&utils.ConfidenceFlag,
		&utils.MaxAttemptsFlag,
		&utils.OutputFlag,
	},
	Description: "Starts at --start samples and multiplies the sample size by --growth until the half-width is at most --target.",
}

func searchAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx, utils.OneArg)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Search")

	e, err := lookupExperiment(cfg)
	if err != nil {
		return err
	}
	src, err := newSource(cfg)
	if err != nil {
		return err
	}

	log.Infof("Search a sample size of %v for a half-width of %v", e.Name, cfg.Target)
	start := time.Now()
	r, err := e.Search(src, cfg.Target, estimation.SearchConfig{
		Start:         cfg.Start,
		Growth:        cfg.Growth,
		MaxIterations: cfg.MaxIterations,
		Confidence:    cfg.Confidence,
	})
	if err != nil {
		return err
	}
	h, m, s := logger.ParseTime(time.Since(start))
	log.Noticef("Search finished in %vh %vm %vs", h, m, s)

	report := newEstimateReport(cfg, e, r)
	ps := utils.NewPrinters().AddPrinterToConsole(false, func() string {
		return fmt.Sprintf("%v: n = %d reaches half-width %.6f <= %v, mean %.6f", e.Name, r.N, r.HalfWidth, cfg.Target, r.Mean)
	})
	if err := addReportPrinter(ps, cfg.Output, report); err != nil {
		return err
	}
	return ps.Print()
}
