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


// Package montecarlo implements the commands of the stochastic-mc tool.
package montecarlo

import (
	"encoding/json"

	"github.com/0xsoniclabs/montecarlo/stochastic/estimation"
	"github.com/0xsoniclabs/montecarlo/stochastic/experiments"
	"github.com/0xsoniclabs/montecarlo/stochastic/random"
	"github.com/0xsoniclabs/montecarlo/stochastic/statistics/rejection"
	"github.com/0xsoniclabs/montecarlo/utils"
	"github.com/cockroachdb/errors"
)

// estimateReport is the JSON report of a single estimate.
type estimateReport struct {
	Experiment  string            `json:"experiment"`
	Description string            `json:"description"`
	Seed        uint64            `json:"seed"`
	Keyed       bool              `json:"keyed"`
	Expected    float64           `json:"expected"`
	Covered     bool              `json:"covered"`
	Result      estimation.Result `json:"result"`
}

func newEstimateReport(cfg *utils.Config, e *experiments.Experiment, r estimation.Result) estimateReport {
	return estimateReport{
		Experiment:  e.Name,
		Description: e.Description,
		Seed:        cfg.Seed,
		Keyed:       cfg.Key != "",
		Expected:    e.Expected,
		Covered:     r.Covers(e.Expected),
		Result:      r,
	}
}

// newSource creates the uniform source selected on the command line.
func newSource(cfg *utils.Config) (random.Source, error) {
	if cfg.Key == "" {
		return random.New(cfg.Seed), nil
	}
	key, err := cfg.SourceKey()
	if err != nil {
		return nil, err
	}
	return random.NewKeyed(key), nil
}

// lookupExperiment creates the experiment named by the positional argument.
func lookupExperiment(cfg *utils.Config) (*experiments.Experiment, error) {
	return experiments.Lookup(cfg.Argument, rejection.WithMaxAttempts(cfg.MaxAttempts))
}

// addReportPrinter writes report as indented JSON to the output path, if any.
func addReportPrinter(ps *utils.Printers, output string, report any) error {
	if output == "" {
		return nil
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return errors.Wrap(err, "cannot encode report")
	}
	ps.AddPrinterToFile(output, func() string { return string(data) })
	return nil
}
