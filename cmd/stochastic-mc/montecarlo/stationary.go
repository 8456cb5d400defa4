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
	"fmt"
	"os"

	"github.com/0xsoniclabs/montecarlo/logger"
	"github.com/0xsoniclabs/montecarlo/stochastic"
	"github.com/0xsoniclabs/montecarlo/stochastic/statistics/markov"
	"github.com/0xsoniclabs/montecarlo/utils"
	"github.com/cockroachdb/errors"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"
)

// StationaryCommand analyses a Markov chain given by its stochastic matrix.
var StationaryCommand = cli.Command{
	Action:    stationaryAction,
	Name:      "stationary",
	Usage:     "compute the stationary distribution of a Markov chain and compare it with a simulated walk",
	ArgsUsage: "<matrix.json>",
	Flags: []cli.Flag{
		&logger.LogLevelFlag,
		&utils.SeedFlag,
		&utils.KeyFlag,
		&utils.StepsFlag,
		&utils.OutputFlag,
	},
	Description: `The matrix file is a JSON object {"labels": [...], "matrix": [[...], ...]}; labels default to s0, s1, ...`,
}

// chainFile is the JSON encoding of a Markov chain.
type chainFile struct {
	Labels []string    `json:"labels"`
	Matrix [][]float64 `json:"matrix"`
}

// stationaryReport is the JSON report of the stationary command.
type stationaryReport struct {
	Labels     []string  `json:"labels"`
	Stationary []float64 `json:"stationary"`
	Steps      int       `json:"steps"`
	Occupancy  []float64 `json:"occupancy"`
}

// readChain reads a Markov chain from a JSON file.
func readChain(filename string) (*markov.Chain, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read chain file %v", filename)
	}
	var f chainFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrapf(stochastic.ErrInvalidDistribution, "cannot decode chain file %v: %v", filename, err)
	}
	if f.Labels == nil {
		f.Labels = make([]string, len(f.Matrix))
		for i := range f.Labels {
			f.Labels[i] = fmt.Sprintf("s%d", i)
		}
	}
	return markov.New(f.Matrix, f.Labels)
}

func stationaryAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx, utils.OneArg)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Stationary")

	mc, err := readChain(cfg.Argument)
	if err != nil {
		return err
	}
	log.Infof("Chain with %d states loaded from %v", mc.N(), cfg.Argument)
	stationary, err := mc.Stationary()
	if err != nil {
		return err
	}
	src, err := newSource(cfg)
	if err != nil {
		return err
	}
	path, err := mc.Walk(src, 0, cfg.Steps)
	if err != nil {
		return err
	}
	occupancy := mc.Occupancy(path)
	log.Debugf("Simulated %d transitions", cfg.Steps)

	labels := mc.Labels()
	ps := utils.NewPrinters().AddPrinterToTable(table.Row{"state", "stationary", "occupancy"}, func() []table.Row {
		rows := make([]table.Row, len(labels))
		for i, label := range labels {
			rows[i] = table.Row{label, stationary[i], occupancy[i]}
		}
		return rows
	})
	report := stationaryReport{
		Labels:     labels,
		Stationary: stationary,
		Steps:      cfg.Steps,
		Occupancy:  occupancy,
	}
	if err := addReportPrinter(ps, cfg.Output, report); err != nil {
		return err
	}
	return ps.Print()
}
