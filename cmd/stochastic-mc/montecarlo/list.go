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
	"github.com/0xsoniclabs/montecarlo/logger"
	"github.com/0xsoniclabs/montecarlo/stochastic/experiments"
	"github.com/0xsoniclabs/montecarlo/utils"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"
)

// ListCommand lists the experiment catalogue.
var ListCommand = cli.Command{
	Action: listAction,
	Name:   "list",
	Usage:  "list the available experiments",
	Flags: []cli.Flag{
		&logger.LogLevelFlag,
	},
}

func listAction(ctx *cli.Context) error {
	if _, err := utils.NewConfig(ctx, utils.NoArgs); err != nil {
		return err
	}
	var rows []table.Row
	for _, name := range experiments.Names() {
		e, err := experiments.Lookup(name)
		if err != nil {
			return err
		}
		rows = append(rows, table.Row{e.Name, e.Dimension, e.Expected, e.Description})
	}
	return utils.NewPrinters().
		AddPrinterToTable(table.Row{"experiment", "dimension", "expected", "description"}, func() []table.Row { return rows }).
		Print()
}
