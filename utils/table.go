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


package utils

import (
	"github.com/jedib0t/go-pretty/v6/table"
)

// NewPrinterToTable renders the rows returned by f below header as a text table.
func NewPrinterToTable(header table.Row, f func() []table.Row) func() string {
	return func() string {
		t := table.NewWriter()
		t.SetStyle(table.StyleLight)
		t.AppendHeader(header)
		t.AppendRows(f())
		return t.Render()
	}
}

// AddPrinterToTable prints a table to the console.
func (ps *Printers) AddPrinterToTable(header table.Row, f func() []table.Row) *Printers {
	return ps.AddPrinterToConsole(false, NewPrinterToTable(header, f))
}
