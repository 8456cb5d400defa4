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
	"testing"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/stretchr/testify/assert"
)

func TestTable_RendersHeaderAndRows(t *testing.T) {
	render := NewPrinterToTable(table.Row{"n", "mean"}, func() []table.Row {
		return []table.Row{{100, 0.52}, {1000, 0.497}}
	})
	out := render()
	assert.Contains(t, out, "MEAN")
	assert.Contains(t, out, "0.497")
	assert.Contains(t, out, "1000")
}

func TestTable_AddPrinterToTable(t *testing.T) {
	p := NewPrinters().AddPrinterToTable(table.Row{"a"}, func() []table.Row { return nil })
	assert.Equal(t, 1, len(p.printers))
}
