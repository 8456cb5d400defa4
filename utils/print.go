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
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
)

// Printer is a utility class to output data from the system
//
//go:generate mockgen -source print.go -destination print_mock.go -package utils
type Printer interface {
	Print() error
	Close() error
}

type Printers struct {
	printers []Printer
}

// Print runs every printer in insertion order and stops at the first failure.
func (ps *Printers) Print() error {
	for _, p := range ps.printers {
		if err := p.Print(); err != nil {
			return err
		}
	}
	return nil
}

// Close closes all printers and joins their errors.
func (ps *Printers) Close() error {
	var errs error
	for _, p := range ps.printers {
		errs = errors.CombineErrors(errs, p.Close())
	}
	return errs
}

func NewPrinters() *Printers {
	return &Printers{[]Printer{}}
}

func (ps *Printers) AddPrinter(p Printer) *Printers {
	ps.printers = append(ps.printers, p)
	return ps
}

// PrinterToWriter writes to any io.Writer
// Wrap f, returns a string to be printed
type PrinterToWriter struct {
	w io.Writer
	f func() string
}

func (p *PrinterToWriter) Print() error {
	_, err := fmt.Fprintln(p.w, p.f())
	return err
}

func (p *PrinterToWriter) Close() error {
	return nil
}

func NewPrinterToWriter(w io.Writer, f func() string) *PrinterToWriter {
	return &PrinterToWriter{w, f}
}

func NewPrinterToConsole(f func() string) *PrinterToWriter {
	return &PrinterToWriter{os.Stdout, f}
}

func (ps *Printers) AddPrinterToWriter(w io.Writer, f func() string) *Printers {
	return ps.AddPrinter(NewPrinterToWriter(w, f))
}

func (ps *Printers) AddPrinterToConsole(isDisabled bool, f func() string) *Printers {
	if isDisabled {
		return ps
	}
	return ps.AddPrinter(NewPrinterToConsole(f))
}

// PrinterToFile writes to a File
// Wrap f, returns a string to be printed. The file is truncated on every print.
type PrinterToFile struct {
	filepath string
	f        func() string
}

func (p *PrinterToFile) Print() (err error) {
	file, err := os.OpenFile(p.filepath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrapf(err, "unable to print to file %s", p.filepath)
	}

	defer func(file *os.File) {
		err = errors.CombineErrors(err, file.Close())
	}(file)
	_, err = file.WriteString(p.f())
	return err
}

func (p *PrinterToFile) Close() error {
	return nil
}

func NewPrinterToFile(filepath string, f func() string) *PrinterToFile {
	return &PrinterToFile{filepath, f}
}

func (ps *Printers) AddPrinterToFile(filepath string, f func() string) *Printers {
	if filepath != "" {
		ps.AddPrinter(NewPrinterToFile(filepath, f))
	}
	return ps
}
