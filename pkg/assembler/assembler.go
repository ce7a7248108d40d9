// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package assembler

import (
	"errors"
	"io"
	"os"

	"github.com/golang/glog"
)

var ErrAssemblyFailed = errors.New("Assembly failed")

// Assembler owns all state for one source file. Reset, or any of the
// Assemble entry points, discards the state of the previous file.
type Assembler struct {
	Config      Config
	Symbols     *SymTable
	Image       *Image
	Externals   []ExternalUse
	Diagnostics Diagnostics

	source string
}

func New(config Config) *Assembler {
	asm := &Assembler{Config: config.withDefaults()}
	asm.Reset()
	return asm
}

func (asm *Assembler) Reset() {
	asm.Symbols = NewSymTable()
	asm.Image = NewImage(&asm.Config)
	asm.Externals = nil
	asm.Diagnostics.Reset()
	asm.source = "<input>"
}

// AssembleFile runs both passes over the file at path, opening it once per
// pass, and resolves fixups. It returns ErrAssemblyFailed if any error was
// recorded, or the fatal error that stopped a pass.
func (asm *Assembler) AssembleFile(path string) error {
	asm.Reset()
	asm.source = path

	if err := asm.runPass(path, asm.FirstPass); err != nil {
		return err
	}

	if err := asm.runPass(path, asm.SecondPass); err != nil {
		return err
	}

	return asm.finish()
}

func (asm *Assembler) runPass(path string, pass func(io.Reader) error) error {
	file, err := os.Open(path)

	if err != nil {
		sourceErr := &SourceError{path, err}
		asm.Diagnostics.Record(sourceErr)
		return sourceErr
	}

	defer file.Close()

	return pass(file)
}

// AssembleSource is AssembleFile for an in-memory source. The input is
// rewound before the second pass.
func (asm *Assembler) AssembleSource(name string, input io.ReadSeeker) error {
	asm.Reset()
	asm.source = name

	if err := asm.FirstPass(input); err != nil {
		return err
	}

	if _, err := input.Seek(0, io.SeekStart); err != nil {
		sourceErr := &SourceError{name, err}
		asm.Diagnostics.Record(sourceErr)
		return sourceErr
	}

	if err := asm.SecondPass(input); err != nil {
		return err
	}

	return asm.finish()
}

func (asm *Assembler) finish() error {
	asm.Resolve()

	if asm.Diagnostics.HasErrors() {
		glog.V(1).Infof("%s: %d errors", asm.source, len(asm.Diagnostics.errs))
		return ErrAssemblyFailed
	}

	return nil
}

// Assemble assembles input with config and returns the assembler holding the
// resulting image together with every recorded error, ordered by line.
func Assemble(input io.ReadSeeker, config Config) (*Assembler, []error) {
	asm := New(config)
	asm.AssembleSource("<input>", input)
	return asm, asm.Diagnostics.Errors()
}
