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

package main

import (
	"io"

	"github.com/k0kubun/pp/v3"

	"github.com/yoavbh10/Laboratory-C-Final-Project/pkg/assembler"
	"github.com/yoavbh10/Laboratory-C-Final-Project/pkg/preproc"
)

type dumpView struct {
	Source    string
	IC        int
	DC        int
	Macros    []preproc.Macro
	Symbols   []*assembler.Symbol
	Fixups    []assembler.Fixup
	Externals []assembler.ExternalUse
	Listing   []listedWord
}

func dump(w io.Writer, source string, macros *preproc.MacroTable, asm *assembler.Assembler) {
	printer := pp.New()
	printer.SetOutput(w)
	printer.SetColoringEnabled(styled)

	view := dumpView{
		Source:    source,
		IC:        asm.Image.IC,
		DC:        asm.Image.DC,
		Macros:    macros.Macros(),
		Symbols:   asm.Symbols.Symbols(),
		Fixups:    asm.Image.Fixups,
		Externals: asm.Externals,
	}

	if !asm.Diagnostics.HasErrors() {
		view.Listing = listing(asm)
	}

	printer.Println(view)
}
