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

package langserver

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yoavbh10/Laboratory-C-Final-Project/pkg/assembler"
	"github.com/yoavbh10/Laboratory-C-Final-Project/pkg/machine"
	"github.com/yoavbh10/Laboratory-C-Final-Project/pkg/preproc"
)

const DIAGNOSTIC_SOURCE = "asm10"

type document struct {
	Item   TextDocumentItem
	Lines  []string
	Macros *preproc.MacroTable
	Result *assembler.Assembler
}

// analyze expands and assembles the document text and returns its
// diagnostics. A document whose macros fail to expand is not assembled.
func (s *Server) analyze(doc *document) []Diagnostic {
	doc.Lines = strings.Split(doc.Item.Text, "\n")
	doc.Result = nil

	var expanded bytes.Buffer
	pre := preproc.New(s.Preproc)
	err := pre.Expand(strings.NewReader(doc.Item.Text), &expanded)
	doc.Macros = pre.Macros

	diagnostics := make([]Diagnostic, 0)

	if err != nil {
		for _, err := range pre.Errors {
			diagnostics = append(diagnostics, doc.diagnostic(err, SEVERITY_ERROR))
		}

		return diagnostics
	}

	asm := assembler.New(s.Assembler)
	asm.AssembleSource(string(doc.Item.URI), bytes.NewReader(expanded.Bytes()))
	doc.Result = asm

	for _, err := range asm.Diagnostics.Errors() {
		diagnostics = append(diagnostics, doc.diagnostic(err, SEVERITY_ERROR))
	}

	for _, err := range asm.Diagnostics.Warnings() {
		diagnostics = append(diagnostics, doc.diagnostic(err, SEVERITY_WARNING))
	}

	return diagnostics
}

// diagnostic covers the whole offending line. Errors without a line, such as
// the memory limit, are reported on the first line.
func (doc *document) diagnostic(err error, severity int) Diagnostic {
	line := 0

	if lineErr, ok := err.(interface{ GetLine() int }); ok && lineErr.GetLine() > 0 {
		line = lineErr.GetLine() - 1
	}

	end := 0

	if line < len(doc.Lines) {
		end = len(strings.TrimRight(doc.Lines[line], "\r"))
	}

	message := strings.TrimPrefix(err.Error(), fmt.Sprintf("%02d: ", line+1))

	return Diagnostic{
		Range: Range{
			Start: Position{line, 0},
			End:   Position{line, end},
		},
		Severity: severity,
		Source:   DIAGNOSTIC_SOURCE,
		Message:  message,
	}
}

// hover describes the identifier under pos: a symbol, a macro or a mnemonic.
func (doc *document) hover(pos Position) (string, bool) {
	if pos.Line < 0 || pos.Line >= len(doc.Lines) {
		return "", false
	}

	word := identifierAt(doc.Lines[pos.Line], pos.Character)

	if word == "" {
		return "", false
	}

	if doc.Result != nil {
		if sym, exists := doc.Result.Symbols.Lookup(word); exists {
			return describeSymbol(sym), true
		}
	}

	if doc.Macros != nil {
		if value, exists := doc.Macros.Lookup(word); exists {
			return fmt.Sprintf("`%s` = %s", word, value), true
		}
	}

	if inst, exists := machine.FindInstruction(word); exists {
		return fmt.Sprintf(
			"`%s` opcode %d, %d operand(s)", inst.Name, inst.Opcode, inst.Operands,
		), true
	}

	return "", false
}

func describeSymbol(sym *assembler.Symbol) string {
	var kind string

	switch {
	case sym.Extern:
		return fmt.Sprintf("`%s` external", sym.Name)
	case !sym.Defined:
		return fmt.Sprintf("`%s` undefined", sym.Name)
	case sym.Class == assembler.SYMBOL_DATA:
		kind = "data"
	default:
		kind = "code"
	}

	text := fmt.Sprintf("`%s` %s at %d", sym.Name, kind, sym.Address)

	if sym.Entry {
		text += ", entry"
	}

	return text
}

func identifierAt(line string, char int) string {
	if char < 0 || char > len(line) {
		return ""
	}

	isIdent := func(c byte) bool {
		return c == '_' || (c >= '0' && c <= '9') ||
			(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
	}

	start, end := char, char

	for start > 0 && isIdent(line[start-1]) {
		start--
	}

	for end < len(line) && isIdent(line[end]) {
		end++
	}

	return line[start:end]
}
