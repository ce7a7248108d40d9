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
	"bufio"
	"io"
	"strings"

	"github.com/golang/glog"

	"github.com/yoavbh10/Laboratory-C-Final-Project/pkg/encoding"
	"github.com/yoavbh10/Laboratory-C-Final-Project/pkg/machine"
)

// FirstPass builds the symbol table, fills the data image and sizes the code
// image without writing code words. Malformed lines are recorded and
// skipped; only I/O and capacity failures stop the pass early.
func (asm *Assembler) FirstPass(input io.Reader) error {
	glog.V(1).Infof("%s: beginning pass 1", asm.source)

	scanner := bufio.NewScanner(input)
	line := 0

	for scanner.Scan() {
		line++
		text := scanner.Text()

		if limit := asm.Config.MaxLineLength; limit > 0 && len(text) > limit {
			asm.Diagnostics.Record(&LineTooLongError{line, limit, len(text)})
		}

		stmt, ok := parseStatement(text, line)

		if !ok {
			continue
		}

		if err := asm.firstPassStatement(&stmt); err != nil {
			asm.Diagnostics.Record(err)
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		sourceErr := &SourceError{asm.source, err}
		asm.Diagnostics.Record(sourceErr)
		return sourceErr
	}

	return asm.finishFirstPass()
}

// finishFirstPass moves data symbols behind the final code image and checks
// the symbol table and memory bounds.
func (asm *Assembler) finishFirstPass() error {
	base := asm.Config.LogicalBase
	asm.Symbols.Relocate(base + asm.Image.IC)

	for _, sym := range asm.Symbols.Symbols() {
		if sym.Entry && !sym.Defined && !sym.Extern {
			asm.Diagnostics.Record(&UndefinedEntryError{sym.Line, sym.Name})
		}
	}

	glog.V(1).Infof(
		"%s: pass 1 done, IC=%d DC=%d symbols=%d",
		asm.source, asm.Image.IC, asm.Image.DC, asm.Symbols.Len(),
	)

	if limit := asm.Config.MaxAddress; limit > 0 {
		if last := base + asm.Image.IC + asm.Image.DC - 1; last > limit {
			err := &CapacityError{0, REGION_MEMORY, limit}
			asm.Diagnostics.Record(err)
			return err
		}
	}

	return nil
}

// firstPassStatement returns an error only for failures that must stop the
// pass. Everything else goes to the diagnostics.
func (asm *Assembler) firstPassStatement(stmt *statement) error {
	label := ""

	if stmt.HasLabel {
		if reason := invalidLabelReason(stmt.Label); reason != "" {
			asm.Diagnostics.Record(
				&InvalidLabelError{stmt.Line, stmt.Label, reason},
			)
		} else {
			label = stmt.Label
		}
	}

	if stmt.Keyword == "" {
		asm.Diagnostics.Record(&MissingStatementError{stmt.Line, stmt.Label})
		return nil
	}

	switch stmt.Keyword {
	case machine.DIRECTIVE_DATA:
		asm.bind(label, asm.Image.DC, SYMBOL_DATA, stmt.Line)
		return asm.handleData(stmt)

	case machine.DIRECTIVE_STRING:
		asm.bind(label, asm.Image.DC, SYMBOL_DATA, stmt.Line)
		return asm.handleString(stmt)

	case machine.DIRECTIVE_MAT:
		asm.bind(label, asm.Image.DC, SYMBOL_DATA, stmt.Line)
		return asm.handleMatrix(stmt)

	case machine.DIRECTIVE_EXTERN, machine.DIRECTIVE_ENTRY:
		if stmt.HasLabel {
			asm.Diagnostics.Warn(
				&IgnoredLabelError{stmt.Line, stmt.Label, stmt.Keyword},
			)
		}

		asm.handleLinkage(stmt)
		return nil
	}

	if strings.HasPrefix(stmt.Keyword, ".") {
		asm.Diagnostics.Record(&UnknownDirectiveError{stmt.Line, stmt.Keyword})
		return nil
	}

	asm.bind(label, asm.Config.LogicalBase+asm.Image.IC, SYMBOL_CODE, stmt.Line)

	inst, ok := machine.FindInstruction(stmt.Keyword)

	if !ok {
		asm.Diagnostics.Record(&UnknownInstructionError{stmt.Line, stmt.Keyword})
		return nil
	}

	operands, _ := asm.checkOperands(inst, stmt)
	size := instructionSize(operands)

	glog.V(2).Infof("%02d: %s sized to %d words at IC=%d",
		stmt.Line, inst.Name, size, asm.Image.IC)

	return asm.Image.Advance(size, stmt.Line)
}

func (asm *Assembler) bind(label string, addr int, class SymbolClass, line int) {
	if label == "" {
		return
	}

	if err := asm.Symbols.Define(label, addr, class, line); err != nil {
		asm.Diagnostics.Record(err)
	}
}

// .data n[, n...]
func (asm *Assembler) handleData(stmt *statement) error {
	items := SplitOperands(stmt.Args)

	if len(items) == 0 {
		asm.Diagnostics.Record(
			&InvalidNumArgumentsError{stmt.Line, stmt.Keyword, 1, 0},
		)
		return nil
	}

	// Malformed items still occupy a word so later addresses do not shift.
	for _, item := range items {
		value, _ := asm.parseDataValue(item, stmt.Line)

		if err := asm.Image.AppendData(value, stmt.Line); err != nil {
			return err
		}
	}

	return nil
}

func (asm *Assembler) parseDataValue(item string, line int) (int, bool) {
	if strings.HasPrefix(item, "#") {
		asm.Diagnostics.Record(&InvalidLiteralError{line, item})
		return 0, false
	}

	value, err := encoding.DecodeInt(item)

	if err != nil {
		asm.Diagnostics.Record(&InvalidLiteralError{line, item})
		return 0, false
	}

	// Accept both the signed and the unsigned reading of a 10 bit word.
	if value < -(1<<(machine.WORD_BITS-1)) || value > machine.WORD_MASK {
		asm.Diagnostics.Record(
			&OversizedLiteralError{line, machine.WORD_BITS, value},
		)
		return 0, false
	}

	return value, true
}

// .string "text"
func (asm *Assembler) handleString(stmt *statement) error {
	text := stmt.Args

	if len(text) < 2 || text[0] != '"' || text[len(text)-1] != '"' {
		asm.Diagnostics.Record(&InvalidStringError{stmt.Line})
		return nil
	}

	text = text[1 : len(text)-1]

	for i := 0; i < len(text); i++ {
		if text[i] == '"' || text[i] < ' ' || text[i] > '~' {
			asm.Diagnostics.Record(&InvalidStringError{stmt.Line})
			return nil
		}
	}

	for i := 0; i < len(text); i++ {
		if err := asm.Image.AppendData(int(text[i]), stmt.Line); err != nil {
			return err
		}
	}

	return asm.Image.AppendData(0, stmt.Line)
}

// .mat [rows][cols] [n[, n...]]
func (asm *Assembler) handleMatrix(stmt *statement) error {
	rest := stmt.Args
	var dims [2]int

	for i := range dims {
		rest = strings.TrimSpace(rest)

		if !strings.HasPrefix(rest, "[") {
			asm.Diagnostics.Record(
				&InvalidMatrixError{stmt.Line, "expected [rows][cols]"},
			)
			return nil
		}

		end := strings.IndexByte(rest, ']')

		if end == -1 {
			asm.Diagnostics.Record(
				&InvalidMatrixError{stmt.Line, "missing ']'"},
			)
			return nil
		}

		digits := strings.TrimSpace(rest[1:end])
		value, err := encoding.DecodeInt(digits)

		if err != nil || value <= 0 || !isDigit(digits[0]) {
			asm.Diagnostics.Record(
				&InvalidMatrixError{stmt.Line, "dimensions must be positive integers"},
			)
			return nil
		}

		dims[i] = value
		rest = rest[end+1:]
	}

	total := dims[0] * dims[1]

	if free := asm.Config.DataCapacity - asm.Image.DC; total > free {
		return &CapacityError{stmt.Line, REGION_DATA, asm.Config.DataCapacity}
	}

	items := SplitOperands(rest)

	if len(items) > total {
		excess := &ExcessInitializerError{stmt.Line, total, len(items)}

		if asm.Config.StrictMatrix {
			asm.Diagnostics.Record(excess)
		} else {
			asm.Diagnostics.Warn(excess)
		}
	}

	for i := 0; i < total; i++ {
		value := 0

		if i < len(items) {
			value, _ = asm.parseDataValue(items[i], stmt.Line)
		}

		if err := asm.Image.AppendData(value, stmt.Line); err != nil {
			return err
		}
	}

	return nil
}

// .extern name / .entry name
func (asm *Assembler) handleLinkage(stmt *statement) {
	names := strings.Fields(stmt.Args)

	if len(names) != 1 {
		asm.Diagnostics.Record(
			&InvalidNumArgumentsError{stmt.Line, stmt.Keyword, 1, len(names)},
		)
		return
	}

	name := names[0]

	if reason := invalidLabelReason(name); reason != "" {
		asm.Diagnostics.Record(&InvalidLabelError{stmt.Line, name, reason})
		return
	}

	var err error

	if stmt.Keyword == machine.DIRECTIVE_EXTERN {
		err = asm.Symbols.MarkExtern(name, stmt.Line)
	} else {
		err = asm.Symbols.MarkEntry(name, stmt.Line)
	}

	if err != nil {
		asm.Diagnostics.Record(err)
	}
}

// checkOperands splits and classifies the operands of one instruction line.
// The returned slice never holds more operands than the instruction takes;
// operands that failed classification are nil. The bool is false if any
// diagnostic was recorded.
func (asm *Assembler) checkOperands(inst *machine.Instruction, stmt *statement) ([]Operand, bool) {
	texts := SplitOperands(stmt.Args)
	valid := true

	if len(texts) != inst.Operands {
		asm.Diagnostics.Record(
			&InvalidNumArgumentsError{stmt.Line, inst.Name, inst.Operands, len(texts)},
		)
		valid = false

		if len(texts) > inst.Operands {
			texts = texts[:inst.Operands]
		}
	}

	operands := make([]Operand, len(texts))

	for i, text := range texts {
		op, ok := ClassifyOperand(text)

		if !ok {
			asm.Diagnostics.Record(&InvalidOperandError{stmt.Line, text})
			valid = false
			continue
		}

		if !inst.Allows(i, op.Mode()) {
			asm.Diagnostics.Record(
				&IllegalAddressingModeError{stmt.Line, inst.Name, sourceIndex(inst, i), op.Mode()},
			)
			valid = false
		}

		if imm, ok := op.(ImmediateOperand); ok &&
			!encoding.FitsSigned(imm.Value, machine.VALUE_BITS) {
			asm.Diagnostics.Record(
				&OversizedLiteralError{stmt.Line, machine.VALUE_BITS, imm.Value},
			)
			valid = false
		}

		operands[i] = op
	}

	return operands, valid
}

// sourceIndex is 0 for a source operand and 1 for a destination operand.
func sourceIndex(inst *machine.Instruction, i int) int {
	if inst.Operands == 2 && i == 0 {
		return 0
	}

	return 1
}

// instructionSize is the number of code words an instruction occupies: the
// base word plus the operand words, with two register operands sharing one.
func instructionSize(operands []Operand) int {
	if len(operands) == 2 {
		_, srcReg := operands[0].(RegisterOperand)
		_, dstReg := operands[1].(RegisterOperand)

		if srcReg && dstReg {
			return 2
		}
	}

	size := 1

	for _, op := range operands {
		size += operandWords(op)
	}

	return size
}
