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

	"github.com/yoavbh10/Laboratory-C-Final-Project/pkg/machine"
)

// SecondPass rescans the same source and emits the code image from IC 0,
// recording a fixup for every operand word that must hold a symbol address.
func (asm *Assembler) SecondPass(input io.Reader) error {
	glog.V(1).Infof("%s: beginning pass 2", asm.source)

	asm.Image.ResetCode()

	scanner := bufio.NewScanner(input)
	line := 0

	for scanner.Scan() {
		line++
		stmt, ok := parseStatement(scanner.Text(), line)

		// Directives were fully handled by the first pass.
		if !ok || stmt.Keyword == "" || strings.HasPrefix(stmt.Keyword, ".") {
			continue
		}

		inst, ok := machine.FindInstruction(stmt.Keyword)

		if !ok {
			continue
		}

		if err := asm.encode(inst, &stmt); err != nil {
			asm.Diagnostics.Record(err)
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		sourceErr := &SourceError{asm.source, err}
		asm.Diagnostics.Record(sourceErr)
		return sourceErr
	}

	glog.V(1).Infof(
		"%s: pass 2 done, IC=%d fixups=%d",
		asm.source, asm.Image.IC, len(asm.Image.Fixups),
	)

	return nil
}

// encode appends exactly instructionSize(operands) words for one line. A
// line that fails validation keeps its base word and gets zero words for the
// rest, so every later slot matches the addresses bound in the first pass.
func (asm *Assembler) encode(inst *machine.Instruction, stmt *statement) error {
	operands, valid := asm.checkOperands(inst, stmt)
	size := instructionSize(operands)
	start := asm.Image.IC

	var src, dst machine.AddressingMode

	switch len(operands) {
	case 2:
		src, dst = modeOf(operands[0]), modeOf(operands[1])
	case 1:
		dst = modeOf(operands[0])
	}

	if _, err := asm.Image.AppendCode(
		machine.PackBase(inst.Opcode, src, dst), stmt.Line,
	); err != nil {
		return err
	}

	if valid {
		if err := asm.encodeOperands(operands, stmt.Line); err != nil {
			return err
		}
	}

	for asm.Image.IC-start < size {
		if _, err := asm.Image.AppendCode(0, stmt.Line); err != nil {
			return err
		}
	}

	glog.V(2).Infof("%02d: %s emitted %d words at IC=%d",
		stmt.Line, inst.Name, asm.Image.IC-start, start)

	return nil
}

func (asm *Assembler) encodeOperands(operands []Operand, line int) error {
	if len(operands) == 2 {
		src, srcReg := operands[0].(RegisterOperand)
		dst, dstReg := operands[1].(RegisterOperand)

		if srcReg && dstReg {
			_, err := asm.Image.AppendCode(
				machine.PackRegisters(src.Index, dst.Index), line,
			)
			return err
		}
	}

	for i, op := range operands {
		source := len(operands) == 2 && i == 0

		if err := asm.encodeOperand(op, source, line); err != nil {
			return err
		}
	}

	return nil
}

func (asm *Assembler) encodeOperand(op Operand, source bool, line int) error {
	switch op := op.(type) {
	case RegisterOperand:
		word := machine.PackRegisters(0, op.Index)

		if source {
			word = machine.PackRegisters(op.Index, 0)
		}

		_, err := asm.Image.AppendCode(word, line)
		return err

	case ImmediateOperand:
		_, err := asm.Image.AppendCode(
			machine.PackValue(op.Value, machine.ARE_ABSOLUTE), line,
		)
		return err

	case DirectOperand:
		return asm.emitAddress(op.Label, line)

	case MatrixOperand:
		if err := asm.emitAddress(op.Label, line); err != nil {
			return err
		}

		_, err := asm.Image.AppendCode(
			machine.PackRegisters(op.Row, op.Col), line,
		)
		return err
	}

	panic("unhandled operand type")
}

// emitAddress writes a placeholder word for label and records its fixup.
func (asm *Assembler) emitAddress(label string, line int) error {
	slot, err := asm.Image.AppendCode(0, line)

	if err != nil {
		return err
	}

	return asm.Image.AddFixup(Fixup{slot, label, line})
}

func modeOf(op Operand) machine.AddressingMode {
	if op == nil {
		return 0
	}

	return op.Mode()
}
