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
	"strings"

	"github.com/yoavbh10/Laboratory-C-Final-Project/pkg/encoding"
	"github.com/yoavbh10/Laboratory-C-Final-Project/pkg/machine"
)

// Operand is one of ImmediateOperand, DirectOperand, MatrixOperand or
// RegisterOperand.
type Operand interface {
	Mode() machine.AddressingMode
	isOperand()
}

type ImmediateOperand struct {
	Value int
}

type DirectOperand struct {
	Label string
}

type MatrixOperand struct {
	Label string
	Row   uint8
	Col   uint8
}

type RegisterOperand struct {
	Index uint8
}

func (ImmediateOperand) Mode() machine.AddressingMode { return machine.MODE_IMMEDIATE }
func (DirectOperand) Mode() machine.AddressingMode    { return machine.MODE_DIRECT }
func (MatrixOperand) Mode() machine.AddressingMode    { return machine.MODE_MATRIX }
func (RegisterOperand) Mode() machine.AddressingMode  { return machine.MODE_REGISTER }

func (ImmediateOperand) isOperand() {}
func (DirectOperand) isOperand()    {}
func (MatrixOperand) isOperand()    {}
func (RegisterOperand) isOperand()  {}

// ClassifyOperand maps trimmed operand text to its addressing mode. It has no
// side effects and returns false for anything that is not a valid operand.
func ClassifyOperand(text string) (Operand, bool) {
	switch {
	case text == "":
		return nil, false

	case text[0] == '#':
		value, err := encoding.DecodeInt(text)

		if err != nil {
			return nil, false
		}

		return ImmediateOperand{value}, true

	case machine.IsRegisterName(text):
		reg, _ := machine.ParseRegister(text)
		return RegisterOperand{reg}, true

	case strings.ContainsAny(text, "[]"):
		return classifyMatrix(text)
	}

	if invalidLabelReason(text) != "" {
		return nil, false
	}

	return DirectOperand{text}, true
}

// label[rX][rY], whitespace allowed inside the brackets
func classifyMatrix(text string) (Operand, bool) {
	open := strings.IndexByte(text, '[')

	if open <= 0 {
		return nil, false
	}

	label := text[:open]

	if invalidLabelReason(label) != "" {
		return nil, false
	}

	var regs [2]uint8
	rest := text[open:]

	for i := range regs {
		if len(rest) == 0 || rest[0] != '[' {
			return nil, false
		}

		end := strings.IndexByte(rest, ']')

		if end == -1 {
			return nil, false
		}

		reg, ok := machine.ParseRegister(strings.TrimSpace(rest[1:end]))

		if !ok {
			return nil, false
		}

		regs[i] = reg
		rest = rest[end+1:]
	}

	if strings.TrimSpace(rest) != "" {
		return nil, false
	}

	return MatrixOperand{label, regs[0], regs[1]}, true
}

// SplitOperands splits text on every comma and trims each part. Empty text
// yields no operands; empty parts between commas are kept as "".
func SplitOperands(text string) []string {
	text = strings.TrimSpace(text)

	if text == "" {
		return nil
	}

	parts := strings.Split(text, ",")

	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	return parts
}

// invalidLabelReason returns why name cannot be used as a label, or "" if it
// can.
func invalidLabelReason(name string) string {
	if name == "" {
		return "empty name"
	}

	if len(name) > MAX_LABEL_LEN {
		return "name is too long"
	}

	if !isLetter(name[0]) {
		return "must start with a letter"
	}

	for i := 1; i < len(name); i++ {
		if !isLetter(name[i]) && !isDigit(name[i]) && name[i] != '_' {
			return "must only contain letters, digits and underscores"
		}
	}

	if machine.IsRegisterName(name) {
		return "register names are reserved"
	}

	if machine.IsReserved(name) {
		return "reserved word"
	}

	return ""
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// operandWords is the number of extra words one operand occupies when it
// does not share a register word.
func operandWords(op Operand) int {
	switch op.(type) {
	case ImmediateOperand, DirectOperand, RegisterOperand:
		return 1
	case MatrixOperand:
		return 2
	case nil:
		return 0
	}

	panic("unhandled operand type")
}
