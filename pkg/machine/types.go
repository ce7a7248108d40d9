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

package machine

type Word uint16
type Opcode uint8
type AddressingMode uint8
type ARE uint8

func (mode AddressingMode) String() string {
	switch mode {
	case MODE_IMMEDIATE:
		return "immediate"
	case MODE_DIRECT:
		return "direct"
	case MODE_MATRIX:
		return "matrix"
	case MODE_REGISTER:
		return "register"
	}

	return "<invalid>"
}

func (are ARE) String() string {
	switch are {
	case ARE_ABSOLUTE:
		return "A"
	case ARE_EXTERNAL:
		return "E"
	case ARE_RELOCATABLE:
		return "R"
	}

	return "<invalid>"
}

// Instruction is one immutable entry of the instruction catalog. Source and
// Destination are indexed by AddressingMode.
type Instruction struct {
	Name        string
	Opcode      Opcode
	Operands    int
	Source      [MODE_COUNT]bool
	Destination [MODE_COUNT]bool
}

// Allows reports whether the operand at position index (0 or 1, in source
// order) may use mode. Single-operand instructions only have a destination.
func (inst *Instruction) Allows(index int, mode AddressingMode) bool {
	if mode >= MODE_COUNT {
		return false
	}

	switch {
	case inst.Operands == 2 && index == 0:
		return inst.Source[mode]
	case inst.Operands == 2 && index == 1,
		inst.Operands == 1 && index == 0:
		return inst.Destination[mode]
	}

	return false
}
