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

// BASE |opcode |src|dst|ARE|
// VAL  |value8         |ARE|
// REG  |src/row|dst/col|ARE|
// ---- [ _ _ _ _ _ _ _ _ _ _ ]

func PackBase(op Opcode, src, dst AddressingMode) Word {
	return Word(op&0xF)<<6 |
		Word(src&0x3)<<4 |
		Word(dst&0x3)<<2 |
		Word(ARE_ABSOLUTE)
}

// PackValue truncates value to the eight bit payload, so negative immediates
// are stored in two's complement.
func PackValue(value int, are ARE) Word {
	return Word(value&VALUE_MASK)<<2 | Word(are&0x3)
}

func PackRegisters(src, dst uint8) Word {
	return Word(src&0x7)<<6 | Word(dst&0x7)<<2 | Word(ARE_ABSOLUTE)
}

func Mask(value int) Word {
	return Word(value & WORD_MASK)
}

func (w Word) Opcode() Opcode {
	return Opcode((w >> 6) & 0xF)
}

func (w Word) SourceMode() AddressingMode {
	return AddressingMode((w >> 4) & 0x3)
}

func (w Word) DestinationMode() AddressingMode {
	return AddressingMode((w >> 2) & 0x3)
}

func (w Word) ARE() ARE {
	return ARE(w & 0x3)
}

// Registers returns the source/row and destination/column fields of a
// register word.
func (w Word) Registers() (uint8, uint8) {
	return uint8((w >> 6) & 0xF), uint8((w >> 2) & 0xF)
}

// Value returns the unsigned eight bit payload of a value word.
func (w Word) Value() int {
	return int((w >> 2) & VALUE_MASK)
}
