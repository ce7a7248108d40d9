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

const (
	WORD_BITS  = 10
	WORD_MASK  = (1 << WORD_BITS) - 1
	VALUE_BITS = 8
	VALUE_MASK = (1 << VALUE_BITS) - 1

	REGISTER_COUNT = 8
)

// Addressing modes, in the order used by the catalog legality vectors and
// by the two-bit mode fields of the base word.
const (
	MODE_IMMEDIATE AddressingMode = iota
	MODE_DIRECT
	MODE_MATRIX
	MODE_REGISTER

	MODE_COUNT = 4
)

const (
	ARE_ABSOLUTE    ARE = 0
	ARE_EXTERNAL    ARE = 1
	ARE_RELOCATABLE ARE = 2
)

const (
	OP_MOV  Opcode = 0
	OP_CMP  Opcode = 1
	OP_ADD  Opcode = 2
	OP_SUB  Opcode = 3
	OP_NOT  Opcode = 4
	OP_CLR  Opcode = 5
	OP_LEA  Opcode = 6
	OP_INC  Opcode = 7
	OP_DEC  Opcode = 8
	OP_JMP  Opcode = 9
	OP_BNE  Opcode = 10
	OP_RED  Opcode = 11
	OP_PRN  Opcode = 12
	OP_JSR  Opcode = 13
	OP_RTS  Opcode = 14
	OP_STOP Opcode = 15
)

const (
	DIRECTIVE_DATA   = ".data"
	DIRECTIVE_STRING = ".string"
	DIRECTIVE_MAT    = ".mat"
	DIRECTIVE_EXTERN = ".extern"
	DIRECTIVE_ENTRY  = ".entry"
	DIRECTIVE_DEFINE = ".define"
)
