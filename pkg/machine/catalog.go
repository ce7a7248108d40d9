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

var (
	none    = [MODE_COUNT]bool{}
	all     = [MODE_COUNT]bool{true, true, true, true}
	memory  = [MODE_COUNT]bool{false, true, true, false}
	writing = [MODE_COUNT]bool{false, true, true, true}
)

//            | imm | dir | mat | reg |
// ---------- [ _ _ _ _ _ _ _ _ _ _ _ _ ]
// all        |  x  |  x  |  x  |  x  |
// memory     |     |  x  |  x  |     |
// writing    |     |  x  |  x  |  x  |
var catalog = [...]Instruction{
	{"mov", OP_MOV, 2, all, writing},
	{"cmp", OP_CMP, 2, all, all},
	{"add", OP_ADD, 2, all, writing},
	{"sub", OP_SUB, 2, all, writing},
	{"not", OP_NOT, 1, none, writing},
	{"clr", OP_CLR, 1, none, writing},
	{"lea", OP_LEA, 2, memory, writing},
	{"inc", OP_INC, 1, none, writing},
	{"dec", OP_DEC, 1, none, writing},
	{"jmp", OP_JMP, 1, none, writing},
	{"bne", OP_BNE, 1, none, writing},
	{"red", OP_RED, 1, none, writing},
	{"prn", OP_PRN, 1, none, all},
	{"jsr", OP_JSR, 1, none, writing},
	{"rts", OP_RTS, 0, none, none},
	{"stop", OP_STOP, 0, none, none},
}

// Mnemonics are case sensitive.
func FindInstruction(name string) (*Instruction, bool) {
	for i := range catalog {
		if catalog[i].Name == name {
			return &catalog[i], true
		}
	}

	return nil, false
}

func Instructions() []Instruction {
	result := make([]Instruction, len(catalog))
	copy(result, catalog[:])
	return result
}

// ParseRegister accepts r0 through r7.
func ParseRegister(ident string) (uint8, bool) {
	if len(ident) != 2 || ident[0] != 'r' {
		return 0, false
	}

	if ident[1] < '0' || ident[1] >= '0'+REGISTER_COUNT {
		return 0, false
	}

	return ident[1] - '0', true
}

func IsRegisterName(ident string) bool {
	_, ok := ParseRegister(ident)
	return ok
}

func IsDirective(ident string) bool {
	switch ident {
	case DIRECTIVE_DATA,
		DIRECTIVE_STRING,
		DIRECTIVE_MAT,
		DIRECTIVE_EXTERN,
		DIRECTIVE_ENTRY,
		DIRECTIVE_DEFINE:
		return true
	}

	return false
}

// IsReserved reports whether ident may not be used as a label or macro name.
// Directive tokens are also checked without their leading dot.
func IsReserved(ident string) bool {
	if IsRegisterName(ident) || IsDirective(ident) || IsDirective("."+ident) {
		return true
	}

	_, ok := FindInstruction(ident)
	return ok
}
