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

package machine_test

import (
	"testing"

	"github.com/yoavbh10/Laboratory-C-Final-Project/pkg/machine"
)

func TestCatalog(t *testing.T) {
	tests := []struct {
		Name     string
		Opcode   machine.Opcode
		Operands int
	}{
		{"mov", 0, 2}, {"cmp", 1, 2}, {"add", 2, 2}, {"sub", 3, 2},
		{"not", 4, 1}, {"clr", 5, 1}, {"lea", 6, 2}, {"inc", 7, 1},
		{"dec", 8, 1}, {"jmp", 9, 1}, {"bne", 10, 1}, {"red", 11, 1},
		{"prn", 12, 1}, {"jsr", 13, 1}, {"rts", 14, 0}, {"stop", 15, 0},
	}

	if count := len(machine.Instructions()); count != len(tests) {
		t.Fatalf("Catalog size mismatch\n\twant:%d\n\thave:%d", len(tests), count)
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			inst, ok := machine.FindInstruction(test.Name)

			if !ok {
				t.Fatalf("Missing instruction %s", test.Name)
			}

			if inst.Opcode != test.Opcode || inst.Operands != test.Operands {
				t.Fatalf(
					"Instruction mismatch\n\twant:%d/%d\n\thave:%d/%d",
					test.Opcode, test.Operands, inst.Opcode, inst.Operands,
				)
			}
		})
	}

	if _, ok := machine.FindInstruction("MOV"); ok {
		t.Fatal("Mnemonics must be case sensitive")
	}
}

func TestAllows(t *testing.T) {
	lea, _ := machine.FindInstruction("lea")

	if lea.Allows(0, machine.MODE_IMMEDIATE) || lea.Allows(0, machine.MODE_REGISTER) {
		t.Fatal("lea source must only accept direct and matrix operands")
	}

	if !lea.Allows(0, machine.MODE_MATRIX) || !lea.Allows(1, machine.MODE_REGISTER) {
		t.Fatal("lea rejected a legal operand")
	}

	prn, _ := machine.FindInstruction("prn")

	if !prn.Allows(0, machine.MODE_IMMEDIATE) {
		t.Fatal("prn must accept an immediate destination")
	}

	if prn.Allows(1, machine.MODE_DIRECT) {
		t.Fatal("prn has no second operand")
	}

	mov, _ := machine.FindInstruction("mov")

	if mov.Allows(1, machine.MODE_IMMEDIATE) {
		t.Fatal("mov must not write to an immediate")
	}

	stop, _ := machine.FindInstruction("stop")

	for mode := machine.AddressingMode(0); mode < machine.MODE_COUNT; mode++ {
		if stop.Allows(0, mode) {
			t.Fatalf("stop accepted %s operand", mode)
		}
	}
}

func TestRegisters(t *testing.T) {
	for i, name := range []string{"r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7"} {
		reg, ok := machine.ParseRegister(name)

		if !ok || int(reg) != i {
			t.Fatalf("Register mismatch\n\twant:%d\n\thave:%d", i, reg)
		}
	}

	for _, name := range []string{"r8", "R1", "r", "r10", "x1", ""} {
		if machine.IsRegisterName(name) {
			t.Fatalf("%q is not a register", name)
		}
	}
}

func TestReserved(t *testing.T) {
	for _, ident := range []string{"mov", "stop", "r3", ".data", "data", "entry", "mat"} {
		if !machine.IsReserved(ident) {
			t.Fatalf("%q must be reserved", ident)
		}
	}

	for _, ident := range []string{"MAIN", "loop", "r8", "movx"} {
		if machine.IsReserved(ident) {
			t.Fatalf("%q must not be reserved", ident)
		}
	}
}

// BASE |opcode |src|dst|ARE|
// ---- [ _ _ _ _ _ _ _ _ _ _ ]
func TestPack(t *testing.T) {
	tests := []struct {
		Name string
		Have machine.Word
		Want machine.Word
	}{
		{
			"add #, r",
			machine.PackBase(machine.OP_ADD, machine.MODE_IMMEDIATE, machine.MODE_REGISTER),
			0b0010_00_11_00,
		},
		{
			"stop",
			machine.PackBase(machine.OP_STOP, 0, 0),
			0b1111_00_00_00,
		},
		{
			"value 5",
			machine.PackValue(5, machine.ARE_ABSOLUTE),
			0b00000101_00,
		},
		{
			"value -1",
			machine.PackValue(-1, machine.ARE_ABSOLUTE),
			0b11111111_00,
		},
		{
			"address external",
			machine.PackValue(0, machine.ARE_EXTERNAL),
			0b00000000_01,
		},
		{
			"address relocatable",
			machine.PackValue(130, machine.ARE_RELOCATABLE),
			0b10000010_10,
		},
		{
			"registers",
			machine.PackRegisters(3, 5),
			0b0011_0101_00,
		},
		{
			"mask",
			machine.Mask(-1),
			0b1111111111,
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			if test.Have != test.Want {
				t.Fatalf(
					"Word encoding mismatch\n\twant:%#010b\n\thave:%#010b",
					test.Want, test.Have,
				)
			}
		})
	}

	word := machine.PackBase(machine.OP_LEA, machine.MODE_MATRIX, machine.MODE_DIRECT)

	if word.Opcode() != machine.OP_LEA ||
		word.SourceMode() != machine.MODE_MATRIX ||
		word.DestinationMode() != machine.MODE_DIRECT ||
		word.ARE() != machine.ARE_ABSOLUTE {
		t.Fatalf("Base word fields do not round trip: %#010b", word)
	}
}
