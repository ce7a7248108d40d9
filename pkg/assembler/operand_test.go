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

package assembler_test

import (
	"reflect"
	"testing"

	"github.com/yoavbh10/Laboratory-C-Final-Project/pkg/assembler"
)

func TestClassifyOperand(t *testing.T) {
	valid := map[string]assembler.Operand{
		"#0":             assembler.ImmediateOperand{Value: 0},
		"#-128":          assembler.ImmediateOperand{Value: -128},
		"#+7":            assembler.ImmediateOperand{Value: 7},
		"r0":             assembler.RegisterOperand{Index: 0},
		"r7":             assembler.RegisterOperand{Index: 7},
		"r8":             assembler.DirectOperand{Label: "r8"},
		"LOOP":           assembler.DirectOperand{Label: "LOOP"},
		"a_1":            assembler.DirectOperand{Label: "a_1"},
		"M[r1][r2]":      assembler.MatrixOperand{Label: "M", Row: 1, Col: 2},
		"M[ r3 ][\tr4 ]": assembler.MatrixOperand{Label: "M", Row: 3, Col: 4},
		"Mat2[r7][r0]":   assembler.MatrixOperand{Label: "Mat2", Row: 7, Col: 0},
	}

	for text, want := range valid {
		text, want := text, want
		t.Run(text, func(t *testing.T) {
			have, ok := assembler.ClassifyOperand(text)

			if !ok {
				t.Fatalf("Rejected valid operand %q", text)
			}

			if !reflect.DeepEqual(have, want) {
				t.Fatalf("Operand mismatch\n\twant:%#v\n\thave:%#v", want, have)
			}
		})
	}

	invalid := []string{
		"",
		"#",
		"#-",
		"#1.5",
		"#x",
		"1abc",
		"mov",
		"a-b",
		"[r1][r2]",
		"M[r1]",
		"M[r1][r2",
		"M[r1][r8]",
		"M[1][2]",
		"M[r1][r2][r3]",
		"9[r1][r2]",
	}

	for _, text := range invalid {
		text := text
		t.Run("invalid "+text, func(t *testing.T) {
			if op, ok := assembler.ClassifyOperand(text); ok {
				t.Fatalf("Accepted invalid operand %q as %#v", text, op)
			}
		})
	}
}

func TestSplitOperands(t *testing.T) {
	tests := []struct {
		Input string
		Want  []string
	}{
		{"", nil},
		{"   ", nil},
		{"r1", []string{"r1"}},
		{"r1 , r2", []string{"r1", "r2"}},
		{"r1,", []string{"r1", ""}},
		{",r1", []string{"", "r1"}},
		{"a,,b", []string{"a", "", "b"}},
	}

	for _, test := range tests {
		have := assembler.SplitOperands(test.Input)

		if !reflect.DeepEqual(have, test.Want) {
			t.Fatalf(
				"Split mismatch for %q\n\twant:%q\n\thave:%q",
				test.Input,
				test.Want,
				have,
			)
		}
	}
}
