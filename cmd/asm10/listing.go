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

package main

import (
	"fmt"
	"strings"

	"github.com/yoavbh10/Laboratory-C-Final-Project/pkg/assembler"
	"github.com/yoavbh10/Laboratory-C-Final-Project/pkg/encoding"
	"github.com/yoavbh10/Laboratory-C-Final-Project/pkg/machine"
)

type listedWord struct {
	Address int
	Bits    string
	Text    string
}

// listing decodes the code image back into one entry per word. The image
// must come from a run without errors, since word counts are recovered from
// the addressing modes in each base word.
func listing(asm *assembler.Assembler) []listedWord {
	code := asm.Image.Code
	catalog := machine.Instructions()
	result := make([]listedWord, 0, len(code))

	add := func(slot int, text string) {
		result = append(result, listedWord{
			Address: asm.Config.LogicalBase + slot,
			Bits:    fmt.Sprintf("%010b", uint16(code[slot])),
			Text:    text,
		})
	}

	for slot := 0; slot < len(code); {
		base := code[slot]
		inst := catalog[base.Opcode()]

		var modes []machine.AddressingMode
		switch inst.Operands {
		case 2:
			modes = []machine.AddressingMode{base.SourceMode(), base.DestinationMode()}
		case 1:
			modes = []machine.AddressingMode{base.DestinationMode()}
		}

		names := make([]string, len(modes))
		for i, mode := range modes {
			names[i] = mode.String()
		}

		add(slot, strings.TrimSpace(inst.Name+" "+strings.Join(names, ", ")))
		slot++

		if len(modes) == 2 &&
			modes[0] == machine.MODE_REGISTER && modes[1] == machine.MODE_REGISTER {
			if slot < len(code) {
				src, dst := code[slot].Registers()
				add(slot, fmt.Sprintf("registers r%d, r%d", src, dst))
				slot++
			}
			continue
		}

		for i, mode := range modes {
			if slot >= len(code) {
				break
			}

			word := code[slot]

			switch mode {
			case machine.MODE_IMMEDIATE:
				value := encoding.SignExtend(uint16(word.Value()), machine.VALUE_BITS)
				add(slot, fmt.Sprintf("immediate %d", value))

			case machine.MODE_REGISTER:
				src, dst := word.Registers()
				if len(modes) == 2 && i == 0 {
					add(slot, fmt.Sprintf("register r%d", src))
				} else {
					add(slot, fmt.Sprintf("register r%d", dst))
				}

			case machine.MODE_DIRECT, machine.MODE_MATRIX:
				add(slot, describeAddress(word))

				if mode == machine.MODE_MATRIX && slot+1 < len(code) {
					slot++
					row, col := code[slot].Registers()
					add(slot, fmt.Sprintf("index [r%d][r%d]", row, col))
				}
			}

			slot++
		}
	}

	return result
}

func describeAddress(word machine.Word) string {
	if word.ARE() == machine.ARE_EXTERNAL {
		return "external"
	}

	return fmt.Sprintf("address %d (%s)", word.Value(), word.ARE())
}
