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
	"github.com/yoavbh10/Laboratory-C-Final-Project/pkg/machine"
)

// Fixup records a code slot that must receive the address of Label once
// every symbol is known.
type Fixup struct {
	Slot  int
	Label string
	Line  int
}

// Image holds the code and data words of one assembly unit. During the first
// pass IC only counts words; the second pass resets it and appends the real
// code words.
type Image struct {
	Code   []machine.Word
	Data   []machine.Word
	IC     int
	DC     int
	Fixups []Fixup

	codeCap  int
	dataCap  int
	fixupCap int
}

func NewImage(config *Config) *Image {
	return &Image{
		Code:     make([]machine.Word, 0, config.CodeCapacity),
		Data:     make([]machine.Word, 0, config.DataCapacity),
		codeCap:  config.CodeCapacity,
		dataCap:  config.DataCapacity,
		fixupCap: config.FixupCapacity,
	}
}

// Advance grows IC by n words without writing them.
func (img *Image) Advance(n int, line int) error {
	if img.IC+n > img.codeCap {
		return &CapacityError{line, REGION_CODE, img.codeCap}
	}

	img.IC += n
	return nil
}

func (img *Image) ResetCode() {
	img.Code = img.Code[:0]
	img.IC = 0
	img.Fixups = img.Fixups[:0]
}

// AppendCode stores word at the next code slot and returns that slot.
func (img *Image) AppendCode(word machine.Word, line int) (int, error) {
	if img.IC >= img.codeCap {
		return 0, &CapacityError{line, REGION_CODE, img.codeCap}
	}

	slot := img.IC
	img.Code = append(img.Code, word&machine.WORD_MASK)
	img.IC++
	return slot, nil
}

func (img *Image) AppendData(value int, line int) error {
	if img.DC >= img.dataCap {
		return &CapacityError{line, REGION_DATA, img.dataCap}
	}

	img.Data = append(img.Data, machine.Mask(value))
	img.DC++
	return nil
}

func (img *Image) AddFixup(fixup Fixup) error {
	if len(img.Fixups) >= img.fixupCap {
		return &CapacityError{fixup.Line, REGION_FIXUP, img.fixupCap}
	}

	img.Fixups = append(img.Fixups, fixup)
	return nil
}

func (img *Image) Patch(slot int, word machine.Word) bool {
	if slot < 0 || slot >= len(img.Code) {
		return false
	}

	img.Code[slot] = word & machine.WORD_MASK
	return true
}
