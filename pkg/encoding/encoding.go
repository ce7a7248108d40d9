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

package encoding

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type Format uint

const (
	FORMAT_DECIMAL Format = iota
	FORMAT_BASE4
)

const base4Alphabet = "abcd"

// Decodes a base-10 string in the formats: #123, #-5, +7, -12, 42
func DecodeInt(s string) (int, error) {
	if i := strings.Index(s, "#"); i == 0 {
		s = s[1:]
	}

	if s == "" {
		return 0, errors.New("Empty integer literal")
	}

	digits := s
	if digits[0] == '+' || digits[0] == '-' {
		digits = digits[1:]
	}

	if digits == "" || strings.IndexFunc(digits, func(r rune) bool {
		return r < '0' || r > '9'
	}) != -1 {
		return 0, fmt.Errorf("Invalid integer literal %q", s)
	}

	result, err := strconv.ParseInt(s, 10, 32)

	if err != nil {
		return 0, err
	}

	return int(result), nil
}

func SignExtend(value uint16, bitcount uint16) int {
	value &= (1 << bitcount) - 1

	if (value>>(bitcount-1))&0x1 == 1 {
		return int(value) - (1 << bitcount)
	}

	return int(value)
}

func FitsSigned(value int, bitcount uint) bool {
	limit := 1 << (bitcount - 1)
	return value >= -limit && value < limit
}

func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "", "decimal", "dec":
		return FORMAT_DECIMAL, nil
	case "base4", "abcd":
		return FORMAT_BASE4, nil
	}

	return FORMAT_DECIMAL, fmt.Errorf("Unknown output format %q", name)
}

func (format Format) String() string {
	if format == FORMAT_BASE4 {
		return "base4"
	}

	return "decimal"
}

func (format Format) EncodeAddress(addr int) string {
	if format == FORMAT_BASE4 {
		return EncodeBase4(uint(addr), 4)
	}

	return fmt.Sprintf("%04d", addr)
}

func (format Format) EncodeWord(word uint16) string {
	if format == FORMAT_BASE4 {
		return EncodeBase4(uint(word&0x3FF), 5)
	}

	return fmt.Sprintf("%04d", word&0x3FF)
}

// EncodeBase4 renders value with the digits a=0, b=1, c=2, d=3, zero padded
// (with 'a') to width. Digits above width are dropped.
func EncodeBase4(value uint, width int) string {
	buf := make([]byte, width)

	for i := width - 1; i >= 0; i-- {
		buf[i] = base4Alphabet[value&0x3]
		value >>= 2
	}

	return string(buf)
}
