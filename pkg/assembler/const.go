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

const (
	SYMBOL_CODE SymbolClass = iota
	SYMBOL_DATA
)

const (
	MAX_LABEL_LEN = 31

	DEFAULT_LOGICAL_BASE    = 100
	DEFAULT_MAX_ADDRESS     = 255
	DEFAULT_CODE_CAPACITY   = 1024
	DEFAULT_DATA_CAPACITY   = 1024
	DEFAULT_FIXUP_CAPACITY  = 1024
	DEFAULT_MAX_LINE_LENGTH = 80
)

const (
	REGION_CODE   = "Code image"
	REGION_DATA   = "Data image"
	REGION_FIXUP  = "Fixup table"
	REGION_MEMORY = "Memory"
)
