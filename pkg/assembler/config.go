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

type Config struct {
	// Address of the first code word.
	LogicalBase int

	// Highest addressable word. Zero disables the check.
	MaxAddress int

	CodeCapacity  int
	DataCapacity  int
	FixupCapacity int

	// Zero disables the check.
	MaxLineLength int

	// Report excess .mat initializers as errors instead of warnings.
	StrictMatrix bool
}

func DefaultConfig() Config {
	return Config{
		LogicalBase:   DEFAULT_LOGICAL_BASE,
		MaxAddress:    DEFAULT_MAX_ADDRESS,
		CodeCapacity:  DEFAULT_CODE_CAPACITY,
		DataCapacity:  DEFAULT_DATA_CAPACITY,
		FixupCapacity: DEFAULT_FIXUP_CAPACITY,
		MaxLineLength: DEFAULT_MAX_LINE_LENGTH,
	}
}

// withDefaults fills capacities left at zero, which would otherwise reject
// every word.
func (config Config) withDefaults() Config {
	if config.CodeCapacity <= 0 {
		config.CodeCapacity = DEFAULT_CODE_CAPACITY
	}

	if config.DataCapacity <= 0 {
		config.DataCapacity = DEFAULT_DATA_CAPACITY
	}

	if config.FixupCapacity <= 0 {
		config.FixupCapacity = DEFAULT_FIXUP_CAPACITY
	}

	return config
}
