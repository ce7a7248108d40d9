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

package preproc

type Macro struct {
	Name  string
	Value string
	Line  int
}

// MacroTable holds the macros of one source file in definition order.
type MacroTable struct {
	index  map[string]int
	macros []Macro
	limit  int
}

func NewMacroTable(limit int) *MacroTable {
	return &MacroTable{index: make(map[string]int), limit: limit}
}

func (table *MacroTable) Len() int {
	return len(table.macros)
}

func (table *MacroTable) Lookup(name string) (string, bool) {
	if i, exists := table.index[name]; exists {
		return table.macros[i].Value, true
	}

	return "", false
}

func (table *MacroTable) Define(name, value string, line int) error {
	if _, exists := table.index[name]; exists {
		return &RedefinedMacroError{line, name}
	}

	if table.limit > 0 && len(table.macros) >= table.limit {
		return &MacroCapacityError{line, table.limit}
	}

	table.index[name] = len(table.macros)
	table.macros = append(table.macros, Macro{name, value, line})
	return nil
}

func (table *MacroTable) Macros() []Macro {
	result := make([]Macro, len(table.macros))
	copy(result, table.macros)
	return result
}
