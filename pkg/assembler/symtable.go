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

type Symbol struct {
	Name    string
	Address int
	Class   SymbolClass
	Entry   bool
	Extern  bool
	Defined bool

	// Line of the definition, or of the first .entry/.extern naming it.
	Line int
}

// SymTable maps names to symbols and remembers insertion order so reports
// list symbols in the order they first appeared.
type SymTable struct {
	index   map[string]int
	symbols []*Symbol
}

func NewSymTable() *SymTable {
	return &SymTable{index: make(map[string]int)}
}

func (table *SymTable) Len() int {
	return len(table.symbols)
}

func (table *SymTable) Lookup(name string) (*Symbol, bool) {
	if i, exists := table.index[name]; exists {
		return table.symbols[i], true
	}

	return nil, false
}

// Insert returns the named symbol, creating an unresolved CODE symbol if it
// does not exist yet.
func (table *SymTable) Insert(name string, line int) *Symbol {
	if sym, exists := table.Lookup(name); exists {
		return sym
	}

	sym := &Symbol{Name: name, Class: SYMBOL_CODE, Line: line}
	table.index[name] = len(table.symbols)
	table.symbols = append(table.symbols, sym)
	return sym
}

// Define binds name to addr. A symbol can only be defined once and extern
// symbols cannot be defined at all.
func (table *SymTable) Define(name string, addr int, class SymbolClass, line int) error {
	sym, exists := table.Lookup(name)

	if exists {
		if sym.Extern {
			return &ExternRedefinitionError{line, name}
		}

		if sym.Defined {
			return &RedeclaredLabelError{line, name}
		}
	} else {
		sym = table.Insert(name, line)
	}

	sym.Address = addr
	sym.Class = class
	sym.Defined = true
	sym.Line = line
	return nil
}

func (table *SymTable) MarkExtern(name string, line int) error {
	sym, exists := table.Lookup(name)

	if exists {
		if sym.Defined {
			return &ExternConflictError{line, name}
		}

		if sym.Entry {
			return &EntryConflictError{line, name}
		}
	} else {
		sym = table.Insert(name, line)
	}

	sym.Extern = true
	return nil
}

func (table *SymTable) MarkEntry(name string, line int) error {
	sym := table.Insert(name, line)

	if sym.Extern {
		return &EntryConflictError{line, name}
	}

	sym.Entry = true
	return nil
}

// Relocate adds bump to the address of every defined, non-extern DATA symbol.
func (table *SymTable) Relocate(bump int) {
	for _, sym := range table.symbols {
		if sym.Class == SYMBOL_DATA && sym.Defined && !sym.Extern {
			sym.Address += bump
		}
	}
}

func (table *SymTable) Symbols() []*Symbol {
	result := make([]*Symbol, len(table.symbols))
	copy(result, table.symbols)
	return result
}

// Entries returns the exported symbols in declaration order.
func (table *SymTable) Entries() []*Symbol {
	var result []*Symbol

	for _, sym := range table.symbols {
		if sym.Entry && !sym.Extern {
			result = append(result, sym)
		}
	}

	return result
}
