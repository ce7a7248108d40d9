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
	"github.com/golang/glog"

	"github.com/yoavbh10/Laboratory-C-Final-Project/pkg/machine"
)

// ExternalUse is one code word that refers to an extern symbol.
type ExternalUse struct {
	Name    string
	Address int
}

// Resolve patches every fixup slot with its symbol's address. Fixups are
// visited in the order they were recorded, which is source order, so
// diagnostics and external uses come out in line order.
func (asm *Assembler) Resolve() {
	asm.Externals = asm.Externals[:0]

	for _, fixup := range asm.Image.Fixups {
		sym, exists := asm.Symbols.Lookup(fixup.Label)

		if !exists || !(sym.Defined || sym.Extern) {
			asm.Diagnostics.Record(&UnknownLabelError{fixup.Line, fixup.Label})
			continue
		}

		// Only reachable with MaxAddress disabled or raised past the payload.
		if sym.Address < 0 || sym.Address > machine.VALUE_MASK {
			asm.Diagnostics.Record(&AddressRangeError{fixup.Line, sym.Name, sym.Address})
			continue
		}

		are := machine.ARE_RELOCATABLE
		addr := asm.Config.LogicalBase + fixup.Slot

		if sym.Extern {
			are = machine.ARE_EXTERNAL
			asm.Externals = append(asm.Externals, ExternalUse{sym.Name, addr})
		}

		asm.Image.Patch(fixup.Slot, machine.PackValue(sym.Address, are))

		glog.V(2).Infof("%02d: patched %04d with %s=%d (%s)",
			fixup.Line, addr, sym.Name, sym.Address, are)
	}
}
