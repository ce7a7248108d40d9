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

package objfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"

	"github.com/yoavbh10/Laboratory-C-Final-Project/pkg/assembler"
	"github.com/yoavbh10/Laboratory-C-Final-Project/pkg/encoding"
	"github.com/yoavbh10/Laboratory-C-Final-Project/pkg/machine"
)

const (
	EXT_SOURCE   = ".as"
	EXT_EXPANDED = ".am"
	EXT_OBJECT   = ".ob"
	EXT_ENTRIES  = ".ent"
	EXT_EXTERNS  = ".ext"
)

var ErrFailedSource = errors.New("Refusing to write output for a failed source")

// WriteObject renders the header "<code words> <data words>" followed by one
// "<address> <word>" line per word, code first, starting at the logical base.
func WriteObject(w io.Writer, asm *assembler.Assembler, format encoding.Format) error {
	out := bufio.NewWriter(w)
	img := asm.Image
	addr := asm.Config.LogicalBase

	fmt.Fprintf(out, "%d %d\n", len(img.Code), len(img.Data))

	for _, words := range [][]machine.Word{img.Code, img.Data} {
		for _, word := range words {
			fmt.Fprintf(out, "%s %s\n",
				format.EncodeAddress(addr), format.EncodeWord(uint16(word)))
			addr++
		}
	}

	return out.Flush()
}

// WriteEntries renders one "<name> <address>" line per exported symbol and
// returns how many were written.
func WriteEntries(w io.Writer, asm *assembler.Assembler, format encoding.Format) (int, error) {
	out := bufio.NewWriter(w)
	entries := asm.Symbols.Entries()

	for _, sym := range entries {
		fmt.Fprintf(out, "%s %s\n", sym.Name, format.EncodeAddress(sym.Address))
	}

	return len(entries), out.Flush()
}

// WriteExternals renders one "<name> <address>" line per use of an extern
// symbol, in resolution order, and returns how many were written.
func WriteExternals(w io.Writer, asm *assembler.Assembler, format encoding.Format) (int, error) {
	out := bufio.NewWriter(w)

	for _, use := range asm.Externals {
		fmt.Fprintf(out, "%s %s\n", use.Name, format.EncodeAddress(use.Address))
	}

	return len(asm.Externals), out.Flush()
}

// Write creates base.ob and, when they are not empty, base.ent and base.ext.
// Reports left over from an earlier run are removed. Nothing is written for
// an assembler that recorded errors; its stale reports are removed too.
func Write(base string, asm *assembler.Assembler, format encoding.Format) ([]string, error) {
	if asm.Diagnostics.HasErrors() {
		Remove(base)
		return nil, ErrFailedSource
	}

	var written []string

	if err := writeFile(base+EXT_OBJECT, func(w io.Writer) error {
		return WriteObject(w, asm, format)
	}); err != nil {
		return written, err
	}

	written = append(written, base+EXT_OBJECT)

	reports := []struct {
		ext    string
		count  int
		render func(io.Writer, *assembler.Assembler, encoding.Format) (int, error)
	}{
		{EXT_ENTRIES, len(asm.Symbols.Entries()), WriteEntries},
		{EXT_EXTERNS, len(asm.Externals), WriteExternals},
	}

	for _, report := range reports {
		path := base + report.ext

		if report.count == 0 {
			removeStale(path)
			continue
		}

		render := report.render

		if err := writeFile(path, func(w io.Writer) error {
			_, err := render(w, asm, format)
			return err
		}); err != nil {
			return written, err
		}

		written = append(written, path)
	}

	return written, nil
}

func writeFile(path string, render func(io.Writer) error) error {
	file, err := os.Create(path)

	if err != nil {
		return err
	}

	err = render(file)

	if closeErr := file.Close(); err == nil {
		err = closeErr
	}

	if err == nil {
		glog.V(1).Infof("wrote %s", path)
	}

	return err
}

// Remove deletes every output file named after base.
func Remove(base string) {
	for _, ext := range []string{EXT_OBJECT, EXT_ENTRIES, EXT_EXTERNS} {
		removeStale(base + ext)
	}
}

func removeStale(path string) {
	if err := os.Remove(path); err == nil {
		glog.V(1).Infof("removed stale %s", path)
	}
}
