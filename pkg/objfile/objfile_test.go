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

package objfile_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yoavbh10/Laboratory-C-Final-Project/pkg/assembler"
	"github.com/yoavbh10/Laboratory-C-Final-Project/pkg/encoding"
	"github.com/yoavbh10/Laboratory-C-Final-Project/pkg/objfile"
)

const program = `.extern FOO
MAIN: mov FOO, r1
      .entry MAIN
      stop
D:    .data 5
`

func assemble(t *testing.T, source string) *assembler.Assembler {
	t.Helper()

	asm, errs := assembler.Assemble(strings.NewReader(source), assembler.DefaultConfig())

	if len(errs) > 0 {
		t.Fatal(errs[0])
	}

	return asm
}

func TestRender(t *testing.T) {
	asm := assemble(t, program)

	tests := []struct {
		Name      string
		Format    encoding.Format
		Object    string
		Entries   string
		Externals string
	}{
		{
			Name:   "decimal",
			Format: encoding.FORMAT_DECIMAL,
			Object: "4 1\n" +
				"0100 0028\n" +
				"0101 0001\n" +
				"0102 0004\n" +
				"0103 0960\n" +
				"0104 0005\n",
			Entries:   "MAIN 0100\n",
			Externals: "FOO 0101\n",
		},
		{
			Name:   "base4",
			Format: encoding.FORMAT_BASE4,
			Object: "4 1\n" +
				"bcba aabda\n" +
				"bcbb aaaab\n" +
				"bcbc aaaba\n" +
				"bcbd ddaaa\n" +
				"bcca aaabb\n",
			Entries:   "MAIN bcba\n",
			Externals: "FOO bcbb\n",
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.Name, func(t *testing.T) {
			var object, entries, externals bytes.Buffer

			if err := objfile.WriteObject(&object, asm, test.Format); err != nil {
				t.Fatal(err)
			}

			if n, err := objfile.WriteEntries(&entries, asm, test.Format); err != nil || n != 1 {
				t.Fatalf("WriteEntries returned %d, %v", n, err)
			}

			if n, err := objfile.WriteExternals(&externals, asm, test.Format); err != nil || n != 1 {
				t.Fatalf("WriteExternals returned %d, %v", n, err)
			}

			for _, check := range []struct{ want, have string }{
				{test.Object, object.String()},
				{test.Entries, entries.String()},
				{test.Externals, externals.String()},
			} {
				if check.want != check.have {
					t.Fatalf("Output mismatch\n\twant:%q\n\thave:%q", check.want, check.have)
				}
			}
		})
	}
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "prog")

	written, err := objfile.Write(base, assemble(t, program), encoding.FORMAT_DECIMAL)

	if err != nil {
		t.Fatal(err)
	}

	if len(written) != 3 {
		t.Fatalf("Expected three outputs, have %v", written)
	}

	first, err := os.ReadFile(base + objfile.EXT_OBJECT)

	if err != nil {
		t.Fatal(err)
	}

	// Same source, byte identical output.
	if _, err := objfile.Write(base, assemble(t, program), encoding.FORMAT_DECIMAL); err != nil {
		t.Fatal(err)
	}

	second, _ := os.ReadFile(base + objfile.EXT_OBJECT)

	if !bytes.Equal(first, second) {
		t.Fatalf("Output changed between runs\n\tfirst:%q\n\tsecond:%q", first, second)
	}

	// Without linkage the reports from the previous run must disappear.
	written, err = objfile.Write(base, assemble(t, "stop"), encoding.FORMAT_DECIMAL)

	if err != nil {
		t.Fatal(err)
	}

	if len(written) != 1 {
		t.Fatalf("Expected only the object file, have %v", written)
	}

	for _, ext := range []string{objfile.EXT_ENTRIES, objfile.EXT_EXTERNS} {
		if _, err := os.Stat(base + ext); !os.IsNotExist(err) {
			t.Fatalf("Stale %s was not removed", ext)
		}
	}
}

func TestWriteFailed(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "prog")

	if _, err := objfile.Write(base, assemble(t, program), encoding.FORMAT_DECIMAL); err != nil {
		t.Fatal(err)
	}

	asm, errs := assembler.Assemble(strings.NewReader("jmp NOWHERE"), assembler.DefaultConfig())

	if len(errs) == 0 {
		t.Fatal("Expected assembly to fail")
	}

	written, err := objfile.Write(base, asm, encoding.FORMAT_DECIMAL)

	if err != objfile.ErrFailedSource || len(written) != 0 {
		t.Fatalf("Failed source produced output: %v, %v", written, err)
	}

	for _, ext := range []string{objfile.EXT_OBJECT, objfile.EXT_ENTRIES, objfile.EXT_EXTERNS} {
		if _, err := os.Stat(base + ext); !os.IsNotExist(err) {
			t.Fatalf("Output %s left behind for a failed source", ext)
		}
	}
}
