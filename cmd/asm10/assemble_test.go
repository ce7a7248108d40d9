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
	"os"
	"path/filepath"
	"testing"

	"github.com/yoavbh10/Laboratory-C-Final-Project/pkg/assembler"
	"github.com/yoavbh10/Laboratory-C-Final-Project/pkg/encoding"
	"github.com/yoavbh10/Laboratory-C-Final-Project/pkg/preproc"
)

func TestSourcePaths(t *testing.T) {
	tests := []struct {
		Arg    string
		OutDir string
		Source string
		Base   string
	}{
		{"prog", "", "prog.as", "prog"},
		{"dir/prog.as", "", "dir/prog.as", "dir/prog"},
		{"dir/prog.txt", "", "dir/prog.txt", "dir/prog"},
		{"dir/prog", "out", "dir/prog.as", "out/prog"},
	}

	for _, test := range tests {
		source, base := sourcePaths(test.Arg, test.OutDir)

		if source != filepath.FromSlash(test.Source) && source != test.Source {
			t.Fatalf("Source mismatch for %q\n\twant:%s\n\thave:%s", test.Arg, test.Source, source)
		}

		if base != filepath.FromSlash(test.Base) {
			t.Fatalf("Base mismatch for %q\n\twant:%s\n\thave:%s", test.Arg, test.Base, base)
		}
	}
}

func testOptions() *options {
	return &options{
		Assembler: assembler.DefaultConfig(),
		Preproc:   preproc.DefaultConfig(),
		Format:    encoding.FORMAT_DECIMAL,
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestAssembleFile(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "prog")

	source := ".define n = 2\n.extern OUT\nMAIN: prn #n\njsr OUT\n.entry MAIN\nstop\n"

	if err := os.WriteFile(base+".as", []byte(source), 0644); err != nil {
		t.Fatal(err)
	}

	if !assembleFile(base, testOptions()) {
		t.Fatal("Assembly failed")
	}

	for _, ext := range []string{".ob", ".ent", ".ext"} {
		if !exists(base + ext) {
			t.Fatalf("Missing %s output", ext)
		}
	}

	if exists(base + ".am") {
		t.Fatal("Expanded source was not removed")
	}

	object, _ := os.ReadFile(base + ".ob")

	if want := "5 0\n0100 0768\n0101 0008\n0102 0836\n0103 0001\n0104 0960\n"; string(object) != want {
		t.Fatalf("Object mismatch\n\twant:%q\n\thave:%q", want, object)
	}

	// A broken revision of the same file must leave no outputs behind.
	if err := os.WriteFile(base+".as", []byte("jmp NOWHERE\n"), 0644); err != nil {
		t.Fatal(err)
	}

	opts := testOptions()
	opts.KeepExpanded = true

	if assembleFile(base, opts) {
		t.Fatal("Assembly of a broken source succeeded")
	}

	for _, ext := range []string{".ob", ".ent", ".ext"} {
		if exists(base + ext) {
			t.Fatalf("Output %s left behind for a failed source", ext)
		}
	}

	if !exists(base + ".am") {
		t.Fatal("Expanded source was not kept")
	}
}

func TestAssembleMissingFile(t *testing.T) {
	if assembleFile(filepath.Join(t.TempDir(), "missing"), testOptions()) {
		t.Fatal("Assembly of a missing file succeeded")
	}
}

func TestBatchContinues(t *testing.T) {
	dir := t.TempDir()
	sources := []struct {
		Name   string
		Source string
	}{
		{"first", "stop\n"},
		{"broken", "jmp NOWHERE\n"},
		{"last", "MAIN: inc r1\nstop\n"},
	}

	args := make([]string, len(sources))

	for i, src := range sources {
		args[i] = filepath.Join(dir, src.Name)

		if err := os.WriteFile(args[i]+".as", []byte(src.Source), 0644); err != nil {
			t.Fatal(err)
		}
	}

	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	if err := rootCmd.Execute(); err == nil {
		t.Fatal("Batch with a broken file reported success")
	}

	for _, src := range sources {
		want := src.Name != "broken"

		if have := exists(filepath.Join(dir, src.Name+".ob")); have != want {
			t.Fatalf("Object for %s\n\twant:%v\n\thave:%v", src.Name, want, have)
		}
	}
}
