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
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"

	"github.com/yoavbh10/Laboratory-C-Final-Project/pkg/assembler"
	"github.com/yoavbh10/Laboratory-C-Final-Project/pkg/objfile"
	"github.com/yoavbh10/Laboratory-C-Final-Project/pkg/preproc"
)

// sourcePaths maps a command line argument to the source path and the base
// path the outputs are named after.
func sourcePaths(arg string, outDir string) (source string, base string) {
	source = arg

	if filepath.Ext(arg) == "" {
		source = arg + objfile.EXT_SOURCE
	}

	base = strings.TrimSuffix(source, filepath.Ext(source))

	if outDir != "" {
		base = filepath.Join(outDir, filepath.Base(base))
	}

	return source, base
}

// assembleFile runs every stage for one source file and reports whether it
// succeeded. Failures are logged and never affect other files.
func assembleFile(arg string, opts *options) bool {
	source, base := sourcePaths(arg, opts.OutDir)
	expanded := base + objfile.EXT_EXPANDED

	setPrefix(filepath.Base(source))
	defer setPrefix("")

	if stat, err := os.Stat(source); err != nil {
		log.Println(err)
		return false
	} else if stat.IsDir() {
		log.Printf("%s is not a valid assembly source file", source)
		return false
	}

	glog.V(1).Infof("%s: expanding into %s", source, expanded)

	pre := preproc.New(opts.Preproc)
	err := pre.ExpandFile(source, expanded)

	if !opts.KeepExpanded {
		defer removeExpanded(expanded)
	}

	if err != nil {
		if err == preproc.ErrExpansionFailed {
			report(source, pre.Errors, nil)
		} else {
			log.Println(err)
		}

		objfile.Remove(base)
		return false
	}

	asm := assembler.New(opts.Assembler)
	err = asm.AssembleFile(expanded)

	if opts.Dump {
		dump(os.Stderr, source, pre.Macros, asm)
	}

	report(expanded, asm.Diagnostics.Errors(), asm.Diagnostics.Warnings())

	if err != nil {
		objfile.Remove(base)
		return false
	}

	written, err := objfile.Write(base, asm, opts.Format)

	if err != nil {
		log.Println("Error writing output files")
		log.Println(err)
		return false
	}

	for _, path := range written {
		glog.V(1).Infof("%s: wrote %s", source, path)
	}

	return true
}

func removeExpanded(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		glog.Warningf("could not remove %s: %s", path, err)
	}
}

func setPrefix(name string) {
	switch {
	case name == "":
		log.SetPrefix("")
	case styled:
		log.SetPrefix(fmt.Sprintf("\033[1m%s:\033[0m", name))
	default:
		log.SetPrefix(name + ":")
	}
}

// report prints each diagnostic followed by the source line it refers to.
// Expanded line numbers match the unexpanded source.
func report(path string, errs []error, warns []error) {
	lines := readLines(path)

	show := func(err error, warning bool) {
		text := err.Error()

		if warning {
			label := "warning: "

			if styled {
				label = "\033[33mwarning:\033[0m "
			}

			text = label + text
		}

		line := 0

		if lineErr, ok := err.(interface{ GetLine() int }); ok {
			line = lineErr.GetLine()
		}

		if line <= 0 || line > len(lines) {
			log.Println(text)
			return
		}

		if styled {
			log.Printf("%s\n\033[31m%s\033[0m", text, lines[line-1])
		} else {
			log.Printf("%s\n%s", text, lines[line-1])
		}
	}

	for _, err := range errs {
		show(err, false)
	}

	for _, err := range warns {
		show(err, true)
	}
}

func readLines(path string) []string {
	file, err := os.Open(path)

	if err != nil {
		return nil
	}

	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	return lines
}
