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
	"sort"
)

type diagnosticKey struct {
	line    int
	message string
}

// Diagnostics collects line numbered errors and warnings for one source file.
// Recording the same message for the same line twice keeps only the first.
type Diagnostics struct {
	errs  []error
	warns []error
	seen  map[diagnosticKey]bool
}

func (diag *Diagnostics) add(list *[]error, err error) bool {
	if diag.seen == nil {
		diag.seen = make(map[diagnosticKey]bool)
	}

	key := diagnosticKey{lineOf(err), err.Error()}

	if diag.seen[key] {
		return false
	}

	diag.seen[key] = true
	*list = append(*list, err)
	return true
}

func (diag *Diagnostics) Record(err error) {
	diag.add(&diag.errs, err)
}

func (diag *Diagnostics) Warn(err error) {
	diag.add(&diag.warns, err)
}

func (diag *Diagnostics) HasErrors() bool {
	return len(diag.errs) > 0
}

// Errors returns the recorded errors ordered by line. Errors on the same line
// keep the order they were recorded in.
func (diag *Diagnostics) Errors() []error {
	return sortedByLine(diag.errs)
}

func (diag *Diagnostics) Warnings() []error {
	return sortedByLine(diag.warns)
}

func (diag *Diagnostics) Reset() {
	diag.errs = nil
	diag.warns = nil
	diag.seen = nil
}

func sortedByLine(errs []error) []error {
	result := make([]error, len(errs))
	copy(result, errs)

	sort.SliceStable(result, func(i, j int) bool {
		return lineOf(result[i]) < lineOf(result[j])
	})

	return result
}

func lineOf(err error) int {
	if lineErr, ok := err.(LineError); ok {
		return lineErr.GetLine()
	}

	return 0
}
