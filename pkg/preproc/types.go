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

import (
	"fmt"
)

type MalformedDefineError struct {
	Line     int
	Received string
	Reason   string
}

type RedefinedMacroError struct {
	Line     int
	Received string
}

type MacroCapacityError struct {
	Line     int
	Required int
}

type SourceError struct {
	Path string
	Err  error
}

func (e *MalformedDefineError) GetLine() int {
	return e.Line
}

func (e *MalformedDefineError) Error() string {
	return fmt.Sprintf(
		"%02d: Malformed .define '%s'\n\twant:.define NAME = VALUE\n\thave:%s",
		e.Line,
		e.Received,
		e.Reason,
	)
}

func (e *RedefinedMacroError) GetLine() int {
	return e.Line
}

func (e *RedefinedMacroError) Error() string {
	return fmt.Sprintf("%02d: Redefinition of macro '%s'", e.Line, e.Received)
}

func (e *MacroCapacityError) GetLine() int {
	return e.Line
}

func (e *MacroCapacityError) Error() string {
	return fmt.Sprintf(
		"%02d: Too many macros\n\twant:<=%d",
		e.Line,
		e.Required,
	)
}

func (e *SourceError) GetLine() int {
	return 0
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}
