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
	"fmt"

	"github.com/yoavbh10/Laboratory-C-Final-Project/pkg/machine"
)

type SymbolClass uint

// LineError is implemented by every diagnostic tied to a source line. I/O
// failures that happen before any line is read report line 0.
type LineError interface {
	error
	GetLine() int
}

type SourceError struct {
	Path string
	Err  error
}

func (err *SourceError) GetLine() int {
	return 0
}

func (err *SourceError) Error() string {
	return fmt.Sprintf("00: Cannot read source '%s': %s", err.Path, err.Err)
}

func (err *SourceError) Unwrap() error {
	return err.Err
}

type LineTooLongError struct {
	Line     int
	Required int
	Received int
}

func (err *LineTooLongError) GetLine() int {
	return err.Line
}

func (err *LineTooLongError) Error() string {
	return fmt.Sprintf(
		"%02d: Line too long\n\twant:%d\n\thave:%d",
		err.Line,
		err.Required,
		err.Received,
	)
}

type InvalidLabelError struct {
	Line     int
	Received string
	Reason   string
}

func (err *InvalidLabelError) GetLine() int {
	return err.Line
}

func (err *InvalidLabelError) Error() string {
	return fmt.Sprintf(
		"%02d: Invalid label '%s': %s",
		err.Line,
		err.Received,
		err.Reason,
	)
}

type MissingStatementError struct {
	Line     int
	Received string
}

func (err *MissingStatementError) GetLine() int {
	return err.Line
}

func (err *MissingStatementError) Error() string {
	return fmt.Sprintf(
		"%02d: Label '%s' has no statement",
		err.Line,
		err.Received,
	)
}

type IgnoredLabelError struct {
	Line      int
	Received  string
	Directive string
}

func (err *IgnoredLabelError) GetLine() int {
	return err.Line
}

func (err *IgnoredLabelError) Error() string {
	return fmt.Sprintf(
		"%02d: Label '%s' before %s is ignored",
		err.Line,
		err.Received,
		err.Directive,
	)
}

type RedeclaredLabelError struct {
	Line     int
	Received string
}

func (err *RedeclaredLabelError) GetLine() int {
	return err.Line
}

func (err *RedeclaredLabelError) Error() string {
	return fmt.Sprintf(
		"%02d: Redeclaration of label '%s'",
		err.Line,
		err.Received,
	)
}

type ExternRedefinitionError struct {
	Line     int
	Received string
}

func (err *ExternRedefinitionError) GetLine() int {
	return err.Line
}

func (err *ExternRedefinitionError) Error() string {
	return fmt.Sprintf(
		"%02d: Label '%s' is declared extern and cannot be defined",
		err.Line,
		err.Received,
	)
}

type ExternConflictError struct {
	Line     int
	Received string
}

func (err *ExternConflictError) GetLine() int {
	return err.Line
}

func (err *ExternConflictError) Error() string {
	return fmt.Sprintf(
		"%02d: Symbol '%s' is already defined and cannot be extern",
		err.Line,
		err.Received,
	)
}

type EntryConflictError struct {
	Line     int
	Received string
}

func (err *EntryConflictError) GetLine() int {
	return err.Line
}

func (err *EntryConflictError) Error() string {
	return fmt.Sprintf(
		"%02d: Symbol '%s' cannot be both entry and extern",
		err.Line,
		err.Received,
	)
}

type UndefinedEntryError struct {
	Line     int
	Received string
}

func (err *UndefinedEntryError) GetLine() int {
	return err.Line
}

func (err *UndefinedEntryError) Error() string {
	return fmt.Sprintf(
		"%02d: Entry symbol '%s' is never defined",
		err.Line,
		err.Received,
	)
}

type UnknownDirectiveError struct {
	Line     int
	Received string
}

func (err *UnknownDirectiveError) GetLine() int {
	return err.Line
}

func (err *UnknownDirectiveError) Error() string {
	return fmt.Sprintf(
		"%02d: Unknown directive '%s'",
		err.Line,
		err.Received,
	)
}

type UnknownInstructionError struct {
	Line     int
	Received string
}

func (err *UnknownInstructionError) GetLine() int {
	return err.Line
}

func (err *UnknownInstructionError) Error() string {
	return fmt.Sprintf(
		"%02d: Unknown instruction '%s'",
		err.Line,
		err.Received,
	)
}

type InvalidNumArgumentsError struct {
	Line     int
	Keyword  string
	Required int
	Received int
}

func (err *InvalidNumArgumentsError) GetLine() int {
	return err.Line
}

func (err *InvalidNumArgumentsError) Error() string {
	return fmt.Sprintf(
		"%02d: Invalid number of arguments for '%s'\n\twant:%d\n\thave:%d",
		err.Line,
		err.Keyword,
		err.Required,
		err.Received,
	)
}

type InvalidOperandError struct {
	Line     int
	Received string
}

func (err *InvalidOperandError) GetLine() int {
	return err.Line
}

func (err *InvalidOperandError) Error() string {
	if err.Received == "" {
		return fmt.Sprintf("%02d: Empty operand", err.Line)
	}

	return fmt.Sprintf(
		"%02d: Invalid operand '%s'",
		err.Line,
		err.Received,
	)
}

type IllegalAddressingModeError struct {
	Line     int
	Keyword  string
	Index    int
	Received machine.AddressingMode
}

func (err *IllegalAddressingModeError) GetLine() int {
	return err.Line
}

func (err *IllegalAddressingModeError) Error() string {
	position := "destination"
	if err.Index == 0 {
		position = "source"
	}

	return fmt.Sprintf(
		"%02d: Illegal addressing mode for %s operand of '%s'\n\thave:%s",
		err.Line,
		position,
		err.Keyword,
		err.Received,
	)
}

type InvalidLiteralError struct {
	Line     int
	Received string
}

func (err *InvalidLiteralError) GetLine() int {
	return err.Line
}

func (err *InvalidLiteralError) Error() string {
	return fmt.Sprintf(
		"%02d: Invalid numeric literal '%s'",
		err.Line,
		err.Received,
	)
}

type OversizedLiteralError struct {
	Line     int
	Required uint
	Received int
}

func (err *OversizedLiteralError) GetLine() int {
	return err.Line
}

func (err *OversizedLiteralError) Error() string {
	return fmt.Sprintf(
		"%02d: Literal exceeds allowed size\n\twant:%d bits\n\thave:%d",
		err.Line,
		err.Required,
		err.Received,
	)
}

type InvalidStringError struct {
	Line int
}

func (err *InvalidStringError) GetLine() int {
	return err.Line
}

func (err *InvalidStringError) Error() string {
	return fmt.Sprintf("%02d: Invalid string literal", err.Line)
}

type InvalidMatrixError struct {
	Line   int
	Reason string
}

func (err *InvalidMatrixError) GetLine() int {
	return err.Line
}

func (err *InvalidMatrixError) Error() string {
	return fmt.Sprintf("%02d: Invalid matrix: %s", err.Line, err.Reason)
}

type ExcessInitializerError struct {
	Line     int
	Required int
	Received int
}

func (err *ExcessInitializerError) GetLine() int {
	return err.Line
}

func (err *ExcessInitializerError) Error() string {
	return fmt.Sprintf(
		"%02d: Too many matrix initializers\n\twant:%d\n\thave:%d",
		err.Line,
		err.Required,
		err.Received,
	)
}

type UnknownLabelError struct {
	Line     int
	Received string
}

func (err *UnknownLabelError) GetLine() int {
	return err.Line
}

func (err *UnknownLabelError) Error() string {
	return fmt.Sprintf(
		"%02d: Unknown label '%s'",
		err.Line,
		err.Received,
	)
}

type AddressRangeError struct {
	Line     int
	Received string
	Address  int
}

func (err *AddressRangeError) GetLine() int {
	return err.Line
}

func (err *AddressRangeError) Error() string {
	return fmt.Sprintf(
		"%02d: Address of label '%s' does not fit an operand word\n\twant:<=%d\n\thave:%d",
		err.Line,
		err.Received,
		machine.VALUE_MASK,
		err.Address,
	)
}

type CapacityError struct {
	Line     int
	Region   string
	Required int
}

func (err *CapacityError) GetLine() int {
	return err.Line
}

func (err *CapacityError) Error() string {
	return fmt.Sprintf(
		"%02d: %s exceeds allowed size\n\twant:%d",
		err.Line,
		err.Region,
		err.Required,
	)
}
