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
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/golang/glog"

	"github.com/yoavbh10/Laboratory-C-Final-Project/pkg/encoding"
	"github.com/yoavbh10/Laboratory-C-Final-Project/pkg/machine"
)

const (
	DEFAULT_MAX_MACROS = 512
	MAX_NAME_LEN       = 31
)

var ErrExpansionFailed = errors.New("Expansion failed")

type Config struct {
	// Zero disables the limit.
	MaxMacros int
}

func DefaultConfig() Config {
	return Config{MaxMacros: DEFAULT_MAX_MACROS}
}

// Preprocessor expands .define macros for one source file at a time.
type Preprocessor struct {
	Config Config
	Macros *MacroTable
	Errors []error
}

func New(config Config) *Preprocessor {
	pre := &Preprocessor{Config: config}
	pre.Reset()
	return pre
}

func (pre *Preprocessor) Reset() {
	pre.Macros = NewMacroTable(pre.Config.MaxMacros)
	pre.Errors = nil
}

// Expand copies input to output line by line, replacing every macro name
// with its value. Define lines become empty lines so line numbers are kept.
// Malformed lines are recorded in Errors and expansion continues; the
// returned error is ErrExpansionFailed, or the I/O error that stopped it.
func (pre *Preprocessor) Expand(input io.Reader, output io.Writer) error {
	pre.Reset()

	scanner := bufio.NewScanner(input)
	writer := bufio.NewWriter(output)
	line := 0

	for scanner.Scan() {
		line++
		text := scanner.Text()

		if pre.isDefine(text, line) {
			text = ""
		} else {
			text = pre.substitute(text)
		}

		if _, err := writer.WriteString(text + "\n"); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return err
	}

	if err := writer.Flush(); err != nil {
		return err
	}

	glog.V(1).Infof("expanded %d lines with %d macros", line, pre.Macros.Len())

	if len(pre.Errors) > 0 {
		return ErrExpansionFailed
	}

	return nil
}

// ExpandFile expands the file at inPath into outPath. Output is written even
// when the source has errors, so the expanded lines can be inspected.
func (pre *Preprocessor) ExpandFile(inPath, outPath string) error {
	infile, err := os.Open(inPath)

	if err != nil {
		return &SourceError{inPath, err}
	}

	defer infile.Close()

	outfile, err := os.Create(outPath)

	if err != nil {
		return &SourceError{outPath, err}
	}

	err = pre.Expand(infile, outfile)

	if closeErr := outfile.Close(); err == nil && closeErr != nil {
		err = closeErr
	}

	if err != nil && err != ErrExpansionFailed {
		return &SourceError{inPath, err}
	}

	return err
}

// isDefine handles text if it is a .define line, recording any problem with
// it, and reports whether the line must be dropped from the output.
func (pre *Preprocessor) isDefine(text string, line int) bool {
	fields := strings.Fields(stripComment(text))

	if len(fields) == 0 {
		return false
	}

	if len(fields) > 1 && strings.HasSuffix(fields[0], ":") &&
		fields[1] == machine.DIRECTIVE_DEFINE {
		pre.fail(&MalformedDefineError{line, fields[0], "label before .define"})
		return true
	}

	if fields[0] != machine.DIRECTIVE_DEFINE {
		return false
	}

	// .define NAME = VALUE
	// ------- [ _ _ _ _ _ ]
	body := strings.TrimSpace(
		strings.TrimPrefix(strings.TrimSpace(stripComment(text)), machine.DIRECTIVE_DEFINE),
	)

	eq := strings.IndexByte(body, '=')

	if eq == -1 {
		pre.fail(&MalformedDefineError{line, body, "missing '='"})
		return true
	}

	name := strings.TrimSpace(body[:eq])
	value := strings.TrimSpace(pre.substitute(body[eq+1:]))

	if reason := invalidNameReason(name); reason != "" {
		pre.fail(&MalformedDefineError{line, name, reason})
		return true
	}

	if _, err := encoding.DecodeInt(value); err != nil || strings.HasPrefix(value, "#") {
		pre.fail(&MalformedDefineError{line, name, "value must be an integer"})
		return true
	}

	if err := pre.Macros.Define(name, value, line); err != nil {
		pre.fail(err)
		return true
	}

	glog.V(2).Infof("%02d: defined %s = %s", line, name, value)
	return true
}

func (pre *Preprocessor) fail(err error) {
	pre.Errors = append(pre.Errors, err)
}

// substitute replaces macro names in the code part of text. String literals
// and comments are copied unchanged.
func (pre *Preprocessor) substitute(text string) string {
	if pre.Macros.Len() == 0 {
		return text
	}

	var out strings.Builder
	quoted := false

	for i := 0; i < len(text); {
		c := text[i]

		switch {
		case c == '"':
			quoted = !quoted

		case quoted:

		case c == ';':
			out.WriteString(text[i:])
			return out.String()

		case isIdentStart(c):
			end := i + 1

			for end < len(text) && isIdentPart(text[end]) {
				end++
			}

			word := text[i:end]

			if value, exists := pre.Macros.Lookup(word); exists {
				word = value
			}

			out.WriteString(word)
			i = end
			continue
		}

		out.WriteByte(c)
		i++
	}

	return out.String()
}

func stripComment(text string) string {
	quoted := false

	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '"':
			quoted = !quoted
		case ';':
			if !quoted {
				return text[:i]
			}
		}
	}

	return text
}

func invalidNameReason(name string) string {
	if name == "" {
		return "empty name"
	}

	if len(name) > MAX_NAME_LEN {
		return "name is too long"
	}

	if !isIdentStart(name[0]) || name[0] == '_' {
		return "must start with a letter"
	}

	for i := 1; i < len(name); i++ {
		if !isIdentPart(name[i]) {
			return "must only contain letters, digits and underscores"
		}
	}

	if machine.IsReserved(name) {
		return "reserved word"
	}

	return ""
}

func isIdentStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// Expand expands input into output with config and returns the macros that
// were defined together with every recorded error.
func Expand(input io.Reader, output io.Writer, config Config) (*MacroTable, []error) {
	pre := New(config)

	if err := pre.Expand(input, output); err != nil && err != ErrExpansionFailed {
		return pre.Macros, append(pre.Errors, err)
	}

	return pre.Macros, pre.Errors
}
