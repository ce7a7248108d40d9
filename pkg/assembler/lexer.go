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
	"strings"
	"unicode"
)

// statement is one non-blank source line split into its optional label, its
// keyword (directive or mnemonic) and the unparsed argument text.
type statement struct {
	Line     int
	Label    string
	HasLabel bool
	Keyword  string
	Args     string
}

// stripComment cuts text at the first ';' that is not inside a string
// literal.
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

// parseStatement returns false for blank and comment-only lines.
func parseStatement(text string, line int) (statement, bool) {
	stmt := statement{Line: line}

	text = strings.TrimSpace(stripComment(text))

	if text == "" {
		return stmt, false
	}

	// LABEL: keyword args
	// ----- [ _ _ _ _ _ ]
	end := strings.IndexFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || r == ':'
	})

	if end > 0 && text[end] == ':' {
		stmt.Label = text[:end]
		stmt.HasLabel = true
		text = strings.TrimSpace(text[end+1:])
	}

	if end = strings.IndexFunc(text, unicode.IsSpace); end == -1 {
		stmt.Keyword = text
	} else {
		stmt.Keyword = text[:end]
		stmt.Args = strings.TrimSpace(text[end:])
	}

	return stmt, true
}
