// Copyright 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ast

import (
	"strconv"
	"strings"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokString
	tokPunct
)

type token struct {
	kind     tokenKind
	text     string
	line     int
	col      int
	leadDocs []string // comment lines immediately preceding this token
}

// lexer turns proto3 source text into a token stream, stripping
// comments but keeping the last "//" line comment seen before a token
// as candidate documentation for the declaration that follows.
type lexer struct {
	src        []rune
	pos        int
	line, col  int
	pendingDoc []string
}

func newLexer(src string) *lexer {
	return &lexer{src: []rune(src), line: 1, col: 1}
}

func (l *lexer) peekRune() (rune, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	return l.src[l.pos], true
}

func (l *lexer) advance() (rune, bool) {
	r, ok := l.peekRune()
	if !ok {
		return 0, false
	}
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r, true
}

// skipSpaceAndComments consumes whitespace and comments. The newline
// ending a "//" comment line moves that line into l.pendingDoc,
// replacing any earlier one, so the next real token claims only the
// last such line as documentation; a blank line does not clear it.
func (l *lexer) skipSpaceAndComments() {
	var blockDoc []string
	for {
		r, ok := l.peekRune()
		if !ok {
			return
		}
		switch {
		case r == ' ' || r == '\t' || r == '\r':
			l.advance()
		case r == '\n':
			l.advance()
			// The comment line just ended replaces any pending doc.
			if len(blockDoc) > 0 {
				l.pendingDoc = blockDoc
				blockDoc = nil
			}
		case r == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/':
			l.advance()
			l.advance()
			start := l.pos
			for {
				r, ok := l.peekRune()
				if !ok || r == '\n' {
					break
				}
				l.advance()
			}
			blockDoc = append(blockDoc, strings.TrimSpace(string(l.src[start:l.pos])))
		case r == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '*':
			l.advance()
			l.advance()
			for {
				r, ok := l.advance()
				if !ok {
					return
				}
				if r == '*' {
					if r2, ok2 := l.peekRune(); ok2 && r2 == '/' {
						l.advance()
						break
					}
				}
			}
			blockDoc = nil
		default:
			if len(blockDoc) > 0 {
				l.pendingDoc = blockDoc
			}
			return
		}
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentCont(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// next returns the next token in the stream, or a tokEOF token once
// the source is exhausted.
func (l *lexer) next() (token, error) {
	l.pendingDoc = nil
	l.skipSpaceAndComments()
	doc := l.pendingDoc
	l.pendingDoc = nil

	line, col := l.line, l.col
	r, ok := l.peekRune()
	if !ok {
		return token{kind: tokEOF, line: line, col: col}, nil
	}

	switch {
	case isIdentStart(r):
		start := l.pos
		for {
			r, ok := l.peekRune()
			if !ok || !isIdentCont(r) {
				break
			}
			l.advance()
		}
		return token{kind: tokIdent, text: string(l.src[start:l.pos]), line: line, col: col, leadDocs: doc}, nil

	case isDigit(r) || r == '-':
		start := l.pos
		l.advance()
		for {
			r, ok := l.peekRune()
			if !ok || isDigit(r) || r == '.' {
				if !ok {
					break
				}
				if isDigit(r) || r == '.' {
					l.advance()
					continue
				}
			}
			break
		}
		return token{kind: tokNumber, text: string(l.src[start:l.pos]), line: line, col: col, leadDocs: doc}, nil

	case r == '"' || r == '\'':
		quote := r
		l.advance()
		start := l.pos
		for {
			r, ok := l.advance()
			if !ok {
				return token{}, &ParseError{Line: line, Col: col, Msg: "unterminated string literal"}
			}
			if r == quote {
				break
			}
		}
		return token{kind: tokString, text: string(l.src[start : l.pos-1]), line: line, col: col, leadDocs: doc}, nil

	default:
		l.advance()
		return token{kind: tokPunct, text: string(r), line: line, col: col, leadDocs: doc}, nil
	}
}

// parseInt parses a field/enum-value number token, rejecting anything
// that isn't a plain (optionally negative) base-10 integer.
func parseInt(tok token) (int32, error) {
	n, err := strconv.ParseInt(tok.text, 10, 32)
	if err != nil {
		return 0, newParseError(tok, "expected integer, got "+tok.text)
	}
	return int32(n), nil
}
