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

import "fmt"

// unsupportedKeywords names proto2/extra constructs that parse but are
// rejected immediately, naming the offending keyword (spec.md §4.2).
var unsupportedKeywords = map[string]bool{
	"optional": true, "required": true, "extensions": true,
	"extend": true, "service": true, "option": true, "map": true,
}

// Parse parses proto3 source text into a schema tree. It recognizes
// only proto3 syntax: a mandatory `syntax = "proto3";`, an optional
// `package`, and message/enum/oneof/reserved/field declarations.
func Parse(source string) (*ProtoDef, error) {
	toks, err := tokenize(source)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	return p.parseProtoDef()
}

func tokenize(source string) ([]token, error) {
	lx := newLexer(source)
	var toks []token
	for {
		tok, err := lx.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.kind == tokEOF {
			return toks, nil
		}
	}
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) cur() token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos]
}

func (p *parser) advance() token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) atEOF() bool {
	return p.cur().kind == tokEOF
}

// expectPunct consumes the current token if it is punctuation text s,
// else returns a parse error.
func (p *parser) expectPunct(s string) (token, error) {
	t := p.cur()
	if t.kind != tokPunct || t.text != s {
		return t, newParseError(t, fmt.Sprintf("expected %q, got %q", s, t.text))
	}
	return p.advance(), nil
}

func (p *parser) expectIdent() (token, error) {
	t := p.cur()
	if t.kind != tokIdent {
		return t, newParseError(t, fmt.Sprintf("expected identifier, got %q", t.text))
	}
	return p.advance(), nil
}

func (p *parser) expectString() (token, error) {
	t := p.cur()
	if t.kind != tokString {
		return t, newParseError(t, fmt.Sprintf("expected string literal, got %q", t.text))
	}
	return p.advance(), nil
}

func (p *parser) expectNumber() (token, error) {
	t := p.cur()
	if t.kind != tokNumber {
		return t, newParseError(t, fmt.Sprintf("expected number, got %q", t.text))
	}
	return p.advance(), nil
}

// isKeyword reports whether the current token is the identifier kw.
func (p *parser) isKeyword(kw string) bool {
	t := p.cur()
	return t.kind == tokIdent && t.text == kw
}

func (p *parser) parseProtoDef() (*ProtoDef, error) {
	pkg := &Package{}
	def := &ProtoDef{Packages: []*Package{pkg}}

	sawSyntax := false

	for !p.atEOF() {
		switch {
		case p.isKeyword("syntax"):
			if err := p.parseSyntax(); err != nil {
				return nil, err
			}
			sawSyntax = true

		case p.isKeyword("package"):
			name, err := p.parsePackage()
			if err != nil {
				return nil, err
			}
			pkg.Name = name

		case p.isKeyword("message"):
			msg, err := p.parseMessage(nil)
			if err != nil {
				return nil, err
			}
			pkg.Messages = append(pkg.Messages, msg)

		case p.isKeyword("enum"):
			en, err := p.parseEnum(nil)
			if err != nil {
				return nil, err
			}
			pkg.Enums = append(pkg.Enums, en)

		case unsupportedKeywords[p.cur().text] && p.cur().kind == tokIdent:
			return nil, newUnsupportedError(p.cur(), p.cur().text)

		default:
			return nil, newParseError(p.cur(), fmt.Sprintf("unexpected token %q at top level", p.cur().text))
		}
	}

	if !sawSyntax {
		return nil, newParseError(token{line: 1, col: 1}, `missing mandatory "syntax = \"proto3\";" declaration`)
	}
	return def, nil
}

func (p *parser) parseSyntax() error {
	p.advance() // 'syntax'
	if _, err := p.expectPunct("="); err != nil {
		return err
	}
	lit, err := p.expectString()
	if err != nil {
		return err
	}
	if lit.text != "proto3" {
		return newParseError(lit, fmt.Sprintf(`only "proto3" syntax is supported, got %q`, lit.text))
	}
	_, err = p.expectPunct(";")
	return err
}

func (p *parser) parsePackage() (string, error) {
	p.advance() // 'package'
	name, err := p.parseDottedName()
	if err != nil {
		return "", err
	}
	if _, err := p.expectPunct(";"); err != nil {
		return "", err
	}
	return name, nil
}

func (p *parser) parseDottedName() (string, error) {
	first, err := p.expectIdent()
	if err != nil {
		return "", err
	}
	name := first.text
	for p.cur().kind == tokPunct && p.cur().text == "." {
		p.advance()
		part, err := p.expectIdent()
		if err != nil {
			return "", err
		}
		name += "." + part.text
	}
	return name, nil
}

func (p *parser) parseMessage(parent *Message) (*Message, error) {
	tok := p.advance() // 'message'
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	msg := &Message{Name: name.text, Parent: parent, Doc: joinDocs(tok.leadDocs)}
	if _, err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	for {
		if p.cur().kind == tokPunct && p.cur().text == "}" {
			p.advance()
			return msg, nil
		}
		if p.atEOF() {
			return nil, newParseError(p.cur(), "unexpected end of input inside message "+msg.Name)
		}
		switch {
		case p.isKeyword("message"):
			nested, err := p.parseMessage(msg)
			if err != nil {
				return nil, err
			}
			msg.Messages = append(msg.Messages, nested)

		case p.isKeyword("enum"):
			nested, err := p.parseEnum(msg)
			if err != nil {
				return nil, err
			}
			msg.Enums = append(msg.Enums, nested)

		case p.isKeyword("oneof"):
			oneof, err := p.parseOneof()
			if err != nil {
				return nil, err
			}
			msg.Oneofs = append(msg.Oneofs, oneof)

		case p.isKeyword("reserved"):
			res, err := p.parseReserved()
			if err != nil {
				return nil, err
			}
			msg.Reserved = append(msg.Reserved, res)

		case p.cur().kind == tokPunct && p.cur().text == ";":
			p.advance() // stray semicolon

		case unsupportedKeywords[p.cur().text] && p.cur().kind == tokIdent:
			return nil, newUnsupportedError(p.cur(), p.cur().text)

		default:
			field, err := p.parseField()
			if err != nil {
				return nil, err
			}
			msg.Fields = append(msg.Fields, field)
		}
	}
}

func (p *parser) parseEnum(parent *Message) (*Enum, error) {
	tok := p.advance() // 'enum'
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	en := &Enum{Name: name.text, Parent: parent, Doc: joinDocs(tok.leadDocs)}
	if _, err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	sawZero := false
	for {
		if p.cur().kind == tokPunct && p.cur().text == "}" {
			p.advance()
			if !sawZero {
				return nil, newParseError(tok, fmt.Sprintf("enum %s must declare a value for 0", en.Name))
			}
			return en, nil
		}
		if p.isKeyword("message") || p.isKeyword("enum") {
			return nil, newParseError(p.cur(), "nested message/enum declarations are not allowed inside an enum body")
		}
		vname, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunct("="); err != nil {
			return nil, err
		}
		numTok, err := p.expectNumber()
		if err != nil {
			return nil, err
		}
		num, err := parseInt(numTok)
		if err != nil {
			return nil, err
		}
		if num == 0 {
			sawZero = true
		}
		if err := p.skipOptionalFieldOptions(); err != nil {
			return nil, err
		}
		if _, err := p.expectPunct(";"); err != nil {
			return nil, err
		}
		en.Values = append(en.Values, &EnumVal{Name: vname.text, Number: num})
	}
}

func (p *parser) parseOneof() (*Oneof, error) {
	p.advance() // 'oneof'
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	oneof := &Oneof{Name: name.text}
	if _, err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	for {
		if p.cur().kind == tokPunct && p.cur().text == "}" {
			p.advance()
			return oneof, nil
		}
		if p.atEOF() {
			return nil, newParseError(p.cur(), "unexpected end of input inside oneof "+oneof.Name)
		}
		field, err := p.parseField()
		if err != nil {
			return nil, err
		}
		oneof.Fields = append(oneof.Fields, field)
	}
}

// parseField parses `[repeated] type name = number [field-options];`.
// Bare field-level options are tolerated only if empty syntax is never
// produced by this grammar; any `[...]` content is rejected outright
// since field options are an explicit non-goal.
func (p *parser) parseField() (*Field, error) {
	docTok := p.cur()
	repeated := false
	if p.isKeyword("repeated") {
		p.advance()
		repeated = true
	}
	if p.isKeyword("map") {
		return nil, newUnsupportedError(p.cur(), "map")
	}
	absolute := false
	if p.cur().kind == tokPunct && p.cur().text == "." {
		p.advance()
		absolute = true
	}
	typeName, err := p.parseDottedName()
	if err != nil {
		return nil, err
	}
	if absolute {
		typeName = "." + typeName
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct("="); err != nil {
		return nil, err
	}
	numTok, err := p.expectNumber()
	if err != nil {
		return nil, err
	}
	num, err := parseInt(numTok)
	if err != nil {
		return nil, err
	}
	if err := p.skipOptionalFieldOptions(); err != nil {
		return nil, err
	}
	if _, err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	return &Field{
		Name:     name.text,
		Type:     typeName,
		Number:   num,
		Repeated: repeated,
		Doc:      joinDocs(docTok.leadDocs),
	}, nil
}

// skipOptionalFieldOptions rejects a `[ ... ]` options clause or a
// `default = ...` — both are explicit non-goals (field options,
// default values) per spec.md.
func (p *parser) skipOptionalFieldOptions() error {
	if p.cur().kind == tokPunct && p.cur().text == "[" {
		return newUnsupportedError(p.cur(), "field option")
	}
	return nil
}

func (p *parser) parseReserved() (*Reserved, error) {
	p.advance() // 'reserved'
	res := &Reserved{}

	if p.cur().kind == tokString {
		for {
			lit, err := p.expectString()
			if err != nil {
				return nil, err
			}
			res.Names = append(res.Names, lit.text)
			if p.cur().kind == tokPunct && p.cur().text == "," {
				p.advance()
				continue
			}
			break
		}
	} else if p.cur().kind == tokNumber {
		for {
			lowTok, err := p.expectNumber()
			if err != nil {
				return nil, err
			}
			low, err := parseInt(lowTok)
			if err != nil {
				return nil, err
			}
			if p.isKeyword("to") {
				p.advance()
				highTok, err := p.expectNumber()
				if err != nil {
					return nil, err
				}
				high, err := parseInt(highTok)
				if err != nil {
					return nil, err
				}
				res.Ranges = append(res.Ranges, NumberRange{Low: low, High: high})
			} else {
				res.Numbers = append(res.Numbers, low)
			}
			if p.cur().kind == tokPunct && p.cur().text == "," {
				p.advance()
				continue
			}
			break
		}
	} else {
		return nil, newParseError(p.cur(), "expected string literals or numbers after 'reserved'")
	}

	if _, err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	return res, nil
}

func joinDocs(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	out := lines[0]
	for _, l := range lines[1:] {
		out += "\n" + l
	}
	return out
}
