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

// Package ast parses proto3 schema text into a typed tree. Parsing
// only recognizes syntax; cross-reference validation, reserved/number
// collision checks and name-to-FQN expansion happen in package
// resolve, which mutates the tree this package produces in place.
package ast

// ScalarTypes is the set of proto3 built-in scalar type keywords
// recognized as field types without a type-reference lookup.
var ScalarTypes = map[string]bool{
	"int32": true, "int64": true, "uint32": true, "uint64": true,
	"sint32": true, "sint64": true,
	"fixed32": true, "fixed64": true, "sfixed32": true, "sfixed64": true,
	"float": true, "double": true,
	"bool": true, "string": true, "bytes": true,
}

// ProtoDef is the root of a parsed schema: an ordered list of packages.
// A schema with no "package" statement produces one Package with an
// empty Name.
type ProtoDef struct {
	Packages []*Package
}

// Package holds the messages and top-level enums declared under a
// dotted package name.
type Package struct {
	Name     string
	Messages []*Message
	Enums    []*Enum
}

// Message is a proto3 message declaration. Name starts out as the
// local (possibly nested) identifier and is rewritten to the message's
// fully-qualified name by the resolver.
type Message struct {
	Name     string
	Doc      string
	Fields   []*Field
	Oneofs   []*Oneof
	Messages []*Message
	Enums    []*Enum
	Reserved []*Reserved

	// Parent is the enclosing message, nil for a top-level message.
	// Populated by the parser and used by the resolver's scope search.
	Parent *Message
}

// Enum is a proto3 enum declaration. Name is rewritten to the enum's
// fully-qualified name by the resolver, matching Message.
type Enum struct {
	Name   string
	Doc    string
	Values []*EnumVal

	// Parent is the enclosing message, nil for a top-level enum.
	Parent *Message
}

// EnumVal is one `identifier = number;` line inside an enum body.
type EnumVal struct {
	Name   string
	Number int32
}

// Field is a single message field. Type is the raw token as written in
// the schema until the resolver replaces it with the field's scalar
// keyword or fully-qualified type reference.
type Field struct {
	Name     string
	Doc      string
	Number   int32
	Type     string
	Repeated bool
}

// Oneof is a `oneof name { ... }` block. Its members share the
// message's field-number space but are tracked together so the
// generator can emit them as a single tagged-union slot.
type Oneof struct {
	Name   string
	Fields []*Field
}

// NumberRange is an inclusive field-number range reserved by a
// `reserved N to M;` declaration.
type NumberRange struct {
	Low, High int32
}

// Reserved captures one `reserved ...;` statement. A single statement
// is either all string literals (field names) or all numbers/ranges,
// per proto3 grammar, but a message may carry several such statements.
type Reserved struct {
	Names   []string
	Numbers []int32
	Ranges  []NumberRange
}

// AllFields returns every directly-declared field of m, including
// oneof members, in declaration order. It does not recurse into
// nested messages.
func (m *Message) AllFields() []*Field {
	var out []*Field
	out = append(out, m.Fields...)
	for _, o := range m.Oneofs {
		out = append(out, o.Fields...)
	}
	return out
}
