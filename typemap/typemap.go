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

// Package typemap implements the proto3 type mapping table of spec.md
// §4.4: for every scalar keyword and for every user-defined enum, it
// records the emitted Go type, the wire package functions that
// encode/decode a single value of that type, and the wire type the
// field occupies on the wire. Package gogen consumes the table by
// name rather than importing package wire's function values directly,
// keeping the IR (built here and in package resolve) decoupled from
// the code-emission templates, the way ygot's LangMapper interface
// decouples ygen's IR from gogen's templates.
package typemap

import (
	"strings"

	"github.com/beef331/protogo/ast"
)

// Wire-type numbers, mirrored from package wire so this package does
// not need to import it just for four constants.
const (
	WireVarint          = 0
	WireFixed64         = 1
	WireLengthDelimited = 2
	WireFixed32         = 5
)

// Entry describes how one proto3 scalar or user-defined enum type is
// represented and coded in Go. Encode and Decode name the wire
// package function gogen should call to marshal or unmarshal a single
// value; gogen emits them as literal identifiers in generated source.
type Entry struct {
	GoType string
	Encode string
	Decode string
	Wire   int
	// Packable is true when repeated fields of this type may use the
	// packed wire-2 encoding (every wire type except length-delimited).
	Packable bool
}

// Table maps a proto scalar keyword or a resolved enum FQN to its
// Entry. Message types are deliberately absent: the generator detects
// their absence from the table and routes them through the
// length-delimited sub-message protocol instead of a scalar codec.
type Table map[string]Entry

var scalarEntries = Table{
	"int32":    {GoType: "int32", Encode: "wire.WriteVarint", Decode: "wire.ReadVarint", Wire: WireVarint, Packable: true},
	"int64":    {GoType: "int64", Encode: "wire.WriteVarint", Decode: "wire.ReadVarint", Wire: WireVarint, Packable: true},
	"uint32":   {GoType: "uint32", Encode: "wire.WriteVarint", Decode: "wire.ReadVarint", Wire: WireVarint, Packable: true},
	"uint64":   {GoType: "uint64", Encode: "wire.WriteVarint", Decode: "wire.ReadVarint", Wire: WireVarint, Packable: true},
	"sint32":   {GoType: "int32", Encode: "wire.WriteZigZag32", Decode: "wire.ReadZigZag32", Wire: WireVarint, Packable: true},
	"sint64":   {GoType: "int64", Encode: "wire.WriteZigZag64", Decode: "wire.ReadZigZag64", Wire: WireVarint, Packable: true},
	"fixed32":  {GoType: "uint32", Encode: "wire.WriteFixed32", Decode: "wire.ReadFixed32", Wire: WireFixed32, Packable: true},
	"sfixed32": {GoType: "int32", Encode: "wire.WriteFixed32", Decode: "wire.ReadFixed32", Wire: WireFixed32, Packable: true},
	"float":    {GoType: "float32", Encode: "wire.WriteFloat32", Decode: "wire.ReadFloat32", Wire: WireFixed32, Packable: true},
	"fixed64":  {GoType: "uint64", Encode: "wire.WriteFixed64", Decode: "wire.ReadFixed64", Wire: WireFixed64, Packable: true},
	"sfixed64": {GoType: "int64", Encode: "wire.WriteFixed64", Decode: "wire.ReadFixed64", Wire: WireFixed64, Packable: true},
	"double":   {GoType: "float64", Encode: "wire.WriteFloat64", Decode: "wire.ReadFloat64", Wire: WireFixed64, Packable: true},
	"bool":     {GoType: "bool", Encode: "wire.WriteBool", Decode: "wire.ReadBool", Wire: WireVarint, Packable: true},
	"string":   {GoType: "string", Encode: "wire.WriteLengthDelimited", Decode: "wire.ReadLengthDelimited", Wire: WireLengthDelimited, Packable: false},
	"bytes":    {GoType: "[]byte", Encode: "wire.WriteLengthDelimited", Decode: "wire.ReadLengthDelimited", Wire: WireLengthDelimited, Packable: false},
}

// Build assembles the type mapping table for one resolved schema tree:
// the fixed scalar entries above, plus one entry per enum found
// anywhere in def, keyed by the enum's fully-qualified name. def must
// already have passed package resolve's two passes, so every Enum.Name
// is an FQN and every field Type referencing a user type has been
// rewritten to match.
func Build(def *ast.ProtoDef) Table {
	t := make(Table, len(scalarEntries))
	for k, v := range scalarEntries {
		t[k] = v
	}
	for _, pkg := range def.Packages {
		addEnums(t, pkg.Enums)
		for _, m := range pkg.Messages {
			addMessageEnums(t, m)
		}
	}
	return t
}

func addMessageEnums(t Table, m *ast.Message) {
	addEnums(t, m.Enums)
	for _, nested := range m.Messages {
		addMessageEnums(t, nested)
	}
}

func addEnums(t Table, enums []*ast.Enum) {
	for _, e := range enums {
		t[e.Name] = Entry{
			GoType:   enumGoType(e.Name),
			Encode:   "wire.WriteVarint",
			Decode:   "wire.ReadVarint",
			Wire:     WireVarint,
			Packable: true,
		}
	}
}

// enumGoType reports the emitted Go type name for an enum given its
// resolved FQN, by folding each dot-separated scope component to
// CamelCase and concatenating them with no separator. This must stay
// in lockstep with package gogen's goTypeName, which derives the same
// enum's declared type name from the identical FQN: a field whose type
// is this enum is only valid Go if both agree on the name.
func enumGoType(fqn string) string {
	var b strings.Builder
	upperNext := true
	for i := 0; i < len(fqn); i++ {
		c := fqn[i]
		switch {
		case c == '.' || c == '_':
			upperNext = true
		case upperNext:
			b.WriteByte(toUpper(c))
			upperNext = false
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func toUpper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

// Lookup returns the Entry for a scalar keyword or resolved enum FQN,
// and reports whether one exists. A miss means typeName names a
// message type and must be routed through the sub-message protocol.
func (t Table) Lookup(typeName string) (Entry, bool) {
	e, ok := t[typeName]
	return e, ok
}

