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

package gogen

import (
	"github.com/beef331/protogo/ast"
	"github.com/beef331/protogo/typemap"
)

// field is the generator's intermediate representation of one
// declared (non-oneof) message field, precomputed from the resolved
// ast.Field and the type mapping table so the templates in
// templates.go only ever splice already-decided strings and flags,
// never re-derive wire-format decisions themselves.
type field struct {
	ProtoName string
	GoName    string // exported accessor name, e.g. "Count"
	SlotName  string // unexported struct field, e.g. "fCount"
	Number    int32
	Index     int // presence bit index
	Repeated  bool

	GoType   string // Go type of the accessor / slot element
	SlotType string // Go type of the struct slot (differs from GoType when Repeated or IsMessage)

	IsMessage bool   // field type is a user message, absent from the type table
	IsBytes   bool   // field type is string or bytes
	Packable  bool   // field's wire type may use the packed representation
	Wire      int    // natural (unpacked) wire type
	Encode    string // wire encode function, scalar/bytes fields only
	Decode    string // wire decode function, scalar/bytes fields only

	Tag       uint64 // (Number<<3)|Wire, precomputed
	PackedTag uint64 // (Number<<3)|TypeLengthDelimited, only meaningful if Packable
}

// oneofMember is one declared alternative of a oneof.
type oneofMember struct {
	ProtoName string
	GoName    string // exported constructor suffix, e.g. "A"
	SlotName  string // lowerCamel struct field inside the tagged union, e.g. "a"
	Number    int32
	Selector  int

	GoType    string
	IsMessage bool
	IsBytes   bool
	Wire      int
	Encode    string
	Decode    string
	Tag       uint64
}

// oneof is the generator's IR for a `oneof` block.
type oneof struct {
	ProtoName string
	GoName    string // exported accessor name
	SlotName  string
	TypeName  string // name of the generated tagged-union type
	Index     int    // presence bit index
	Members   []oneofMember
}

// message is the generator's IR for one proto3 message, ready to be
// rendered by the templates in templates.go.
type message struct {
	FQN    string
	GoType string
	Doc    string
	Fields []field
	Oneofs []oneof
	// BitCount is the number of presence-bearing slots (fields plus
	// oneofs); it sizes the presence.Set every InitM constructor
	// allocates.
	BitCount int
}

// enumValue is one `NAME = N;` line.
type enumValue struct {
	ProtoName string
	GoName    string
	Number    int32
}

// enum is the generator's IR for one proto3 enum.
type enum struct {
	FQN    string
	GoType string
	Doc    string
	Values []enumValue
}

// buildMessage converts a resolved ast.Message into the generator IR,
// using table to resolve each field's wire behavior. It does not
// recurse into nested messages or enums; callers walk the ast tree
// themselves and call buildMessage/buildEnum once per declared type,
// since proto3 nesting is purely lexical scoping, not a Go-level
// composition relationship the generated code needs to preserve.
func buildMessage(m *ast.Message, table typemap.Table) message {
	out := message{
		FQN:    m.Name,
		GoType: goTypeName(m.Name),
		Doc:    m.Doc,
	}

	idx := 0
	for _, f := range m.Fields {
		out.Fields = append(out.Fields, buildField(f, idx, table))
		idx++
	}
	for _, o := range m.Oneofs {
		out.Oneofs = append(out.Oneofs, buildOneof(o, idx, table))
		idx++
	}
	out.BitCount = idx
	return out
}

func buildField(f *ast.Field, index int, table typemap.Table) field {
	goName := fieldGoName(f.Name)
	fd := field{
		ProtoName: f.Name,
		GoName:    goName,
		SlotName:  unexportedFieldName(f.Name),
		Number:    f.Number,
		Index:     index,
		Repeated:  f.Repeated,
	}

	entry, known := table.Lookup(f.Type)
	switch {
	case known:
		fd.GoType = entry.GoType
		fd.Wire = entry.Wire
		fd.Encode = entry.Encode
		fd.Decode = entry.Decode
		fd.Packable = entry.Packable
		fd.IsBytes = entry.Wire == typemap.WireLengthDelimited
	default:
		fd.IsMessage = true
		fd.GoType = goTypeName(f.Type)
		fd.Wire = typemap.WireLengthDelimited
	}

	fd.SlotType = fd.GoType
	if fd.IsMessage {
		fd.SlotType = "*" + fd.GoType
	}
	if fd.Repeated {
		fd.SlotType = "[]" + fd.SlotType
	}

	fd.Tag = tagFor(f.Number, fd.Wire)
	fd.PackedTag = tagFor(f.Number, typemap.WireLengthDelimited)
	return fd
}

func buildOneof(o *ast.Oneof, index int, table typemap.Table) oneof {
	goName := fieldGoName(o.Name)
	out := oneof{
		ProtoName: o.Name,
		GoName:    goName,
		SlotName:  unexportedFieldName(o.Name),
		TypeName:  goTypeName(o.Name + "Choice"),
		Index:     index,
	}
	for i, f := range o.Fields {
		m := oneofMember{
			ProtoName: f.Name,
			GoName:    fieldGoName(f.Name),
			SlotName:  lowerFirst(fieldGoName(f.Name)),
			Number:    f.Number,
			Selector:  i,
		}
		entry, known := table.Lookup(f.Type)
		switch {
		case known:
			m.GoType = entry.GoType
			m.Wire = entry.Wire
			m.Encode = entry.Encode
			m.Decode = entry.Decode
			m.IsBytes = entry.Wire == typemap.WireLengthDelimited
		default:
			m.IsMessage = true
			m.GoType = "*" + goTypeName(f.Type)
			m.Wire = typemap.WireLengthDelimited
		}
		m.Tag = tagFor(f.Number, m.Wire)
		out.Members = append(out.Members, m)
	}
	return out
}

func buildEnum(e *ast.Enum) enum {
	out := enum{
		FQN:    e.Name,
		GoType: goTypeName(e.Name),
		Doc:    e.Doc,
	}
	for _, v := range e.Values {
		out.Values = append(out.Values, enumValue{
			ProtoName: v.Name,
			GoName:    goTypeName(e.Name) + "_" + v.Name,
			Number:    v.Number,
		})
	}
	return out
}

func tagFor(number int32, wire int) uint64 {
	return uint64(number)<<3 | uint64(wire)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}
