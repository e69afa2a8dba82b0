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

import "text/template"

// templateFuncs is the set of helpers the message and enum templates
// call into for everything beyond straight field substitution: every
// decision about wire-format casts, presence indices and packed
// encoding lives in Go code (fieldcode.go, oneofcode.go, enumcode.go),
// not in template conditionals, so the templates themselves stay
// simple assembly, mirroring ygot's own toUpper/inc/indentLines Funcs.
var templateFuncs = template.FuncMap{
	"fieldSlot":      fieldSlot,
	"fieldOption":    fieldOption,
	"fieldAccessors": fieldAccessors,
	"fieldWrite":     fieldWrite,
	"fieldRead":      fieldRead,
	"fieldLen":       fieldLen,
	"packedHelper":   packedHelper,

	"oneofTypeDecl":  oneofTypeDecl,
	"oneofSlot":      oneofSlot,
	"oneofOption":    oneofOption,
	"oneofAccessor":  oneofAccessor,
	"oneofWrite":     oneofWrite,
	"oneofReadCases": oneofReadCases,
	"oneofLen":       oneofLen,

	"enumStringCases": enumStringCases,
	"foldFieldName":   foldFieldName,
}

// mustMakeTemplate builds a named template.Template sharing
// templateFuncs, the way ygot's protogen/ygen packages build their
// code-emission templates.
func mustMakeTemplate(name, src string) *template.Template {
	return template.Must(template.New(name).Funcs(templateFuncs).Parse(src))
}

// headerData carries the package name and whether any generated
// snippet needs the fmt import, decided once all snippets are
// rendered so the shared header never imports a package the rest of
// the file doesn't end up using.
type headerData struct {
	Package      string
	NeedFmt      bool
	NeedMessages bool // at least one message was generated: needs presence and wire
}

var headerTemplate = mustMakeTemplate("header", `// Code generated by protogo. DO NOT EDIT.

package {{.Package}}

import (
{{- if .NeedFmt}}
	"fmt"
{{- end}}
{{- if .NeedMessages}}

	"github.com/beef331/protogo/presence"
	"github.com/beef331/protogo/wire"
{{- end}}
)
`)

var messageTemplate = mustMakeTemplate("message", `
{{if .Doc}}// {{.Doc}}
{{end -}}
type {{.GoType}} struct {
	presence presence.Set
{{- range .Fields}}
{{fieldSlot .}}
{{- end}}
{{- range .Oneofs}}
{{oneofSlot .}}
{{- end}}
}

type {{.GoType}}Option func(*{{.GoType}})

// Init{{.GoType}} is the only supported way to construct a {{.GoType}}
// with initial contents; pass one With<Field> option per field to set.
func Init{{.GoType}}(opts ...{{.GoType}}Option) *{{.GoType}} {
	m := &{{.GoType}}{presence: presence.New({{.BitCount}})}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// fieldIndex resolves a field or oneof name, folded case/separator-
// insensitively, to its presence bit index.
func (m *{{.GoType}}) fieldIndex(name string) (int, bool) {
	folded := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == '_' {
			continue
		}
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		folded = append(folded, c)
	}
	switch string(folded) {
{{- range .Fields}}
	case "{{foldFieldName .ProtoName}}":
		return {{.Index}}, true
{{- end}}
{{- range .Oneofs}}
	case "{{foldFieldName .ProtoName}}":
		return {{.Index}}, true
{{- end}}
	default:
		return 0, false
	}
}
{{range .Fields}}
{{fieldOption $.GoType .}}
{{fieldAccessors $.GoType .}}
{{packedHelper $.GoType .}}
{{- end}}
{{range .Oneofs}}
{{oneofTypeDecl .}}
{{oneofOption $.GoType .}}
{{oneofAccessor $.GoType .}}
{{- end}}

func (m *{{.GoType}}) WriteTo(s wire.Stream, prependLength bool) error {
	if prependLength {
		if err := wire.WriteVarint(s, uint64(m.Len())); err != nil {
			return err
		}
	}
{{- range .Fields}}
{{fieldWrite .}}
{{- end}}
{{- range .Oneofs}}
{{oneofWrite .}}
{{- end}}
	return nil
}

// Read{{.GoType}} decodes a {{.GoType}} from s. maxSize bounds the read
// to that many bytes from the current position; zero means read until
// s.AtEnd(). A partially populated result is a valid, non-error return.
func Read{{.GoType}}(s wire.Stream, maxSize int) (*{{.GoType}}, error) {
	m := &{{.GoType}}{presence: presence.New({{.BitCount}})}
	start := s.Position()
	for !s.AtEnd() && (maxSize <= 0 || s.Position()-start < int64(maxSize)) {
		tagVal, err := wire.ReadVarint(s)
		if err != nil {
			return nil, err
		}
		fieldNumber, wireType := wire.Tag(tagVal)
		switch fieldNumber {
{{- range .Fields}}
{{fieldRead .}}
{{- end}}
{{- range .Oneofs}}
{{oneofReadCases .}}
{{- end}}
		default:
			if err := wire.Skip(s, wireType); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

func (m *{{.GoType}}) Len() int {
	n := 0
{{- range .Fields}}
{{fieldLen .}}
{{- end}}
{{- range .Oneofs}}
{{oneofLen .}}
{{- end}}
	return n
}
`)

var enumTemplate = mustMakeTemplate("enum", `
{{if .Doc}}// {{.Doc}}
{{end -}}
type {{.GoType}} int32

const (
{{- range .Values}}
	{{.GoName}} {{$.GoType}} = {{.Number}}
{{- end}}
)

// String renders v's declared name, or a numeric fallback for a value
// not present in the schema the decoder that produced it was built
// from (proto3 enums accept any int32 on the wire).
func (v {{.GoType}}) String() string {
	switch v {
{{enumStringCases .}}	default:
		return fmt.Sprintf("{{.GoType}}(%d)", int32(v))
	}
}
`)
