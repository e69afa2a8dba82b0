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

// Package gogen emits Go source for a resolved proto3 schema: the
// record layout, a functional-options constructor, presence-aware
// accessors and the matching WriteTo/Read/Len wire-format routines for
// every message, plus a named integer type for every enum (spec.md
// §4.5). Emission is driven entirely by text/template, following the
// mustMakeTemplate convention this package's templates.go borrows from
// the retrieval pack's protobuf code generator.
package gogen

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/beef331/protogo/ast"
	"github.com/beef331/protogo/typemap"
)

// Output holds every generated snippet from one compilation, split the
// way ygot's GeneratedCode splits Structs from Enums, keyed by the
// fully-qualified schema name so callers (package protogo's Export)
// can retrieve exactly one message or enum's declarations.
type Output struct {
	Header   string
	Messages map[string]string
	Enums    map[string]string
}

// Source concatenates the header and every generated snippet, enums
// before messages, sorted by name for a deterministic result.
func (o *Output) Source() string {
	var b strings.Builder
	b.WriteString(o.Header)
	for _, name := range sortedKeys(o.Enums) {
		b.WriteString(o.Enums[name])
	}
	for _, name := range sortedKeys(o.Messages) {
		b.WriteString(o.Messages[name])
	}
	return b.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Generate renders every message and enum in def (which must already
// have passed package resolve) into an Output using table to resolve
// field types.
func Generate(def *ast.ProtoDef, table typemap.Table, packageName string) (*Output, error) {
	out := &Output{Messages: map[string]string{}, Enums: map[string]string{}}

	for _, pkg := range def.Packages {
		for _, e := range pkg.Enums {
			if err := renderEnum(out, e); err != nil {
				return nil, err
			}
		}
		for _, m := range pkg.Messages {
			if err := renderMessage(out, m, table); err != nil {
				return nil, err
			}
		}
	}

	needFmt := false
	for _, body := range out.Messages {
		if strings.Contains(body, "fmt.") {
			needFmt = true
			break
		}
	}
	if !needFmt {
		for _, body := range out.Enums {
			if strings.Contains(body, "fmt.") {
				needFmt = true
				break
			}
		}
	}

	var hdr bytes.Buffer
	data := headerData{Package: packageName, NeedFmt: needFmt, NeedMessages: len(out.Messages) > 0}
	if err := headerTemplate.Execute(&hdr, data); err != nil {
		return nil, fmt.Errorf("gogen: header: %w", err)
	}
	out.Header = hdr.String()

	return out, nil
}

func renderMessage(out *Output, m *ast.Message, table typemap.Table) error {
	ir := buildMessage(m, table)
	var buf bytes.Buffer
	if err := messageTemplate.Execute(&buf, ir); err != nil {
		return fmt.Errorf("gogen: message %s: %w", m.Name, err)
	}
	out.Messages[m.Name] = buf.String()

	for _, e := range m.Enums {
		if err := renderEnum(out, e); err != nil {
			return err
		}
	}
	for _, nested := range m.Messages {
		if err := renderMessage(out, nested, table); err != nil {
			return err
		}
	}
	return nil
}

func renderEnum(out *Output, e *ast.Enum) error {
	ir := buildEnum(e)
	var buf bytes.Buffer
	if err := enumTemplate.Execute(&buf, ir); err != nil {
		return fmt.Errorf("gogen: enum %s: %w", e.Name, err)
	}
	out.Enums[e.Name] = buf.String()
	return nil
}
