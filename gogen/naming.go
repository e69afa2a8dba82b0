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

import "strings"

// goTypeName turns a resolved fully-qualified message or enum name
// (dot-separated) into a valid, exported Go identifier. It is the
// single place FQN-to-identifier folding happens, matching how
// typemap derives the Go type name for enum table entries.
func goTypeName(fqn string) string {
	parts := strings.Split(fqn, ".")
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(exportCase(p))
	}
	return b.String()
}

// fieldGoName folds a proto field name (snake_case by convention, but
// the parser accepts any identifier) into the exported CamelCase form
// used for generated accessor method names and option functions. This
// is the one case/separator-insensitive fold spec.md's init constructor
// calls for: it happens once here, at generation time, so there is no
// runtime lookup table (see DESIGN.md).
func fieldGoName(name string) string {
	var b strings.Builder
	upperNext := true
	for _, r := range name {
		if r == '_' {
			upperNext = true
			continue
		}
		if upperNext {
			b.WriteRune(toUpperRune(r))
			upperNext = false
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// unexportedFieldName returns the internal struct field slot name for
// a proto field, routing every read/write through the generated
// accessor hooks instead of direct struct access.
func unexportedFieldName(name string) string {
	g := fieldGoName(name)
	return "f" + g
}

func exportCase(s string) string {
	if s == "" {
		return s
	}
	return fieldGoName(s)
}

func toUpperRune(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}

// foldFieldName normalizes a field name for the case/separator-
// insensitive matching spec.md's has(field...) conjunction requires
// when a caller names a field dynamically by string.
func foldFieldName(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "_", ""))
}
