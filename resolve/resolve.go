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

// Package resolve implements the two-pass semantic resolver (spec.md
// §4.3): it gathers every fully-qualified message/enum name declared
// in a schema tree, rewrites each field's type reference to its FQN
// form using proto3 scoping rules, and enforces field-name/number
// uniqueness and reserved-name/number collisions. It mutates the
// *ast.ProtoDef produced by package ast in place.
package resolve

import (
	"fmt"
	"strings"

	"github.com/derekparker/trie"

	"github.com/beef331/protogo/ast"
)

const (
	minFieldNumber  = 1
	maxFieldNumber  = 1<<29 - 1
	reservedLowTag  = 19000
	reservedHighTag = 19999
)

// resolver carries the state built during Pass 1 and consumed during
// Pass 2: every fully-qualified type name in the schema, stored in a
// trie that Pass 2 queries by exact match once per scope candidate
// (each candidate is built by joining scope components); and, for every
// message/enum pointer, the chain of scope components (outermost to
// innermost) its FQN is built from.
type resolver struct {
	names     *trie.Trie
	msgScope  map[*ast.Message][]string
	enumScope map[*ast.Enum][]string
}

func newResolver() *resolver {
	return &resolver{
		names:     trie.New(),
		msgScope:  make(map[*ast.Message][]string),
		enumScope: make(map[*ast.Enum][]string),
	}
}

func (r *resolver) knows(fqn string) bool {
	_, ok := r.names.Find(fqn)
	return ok
}

// Resolve runs both resolver passes over def and validates reserved
// and duplicate-field constraints, returning every violation found as
// a single resolve.Errors. On success, every message and enum in def
// has had its Name rewritten to its fully-qualified form and every
// field's Type has been rewritten to a scalar keyword or an FQN
// present in the gathered type set.
func Resolve(def *ast.ProtoDef) error {
	r := newResolver()
	r.gather(def)

	var errs Errors
	for _, pkg := range def.Packages {
		for _, m := range pkg.Messages {
			errs = r.resolveMessage(m, errs)
		}
	}
	for _, pkg := range def.Packages {
		for _, m := range pkg.Messages {
			errs = r.checkMessage(m, errs)
		}
	}
	if err := errs.toError(); err != nil {
		return err
	}

	r.rename(def)
	return nil
}

// gather is Pass 1: it records the fully-qualified name of every
// message and enum in def without mutating the tree.
func (r *resolver) gather(def *ast.ProtoDef) {
	for _, pkg := range def.Packages {
		var prefix []string
		if pkg.Name != "" {
			prefix = strings.Split(pkg.Name, ".")
		}
		r.gatherScope(prefix, pkg.Messages, pkg.Enums)
	}
}

func (r *resolver) gatherScope(prefix []string, msgs []*ast.Message, enums []*ast.Enum) {
	for _, e := range enums {
		components := appendCopy(prefix, e.Name)
		fqn := strings.Join(components, ".")
		r.names.Add(fqn, nil)
		r.enumScope[e] = components
	}
	for _, m := range msgs {
		components := appendCopy(prefix, m.Name)
		fqn := strings.Join(components, ".")
		r.names.Add(fqn, nil)
		r.msgScope[m] = components
		r.gatherScope(components, m.Messages, m.Enums)
	}
}

func appendCopy(prefix []string, last string) []string {
	out := make([]string, len(prefix)+1)
	copy(out, prefix)
	out[len(prefix)] = last
	return out
}

// resolveMessage is Pass 2 for one message and its descendants: it
// rewrites every field's Type in place.
func (r *resolver) resolveMessage(m *ast.Message, errs Errors) Errors {
	components := r.msgScope[m]
	for _, f := range m.AllFields() {
		if ast.ScalarTypes[f.Type] {
			continue
		}
		resolved, err := r.resolveTypeRef(components, f.Type)
		if err != nil {
			errs = errs.append(fmt.Errorf("message %s: field %s: %w", strings.Join(components, "."), f.Name, err))
			continue
		}
		f.Type = resolved
	}
	for _, nested := range m.Messages {
		errs = r.resolveMessage(nested, errs)
	}
	return errs
}

// resolveTypeRef resolves one field's raw type token to an FQN
// present in the type set, per spec.md §4.3.
func (r *resolver) resolveTypeRef(components []string, ref string) (string, error) {
	if strings.HasPrefix(ref, ".") {
		bare := strings.TrimPrefix(ref, ".")
		if r.knows(bare) {
			return bare, nil
		}
		// Absolute reference: prepend enclosing scopes from outermost inward.
		for i := 1; i <= len(components); i++ {
			candidate := strings.Join(components[:i], ".") + "." + bare
			if r.knows(candidate) {
				return candidate, nil
			}
		}
		return "", fmt.Errorf("type not recognized: %q", ref)
	}

	// Relative reference: search enclosing scopes innermost outward.
	for i := len(components); i >= 1; i-- {
		candidate := strings.Join(components[:i], ".") + "." + ref
		if r.knows(candidate) {
			return candidate, nil
		}
	}
	if r.knows(ref) {
		return ref, nil
	}
	scope := "<root>"
	if len(components) > 0 {
		scope = strings.Join(components, ".")
	}
	return "", fmt.Errorf("type not recognized: %q in scope %s", ref, scope)
}

// checkMessage enforces field-name/number uniqueness and reserved
// collisions for m and recurses into nested messages.
func (r *resolver) checkMessage(m *ast.Message, errs Errors) Errors {
	fqn := strings.Join(r.msgScope[m], ".")
	seenNames := map[string]bool{}
	seenNumbers := map[int32]bool{}

	for _, f := range m.AllFields() {
		if seenNames[f.Name] {
			errs = errs.append(fmt.Errorf("message %s: duplicate field name %q", fqn, f.Name))
		}
		seenNames[f.Name] = true

		if seenNumbers[f.Number] {
			errs = errs.append(fmt.Errorf("message %s: duplicate field number %d", fqn, f.Number))
		}
		seenNumbers[f.Number] = true

		if f.Number < minFieldNumber || f.Number > maxFieldNumber {
			errs = errs.append(fmt.Errorf("message %s: field %s: number %d out of range [%d, %d]", fqn, f.Name, f.Number, minFieldNumber, maxFieldNumber))
		} else if f.Number >= reservedLowTag && f.Number <= reservedHighTag {
			errs = errs.append(fmt.Errorf("message %s: field %s: number %d falls in the reserved tag range [%d, %d]", fqn, f.Name, f.Number, reservedLowTag, reservedHighTag))
		}

		for _, res := range m.Reserved {
			for _, n := range res.Names {
				if n == f.Name {
					errs = errs.append(fmt.Errorf("message %s: field name %q is reserved", fqn, f.Name))
				}
			}
			for _, n := range res.Numbers {
				if n == f.Number {
					errs = errs.append(fmt.Errorf("message %s: field %s: number %d is reserved", fqn, f.Name, f.Number))
				}
			}
			for _, rng := range res.Ranges {
				if f.Number >= rng.Low && f.Number <= rng.High {
					errs = errs.append(fmt.Errorf("message %s: field %s: number %d falls in reserved range %d to %d", fqn, f.Name, f.Number, rng.Low, rng.High))
				}
			}
		}
	}

	for _, nested := range m.Messages {
		errs = r.checkMessage(nested, errs)
	}
	return errs
}

// rename rewrites every message's and enum's local Name to its FQN,
// making the tree self-describing, per spec.md §4.3.
func (r *resolver) rename(def *ast.ProtoDef) {
	for m, components := range r.msgScope {
		m.Name = strings.Join(components, ".")
	}
	for e, components := range r.enumScope {
		e.Name = strings.Join(components, ".")
	}
}
