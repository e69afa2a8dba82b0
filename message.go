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

package protogo

import "github.com/beef331/protogo/wire"

// Message is satisfied by every type gogen emits for a schema message.
// It is the polymorphic surface the "write" and "len" entry points
// dispatch over, the Go-idiomatic equivalent of a duck-typed write(m)
// that works for any generated message — mirroring the way ygot's
// GoStruct interface lets ygot.Marshal7951 and friends operate over
// any generated struct without a type switch per caller.
type Message interface {
	WriteTo(s wire.Stream, prependLength bool) error
	Len() int
}

// Write encodes m to s, matching every generated type's own WriteTo
// exactly; it exists so callers holding only a Message value (not a
// concrete generated type) can still encode.
func Write(s wire.Stream, m Message, prependLength bool) error {
	return m.WriteTo(s, prependLength)
}

// Len returns m's encoded byte length without any outer length
// prefix, the same value WriteTo(s, m, false) would write.
func Len(m Message) int {
	return m.Len()
}

// Export returns the generated Go source for the message or enum
// named by its fully-qualified schema name, or "" if artifact has no
// such declaration. Every generated type, constructor and accessor name
// is already an exported Go identifier; Export's job is selecting which declarations a
// downstream package actually needs emitted into its own file, since
// sub-message and enum types referenced by name are not pulled in
// automatically — a caller wanting Outer.Inner available must Export
// it by its own FQN too.
func Export(artifact *Artifact, name string) string {
	if src, ok := artifact.Output.Messages[name]; ok {
		return src
	}
	if src, ok := artifact.Output.Enums[name]; ok {
		return src
	}
	return ""
}
