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
	"fmt"
	"strings"
)

// oneofTypeDecl renders the tagged-union type and its per-member
// From* constructors, Which() selector and per-member value getters,
// per spec.md §9's "oneof as tagged variant" note.
func oneofTypeDecl(o oneof) string {
	var b strings.Builder
	fmt.Fprintf(&b, "type %s struct {\n\tselector int\n", o.TypeName)
	for _, m := range o.Members {
		fmt.Fprintf(&b, "\t%s %s\n", m.SlotName, m.GoType)
	}
	b.WriteString("}\n\n")

	fmt.Fprintf(&b, "func (o %s) Which() int {\n\treturn o.selector\n}\n\n", o.TypeName)

	for _, m := range o.Members {
		fmt.Fprintf(&b, `func %[1]sFrom%[2]s(v %[3]s) %[1]s {
	return %[1]s{selector: %[4]d, %[5]s: v}
}

func (o %[1]s) %[2]s() %[3]s {
	return o.%[5]s
}

`, o.TypeName, m.GoName, m.GoType, m.Selector, m.SlotName)
	}
	return b.String()
}

func oneofSlot(o oneof) string {
	return fmt.Sprintf("\t%s %s", o.SlotName, o.TypeName)
}

func oneofOption(structType string, o oneof) string {
	return fmt.Sprintf(`// With%[1]s sets %[4]s's %[2]s oneof.
func With%[1]s(v %[3]s) %[4]sOption {
	return func(m *%[4]s) {
		m.%[5]s = v
		m.presence.Set(%[6]d)
	}
}
`, o.GoName, o.ProtoName, o.TypeName, structType, o.SlotName, o.Index)
}

func oneofAccessor(structType string, o oneof) string {
	return fmt.Sprintf(`func (m *%[1]s) %[2]s() (%[3]s, bool) {
	if !m.presence.Has(%[4]d) {
		var zero %[3]s
		return zero, false
	}
	return m.%[5]s, true
}

func (m *%[1]s) Set%[2]s(v %[3]s) {
	m.%[5]s = v
	m.presence.Set(%[4]d)
}

func (m *%[1]s) Has%[2]s(others ...string) bool {
	idx := []int{%[4]d}
	for _, o := range others {
		i, ok := m.fieldIndex(o)
		if !ok {
			return false
		}
		idx = append(idx, i)
	}
	return m.presence.HasAll(idx...)
}

func (m *%[1]s) Reset%[2]s() {
	m.%[5]s = %[3]s{}
	m.presence.Clear(%[4]d)
}
`, structType, o.GoName, o.TypeName, o.Index, o.SlotName)
}

// oneofWrite renders the WriteTo body fragment for o: a switch over
// the active member's selector, emitting exactly the chosen variant
// per spec.md §4.5.
func oneofWrite(o oneof) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\tif m.presence.Has(%d) {\n\t\tswitch m.%s.Which() {\n", o.Index, o.SlotName)
	for _, mem := range o.Members {
		fmt.Fprintf(&b, "\t\tcase %d:\n", mem.Selector)
		if mem.IsMessage {
			fmt.Fprintf(&b, `			if err := wire.WriteVarint(s, %[1]d); err != nil {
				return err
			}
			if err := m.%[2]s.%[3]s().WriteTo(s, true); err != nil {
				return err
			}
`, mem.Tag, o.SlotName, mem.GoName)
		} else {
			cast := castForWrite(mem.Encode, mem.GoType, fmt.Sprintf("m.%s.%s()", o.SlotName, mem.GoName))
			fmt.Fprintf(&b, `			if err := wire.WriteVarint(s, %[1]d); err != nil {
				return err
			}
			if err := %[2]s(s, %[3]s); err != nil {
				return err
			}
`, mem.Tag, mem.Encode, cast)
		}
	}
	b.WriteString("\t\t}\n\t}\n")
	return b.String()
}

// oneofReadCases renders one case per member, keyed by the member's
// field number, for the big read-dispatch switch. Only the last
// oneof member observed on the wire wins, per spec.md §4.5.
func oneofReadCases(o oneof) string {
	var b strings.Builder
	for _, mem := range o.Members {
		if mem.IsMessage {
			fmt.Fprintf(&b, `	case %[1]d:
		n, err := wire.ReadVarint(s)
		if err != nil {
			return nil, err
		}
		elem, err := Read%[2]s(s, int(n))
		if err != nil {
			return nil, err
		}
		m.%[3]s = %[4]sFrom%[5]s(elem)
		m.presence.Set(%[6]d)
`, mem.Number, strings.TrimPrefix(mem.GoType, "*"), o.SlotName, o.TypeName, mem.GoName, o.Index)
			continue
		}
		readAssign := castForRead(mem.Decode, mem.GoType, "v")
		fmt.Fprintf(&b, `	case %[1]d:
		v, err := %[2]s(s)
		if err != nil {
			return nil, err
		}
		m.%[3]s = %[4]sFrom%[5]s(%[6]s)
		m.presence.Set(%[7]d)
`, mem.Number, mem.Decode, o.SlotName, o.TypeName, mem.GoName, readAssign, o.Index)
	}
	return b.String()
}

// oneofLen renders the length-accumulation fragment for o.
func oneofLen(o oneof) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\tif m.presence.Has(%d) {\n\t\tswitch m.%s.Which() {\n", o.Index, o.SlotName)
	for _, mem := range o.Members {
		fmt.Fprintf(&b, "\t\tcase %d:\n", mem.Selector)
		if mem.IsMessage {
			fmt.Fprintf(&b, `			sub := m.%[1]s.%[2]s().Len()
			n += wire.VarintLen(%[3]d) + wire.VarintLen(uint64(sub)) + sub
`, o.SlotName, mem.GoName, mem.Tag)
		} else {
			elemLen := memberLenExpr(mem, fmt.Sprintf("m.%s.%s()", o.SlotName, mem.GoName))
			fmt.Fprintf(&b, "\t\t\tn += wire.VarintLen(%d) + %s\n", mem.Tag, elemLen)
		}
	}
	b.WriteString("\t\t}\n\t}\n")
	return b.String()
}

func memberLenExpr(mem oneofMember, expr string) string {
	switch mem.Wire {
	case 1:
		return "8"
	case 5:
		return "4"
	case 2:
		return fmt.Sprintf("wire.VarintLen(uint64(len(%s))) + len(%s)", expr, expr)
	default:
		return fmt.Sprintf("wire.VarintLen(%s)", castForWrite(mem.Encode, mem.GoType, expr))
	}
}
