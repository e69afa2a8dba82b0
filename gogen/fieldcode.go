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

// castForWrite wraps expr in the numeric/slice conversion the named
// wire encode function requires, or returns expr unchanged when its
// Go type already matches the function's parameter type exactly.
func castForWrite(encodeFn, goType, expr string) string {
	switch encodeFn {
	case "wire.WriteVarint":
		if goType != "uint64" {
			return fmt.Sprintf("uint64(%s)", expr)
		}
	case "wire.WriteFixed32":
		if goType != "uint32" {
			return fmt.Sprintf("uint32(%s)", expr)
		}
	case "wire.WriteFixed64":
		if goType != "uint64" {
			return fmt.Sprintf("uint64(%s)", expr)
		}
	case "wire.WriteLengthDelimited":
		if goType != "[]byte" {
			return fmt.Sprintf("[]byte(%s)", expr)
		}
	}
	return expr
}

// castForRead wraps rawVar, a variable already holding the wire decode
// function's native return type, in the conversion needed to produce
// goType.
func castForRead(decodeFn, goType, rawVar string) string {
	switch decodeFn {
	case "wire.ReadVarint":
		if goType != "uint64" {
			return fmt.Sprintf("%s(%s)", goType, rawVar)
		}
	case "wire.ReadFixed32":
		if goType != "uint32" {
			return fmt.Sprintf("%s(%s)", goType, rawVar)
		}
	case "wire.ReadFixed64":
		if goType != "uint64" {
			return fmt.Sprintf("%s(%s)", goType, rawVar)
		}
	case "wire.ReadLengthDelimited":
		if goType == "string" {
			return fmt.Sprintf("string(%s)", rawVar)
		}
	}
	return rawVar
}

// fieldSlot renders the struct field declaration for f.
func fieldSlot(f field) string {
	return fmt.Sprintf("\t%s %s", f.SlotName, f.SlotType)
}

// fieldOption renders the functional-option constructor for f.
func fieldOption(structType string, f field) string {
	return fmt.Sprintf(`// With%[1]s sets %[5]s's %[2]s field.
func With%[1]s(v %[3]s) %[5]sOption {
	return func(m *%[5]s) {
		m.%[4]s = v
		m.presence.Set(%[6]d)
	}
}
`, f.GoName, f.ProtoName, f.SlotType, f.SlotName, structType, f.Index)
}

// fieldAccessors renders the getter/setter/has/reset method group for f.
func fieldAccessors(structType string, f field) string {
	var b strings.Builder
	if f.Repeated {
		fmt.Fprintf(&b, `func (m *%[1]s) %[2]s() %[3]s {
	return m.%[4]s
}

func (m *%[1]s) Set%[2]s(v %[3]s) {
	m.%[4]s = v
	m.presence.Set(%[5]d)
}

`, structType, f.GoName, f.SlotType, f.SlotName, f.Index)
	} else {
		fmt.Fprintf(&b, `func (m *%[1]s) %[2]s() (%[3]s, error) {
	if !m.presence.Has(%[5]d) {
		var zero %[3]s
		return zero, fmt.Errorf("field \"%[6]s\" isn't initialized")
	}
	return m.%[4]s, nil
}

func (m *%[1]s) Set%[2]s(v %[3]s) {
	m.%[4]s = v
	m.presence.Set(%[5]d)
}

`, structType, f.GoName, f.SlotType, f.SlotName, f.Index, f.ProtoName)
	}

	fmt.Fprintf(&b, `func (m *%[1]s) Has%[2]s(others ...string) bool {
	idx := []int{%[3]d}
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
	var zero %[4]s
	m.%[5]s = zero
	m.presence.Clear(%[3]d)
}
`, structType, f.GoName, f.Index, f.SlotType, f.SlotName)
	return b.String()
}

// fieldWrite renders the WriteTo body fragment for f, guarded by its
// presence bit.
func fieldWrite(f field) string {
	switch {
	case f.IsMessage && f.Repeated:
		return fmt.Sprintf(`	if m.presence.Has(%[1]d) {
		for _, elem := range m.%[2]s {
			if err := wire.WriteVarint(s, %[3]d); err != nil {
				return err
			}
			if err := elem.WriteTo(s, true); err != nil {
				return err
			}
		}
	}
`, f.Index, f.SlotName, f.Tag)

	case f.IsMessage:
		return fmt.Sprintf(`	if m.presence.Has(%[1]d) {
		if err := wire.WriteVarint(s, %[3]d); err != nil {
			return err
		}
		if err := m.%[2]s.WriteTo(s, true); err != nil {
			return err
		}
	}
`, f.Index, f.SlotName, f.Tag)

	case f.Repeated && f.Packable:
		castElem := castForWrite(f.Encode, elemType(f.SlotType), "elem")
		return fmt.Sprintf(`	if m.presence.Has(%[1]d) {
		if err := wire.WriteVarint(s, %[6]d); err != nil {
			return err
		}
		if err := wire.WriteVarint(s, uint64(m.%[2]sPackedPayloadLen())); err != nil {
			return err
		}
		for _, elem := range m.%[2]s {
			if err := %[3]s(s, %[4]s); err != nil {
				return err
			}
		}
	}
`, f.Index, f.SlotName, f.Encode, castElem, elemType(f.SlotType), f.PackedTag)

	case f.Repeated: // repeated bytes-like, each with its own tag+length
		castElem := castForWrite(f.Encode, elemType(f.SlotType), "elem")
		return fmt.Sprintf(`	if m.presence.Has(%[1]d) {
		for _, elem := range m.%[2]s {
			if err := wire.WriteVarint(s, %[5]d); err != nil {
				return err
			}
			if err := %[3]s(s, %[4]s); err != nil {
				return err
			}
		}
	}
`, f.Index, f.SlotName, f.Encode, castElem, f.Tag)

	default: // singular scalar or bytes-like
		castVal := castForWrite(f.Encode, f.SlotType, "m."+f.SlotName)
		return fmt.Sprintf(`	if m.presence.Has(%[1]d) {
		if err := wire.WriteVarint(s, %[4]d); err != nil {
			return err
		}
		if err := %[2]s(s, %[3]s); err != nil {
			return err
		}
	}
`, f.Index, f.Encode, castVal, f.Tag)
	}
}

// fieldRead renders the case block(s), keyed by field number, for f
// inside the big read-dispatch switch.
func fieldRead(f field) string {
	switch {
	case f.IsMessage && f.Repeated:
		return fmt.Sprintf(`	case %[1]d:
		n, err := wire.ReadVarint(s)
		if err != nil {
			return nil, err
		}
		elem, err := Read%[2]s(s, int(n))
		if err != nil {
			return nil, err
		}
		m.%[3]s = append(m.%[3]s, elem)
		m.presence.Set(%[4]d)
`, f.Number, f.GoType, f.SlotName, f.Index)

	case f.IsMessage:
		return fmt.Sprintf(`	case %[1]d:
		n, err := wire.ReadVarint(s)
		if err != nil {
			return nil, err
		}
		elem, err := Read%[2]s(s, int(n))
		if err != nil {
			return nil, err
		}
		m.%[3]s = elem
		m.presence.Set(%[4]d)
`, f.Number, f.GoType, f.SlotName, f.Index)

	case f.Repeated && f.Packable:
		readAssign := castForRead(f.Decode, elemType(f.SlotType), "v")
		return fmt.Sprintf(`	case %[1]d:
		if wireType == wire.TypeLengthDelimited {
			n, err := wire.ReadVarint(s)
			if err != nil {
				return nil, err
			}
			start := s.Position()
			for s.Position()-start < int64(n) {
				v, err := %[2]s(s)
				if err != nil {
					return nil, err
				}
				m.%[3]s = append(m.%[3]s, %[4]s)
			}
		} else {
			v, err := %[2]s(s)
			if err != nil {
				return nil, err
			}
			m.%[3]s = append(m.%[3]s, %[4]s)
		}
		m.presence.Set(%[5]d)
`, f.Number, f.Decode, f.SlotName, readAssign, f.Index)

	case f.Repeated:
		readAssign := castForRead(f.Decode, elemType(f.SlotType), "v")
		return fmt.Sprintf(`	case %[1]d:
		v, err := %[2]s(s)
		if err != nil {
			return nil, err
		}
		m.%[3]s = append(m.%[3]s, %[4]s)
		m.presence.Set(%[5]d)
`, f.Number, f.Decode, f.SlotName, readAssign, f.Index)

	default:
		readAssign := castForRead(f.Decode, f.SlotType, "v")
		return fmt.Sprintf(`	case %[1]d:
		v, err := %[2]s(s)
		if err != nil {
			return nil, err
		}
		m.%[3]s = %[4]s
		m.presence.Set(%[5]d)
`, f.Number, f.Decode, f.SlotName, readAssign, f.Index)
	}
}

// fieldLen renders the length-accumulation fragment for f.
func fieldLen(f field) string {
	switch {
	case f.IsMessage && f.Repeated:
		return fmt.Sprintf(`	if m.presence.Has(%[1]d) {
		for _, elem := range m.%[2]s {
			sub := elem.Len()
			n += wire.VarintLen(%[3]d) + wire.VarintLen(uint64(sub)) + sub
		}
	}
`, f.Index, f.SlotName, f.Tag)

	case f.IsMessage:
		return fmt.Sprintf(`	if m.presence.Has(%[1]d) {
		sub := m.%[2]s.Len()
		n += wire.VarintLen(%[3]d) + wire.VarintLen(uint64(sub)) + sub
	}
`, f.Index, f.SlotName, f.Tag)

	case f.Repeated && f.Packable:
		return fmt.Sprintf(`	if m.presence.Has(%[1]d) {
		payload := m.%[2]sPackedPayloadLen()
		n += wire.VarintLen(%[3]d) + wire.VarintLen(uint64(payload)) + payload
	}
`, f.Index, f.SlotName, f.PackedTag)

	case f.Repeated:
		elemLen := packedElemLenExpr(f, "elem")
		return fmt.Sprintf(`	if m.presence.Has(%[1]d) {
		for _, elem := range m.%[2]s {
			n += wire.VarintLen(%[3]d) + %[4]s
		}
	}
`, f.Index, f.SlotName, f.Tag, elemLen)

	default:
		elemLen := packedElemLenExpr(f, "m."+f.SlotName)
		return fmt.Sprintf(`	if m.presence.Has(%[1]d) {
		n += wire.VarintLen(%[2]d) + %[3]s
	}
`, f.Index, f.Tag, elemLen)
	}
}

// packedElemLenExpr renders the payload length, in bytes, of a single
// scalar/bytes-like value named expr, per its wire type.
func packedElemLenExpr(f field, expr string) string {
	goType := f.GoType
	if f.Repeated {
		goType = elemType(f.SlotType)
	}
	switch f.Wire {
	case 1: // TypeFixed64
		return "8"
	case 5: // TypeFixed32
		return "4"
	case 2: // TypeLengthDelimited: string/bytes
		return fmt.Sprintf("wire.VarintLen(uint64(len(%s))) + len(%s)", expr, expr)
	default: // TypeVarint, including ZigZag and enum
		switch f.Encode {
		case "wire.WriteZigZag32":
			return fmt.Sprintf("wire.VarintLen(uint64(wire.ZigZagEncode32(%s)))", expr)
		case "wire.WriteZigZag64":
			return fmt.Sprintf("wire.VarintLen(wire.ZigZagEncode64(%s))", expr)
		case "wire.WriteBool":
			return "1"
		}
		return fmt.Sprintf("wire.VarintLen(%s)", castForWrite(f.Encode, goType, expr))
	}
}

// packedHelper renders the shared per-element payload-length helper
// method used by both fieldWrite and fieldLen for packed repeated
// scalar fields, per DESIGN.md's Open Question decision that the two
// routines must not be able to drift apart.
func packedHelper(structType string, f field) string {
	if !(f.Repeated && f.Packable) {
		return ""
	}
	switch f.Wire {
	case 1:
		return fmt.Sprintf(`func (m *%[1]s) %[2]sPackedPayloadLen() int {
	return 8 * len(m.%[2]s)
}
`, structType, f.SlotName)
	case 5:
		return fmt.Sprintf(`func (m *%[1]s) %[2]sPackedPayloadLen() int {
	return 4 * len(m.%[2]s)
}
`, structType, f.SlotName)
	default:
		if f.Encode == "wire.WriteBool" {
			return fmt.Sprintf(`func (m *%[1]s) %[2]sPackedPayloadLen() int {
	return len(m.%[2]s)
}
`, structType, f.SlotName)
		}
		return fmt.Sprintf(`func (m *%[1]s) %[2]sPackedPayloadLen() int {
	n := 0
	for _, v := range m.%[2]s {
		n += %[3]s
	}
	return n
}
`, structType, f.SlotName, packedElemLenExpr(f, "v"))
	}
}

// elemType strips one leading "[]" from a slice type string.
func elemType(sliceType string) string {
	return strings.TrimPrefix(sliceType, "[]")
}
