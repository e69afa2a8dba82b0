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

package wire

import (
	"errors"
	"testing"
)

func TestVarintRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   uint64
		want []byte
	}{
		{"zero", 0, []byte{0x00}},
		{"one byte max", 127, []byte{0x7f}},
		{"150", 150, []byte{0x96, 0x01}},
		{"two bytes min", 128, []byte{0x80, 0x01}},
		{"max uint64", ^uint64(0), []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewBytesStream(nil)
			if err := WriteVarint(s, tt.in); err != nil {
				t.Fatalf("WriteVarint: %v", err)
			}
			got := s.Bytes()
			if len(got) != len(tt.want) {
				t.Fatalf("encoded length = %d, want %d (%x vs %x)", len(got), len(tt.want), got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("byte %d = %x, want %x", i, got[i], tt.want[i])
				}
			}
			if n := VarintLen(tt.in); n != len(tt.want) {
				t.Errorf("VarintLen(%d) = %d, want %d", tt.in, n, len(tt.want))
			}

			rs := NewBytesStream(got)
			v, err := ReadVarint(rs)
			if err != nil {
				t.Fatalf("ReadVarint: %v", err)
			}
			if v != tt.in {
				t.Errorf("round-trip = %d, want %d", v, tt.in)
			}
		})
	}
}

func TestReadVarintMalformed(t *testing.T) {
	// 10 bytes, all with continuation bit set: never terminates.
	data := make([]byte, 10)
	for i := range data {
		data[i] = 0x80
	}
	_, err := ReadVarint(NewBytesStream(data))
	if !errors.Is(err, ErrMalformedVarint) {
		t.Fatalf("err = %v, want ErrMalformedVarint", err)
	}
}

func TestReadVarintTruncated(t *testing.T) {
	_, err := ReadVarint(NewBytesStream([]byte{0x80}))
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("err = %v, want ErrTruncated", err)
	}
}

func TestZigZag32(t *testing.T) {
	tests := []struct {
		n    int32
		want uint32
	}{
		{0, 0},
		{-1, 1},
		{1, 2},
		{-2, 3},
		{2147483647, 4294967294},
		{-2147483648, 4294967295},
	}
	for _, tt := range tests {
		if got := ZigZagEncode32(tt.n); got != tt.want {
			t.Errorf("ZigZagEncode32(%d) = %d, want %d", tt.n, got, tt.want)
		}
		if got := ZigZagDecode32(tt.want); got != tt.n {
			t.Errorf("ZigZagDecode32(%d) = %d, want %d", tt.want, got, tt.n)
		}
	}
}

func TestZigZag64(t *testing.T) {
	tests := []struct {
		n    int64
		want uint64
	}{
		{0, 0},
		{-1, 1},
		{1, 2},
		{-2, 3},
	}
	for _, tt := range tests {
		if got := ZigZagEncode64(tt.n); got != tt.want {
			t.Errorf("ZigZagEncode64(%d) = %d, want %d", tt.n, got, tt.want)
		}
		if got := ZigZagDecode64(tt.want); got != tt.n {
			t.Errorf("ZigZagDecode64(%d) = %d, want %d", tt.want, got, tt.n)
		}
	}
}

func TestFixedWidthRoundTrip(t *testing.T) {
	s := NewBytesStream(nil)
	if err := WriteFixed32(s, 0xdeadbeef); err != nil {
		t.Fatal(err)
	}
	if err := WriteFixed64(s, 0x0102030405060708); err != nil {
		t.Fatal(err)
	}
	if err := WriteFloat32(s, 3.5); err != nil {
		t.Fatal(err)
	}
	if err := WriteFloat64(s, 2.25); err != nil {
		t.Fatal(err)
	}

	rs := NewBytesStream(s.Bytes())
	f32, err := ReadFixed32(rs)
	if err != nil || f32 != 0xdeadbeef {
		t.Errorf("ReadFixed32 = %x, %v", f32, err)
	}
	f64, err := ReadFixed64(rs)
	if err != nil || f64 != 0x0102030405060708 {
		t.Errorf("ReadFixed64 = %x, %v", f64, err)
	}
	fl32, err := ReadFloat32(rs)
	if err != nil || fl32 != 3.5 {
		t.Errorf("ReadFloat32 = %v, %v", fl32, err)
	}
	fl64, err := ReadFloat64(rs)
	if err != nil || fl64 != 2.25 {
		t.Errorf("ReadFloat64 = %v, %v", fl64, err)
	}
}

func TestBoolRoundTrip(t *testing.T) {
	for _, b := range []bool{true, false} {
		s := NewBytesStream(nil)
		if err := WriteBool(s, b); err != nil {
			t.Fatal(err)
		}
		got, err := ReadBool(NewBytesStream(s.Bytes()))
		if err != nil || got != b {
			t.Errorf("round-trip(%v) = %v, %v", b, got, err)
		}
	}
}

func TestLengthDelimitedRoundTrip(t *testing.T) {
	payload := []byte("hello, protogo")
	s := NewBytesStream(nil)
	if err := WriteLengthDelimited(s, payload); err != nil {
		t.Fatal(err)
	}
	got, err := ReadLengthDelimited(NewBytesStream(s.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(payload) {
		t.Errorf("got %q, want %q", got, payload)
	}
}

func TestTagRoundTrip(t *testing.T) {
	tag := EncodeTag(150, TypeLengthDelimited)
	num, wt := Tag(tag)
	if num != 150 || wt != TypeLengthDelimited {
		t.Errorf("Tag(%d) = (%d, %d), want (150, %d)", tag, num, wt, TypeLengthDelimited)
	}
}

func TestSkip(t *testing.T) {
	s := NewBytesStream(nil)
	if err := WriteVarint(s, 42); err != nil {
		t.Fatal(err)
	}
	if err := WriteFixed32(s, 7); err != nil {
		t.Fatal(err)
	}
	if err := WriteFixed64(s, 7); err != nil {
		t.Fatal(err)
	}
	if err := WriteLengthDelimited(s, []byte("xy")); err != nil {
		t.Fatal(err)
	}

	rs := NewBytesStream(s.Bytes())
	for _, wt := range []int{TypeVarint, TypeFixed32, TypeFixed64, TypeLengthDelimited} {
		if err := Skip(rs, wt); err != nil {
			t.Fatalf("Skip(%d): %v", wt, err)
		}
	}
	if !rs.AtEnd() {
		t.Errorf("expected AtEnd after skipping every field")
	}
}

func TestBoundedStream(t *testing.T) {
	s := NewBytesStream([]byte{1, 2, 3, 4, 5})
	bs := NewBoundedStream(s, 3)
	var got []byte
	for !bs.AtEnd() {
		b, err := bs.ReadByte()
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, b)
	}
	if string(got) != string([]byte{1, 2, 3}) {
		t.Errorf("got %v, want [1 2 3]", got)
	}
}
