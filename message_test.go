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

import (
	"bytes"
	"testing"

	"github.com/beef331/protogo/wire"
)

// fakeMessage stands in for a gogen-emitted type so Write/Len can be
// exercised without compiling generated code into this package.
type fakeMessage struct {
	payload []byte
}

func (f *fakeMessage) WriteTo(s wire.Stream, prependLength bool) error {
	if prependLength {
		if err := wire.WriteVarint(s, uint64(len(f.payload))); err != nil {
			return err
		}
	}
	return s.WriteN(f.payload)
}

func (f *fakeMessage) Len() int {
	return len(f.payload)
}

func TestWriteDispatchesToMessage(t *testing.T) {
	var buf bytes.Buffer
	s := wire.NewBufferStream(&buf)
	m := &fakeMessage{payload: []byte{0x08, 0x96, 0x01}}
	if err := Write(s, m, false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), m.payload) {
		t.Errorf("Write wrote %x, want %x", buf.Bytes(), m.payload)
	}
}

func TestWritePrependsLength(t *testing.T) {
	var buf bytes.Buffer
	s := wire.NewBufferStream(&buf)
	m := &fakeMessage{payload: []byte{0x08, 0x07}}
	if err := Write(s, m, true); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := append([]byte{byte(len(m.payload))}, m.payload...)
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("Write with prependLength wrote %x, want %x", buf.Bytes(), want)
	}
}

func TestLenMatchesPayload(t *testing.T) {
	m := &fakeMessage{payload: []byte{1, 2, 3, 4}}
	if got := Len(m); got != 4 {
		t.Errorf("Len = %d, want 4", got)
	}
}

func TestExportReturnsMessageSource(t *testing.T) {
	artifact, err := Compile(scalarSchema, Options{PackageName: "demo"})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	src := Export(artifact, "demo.M")
	if src == "" {
		t.Fatal("Export returned empty string for a known message")
	}
	if src != artifact.Output.Messages["demo.M"] {
		t.Error("Export did not return the message's generated snippet verbatim")
	}
}

func TestExportUnknownNameReturnsEmpty(t *testing.T) {
	artifact, err := Compile(scalarSchema, Options{PackageName: "demo"})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if got := Export(artifact, "demo.DoesNotExist"); got != "" {
		t.Errorf("Export for unknown name = %q, want empty", got)
	}
}

func TestExportEnumSource(t *testing.T) {
	schema := `
syntax = "proto3";
package demo;

enum Status {
  UNKNOWN = 0;
  OK = 1;
}
`
	artifact, err := Compile(schema, Options{PackageName: "demo"})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if got := Export(artifact, "demo.Status"); got == "" {
		t.Error("Export returned empty string for a known enum")
	}
}
