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
	"strings"
	"testing"

	"github.com/beef331/protogo/ast"
	"github.com/beef331/protogo/resolve"
	"github.com/beef331/protogo/typemap"
)

const sampleSchema = `
syntax = "proto3";
package sample;

enum Status {
  UNKNOWN = 0;
  OK = 1;
}

message Leaf {
  int32 value = 1;
}

message Outer {
  int32 count = 1;
  repeated int32 scores = 2;
  string name = 3;
  Leaf leaf = 4;
  repeated Leaf leaves = 5;
  Status status = 6;
  oneof result {
    int32 code = 7;
    string message = 8;
  }
}
`

func buildSample(t *testing.T) *Output {
	t.Helper()
	def, err := ast.Parse(sampleSchema)
	if err != nil {
		t.Fatalf("ast.Parse: %v", err)
	}
	if err := resolve.Resolve(def); err != nil {
		t.Fatalf("resolve.Resolve: %v", err)
	}
	table := typemap.Build(def)
	out, err := Generate(def, table, "sample")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return out
}

func TestGeneratedMessageShape(t *testing.T) {
	out := buildSample(t)
	outer, ok := out.Messages["sample.Outer"]
	if !ok {
		t.Fatal("missing generated source for sample.Outer")
	}

	wantSubstrings := []string{
		"type SampleOuter struct",
		"presence presence.Set",
		"fCount int32",
		"fScores []int32",
		"fName string",
		"fLeaf *SampleLeaf",
		"fLeaves []*SampleLeaf",
		"func InitSampleOuter(opts ...SampleOuterOption) *SampleOuter",
		"func WithCount(v int32) SampleOuterOption",
		"func (m *SampleOuter) Count() (int32, error)",
		"func (m *SampleOuter) SetCount(v int32)",
		"func (m *SampleOuter) HasCount(others ...string) bool",
		"func (m *SampleOuter) ResetCount()",
		"func (m *SampleOuter) Scores() []int32",
		"func (m *SampleOuter) fScoresPackedPayloadLen() int",
		"func (m *SampleOuter) WriteTo(s wire.Stream, prependLength bool) error",
		"func ReadSampleOuter(s wire.Stream, maxSize int) (*SampleOuter, error)",
		"func (m *SampleOuter) Len() int",
		"type ResultChoice struct",
		"func ResultChoiceFromCode(v int32) ResultChoice",
		"func ResultChoiceFromMessage(v string) ResultChoice",
		"func (o ResultChoice) Which() int",
	}
	for _, want := range wantSubstrings {
		if !strings.Contains(outer, want) {
			t.Errorf("generated sample.Outer source missing %q\n--- full source ---\n%s", want, outer)
		}
	}
}

func TestGeneratedEnumShape(t *testing.T) {
	out := buildSample(t)
	status, ok := out.Enums["sample.Status"]
	if !ok {
		t.Fatal("missing generated source for sample.Status")
	}
	wantSubstrings := []string{
		"type SampleStatus int32",
		"SampleStatus_UNKNOWN SampleStatus = 0",
		"SampleStatus_OK SampleStatus = 1",
		"func (v SampleStatus) String() string",
		`return "UNKNOWN"`,
		"SampleStatus(%d)",
	}
	for _, want := range wantSubstrings {
		if !strings.Contains(status, want) {
			t.Errorf("generated sample.Status source missing %q\n--- full source ---\n%s", want, status)
		}
	}
}

func TestGeneratedLeafIsSubmessage(t *testing.T) {
	out := buildSample(t)
	leaf, ok := out.Messages["sample.Leaf"]
	if !ok {
		t.Fatal("missing generated source for sample.Leaf")
	}
	if !strings.Contains(leaf, "type SampleLeaf struct") {
		t.Errorf("sample.Leaf source missing struct decl:\n%s", leaf)
	}
}

func TestSourceIsDeterministicallyOrdered(t *testing.T) {
	out := buildSample(t)
	a := out.Source()
	b := out.Source()
	if a != b {
		t.Error("Source() is not deterministic across calls")
	}
	if !strings.HasPrefix(a, "// Code generated by protogo. DO NOT EDIT.") {
		t.Errorf("Source() missing generated-code header, got prefix %q", a[:40])
	}
}
