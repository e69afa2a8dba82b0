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

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beef331/protogo"
)

const demoSchema = `
syntax = "proto3";
package demo;

message M {
  int32 n = 1;
}
`

func TestCompileOnceWritesGeneratedSource(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "demo.proto")
	out := filepath.Join(dir, "demo.pb.go")
	if err := os.WriteFile(in, []byte(demoSchema), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := compileOnce(in, out, protogo.Options{PackageName: "demo"}); err != nil {
		t.Fatalf("compileOnce: %v", err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(got), "package demo") {
		t.Errorf("generated file missing package clause:\n%s", got)
	}
	if !strings.Contains(string(got), "type DemoM struct") {
		t.Errorf("generated file missing message type:\n%s", got)
	}
}

func TestCompileOnceReportsParseError(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "broken.proto")
	out := filepath.Join(dir, "broken.pb.go")
	if err := os.WriteFile(in, []byte("not a schema {{{"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := compileOnce(in, out, protogo.Options{}); err == nil {
		t.Fatal("expected compileOnce to fail on a malformed schema")
	}
	if _, err := os.Stat(out); err == nil {
		t.Error("expected no output file to be written on a compile failure")
	}
}
