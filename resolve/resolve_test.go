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

package resolve

import (
	"fmt"
	"strings"
	"testing"

	"github.com/beef331/protogo/ast"
)

func mustParse(t *testing.T, src string) *ast.ProtoDef {
	t.Helper()
	def, err := ast.Parse(src)
	if err != nil {
		t.Fatalf("ast.Parse: %v", err)
	}
	return def
}

func TestResolveRelativeNestedReference(t *testing.T) {
	def := mustParse(t, `
syntax = "proto3";
package example;
message Outer {
  Inner i = 1;
  message Inner {
    int32 a = 1;
  }
}
`)
	if err := Resolve(def); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	outer := def.Packages[0].Messages[0]
	if outer.Name != "example.Outer" {
		t.Errorf("Outer.Name = %q, want example.Outer", outer.Name)
	}
	if got, want := outer.Messages[0].Name, "example.Outer.Inner"; got != want {
		t.Errorf("Inner.Name = %q, want %q", got, want)
	}
	if got, want := outer.Fields[0].Type, "example.Outer.Inner"; got != want {
		t.Errorf("field Type = %q, want %q", got, want)
	}
}

func TestResolveSiblingScopeReference(t *testing.T) {
	def := mustParse(t, `
syntax = "proto3";
package example;
message Outer {
  message A {
    B b = 1;
  }
  message B {
    int32 x = 1;
  }
}
`)
	if err := Resolve(def); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	outer := def.Packages[0].Messages[0]
	a := outer.Messages[0]
	if got, want := a.Fields[0].Type, "example.Outer.B"; got != want {
		t.Errorf("field Type = %q, want %q", got, want)
	}
}

func TestResolveAbsoluteReference(t *testing.T) {
	def := mustParse(t, `
syntax = "proto3";
package example;
message Outer {
  .example.Leaf l = 1;
}
message Leaf {
  int32 x = 1;
}
`)
	if err := Resolve(def); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	outer := def.Packages[0].Messages[0]
	if got, want := outer.Fields[0].Type, "example.Leaf"; got != want {
		t.Errorf("field Type = %q, want %q", got, want)
	}
}

func TestResolveUnknownTypeFails(t *testing.T) {
	def := mustParse(t, `
syntax = "proto3";
message M {
  Nope n = 1;
}
`)
	if err := Resolve(def); err == nil {
		t.Fatal("expected error for unresolved type reference")
	}
}

func TestResolveDuplicateFieldNumber(t *testing.T) {
	def := mustParse(t, `
syntax = "proto3";
message M {
  int32 a = 1;
  string b = 1;
}
`)
	err := Resolve(def)
	if err == nil {
		t.Fatal("expected error for duplicate field number")
	}
	if !strings.Contains(err.Error(), "duplicate field number") {
		t.Errorf("err = %v, want mention of duplicate field number", err)
	}
}

func TestResolveDuplicateFieldName(t *testing.T) {
	def := mustParse(t, `
syntax = "proto3";
message M {
  int32 a = 1;
  string a = 2;
}
`)
	err := Resolve(def)
	if err == nil {
		t.Fatal("expected error for duplicate field name")
	}
	if !strings.Contains(err.Error(), "duplicate field name") {
		t.Errorf("err = %v, want mention of duplicate field name", err)
	}
}

// TestReservedNumberAndNameCollision implements spec.md's scenario S6:
// a field reusing a reserved name must fail, renaming it but numbering
// it inside a reserved range must still fail, and only an unreserved
// number and name succeeds.
func TestReservedNumberAndNameCollision(t *testing.T) {
	base := `
syntax = "proto3";
message M {
  int32 n = 1;
  reserved 2, 4 to 6;
  reserved "old";
  %s
}
`
	reusesName := mustParse(t, fmt.Sprintf(base, "int32 old = 3;"))
	if err := Resolve(reusesName); err == nil {
		t.Fatal("expected error: field reuses reserved name \"old\"")
	}

	reusesReservedRange := mustParse(t, fmt.Sprintf(base, "int32 fresh = 5;"))
	if err := Resolve(reusesReservedRange); err == nil {
		t.Fatal("expected error: field number 5 falls inside reserved range 4 to 6")
	}

	clean := mustParse(t, fmt.Sprintf(base, "int32 fresh = 7;"))
	if err := Resolve(clean); err != nil {
		t.Fatalf("Resolve: unexpected error for non-colliding field: %v", err)
	}
}

func TestResolveEnumFQNRename(t *testing.T) {
	def := mustParse(t, `
syntax = "proto3";
package example;
enum Status {
  UNKNOWN = 0;
  OK = 1;
}
message M {
  Status s = 1;
}
`)
	if err := Resolve(def); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got, want := def.Packages[0].Enums[0].Name, "example.Status"; got != want {
		t.Errorf("enum Name = %q, want %q", got, want)
	}
	if got, want := def.Packages[0].Messages[0].Fields[0].Type, "example.Status"; got != want {
		t.Errorf("field Type = %q, want %q", got, want)
	}
}
