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

// enumStringCases renders one `case` line per declared value for the
// generated String() method's switch. Decoding never rejects a value
// absent from this switch; the default arm (written by the enum
// template itself) falls back to a numeric rendering, per DESIGN.md's
// Open Question decision on unknown enum values.
func enumStringCases(e enum) string {
	var b strings.Builder
	for _, v := range e.Values {
		fmt.Fprintf(&b, "\tcase %s:\n\t\treturn %q\n", v.GoName, v.ProtoName)
	}
	return b.String()
}
