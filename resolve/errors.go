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

// Errors accumulates every validation failure found while resolving a
// schema tree, rather than stopping at the first. Modeled on ygot's
// util.Errors (see DESIGN.md).
type Errors []error

// Error implements the error interface, joining every accumulated
// failure with ", ".
func (e Errors) Error() string {
	var out string
	for i, err := range e {
		if err == nil {
			continue
		}
		if i != 0 {
			out += ", "
		}
		out += err.Error()
	}
	return out
}

// append appends err to e if it is non-nil.
func (e Errors) append(err error) Errors {
	if err == nil {
		return e
	}
	return append(e, err)
}

// toError returns nil if e is empty, else e itself as an error.
func (e Errors) toError() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
