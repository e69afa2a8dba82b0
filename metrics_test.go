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
	"testing"

	dto "github.com/prometheus/client_model/go"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func histogramSampleCount(t *testing.T) uint64 {
	t.Helper()
	var m dto.Metric
	if err := compileDuration.Write(&m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

func TestCompileIncrementsSuccessCounter(t *testing.T) {
	before := testutil.ToFloat64(compileTotal.WithLabelValues("success"))
	if _, err := Compile(scalarSchema, Options{PackageName: "demo"}); err != nil {
		t.Fatalf("Compile: %v", err)
	}
	after := testutil.ToFloat64(compileTotal.WithLabelValues("success"))
	if after != before+1 {
		t.Errorf("success counter = %v, want %v", after, before+1)
	}
}

func TestCompileIncrementsErrorCounter(t *testing.T) {
	before := testutil.ToFloat64(compileTotal.WithLabelValues("error"))
	if _, err := Compile("not a schema {{{", Options{}); err == nil {
		t.Fatal("expected a parse error")
	}
	after := testutil.ToFloat64(compileTotal.WithLabelValues("error"))
	if after != before+1 {
		t.Errorf("error counter = %v, want %v", after, before+1)
	}
}

func TestCompileRecordsDuration(t *testing.T) {
	before := histogramSampleCount(t)
	if _, err := Compile(scalarSchema, Options{PackageName: "demo"}); err != nil {
		t.Fatalf("Compile: %v", err)
	}
	after := histogramSampleCount(t)
	if after != before+1 {
		t.Errorf("histogram sample count = %d, want %d", after, before+1)
	}
}
