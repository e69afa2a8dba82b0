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
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	compileTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "protogo_compile_total",
		Help: "Number of schema compilations attempted, labeled by outcome.",
	}, []string{"result"})

	compileDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "protogo_compile_duration_seconds",
		Help:    "Wall-clock time spent parsing, resolving and generating a schema.",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(compileTotal, compileDuration)
}

// observeCompile records one Compile/CompileFile call's outcome and
// duration. Called unconditionally from Compile so metrics reflect
// every attempt, not just ones the caller opted into instrumenting.
func observeCompile(d time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	compileTotal.WithLabelValues(result).Inc()
	compileDuration.Observe(d.Seconds())
}
