/*
 * Copyright 2024 The Tax Graph Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package aspect

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/taxgraph/engine/types"
)

var nodeEvaluationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "taxgraph",
		Subsystem: "aspect",
		Name:      "node_evaluations_total",
		Help:      "Total node evaluations by terminal status.",
	},
	[]string{"status"},
)

func init() {
	prometheus.MustRegister(nodeEvaluationsTotal)
}

var _ EvalAspect = (*Metrics)(nil)

// Metrics increments a per-status counter for every node the evaluator
// walks, grounded on the teacher's engine/metrics.go counter+histogram
// pair registered against the default prometheus registry.
type Metrics struct{}

// Before implements EvalAspect; this aspect only counts terminal status.
func (Metrics) Before(def types.NodeDefinition) {}

// After implements EvalAspect.
func (Metrics) After(def types.NodeDefinition, status types.Status, value types.Value, err error) {
	nodeEvaluationsTotal.WithLabelValues(string(status)).Inc()
}
