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

package engine

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	eventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "taxgraph",
			Subsystem: "engine",
			Name:      "events_total",
			Help:      "Total input events processed, by outcome.",
		},
		[]string{"outcome"},
	)

	evaluationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "taxgraph",
			Subsystem: "engine",
			Name:      "evaluation_duration_seconds",
			Help:      "Wall time spent processing one input event, including the topological walk.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{},
	)

	dirtySetSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "taxgraph",
			Subsystem: "engine",
			Name:      "dirty_set_size",
			Help:      "Number of instances whose (status, value) changed per input event.",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
		},
		[]string{},
	)
)

func init() {
	prometheus.MustRegister(eventsTotal, evaluationDuration, dirtySetSize)
}
