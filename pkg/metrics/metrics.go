// Copyright 2026 The Caliper Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

// Package metrics exposes the submission and completion telemetry of the
// workload driver as prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestsSubmittedCounter counts requests accepted by the dispatcher.
	RequestsSubmittedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "caliper",
			Subsystem: "dispatcher",
			Name:      "requests_submitted_total",
			Help:      "Total number of requests submitted to the backend",
		},
	)
	// RequestsFinishedCounter counts finished requests by terminal status.
	RequestsFinishedCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "caliper",
			Subsystem: "dispatcher",
			Name:      "requests_finished_total",
			Help:      "Total number of finished requests by status",
		}, []string{"status"},
	)
	// RequestDurationHistogram records the accept-to-finish latency of
	// requests.
	RequestDurationHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "caliper",
			Subsystem: "dispatcher",
			Name:      "request_duration_seconds",
			Help:      "Latency from request acceptance to terminal status",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

// InitMetrics registers all metrics of the workload driver.
func InitMetrics(registry *prometheus.Registry) {
	registry.MustRegister(RequestsSubmittedCounter)
	registry.MustRegister(RequestsFinishedCounter)
	registry.MustRegister(RequestDurationHistogram)
}
