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

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/fraVlaca/caliper/pkg/status"
)

// Sink feeds the dispatcher's telemetry events into the prometheus metrics.
// It implements the connector's EventSink.
type Sink struct {
	submitted prometheus.Counter
	succeeded prometheus.Counter
	failed    prometheus.Counter
	duration  prometheus.Observer
}

// NewSink creates a metrics-backed event sink.
func NewSink() *Sink {
	return &Sink{
		submitted: RequestsSubmittedCounter,
		succeeded: RequestsFinishedCounter.WithLabelValues("success"),
		failed:    RequestsFinishedCounter.WithLabelValues("failed"),
		duration:  RequestDurationHistogram,
	}
}

// RequestsSubmitted implements the event sink.
func (s *Sink) RequestsSubmitted(count int64) {
	s.submitted.Add(float64(count))
}

// RequestsFinished implements the event sink.
func (s *Sink) RequestsFinished(results []*status.Record) {
	for _, record := range results {
		if record.IsSuccess() {
			s.succeeded.Inc()
		} else {
			s.failed.Inc()
		}
		if !record.TimeFinished().IsZero() {
			s.duration.Observe(record.TimeFinished().Sub(record.TimeCreated()).Seconds())
		}
	}
}
