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

package connector

import (
	"github.com/fraVlaca/caliper/pkg/status"
)

// EventSink consumes the telemetry events emitted by the dispatcher. The
// core does not depend on what the sink does with them.
type EventSink interface {
	// RequestsSubmitted is called once per accepted request, strictly
	// before the request's task starts.
	RequestsSubmitted(count int64)
	// RequestsFinished is called exactly once per dispatch call, after
	// every request of the call has a terminal outcome.
	RequestsFinished(results []*status.Record)
}

// NopSink discards all events.
type NopSink struct{}

// RequestsSubmitted implements EventSink.
func (NopSink) RequestsSubmitted(int64) {}

// RequestsFinished implements EventSink.
func (NopSink) RequestsFinished([]*status.Record) {}

// MultiSink fans events out to several sinks in order.
type MultiSink []EventSink

// RequestsSubmitted implements EventSink.
func (m MultiSink) RequestsSubmitted(count int64) {
	for _, s := range m {
		s.RequestsSubmitted(count)
	}
}

// RequestsFinished implements EventSink.
func (m MultiSink) RequestsFinished(results []*status.Record) {
	for _, s := range m {
		s.RequestsFinished(results)
	}
}
