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
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/fraVlaca/caliper/pkg/status"
)

func TestSinkCountsSubmittedRequests(t *testing.T) {
	before := testutil.ToFloat64(RequestsSubmittedCounter)

	sink := NewSink()
	sink.RequestsSubmitted(3)
	sink.RequestsSubmitted(1)

	require.Equal(t, 4.0, testutil.ToFloat64(RequestsSubmittedCounter)-before)
}

func TestSinkCountsFinishedByStatus(t *testing.T) {
	succeededBefore := testutil.ToFloat64(RequestsFinishedCounter.WithLabelValues("success"))
	failedBefore := testutil.ToFloat64(RequestsFinishedCounter.WithLabelValues("failed"))

	ok := status.NewRecord()
	ok.ConfirmSuccess("tx-1", []byte("payload"))
	failed := status.NewRecord()
	failed.ConfirmFailed()
	unfinished := status.NewRecordAt(time.Now())

	sink := NewSink()
	sink.RequestsFinished([]*status.Record{ok, failed, unfinished})

	require.Equal(t, 1.0, testutil.ToFloat64(RequestsFinishedCounter.WithLabelValues("success"))-succeededBefore)
	// The unfinished record counts as failed but contributes no duration
	// sample, since it never reached a terminal timestamp.
	require.Equal(t, 2.0, testutil.ToFloat64(RequestsFinishedCounter.WithLabelValues("failed"))-failedBefore)
}
