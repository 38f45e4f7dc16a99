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
	"context"
	"sync"
	"time"

	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"go.uber.org/zap"

	"github.com/fraVlaca/caliper/pkg/status"
)

// RequestExecutor performs one request against the backend. A non-nil error
// means a configuration or internal failure; ordinary backend failures are
// returned as failed records with a nil error.
type RequestExecutor interface {
	Invoke(ctx context.Context, req *Request) (*status.Record, error)
}

// Dispatcher is the public entry point of the core: it accepts one or many
// requests, fans them out to the executor, and settles accounting through the
// event sink before any error is surfaced to the caller.
type Dispatcher struct {
	executor RequestExecutor
	sink     EventSink
}

// NewDispatcher creates a dispatcher over the given executor and sink.
func NewDispatcher(executor RequestExecutor, sink EventSink) *Dispatcher {
	if sink == nil {
		sink = NopSink{}
	}
	return &Dispatcher{executor: executor, sink: sink}
}

// Send dispatches a single request. When the executor reports an error, a
// synthetic failed record is accounted through the finished event before the
// error is returned, so no request is ever left submitted but unfinished.
func (d *Dispatcher) Send(ctx context.Context, req *Request) (*status.Record, error) {
	d.sink.RequestsSubmitted(1)

	record, err := d.executor.Invoke(ctx, req)
	if err != nil {
		log.Error("dispatching a request failed",
			zap.String("contract", req.ContractID),
			zap.String("function", req.ContractFunction),
			zap.Error(err))
		record = status.NewRecord()
		record.ConfirmFailed()
	}

	d.sink.RequestsFinished([]*status.Record{record})
	if err != nil {
		return record, errors.Trace(err)
	}
	return record, nil
}

// SendBatch dispatches all requests concurrently and waits for every outcome;
// an individual failure never short-circuits the batch. The returned records
// preserve the input order regardless of completion order. The first
// executor error is remembered and returned, but only after the single
// finished event for the whole batch has been emitted.
func (d *Dispatcher) SendBatch(ctx context.Context, reqs []*Request) ([]*status.Record, error) {
	created := time.Now()
	results := make([]*status.Record, len(reqs))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for i, req := range reqs {
		// The submitted event precedes the task, one event per request.
		d.sink.RequestsSubmitted(1)

		wg.Add(1)
		go func(i int, req *Request) {
			defer wg.Done()
			record, err := d.executor.Invoke(ctx, req)
			if err != nil {
				log.Error("dispatching a request of a batch failed",
					zap.Int("index", i),
					zap.String("contract", req.ContractID),
					zap.String("function", req.ContractFunction),
					zap.Error(err))
				record = status.NewRecordAt(created)
				record.ConfirmFailed()
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
			results[i] = record
		}(i, req)
	}
	wg.Wait()

	d.sink.RequestsFinished(results)
	if firstErr != nil {
		return results, errors.Trace(firstErr)
	}
	return results, nil
}
