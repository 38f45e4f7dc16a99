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

// Package runner drives one benchmark round: a pool of workers generating
// requests, paced by an optional rate limit, dispatched through the
// connector.
package runner

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/fraVlaca/caliper/pkg/connector"
)

// Generator produces the request of one worker iteration.
type Generator interface {
	Next(workerID int, iteration int64) *connector.Request
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(workerID int, iteration int64) *connector.Request

// Next implements Generator.
func (f GeneratorFunc) Next(workerID int, iteration int64) *connector.Request {
	return f(workerID, iteration)
}

// Options holds the round parameters.
type Options struct {
	// Workers is the number of concurrent request loops. Defaults to 1.
	Workers int
	// TotalRequests bounds the round; 0 means run until the context is
	// canceled.
	TotalRequests int64
	// RatePerSecond paces the round across all workers; 0 means unlimited.
	RatePerSecond float64
}

// Stats aggregates the outcome counters of a round.
type Stats struct {
	Submitted atomic.Int64
	Succeeded atomic.Int64
	Failed    atomic.Int64
}

// Runner executes rounds against one connector.
type Runner struct {
	connector *connector.Connector
	generator Generator
	opts      Options
	stats     Stats
}

// New creates a runner.
func New(c *connector.Connector, generator Generator, opts Options) *Runner {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	return &Runner{connector: c, generator: generator, opts: opts}
}

// Stats exposes the counters of the current or last round.
func (r *Runner) Stats() *Stats { return &r.stats }

// Run executes one round and releases the worker context afterwards. A
// dispatcher-level error stops the failing worker's loop; the remaining
// workers finish their in-flight iterations and the first error is returned.
func (r *Runner) Run(ctx context.Context) error {
	runID := uuid.NewString()
	start := time.Now()
	log.Info("benchmark round started",
		zap.String("runID", runID),
		zap.Int("workers", r.opts.Workers),
		zap.Int64("totalRequests", r.opts.TotalRequests),
		zap.Float64("ratePerSecond", r.opts.RatePerSecond))

	limit := rate.Inf
	if r.opts.RatePerSecond > 0 {
		limit = rate.Limit(r.opts.RatePerSecond)
	}
	limiter := rate.NewLimiter(limit, r.opts.Workers)

	var next atomic.Int64
	eg, egCtx := errgroup.WithContext(ctx)
	for w := 0; w < r.opts.Workers; w++ {
		workerID := w
		eg.Go(func() error {
			for {
				iteration := next.Add(1)
				if r.opts.TotalRequests > 0 && iteration > r.opts.TotalRequests {
					return nil
				}
				if err := limiter.Wait(egCtx); err != nil {
					return errors.Trace(err)
				}

				req := r.generator.Next(workerID, iteration)
				r.stats.Submitted.Add(1)
				records, err := r.connector.SendRequests(egCtx, req)
				for _, record := range records {
					if record.IsSuccess() {
						r.stats.Succeeded.Add(1)
					} else {
						r.stats.Failed.Add(1)
					}
				}
				if err != nil {
					// Accounting is already settled by the dispatcher;
					// stop scheduling further work on this worker.
					return errors.Trace(err)
				}
			}
		})
	}
	err := eg.Wait()
	r.connector.ReleaseContext()

	log.Info("benchmark round finished",
		zap.String("runID", runID),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int64("submitted", r.stats.Submitted.Load()),
		zap.Int64("succeeded", r.stats.Succeeded.Load()),
		zap.Int64("failed", r.stats.Failed.Load()),
		zap.Error(err))
	return err
}
