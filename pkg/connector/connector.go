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

	"github.com/pingcap/log"
	"go.uber.org/zap"

	"github.com/fraVlaca/caliper/pkg/security"
	"github.com/fraVlaca/caliper/pkg/status"
	"github.com/fraVlaca/caliper/pkg/wallet"

	"github.com/fraVlaca/caliper/pkg/gateway"
)

// Context is the per-worker handle over the connection manager's built
// state. It is created lazily on first access and released once per worker
// lifecycle.
type Context struct {
	manager    *ConnectionManager
	dispatcher *Dispatcher
}

// Manager exposes the built connection state of this context.
func (c *Context) Manager() *ConnectionManager { return c.manager }

// Connector ties the workload configuration, wallet, session factory and
// event sink together and exposes the worker-facing surface of the driver.
type Connector struct {
	cfg        Provider
	wallet     wallet.Wallet
	factory    gateway.SessionFactory
	credential *security.Credential
	sink       EventSink

	mu        sync.Mutex
	workerCtx *Context
}

// Option configures a Connector.
type Option func(*Connector)

// WithSink sets the telemetry event sink.
func WithSink(sink EventSink) Option {
	return func(c *Connector) { c.sink = sink }
}

// WithCredential sets the TLS credential used to dial endpoints.
func WithCredential(credential *security.Credential) Option {
	return func(c *Connector) { c.credential = credential }
}

// New creates a connector. No connection is made until GetContext.
func New(cfg Provider, w wallet.Wallet, factory gateway.SessionFactory, opts ...Option) *Connector {
	c := &Connector{
		cfg:     cfg,
		wallet:  w,
		factory: factory,
		sink:    NopSink{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PrepareWorkerArguments returns one argument object per worker. The base
// connector has no admin-phase artifacts to pass down, so the objects are
// empty; connectors layered on top may replace them.
func (c *Connector) PrepareWorkerArguments(workerCount int) []map[string]any {
	args := make([]map[string]any, workerCount)
	for i := range args {
		args[i] = map[string]any{}
	}
	return args
}

// GetContext returns the worker context, building it on first call. The
// build is serialized: concurrent callers wait for the single in-flight
// build and then receive the identical context instance. A build failure
// releases every resource opened before the failure and leaves the
// connector unbuilt, so a later call may try again.
func (c *Connector) GetContext(ctx context.Context) (*Context, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.workerCtx != nil {
		return c.workerCtx, nil
	}

	manager := NewConnectionManager(c.cfg, c.wallet, c.factory, c.credential)
	if err := manager.Build(ctx); err != nil {
		// Release whatever was opened before the failure.
		manager.Close()
		log.Error("building the worker context failed", zap.Error(err))
		return nil, err
	}

	c.workerCtx = &Context{
		manager:    manager,
		dispatcher: NewDispatcher(NewInvoker(manager, c.cfg), c.sink),
	}
	return c.workerCtx, nil
}

// ReleaseContext closes every session and physical client of the current
// context and discards it. A subsequent GetContext builds a fresh context.
// Calling ReleaseContext without a built context is a no-op.
func (c *Connector) ReleaseContext() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.workerCtx == nil {
		return
	}
	c.workerCtx.manager.Close()
	c.workerCtx = nil
}

// SendRequests dispatches one or many requests through the worker context,
// building the context lazily if needed. A single request takes the single
// dispatch path; several requests are fanned out as one batch.
func (c *Connector) SendRequests(ctx context.Context, reqs ...*Request) ([]*status.Record, error) {
	workerCtx, err := c.GetContext(ctx)
	if err != nil {
		return nil, err
	}

	if len(reqs) == 1 {
		record, err := workerCtx.dispatcher.Send(ctx, reqs[0])
		if record == nil {
			return nil, err
		}
		return []*status.Record{record}, err
	}
	return workerCtx.dispatcher.SendBatch(ctx, reqs)
}
