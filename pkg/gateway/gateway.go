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

// Package gateway defines the narrow interfaces through which the connector
// reaches the ledger backend. The concrete protocol behind them is out of
// scope; an SDK binding implements SessionFactory against a real network.
package gateway

import (
	"context"

	"google.golang.org/grpc"

	"github.com/fraVlaca/caliper/pkg/wallet"
)

// CallResult is the backend response to one submit or evaluate call.
type CallResult struct {
	// TransactionID is the backend-assigned id of the transaction.
	TransactionID string
	// Payload is the opaque result returned by the contract.
	Payload []byte
}

// CallOptions carries the per-call parameters of a submit/evaluate.
type CallOptions struct {
	Arguments     []string
	Transient     map[string][]byte
	EndorsingOrgs []string
	TargetPeers   []string
}

// CallOption mutates CallOptions.
type CallOption func(*CallOptions)

// WithArguments sets the positional string arguments of the call.
func WithArguments(args ...string) CallOption {
	return func(o *CallOptions) { o.Arguments = args }
}

// WithTransient sets the transient data map of the call.
func WithTransient(transient map[string][]byte) CallOption {
	return func(o *CallOptions) { o.Transient = transient }
}

// WithEndorsingOrgs restricts endorsement to the given organizations.
func WithEndorsingOrgs(orgs ...string) CallOption {
	return func(o *CallOptions) { o.EndorsingOrgs = orgs }
}

// WithTargetPeers routes the proposal to specific peers.
func WithTargetPeers(peers ...string) CallOption {
	return func(o *CallOptions) { o.TargetPeers = peers }
}

// ApplyCallOptions folds the options into a CallOptions value.
func ApplyCallOptions(opts ...CallOption) *CallOptions {
	options := &CallOptions{}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// ContractHandle is a resolved, reusable reference to one contract on one
// channel, able to submit and evaluate transactions.
type ContractHandle interface {
	// Submit performs a side-effecting transaction.
	Submit(ctx context.Context, fn string, opts ...CallOption) (*CallResult, error)
	// Evaluate performs a read-only query.
	Evaluate(ctx context.Context, fn string, opts ...CallOption) (*CallResult, error)
}

// ChannelView is the view of one channel under one session.
type ChannelView interface {
	ContractHandle(contractID string) ContractHandle
}

// Session is an authenticated logical connection of one identity to the
// backend network.
type Session interface {
	// ChannelView resolves the view of a channel, failing when the identity
	// has no access to it.
	ChannelView(name string) (ChannelView, error)
	Close() error
}

// SessionFactory builds sessions over a shared physical client.
type SessionFactory interface {
	Connect(ctx context.Context, client *grpc.ClientConn, identity *wallet.Identity) (Session, error)
}
