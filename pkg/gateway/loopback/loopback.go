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

// Package loopback is an in-process gateway backend used for dry runs: every
// submit and evaluate succeeds immediately with a synthetic transaction id
// and echoes the call arguments back as the payload. It lets the driver and
// its accounting be exercised without a ledger network.
package loopback

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/grpc"

	"github.com/fraVlaca/caliper/pkg/gateway"
	"github.com/fraVlaca/caliper/pkg/wallet"
)

// Factory implements gateway.SessionFactory.
type Factory struct{}

// NewFactory creates a loopback session factory.
func NewFactory() *Factory { return &Factory{} }

// Connect implements gateway.SessionFactory.
func (*Factory) Connect(_ context.Context, _ *grpc.ClientConn, identity *wallet.Identity) (gateway.Session, error) {
	return &session{organization: identity.OrganizationID}, nil
}

type session struct {
	organization string
}

func (s *session) ChannelView(name string) (gateway.ChannelView, error) {
	return &channelView{channel: name}, nil
}

func (s *session) Close() error { return nil }

type channelView struct {
	channel string
}

func (v *channelView) ContractHandle(contractID string) gateway.ContractHandle {
	return &handle{channel: v.channel, contractID: contractID}
}

type handle struct {
	channel    string
	contractID string
}

func (h *handle) Submit(_ context.Context, fn string, opts ...gateway.CallOption) (*gateway.CallResult, error) {
	return h.respond(fn, opts...)
}

func (h *handle) Evaluate(_ context.Context, fn string, opts ...gateway.CallOption) (*gateway.CallResult, error) {
	return h.respond(fn, opts...)
}

func (h *handle) respond(fn string, opts ...gateway.CallOption) (*gateway.CallResult, error) {
	options := gateway.ApplyCallOptions(opts...)
	payload := h.contractID + "." + fn + "(" + strings.Join(options.Arguments, ",") + ")"
	return &gateway.CallResult{
		TransactionID: uuid.NewString(),
		Payload:       []byte(payload),
	}, nil
}
