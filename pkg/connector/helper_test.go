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
	"sync/atomic"

	"github.com/pingcap/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/fraVlaca/caliper/pkg/config"
	"github.com/fraVlaca/caliper/pkg/gateway"
	"github.com/fraVlaca/caliper/pkg/security"
	"github.com/fraVlaca/caliper/pkg/status"
	"github.com/fraVlaca/caliper/pkg/wallet"
)

func testConfig() *config.WorkloadConfig {
	return &config.WorkloadConfig{
		Orgs: []config.Organization{{
			Name:       "Org1",
			Endpoints:  []string{"peer0.org1.example.com:7051"},
			Identities: []string{"admin", "user1"},
		}},
		ChannelList: []config.Channel{
			{Name: "mychannel", Contracts: []config.Contract{{ID: "marbles"}}},
			{Name: "yourchannel", Contracts: []config.Contract{{ID: "basic"}}},
		},
	}
}

func testWallet(names ...string) *wallet.InMemory {
	w := wallet.NewInMemory()
	for _, name := range names {
		w.Put(name, &wallet.Identity{OrganizationID: "Org1"})
	}
	return w
}

// countingDial creates lazy grpc clients and counts distinct dial calls.
func countingDial(count *atomic.Int64) func(string, *security.Credential) (*grpc.ClientConn, error) {
	return func(addr string, _ *security.Credential) (*grpc.ClientConn, error) {
		count.Add(1)
		return grpc.NewClient("passthrough:///"+addr,
			grpc.WithTransportCredentials(insecure.NewCredentials()))
	}
}

type fakeHandle struct {
	channel    string
	contractID string

	callErr error
	payload []byte
	txID    string

	mu          sync.Mutex
	submitCalls int
	evalCalls   int
	lastFn      string
	lastOpts    *gateway.CallOptions
}

func (h *fakeHandle) Submit(_ context.Context, fn string, opts ...gateway.CallOption) (*gateway.CallResult, error) {
	h.mu.Lock()
	h.submitCalls++
	h.lastFn = fn
	h.lastOpts = gateway.ApplyCallOptions(opts...)
	h.mu.Unlock()
	return h.respond()
}

func (h *fakeHandle) Evaluate(_ context.Context, fn string, opts ...gateway.CallOption) (*gateway.CallResult, error) {
	h.mu.Lock()
	h.evalCalls++
	h.lastFn = fn
	h.lastOpts = gateway.ApplyCallOptions(opts...)
	h.mu.Unlock()
	return h.respond()
}

func (h *fakeHandle) respond() (*gateway.CallResult, error) {
	if h.callErr != nil {
		return nil, h.callErr
	}
	txID := h.txID
	if txID == "" {
		txID = "tx-" + h.contractID
	}
	payload := h.payload
	if payload == nil {
		payload = []byte("payload")
	}
	return &gateway.CallResult{TransactionID: txID, Payload: payload}, nil
}

type fakeView struct {
	channel string
	session *fakeSession
}

func (v *fakeView) ContractHandle(contractID string) gateway.ContractHandle {
	return &fakeHandle{channel: v.channel, contractID: contractID, callErr: v.session.factory.callErr}
}

type fakeSession struct {
	factory  *fakeFactory
	identity *wallet.Identity

	closed atomic.Int64
}

func (s *fakeSession) ChannelView(name string) (gateway.ChannelView, error) {
	if _, ok := s.factory.failChannels[name]; ok {
		return nil, errors.Errorf("access denied to channel %s", name)
	}
	return &fakeView{channel: name, session: s}, nil
}

func (s *fakeSession) Close() error {
	s.closed.Add(1)
	return nil
}

type fakeFactory struct {
	// connectErrFor makes Connect fail for identities of this organization.
	connectErrFor string
	// failChannels makes ChannelView fail for these channels.
	failChannels map[string]struct{}
	// callErr is propagated to every handle created by this factory.
	callErr error

	mu       sync.Mutex
	sessions []*fakeSession
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{}
}

func (f *fakeFactory) Connect(_ context.Context, _ *grpc.ClientConn, identity *wallet.Identity) (gateway.Session, error) {
	if f.connectErrFor != "" && identity.OrganizationID == f.connectErrFor {
		return nil, errors.Errorf("cannot connect as organization %s", identity.OrganizationID)
	}
	s := &fakeSession{factory: f, identity: identity}
	f.mu.Lock()
	f.sessions = append(f.sessions, s)
	f.mu.Unlock()
	return s, nil
}

func (f *fakeFactory) connectCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sessions)
}

// recordingSink captures the dispatcher's telemetry events.
type recordingSink struct {
	mu        sync.Mutex
	submitted []int64
	finished  [][]*status.Record
}

func (s *recordingSink) RequestsSubmitted(count int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitted = append(s.submitted, count)
}

func (s *recordingSink) RequestsFinished(results []*status.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finished = append(s.finished, results)
}

func (s *recordingSink) submittedTotal() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int64
	for _, c := range s.submitted {
		total += c
	}
	return total
}

func (s *recordingSink) finishedCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.finished)
}

func buildManager(cfg Provider, w wallet.Wallet, factory gateway.SessionFactory, dials *atomic.Int64) (*ConnectionManager, error) {
	m := NewConnectionManager(cfg, w, factory, nil)
	m.dial = countingDial(dials)
	err := m.Build(context.Background())
	return m, err
}
