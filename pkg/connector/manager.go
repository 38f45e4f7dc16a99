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
	"fmt"

	"github.com/pingcap/log"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/fraVlaca/caliper/pkg/conn"
	"github.com/fraVlaca/caliper/pkg/config"
	cerror "github.com/fraVlaca/caliper/pkg/errors"
	"github.com/fraVlaca/caliper/pkg/gateway"
	"github.com/fraVlaca/caliper/pkg/security"
	"github.com/fraVlaca/caliper/pkg/wallet"
)

// Provider is the workload-configuration collaborator consumed by the
// connection manager and the invoker. *config.WorkloadConfig implements it.
type Provider interface {
	Organizations() []string
	IdentitiesFor(org string) []string
	EndpointsFor(org string) []string
	Channels() []string
	ContractsFor(channel string) []config.Contract
	ContractDetailsFor(contractID string) (config.ContractDetails, bool)
}

// identitySession binds one identity to its backend session and its cache of
// call handles keyed by (channel, contract).
type identitySession struct {
	name         string
	organization string
	session      gateway.Session
	handles      map[string]gateway.ContractHandle
}

// ConnectionManager owns, per configured identity, one backend session and
// its call handles, multiplexing identities over a cache of physical clients
// keyed by endpoint address. The maps are written only during Build and are
// read-only afterwards, so concurrent dispatch tasks may read them without
// synchronization.
type ConnectionManager struct {
	cfg        Provider
	wallet     wallet.Wallet
	factory    gateway.SessionFactory
	credential *security.Credential

	// dial is overridable for tests; defaults to conn.Connect.
	dial func(addr string, credential *security.Credential) (*grpc.ClientConn, error)

	sessions map[string]*identitySession
	clients  map[string]*grpc.ClientConn

	defaultIdentity string
}

// NewConnectionManager creates an unbuilt connection manager.
func NewConnectionManager(
	cfg Provider,
	w wallet.Wallet,
	factory gateway.SessionFactory,
	credential *security.Credential,
) *ConnectionManager {
	return &ConnectionManager{
		cfg:        cfg,
		wallet:     w,
		factory:    factory,
		credential: credential,
		dial:       conn.Connect,
		sessions:   make(map[string]*identitySession),
		clients:    make(map[string]*grpc.ClientConn),
	}
}

// Build creates a session for every configured identity, spreading the
// identities of each organization round-robin over the organization's
// endpoints so that identities sharing an endpoint share one physical
// client. Channel resolution failures degrade gracefully: the channel is
// skipped for that identity. A configured identity missing from the wallet
// is fatal; the caller must Close the manager to release anything built
// before the failure.
func (m *ConnectionManager) Build(ctx context.Context) error {
	for _, org := range m.cfg.Organizations() {
		endpoints := m.cfg.EndpointsFor(org)
		if len(endpoints) == 0 {
			return cerror.ErrContextBuild.GenWithStack(
				"organization %s declares no endpoints", org)
		}

		for i, name := range m.cfg.IdentitiesFor(org) {
			identity, ok := m.wallet.Get(name)
			if !ok {
				return cerror.ErrIdentityNotInWallet.GenWithStackByArgs(name, org)
			}

			addr := endpoints[i%len(endpoints)]
			client, err := m.clientFor(addr)
			if err != nil {
				return err
			}

			session, err := m.factory.Connect(ctx, client, identity)
			if err != nil {
				return cerror.WrapError(cerror.ErrContextBuild, err)
			}

			is := &identitySession{
				name:         name,
				organization: org,
				session:      session,
				handles:      make(map[string]gateway.ContractHandle),
			}
			m.buildHandles(is)
			m.sessions[name] = is
			if m.defaultIdentity == "" {
				m.defaultIdentity = name
			}

			log.Info("session established",
				zap.String("identity", name),
				zap.String("organization", org),
				zap.String("endpoint", addr),
				zap.Int("handles", len(is.handles)))
		}
	}
	return nil
}

func (m *ConnectionManager) clientFor(addr string) (*grpc.ClientConn, error) {
	if client, ok := m.clients[addr]; ok {
		return client, nil
	}
	client, err := m.dial(addr, m.credential)
	if err != nil {
		return nil, cerror.WrapError(cerror.ErrConnectFailed, err, addr)
	}
	m.clients[addr] = client
	return client, nil
}

func (m *ConnectionManager) buildHandles(is *identitySession) {
	for _, channel := range m.cfg.Channels() {
		view, err := is.session.ChannelView(channel)
		if err != nil {
			// Not fatal: other identities or channels may still be usable.
			log.Warn("channel is not available for identity",
				zap.String("identity", is.name),
				zap.String("channel", channel),
				zap.Error(err))
			continue
		}
		for _, contract := range m.cfg.ContractsFor(channel) {
			is.handles[handleKey(channel, contract.ID)] = view.ContractHandle(contract.ID)
		}
	}
}

// DefaultIdentity returns the identity used when a request names none: the
// first identity of the first configured organization.
func (m *ConnectionManager) DefaultIdentity() string {
	return m.defaultIdentity
}

// SessionFor resolves an (organization, identity) pair to a built session.
// An empty name selects the default identity. The returned error names the
// identity and, when given, the organization.
func (m *ConnectionManager) SessionFor(org, name string) (*identitySession, error) {
	if name == "" {
		name = m.defaultIdentity
	}
	label := name
	if org != "" {
		label = fmt.Sprintf("%s of organization %s", name, org)
	}
	is, ok := m.sessions[name]
	if !ok {
		return nil, cerror.ErrUnknownIdentity.GenWithStackByArgs(label)
	}
	if org != "" && is.organization != org {
		return nil, cerror.ErrUnknownIdentity.GenWithStackByArgs(label)
	}
	return is, nil
}

// HandleFor looks up the call handle of (channel, contract) for a resolved
// session. A miss is a configuration error distinct from an unknown identity.
func (m *ConnectionManager) HandleFor(is *identitySession, channel, contractID string) (gateway.ContractHandle, error) {
	handle, ok := is.handles[handleKey(channel, contractID)]
	if !ok {
		return nil, cerror.ErrContractNotFound.GenWithStackByArgs(contractID, channel, is.name)
	}
	return handle, nil
}

// Close tears down every session and physical client built so far and clears
// the caches. Safe to call after a partial Build and safe to call twice; a
// physical client shared by several sessions is closed exactly once.
func (m *ConnectionManager) Close() {
	for name, is := range m.sessions {
		if err := is.session.Close(); err != nil {
			log.Warn("closing a session failed",
				zap.String("identity", name),
				zap.Error(err))
		}
	}
	for addr, client := range m.clients {
		if err := client.Close(); err != nil {
			log.Warn("closing a client failed",
				zap.String("addr", addr),
				zap.Error(err))
		}
	}
	m.sessions = make(map[string]*identitySession)
	m.clients = make(map[string]*grpc.ClientConn)
	m.defaultIdentity = ""
}

func handleKey(channel, contractID string) string {
	return channel + "_" + contractID
}
