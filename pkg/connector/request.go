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

// Package connector implements the request dispatch and connection lifecycle
// core of the workload driver: it fans requests out concurrently, normalizes
// every outcome into a status record, and multiplexes the simulated client
// identities over a cache of physical backend clients.
package connector

// Request describes one logical transaction request against the backend.
type Request struct {
	// Channel is the transaction namespace. Optional: when empty it is
	// resolved from the workload configuration via the contract id.
	Channel string
	// ContractID names the target contract. Required.
	ContractID string
	// ContractFunction names the contract function to call. Required.
	ContractFunction string
	// ContractArguments are the positional string arguments of the call.
	ContractArguments []string
	// TransientMap carries named transient data; values are coerced to raw
	// bytes before the call.
	TransientMap map[string]string
	// InvokerIdentity names the identity issuing the request. Optional:
	// when empty the default identity of the worker context is used.
	InvokerIdentity string
	// InvokerOrganization scopes the invoker identity. Optional.
	InvokerOrganization string
	// TargetPeers routes submissions to specific peers. Ignored for
	// read-only evaluations.
	TargetPeers []string
	// TargetOrganizations restricts endorsement to specific organizations.
	// Ignored for read-only evaluations.
	TargetOrganizations []string
	// ReadOnly distinguishes a read-only evaluation from a side-effecting
	// submission.
	ReadOnly bool
}

func coerceTransient(in map[string]string) map[string][]byte {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string][]byte, len(in))
	for k, v := range in {
		out[k] = []byte(v)
	}
	return out
}
