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

// Package errors defines the error taxonomy of the workload connector.
// Configuration errors are fatal and non-retryable; backend call failures
// never surface as errors, they are absorbed into failed status records at
// the invoker boundary.
package errors

import (
	"github.com/pingcap/errors"
)

// errors of the request validation and identity resolution path.
var (
	// ErrContractIDMissing is returned when a request carries no contract id.
	ErrContractIDMissing = errors.Normalize(
		"the contractId of the request is missing",
		errors.RFCCodeText("CALIPER:ErrContractIDMissing"),
	)
	// ErrContractFunctionMissing is returned when a request carries no
	// contract function.
	ErrContractFunctionMissing = errors.Normalize(
		"the contractFunction of the request to %s is missing or empty",
		errors.RFCCodeText("CALIPER:ErrContractFunctionMissing"),
	)
	// ErrChannelNotResolved is returned when a request omits the channel and
	// the workload configuration knows no channel for the contract id.
	ErrChannelNotResolved = errors.Normalize(
		"could not resolve a channel for contract %s",
		errors.RFCCodeText("CALIPER:ErrChannelNotResolved"),
	)
	// ErrUnknownIdentity is returned when the invoker identity cannot be
	// mapped to a built session.
	ErrUnknownIdentity = errors.Normalize(
		"no session found for invoker identity %s",
		errors.RFCCodeText("CALIPER:ErrUnknownIdentity"),
	)
	// ErrContractNotFound is returned when the (channel, contract) pair has
	// no cached call handle for the resolved identity.
	ErrContractNotFound = errors.Normalize(
		"unable to find contract %s on channel %s for identity %s",
		errors.RFCCodeText("CALIPER:ErrContractNotFound"),
	)
)

// errors of the connection/context lifecycle.
var (
	// ErrIdentityNotInWallet is returned during context build when a
	// configured identity is absent from the wallet.
	ErrIdentityNotInWallet = errors.Normalize(
		"identity %s of organization %s is not present in the wallet",
		errors.RFCCodeText("CALIPER:ErrIdentityNotInWallet"),
	)
	// ErrConnectFailed is returned when the physical client for an endpoint
	// cannot be created.
	ErrConnectFailed = errors.Normalize(
		"cannot create client for endpoint %s",
		errors.RFCCodeText("CALIPER:ErrConnectFailed"),
	)
	// ErrContextBuild wraps any fatal failure while building the worker
	// context.
	ErrContextBuild = errors.Normalize(
		"building the worker context failed",
		errors.RFCCodeText("CALIPER:ErrContextBuild"),
	)
	// ErrWorkloadConfigInvalid is returned for malformed workload
	// configuration files.
	ErrWorkloadConfigInvalid = errors.Normalize(
		"invalid workload configuration: %s",
		errors.RFCCodeText("CALIPER:ErrWorkloadConfigInvalid"),
	)
)
