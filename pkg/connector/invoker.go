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
	"strings"

	"github.com/pingcap/log"
	"go.uber.org/zap"

	cerror "github.com/fraVlaca/caliper/pkg/errors"
	"github.com/fraVlaca/caliper/pkg/gateway"
	"github.com/fraVlaca/caliper/pkg/status"
)

const (
	requestTypeTransaction = "transaction"
	requestTypeQuery       = "query"

	diagnosticRequestType = "request_type"
)

// Invoker resolves a request to a cached call handle and performs the
// submit or evaluate action, converting the backend response into a status
// record. Backend failures are absorbed into failed records; only
// configuration mistakes return an error. The invoker performs no retries.
type Invoker struct {
	manager *ConnectionManager
	cfg     Provider
}

// NewInvoker creates an invoker over a built connection manager.
func NewInvoker(manager *ConnectionManager, cfg Provider) *Invoker {
	return &Invoker{manager: manager, cfg: cfg}
}

// Invoke implements RequestExecutor.
func (iv *Invoker) Invoke(ctx context.Context, req *Request) (*status.Record, error) {
	if strings.TrimSpace(req.ContractID) == "" {
		return nil, cerror.ErrContractIDMissing.GenWithStackByArgs()
	}

	channel := req.Channel
	contractID := req.ContractID
	if channel == "" {
		details, ok := iv.cfg.ContractDetailsFor(contractID)
		if !ok {
			return nil, cerror.ErrChannelNotResolved.GenWithStackByArgs(contractID)
		}
		channel = details.Channel
		contractID = details.ID
	}

	if strings.TrimSpace(req.ContractFunction) == "" {
		return nil, cerror.ErrContractFunctionMissing.GenWithStackByArgs(contractID)
	}

	session, err := iv.manager.SessionFor(req.InvokerOrganization, req.InvokerIdentity)
	if err != nil {
		return nil, err
	}
	handle, err := iv.manager.HandleFor(session, channel, contractID)
	if err != nil {
		return nil, err
	}

	record := status.NewRecord()
	opts := []gateway.CallOption{gateway.WithArguments(req.ContractArguments...)}
	if len(req.TransientMap) > 0 {
		opts = append(opts, gateway.WithTransient(coerceTransient(req.TransientMap)))
	}

	var result *gateway.CallResult
	if req.ReadOnly {
		record.SetDiagnostic(diagnosticRequestType, requestTypeQuery)
		// Read-only calls are not routed to specific endorsers.
		if len(req.TargetPeers) > 0 || len(req.TargetOrganizations) > 0 {
			log.Info("target hints are ignored for read-only evaluations",
				zap.String("contract", contractID),
				zap.Strings("targetPeers", req.TargetPeers),
				zap.Strings("targetOrganizations", req.TargetOrganizations))
		}
		result, err = handle.Evaluate(ctx, req.ContractFunction, opts...)
	} else {
		record.SetDiagnostic(diagnosticRequestType, requestTypeTransaction)
		if len(req.TargetOrganizations) > 0 {
			opts = append(opts, gateway.WithEndorsingOrgs(req.TargetOrganizations...))
		}
		if len(req.TargetPeers) > 0 {
			opts = append(opts, gateway.WithTargetPeers(req.TargetPeers...))
		}
		result, err = handle.Submit(ctx, req.ContractFunction, opts...)
	}

	if err != nil {
		log.Error("failed to perform the request",
			zap.String("channel", channel),
			zap.String("contract", contractID),
			zap.String("function", req.ContractFunction),
			zap.Strings("arguments", req.ContractArguments),
			zap.Error(err))
		record.ConfirmFailed()
		return record, nil
	}

	record.ConfirmSuccess(result.TransactionID, result.Payload)
	return record, nil
}
