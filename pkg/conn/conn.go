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

// Package conn creates the physical grpc clients towards backend endpoints.
package conn

import (
	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/fraVlaca/caliper/pkg/security"
)

// Connect creates a grpc client for the given endpoint address. The client
// connects lazily; no I/O happens here. The caller owns the returned client
// and must close it.
func Connect(addr string, credential *security.Credential) (*grpc.ClientConn, error) {
	dialOpt, err := credential.ToGRPCDialOption()
	if err != nil {
		return nil, errors.Trace(err)
	}

	log.Info("create grpc client",
		zap.String("addr", addr),
		zap.Bool("tls", credential.IsTLSEnabled()))

	client, err := grpc.NewClient(addr, dialOpt)
	if err != nil {
		return nil, errors.Annotatef(err, "cannot create grpc client on address %s", addr)
	}
	return client, nil
}
