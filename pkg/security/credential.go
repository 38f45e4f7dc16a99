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

// Package security holds the TLS credential used to dial backend endpoints.
package security

import (
	"crypto/tls"
	"crypto/x509"
	"os"

	"github.com/pingcap/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

// Credential holds the paths to the PEM files used for mutual TLS towards the
// backend endpoints. An empty credential means plaintext connections.
type Credential struct {
	CAPath   string `toml:"ca-path"`
	CertPath string `toml:"cert-path"`
	KeyPath  string `toml:"key-path"`
}

// IsTLSEnabled reports whether a CA certificate is configured.
func (c *Credential) IsTLSEnabled() bool {
	return c != nil && c.CAPath != ""
}

// ToGRPCDialOption builds the transport credential dial option for this
// credential, falling back to insecure transport when TLS is not configured.
func (c *Credential) ToGRPCDialOption() (grpc.DialOption, error) {
	if !c.IsTLSEnabled() {
		return grpc.WithTransportCredentials(insecure.NewCredentials()), nil
	}
	tlsCfg, err := c.toTLSConfig()
	if err != nil {
		return nil, err
	}
	return grpc.WithTransportCredentials(credentials.NewTLS(tlsCfg)), nil
}

func (c *Credential) toTLSConfig() (*tls.Config, error) {
	caPEM, err := os.ReadFile(c.CAPath)
	if err != nil {
		return nil, errors.Annotatef(err, "read CA certificate %s", c.CAPath)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(caPEM) {
		return nil, errors.Errorf("failed to decode PEM block to certificate: %s", c.CAPath)
	}

	cfg := &tls.Config{
		RootCAs:    pool,
		MinVersion: tls.VersionTLS12,
	}
	if c.CertPath != "" && c.KeyPath != "" {
		cert, err := tls.LoadX509KeyPair(c.CertPath, c.KeyPath)
		if err != nil {
			return nil, errors.Annotate(err, "load client key pair")
		}
		cfg.Certificates = []tls.Certificate{cert}
	}
	return cfg, nil
}
