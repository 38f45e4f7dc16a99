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

// Package config loads and validates the workload configuration: the
// organizations, identities and endpoints the driver connects as, and the
// channels and contracts it issues requests against.
package config

import (
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pingcap/errors"

	"github.com/fraVlaca/caliper/pkg/security"
)

// Organization declares one backend organization: its gateway endpoints and
// the identities that belong to it.
type Organization struct {
	Name       string   `toml:"name"`
	Endpoints  []string `toml:"endpoints"`
	Identities []string `toml:"identities"`
}

// Contract declares one contract deployed on a channel.
type Contract struct {
	ID string `toml:"id"`
}

// Channel declares one transaction namespace and its contracts.
type Channel struct {
	Name      string     `toml:"name"`
	Contracts []Contract `toml:"contracts"`
}

// ContractDetails locates a contract: the channel it is deployed on and its id.
type ContractDetails struct {
	Channel string
	ID      string
}

// Workers holds the benchmark round parameters.
type Workers struct {
	Count         int     `toml:"count"`
	TotalRequests int64   `toml:"total_requests"`
	RatePerSecond float64 `toml:"rate_per_second"`
}

// WorkloadConfig is the root of the workload configuration file.
type WorkloadConfig struct {
	Orgs        []Organization       `toml:"organizations"`
	ChannelList []Channel            `toml:"channels"`
	Workers     Workers              `toml:"workers"`
	Credential  *security.Credential `toml:"security"`
}

// Load decodes a workload configuration from a toml file, rejecting unknown
// keys, and normalizes and validates it.
func Load(path string) (*WorkloadConfig, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("workload config path is empty")
	}
	if filepath.Ext(path) != ".toml" {
		return nil, errors.Errorf("workload config must be a .toml file: %s", path)
	}

	var cfg WorkloadConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, errors.Annotate(err, "decode workload config failed")
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Errorf("unknown keys in workload config: %v", undecoded)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *WorkloadConfig) normalize() {
	orgs := make([]Organization, 0, len(c.Orgs))
	for _, org := range c.Orgs {
		org.Name = strings.TrimSpace(org.Name)
		org.Endpoints = trimStrings(org.Endpoints)
		org.Identities = trimStrings(org.Identities)
		orgs = append(orgs, org)
	}
	c.Orgs = orgs

	channels := make([]Channel, 0, len(c.ChannelList))
	for _, ch := range c.ChannelList {
		ch.Name = strings.TrimSpace(ch.Name)
		contracts := make([]Contract, 0, len(ch.Contracts))
		for _, contract := range ch.Contracts {
			contract.ID = strings.TrimSpace(contract.ID)
			if contract.ID != "" {
				contracts = append(contracts, contract)
			}
		}
		ch.Contracts = contracts
		channels = append(channels, ch)
	}
	c.ChannelList = channels

	if c.Workers.Count <= 0 {
		c.Workers.Count = 1
	}
}

// Validate checks the structural invariants of the configuration.
func (c *WorkloadConfig) Validate() error {
	if len(c.Orgs) == 0 {
		return errors.New("workload config declares no organizations")
	}

	seenIdentities := make(map[string]string)
	for _, org := range c.Orgs {
		if org.Name == "" {
			return errors.New("organization name is empty")
		}
		if len(org.Endpoints) == 0 {
			return errors.Errorf("organization %s declares no endpoints", org.Name)
		}
		if len(org.Identities) == 0 {
			return errors.Errorf("organization %s declares no identities", org.Name)
		}
		for _, id := range org.Identities {
			if owner, ok := seenIdentities[id]; ok {
				return errors.Errorf("identity %s declared by both %s and %s", id, owner, org.Name)
			}
			seenIdentities[id] = org.Name
		}
	}

	for _, ch := range c.ChannelList {
		if ch.Name == "" {
			return errors.New("channel name is empty")
		}
		seen := make(map[string]struct{}, len(ch.Contracts))
		for _, contract := range ch.Contracts {
			if _, ok := seen[contract.ID]; ok {
				return errors.Errorf("contract %s declared twice on channel %s", contract.ID, ch.Name)
			}
			seen[contract.ID] = struct{}{}
		}
	}

	if c.Workers.TotalRequests < 0 {
		return errors.Errorf("total_requests must be >= 0: %d", c.Workers.TotalRequests)
	}
	if c.Workers.RatePerSecond < 0 {
		return errors.Errorf("rate_per_second must be >= 0: %v", c.Workers.RatePerSecond)
	}
	return nil
}

// Organizations returns the configured organization names.
func (c *WorkloadConfig) Organizations() []string {
	names := make([]string, 0, len(c.Orgs))
	for _, org := range c.Orgs {
		names = append(names, org.Name)
	}
	return names
}

// IdentitiesFor returns the identity names of one organization.
func (c *WorkloadConfig) IdentitiesFor(org string) []string {
	for _, o := range c.Orgs {
		if o.Name == org {
			return o.Identities
		}
	}
	return nil
}

// EndpointsFor returns the endpoint addresses of one organization.
func (c *WorkloadConfig) EndpointsFor(org string) []string {
	for _, o := range c.Orgs {
		if o.Name == org {
			return o.Endpoints
		}
	}
	return nil
}

// Channels returns the configured channel names.
func (c *WorkloadConfig) Channels() []string {
	names := make([]string, 0, len(c.ChannelList))
	for _, ch := range c.ChannelList {
		names = append(names, ch.Name)
	}
	return names
}

// ContractsFor returns the contracts configured on one channel.
func (c *WorkloadConfig) ContractsFor(channel string) []Contract {
	for _, ch := range c.ChannelList {
		if ch.Name == channel {
			return ch.Contracts
		}
	}
	return nil
}

// ContractDetailsFor resolves a contract id to the channel it is deployed on.
// When a contract id is deployed on several channels the first configured
// channel wins.
func (c *WorkloadConfig) ContractDetailsFor(contractID string) (ContractDetails, bool) {
	for _, ch := range c.ChannelList {
		for _, contract := range ch.Contracts {
			if contract.ID == contractID {
				return ContractDetails{Channel: ch.Name, ID: contract.ID}, true
			}
		}
	}
	return ContractDetails{}, false
}

func trimStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
