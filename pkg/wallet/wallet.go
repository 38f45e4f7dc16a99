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

// Package wallet holds the credentials of the simulated client identities.
package wallet

import (
	"sort"
	"sync"
)

// Identity is the credential material of one named identity.
type Identity struct {
	OrganizationID string
	Certificate    []byte
	PrivateKey     []byte
}

// Wallet resolves identity names to credentials.
type Wallet interface {
	// Get returns the credential of the named identity, or false when the
	// wallet does not know it.
	Get(name string) (*Identity, bool)
	// List returns the known identity names in lexical order.
	List() []string
}

// InMemory is a Wallet backed by a map. Safe for concurrent use.
type InMemory struct {
	mu         sync.RWMutex
	identities map[string]*Identity
}

// NewInMemory creates an empty in-memory wallet.
func NewInMemory() *InMemory {
	return &InMemory{identities: make(map[string]*Identity)}
}

// Put stores or replaces the credential of the named identity.
func (w *InMemory) Put(name string, identity *Identity) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.identities[name] = identity
}

// Get implements Wallet.
func (w *InMemory) Get(name string) (*Identity, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	identity, ok := w.identities[name]
	return identity, ok
}

// List implements Wallet.
func (w *InMemory) List() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	names := make([]string, 0, len(w.identities))
	for name := range w.identities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
