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
	"testing"

	"github.com/stretchr/testify/require"

	cerror "github.com/fraVlaca/caliper/pkg/errors"
	"github.com/fraVlaca/caliper/pkg/status"
	"github.com/fraVlaca/caliper/pkg/wallet"
)

func TestGetContextIsIdempotent(t *testing.T) {
	t.Parallel()

	factory := newFakeFactory()
	c := New(testConfig(), testWallet("admin", "user1"), factory)

	first, err := c.GetContext(context.Background())
	require.NoError(t, err)
	second, err := c.GetContext(context.Background())
	require.NoError(t, err)
	require.Same(t, first, second)
	require.Equal(t, 2, factory.connectCount())

	c.ReleaseContext()
}

func TestConcurrentGetContextBuildsOnce(t *testing.T) {
	t.Parallel()

	factory := newFakeFactory()
	c := New(testConfig(), testWallet("admin", "user1"), factory)

	const callers = 8
	contexts := make([]*Context, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			contexts[i], errs[i] = c.GetContext(context.Background())
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	for _, workerCtx := range contexts[1:] {
		require.Same(t, contexts[0], workerCtx)
	}
	// One build for all callers: two identities, two sessions.
	require.Equal(t, 2, factory.connectCount())

	c.ReleaseContext()
}

func TestReleaseThenGetBuildsFreshContext(t *testing.T) {
	t.Parallel()

	factory := newFakeFactory()
	c := New(testConfig(), testWallet("admin", "user1"), factory)

	first, err := c.GetContext(context.Background())
	require.NoError(t, err)

	c.ReleaseContext()
	for _, s := range factory.sessions {
		require.Equal(t, int64(1), s.closed.Load())
	}

	second, err := c.GetContext(context.Background())
	require.NoError(t, err)
	require.NotSame(t, first, second)
	// No stale sessions reused: the rebuild connected again.
	require.Equal(t, 4, factory.connectCount())

	c.ReleaseContext()
}

func TestReleaseWithoutContextIsNoop(t *testing.T) {
	t.Parallel()

	c := New(testConfig(), testWallet("admin", "user1"), newFakeFactory())
	c.ReleaseContext()
}

func TestGetContextFailureReleasesPartialState(t *testing.T) {
	t.Parallel()

	factory := newFakeFactory()
	// Wallet is missing user1: the build fails after admin's session was
	// already opened.
	w := testWallet("admin")
	c := New(testConfig(), w, factory)

	_, err := c.GetContext(context.Background())
	require.Error(t, err)
	require.True(t, cerror.IsConfigurationError(err))
	require.Contains(t, err.Error(), "user1")

	// The session opened before the failure was released.
	require.Equal(t, 1, factory.connectCount())
	require.Equal(t, int64(1), factory.sessions[0].closed.Load())

	// Fixing the wallet allows a later build to succeed.
	w.Put("user1", &wallet.Identity{OrganizationID: "Org1"})
	workerCtx, err := c.GetContext(context.Background())
	require.NoError(t, err)
	require.NotNil(t, workerCtx)

	c.ReleaseContext()
}

func TestSendRequestsSingleAndBatch(t *testing.T) {
	t.Parallel()

	sink := &recordingSink{}
	c := New(testConfig(), testWallet("admin", "user1"), newFakeFactory(), WithSink(sink))
	defer c.ReleaseContext()

	records, err := c.SendRequests(context.Background(), &Request{
		ContractID:        "marbles",
		ContractFunction:  "myFunction",
		ContractArguments: []string{"a", "b"},
		InvokerIdentity:   "admin",
		Channel:           "mychannel",
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, status.Success, records[0].Status())
	require.True(t, records[0].Verified())
	require.NotEmpty(t, records[0].ID())

	records, err = c.SendRequests(context.Background(),
		&Request{ContractID: "marbles", ContractFunction: "fn1", Channel: "mychannel"},
		&Request{ContractID: "basic", ContractFunction: "fn2"},
	)
	require.NoError(t, err)
	require.Len(t, records, 2)

	require.Equal(t, int64(3), sink.submittedTotal())
	require.Equal(t, 2, sink.finishedCalls())
}

func TestSendRequestsUnknownIdentityIsNeverSilentSuccess(t *testing.T) {
	t.Parallel()

	c := New(testConfig(), testWallet("admin", "user1"), newFakeFactory())
	defer c.ReleaseContext()

	records, err := c.SendRequests(context.Background(), &Request{
		ContractID:       "marbles",
		Channel:          "mychannel",
		ContractFunction: "fn",
		InvokerIdentity:  "ghost",
	})
	require.Error(t, err)
	require.True(t, cerror.IsConfigurationError(err))
	require.Contains(t, err.Error(), "ghost")
	require.Len(t, records, 1)
	require.Equal(t, status.Failed, records[0].Status())
}

func TestPrepareWorkerArguments(t *testing.T) {
	t.Parallel()

	c := New(testConfig(), testWallet("admin", "user1"), newFakeFactory())
	args := c.PrepareWorkerArguments(3)
	require.Len(t, args, 3)
	for _, arg := range args {
		require.NotNil(t, arg)
		require.Empty(t, arg)
	}
}
