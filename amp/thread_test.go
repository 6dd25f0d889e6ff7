// Copyright 2016 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package amp_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bjoernknafla/ampsync/amp"
)

func TestThreadLaunchJoin(t *testing.T) {
	th := amp.NewThread()
	var ran bool
	require.NoError(t, th.Launch(func(ctx interface{}) {
		*ctx.(*bool) = true
	}, &ran))
	require.NoError(t, th.Join())
	require.True(t, ran)
}

func TestThreadJoinTwiceIsUsageError(t *testing.T) {
	th := amp.NewThread()
	require.NoError(t, th.Launch(func(ctx interface{}) {}, nil))
	require.NoError(t, th.Join())
	require.Equal(t, amp.ErrUsageError, th.Join())
}

func TestThreadConcurrentJoinOnlyOneSucceeds(t *testing.T) {
	th := amp.NewThread()
	block := make(chan struct{})
	require.NoError(t, th.Launch(func(ctx interface{}) {
		<-block
	}, nil))

	const n = 8
	results := make(chan error, n)
	var start sync.WaitGroup
	start.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			start.Done()
			start.Wait()
			results <- th.Join()
		}()
	}
	close(block)

	oks, usageErrors := 0, 0
	for i := 0; i < n; i++ {
		switch err := <-results; err {
		case nil:
			oks++
		case amp.ErrUsageError:
			usageErrors++
		default:
			t.Fatalf("unexpected error from concurrent Join: %v", err)
		}
	}
	require.Equal(t, 1, oks)
	require.Equal(t, n-1, usageErrors)
}

func TestThreadJoinUnlaunchedIsUsageError(t *testing.T) {
	th := amp.NewThread()
	require.Equal(t, amp.ErrUsageError, th.Join())
}

func TestThreadLocalSlotPerThread(t *testing.T) {
	key := amp.NewSlot()

	th1 := amp.NewThread()
	th2 := amp.NewThread()

	seen := make(chan interface{}, 2)
	require.NoError(t, th1.Launch(func(ctx interface{}) {
		require.Nil(t, key.Get(th1))
		key.Set(th1, "from-th1")
		seen <- key.Get(th1)
	}, nil))
	require.NoError(t, th2.Launch(func(ctx interface{}) {
		require.Nil(t, key.Get(th2))
		key.Set(th2, "from-th2")
		seen <- key.Get(th2)
	}, nil))

	require.NoError(t, th1.Join())
	require.NoError(t, th2.Join())

	require.Equal(t, "from-th1", key.Get(th1))
	require.Equal(t, "from-th2", key.Get(th2))
	<-seen
	<-seen

	key.Finalize()
}
