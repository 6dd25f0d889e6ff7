// Copyright 2016 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package amp_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bjoernknafla/ampsync/amp"
)

func TestSemaphoreWaitSignal(t *testing.T) {
	sem, err := amp.NewSemaphore(0, 2)
	require.NoError(t, err)

	require.NoError(t, sem.Signal(2))

	sem.Wait()
	sem.Wait()

	done := make(chan struct{})
	go func() {
		sem.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Wait returned before a matching Signal")
	default:
	}

	require.NoError(t, sem.Signal(1))
	<-done
}

func TestSemaphoreRejectsExceedingCeiling(t *testing.T) {
	sem, err := amp.NewSemaphore(0, 1)
	require.NoError(t, err)
	require.Equal(t, amp.ErrResourceUnavailable, sem.Signal(2))
}

func TestSemaphoreRejectsBadInit(t *testing.T) {
	_, err := amp.NewSemaphore(-1, 4)
	require.Equal(t, amp.ErrUsageError, err)

	_, err = amp.NewSemaphore(5, 4)
	require.Equal(t, amp.ErrUsageError, err)

	_, err = amp.NewSemaphore(0, 0)
	require.Equal(t, amp.ErrUsageError, err)
}
