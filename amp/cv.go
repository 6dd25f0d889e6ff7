// Copyright 2016 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package amp

import "math"

// largeCeiling is the semaphore ceiling used internally by a
// ConditionVariable. It only needs to be at least as large as the
// number of threads that could plausibly wait on one cv concurrently.
const largeCeiling = math.MaxInt32

// ConditionVariable emulates a POSIX-style condition variable using
// only a mutex, a counting semaphore and an auto-reset event, the way
// a platform lacking a native condition variable primitive must. The
// design follows the gate/count/drain protocol used by
// amp_condition_variable_winthreads.c: a gate mutex serializes wait
// entry (and the waiter count's increments) against signal/broadcast
// waves, a count mutex protects released waiters' decrements of the
// waiter count and the broadcast flag, a semaphore releases exactly
// the intended number of waiters, and an auto-reset event lets the
// last waiter of a wave tell the signaller/broadcaster the wave has
// drained.
//
// A ConditionVariable must always be used with the same external
// Mutex across all of its concurrent waiters, must be initialized
// exactly once, and must not be left with blocked waiters when
// discarded.
type ConditionVariable struct {
	gateMutex  Mutex // serializes wait-entry against a wave in flight
	countMutex Mutex // guards waiters' decrements of waitingCount, and broadcastActive

	waitingCount    int
	broadcastActive bool

	wakeSemaphore *Semaphore
	drainEvent    *Event
}

// NewConditionVariable returns an initialized ConditionVariable, or
// ErrNoMem if the internal semaphore could not be created.
func NewConditionVariable() (*ConditionVariable, error) {
	sem, err := NewSemaphore(0, largeCeiling)
	if err != nil {
		return nil, ErrNoMem
	}
	return &ConditionVariable{
		wakeSemaphore: sem,
		drainEvent:    NewEvent(),
	}, nil
}

// Wait requires that the caller currently holds mu. It atomically
// releases mu and enters the wait set; when released by a Signal or
// Broadcast it reacquires mu before returning. Any signal or
// broadcast that occurs after the caller has begun Wait is eligible
// to release it.
func (cv *ConditionVariable) Wait(mu *Mutex) error {
	cv.gateMutex.Lock()
	cv.waitingCount++
	mu.Unlock()
	cv.gateMutex.Unlock()

	cv.wakeSemaphore.Wait()

	cv.countMutex.Lock()
	cv.waitingCount--
	remaining := cv.waitingCount
	wasBroadcast := cv.broadcastActive
	cv.countMutex.Unlock()

	// The releasing waiter signals the drain handshake exactly when
	// no more waiters of the current wave remain: unconditionally for
	// a signal wave (size 1), and only for the last waiter of a
	// broadcast wave.
	if !wasBroadcast || remaining == 0 {
		cv.drainEvent.Set()
	}

	mu.Lock()
	return nil
}

// Signal releases at most one waiter currently in the wait set. It is
// a no-op if there are none.
func (cv *ConditionVariable) Signal() error {
	cv.gateMutex.Lock()
	defer cv.gateMutex.Unlock()

	// waitingCount is read here under gateMutex rather than
	// countMutex, by design (spec section 5). This is safe despite
	// the two locks because the drain handshake orders every
	// decrement of the wave this call releases before gateMutex is
	// next acquired: each released waiter's countMutex-guarded
	// decrement happens-before its drainEvent.Set(), which
	// happens-before this call's own drainEvent.Wait() below returns,
	// which happens-before gateMutex.Unlock() and therefore before
	// any later caller's Lock()+read of waitingCount.
	if cv.waitingCount == 0 {
		return nil
	}
	if err := cv.wakeSemaphore.Signal(1); err != nil {
		return err
	}
	cv.drainEvent.Wait()
	return nil
}

// Broadcast releases every waiter in the wait set at the moment of
// the call. Waiters that enter Wait after Broadcast begins are not
// part of the released wave and remain blocked.
func (cv *ConditionVariable) Broadcast() error {
	cv.gateMutex.Lock()
	defer cv.gateMutex.Unlock()

	cv.countMutex.Lock()
	n := cv.waitingCount
	if n > 0 {
		cv.broadcastActive = true
	}
	cv.countMutex.Unlock()

	if n == 0 {
		return nil
	}

	if err := cv.wakeSemaphore.Signal(n); err != nil {
		cv.countMutex.Lock()
		cv.broadcastActive = false
		cv.countMutex.Unlock()
		return err
	}
	cv.drainEvent.Wait()

	cv.countMutex.Lock()
	cv.broadcastActive = false
	cv.countMutex.Unlock()
	return nil
}

// Finalize ends cv's lifetime. Its internal semaphore and event are
// reclaimed by the garbage collector, so Finalize has nothing to
// release itself and always returns nil. Calling it while any thread
// is blocked in Wait is a usage error and is left undefined, as in
// the source this emulation follows.
func (cv *ConditionVariable) Finalize() error {
	return nil
}
