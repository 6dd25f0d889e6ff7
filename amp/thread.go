// Copyright 2016 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package amp

import (
	"runtime"
	"sync"
)

type threadState int

const (
	threadPrelaunch threadState = iota
	threadRunning
	threadJoining
	threadJoined
)

// Thread is an opaque handle to a launched function running on its
// own OS thread. A Thread is born Prelaunch, becomes Running on a
// successful Launch and Joined on a successful Join; only a Joined
// handle may be discarded, and Join must not be called twice.
//
// Launch pins the function to a single OS thread for its lifetime
// (via runtime.LockOSThread) so that SlotKey values set
// during fn's execution behave like genuine OS-thread-local state
// rather than goroutine-local state that could otherwise migrate
// between OS threads between scheduling points.
type Thread struct {
	mu    sync.Mutex
	state threadState
	done  chan struct{}

	slotsMu sync.Mutex
	slots   map[*SlotKey]interface{}
}

// NewThread returns a Prelaunch Thread handle.
func NewThread() *Thread {
	return &Thread{state: threadPrelaunch, done: make(chan struct{})}
}

// Launch starts fn(ctx) on a new OS thread. The handle's storage must
// remain valid until Join completes. Launch returns ErrUsageError if
// called on a handle that is not Prelaunch.
func (t *Thread) Launch(fn func(ctx interface{}), ctx interface{}) error {
	t.mu.Lock()
	if t.state != threadPrelaunch {
		t.mu.Unlock()
		return ErrUsageError
	}
	t.state = threadRunning
	t.mu.Unlock()

	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		defer close(t.done)
		fn(ctx)
	}()
	return nil
}

// Join blocks until the thread launched by Launch has returned from
// fn. Calling Join twice, or on a handle that was never launched, is
// a usage error.
func (t *Thread) Join() error {
	t.mu.Lock()
	if t.state != threadRunning {
		t.mu.Unlock()
		return ErrUsageError
	}
	t.state = threadJoining
	t.mu.Unlock()

	<-t.done

	t.mu.Lock()
	t.state = threadJoined
	t.mu.Unlock()
	return nil
}

// Yield is a best-effort hint to the scheduler to run other
// goroutines before resuming the caller.
func Yield() {
	runtime.Gosched()
}

func (t *Thread) slotValue(key *SlotKey) interface{} {
	t.slotsMu.Lock()
	defer t.slotsMu.Unlock()
	if t.slots == nil {
		return nil
	}
	return t.slots[key]
}

func (t *Thread) setSlotValue(key *SlotKey, value interface{}) {
	t.slotsMu.Lock()
	defer t.slotsMu.Unlock()
	if t.slots == nil {
		t.slots = make(map[*SlotKey]interface{})
	}
	t.slots[key] = value
}
