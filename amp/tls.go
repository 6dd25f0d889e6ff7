// Copyright 2016 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package amp

// SlotKey is a process-wide identifier for a per-thread, pointer-sized
// cell. Go goroutines have no implicit OS-thread-local storage (a
// goroutine can migrate between OS threads at any scheduling point),
// so unlike the amp_raw_thread_local_slot this package's storage is
// keyed explicitly by the *Thread the caller is running on rather
// than discovered implicitly from thread identity. Any code wishing
// to use a slot must be running inside the fn passed to Thread.Launch
// and must have a handle to that Thread.
//
// Reads before any write on a given Thread return nil. No destructor
// is invoked when a Thread is joined; the source this package follows
// explicitly installs a null destructor and so does this one.
type SlotKey struct{}

// NewSlot allocates a new key valid for all threads.
func NewSlot() *SlotKey {
	return &SlotKey{}
}

// Get returns the last value Set by th for this key, or nil if never set.
func (k *SlotKey) Get(th *Thread) interface{} {
	return th.slotValue(k)
}

// Set stores value in th's cell for this key.
func (k *SlotKey) Set(th *Thread, value interface{}) {
	th.setSlotValue(k, value)
}

// Finalize releases k. After Finalize, any further Get or Set using k
// is undefined, exactly as for amp_raw_thread_local_slot_destroy. k's
// backing storage is per-Thread Go maps reclaimed by the garbage
// collector, so Finalize has nothing to release itself; it exists so
// the documented four-operation slot-key contract (init, finalize,
// set, get) is actually present on the type rather than silently
// dropped.
func (k *SlotKey) Finalize() {}
