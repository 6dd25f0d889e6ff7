// Copyright 2016 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package amp

// Event is a binary, auto-resetting wake flag. Set makes the flag
// set; if a waiter is blocked in Wait, exactly one is released and
// the flag immediately returns to clear. Multiple Set calls that
// occur before any Wait coalesce into a single pending release,
// mirroring a Win32 auto-reset event and amp's
// amp_raw_condition_variable's finished_waking_waiting_threads_event.
type Event struct {
	ch chan struct{}
}

// NewEvent returns a new Event, initially clear.
func NewEvent() *Event {
	return &Event{ch: make(chan struct{}, 1)}
}

// Set transitions the flag to set, releasing one waiter if any is
// blocked in Wait. A Set on an already-set flag is a no-op.
func (e *Event) Set() {
	select {
	case e.ch <- struct{}{}:
	default:
	}
}

// Wait blocks while the flag is clear. On return the flag is clear
// again (the wait that returned is the one release caused by Set).
func (e *Event) Wait() {
	<-e.ch
}
