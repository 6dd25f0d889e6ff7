// Copyright 2016 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package amp provides a small, portable set of synchronization
// primitives --- mutexes, counting semaphores, auto-reset events,
// threads, thread-local slots and condition variables --- built on
// top of the primitives the Go runtime already gives every goroutine.
//
// The interesting component is ConditionVariable: a condition
// variable emulated entirely from a mutex, a counting semaphore and
// an auto-reset event, in the style of the classic portable condition
// variable algorithms used on platforms that expose nothing richer.
// Go's sync.Cond already solves this problem internally, but amp
// exposes the gate/count/drain protocol explicitly so that it can be
// composed with the package's own Mutex, Semaphore and Event types
// rather than being tied to sync.Locker.
package amp
