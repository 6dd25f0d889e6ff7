// Copyright 2016 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package amp

import "sync"

// Semaphore is a counting semaphore with a configured ceiling. Wait
// blocks while the count is zero and atomically decrements on
// release; Signal raises the count by n, failing if doing so would
// exceed the ceiling.
//
// count is the sole source of truth and is only ever read or written
// under mu, with cond used to wake blocked Waiters; there is no
// parallel channel-based bookkeeping to drift out of sync with it.
type Semaphore struct {
	mu      sync.Mutex
	cond    *sync.Cond
	count   int
	ceiling int
}

// NewSemaphore creates a Semaphore with the given initial count and
// ceiling. initCount must be between 0 and ceiling inclusive, and
// ceiling must be at least 1.
func NewSemaphore(initCount, ceiling int) (*Semaphore, error) {
	if ceiling < 1 || initCount < 0 || initCount > ceiling {
		return nil, ErrUsageError
	}
	s := &Semaphore{count: initCount, ceiling: ceiling}
	s.cond = sync.NewCond(&s.mu)
	return s, nil
}

// Wait blocks until the count is positive, then atomically decrements it.
func (s *Semaphore) Wait() {
	s.mu.Lock()
	for s.count == 0 {
		s.cond.Wait()
	}
	s.count--
	s.mu.Unlock()
}

// Signal raises the count by n, releasing up to n blocked waiters. It
// returns ErrResourceUnavailable if doing so would exceed the
// configured ceiling, in which case the count is left unchanged.
func (s *Semaphore) Signal(n int) error {
	if n <= 0 {
		return nil
	}
	s.mu.Lock()
	if s.count+n > s.ceiling {
		s.mu.Unlock()
		return ErrResourceUnavailable
	}
	s.count += n
	s.mu.Unlock()

	if n == 1 {
		s.cond.Signal()
	} else {
		s.cond.Broadcast()
	}
	return nil
}
