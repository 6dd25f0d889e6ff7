// Copyright 2016 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/bjoernknafla/ampsync/amp"
	"github.com/bjoernknafla/ampsync/vlog"
)

// boundedQueue is a FIFO queue with a fixed capacity, built directly
// on amp's Mutex and ConditionVariable rather than sync.Cond, to give
// the package's core primitives a real caller to exercise.
type boundedQueue struct {
	limit    int
	mu       *amp.Mutex
	nonEmpty *amp.ConditionVariable
	nonFull  *amp.ConditionVariable
	data     []int
	closed   bool
}

func newBoundedQueue(limit int) (*boundedQueue, error) {
	nonEmpty, err := amp.NewConditionVariable()
	if err != nil {
		return nil, err
	}
	nonFull, err := amp.NewConditionVariable()
	if err != nil {
		return nil, err
	}
	return &boundedQueue{
		limit:    limit,
		mu:       amp.NewMutex(),
		nonEmpty: nonEmpty,
		nonFull:  nonFull,
	}, nil
}

func (q *boundedQueue) put(v int) {
	q.mu.Lock()
	for len(q.data) == q.limit {
		q.nonFull.Wait(q.mu)
	}
	q.data = append(q.data, v)
	q.nonEmpty.Signal()
	q.mu.Unlock()
}

// closeQueue marks the queue closed; any get blocked because the
// queue was empty is released via Broadcast so it can observe closed
// and return.
func (q *boundedQueue) closeQueue() {
	q.mu.Lock()
	q.closed = true
	q.nonEmpty.Broadcast()
	q.mu.Unlock()
}

func (q *boundedQueue) get() (v int, ok bool) {
	q.mu.Lock()
	for len(q.data) == 0 && !q.closed {
		q.nonEmpty.Wait(q.mu)
	}
	if len(q.data) > 0 {
		v, q.data = q.data[0], q.data[1:]
		ok = true
		q.nonFull.Signal()
	}
	q.mu.Unlock()
	return v, ok
}

func runDemo(flags demoFlags) error {
	defer vlog.LogCall(flags)()
	q, err := newBoundedQueue(flags.QueueSize)
	if err != nil {
		return err
	}

	total := flags.Producers * flags.Items
	var g errgroup.Group
	for p := 0; p < flags.Producers; p++ {
		p := p
		g.Go(func() error {
			for i := 0; i < flags.Items; i++ {
				v := p*flags.Items + i
				q.put(v)
				if flags.Verbose {
					vlog.Log.Infof("producer %d enqueued %d", p, v)
				}
			}
			return nil
		})
	}

	consumed := 0
	consumerDone := make(chan struct{})
	go func() {
		for {
			v, ok := q.get()
			if !ok {
				break
			}
			consumed++
			if flags.Verbose {
				vlog.Log.Infof("consumer dequeued %d (%d/%d)", v, consumed, total)
			}
		}
		close(consumerDone)
	}()

	if err := g.Wait(); err != nil {
		return err
	}
	q.closeQueue()
	<-consumerDone

	fmt.Printf("produced and consumed %d items across %d producers\n", consumed, flags.Producers)
	return nil
}
