// Copyright 2016 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package amputil

// Allocator is a pluggable allocation indirection. It mirrors
// amp_alloc_func_t/amp_dealloc_func_t's allocator-context shape,
// adapted to Go's garbage-collected heap: Alloc returns a slice of the
// requested size instead of a raw pointer, and Free is a no-op hook
// for allocators that need to know when a block's logical lifetime
// ends even though the GC reclaims the backing memory. No constructor
// in package amp takes an Allocator; amp's own types allocate from the
// Go heap directly.
type Allocator interface {
	Alloc(size int) []byte
	Free(b []byte)
}

// DefaultAllocator routes through the Go heap via make; Free
// is a no-op since the garbage collector reclaims the backing array
// once it becomes unreachable.
type DefaultAllocator struct{}

func (DefaultAllocator) Alloc(size int) []byte { return make([]byte, size) }
func (DefaultAllocator) Free(b []byte)         {}
