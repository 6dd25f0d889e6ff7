// Copyright 2016 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package amputil provides the ambient facilities the condition
// variable core is specified to assume exist externally: a
// platform-capability inspector (CPU counts) and a pluggable
// allocator interface, which package amp's constructors do not take.
package amputil

import "runtime"

// Platform reports the logical and physical CPU counts visible to
// the process, mirroring amp_raw_platform's installed/active core and
// hardware-thread queries. Go's runtime does not distinguish physical
// cores from hardware threads the way sysctlbyname does on Darwin, so
// both fields report the same value: the scheduler-visible logical
// CPU count.
type Platform struct {
	LogicalCPUCount  int
	PhysicalCPUCount int
}

// Inspect queries the host for its CPU topology as seen by the Go
// scheduler.
func Inspect() Platform {
	n := runtime.NumCPU()
	return Platform{LogicalCPUCount: n, PhysicalCPUCount: n}
}
