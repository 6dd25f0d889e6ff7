// Copyright 2016 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package amp

import "errors"

// Status is the abstract result of an amp operation. A nil error is
// the Ok status; the sentinels below cover the remaining cases the
// package distinguishes. Do not test for finer distinctions than
// these --- the underlying OS facilities rarely offer more, and a
// caller cannot usefully act on a richer taxonomy.
var (
	// ErrNoMem indicates allocation or OS kernel-object exhaustion
	// during initialization.
	ErrNoMem = errors.New("amp: insufficient memory or kernel resources")

	// ErrResourceUnavailable indicates a transient failure; the
	// caller may retry.
	ErrResourceUnavailable = errors.New("amp: resource temporarily unavailable")

	// ErrUsageError indicates a programming mistake that the package
	// detects: launching a thread twice, joining an unlaunched or
	// already-joined thread, or creating a semaphore with an invalid
	// count or ceiling. Other misuse, such as waiting without holding
	// the associated mutex or finalizing a condition variable that
	// still has waiters, is not detected and does not return this
	// error. Continued behavior after this
	// error is undefined; it exists so release builds fail loudly
	// instead of corrupting state silently.
	ErrUsageError = errors.New("amp: usage error")
)
