// Copyright 2016 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package amputil_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bjoernknafla/ampsync/amp/amputil"
)

func TestInspectReportsAtLeastOneCPU(t *testing.T) {
	p := amputil.Inspect()
	require.GreaterOrEqual(t, p.LogicalCPUCount, 1)
	require.Equal(t, p.LogicalCPUCount, p.PhysicalCPUCount)
}

func TestDefaultAllocator(t *testing.T) {
	var a amputil.DefaultAllocator
	b := a.Alloc(16)
	require.Len(t, b, 16)
	a.Free(b)
}
