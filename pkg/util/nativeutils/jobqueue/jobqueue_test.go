// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package jobqueue

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRegisterRunsFnOnEveryTick(t *testing.T) {
	q := New()
	defer q.Stop()

	var calls int32
	q.Register("job1", 10*time.Millisecond, func() { atomic.AddInt32(&calls, 1) })

	time.Sleep(55 * time.Millisecond)
	assert.GreaterOrEqual(t, atomic.LoadInt32(&calls), int32(3))
}

func TestRegisterSameNameStopsPreviousTicker(t *testing.T) {
	q := New()
	defer q.Stop()

	var firstCalls, secondCalls int32
	q.Register("job1", 10*time.Millisecond, func() { atomic.AddInt32(&firstCalls, 1) })
	time.Sleep(25 * time.Millisecond)

	q.Register("job1", 10*time.Millisecond, func() { atomic.AddInt32(&secondCalls, 1) })
	time.Sleep(25 * time.Millisecond)

	stalled := atomic.LoadInt32(&firstCalls)
	time.Sleep(25 * time.Millisecond)
	assert.Equal(t, stalled, atomic.LoadInt32(&firstCalls))
	assert.Greater(t, atomic.LoadInt32(&secondCalls), int32(0))
}

func TestStopHaltsAllJobs(t *testing.T) {
	q := New()

	var calls int32
	q.Register("job1", 5*time.Millisecond, func() { atomic.AddInt32(&calls, 1) })
	time.Sleep(20 * time.Millisecond)
	q.Stop()

	stalled := atomic.LoadInt32(&calls)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stalled, atomic.LoadInt32(&calls))
}
