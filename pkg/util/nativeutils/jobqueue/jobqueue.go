// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

// Package jobqueue is a minimal named-job interval scheduler. It
// generalizes the teacher's own hand-rolled ticker
// (pkg/core/mempool/mempool.go's
// `case <-time.After(20 * time.Second): m.onIdle()`) into a reusable,
// re-registrable registry, since no cron/scheduler library appears
// anywhere in the retrieved corpus.
package jobqueue

import (
	"sync"
	"time"
)

// Queue runs named functions on a fixed interval, each on its own
// goroutine-backed ticker. Re-registering a name already present stops
// the old ticker first, making Register idempotent.
type Queue struct {
	mu   sync.Mutex
	jobs map[string]chan struct{}
}

// New returns an empty job queue.
func New() *Queue {
	return &Queue{jobs: make(map[string]chan struct{})}
}

// Register starts fn running every interval under name. If name is
// already registered, its previous ticker is stopped first.
func (q *Queue) Register(name string, interval time.Duration, fn func()) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if stop, ok := q.jobs[name]; ok {
		close(stop)
	}

	stop := make(chan struct{})
	q.jobs[name] = stop

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				fn()
			case <-stop:
				return
			}
		}
	}()
}

// Stop halts every registered job. In-flight invocations are allowed to
// complete.
func (q *Queue) Stop() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for name, stop := range q.jobs {
		close(stop)
		delete(q.jobs, name)
	}
}
