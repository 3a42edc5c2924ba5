// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

// Package eventbus is a minimal topic-keyed publish/subscribe bus,
// adapted from the teacher's pkg/util/nativeutils/eventbus package. The
// mempool's own dependency on a message bus for publishing broadcast
// batches is expressed as the mempool.Bus interface; EventBus is this
// repository's concrete implementation of it, generalized from the
// teacher's listener-registry shape to a self-contained []byte-payload
// bus.
package eventbus

import (
	"sync"

	lg "github.com/sirupsen/logrus"
)

var logEB = lg.WithField("prefix", "eventbus")

// Listener receives published payloads for a subscribed topic.
type Listener interface {
	Collect(payload []byte) error
}

// EventBus is a topic-keyed publish/subscribe bus.
type EventBus struct {
	mu        sync.RWMutex
	listeners map[Topic]map[uint32]Listener
	nextID    uint32
}

// New returns an empty EventBus.
func New() *EventBus {
	return &EventBus{listeners: make(map[Topic]map[uint32]Listener)}
}

// Publish implements mempool.Bus: it delivers payload to every listener
// subscribed to topic. Listener errors are logged, not returned —
// publication is fire-and-forget, matching the teacher's own
// eventBus.Publish call sites (no return value consulted there either).
func (bus *EventBus) Publish(topic string, payload []byte) {
	bus.mu.RLock()
	defer bus.mu.RUnlock()

	for id, listener := range bus.listeners[Topic(topic)] {
		if err := listener.Collect(payload); err != nil {
			logEB.WithFields(lg.Fields{"topic": topic, "listener": id}).Errorf("collect failed: %v", err)
		}
	}
}
