// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package eventbus

import lg "github.com/sirupsen/logrus"

// Subscriber subscribes a listener to notifications on a specific topic.
type Subscriber interface {
	Subscribe(topic Topic, listener Listener) uint32
	Unsubscribe(topic Topic, id uint32)
}

// Subscribe registers listener for topic and returns a handle usable with
// Unsubscribe.
func (bus *EventBus) Subscribe(topic Topic, listener Listener) uint32 {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	bus.nextID++
	id := bus.nextID

	if bus.listeners[topic] == nil {
		bus.listeners[topic] = make(map[uint32]Listener)
	}
	bus.listeners[topic][id] = listener

	return id
}

// Unsubscribe removes the listener registered under id for topic.
func (bus *EventBus) Unsubscribe(topic Topic, id uint32) {
	bus.mu.Lock()
	_, found := bus.listeners[topic][id]
	delete(bus.listeners[topic], id)
	bus.mu.Unlock()

	logEB.WithFields(lg.Fields{
		"found": found,
		"topic": topic,
	}).Traceln("unsubscribing")
}
