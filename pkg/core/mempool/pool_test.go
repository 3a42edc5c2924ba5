// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package mempool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainerInsertRemoveIsIdempotent(t *testing.T) {
	c := newContainer(unverifiedList)
	tx := &Transaction{ID: "tx1"}

	c.insert(tx)
	c.insert(tx)
	assert.Equal(t, 1, c.count())

	assert.True(t, c.remove("tx1"))
	assert.False(t, c.remove("tx1"))
	assert.Equal(t, 0, c.count())
}

func TestPoolsLookupOrder(t *testing.T) {
	p := newPools()
	p.pending.insert(&Transaction{ID: "tx1"})

	_, status := p.lookup("tx1")
	assert.Equal(t, StatusPending, status)

	_, status = p.lookup("missing")
	assert.Equal(t, StatusNotInPool, status)
}

func TestPoolsTotalExcludesInvalid(t *testing.T) {
	p := newPools()
	p.unverified.insert(&Transaction{ID: "tx1"})
	p.pending.insert(&Transaction{ID: "tx2"})
	p.invalid.add("tx3")

	assert.Equal(t, 2, p.total())
}

func TestPoolsDeleteEverywhereReportsMultiplePresence(t *testing.T) {
	p := newPools()
	p.unverified.insert(&Transaction{ID: "tx1"})
	p.pending.insert(&Transaction{ID: "tx1"})

	status, multiple := p.deleteEverywhere("tx1")
	assert.Equal(t, StatusUnverified, status)
	assert.True(t, multiple)
	assert.Equal(t, StatusNotInPool, func() Status { _, s := p.lookup("tx1"); return s }())
}

func TestHasReadyTypeForSenderOnlyMatchesUniqueTypes(t *testing.T) {
	p := newPools()
	p.ready.insert(&Transaction{ID: "tx1", SenderPublicKey: "pk1", Type: Transfer})
	assert.False(t, p.hasReadyTypeForSender("pk1"))

	p.ready.insert(&Transaction{ID: "tx2", SenderPublicKey: "pk1", Type: Delegate})
	assert.True(t, p.hasReadyTypeForSender("pk1"))
}

func TestQueueAndDrainBroadcast(t *testing.T) {
	p := newPools()
	tx := &Transaction{ID: "tx1", Broadcast: true}
	p.queueBroadcast(tx)

	assert.False(t, tx.Broadcast)
	batch := p.drainBroadcast()
	assert.Len(t, batch, 1)
	assert.Empty(t, p.drainBroadcast())
}
