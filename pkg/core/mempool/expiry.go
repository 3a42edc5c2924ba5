// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package mempool

import "time"

// expiryTick sweeps unverified, pending and ready in order, evicting
// transactions older than their per-type timeout. Must only run on the
// executor goroutine.
func (m *Mempool) expiryTick() {
	now := m.now()

	evicted := map[listName]int{}
	for _, c := range []*container{m.pools.unverified, m.pools.pending, m.pools.ready} {
		for _, tx := range c.enumerate() {
			if m.isExpired(tx, now) {
				c.remove(tx.ID)
				evicted[c.name]++
				logEntry("tx", tx.ID).Infof("expired from %s after timeout", c.name)
			}
		}
	}

	log.Infof("expiry tick: evicted unverified=%d pending=%d ready=%d",
		evicted[unverifiedList], evicted[pendingList], evicted[readyList])
}

// isExpired computes tx's timeout and compares it against its age since
// receivedAt.
func (m *Mempool) isExpired(tx *Transaction, now time.Time) bool {
	ageSeconds := int64(now.Sub(tx.ReceivedAt).Seconds())
	return ageSeconds > m.timeOut(tx)
}

func (m *Mempool) timeOut(tx *Transaction) int64 {
	switch {
	case tx.Type == Multisig && tx.Multisig != nil:
		return tx.Multisig.Lifetime * secondsPerHour
	case tx.isAwaitingSignatures():
		return unconfirmedTransactionTimeOut * signatureTransactionTimeOutMultiplier
	default:
		return unconfirmedTransactionTimeOut
	}
}
