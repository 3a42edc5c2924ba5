// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package mempool

import (
	"bytes"
	"context"
	"encoding/gob"

	"github.com/golang/snappy"
)

// processTick runs one promotion-loop tick: phase A drains unverified,
// phase B promotes fully-signed pending, then the accumulated broadcast
// outbox is published as a single batch. Must only run on the executor
// goroutine (it is registered via exec in Run).
func (m *Mempool) processTick() {
	m.phaseADrainUnverified()
	m.phaseBPromotePending()
	m.publishBroadcastBatch()
}

// phaseADrainUnverified is phase A of the promotion tick: every
// transaction currently in unverified is removed, then verified and
// balance-checked; failures are logged and dropped so the loop
// continues.
func (m *Mempool) phaseADrainUnverified() {
	ctx := context.Background()
	pending := m.pools.unverified.enumerate()

	for _, tx := range pending {
		m.pools.unverified.remove(tx.ID)

		sender, err := m.accounts.GetSender(ctx, tx.SenderPublicKey)
		if err != nil {
			logEntry("tx", tx.ID).Errorf("phase A: sender lookup failed: %v", err)
			continue
		}

		if err := m.txLogic.Verify(ctx, tx, sender); err != nil {
			m.pools.invalid.add(tx.ID)
			logEntry("tx", tx.ID).Errorf("phase A: verify failed: %v", err)
			continue
		}

		// The unique-per-sender rule is enforced here too, not just on
		// the public admission path, so peer-ingress transactions can't
		// sneak a second SIGNATURE/DELEGATE/MULTI past it.
		if tx.Type.uniquePerSender() && m.pools.hasReadyTypeForSender(tx.SenderPublicKey) {
			logEntry("tx", tx.ID).Infof("phase A: dropping duplicate type for sender")
			continue
		}

		if _, err := m.checkBalance(tx, sender); err != nil {
			// Balance failure does not invalidate.
			logEntry("tx", tx.ID).Infof("phase A: insufficient funds: %v", err)
			continue
		}

		m.route(tx, tx.Broadcast)
	}
}

// phaseBPromotePending is phase B of the promotion tick: pending MULTI
// transactions that have reached their signature threshold move to
// ready. Other pending transactions are left for the expiry worker or
// for external signing to finish.
func (m *Mempool) phaseBPromotePending() {
	for _, tx := range m.pools.pending.enumerate() {
		if tx.Type != Multisig || tx.Multisig == nil {
			continue
		}
		if len(tx.Signatures) < tx.Multisig.Min {
			continue
		}

		m.pools.pending.remove(tx.ID)
		m.pools.ready.insert(tx)
		if tx.Broadcast {
			m.pools.queueBroadcast(tx)
		}
	}
}

// publishBroadcastBatch is the promotion tick's broadcast hand-off: the
// outbox is serialized, snappy-compressed (the corpus's standard
// gossip-payload compression, e.g. in ethereum's and dusk's own peer
// transports) and published once per tick on TopicUnverifiedTransaction.
func (m *Mempool) publishBroadcastBatch() {
	batch := m.pools.drainBroadcast()
	if len(batch) == 0 || m.bus == nil {
		return
	}

	payload, err := encodeBroadcastBatch(batch)
	if err != nil {
		log.Errorf("failed to encode broadcast batch: %v", err)
		return
	}

	m.bus.Publish(TopicUnverifiedTransaction, payload)
}

// broadcastEnvelope is the wire shape of one transaction in a broadcast
// batch; only the fields a peer needs to re-admit the transaction are
// carried.
type broadcastEnvelope struct {
	ID                 string
	Type               TxType
	SenderPublicKey    string
	SenderID           string
	RequesterPublicKey string
	RecipientID        string
	Amount             []byte
	Fee                []byte
	Timestamp          int64
	Signatures         []string
	Multisig           *MultisigAsset
}

func encodeBroadcastBatch(batch []*Transaction) ([]byte, error) {
	envelopes := make([]broadcastEnvelope, len(batch))
	for i, tx := range batch {
		envelopes[i] = broadcastEnvelope{
			ID:                 tx.ID,
			Type:               tx.Type,
			SenderPublicKey:    tx.SenderPublicKey,
			SenderID:           tx.SenderID,
			RequesterPublicKey: tx.RequesterPublicKey,
			RecipientID:        tx.RecipientID,
			Amount:             amountOf(tx).Bytes(),
			Fee:                feeOf(tx).Bytes(),
			Timestamp:          tx.Timestamp,
			Signatures:         tx.Signatures,
			Multisig:           tx.Multisig,
		}
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(envelopes); err != nil {
		return nil, err
	}
	return snappy.Encode(nil, buf.Bytes()), nil
}

// DecodeBroadcastBatch reverses encodeBroadcastBatch; it is exported so a
// peer subsystem receiving TopicUnverifiedTransaction can reconstruct the
// batch before calling AddFromPeer.
func DecodeBroadcastBatch(payload []byte) ([]*Transaction, error) {
	raw, err := snappy.Decode(nil, payload)
	if err != nil {
		return nil, err
	}

	var envelopes []broadcastEnvelope
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&envelopes); err != nil {
		return nil, err
	}

	txs := make([]*Transaction, len(envelopes))
	for i, e := range envelopes {
		txs[i] = &Transaction{
			ID:                 e.ID,
			Type:               e.Type,
			SenderPublicKey:    e.SenderPublicKey,
			SenderID:           e.SenderID,
			RequesterPublicKey: e.RequesterPublicKey,
			RecipientID:        e.RecipientID,
			Amount:             bytesToBigInt(e.Amount),
			Fee:                bytesToBigInt(e.Fee),
			Timestamp:          e.Timestamp,
			Signatures:         e.Signatures,
			Multisig:           e.Multisig,
		}
	}
	return txs, nil
}
