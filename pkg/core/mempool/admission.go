// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package mempool

import (
	"context"

	"github.com/pkg/errors"
)

// AddFromPublic runs the full admission pipeline on a single transaction
// received from a local client, placing it in ready or pending on
// success.
func (m *Mempool) AddFromPublic(ctx context.Context, tx *Transaction, broadcast bool) error {
	var result error
	m.exec(func() {
		result = m.addFromPublic(ctx, tx, broadcast)
	})
	return result
}

// AddFromPeer runs the light admission stages on each transaction in
// order, placing successes in unverified for the promotion loop to
// finish verifying. A failure on one transaction does not abort the rest
// of the batch; transactions are processed in list order.
func (m *Mempool) AddFromPeer(ctx context.Context, txs []*Transaction, broadcast bool) []error {
	errs := make([]error, len(txs))
	m.exec(func() {
		for i, tx := range txs {
			errs[i] = m.addFromPeer(ctx, tx, broadcast)
		}
	})
	return errs
}

// addFromPublic must only run on the executor goroutine.
func (m *Mempool) addFromPublic(ctx context.Context, tx *Transaction, broadcast bool) error {
	if err := m.checkAdmissible(tx.ID); err != nil {
		return err
	}

	sender, requester, err := m.resolveSenderAndRequester(ctx, tx)
	if err != nil {
		return err
	}

	if err := m.processAndVerify(ctx, tx, sender, requester); err != nil {
		return err
	}

	if tx.Type.uniquePerSender() && m.pools.hasReadyTypeForSender(tx.SenderPublicKey) {
		return &DuplicateTypeForSenderError{SenderPublicKey: tx.SenderPublicKey, Type: tx.Type}
	}

	if _, err := m.checkBalance(tx, sender); err != nil {
		return err
	}

	tx.ReceivedAt = m.now()
	m.route(tx, broadcast)
	return nil
}

// addFromPeer must only run on the executor goroutine.
func (m *Mempool) addFromPeer(ctx context.Context, tx *Transaction, broadcast bool) error {
	if err := m.checkAdmissible(tx.ID); err != nil {
		return err
	}

	sender, requester, err := m.resolveSenderAndRequester(ctx, tx)
	if err != nil {
		return err
	}

	if err := m.process(ctx, tx, sender, requester); err != nil {
		return err
	}

	tx.ReceivedAt = m.now()
	tx.Broadcast = broadcast
	m.pools.unverified.insert(tx)
	return nil
}

// checkAdmissible runs the negative-cache, duplicate and capacity checks
// that gate every admission.
func (m *Mempool) checkAdmissible(id string) error {
	if m.pools.invalid.contains(id) {
		return &AlreadyInvalidError{ID: id}
	}
	if m.pools.containedAnywhere(id) {
		return &DuplicateInPoolError{ID: id}
	}
	if m.pools.total() >= m.cfg.StorageLimit {
		return &PoolFullError{}
	}
	return nil
}

// resolveSenderAndRequester fetches the sender, derives its address if
// the transaction didn't already carry one, and, if the sender is
// multisig and a requester is named, fetches the requester too. As a
// side effect it ensures tx.Signatures is initialised for multisig
// senders.
func (m *Mempool) resolveSenderAndRequester(ctx context.Context, tx *Transaction) (sender, requester *Account, err error) {
	sender, err = m.accounts.GetSender(ctx, tx.SenderPublicKey)
	if err != nil {
		return nil, nil, &SenderLookupFailedError{Cause: errors.WithStack(err)}
	}

	if tx.SenderID == "" {
		tx.SenderID = m.accounts.GenerateAddressByPublicKey(tx.SenderPublicKey)
	}

	if sender.isMultisig() {
		if tx.Signatures == nil {
			tx.Signatures = []string{}
		}
		if tx.RequesterPublicKey != "" {
			requester, err = m.accounts.GetAccount(ctx, tx.RequesterPublicKey)
			if err != nil || requester == nil {
				return nil, nil, &RequesterNotFoundError{}
			}
		}
	}

	return sender, requester, nil
}

// process runs transaction-logic processing alone (used by the light
// peer path).
func (m *Mempool) process(ctx context.Context, tx *Transaction, sender, requester *Account) error {
	if err := m.txLogic.Process(ctx, tx, sender, requester); err != nil {
		m.pools.invalid.add(tx.ID)
		return &ProcessFailedError{ID: tx.ID, Cause: errors.WithStack(err)}
	}
	return nil
}

// processAndVerify runs process then verify (used by the full public
// path).
func (m *Mempool) processAndVerify(ctx context.Context, tx *Transaction, sender, requester *Account) error {
	if err := m.process(ctx, tx, sender, requester); err != nil {
		return err
	}
	if err := m.txLogic.Verify(ctx, tx, sender); err != nil {
		m.pools.invalid.add(tx.ID)
		return &VerifyFailedError{ID: tx.ID, Cause: errors.WithStack(err)}
	}
	return nil
}

// route places tx in pending or ready, and queues it for broadcast if it
// landed in ready and broadcast was requested.
func (m *Mempool) route(tx *Transaction, broadcast bool) {
	if m.belongsInPending(tx) {
		m.pools.pending.insert(tx)
		return
	}
	m.pools.ready.insert(tx)
	if broadcast {
		m.pools.queueBroadcast(tx)
	}
}

// belongsInPending reports whether tx should land in pending rather than
// ready: MULTI, or carrying a signatures list, or future-dated.
func (m *Mempool) belongsInPending(tx *Transaction) bool {
	if tx.Type == Multisig {
		return true
	}
	if tx.isAwaitingSignatures() {
		return true
	}
	return tx.hasTimestampInFuture()
}
