// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package mempool

import (
	"context"
	"math/big"
	"sort"
)

// Get looks up a transaction by id, scanning unverified -> pending ->
// ready and returning the first hit.
func (m *Mempool) Get(id string) (*Transaction, Status) {
	var tx *Transaction
	var status Status
	m.exec(func() {
		tx, status = m.pools.lookup(id)
	})
	return tx, status
}

// Usage is the current size of every container.
type Usage struct {
	Unverified int
	Pending    int
	Ready      int
	Invalid    int
	Total      int

	// CapacityRemaining is storageLimit minus Total, the same figure the
	// teacher's onIdle already logs.
	CapacityRemaining int
}

// GetUsage reports the current size of every container.
func (m *Mempool) GetUsage() Usage {
	var u Usage
	m.exec(func() {
		u = Usage{
			Unverified: m.pools.unverified.count(),
			Pending:    m.pools.pending.count(),
			Ready:      m.pools.ready.count(),
			Invalid:    m.pools.invalid.count(),
			Total:      m.pools.total(),
		}
		u.CapacityRemaining = m.cfg.StorageLimit - u.Total
	})
	return u
}

// Filter selects the subset of the pool GetAll operates over.
type Filter struct {
	// Kind selects the filter family. One of:
	// "unverified", "pending", "ready", "sender_id", "sender_pk",
	// "recipient_id", "recipient_pk".
	Kind string
	// Value is the match value for the sender_*/recipient_* families.
	Value string
	// Reverse, applicable to the list filters, reverses receivedAt order.
	Reverse bool
	// Limit truncates the list filters' result. Zero means unbounded.
	Limit int
}

// BySender is the {unverified, pending, ready} triple returned by the
// sender_*/recipient_* filter families.
type BySender struct {
	Unverified []*Transaction
	Pending    []*Transaction
	Ready      []*Transaction
}

// GetAll runs one of the list or sender/recipient filters across the
// pool. Unknown filters return a diagnostic string in diag, preserved
// for API compatibility with the source system.
func (m *Mempool) GetAll(f Filter) (list []*Transaction, bySender BySender, diag string) {
	m.exec(func() {
		switch f.Kind {
		case "unverified":
			list = m.orderedList(m.pools.unverified, f)
		case "pending":
			list = m.orderedList(m.pools.pending, f)
		case "ready":
			list = m.orderedList(m.pools.ready, f)
		case "sender_id":
			bySender = m.matchAll(func(tx *Transaction) bool { return tx.SenderID == f.Value })
		case "sender_pk":
			bySender = m.matchAll(func(tx *Transaction) bool { return tx.SenderPublicKey == f.Value })
		case "recipient_id":
			bySender = m.matchAll(func(tx *Transaction) bool { return tx.RecipientID == f.Value })
		case "recipient_pk":
			// The transaction data model carries no recipient public
			// key (only RequesterPublicKey, a multisig-sender concept
			// unrelated to the recipient), so this family matches by
			// recipient address, same as recipient_id.
			bySender = m.matchAll(func(tx *Transaction) bool { return tx.RecipientID == f.Value })
		default:
			diag = "unknown filter: " + f.Kind
		}
	})
	return
}

// orderedList returns c's contents ordered by receivedAt ascending,
// optionally reversed and truncated.
func (m *Mempool) orderedList(c *container, f Filter) []*Transaction {
	list := c.enumerate()
	sort.Slice(list, func(i, j int) bool {
		return list[i].ReceivedAt.Before(list[j].ReceivedAt)
	})
	if f.Reverse {
		for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
			list[i], list[j] = list[j], list[i]
		}
	}
	if f.Limit > 0 && len(list) > f.Limit {
		list = list[:f.Limit]
	}
	return list
}

func (m *Mempool) matchAll(match func(*Transaction) bool) BySender {
	var out BySender
	for _, tx := range m.pools.unverified.enumerate() {
		if match(tx) {
			out.Unverified = append(out.Unverified, tx)
		}
	}
	for _, tx := range m.pools.pending.enumerate() {
		if match(tx) {
			out.Pending = append(out.Pending, tx)
		}
	}
	for _, tx := range m.pools.ready.enumerate() {
		if match(tx) {
			out.Ready = append(out.Ready, tx)
		}
	}
	return out
}

// GetReady is the forger view: ready ordered by (fee DESC, receivedAt
// ASC, id DESC) and truncated to limit.
func (m *Mempool) GetReady(limit int) []*Transaction {
	var out []*Transaction
	m.exec(func() {
		out = m.pools.ready.enumerate()
		sort.Slice(out, func(i, j int) bool {
			a, b := out[i], out[j]
			if c := feeOf(a).Cmp(feeOf(b)); c != 0 {
				return c > 0 // fee DESC
			}
			if !a.ReceivedAt.Equal(b.ReceivedAt) {
				return a.ReceivedAt.Before(b.ReceivedAt) // receivedAt ASC
			}
			return a.ID > b.ID // id DESC
		})
		if limit > 0 && len(out) > limit {
			out = out[:limit]
		}
	})
	return out
}

// Delete removes id from every non-invalid list and returns the first
// list that held it. If the id was present in more than one list — an
// invariant violation — that fact is logged at debug level.
func (m *Mempool) Delete(id string) Status {
	var status Status
	m.exec(func() {
		status, _ = m.delete(id)
	})
	return status
}

func (m *Mempool) delete(id string) (Status, bool) {
	status, multiplyPresent := m.pools.deleteEverywhere(id)
	if multiplyPresent {
		logEntry("tx", id).Debugf("id was present in more than one pool list")
	}
	return status, multiplyPresent
}

// AddReady unconditionally moves txs into ready with a shared fresh
// receivedAt, used when the block producer rolls transactions back from
// a failed block.
func (m *Mempool) AddReady(txs []*Transaction) {
	m.exec(func() {
		receivedAt := m.now()
		for _, tx := range txs {
			tx.ReceivedAt = receivedAt
			m.pools.ready.insert(tx)
		}
	})
}

// SanitizeTransactions is called after a block is applied: each
// confirmed transaction is deleted from the pool, then its sender's
// remaining ready transactions are rebalanced against the (now possibly
// stale) projected balance via credit-pop eviction.
func (m *Mempool) SanitizeTransactions(ctx context.Context, confirmed []*Transaction) {
	m.exec(func() {
		senders := map[string]struct{}{}
		for _, tx := range confirmed {
			m.delete(tx.ID)
			if tx.SenderID != "" {
				senders[tx.SenderID] = struct{}{}
			}
		}

		for address := range senders {
			m.rebalanceSender(ctx, address)
		}
	})
}

// rebalanceSender re-runs checkBalance with a zero-probe for address and,
// if underwater, evicts ready transactions via credit-pop until solvent.
func (m *Mempool) rebalanceSender(ctx context.Context, address string) {
	remaining := m.readyForSender(address)
	if len(remaining) == 0 {
		return
	}

	sender, err := m.accounts.Balance(ctx, address)
	if err != nil {
		logEntry("sender", address).Errorf("sanitize: balance lookup failed: %v", err)
		return
	}

	probe := &Transaction{Amount: zero(), Fee: zero()}
	projected, err := m.checkBalance(probe, sender)
	if err == nil {
		return
	}

	m.creditPopEvict(remaining, projected)
}

func (m *Mempool) readyForSender(address string) []*Transaction {
	var out []*Transaction
	for _, tx := range m.pools.ready.enumerate() {
		if tx.SenderID == address {
			out = append(out, tx)
		}
	}
	return out
}

// creditPopEvict evicts ready transactions for one sender, given its
// ready transactions and the current (negative) projected balance, until
// the balance is non-negative.
//
// An exact-match single removal — a transaction whose spend exactly
// cancels the deficit — is tried first, an idiosyncratic optimization
// inherited from the source system; only then does it fall through to
// bulk largest-first eviction.
func (m *Mempool) creditPopEvict(ready []*Transaction, balance *big.Int) {
	if exact := findExactMatch(ready, balance); exact != nil {
		m.delete(exact.ID)
		return
	}

	candidates := append([]*Transaction(nil), ready...)
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if c := spendOf(a).Cmp(spendOf(b)); c != 0 {
			return c > 0 // amount+fee DESC
		}
		return a.ID > b.ID // id DESC
	})

	for i := 0; i < len(candidates) && balance.Sign() < 0; i++ {
		victim := candidates[i]
		m.delete(victim.ID)
		balance.Add(balance, spendOf(victim))
	}
}

// findExactMatch looks for the single ready transaction whose spend
// exactly cancels the deficit: balance + amount + fee == 0.
func findExactMatch(ready []*Transaction, balance *big.Int) *Transaction {
	for _, tx := range ready {
		candidate := new(big.Int).Add(balance, spendOf(tx))
		if candidate.Sign() == 0 {
			return tx
		}
	}
	return nil
}
