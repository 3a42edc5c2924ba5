// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package mempool

import "math/big"

// checkBalance projects a sender's solvency: on-chain balance plus every
// ready receipt to sender, minus every ready debit from sender. Only
// ready participates; pending is deliberately excluded, since a pending
// transaction isn't yet committed to block inclusion.
//
// This mirrors the shape of neo-go's mempool.checkBalance (balance minus
// in-pool fee sum, reject if short), generalized to a two-directional
// TRANSFER receipt/debit model instead of neo-go's single-direction fee
// deduction.
func (m *Mempool) checkBalance(tx *Transaction, sender *Account) (*big.Int, error) {
	balance := zero()
	if sender != nil && sender.Balance != nil {
		balance = sender.Balance
	}

	delta := m.poolDelta(sender)
	projected := new(big.Int).Add(balance, delta)

	required := spendOf(tx)
	if projected.Cmp(required) < 0 {
		address := ""
		if sender != nil {
			address = sender.Address
		}
		return projected, &InsufficientFundsError{Address: address, ProjectedBalance: projected}
	}
	return projected, nil
}

// poolDelta sums every ready debit/receipt touching sender's address.
func (m *Mempool) poolDelta(sender *Account) *big.Int {
	delta := zero()
	if sender == nil {
		return delta
	}

	for _, t := range m.pools.ready.byID {
		if t.SenderID == sender.Address {
			delta.Sub(delta, spendOf(t))
		}
		if t.Type == Transfer && t.RecipientID == sender.Address {
			delta.Add(delta, amountOf(t))
		}
	}
	return delta
}
