// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package mempool

import (
	"math/big"
	"time"
)

// TxType tags the kind of a Transaction. The unique-per-sender rule
// applies to Signature, Delegate and Multisig.
type TxType uint8

// Transaction type tags.
const (
	Transfer TxType = iota
	Signature
	Delegate
	Multisig
)

func (t TxType) String() string {
	switch t {
	case Transfer:
		return "TRANSFER"
	case Signature:
		return "SIGNATURE"
	case Delegate:
		return "DELEGATE"
	case Multisig:
		return "MULTI"
	default:
		return "UNKNOWN"
	}
}

// uniquePerSender reports whether t is subject to the unique-per-sender
// rule (at most one ready transaction of this type per sender public
// key).
func (t TxType) uniquePerSender() bool {
	return t == Signature || t == Delegate || t == Multisig
}

// MultisigAsset carries the multisignature parameters of a MULTI
// transaction.
type MultisigAsset struct {
	Min       int
	Lifetime  int64
	Keysgroup []string // each entry is "+<hex-pubkey>"
}

// Transaction is the mempool's view of a candidate transaction. Fields
// beyond these are opaque to the pool.
type Transaction struct {
	ID                 string
	Type               TxType
	SenderPublicKey    string
	SenderID           string
	RequesterPublicKey string
	RecipientID        string
	Amount             *big.Int
	Fee                *big.Int
	Timestamp          int64

	Signatures []string

	Multisig *MultisigAsset // non-nil iff Type == Multisig

	ReceivedAt time.Time
	Broadcast  bool
}

// realTime interprets a transaction's node-relative epoch-second
// timestamp as a wall-clock instant. The source protocol's epoch is out
// of this component's scope; plain Unix seconds is the natural default
// for a node-relative counter expressed in seconds.
func realTime(timestamp int64) time.Time {
	return time.Unix(timestamp, 0)
}

// hasTimestampInFuture reports whether tx.Timestamp is strictly after
// receivedAt.
func (tx *Transaction) hasTimestampInFuture() bool {
	return realTime(tx.Timestamp).After(tx.ReceivedAt)
}

// isAwaitingSignatures reports whether tx carries a (possibly empty,
// non-nil) signatures list, the marker for multisig-in-progress.
func (tx *Transaction) isAwaitingSignatures() bool {
	return tx.Signatures != nil
}

// Account is the subset of on-chain account state the mempool consults.
type Account struct {
	Address         string
	PublicKey       string
	Balance         *big.Int
	Multisignatures []string // non-empty iff this account is a multisig account
}

func (a *Account) isMultisig() bool {
	return a != nil && len(a.Multisignatures) > 0
}

func zero() *big.Int { return big.NewInt(0) }

func amountOf(tx *Transaction) *big.Int {
	if tx.Amount == nil {
		return zero()
	}
	return tx.Amount
}

func feeOf(tx *Transaction) *big.Int {
	if tx.Fee == nil {
		return zero()
	}
	return tx.Fee
}

func spendOf(tx *Transaction) *big.Int {
	return new(big.Int).Add(amountOf(tx), feeOf(tx))
}

func bytesToBigInt(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}
