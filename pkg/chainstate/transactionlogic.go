// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package chainstate

import (
	"context"
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/ed25519"

	"duskchain/mempool/pkg/core/mempool"
	"duskchain/mempool/pkg/crypto/ed"
)

// TxLogic is a demo implementation of mempool.TransactionLogic. It treats
// SenderPublicKey as a hex-encoded ed25519 public key throughout. Outside
// the multisig flow, transaction authentication is carried by the opaque
// wire encoding the mempool never sees; tx.Signatures is reserved for the
// multisig-in-progress marker, so Verify only does cryptographic work for
// MULTI transactions.
type TxLogic struct {
	store *Store
}

// NewTxLogic returns a TxLogic backed by store for address generation.
func NewTxLogic(store *Store) *TxLogic {
	return &TxLogic{store: store}
}

// Process implements mempool.TransactionLogic. It resolves the sender's
// address the way the teacher's transactor resolves wallet addresses
// before building a wire transaction, but does no balance mutation: the
// mempool only ever reads balances.
func (t *TxLogic) Process(_ context.Context, tx *mempool.Transaction, sender, requester *mempool.Account) error {
	if sender == nil {
		return errors.New("chainstate: nil sender")
	}
	if tx.SenderID == "" {
		tx.SenderID = t.store.GenerateAddressByPublicKey(tx.SenderPublicKey)
	}
	return nil
}

// Verify implements mempool.TransactionLogic. Non-multisig transactions
// always verify: their authentication lives in the opaque transaction
// encoding this demo store does not model. MULTI transactions require
// every signature present so far to be a genuine ed25519 signature over
// the transaction id by some member of the keysgroup.
func (t *TxLogic) Verify(_ context.Context, tx *mempool.Transaction, sender *mempool.Account) error {
	if tx.Type != mempool.Multisig {
		return nil
	}
	if tx.Multisig == nil {
		return errors.New("chainstate: multisig transaction missing asset")
	}

	message := []byte(tx.ID)
	for _, sigHex := range tx.Signatures {
		sig, err := hex.DecodeString(sigHex)
		if err != nil {
			return errors.Wrap(err, "chainstate: decode signature")
		}
		if !signedByAnyMember(tx.Multisig.Keysgroup, message, sig) {
			return errors.New("chainstate: signature not from any keysgroup member")
		}
	}
	return nil
}

func signedByAnyMember(keysgroup []string, message, sig []byte) bool {
	for _, member := range keysgroup {
		pub, err := hex.DecodeString(strings.TrimPrefix(member, "+"))
		if err != nil {
			continue
		}
		if ed25519.Verify(pub, message, sig) {
			return true
		}
	}
	return false
}

// Multisign implements mempool.TransactionLogic. It signs the transaction
// id with keypair, matching the wire format Verify expects above.
func (t *TxLogic) Multisign(_ context.Context, keypair mempool.Keypair, tx *mempool.Transaction) (string, error) {
	return ed.Sign(keypair, []byte(tx.ID))
}
