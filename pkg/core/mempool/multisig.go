// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package mempool

import (
	"context"
	"crypto/sha256"
	"fmt"
)

// AddSignature derives a keypair from secret, checks the derived public
// key is a member of the pending transaction's keysgroup, and appends a
// fresh signature. The transaction remains in pending until the
// promotion loop observes enough signatures.
func (m *Mempool) AddSignature(ctx context.Context, id string, secret []byte) error {
	var result error
	m.exec(func() {
		result = m.addSignature(ctx, id, secret)
	})
	return result
}

func (m *Mempool) addSignature(ctx context.Context, id string, secret []byte) error {
	tx, ok := m.pools.pending.get(id)
	if !ok {
		return &NotInPoolError{ID: id}
	}

	hash := sha256.Sum256(secret)
	keypair, err := m.keys.MakeKeypair(hash[:])
	if err != nil {
		return err
	}

	if !isGroupMember(tx, keypair.PublicKey) {
		return &PermissionDeniedError{}
	}

	signature, err := m.txLogic.Multisign(ctx, keypair, tx)
	if err != nil {
		return err
	}

	for _, existing := range tx.Signatures {
		if existing == signature {
			return &AlreadySignedError{}
		}
	}

	tx.Signatures = append(tx.Signatures, signature)
	return nil
}

// isGroupMember reports whether "+<publicKeyHex>" is a member of tx's
// multisignature keysgroup.
func isGroupMember(tx *Transaction, publicKey string) bool {
	if tx.Multisig == nil {
		return false
	}
	entry := fmt.Sprintf("+%s", publicKey)
	for _, member := range tx.Multisig.Keysgroup {
		if member == entry {
			return true
		}
	}
	return false
}
