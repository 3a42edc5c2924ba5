// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package chainstate

import (
	"context"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duskchain/mempool/pkg/core/mempool"
	"duskchain/mempool/pkg/crypto/ed"
)

func TestVerifyTrivially(t *testing.T) {
	store := openTestStore(t)
	logic := NewTxLogic(store)

	// Non-multisig authentication lives outside this model; Verify never
	// rejects a TRANSFER on signature grounds.
	tx := &mempool.Transaction{ID: "tx1", Type: mempool.Transfer, SenderPublicKey: "pk1"}
	assert.NoError(t, logic.Verify(context.Background(), tx, nil))
}

func TestVerifyAcceptsGenuineMultisigSignature(t *testing.T) {
	store := openTestStore(t)
	logic := NewTxLogic(store)

	hash := sha256.Sum256([]byte("secretA"))
	kp, err := (ed.Deriver{}).MakeKeypair(hash[:])
	require.NoError(t, err)

	tx := &mempool.Transaction{
		ID: "tx1", Type: mempool.Multisig,
		Multisig: &mempool.MultisigAsset{Min: 1, Keysgroup: []string{"+" + kp.PublicKey}},
	}
	sigHex, err := logic.Multisign(context.Background(), kp, tx)
	require.NoError(t, err)
	tx.Signatures = []string{sigHex}

	assert.NoError(t, logic.Verify(context.Background(), tx, nil))
}

func TestVerifyRejectsSignatureFromNonMember(t *testing.T) {
	store := openTestStore(t)
	logic := NewTxLogic(store)

	hash := sha256.Sum256([]byte("outsider"))
	kp, err := (ed.Deriver{}).MakeKeypair(hash[:])
	require.NoError(t, err)

	tx := &mempool.Transaction{
		ID: "tx1", Type: mempool.Multisig,
		Multisig: &mempool.MultisigAsset{Min: 1, Keysgroup: []string{"+someoneelse"}},
	}
	sigHex, err := logic.Multisign(context.Background(), kp, tx)
	require.NoError(t, err)
	tx.Signatures = []string{sigHex}

	assert.Error(t, logic.Verify(context.Background(), tx, nil))
}

func TestVerifyRejectsMalformedSignatureHex(t *testing.T) {
	store := openTestStore(t)
	logic := NewTxLogic(store)

	tx := &mempool.Transaction{
		ID:         "tx1",
		Type:       mempool.Multisig,
		Multisig:   &mempool.MultisigAsset{Min: 1, Keysgroup: []string{"+aabb"}},
		Signatures: []string{"not-hex"},
	}
	assert.Error(t, logic.Verify(context.Background(), tx, nil))
}

func TestProcessAssignsSenderIDFromAccountStore(t *testing.T) {
	store := openTestStore(t)
	logic := NewTxLogic(store)

	tx := &mempool.Transaction{ID: "tx1", SenderPublicKey: "pk1"}
	sender := &mempool.Account{Address: "addr1", PublicKey: "pk1"}
	require.NoError(t, logic.Process(context.Background(), tx, sender, nil))
	assert.NotEmpty(t, tx.SenderID)
}
