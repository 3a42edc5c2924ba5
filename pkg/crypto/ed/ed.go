// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

// Package ed is the reference implementation of the external
// key-derivation and multisignature collaborators (ed.makeKeypair,
// transaction.multisign) the mempool consumes through interfaces. It is
// grounded on golang.org/x/crypto/ed25519, the same package the teacher
// imports in pkg/core/consensus/events/reduction.go. The mempool package
// itself only depends on the mempool.KeyDeriver and
// mempool.TransactionLogic (its Multisign method) interfaces; this adapter
// is swappable in tests.
package ed

import (
	"crypto/sha512"
	"encoding/hex"

	"golang.org/x/crypto/ed25519"

	"duskchain/mempool/pkg/core/mempool"
)

// Deriver implements mempool.KeyDeriver with ed25519 keys generated
// deterministically from a seed hash.
type Deriver struct{}

// MakeKeypair derives an ed25519 keypair from hash, matching
// ed.makeKeypair(hash) -> {publicKey, privateKey}. A hash of exactly
// ed25519.SeedSize bytes (32) is used as the seed directly; any other
// length is first reduced to 32 bytes via SHA-512. Callers pass
// sha256(secret), matching the multisig signing flow.
func (Deriver) MakeKeypair(hash []byte) (mempool.Keypair, error) {
	seed := hash
	if len(seed) != ed25519.SeedSize {
		digest := sha512.Sum512(hash)
		seed = digest[:ed25519.SeedSize]
	}

	priv := ed25519.NewKeyFromSeed(seed)
	pub := priv.Public().(ed25519.PublicKey)

	return mempool.Keypair{
		PublicKey:  hex.EncodeToString(pub),
		PrivateKey: priv,
	}, nil
}

// Sign produces a hex-encoded ed25519 signature of message with keypair's
// private key; reference/demo transaction logic implementations
// (pkg/chainstate) build their Multisign on it.
func Sign(keypair mempool.Keypair, message []byte) (string, error) {
	priv := ed25519.PrivateKey(keypair.PrivateKey)
	signature := ed25519.Sign(priv, message)
	return hex.EncodeToString(signature), nil
}
