// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

// Package chainstate is a demo, goleveldb-backed implementation of the
// external account store and transaction logic collaborators the mempool
// consumes. It exists to exercise the mempool against something other
// than an in-memory test double in cmd/mempoold and in the package's
// integration test; it is not part of the mempool's own state and
// carries none of its invariants.
//
// Grounded on the teacher's pkg/core/chain/database.go: a single
// goleveldb handle, prefixed keys, open-or-recover-on-corruption.
package chainstate

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/gob"
	"math/big"
	"os"

	"github.com/syndtr/goleveldb/leveldb"
	lvlerrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/util"

	"duskchain/mempool/pkg/core/mempool"
)

const accountPrefix = "ACCT"

// Store is a goleveldb-backed ledger of account balances and
// multisignature membership, implementing mempool.AccountStore.
type Store struct {
	db *leveldb.DB
}

// Open opens (or recovers) the leveldb file at path, mirroring the
// teacher's NewDatabase.
func Open(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if _, corrupted := err.(*lvlerrors.ErrCorrupted); corrupted {
		db, err = leveldb.RecoverFile(path, nil)
	}
	if _, denied := err.(*os.PathError); denied {
		return nil, lvlerrors.New("chainstate: could not open or create db")
	}
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

type storedAccount struct {
	Address         string
	PublicKey       string
	Balance         []byte
	Multisignatures []string
}

func key(publicKey string) []byte {
	return append([]byte(accountPrefix), []byte(publicKey)...)
}

// PutAccount writes (or overwrites) an account record, keyed by public key.
func (s *Store) PutAccount(acc *mempool.Account) error {
	rec := storedAccount{
		Address:         acc.Address,
		PublicKey:       acc.PublicKey,
		Balance:         acc.Balance.Bytes(),
		Multisignatures: acc.Multisignatures,
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(rec); err != nil {
		return err
	}
	return s.db.Put(key(acc.PublicKey), buf.Bytes(), nil)
}

func (s *Store) getByPublicKey(publicKey string) (*mempool.Account, error) {
	raw, err := s.db.Get(key(publicKey), nil)
	if err != nil {
		return nil, err
	}
	var rec storedAccount
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&rec); err != nil {
		return nil, err
	}
	return &mempool.Account{
		Address:         rec.Address,
		PublicKey:       rec.PublicKey,
		Balance:         new(big.Int).SetBytes(rec.Balance),
		Multisignatures: rec.Multisignatures,
	}, nil
}

// GetSender implements mempool.AccountStore.
func (s *Store) GetSender(_ context.Context, publicKey string) (*mempool.Account, error) {
	return s.getByPublicKey(publicKey)
}

// GetAccount implements mempool.AccountStore.
func (s *Store) GetAccount(_ context.Context, publicKey string) (*mempool.Account, error) {
	return s.getByPublicKey(publicKey)
}

// GenerateAddressByPublicKey derives a deterministic demo address from a
// public key (the key string's bytes folded into a uint64, hex-encoded and
// prefixed with "dk1"). Real address derivation is the external transaction
// codec's concern; this exists only so the demo store can produce
// addresses without one.
func (s *Store) GenerateAddressByPublicKey(publicKey string) string {
	b := []byte(publicKey)
	var sum uint64
	for i, c := range b {
		sum += uint64(c) << uint(8*(i%8))
	}
	out := make([]byte, 8)
	binary.BigEndian.PutUint64(out, sum)
	return "dk1" + bytesToHex(out)
}

// Balance implements mempool.AccountStore's direct balance read.
func (s *Store) Balance(ctx context.Context, address string) (*mempool.Account, error) {
	iter := s.db.NewIterator(util.BytesPrefix([]byte(accountPrefix)), nil)
	defer iter.Release()

	for iter.Next() {
		var rec storedAccount
		if err := gob.NewDecoder(bytes.NewReader(iter.Value())).Decode(&rec); err != nil {
			continue
		}
		if rec.Address == address {
			return &mempool.Account{
				Address:         rec.Address,
				PublicKey:       rec.PublicKey,
				Balance:         new(big.Int).SetBytes(rec.Balance),
				Multisignatures: rec.Multisignatures,
			}, nil
		}
	}
	return &mempool.Account{Address: address, Balance: big.NewInt(0)}, nil
}

func bytesToHex(b []byte) string {
	const hexdigits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = hexdigits[c>>4]
		out[i*2+1] = hexdigits[c&0x0f]
	}
	return string(out)
}
