// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package mempool

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"
)

// mockAccounts is a minimal in-memory AccountStore keyed by public key,
// standing in for chainstate.Store in unit tests.
type mockAccounts struct {
	mu       sync.Mutex
	byPK     map[string]*Account
	balances map[string]*big.Int
	fail     map[string]error
}

func newMockAccounts() *mockAccounts {
	return &mockAccounts{
		byPK:     make(map[string]*Account),
		balances: make(map[string]*big.Int),
		fail:     make(map[string]error),
	}
}

func (a *mockAccounts) put(acc *Account) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.byPK[acc.PublicKey] = acc
	a.balances[acc.Address] = acc.Balance
}

func (a *mockAccounts) GetSender(_ context.Context, publicKey string) (*Account, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err, ok := a.fail[publicKey]; ok {
		return nil, err
	}
	acc, ok := a.byPK[publicKey]
	if !ok {
		return nil, fmt.Errorf("no such account: %s", publicKey)
	}
	return acc, nil
}

func (a *mockAccounts) GetAccount(ctx context.Context, publicKey string) (*Account, error) {
	return a.GetSender(ctx, publicKey)
}

func (a *mockAccounts) GenerateAddressByPublicKey(publicKey string) string {
	return "addr-" + publicKey
}

func (a *mockAccounts) Balance(_ context.Context, address string) (*Account, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	bal, ok := a.balances[address]
	if !ok {
		bal = zero()
	}
	return &Account{Address: address, Balance: bal}, nil
}

// mockTxLogic is a TransactionLogic double whose Process/Verify behaviour
// is controlled per-test via the fail maps, keyed by transaction id.
type mockTxLogic struct {
	mu           sync.Mutex
	processFails map[string]error
	verifyFails  map[string]error
}

func newMockTxLogic() *mockTxLogic {
	return &mockTxLogic{
		processFails: make(map[string]error),
		verifyFails:  make(map[string]error),
	}
}

func (t *mockTxLogic) Process(_ context.Context, tx *Transaction, sender, requester *Account) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err, ok := t.processFails[tx.ID]; ok {
		return err
	}
	if tx.SenderID == "" && sender != nil {
		tx.SenderID = sender.Address
	}
	return nil
}

func (t *mockTxLogic) Verify(_ context.Context, tx *Transaction, sender *Account) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err, ok := t.verifyFails[tx.ID]; ok {
		return err
	}
	return nil
}

func (t *mockTxLogic) Multisign(_ context.Context, keypair Keypair, tx *Transaction) (string, error) {
	return "sig-" + keypair.PublicKey, nil
}

// mockKeys derives a fixed, deterministic keypair per secret so tests can
// predict the resulting public key without pulling in ed25519.
type mockKeys struct{}

func (mockKeys) MakeKeypair(secret []byte) (Keypair, error) {
	return Keypair{PublicKey: "pk-" + string(secret), PrivateKey: secret}, nil
}

// mockBus records every published payload.
type mockBus struct {
	mu        sync.Mutex
	published [][]byte
	topics    []string
}

func (b *mockBus) Publish(topic string, payload []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.topics = append(b.topics, topic)
	b.published = append(b.published, payload)
}

// mockScheduler records every Register call instead of actually ticking,
// so Run()'s wiring can be asserted without waiting on real timers.
type mockScheduler struct {
	mu         sync.Mutex
	registered map[string]time.Duration
	stopped    bool
}

func newMockScheduler() *mockScheduler {
	return &mockScheduler{registered: make(map[string]time.Duration)}
}

func (s *mockScheduler) Register(name string, interval time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registered[name] = interval
}

func (s *mockScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
}

// newTestMempool builds a Mempool with no scheduler (so background jobs
// never fire on their own; same-package tests run processTick/expiryTick/
// resetInvalidTick through exec).
func newTestMempool(cfg Config, accounts AccountStore, txLogic TransactionLogic) *Mempool {
	m := New(cfg, accounts, txLogic, mockKeys{}, &mockBus{}, nil)
	m.Run()
	return m
}
