// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

// Package mempool implements the node's transaction mempool: the
// in-memory staging area that admits, solvency-checks, holds
// multisig-in-progress and future-dated transactions, expires stale
// entries, and exposes a forger-ordered view of ready transactions.
//
// The whole mempool is a single-threaded cooperative state machine:
// exactly one goroutine, started by Run, ever mutates the containers.
// Everything else (admission calls from RPC/peer handlers, queries from
// the block producer) is a message sent to that goroutine and a response
// read back, the same shape as the teacher's own channel-driven Mempool.
package mempool

import (
	"context"
	"time"

	logger "github.com/sirupsen/logrus"
)

var log = logger.WithFields(logger.Fields{"prefix": "mempool"})

// AccountStore is the external account store collaborator: the mempool
// never mutates on-chain state, only reads it.
type AccountStore interface {
	GetSender(ctx context.Context, publicKey string) (*Account, error)
	GetAccount(ctx context.Context, publicKey string) (*Account, error)
	GenerateAddressByPublicKey(publicKey string) string
	Balance(ctx context.Context, address string) (*Account, error)
}

// TransactionLogic is the external transaction codec / signature verifier
// collaborator.
type TransactionLogic interface {
	Process(ctx context.Context, tx *Transaction, sender, requester *Account) error
	Verify(ctx context.Context, tx *Transaction, sender *Account) error
	Multisign(ctx context.Context, keypair Keypair, tx *Transaction) (string, error)
}

// Keypair is the output of the key-derivation primitive.
type Keypair struct {
	PublicKey  string
	PrivateKey []byte
}

// KeyDeriver is the external key-derivation primitive collaborator.
type KeyDeriver interface {
	MakeKeypair(secret []byte) (Keypair, error)
}

// Bus is the external message bus collaborator, used only for the
// broadcast hand-off.
type Bus interface {
	Publish(topic string, payload []byte)
}

// TopicUnverifiedTransaction is the historical topic name carrying the
// broadcast batch; the name refers to the batch, not to the unverified
// pool list.
const TopicUnverifiedTransaction = "unverifiedTransaction"

// Mempool is the node's transaction mempool.
type Mempool struct {
	cfg Config

	pools *pools

	accounts AccountStore
	txLogic  TransactionLogic
	keys     KeyDeriver
	bus      Bus

	// now is the injectable wall clock; defaults to time.Now.
	now func() time.Time

	scheduler scheduler

	// commands serializes every state-mutating operation onto the single
	// executor goroutine: admission, queries and the background jobs all
	// submit funcs here instead of touching pools directly.
	commands chan func()
	quit     chan struct{}
}

// scheduler is the subset of a named-job queue the mempool needs:
// named, idempotently-re-registrable interval jobs.
type scheduler interface {
	Register(name string, interval time.Duration, fn func())
	Stop()
}

// New constructs a Mempool. accounts, txLogic and keys are required;
// bus and sched may be nil, in which case broadcast hand-off and the
// background jobs are simply not started (useful for unit tests that only
// exercise the admission pipeline).
func New(cfg Config, accounts AccountStore, txLogic TransactionLogic, keys KeyDeriver, bus Bus, sched scheduler) *Mempool {
	m := &Mempool{
		cfg:       cfg,
		pools:     newPools(),
		accounts:  accounts,
		txLogic:   txLogic,
		keys:      keys,
		bus:       bus,
		now:       time.Now,
		scheduler: sched,
		commands:  make(chan func()),
		quit:      make(chan struct{}),
	}
	return m
}

// Run starts the single executor goroutine and registers the promotion,
// expiry and invalid-cache-reset jobs with the scheduler, exactly as the
// teacher's jobsQueue.register calls do at startup.
func (m *Mempool) Run() {
	go m.loop()

	if m.scheduler != nil {
		m.scheduler.Register("transactionPoolNextProcess", m.cfg.ProcessInterval, func() {
			m.exec(m.processTick)
		})
		m.scheduler.Register("transactionPoolNextExpiryTransactions", m.cfg.ExpiryInterval, func() {
			m.exec(m.expiryTick)
		})
		m.scheduler.Register("transactionPoolNextInvalidTransactionsReset", m.cfg.ExpiryInterval, func() {
			m.exec(m.resetInvalidTick)
		})
	}
}

// Quit stops the executor goroutine and the background scheduler. In-flight
// operations are allowed to complete.
func (m *Mempool) Quit() {
	if m.scheduler != nil {
		m.scheduler.Stop()
	}
	close(m.quit)
}

func (m *Mempool) loop() {
	for {
		select {
		case cmd := <-m.commands:
			cmd()
		case <-m.quit:
			return
		}
	}
}

// exec submits fn to the executor and blocks until it has run. Every
// exported admission, signing and query method of Mempool is built on
// exec, so callers never observe a container mid-mutation.
func (m *Mempool) exec(fn func()) {
	done := make(chan struct{})
	m.commands <- func() {
		fn()
		close(done)
	}
	<-done
}

// logEntry returns a logrus entry for component-level logging, the same
// per-field-copy idiom the teacher uses for per-tx log lines.
func logEntry(key, val string) *logger.Entry {
	fields := logger.Fields{}
	for k, v := range log.Data {
		fields[k] = v
	}
	fields[key] = val
	return logger.WithFields(fields)
}
