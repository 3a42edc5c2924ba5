// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package mempool

import "time"

// Domain constants. unconfirmedTransactionTimeOut and
// signatureTransactionTimeOutMultiplier are expressed the way the rest of
// the expiry timeout arithmetic expects: whole seconds, and a plain
// multiplier.
const (
	secondsPerHour                        = int64(3600)
	unconfirmedTransactionTimeOut         = int64(10800) // 3 hours
	signatureTransactionTimeOutMultiplier = int64(6)
)

// Config holds the mempool's constructor configuration.
type Config struct {
	// StorageLimit bounds |unverified|+|pending|+|ready|.
	StorageLimit int

	// ProcessInterval is the period of the promotion loop.
	ProcessInterval time.Duration

	// ExpiryInterval is the shared period of the expiry worker and the
	// invalid-cache reaper.
	ExpiryInterval time.Duration
}

// DefaultConfig mirrors the values the teacher's own node config ships for
// comparable intervals (a 20s main loop tick, here split across two named
// jobs instead of one select-loop branch).
func DefaultConfig() Config {
	return Config{
		StorageLimit:    15000,
		ProcessInterval: 20 * time.Second,
		ExpiryInterval:  1 * time.Hour,
	}
}
