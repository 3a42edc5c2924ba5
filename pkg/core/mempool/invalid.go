// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package mempool

// resetInvalidTick clears the entire invalid set, giving previously-
// rejected ids a second chance after transient account-state changes.
// Must only run on the executor goroutine.
func (m *Mempool) resetInvalidTick() {
	count := m.pools.invalid.count()
	m.pools.invalid.reset()
	if count > 0 {
		log.Infof("invalid cache reset: cleared %d ids", count)
	}
}
