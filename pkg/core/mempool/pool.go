// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package mempool

// listName identifies one of the three id-indexed containers.
type listName string

const (
	unverifiedList listName = "unverified"
	pendingList    listName = "pending"
	readyList      listName = "ready"
)

// container is one of the pool's id-indexed maps. It is not safe for
// concurrent use; the single mempool executor owns it exclusively.
type container struct {
	name listName
	byID map[string]*Transaction
}

func newContainer(name listName) *container {
	return &container{name: name, byID: make(map[string]*Transaction)}
}

// insert is idempotent: re-inserting an id already present overwrites the
// transaction but does not change the count.
func (c *container) insert(tx *Transaction) {
	c.byID[tx.ID] = tx
}

// remove is a no-op on miss and reports whether the id was present.
func (c *container) remove(id string) bool {
	if _, ok := c.byID[id]; !ok {
		return false
	}
	delete(c.byID, id)
	return true
}

func (c *container) get(id string) (*Transaction, bool) {
	tx, ok := c.byID[id]
	return tx, ok
}

func (c *container) count() int { return len(c.byID) }

// enumerate returns every transaction currently held, in no particular
// order; callers that need ordering sort the result themselves.
func (c *container) enumerate() []*Transaction {
	out := make([]*Transaction, 0, len(c.byID))
	for _, tx := range c.byID {
		out = append(out, tx)
	}
	return out
}

// invalidSet is the negative cache: ids known to have failed
// process/verify, cleared wholesale every expiryInterval.
type invalidSet struct {
	ids map[string]struct{}
}

func newInvalidSet() *invalidSet {
	return &invalidSet{ids: make(map[string]struct{})}
}

func (s *invalidSet) add(id string)        { s.ids[id] = struct{}{} }
func (s *invalidSet) contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}
func (s *invalidSet) count() int { return len(s.ids) }
func (s *invalidSet) reset()     { s.ids = make(map[string]struct{}) }

// Status is the pool list a transaction was found in, or StatusNotInPool
// if absent.
type Status string

// Status values returned by lookup/Get.
const (
	StatusUnverified Status = "unverified"
	StatusPending    Status = "pending"
	StatusReady      Status = "ready"
	StatusNotInPool  Status = "not in pool"
)

// pools bundles the three id-indexed containers plus the invalid cache
// and the broadcast outbox — the entirety of the pool's private state.
type pools struct {
	unverified *container
	pending    *container
	ready      *container
	invalid    *invalidSet

	// broadcast holds transaction references awaiting the next promotion
	// tick's hand-off to the bus.
	broadcast []*Transaction
}

func newPools() *pools {
	return &pools{
		unverified: newContainer(unverifiedList),
		pending:    newContainer(pendingList),
		ready:      newContainer(readyList),
		invalid:    newInvalidSet(),
	}
}

// lookup scans unverified -> pending -> ready in order and returns the
// first hit.
func (p *pools) lookup(id string) (*Transaction, Status) {
	if tx, ok := p.unverified.get(id); ok {
		return tx, StatusUnverified
	}
	if tx, ok := p.pending.get(id); ok {
		return tx, StatusPending
	}
	if tx, ok := p.ready.get(id); ok {
		return tx, StatusReady
	}
	return nil, StatusNotInPool
}

// containedAnywhere reports whether id is present in any of the three
// containers, used by the admission duplicate check.
func (p *pools) containedAnywhere(id string) bool {
	_, status := p.lookup(id)
	return status != StatusNotInPool
}

// total is |unverified|+|pending|+|ready|, the quantity bounded by
// storageLimit. invalid does not count toward it.
func (p *pools) total() int {
	return p.unverified.count() + p.pending.count() + p.ready.count()
}

// deleteEverywhere removes id from all three non-invalid containers and
// reports the first list it was found in. It also reports whether the id
// was present in more than one list, an invariant violation worth
// surfacing at the caller.
func (p *pools) deleteEverywhere(id string) (first Status, multiplyPresent bool) {
	found := make([]Status, 0, 3)
	if p.unverified.remove(id) {
		found = append(found, StatusUnverified)
	}
	if p.pending.remove(id) {
		found = append(found, StatusPending)
	}
	if p.ready.remove(id) {
		found = append(found, StatusReady)
	}
	if len(found) == 0 {
		return StatusNotInPool, false
	}
	return found[0], len(found) > 1
}

// hasReadyTypeForSender reports whether any ready transaction of a
// unique-per-sender type already exists for senderPK.
func (p *pools) hasReadyTypeForSender(senderPublicKey string) bool {
	for _, tx := range p.ready.byID {
		if tx.SenderPublicKey == senderPublicKey && tx.Type.uniquePerSender() {
			return true
		}
	}
	return false
}

// queueBroadcast appends tx to the outbox, clearing its transient
// Broadcast flag once it's claimed.
func (p *pools) queueBroadcast(tx *Transaction) {
	tx.Broadcast = false
	p.broadcast = append(p.broadcast, tx)
}

// drainBroadcast empties and returns the outbox.
func (p *pools) drainBroadcast() []*Transaction {
	batch := p.broadcast
	p.broadcast = nil
	return batch
}
