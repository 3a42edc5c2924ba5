// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package eventbus

// Topic names a channel of the bus. The mempool only ever publishes on
// TopicUnverifiedTransaction, the only topic defined here; any other topic
// is a plain string chosen by whatever subsystem publishes on it.
type Topic string

// TopicUnverifiedTransaction carries the broadcast batch published at the
// end of every promotion tick. The name is historical and refers to the
// batch, not to the mempool's unverified list.
const TopicUnverifiedTransaction Topic = "unverifiedTransaction"
